package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"plain", "Auditorio Principal", "Auditorio Principal", true},
		{"trims", "  Taller de Rust \n", "Taller de Rust", true},
		{"ampersand", "Pérez & Co", "Pérez & Co", true},
		{"typed entity", "Pérez &amp; Co", "Pérez &amp; Co", true},
		{"comparison", "Go 1.22 < Go 1.23", "Go 1.22 < Go 1.23", true},
		{"apostrophe", "O'Brien", "O'Brien", true},
		{"bold tag", "<b>Juan</b> Pérez", "<b>Juan</b> Pérez", false},
		{"script", "Ana<script>alert(1)</script>", "Ana<script>alert(1)</script>", false},
		{"tag-shaped text", "a<b y c>d", "a<b y c>d", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PlainText(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestHTML(t *testing.T) {
	got := HTML(`<p>Hola <em>mundo</em></p><script>alert(1)</script>`)
	assert.Equal(t, "<p>Hola <em>mundo</em></p>", got)

	got = HTML(`<a href="https://example.com" onclick="x()">link</a>`)
	assert.NotContains(t, got, "onclick")
	assert.Contains(t, got, "https://example.com")
}
