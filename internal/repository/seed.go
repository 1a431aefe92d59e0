package repository

import (
	"time"

	"github.com/Shivanand-hulikatti/eventos/internal/model"
)

// DemoEvents returns the sample event the catalog starts with when demo
// seeding is enabled.
func DemoEvents() []model.Event {
	return []model.Event{
		{
			ID:           1,
			Title:        "Conferencia de Python",
			Slug:         "conferencia-de-python",
			Description:  "Un espacio para aprender sobre Python y sus buenas prácticas.",
			Date:         "2025-09-15",
			Time:         "14:00",
			Location:     "Auditorio Principal",
			Category:     model.CategoryTecnologia,
			MaxAttendees: 50,
			Attendees: []model.Attendee{
				{
					ID:           "0b6a4f4e-5c1d-4f7a-9a51-3f2d7c1e8b90",
					Name:         "Juan Pérez",
					Email:        "juan@example.com",
					RegisteredAt: time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC),
				},
			},
			Featured: true,
		},
	}
}
