package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all eventos metrics
const namespace = "eventos"

// Registry is the global Prometheus registry for all metrics
var Registry = prometheus.NewRegistry()

// AppInfo exposes the running version as labels (always set to 1)
var AppInfo = promauto.With(Registry).NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "app_info",
		Help:      "Application version information (always set to 1, version info in labels)",
	},
	[]string{"version"},
)

// EventsCreated counts create-event attempts by outcome
// (created, duplicate_slug, invalid_datetime, invalid)
var EventsCreated = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_created_total",
		Help:      "Total number of event creation attempts by outcome",
	},
	[]string{"outcome"},
)

// Registrations counts registration attempts by outcome
// (registered, not_found, full, invalid)
var Registrations = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts by outcome",
	},
	[]string{"outcome"},
)

// CatalogEvents tracks how many events the catalog currently holds
var CatalogEvents = promauto.With(Registry).NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_events",
		Help:      "Number of events currently held in the catalog",
	},
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}
