package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpdatesReceived counts submissions accepted by the endpoints.
	UpdatesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fic_updates_received_total",
		Help: "Form update submissions accepted, by form type.",
	}, []string{"form_type"})

	// UpdatesApplied counts pending records merged into an open form.
	UpdatesApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fic_updates_applied_total",
		Help: "Pending updates claimed and applied, by form type.",
	}, []string{"form_type"})

	// UpdatesSkipped counts records observed but already processed.
	UpdatesSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fic_updates_skipped_total",
		Help: "Pending updates skipped because another path claimed them.",
	}, []string{"form_type"})

	// StoreErrors counts failed store operations.
	StoreErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fic_store_errors_total",
		Help: "Pending-update store failures.",
	})
)
