package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SnapshotsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hauspilot_snapshots_applied_total",
		Help: "Snapshots applied to the local mirror, per collection.",
	}, []string{"collection"})

	SnapshotsDiscarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hauspilot_snapshots_discarded_total",
		Help: "Stale snapshots discarded by the scope guard, per collection.",
	}, []string{"collection"})

	ActiveSubscriptions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hauspilot_active_subscriptions",
		Help: "Currently live store subscriptions, per collection.",
	}, []string{"collection"})

	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hauspilot_reminders_sent_total",
		Help: "Calendar event reminder emails sent.",
	})
)
