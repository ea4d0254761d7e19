package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Domain counts business events. All methods are safe on a nil receiver so
// callers can run without metrics.
type Domain struct {
	Signups          *prometheus.CounterVec
	VotesToggled     *prometheus.CounterVec
	TeamMembership   *prometheus.CounterVec
	LiveClients      prometheus.Gauge
	LiveEventsPushed *prometheus.CounterVec
}

func NewDomain(reg prometheus.Registerer) *Domain {
	m := &Domain{
		Signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Total number of signups, by role.",
		}, []string{"role"}),
		VotesToggled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_toggled_total",
			Help:      "Total number of vote toggles, by target and resulting state.",
		}, []string{"target", "voted"}),
		TeamMembership: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "team",
			Name:      "membership_changes_total",
			Help:      "Total number of team membership changes, by action.",
		}, []string{"action"}),
		LiveClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "connected_clients",
			Help:      "Number of connected live feed clients.",
		}),
		LiveEventsPushed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "events_published_total",
			Help:      "Total number of live events published, by type.",
		}, []string{"type"}),
	}

	reg.MustRegister(m.Signups, m.VotesToggled, m.TeamMembership, m.LiveClients, m.LiveEventsPushed)
	return m
}

func (m *Domain) UserSignedUp(role string) {
	if m == nil {
		return
	}
	m.Signups.WithLabelValues(role).Inc()
}

func (m *Domain) VoteToggled(target string, voted bool) {
	if m == nil {
		return
	}
	m.VotesToggled.WithLabelValues(target, strconv.FormatBool(voted)).Inc()
}

func (m *Domain) TeamMembershipChanged(action string) {
	if m == nil {
		return
	}
	m.TeamMembership.WithLabelValues(action).Inc()
}

func (m *Domain) LiveClientConnected() {
	if m == nil {
		return
	}
	m.LiveClients.Inc()
}

func (m *Domain) LiveClientDisconnected() {
	if m == nil {
		return
	}
	m.LiveClients.Dec()
}

func (m *Domain) LiveEventPublished(eventType string) {
	if m == nil {
		return
	}
	m.LiveEventsPushed.WithLabelValues(eventType).Inc()
}
