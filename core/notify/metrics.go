package notify

import "github.com/prometheus/client_golang/prometheus"

// Delivery results recorded by Notifier.
const (
	ResultDelivered = "delivered"
	ResultOffline   = "offline"
	ResultClosed    = "closed"
	ResultFailed    = "failed"
	ResultRelayed   = "relayed"
)

// Handshake results recorded by Handler.
const (
	HandshakeAdmitted      = "admitted"
	HandshakeMissingToken  = "missing_token"
	HandshakeInvalidToken  = "invalid_token"
	HandshakeUpgradeFailed = "upgrade_failed"
)

// Metrics holds the notification collectors. A nil *Metrics records nothing.
type Metrics struct {
	sessions      prometheus.Gauge
	handshakes    *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// It panics if they are already registered, like prometheus.MustRegister.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mailpush_ws_sessions_active",
			Help: "Number of identities with a registered websocket channel",
		}),
		handshakes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mailpush_ws_handshakes_total",
			Help: "Websocket handshake attempts by result",
		}, []string{"result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mailpush_notifications_total",
			Help: "New-mail notification attempts by result",
		}, []string{"result"}),
	}
	reg.MustRegister(m.sessions, m.handshakes, m.notifications)
	return m
}

// RegistryOptions returns hooks that keep the active sessions gauge in sync with registry.
func (m *Metrics) RegistryOptions() []RegistryOption {
	if m == nil {
		return nil
	}
	return []RegistryOption{
		WithOnRegister(func(string, Channel) { m.sessions.Inc() }),
		WithOnUnregister(func(string, Channel) { m.sessions.Dec() }),
	}
}

func (m *Metrics) handshake(result string) {
	if m == nil {
		return
	}
	m.handshakes.WithLabelValues(result).Inc()
}

func (m *Metrics) notification(result string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(result).Inc()
}
