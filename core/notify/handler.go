package notify

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/mailpush/core/auth"
	"github.com/dmitrymomot/mailpush/core/logger"
)

// IdentityParam is the chi URL parameter naming the mailbox in the endpoint path.
const IdentityParam = "identity"

// Handler serves the websocket endpoint. Requests rejected by the Gate get a
// bare 401 and are never upgraded.
type Handler struct {
	gate     *Gate
	registry *Registry
	cfg      Config
	upgrader websocket.Upgrader
	logger   *slog.Logger
	metrics  *Metrics
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger sets the logger for connection events.
func WithHandlerLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.logger = log
		}
	}
}

// WithHandlerMetrics records handshake results.
func WithHandlerMetrics(m *Metrics) HandlerOption {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithOriginCheck overrides the upgrade origin check.
func WithOriginCheck(fn func(r *http.Request) bool) HandlerOption {
	return func(h *Handler) {
		h.upgrader.CheckOrigin = fn
	}
}

// NewHandler creates the endpoint handler.
func NewHandler(gate *Gate, registry *Registry, cfg Config, opts ...HandlerOption) *Handler {
	cfg = cfg.withDefaults()
	h := &Handler{
		gate:     gate,
		registry: registry,
		cfg:      cfg,
		logger:   logger.Discard(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:   cfg.ReadBufferSize,
			WriteBufferSize:  cfg.WriteBufferSize,
			HandshakeTimeout: cfg.HandshakeTimeout,
			CheckOrigin:      originChecker(cfg.AllowedOrigins),
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, err := h.gate.Admit(r)
	if err != nil {
		result := HandshakeInvalidToken
		if errors.Is(err, ErrMissingToken) {
			result = HandshakeMissingToken
		}
		h.metrics.handshake(result)
		h.logger.Debug("handshake rejected",
			logger.Component("notify"),
			logger.Result(result),
			logger.RemoteAddr(r.RemoteAddr),
		)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if p := chi.URLParam(r, IdentityParam); p != "" && auth.NormalizeIdentity(p) != identity {
		h.logger.Debug("path identity differs from credential",
			logger.Component("notify"),
			logger.Identity(identity),
			logger.Key("path_identity", p),
		)
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.metrics.handshake(HandshakeUpgradeFailed)
		h.logger.Debug("websocket upgrade failed", logger.Component("notify"), logger.Error(err))
		return
	}
	h.metrics.handshake(HandshakeAdmitted)

	conn := NewConn(ws, identity, h.registry, h.cfg, h.logger)
	h.registry.Register(identity, conn)
	h.logger.Info("channel opened",
		logger.Component("notify"),
		logger.Identity(identity),
		logger.ConnID(conn.ID()),
	)

	start := time.Now()
	ctx := WithIdentity(r.Context(), identity)
	if err := conn.Serve(ctx); err != nil {
		h.logger.Debug("channel error",
			logger.Component("notify"),
			logger.Identity(identity),
			logger.ConnID(conn.ID()),
			logger.Error(err),
		)
	}
	h.logger.Info("channel closed",
		logger.Component("notify"),
		logger.Identity(identity),
		logger.ConnID(conn.ID()),
		logger.Duration(time.Since(start)),
	)
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}
