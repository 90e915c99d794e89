package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/mailpush/core/logger"
)

const closeWriteWait = time.Second

// Conn is the websocket-backed Channel for one admitted client.
type Conn struct {
	id       string
	identity string
	ws       *websocket.Conn
	registry *Registry
	cfg      Config
	logger   *slog.Logger

	// writeSem serializes data frames; acquisition honours the caller's context.
	writeSem  chan struct{}
	closed    atomic.Bool
	closeOnce sync.Once
	done      chan struct{}
}

// NewConn wraps an upgraded websocket connection for identity.
// The caller registers the Conn and then runs Serve.
func NewConn(ws *websocket.Conn, identity string, registry *Registry, cfg Config, log *slog.Logger) *Conn {
	if log == nil {
		log = logger.Discard()
	}
	c := &Conn{
		id:       uuid.NewString(),
		identity: identity,
		ws:       ws,
		registry: registry,
		cfg:      cfg.withDefaults(),
		writeSem: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	c.logger = log.With(logger.Component("notify"), logger.Identity(identity), logger.ConnID(c.id))
	return c
}

func (c *Conn) ID() string       { return c.id }
func (c *Conn) Identity() string { return c.identity }
func (c *Conn) Open() bool       { return !c.closed.Load() }

// Deliver writes ev as one text frame. The write is bounded by the earlier of
// ctx's deadline and WriteTimeout. A failed write closes the connection.
func (c *Conn) Deliver(ctx context.Context, ev Event) error {
	if !c.Open() {
		return ErrChannelClosed
	}

	frame, err := ev.Encode()
	if err != nil {
		return err
	}

	select {
	case c.writeSem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrChannelClosed
	}
	defer func() { <-c.writeSem }()

	if !c.Open() {
		return ErrChannelClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	deadline := time.Now().Add(c.cfg.WriteTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.ws.SetWriteDeadline(deadline); err != nil {
		_ = c.Close()
		return err
	}
	if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
		_ = c.Close()
		return err
	}
	return nil
}

// Close sends a normal close frame and releases the connection.
func (c *Conn) Close() error {
	return c.closeWith(websocket.CloseNormalClosure, "")
}

func (c *Conn) closeWith(code int, text string) error {
	var err error
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.done)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(code, text),
			time.Now().Add(closeWriteWait))
		err = c.ws.Close()
	})
	return err
}

// Serve keeps the connection alive until the peer closes it, the idle timeout
// expires, the connection is closed locally or ctx is done. Before returning
// it removes the connection from the registry if it is still the bound one.
func (c *Conn) Serve(ctx context.Context) error {
	defer func() {
		if c.registry.Remove(c.identity, c) {
			c.logger.Debug("channel unregistered")
		}
		_ = c.Close()
	}()

	c.ws.SetReadLimit(c.cfg.ReadLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	readErr := make(chan error, 1)
	go c.readPump(readErr)

	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = c.closeWith(websocket.CloseGoingAway, "server shutting down")
			return nil
		case <-c.done:
			return nil
		case err := <-readErr:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				return nil
			}
			if !c.Open() || errors.Is(err, websocket.ErrCloseSent) {
				return nil
			}
			return err
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.cfg.WriteTimeout)); err != nil {
				return err
			}
		}
	}
}

// readPump discards client frames; reading is required to process control frames.
func (c *Conn) readPump(errc chan<- error) {
	for {
		// Any inbound frame counts as activity.
		if _, _, err := c.ws.NextReader(); err != nil {
			errc <- err
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	}
}
