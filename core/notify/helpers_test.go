package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpush/core/auth"
	"github.com/dmitrymomot/mailpush/core/notify"
)

type fakeChannel struct {
	id       string
	identity string

	mu         sync.Mutex
	closed     bool
	closeCalls int
	events     []notify.Event
	deliverErr error
	block      bool
	panics     bool
}

func newFakeChannel(id, identity string) *fakeChannel {
	return &fakeChannel{id: id, identity: identity}
}

func (f *fakeChannel) ID() string       { return f.id }
func (f *fakeChannel) Identity() string { return f.identity }

func (f *fakeChannel) Open() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.closed
}

func (f *fakeChannel) Deliver(ctx context.Context, ev notify.Event) error {
	f.mu.Lock()
	closed, block, panics, err := f.closed, f.block, f.panics, f.deliverErr
	f.mu.Unlock()

	if panics {
		panic("boom")
	}
	if closed {
		return notify.ErrChannelClosed
	}
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.events = append(f.events, ev)
	f.mu.Unlock()
	return nil
}

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closeCalls++
	f.closed = true
	return nil
}

func (f *fakeChannel) Events() []notify.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notify.Event(nil), f.events...)
}

func (f *fakeChannel) CloseCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closeCalls
}

var errWrite = errors.New("broken pipe")

type fakeVerifier map[string]string

func (v fakeVerifier) Verify(raw string) (string, bool) {
	id, ok := v[auth.StripScheme(raw)]
	return id, ok
}

func mustGatherCount(t *testing.T, reg *prometheus.Registry, name string) int {
	t.Helper()
	n, err := testutil.GatherAndCount(reg, name)
	require.NoError(t, err)
	return n
}
