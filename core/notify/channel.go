package notify

import "context"

// Channel is a live push endpoint bound to one identity.
// Implementations must be pointer types: the registry compares channels by identity of the value.
type Channel interface {
	// ID uniquely identifies the connection, for logs.
	ID() string
	// Identity is the verified identity captured at construction.
	Identity() string
	// Open reports whether frames can still be written.
	Open() bool
	// Deliver writes one event frame, bounded by ctx and the channel's write timeout.
	Deliver(ctx context.Context, ev Event) error
	// Close releases the connection. Safe to call more than once.
	Close() error
}
