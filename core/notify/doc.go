// Package notify pushes new-mail events to recipients that hold an open
// websocket connection.
//
// The package is built from four pieces:
//
//   - Gate admits an upgrade request only when its token query parameter
//     carries a valid credential, and resolves the identity from it.
//   - Registry maps each identity to at most one live Channel. Registering
//     an identity again replaces the previous channel and closes it.
//   - Conn is the websocket-backed Channel. It registers itself after the
//     handshake and removes itself from the registry before Serve returns.
//   - Notifier.NotifyIfOnline delivers one event to the recipient's channel
//     if one is open. Delivery is best-effort and at-most-once: failures are
//     logged and never returned to the caller.
//
// Wiring:
//
//	registry := notify.NewRegistry(notify.WithRegistryLogger(log))
//	gate := notify.NewGate(verifier)
//	r.Handle("/ws/mail/{identity}", notify.NewHandler(gate, registry, cfg))
//
//	notifier := notify.NewNotifier(registry, notify.WithDeliveryTimeout(cfg.DeliveryTimeout))
//	notifier.NotifyIfOnline(ctx, "bob@x", "alice@x", "Hi")
//
// The frame pushed to the client is a single JSON text message:
//
//	{"type":"NEW_MAIL","from":"alice@x","subject":"Hi"}
package notify
