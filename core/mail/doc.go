// Package mail implements mail submission: the recipient's keyword filter,
// the inbox and sent copies, drafts, and the new-mail notification that
// follows a successful delivery.
//
//	svc := mail.NewService(store, notifier, mail.WithLogger(log))
//	sent, err := svc.Send(ctx, "alice@x", mail.Draft{
//		ReceiverEmail: "bob@x",
//		Subject:       "Hi",
//		Content:       "Lunch?",
//	})
//
// Send stores both copies in one store call and only then notifies the
// recipient, and only when the inbox copy was not filtered as spam.
// Notification is best-effort and never changes Send's result.
package mail
