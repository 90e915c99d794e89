// Package auth verifies and issues the bearer credentials that bind a client
// to a mailbox identity.
//
// A credential is an HMAC-signed JWT whose subject is the identity (an email
// address) and whose exp claim bounds its lifetime. Verifier.Verify is the
// boundary-facing check: it never returns an error value, only the identity
// or a negative outcome, and it never logs the credential itself.
//
//	svc, _ := auth.NewService(cfg)
//	verifier := auth.NewVerifier(svc, auth.WithLogger(log))
//	identity, ok := verifier.Verify("Bearer " + token)
//
// Issuer mints credentials for tooling and tests.
package auth
