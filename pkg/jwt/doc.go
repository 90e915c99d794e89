// Package jwt provides RFC 7519 JSON Web Token generation and validation using
// HMAC signatures (HS256, HS384, HS512).
//
// The package is a thin service layer over github.com/golang-jwt/jwt/v4 that
// pins the accepted signing algorithm, validates temporal claims against an
// injectable clock and maps library errors onto a small set of sentinel errors.
//
// # Usage
//
//	service, err := jwt.NewFromString("your-secret-key", jwt.WithAlgorithm(jwt.HS512))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	token, err := service.Generate(jwt.StandardClaims{
//		Subject:   "alice@example.com",
//		IssuedAt:  time.Now().Unix(),
//		ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
//	})
//
//	var claims jwt.StandardClaims
//	if err := service.Parse(token, &claims); err != nil {
//		switch {
//		case errors.Is(err, jwt.ErrExpiredToken):
//			// token is past its exp claim
//		case errors.Is(err, jwt.ErrInvalidSignature):
//			// signed with another key or algorithm
//		default:
//			// malformed
//		}
//	}
//
// Custom claims embed StandardClaims:
//
//	type SessionClaims struct {
//		jwt.StandardClaims
//		Role string `json:"role"`
//	}
//
// # Error Handling
//
//   - ErrInvalidToken: malformed token or nbf in the future
//   - ErrExpiredToken: token past expiration time
//   - ErrInvalidSignature: signature verification failed or algorithm not accepted
//   - ErrUnexpectedSigningMethod: token declares a non-HMAC algorithm
//   - ErrMissingSigningKey: service created without key
//   - ErrMissingClaims: Generate or Parse called with nil claims
package jwt
