package auth

import "errors"

var (
	ErrMissingSecret   = errors.New("auth: signing secret is required")
	ErrInvalidIdentity = errors.New("auth: identity must be a non-empty email address")
	ErrInvalidTTL      = errors.New("auth: token ttl must be positive")
)
