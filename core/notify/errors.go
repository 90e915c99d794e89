package notify

import "errors"

var (
	// ErrMissingToken is returned by Gate.Admit when the request carries no token parameter.
	ErrMissingToken = errors.New("notify: missing token")
	// ErrInvalidToken is returned by Gate.Admit when the credential does not verify.
	ErrInvalidToken = errors.New("notify: invalid token")
	// ErrChannelClosed is returned by Deliver on a channel that is no longer open.
	ErrChannelClosed = errors.New("notify: channel closed")
)
