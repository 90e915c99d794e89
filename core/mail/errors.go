package mail

import "errors"

var (
	ErrInvalidRecipient = errors.New("mail: invalid recipient address")
	ErrEmptySender      = errors.New("mail: empty sender")
	ErrNotFound         = errors.New("mail: not found")
)
