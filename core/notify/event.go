package notify

import (
	"bytes"
	"encoding/json"
)

// KindNewMail is the only event kind pushed today.
const KindNewMail = "NEW_MAIL"

// Event is a single advisory message pushed to an online recipient.
// Field order defines the wire order.
type Event struct {
	Type    string `json:"type"`
	From    string `json:"from"`
	Subject string `json:"subject"`
}

// NewMailEvent builds the NEW_MAIL event for a delivered mail.
func NewMailEvent(from, subject string) Event {
	return Event{Type: KindNewMail, From: from, Subject: subject}
}

// Encode returns the text frame for the event. Quotes and control characters
// in From and Subject are escaped; HTML characters are left as is.
func (e Event) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
