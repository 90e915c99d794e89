package mail

import "time"

// Box is the mailbox view a stored copy belongs to.
type Box string

const (
	BoxInbox Box = "inbox"
	BoxSent  Box = "sent"
	BoxDraft Box = "draft"
)

// Status is the disposition of a stored copy.
type Status string

const (
	StatusNormal Status = "normal"
	StatusSpam   Status = "spam"
	StatusDraft  Status = "draft"
)

// Mail is one stored copy of a message. Sending produces two copies: the
// recipient's inbox copy and the sender's sent copy.
type Mail struct {
	ID              int64     `json:"id"`
	From            string    `json:"from"`
	To              string    `json:"to"`
	Subject         string    `json:"subject"`
	Content         string    `json:"content"`
	AttachmentPaths []string  `json:"attachmentPaths"`
	Read            bool      `json:"read"`
	Starred         bool      `json:"starred"`
	Hidden          bool      `json:"hidden"`
	Box             Box       `json:"mailType"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"timestamp"`
}

// Draft is the client's submission payload.
type Draft struct {
	ReceiverEmail   string   `json:"receiverEmail"`
	Subject         string   `json:"subject"`
	Content         string   `json:"content"`
	AttachmentPaths []string `json:"attachmentPaths"`
}
