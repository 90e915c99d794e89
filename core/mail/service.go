package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/mailpush/core/auth"
	"github.com/dmitrymomot/mailpush/core/logger"
)

// Notifier pushes a new-mail event to an online recipient.
// *notify.Notifier implements it.
type Notifier interface {
	NotifyIfOnline(ctx context.Context, recipient, sender, subject string)
}

// Service submits mail on behalf of an authenticated sender.
type Service struct {
	store    Store
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithClock overrides the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a Service. notifier may be nil, which disables notifications.
func NewService(store Store, notifier Notifier, opts ...Option) *Service {
	s := &Service{
		store:    store,
		notifier: notifier,
		logger:   logger.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send delivers draft from sender and returns the sender's copy.
// The recipient copy is marked spam when it matches the recipient's
// forbidden keywords; only a normal copy triggers a notification.
func (s *Service) Send(ctx context.Context, from string, d Draft) (Mail, error) {
	from, to, err := addresses(from, d.ReceiverEmail)
	if err != nil {
		return Mail{}, err
	}

	keywords, err := s.store.ForbiddenKeywords(ctx, to)
	if err != nil {
		return Mail{}, fmt.Errorf("load recipient filter: %w", err)
	}

	status := StatusNormal
	if IsSpam(keywords, d.Subject, d.Content) {
		status = StatusSpam
	}

	now := s.now().UTC()
	inbox := s.copyOf(from, to, d, now)
	inbox.Box = BoxInbox
	inbox.Status = status

	sent := s.copyOf(from, to, d, now)
	sent.Box = BoxSent
	sent.Status = StatusNormal

	inbox, sent, err = s.store.SaveDelivery(ctx, inbox, sent)
	if err != nil {
		return Mail{}, fmt.Errorf("save delivery: %w", err)
	}

	s.logger.InfoContext(ctx, "mail sent",
		logger.Component("mail"),
		logger.Identity(from),
		logger.Key("to", to),
		logger.Result(string(inbox.Status)),
	)

	if inbox.Status == StatusNormal && s.notifier != nil {
		s.notifier.NotifyIfOnline(ctx, to, from, d.Subject)
	}

	return sent, nil
}

// SaveDraft stores d as a draft of sender. Drafts never notify.
// The receiver may be empty or incomplete.
func (s *Service) SaveDraft(ctx context.Context, from string, d Draft) (Mail, error) {
	from = auth.NormalizeIdentity(from)
	if from == "" {
		return Mail{}, ErrEmptySender
	}

	draft := s.copyOf(from, strings.TrimSpace(d.ReceiverEmail), d, s.now().UTC())
	draft.Box = BoxDraft
	draft.Status = StatusDraft

	draft, err := s.store.SaveDraft(ctx, draft)
	if err != nil {
		return Mail{}, fmt.Errorf("save draft: %w", err)
	}
	return draft, nil
}

func (s *Service) copyOf(from, to string, d Draft, now time.Time) Mail {
	paths := d.AttachmentPaths
	if paths == nil {
		paths = []string{}
	}
	return Mail{
		From:            from,
		To:              to,
		Subject:         d.Subject,
		Content:         d.Content,
		AttachmentPaths: append([]string(nil), paths...),
		CreatedAt:       now,
	}
}

func addresses(from, to string) (string, string, error) {
	from = auth.NormalizeIdentity(from)
	if from == "" {
		return "", "", ErrEmptySender
	}
	to = auth.NormalizeIdentity(to)
	if !auth.ValidIdentity(to) {
		return "", "", ErrInvalidRecipient
	}
	return from, to, nil
}
