package mail

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrymomot/mailpush/core/auth"
)

// Store persists mail copies and exposes the recipient's filter settings.
type Store interface {
	// ForbiddenKeywords returns the comma-separated keyword list of identity.
	// An unknown identity has no keywords and is not an error.
	ForbiddenKeywords(ctx context.Context, identity string) (string, error)
	// SaveDelivery stores both copies atomically and returns them with IDs set.
	SaveDelivery(ctx context.Context, inbox, sent Mail) (Mail, Mail, error)
	// SaveDraft stores a draft and returns it with its ID set.
	SaveDraft(ctx context.Context, draft Mail) (Mail, error)
}

// MemoryStore is an in-process Store for development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	nextID   int64
	mails    []Mail
	keywords map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keywords: make(map[string]string)}
}

// SetForbiddenKeywords sets the keyword list for identity. The identity is
// normalized the same way Send normalizes recipients.
func (s *MemoryStore) SetForbiddenKeywords(identity, keywords string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywords[auth.NormalizeIdentity(identity)] = keywords
}

func (s *MemoryStore) ForbiddenKeywords(_ context.Context, identity string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keywords[identity], nil
}

func (s *MemoryStore) SaveDelivery(_ context.Context, inbox, sent Mail) (Mail, Mail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inbox = s.insert(inbox)
	sent = s.insert(sent)
	return inbox, sent, nil
}

func (s *MemoryStore) SaveDraft(_ context.Context, draft Mail) (Mail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(draft), nil
}

// Get returns the stored copy with id.
func (s *MemoryStore) Get(id int64) (Mail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := slices.IndexFunc(s.mails, func(m Mail) bool { return m.ID == id })
	if i < 0 {
		return Mail{}, ErrNotFound
	}
	return s.mails[i], nil
}

// Mails returns every stored copy in insertion order.
func (s *MemoryStore) Mails() []Mail {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.mails)
}

func (s *MemoryStore) insert(m Mail) Mail {
	s.nextID++
	m.ID = s.nextID
	m.AttachmentPaths = slices.Clone(m.AttachmentPaths)
	s.mails = append(s.mails, m)
	return m
}
