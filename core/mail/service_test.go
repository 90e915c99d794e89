package mail_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailpush/core/mail"
)

var fixedNow = time.Date(2025, 6, 26, 13, 8, 0, 0, time.UTC)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyIfOnline(ctx context.Context, recipient, sender, subject string) {
	m.Called(ctx, recipient, sender, subject)
}

type failingStore struct {
	mail.Store
	keywordsErr error
	saveErr     error
}

func (s failingStore) ForbiddenKeywords(context.Context, string) (string, error) {
	return "", s.keywordsErr
}

func (s failingStore) SaveDelivery(_ context.Context, inbox, sent mail.Mail) (mail.Mail, mail.Mail, error) {
	return inbox, sent, s.saveErr
}

func newService(store mail.Store, n mail.Notifier) *mail.Service {
	return mail.NewService(store, n, mail.WithClock(func() time.Time { return fixedNow }))
}

func TestService_Send(t *testing.T) {
	t.Parallel()

	store := mail.NewMemoryStore()
	notifier := &mockNotifier{}
	notifier.On("NotifyIfOnline", mock.Anything, "bob@x", "alice@x", "Hi").Once()

	sent, err := newService(store, notifier).Send(context.Background(), "alice@x", mail.Draft{
		ReceiverEmail:   "Bob@X",
		Subject:         "Hi",
		Content:         "Lunch?",
		AttachmentPaths: []string{"/files/menu.pdf"},
	})
	require.NoError(t, err)
	notifier.AssertExpectations(t)

	assert.Equal(t, mail.BoxSent, sent.Box)
	assert.Equal(t, mail.StatusNormal, sent.Status)
	assert.NotZero(t, sent.ID)

	mails := store.Mails()
	require.Len(t, mails, 2)

	inbox := mails[0]
	assert.Equal(t, mail.BoxInbox, inbox.Box)
	assert.Equal(t, mail.StatusNormal, inbox.Status)
	assert.Equal(t, "alice@x", inbox.From)
	assert.Equal(t, "bob@x", inbox.To)
	assert.Equal(t, []string{"/files/menu.pdf"}, inbox.AttachmentPaths)
	assert.Equal(t, fixedNow, inbox.CreatedAt)
	assert.False(t, inbox.Read)
	assert.False(t, inbox.Starred)
	assert.False(t, inbox.Hidden)

	assert.Equal(t, sent, mails[1])
}

func TestService_Send_SpamDoesNotNotify(t *testing.T) {
	t.Parallel()

	store := mail.NewMemoryStore()
	store.SetForbiddenKeywords("bob@x", "lottery, casino")
	notifier := &mockNotifier{}

	sent, err := newService(store, notifier).Send(context.Background(), "alice@x", mail.Draft{
		ReceiverEmail: "bob@x",
		Subject:       "You won the LOTTERY",
		Content:       "claim now",
	})
	require.NoError(t, err)

	notifier.AssertNotCalled(t, "NotifyIfOnline", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, mail.StatusNormal, sent.Status, "sender copy is always normal")

	mails := store.Mails()
	require.Len(t, mails, 2)
	assert.Equal(t, mail.StatusSpam, mails[0].Status)
}

func TestService_Send_KeywordsMatchNormalizedRecipient(t *testing.T) {
	t.Parallel()

	store := mail.NewMemoryStore()
	store.SetForbiddenKeywords("  Bob@X ", "casino")
	notifier := &mockNotifier{}

	_, err := newService(store, notifier).Send(context.Background(), "alice@x", mail.Draft{
		ReceiverEmail: "bob@x",
		Subject:       "Casino night",
	})
	require.NoError(t, err)

	notifier.AssertNotCalled(t, "NotifyIfOnline", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mails := store.Mails()
	require.Len(t, mails, 2)
	assert.Equal(t, mail.StatusSpam, mails[0].Status)

	kw, err := store.ForbiddenKeywords(context.Background(), "bob@x")
	require.NoError(t, err)
	assert.Equal(t, "casino", kw)
}

func TestService_Send_NilNotifier(t *testing.T) {
	t.Parallel()

	_, err := newService(mail.NewMemoryStore(), nil).Send(context.Background(), "alice@x", mail.Draft{ReceiverEmail: "bob@x"})
	assert.NoError(t, err)
}

func TestService_Send_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from string
		to   string
		err  error
	}{
		{"empty_sender", " ", "bob@x", mail.ErrEmptySender},
		{"empty_recipient", "alice@x", "", mail.ErrInvalidRecipient},
		{"recipient_without_at", "alice@x", "bob", mail.ErrInvalidRecipient},
		{"recipient_two_at", "alice@x", "bob@@x", mail.ErrInvalidRecipient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := mail.NewMemoryStore()
			notifier := &mockNotifier{}
			_, err := newService(store, notifier).Send(context.Background(), tt.from, mail.Draft{ReceiverEmail: tt.to, Subject: "Hi"})

			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, store.Mails())
			notifier.AssertNotCalled(t, "NotifyIfOnline", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_Send_StoreErrors(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("connection reset")

	t.Run("keywords", func(t *testing.T) {
		t.Parallel()
		notifier := &mockNotifier{}
		_, err := newService(failingStore{keywordsErr: dbErr}, notifier).Send(context.Background(), "alice@x", mail.Draft{ReceiverEmail: "bob@x"})
		assert.ErrorIs(t, err, dbErr)
		notifier.AssertNotCalled(t, "NotifyIfOnline", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("save", func(t *testing.T) {
		t.Parallel()
		notifier := &mockNotifier{}
		_, err := newService(failingStore{saveErr: dbErr}, notifier).Send(context.Background(), "alice@x", mail.Draft{ReceiverEmail: "bob@x"})
		assert.ErrorIs(t, err, dbErr)
		notifier.AssertNotCalled(t, "NotifyIfOnline", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_SaveDraft(t *testing.T) {
	t.Parallel()

	store := mail.NewMemoryStore()
	notifier := &mockNotifier{}

	draft, err := newService(store, notifier).SaveDraft(context.Background(), "alice@x", mail.Draft{
		ReceiverEmail: "bo",
		Subject:       "unfinished",
	})
	require.NoError(t, err)
	notifier.AssertNotCalled(t, "NotifyIfOnline", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	assert.Equal(t, mail.StatusDraft, draft.Status)
	assert.Equal(t, mail.BoxDraft, draft.Box)
	assert.Equal(t, "bo", draft.To)

	got, err := store.Get(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft, got)

	_, err = newService(store, notifier).SaveDraft(context.Background(), "", mail.Draft{})
	assert.ErrorIs(t, err, mail.ErrEmptySender)
}
