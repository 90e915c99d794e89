// Package pgstore is the PostgreSQL implementation of mail.Store.
package pgstore

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/mailpush/core/auth"
	"github.com/dmitrymomot/mailpush/core/mail"
	"github.com/dmitrymomot/mailpush/integration/database/pg"
)

//go:embed migrations/*.sql
var embedded embed.FS

// Migrations returns the schema migrations for pg.Migrate.
func Migrations() fs.FS {
	sub, err := fs.Sub(embedded, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists mail in PostgreSQL. Calls join a transaction attached with
// pg.WithTx; otherwise they run on the pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store over pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) db(ctx context.Context) querier {
	if tx, ok := pg.TxFromContext(ctx); ok {
		return tx
	}
	return s.pool
}

// ForbiddenKeywords returns the recipient's keyword list, or "" for unknown users.
func (s *Store) ForbiddenKeywords(ctx context.Context, identity string) (string, error) {
	var keywords string
	err := s.db(ctx).QueryRow(ctx,
		`SELECT forbidden_keywords FROM users WHERE email = $1`, identity,
	).Scan(&keywords)
	if pg.IsNotFoundError(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("select forbidden keywords: %w", err)
	}
	return keywords, nil
}

// SetForbiddenKeywords creates or updates the user's keyword list under the
// normalized identity.
func (s *Store) SetForbiddenKeywords(ctx context.Context, identity, keywords string) error {
	_, err := s.db(ctx).Exec(ctx,
		`INSERT INTO users (email, forbidden_keywords) VALUES ($1, $2)
		 ON CONFLICT (email) DO UPDATE SET forbidden_keywords = EXCLUDED.forbidden_keywords`,
		auth.NormalizeIdentity(identity), keywords,
	)
	if err != nil {
		return fmt.Errorf("upsert forbidden keywords: %w", err)
	}
	return nil
}

// SaveDelivery inserts both copies in one transaction.
func (s *Store) SaveDelivery(ctx context.Context, inbox, sent mail.Mail) (mail.Mail, mail.Mail, error) {
	save := func(ctx context.Context, q querier) error {
		var err error
		if inbox, err = insert(ctx, q, inbox); err != nil {
			return err
		}
		sent, err = insert(ctx, q, sent)
		return err
	}

	if tx, ok := pg.TxFromContext(ctx); ok {
		if err := save(ctx, tx); err != nil {
			return mail.Mail{}, mail.Mail{}, err
		}
		return inbox, sent, nil
	}

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return save(pg.WithTx(ctx, tx), tx)
	})
	if err != nil {
		return mail.Mail{}, mail.Mail{}, err
	}
	return inbox, sent, nil
}

// SaveDraft inserts a draft.
func (s *Store) SaveDraft(ctx context.Context, draft mail.Mail) (mail.Mail, error) {
	return insert(ctx, s.db(ctx), draft)
}

// Get loads one copy by ID.
func (s *Store) Get(ctx context.Context, id int64) (mail.Mail, error) {
	var m mail.Mail
	var box, status string
	err := s.db(ctx).QueryRow(ctx,
		`SELECT id, sender, recipient, subject, content, attachment_paths,
		        is_read, starred, hidden, mail_type, status, created_at
		   FROM mail_info WHERE id = $1`, id,
	).Scan(&m.ID, &m.From, &m.To, &m.Subject, &m.Content, &m.AttachmentPaths,
		&m.Read, &m.Starred, &m.Hidden, &box, &status, &m.CreatedAt)
	if pg.IsNotFoundError(err) {
		return mail.Mail{}, mail.ErrNotFound
	}
	if err != nil {
		return mail.Mail{}, fmt.Errorf("select mail: %w", err)
	}
	m.Box, m.Status = mail.Box(box), mail.Status(status)
	return m, nil
}

func insert(ctx context.Context, q querier, m mail.Mail) (mail.Mail, error) {
	paths := m.AttachmentPaths
	if paths == nil {
		paths = []string{}
	}
	err := q.QueryRow(ctx,
		`INSERT INTO mail_info
		    (sender, recipient, subject, content, attachment_paths, is_read, starred, hidden, mail_type, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		m.From, m.To, m.Subject, m.Content, paths, m.Read, m.Starred, m.Hidden,
		string(m.Box), string(m.Status), m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return mail.Mail{}, fmt.Errorf("insert %s mail: %w", m.Box, err)
	}
	return m, nil
}
