package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore persists sessions in PostgreSQL via a pgx connection pool.
// Every operation is a single statement, so context cancellation can
// never leave a session half-mutated.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore wraps an existing connection pool. The pool's lifecycle
// (connect at startup, close at shutdown) belongs to the caller.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

const sessionColumns = `id, user_id,
	COALESCE(browser_name, ''), COALESCE(cpu_architecture, ''),
	COALESCE(device_model, ''), COALESCE(device_type, ''), COALESCE(device_vendor, ''),
	COALESCE(os_name, ''), COALESCE(os_version, ''),
	created_at, updated_at, expires_at`

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	err := row.Scan(
		&s.ID, &s.UserID,
		&s.Device.BrowserName, &s.Device.CPUArchitecture,
		&s.Device.DeviceModel, &s.Device.DeviceType, &s.Device.DeviceVendor,
		&s.Device.OSName, &s.Device.OSVersion,
		&s.CreatedAt, &s.UpdatedAt, &s.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (s *PgStore) Create(ctx context.Context, sess *Session) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (
			id, token, user_id,
			browser_name, cpu_architecture, device_model, device_type, device_vendor,
			os_name, os_version,
			created_at, updated_at, expires_at
		) VALUES (
			$1, $2, $3,
			NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''),
			NULLIF($9, ''), NULLIF($10, ''),
			$11, $12, $13
		)`,
		sess.ID, sess.Token, sess.UserID,
		sess.Device.BrowserName, sess.Device.CPUArchitecture,
		sess.Device.DeviceModel, sess.Device.DeviceType, sess.Device.DeviceVendor,
		sess.Device.OSName, sess.Device.OSVersion,
		sess.CreatedAt, sess.UpdatedAt, sess.ExpiresAt,
	)
	return err
}

func (s *PgStore) FindValidByToken(ctx context.Context, token string, now time.Time) (*Session, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE token = $1 AND expires_at > $2`,
		token, now,
	)
	sess, err := scanSession(row)
	if err != nil {
		return nil, err
	}
	sess.Token = token
	return sess, nil
}

func (s *PgStore) RenewExpiry(ctx context.Context, id uuid.UUID, expiresAt, updatedAt time.Time) (*Session, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE sessions
		SET expires_at = $2, updated_at = $3
		WHERE id = $1
		RETURNING `+sessionColumns,
		id, expiresAt, updatedAt,
	)
	return scanSession(row)
}

func (s *PgStore) Invalidate(ctx context.Context, id uuid.UUID, updatedAt time.Time) (*Session, error) {
	// Backdating to created_at - 1 day keeps the row for audit history
	// while guaranteeing it reads as expired under any clock.
	row := s.pool.QueryRow(ctx, `
		UPDATE sessions
		SET expires_at = created_at - INTERVAL '1 day', updated_at = $2
		WHERE id = $1
		RETURNING `+sessionColumns,
		id, updatedAt,
	)
	return scanSession(row)
}

func (s *PgStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE user_id = $1
		ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sess)
	}
	return out, rows.Err()
}
