package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/registrahq/registra/pkg/pg"
)

// PgUserStore persists users in PostgreSQL via a pgx connection pool.
// Capabilities live in a text[] column so grants stay queryable without
// a join table.
type PgUserStore struct {
	pool *pgxpool.Pool
}

// NewPgUserStore wraps an existing connection pool owned by the caller.
func NewPgUserStore(pool *pgxpool.Pool) *PgUserStore {
	return &PgUserStore{pool: pool}
}

const userColumns = `id, email, name, password_hash, role, capabilities, status, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash,
		&u.Role, &u.Capabilities, &u.Status,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.Capabilities == nil {
		u.Capabilities = []string{}
	}
	return &u, nil
}

func (s *PgUserStore) Create(ctx context.Context, user *User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (
			id, email, name, password_hash, role, capabilities, status,
			created_at, updated_at
		) VALUES ($1, LOWER($2), $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Email, user.Name, user.PasswordHash,
		user.Role, user.Capabilities, user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *PgUserStore) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (s *PgUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = LOWER($1)`,
		email,
	)
	return scanUser(row)
}

func (s *PgUserStore) Approve(ctx context.Context, id uuid.UUID, role string, capabilities []string, updatedAt time.Time) (*User, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE users
		SET status = $2, role = $3, capabilities = $4, updated_at = $5
		WHERE id = $1
		RETURNING `+userColumns,
		id, StatusApproved, role, capabilities, updatedAt,
	)
	return scanUser(row)
}

func (s *PgUserStore) Reject(ctx context.Context, id uuid.UUID, updatedAt time.Time) (*User, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE users
		SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING `+userColumns,
		id, StatusRejected, updatedAt,
	)
	return scanUser(row)
}

func (s *PgUserStore) ListPending(ctx context.Context) ([]User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE status = $1
		ORDER BY created_at ASC`,
		StatusPending,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *user)
	}
	return out, rows.Err()
}
