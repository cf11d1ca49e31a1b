package company

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/registrahq/registra/pkg/pg"
)

// PgCompanyStore persists companies in PostgreSQL via a pgx connection
// pool.
type PgCompanyStore struct {
	pool *pgxpool.Pool
}

// NewPgCompanyStore wraps an existing connection pool owned by the
// caller.
func NewPgCompanyStore(pool *pgxpool.Pool) *PgCompanyStore {
	return &PgCompanyStore{pool: pool}
}

const companyColumns = `id, name, registration_number,
	COALESCE(address, ''), COALESCE(website, ''), COALESCE(notes, ''),
	created_by, created_at, updated_at`

func scanCompany(row pgx.Row) (*Company, error) {
	var c Company
	err := row.Scan(
		&c.ID, &c.Name, &c.RegistrationNumber,
		&c.Address, &c.Website, &c.Notes,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *PgCompanyStore) Create(ctx context.Context, company *Company) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO companies (
			id, name, registration_number, address, website, notes,
			created_by, created_at, updated_at
		) VALUES (
			$1, $2, $3,
			NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''),
			$7, $8, $9
		)`,
		company.ID, company.Name, company.RegistrationNumber,
		company.Address, company.Website, company.Notes,
		company.CreatedBy, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrRegistrationNumberUsed
		}
		return err
	}
	return nil
}

func (s *PgCompanyStore) FindByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+companyColumns+`
		FROM companies
		WHERE id = $1`,
		id,
	)
	return scanCompany(row)
}

func (s *PgCompanyStore) Update(ctx context.Context, company *Company) (*Company, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE companies
		SET name = $2, registration_number = $3,
			address = NULLIF($4, ''), website = NULLIF($5, ''), notes = NULLIF($6, ''),
			updated_at = $7
		WHERE id = $1
		RETURNING `+companyColumns,
		company.ID, company.Name, company.RegistrationNumber,
		company.Address, company.Website, company.Notes,
		company.UpdatedAt,
	)
	updated, err := scanCompany(row)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return nil, ErrRegistrationNumberUsed
		}
		return nil, err
	}
	return updated, nil
}

func (s *PgCompanyStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (s *PgCompanyStore) List(ctx context.Context) ([]Company, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+companyColumns+`
		FROM companies
		ORDER BY LOWER(name) ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *company)
	}
	return out, rows.Err()
}
