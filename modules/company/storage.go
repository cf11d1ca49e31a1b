package company

import (
	"context"

	"github.com/google/uuid"
)

// CompanyStore persists companies. Implementations return
// ErrCompanyNotFound when no row matches and ErrRegistrationNumberUsed
// on a duplicate registration number.
type CompanyStore interface {
	Create(ctx context.Context, company *Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	Update(ctx context.Context, company *Company) (*Company, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all companies ordered by name.
	List(ctx context.Context) ([]Company, error)
}
