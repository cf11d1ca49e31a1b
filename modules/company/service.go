package company

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service implements company management. All authorization happens in
// the HTTP layer; the service trusts its callers.
type Service struct {
	store CompanyStore
	log   *slog.Logger
	now   func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger used for service events.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// WithServiceClock overrides the time source, for tests.
func WithServiceClock(now func() time.Time) ServiceOption {
	return func(s *Service) { s.now = now }
}

// NewService builds the company service.
func NewService(store CompanyStore, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		log:   slog.New(slog.DiscardHandler),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CompanyParams carries create and update input.
type CompanyParams struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber"`
	Address            string `json:"address"`
	Website            string `json:"website"`
	Notes              string `json:"notes"`
}

func (p *CompanyParams) validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.RegistrationNumber = strings.TrimSpace(p.RegistrationNumber)
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidParams)
	}
	if p.RegistrationNumber == "" {
		return fmt.Errorf("%w: registration number is required", ErrInvalidParams)
	}
	return nil
}

// Create registers a new company attributed to the acting user.
func (s *Service) Create(ctx context.Context, createdBy uuid.UUID, params CompanyParams) (*Company, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	now := s.now()
	company := &Company{
		ID:                 uuid.New(),
		Name:               params.Name,
		RegistrationNumber: params.RegistrationNumber,
		Address:            strings.TrimSpace(params.Address),
		Website:            strings.TrimSpace(params.Website),
		Notes:              strings.TrimSpace(params.Notes),
		CreatedBy:          createdBy,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.store.Create(ctx, company); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "company created",
		slog.String("company_id", company.ID.String()),
		slog.String("user_id", createdBy.String()),
	)
	return company, nil
}

// Get returns a single company.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Company, error) {
	return s.store.FindByID(ctx, id)
}

// List returns all companies ordered by name.
func (s *Service) List(ctx context.Context) ([]Company, error) {
	return s.store.List(ctx)
}

// Update replaces a company's editable fields.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params CompanyParams) (*Company, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ctx, &Company{
		ID:                 id,
		Name:               params.Name,
		RegistrationNumber: params.RegistrationNumber,
		Address:            strings.TrimSpace(params.Address),
		Website:            strings.TrimSpace(params.Website),
		Notes:              strings.TrimSpace(params.Notes),
		UpdatedAt:          s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "company updated", slog.String("company_id", id.String()))
	return updated, nil
}

// Delete removes a company.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "company deleted", slog.String("company_id", id.String()))
	return nil
}
