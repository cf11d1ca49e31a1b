package company

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryCompanyStore is an in-memory CompanyStore for tests and
// development.
type MemoryCompanyStore struct {
	mu       sync.RWMutex
	byID     map[uuid.UUID]*Company
	byRegNum map[string]uuid.UUID
}

// NewMemoryCompanyStore returns an empty MemoryCompanyStore.
func NewMemoryCompanyStore() *MemoryCompanyStore {
	return &MemoryCompanyStore{
		byID:     make(map[uuid.UUID]*Company),
		byRegNum: make(map[string]uuid.UUID),
	}
}

func (s *MemoryCompanyStore) Create(ctx context.Context, company *Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byRegNum[company.RegistrationNumber]; exists {
		return ErrRegistrationNumberUsed
	}

	cp := *company
	s.byID[cp.ID] = &cp
	s.byRegNum[cp.RegistrationNumber] = cp.ID
	return nil
}

func (s *MemoryCompanyStore) FindByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	company, ok := s.byID[id]
	if !ok {
		return nil, ErrCompanyNotFound
	}
	cp := *company
	return &cp, nil
}

func (s *MemoryCompanyStore) Update(ctx context.Context, company *Company) (*Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[company.ID]
	if !ok {
		return nil, ErrCompanyNotFound
	}

	if company.RegistrationNumber != existing.RegistrationNumber {
		if _, taken := s.byRegNum[company.RegistrationNumber]; taken {
			return nil, ErrRegistrationNumberUsed
		}
		delete(s.byRegNum, existing.RegistrationNumber)
		s.byRegNum[company.RegistrationNumber] = company.ID
	}

	cp := *company
	cp.CreatedBy = existing.CreatedBy
	cp.CreatedAt = existing.CreatedAt
	s.byID[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *MemoryCompanyStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	company, ok := s.byID[id]
	if !ok {
		return ErrCompanyNotFound
	}
	delete(s.byRegNum, company.RegistrationNumber)
	delete(s.byID, id)
	return nil
}

func (s *MemoryCompanyStore) List(ctx context.Context) ([]Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Company, 0, len(s.byID))
	for _, company := range s.byID {
		out = append(out, *company)
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}
