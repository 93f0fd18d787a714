package mocks

import (
	"context"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// MockCustomerRepository implements domain.CustomerRepository for testing
type MockCustomerRepository struct {
	FindByMobileFunc       func(ctx context.Context, mobiles []string) (*domain.Customer, error)
	FindByMobileSuffixFunc func(ctx context.Context, suffix string) (*domain.Customer, error)
	FindByUserIDFunc       func(ctx context.Context, userID uint) (*domain.Customer, error)

	// every mobile set tried, in order, for tier assertions
	MobileLookups [][]string
	SuffixLookups []string
}

// NewMockCustomerRepository creates a new MockCustomerRepository
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{}
}

func (m *MockCustomerRepository) FindByMobile(ctx context.Context, mobiles []string) (*domain.Customer, error) {
	m.MobileLookups = append(m.MobileLookups, mobiles)
	if m.FindByMobileFunc != nil {
		return m.FindByMobileFunc(ctx, mobiles)
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *MockCustomerRepository) FindByMobileSuffix(ctx context.Context, suffix string) (*domain.Customer, error) {
	m.SuffixLookups = append(m.SuffixLookups, suffix)
	if m.FindByMobileSuffixFunc != nil {
		return m.FindByMobileSuffixFunc(ctx, suffix)
	}
	return nil, domain.ErrCustomerNotFound
}

func (m *MockCustomerRepository) FindByUserID(ctx context.Context, userID uint) (*domain.Customer, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, domain.ErrCustomerNotFound
}

var _ domain.CustomerRepository = (*MockCustomerRepository)(nil)
