package mocks

import (
	"context"
	"time"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	FindByEmailAndRoleFunc      func(ctx context.Context, email, role string) (*domain.User, error)
	FindByIDFunc                func(ctx context.Context, id uint) (*domain.User, error)
	FindByMobileAndRoleFunc     func(ctx context.Context, mobile, role string) (*domain.User, error)
	UpdateLastLoginFunc         func(ctx context.Context, userID uint, at time.Time) error
	IncrementFailedAttemptsFunc func(ctx context.Context, userID uint) (int, error)
	SetLockedUntilFunc          func(ctx context.Context, userID uint, until time.Time) error

	// call bookkeeping for assertions
	LastLoginCalls int
	IncrementCalls int
	LockedUntilSet *time.Time
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) FindByEmailAndRole(ctx context.Context, email, role string) (*domain.User, error) {
	if m.FindByEmailAndRoleFunc != nil {
		return m.FindByEmailAndRoleFunc(ctx, email, role)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByMobileAndRole(ctx context.Context, mobile, role string) (*domain.User, error) {
	if m.FindByMobileAndRoleFunc != nil {
		return m.FindByMobileAndRoleFunc(ctx, mobile, role)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	m.LastLoginCalls++
	if m.UpdateLastLoginFunc != nil {
		return m.UpdateLastLoginFunc(ctx, userID, at)
	}
	return nil
}

func (m *MockUserRepository) IncrementFailedAttempts(ctx context.Context, userID uint) (int, error) {
	m.IncrementCalls++
	if m.IncrementFailedAttemptsFunc != nil {
		return m.IncrementFailedAttemptsFunc(ctx, userID)
	}
	return m.IncrementCalls, nil
}

func (m *MockUserRepository) SetLockedUntil(ctx context.Context, userID uint, until time.Time) error {
	m.LockedUntilSet = &until
	if m.SetLockedUntilFunc != nil {
		return m.SetLockedUntilFunc(ctx, userID, until)
	}
	return nil
}

var _ domain.UserRepository = (*MockUserRepository)(nil)
