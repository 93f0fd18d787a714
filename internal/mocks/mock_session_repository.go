package mocks

import (
	"context"
	"time"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// MockSessionRepository implements domain.SessionRepository for testing
type MockSessionRepository struct {
	CreateFunc             func(ctx context.Context, session *domain.Session) error
	FindByIDFunc           func(ctx context.Context, sessionID string) (*domain.Session, error)
	FindByTokenFunc        func(ctx context.Context, token string) (*domain.Session, error)
	FindActiveByUserIDFunc func(ctx context.Context, userID uint) ([]*domain.Session, error)
	UpdateFunc             func(ctx context.Context, session *domain.Session) error
	DeleteByIDFunc         func(ctx context.Context, sessionID string) (bool, error)
	DeleteByTokenFunc      func(ctx context.Context, token string) (bool, error)
	ExpireOverdueFunc      func(ctx context.Context, now time.Time) (int64, error)

	Created []*domain.Session
	Updated []*domain.Session
}

// NewMockSessionRepository creates a new MockSessionRepository
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	m.Created = append(m.Created, session)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, sessionID)
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) FindActiveByUserID(ctx context.Context, userID uint) ([]*domain.Session, error) {
	if m.FindActiveByUserIDFunc != nil {
		return m.FindActiveByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockSessionRepository) Update(ctx context.Context, session *domain.Session) error {
	m.Updated = append(m.Updated, session)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) DeleteByID(ctx context.Context, sessionID string) (bool, error) {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, sessionID)
	}
	return false, nil
}

func (m *MockSessionRepository) DeleteByToken(ctx context.Context, token string) (bool, error) {
	if m.DeleteByTokenFunc != nil {
		return m.DeleteByTokenFunc(ctx, token)
	}
	return false, nil
}

func (m *MockSessionRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	if m.ExpireOverdueFunc != nil {
		return m.ExpireOverdueFunc(ctx, now)
	}
	return 0, nil
}

var _ domain.SessionRepository = (*MockSessionRepository)(nil)
