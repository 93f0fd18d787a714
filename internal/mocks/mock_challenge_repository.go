package mocks

import (
	"context"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// MockChallengeRepository implements domain.ChallengeRepository for testing
type MockChallengeRepository struct {
	CreateFunc               func(ctx context.Context, ch *domain.OtpChallenge) error
	FindMostRecentActiveFunc func(ctx context.Context, userID uint, purpose string) (*domain.OtpChallenge, error)
	MarkUsedFunc             func(ctx context.Context, id uint) error
	IncrementAttemptsFunc    func(ctx context.Context, id uint) error
	RecordEnteredCodeFunc    func(ctx context.Context, id uint, code string) error

	Created       []*domain.OtpChallenge
	MarkedUsed    []uint
	Incremented   []uint
	RecordedCodes map[uint]string
}

// NewMockChallengeRepository creates a new MockChallengeRepository
func NewMockChallengeRepository() *MockChallengeRepository {
	return &MockChallengeRepository{RecordedCodes: map[uint]string{}}
}

func (m *MockChallengeRepository) Create(ctx context.Context, ch *domain.OtpChallenge) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, ch); err != nil {
			return err
		}
	}
	if ch.ID == 0 {
		ch.ID = uint(len(m.Created) + 1)
	}
	m.Created = append(m.Created, ch)
	return nil
}

func (m *MockChallengeRepository) FindMostRecentActive(ctx context.Context, userID uint, purpose string) (*domain.OtpChallenge, error) {
	if m.FindMostRecentActiveFunc != nil {
		return m.FindMostRecentActiveFunc(ctx, userID, purpose)
	}
	return nil, domain.ErrNoActiveChallenge
}

func (m *MockChallengeRepository) MarkUsed(ctx context.Context, id uint) error {
	m.MarkedUsed = append(m.MarkedUsed, id)
	if m.MarkUsedFunc != nil {
		return m.MarkUsedFunc(ctx, id)
	}
	return nil
}

func (m *MockChallengeRepository) IncrementAttempts(ctx context.Context, id uint) error {
	m.Incremented = append(m.Incremented, id)
	if m.IncrementAttemptsFunc != nil {
		return m.IncrementAttemptsFunc(ctx, id)
	}
	return nil
}

func (m *MockChallengeRepository) RecordEnteredCode(ctx context.Context, id uint, code string) error {
	m.RecordedCodes[id] = code
	if m.RecordEnteredCodeFunc != nil {
		return m.RecordEnteredCodeFunc(ctx, id, code)
	}
	return nil
}

var _ domain.ChallengeRepository = (*MockChallengeRepository)(nil)
