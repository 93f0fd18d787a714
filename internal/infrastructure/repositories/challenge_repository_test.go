package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

func newChallenge(userID uint) *domain.OtpChallenge {
	return &domain.OtpChallenge{
		UserID:      userID,
		Mobile:      "9876543210",
		Purpose:     domain.OtpPurposeLogin,
		ProviderSID: "VE_abc123",
		MaxAttempts: 3,
		ExpiresAt:   time.Now().Add(10 * time.Minute),
	}
}

func TestChallengeRepository_CreateAssignsID(t *testing.T) {
	repo := NewChallengeRepository(testDB(t))

	ch := newChallenge(7)
	require.NoError(t, repo.Create(context.Background(), ch))
	assert.NotZero(t, ch.ID)
	assert.False(t, ch.CreatedAt.IsZero())
}

func TestChallengeRepository_MostRecentActiveWins(t *testing.T) {
	db := testDB(t)
	repo := NewChallengeRepository(db)
	ctx := context.Background()

	first := newChallenge(7)
	require.NoError(t, repo.Create(ctx, first))
	// created_at ordering needs distinct timestamps in sqlite
	require.NoError(t, db.Model(&DBOtpChallenge{}).Where("id = ?", first.ID).
		Update("created_at", time.Now().Add(-time.Minute)).Error)

	second := newChallenge(7)
	second.ProviderSID = "VE_newer"
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.FindMostRecentActive(ctx, 7, domain.OtpPurposeLogin)
	require.NoError(t, err)
	assert.Equal(t, "VE_newer", got.ProviderSID)
}

func TestChallengeRepository_UsedAndExpiredIgnored(t *testing.T) {
	repo := NewChallengeRepository(testDB(t))
	ctx := context.Background()

	used := newChallenge(7)
	require.NoError(t, repo.Create(ctx, used))
	require.NoError(t, repo.MarkUsed(ctx, used.ID))

	expired := newChallenge(8)
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, repo.Create(ctx, expired))

	_, err := repo.FindMostRecentActive(ctx, 7, domain.OtpPurposeLogin)
	assert.ErrorIs(t, err, domain.ErrNoActiveChallenge)

	_, err = repo.FindMostRecentActive(ctx, 8, domain.OtpPurposeLogin)
	assert.ErrorIs(t, err, domain.ErrNoActiveChallenge)
}

func TestChallengeRepository_MarkUsedIsTerminal(t *testing.T) {
	repo := NewChallengeRepository(testDB(t))
	ctx := context.Background()

	ch := newChallenge(7)
	require.NoError(t, repo.Create(ctx, ch))
	require.NoError(t, repo.MarkUsed(ctx, ch.ID))

	// a consumed challenge never comes back as active
	_, err := repo.FindMostRecentActive(ctx, 7, domain.OtpPurposeLogin)
	assert.ErrorIs(t, err, domain.ErrNoActiveChallenge)
}

func TestChallengeRepository_IncrementAttempts(t *testing.T) {
	db := testDB(t)
	repo := NewChallengeRepository(db)
	ctx := context.Background()

	ch := newChallenge(7)
	require.NoError(t, repo.Create(ctx, ch))

	require.NoError(t, repo.IncrementAttempts(ctx, ch.ID))
	require.NoError(t, repo.IncrementAttempts(ctx, ch.ID))

	got, err := repo.FindMostRecentActive(ctx, 7, domain.OtpPurposeLogin)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Attempts)
}

func TestChallengeRepository_RecordEnteredCode(t *testing.T) {
	repo := NewChallengeRepository(testDB(t))
	ctx := context.Background()

	ch := newChallenge(7)
	require.NoError(t, repo.Create(ctx, ch))
	require.NoError(t, repo.RecordEnteredCode(ctx, ch.ID, "123456"))

	got, err := repo.FindMostRecentActive(ctx, 7, domain.OtpPurposeLogin)
	require.NoError(t, err)
	assert.Equal(t, "123456", got.CodeEntered)
}
