package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// ChallengeRepositoryImpl implements domain.ChallengeRepository using GORM
type ChallengeRepositoryImpl struct {
	db  *gorm.DB
	now func() time.Time
}

// DBOtpChallenge represents the database model for OtpChallenge.
// Rows are never deleted; they expire by time and survive as an audit
// trail.
type DBOtpChallenge struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index:idx_otp_user_purpose"`
	Mobile      string `gorm:"size:32"`
	Purpose     string `gorm:"index:idx_otp_user_purpose;size:32"`
	ProviderSID string `gorm:"size:64"`
	CodeEntered string `gorm:"size:16"`
	Used        bool
	Attempts    int
	MaxAttempts int
	ExpiresAt   time.Time `gorm:"index"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBOtpChallenge) TableName() string {
	return "otp_challenges"
}

// NewChallengeRepository creates a new challenge repository
func NewChallengeRepository(db *gorm.DB) domain.ChallengeRepository {
	return &ChallengeRepositoryImpl{db: db, now: time.Now}
}

// Create implements domain.ChallengeRepository
func (r *ChallengeRepositoryImpl) Create(ctx context.Context, ch *domain.OtpChallenge) error {
	dbCh := &DBOtpChallenge{
		UserID:      ch.UserID,
		Mobile:      ch.Mobile,
		Purpose:     ch.Purpose,
		ProviderSID: ch.ProviderSID,
		MaxAttempts: ch.MaxAttempts,
		ExpiresAt:   ch.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(dbCh).Error; err != nil {
		return err
	}
	ch.ID = dbCh.ID
	ch.CreatedAt = dbCh.CreatedAt
	return nil
}

// FindMostRecentActive implements domain.ChallengeRepository. Any number
// of historical challenges may exist per identity; only the newest
// unused, unexpired one is trusted.
func (r *ChallengeRepositoryImpl) FindMostRecentActive(ctx context.Context, userID uint, purpose string) (*domain.OtpChallenge, error) {
	var dbCh DBOtpChallenge
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ? AND used = ? AND expires_at > ?", userID, purpose, false, r.now()).
		Order("created_at DESC").
		First(&dbCh).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoActiveChallenge
		}
		return nil, err
	}
	return r.dbToDomain(&dbCh), nil
}

// MarkUsed implements domain.ChallengeRepository; used is terminal.
func (r *ChallengeRepositoryImpl) MarkUsed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&DBOtpChallenge{}).Where("id = ?", id).
		Update("used", true).Error
}

// IncrementAttempts implements domain.ChallengeRepository with an
// update-in-place expression.
func (r *ChallengeRepositoryImpl) IncrementAttempts(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&DBOtpChallenge{}).Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + ?", 1)).Error
}

// RecordEnteredCode implements domain.ChallengeRepository; audit only.
func (r *ChallengeRepositoryImpl) RecordEnteredCode(ctx context.Context, id uint, code string) error {
	return r.db.WithContext(ctx).Model(&DBOtpChallenge{}).Where("id = ?", id).
		Update("code_entered", code).Error
}

// dbToDomain converts database challenge to domain challenge
func (r *ChallengeRepositoryImpl) dbToDomain(dbCh *DBOtpChallenge) *domain.OtpChallenge {
	return &domain.OtpChallenge{
		ID:          dbCh.ID,
		UserID:      dbCh.UserID,
		Mobile:      dbCh.Mobile,
		Purpose:     dbCh.Purpose,
		ProviderSID: dbCh.ProviderSID,
		CodeEntered: dbCh.CodeEntered,
		Used:        dbCh.Used,
		Attempts:    dbCh.Attempts,
		MaxAttempts: dbCh.MaxAttempts,
		ExpiresAt:   dbCh.ExpiresAt,
		CreatedAt:   dbCh.CreatedAt,
	}
}
