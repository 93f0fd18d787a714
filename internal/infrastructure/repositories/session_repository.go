package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using GORM
type SessionRepositoryImpl struct {
	db  *gorm.DB
	now func() time.Time
}

// DBSession represents the database model for Session
type DBSession struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"index"`
	Token     string    `gorm:"index;size:1024"`
	IPAddress string    `gorm:"size:64"`
	UserAgent string    `gorm:"size:512"`
	IsActive  bool      `gorm:"index"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBSession) TableName() string {
	return "sessions"
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepositoryImpl{db: db, now: time.Now}
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	dbSess := r.domainToDB(session)
	return r.db.WithContext(ctx).Create(dbSess).Error
}

// FindByID implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	var dbSess DBSession
	err := r.db.WithContext(ctx).Where("id = ?", sessionID).First(&dbSess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbSess), nil
}

// FindByToken implements domain.SessionRepository. A row whose expiry
// has passed is reported as expired, not returned.
func (r *SessionRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	var dbSess DBSession
	err := r.db.WithContext(ctx).Where("token = ? AND is_active = ?", token, true).First(&dbSess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	if !r.now().Before(dbSess.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}
	return r.dbToDomain(&dbSess), nil
}

// FindActiveByUserID implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindActiveByUserID(ctx context.Context, userID uint) ([]*domain.Session, error) {
	var dbSessions []DBSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND expires_at > ?", userID, true, r.now()).
		Order("created_at DESC").
		Find(&dbSessions).Error
	if err != nil {
		return nil, err
	}
	sessions := make([]*domain.Session, 0, len(dbSessions))
	for i := range dbSessions {
		sessions = append(sessions, r.dbToDomain(&dbSessions[i]))
	}
	return sessions, nil
}

// Update implements domain.SessionRepository; refresh rotates token and
// expiry on the same row.
func (r *SessionRepositoryImpl) Update(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Model(&DBSession{}).Where("id = ?", session.ID).
		Updates(map[string]interface{}{
			"token":      session.Token,
			"expires_at": session.ExpiresAt,
			"is_active":  session.IsActive,
		}).Error
}

// DeleteByID implements domain.SessionRepository: mark inactive, then
// soft delete. A missing row is not an error.
func (r *SessionRepositoryImpl) DeleteByID(ctx context.Context, sessionID string) (bool, error) {
	return r.invalidate(ctx, "id = ?", sessionID)
}

// DeleteByToken implements domain.SessionRepository
func (r *SessionRepositoryImpl) DeleteByToken(ctx context.Context, token string) (bool, error) {
	return r.invalidate(ctx, "token = ?", token)
}

func (r *SessionRepositoryImpl) invalidate(ctx context.Context, query string, arg interface{}) (bool, error) {
	res := r.db.WithContext(ctx).Model(&DBSession{}).Where(query, arg).
		Update("is_active", false)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	if err := r.db.WithContext(ctx).Where(query, arg).Delete(&DBSession{}).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ExpireOverdue implements domain.SessionRepository: marks overdue rows
// inactive and soft-deletes them. Only rows already past expiry are
// touched, so the sweep is safe alongside live traffic.
func (r *SessionRepositoryImpl) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&DBSession{}).
		Where("expires_at <= ? AND is_active = ?", now, true).
		Update("is_active", false)
	if res.Error != nil {
		return 0, res.Error
	}
	if err := r.db.WithContext(ctx).
		Where("expires_at <= ? AND is_active = ?", now, false).
		Delete(&DBSession{}).Error; err != nil {
		return res.RowsAffected, err
	}
	return res.RowsAffected, nil
}

// domainToDB converts domain session to database session
func (r *SessionRepositoryImpl) domainToDB(session *domain.Session) *DBSession {
	return &DBSession{
		ID:        session.ID,
		UserID:    session.UserID,
		Token:     session.Token,
		IPAddress: session.IPAddress,
		UserAgent: session.UserAgent,
		IsActive:  session.IsActive,
		ExpiresAt: session.ExpiresAt,
	}
}

// dbToDomain converts database session to domain session
func (r *SessionRepositoryImpl) dbToDomain(dbSess *DBSession) *domain.Session {
	return &domain.Session{
		ID:        dbSess.ID,
		UserID:    dbSess.UserID,
		Token:     dbSess.Token,
		IPAddress: dbSess.IPAddress,
		UserAgent: dbSess.UserAgent,
		IsActive:  dbSess.IsActive,
		ExpiresAt: dbSess.ExpiresAt,
		CreatedAt: dbSess.CreatedAt,
		UpdatedAt: dbSess.UpdatedAt,
	}
}
