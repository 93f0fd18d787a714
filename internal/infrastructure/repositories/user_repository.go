package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags).
// Soft-deleted rows are excluded from every query through gorm.DeletedAt,
// which is what keeps deleted identities from ever authenticating.
type DBUser struct {
	ID             uint   `gorm:"primaryKey"`
	Email          string `gorm:"index:idx_users_email_role;size:255"`
	Mobile         string `gorm:"index;size:32"`
	PasswordHash   string `gorm:"column:password"`
	Role           string `gorm:"index:idx_users_email_role;size:64"`
	IsActive       bool   `gorm:"index"`
	FailedAttempts int
	LockedUntil    *time.Time
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// FindByEmailAndRole implements domain.UserRepository. Email and role
// are compared case-insensitively; (email, role) is the login key.
func (r *UserRepositoryImpl) FindByEmailAndRole(ctx context.Context, email, role string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).
		Where("lower(email) = ? AND lower(role) = ?", strings.ToLower(strings.TrimSpace(email)), strings.ToLower(role)).
		First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByMobileAndRole implements domain.UserRepository
func (r *UserRepositoryImpl) FindByMobileAndRole(ctx context.Context, mobile, role string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).
		Where("mobile = ? AND lower(role) = ?", mobile, strings.ToLower(role)).
		First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// UpdateLastLogin implements domain.UserRepository: records the login
// time and resets the failed-attempt counter in the same write.
func (r *UserRepositoryImpl) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"last_login_at":   at,
			"failed_attempts": 0,
		}).Error
}

// IncrementFailedAttempts implements domain.UserRepository with an
// update-in-place expression so concurrent failures do not lose counts.
func (r *UserRepositoryImpl) IncrementFailedAttempts(ctx context.Context, userID uint) (int, error) {
	err := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		UpdateColumn("failed_attempts", gorm.Expr("failed_attempts + ?", 1)).Error
	if err != nil {
		return 0, err
	}

	var dbUser DBUser
	if err := r.db.WithContext(ctx).Select("failed_attempts").Where("id = ?", userID).First(&dbUser).Error; err != nil {
		return 0, err
	}
	return dbUser.FailedAttempts, nil
}

// SetLockedUntil implements domain.UserRepository
func (r *UserRepositoryImpl) SetLockedUntil(ctx context.Context, userID uint, until time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).
		Update("locked_until", until).Error
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:             dbUser.ID,
		Email:          dbUser.Email,
		Mobile:         dbUser.Mobile,
		PasswordHash:   dbUser.PasswordHash,
		Role:           dbUser.Role,
		IsActive:       dbUser.IsActive,
		FailedAttempts: dbUser.FailedAttempts,
		LockedUntil:    dbUser.LockedUntil,
		LastLoginAt:    dbUser.LastLoginAt,
		CreatedAt:      dbUser.CreatedAt,
		UpdatedAt:      dbUser.UpdatedAt,
	}
}
