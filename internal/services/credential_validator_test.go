package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
	"github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/mocks"
)

func activeUser() *domain.User {
	return &domain.User{
		ID:           7,
		Email:        "agent@example.com",
		Mobile:       "9876543210",
		PasswordHash: "$2a$10$storedhash",
		Role:         domain.RoleEmployee,
		IsActive:     true,
	}
}

func TestCredentialValidator_Success(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByEmailAndRoleFunc = func(ctx context.Context, email, role string) (*domain.User, error) {
		assert.Equal(t, "agent@example.com", email)
		assert.Equal(t, domain.RoleEmployee, role)
		return activeUser(), nil
	}
	passwordSvc := mocks.NewMockPasswordService()
	passwordSvc.VerifyFunc = func(stored, password string) (bool, domain.PasswordCompareMode) {
		return password == "secret", domain.CompareBcrypt
	}

	v := NewCredentialValidator(userRepo, passwordSvc, 5, 30*time.Minute)

	user, err := v.Validate(context.Background(), "  Agent@Example.COM ", "secret", "Employee", true)
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, 1, userRepo.LastLoginCalls)
	assert.Equal(t, 0, userRepo.IncrementCalls)
}

func TestCredentialValidator_UnknownRole(t *testing.T) {
	v := NewCredentialValidator(mocks.NewMockUserRepository(), mocks.NewMockPasswordService(), 5, 30*time.Minute)

	_, err := v.Validate(context.Background(), "agent@example.com", "secret", "superuser", true)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCredentialValidator_UnknownUserIndistinguishable(t *testing.T) {
	// repo default returns ErrUserNotFound; the caller must see the same
	// error a wrong password produces
	v := NewCredentialValidator(mocks.NewMockUserRepository(), mocks.NewMockPasswordService(), 5, 30*time.Minute)

	_, err := v.Validate(context.Background(), "nobody@example.com", "secret", domain.RoleAdmin, true)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCredentialValidator_InactiveUser(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByEmailAndRoleFunc = func(ctx context.Context, email, role string) (*domain.User, error) {
		u := activeUser()
		u.IsActive = false
		return u, nil
	}

	v := NewCredentialValidator(userRepo, mocks.NewMockPasswordService(), 5, 30*time.Minute)

	_, err := v.Validate(context.Background(), "agent@example.com", "secret", domain.RoleEmployee, true)
	assert.ErrorIs(t, err, domain.ErrUserInactive)
	assert.Equal(t, 0, userRepo.IncrementCalls, "inactive rejection is not a failed attempt")
}

func TestCredentialValidator_WrongPasswordIncrementsOnce(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByEmailAndRoleFunc = func(ctx context.Context, email, role string) (*domain.User, error) {
		return activeUser(), nil
	}
	passwordSvc := mocks.NewMockPasswordService()
	passwordSvc.VerifyFunc = func(stored, password string) (bool, domain.PasswordCompareMode) {
		return false, domain.CompareBcrypt
	}

	v := NewCredentialValidator(userRepo, passwordSvc, 5, 30*time.Minute)

	_, err := v.Validate(context.Background(), "agent@example.com", "wrong", domain.RoleEmployee, true)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, 1, userRepo.IncrementCalls)
	assert.Nil(t, userRepo.LockedUntilSet, "below ceiling, no lock yet")
	assert.Equal(t, 0, userRepo.LastLoginCalls)
}

func TestCredentialValidator_LockoutAtCeiling(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByEmailAndRoleFunc = func(ctx context.Context, email, role string) (*domain.User, error) {
		return activeUser(), nil
	}
	userRepo.IncrementFailedAttemptsFunc = func(ctx context.Context, userID uint) (int, error) {
		return 5, nil
	}
	passwordSvc := mocks.NewMockPasswordService()
	passwordSvc.VerifyFunc = func(stored, password string) (bool, domain.PasswordCompareMode) {
		return false, domain.CompareBcrypt
	}

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	v := NewCredentialValidator(userRepo, passwordSvc, 5, 30*time.Minute).(*CredentialValidatorImpl)
	v.now = func() time.Time { return base }

	_, err := v.Validate(context.Background(), "agent@example.com", "wrong", domain.RoleEmployee, true)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	require.NotNil(t, userRepo.LockedUntilSet)
	assert.Equal(t, base.Add(30*time.Minute), *userRepo.LockedUntilSet)
}

func TestCredentialValidator_LockedUserStillCompared(t *testing.T) {
	// lockout is bookkeeping; a locked identity supplying the correct
	// password still validates
	locked := time.Now().Add(10 * time.Minute)
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByEmailAndRoleFunc = func(ctx context.Context, email, role string) (*domain.User, error) {
		u := activeUser()
		u.FailedAttempts = 5
		u.LockedUntil = &locked
		return u, nil
	}
	passwordSvc := mocks.NewMockPasswordService()
	passwordSvc.VerifyFunc = func(stored, password string) (bool, domain.PasswordCompareMode) {
		return true, domain.CompareBcrypt
	}

	v := NewCredentialValidator(userRepo, passwordSvc, 5, 30*time.Minute)

	user, err := v.Validate(context.Background(), "agent@example.com", "secret", domain.RoleEmployee, false)
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
}

func TestCredentialValidator_LastLoginWriteFailureIgnored(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByEmailAndRoleFunc = func(ctx context.Context, email, role string) (*domain.User, error) {
		return activeUser(), nil
	}
	userRepo.UpdateLastLoginFunc = func(ctx context.Context, userID uint, at time.Time) error {
		return errors.New("write timeout")
	}
	passwordSvc := mocks.NewMockPasswordService()
	passwordSvc.VerifyFunc = func(stored, password string) (bool, domain.PasswordCompareMode) {
		return true, domain.CompareBcrypt
	}

	v := NewCredentialValidator(userRepo, passwordSvc, 5, 30*time.Minute)

	_, err := v.Validate(context.Background(), "agent@example.com", "secret", domain.RoleEmployee, true)
	assert.NoError(t, err)
}

func TestCredentialValidator_StoreErrorClassedDependency(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByEmailAndRoleFunc = func(ctx context.Context, email, role string) (*domain.User, error) {
		return nil, errors.New("connection refused")
	}

	v := NewCredentialValidator(userRepo, mocks.NewMockPasswordService(), 5, 30*time.Minute)

	_, err := v.Validate(context.Background(), "agent@example.com", "secret", domain.RoleEmployee, true)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, domain.ClassDependency, domain.ClassOf(err))
}
