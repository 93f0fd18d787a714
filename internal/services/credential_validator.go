package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// CredentialValidatorImpl implements domain.CredentialValidator
type CredentialValidatorImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	maxAttempts int
	lockFor     time.Duration
	now         func() time.Time
}

// NewCredentialValidator creates a new credential validator
func NewCredentialValidator(userRepo domain.UserRepository, passwordSvc domain.PasswordService, maxAttempts int, lockFor time.Duration) domain.CredentialValidator {
	return &CredentialValidatorImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		maxAttempts: maxAttempts,
		lockFor:     lockFor,
		now:         time.Now,
	}
}

// Validate implements domain.CredentialValidator.
//
// Credential correctness is evaluated on every call, including for
// identities whose lockout window is still open; the lockout timestamp
// is bookkeeping and never short-circuits the comparison.
func (v *CredentialValidatorImpl) Validate(ctx context.Context, email, password, role string, updateLastLogin bool) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	role = strings.ToLower(strings.TrimSpace(role))

	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := v.userRepo.FindByEmailAndRole(ctx, email, role)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// unknown email and wrong password are indistinguishable
			// to the caller
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	// soft-deleted rows are excluded at the store level already; the
	// active flag is re-checked here
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	ok, _ := v.passwordSvc.Verify(user.PasswordHash, password)
	if !ok {
		v.recordFailure(ctx, user)
		return nil, domain.ErrInvalidCredentials
	}

	if updateLastLogin {
		if err := v.userRepo.UpdateLastLogin(ctx, user.ID, v.now()); err != nil {
			// bookkeeping only; a failed write never fails the login
			log.Printf("credential: last-login update failed for user %d: %v", user.ID, err)
		}
	}

	return user, nil
}

// recordFailure increments the failed-attempt counter and opens the
// lockout window once the ceiling is reached.
func (v *CredentialValidatorImpl) recordFailure(ctx context.Context, user *domain.User) {
	attempts, err := v.userRepo.IncrementFailedAttempts(ctx, user.ID)
	if err != nil {
		log.Printf("credential: failed-attempt increment failed for user %d: %v", user.ID, err)
		return
	}
	if attempts >= v.maxAttempts {
		until := v.now().Add(v.lockFor)
		if err := v.userRepo.SetLockedUntil(ctx, user.ID, until); err != nil {
			log.Printf("credential: lock write failed for user %d: %v", user.ID, err)
		}
	}
}
