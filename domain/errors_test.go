package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorClass
	}{
		{ErrMissingOTPCode, ClassValidation},
		{ErrMissingPhone, ClassValidation},
		{ErrStepNotAllowed, ClassValidation},
		{ErrResendThrottled, ClassValidation},
		{ErrInvalidCredentials, ClassAuthentication},
		{ErrUserInactive, ClassAuthentication},
		{ErrNoActiveChallenge, ClassAuthentication},
		{ErrChallengeUnusable, ClassAuthentication},
		{ErrOTPRejected, ClassAuthentication},
		{ErrOTPMaxAttempts, ClassAuthentication},
		{ErrTokenInvalid, ClassAuthentication},
		{ErrTokenExpired, ClassAuthentication},
		{ErrSessionExpired, ClassAuthentication},
		{ErrUserNotFound, ClassNotFound},
		{ErrCustomerNotFound, ClassNotFound},
		{ErrSessionNotFound, ClassNotFound},
		{ErrProviderUnavailable, ClassDependency},
		{ErrStoreUnavailable, ClassDependency},
		{ErrNoSigningKey, ClassConfiguration},
		{ErrProviderUnconfigured, ClassConfiguration},
		{errors.New("something else"), ClassUnknown},
		{nil, ClassUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassOf(tt.err), "error: %v", tt.err)
	}
}

func TestClassOfWrapped(t *testing.T) {
	// wrapping with context must not change the class
	wrapped := fmt.Errorf("%w: retry in 12 seconds", ErrResendThrottled)
	assert.Equal(t, ClassValidation, ClassOf(wrapped))

	wrapped = fmt.Errorf("%w: dial tcp: connection refused", ErrStoreUnavailable)
	assert.Equal(t, ClassDependency, ClassOf(wrapped))

	double := fmt.Errorf("login: %w", fmt.Errorf("%w: upstream 500", ErrProviderUnavailable))
	assert.Equal(t, ClassDependency, ClassOf(double))
}
