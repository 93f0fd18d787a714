package domain

import "errors"

// Validation errors (user must correct input and resubmit)
var (
	ErrMissingOTPCode  = errors.New("otp code is required for this step")
	ErrMissingPhone    = errors.New("phone number is required")
	ErrUnknownRole     = errors.New("unknown role")
	ErrStepNotAllowed  = errors.New("login step not applicable for this role")
	ErrResendThrottled = errors.New("otp resend window has not elapsed")
)

// Authentication errors (user must restart the relevant step)
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrNoActiveChallenge  = errors.New("no active otp challenge")
	ErrChallengeUnusable  = errors.New("otp challenge has no provider correlation id")
	ErrOTPRejected        = errors.New("otp verification rejected")
	ErrOTPMaxAttempts     = errors.New("maximum otp attempts exceeded")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenMalformed     = errors.New("malformed token")
	ErrSessionExpired     = errors.New("session has expired")
)

// Not-found errors (read-path lookups)
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrSessionNotFound  = errors.New("session not found")
)

// Dependency errors (store or external provider; transient, step is retryable)
var (
	ErrProviderUnavailable = errors.New("otp provider unavailable")
	ErrStoreUnavailable    = errors.New("data store unavailable")
)

// Configuration errors (fatal, never a user fault)
var (
	ErrNoSigningKey         = errors.New("jwt signing key not configured")
	ErrProviderUnconfigured = errors.New("otp provider credentials not configured")
)

// ErrorClass buckets an error for transport mapping.
type ErrorClass int

const (
	ClassUnknown ErrorClass = iota
	ClassValidation
	ClassAuthentication
	ClassNotFound
	ClassDependency
	ClassConfiguration
)

// ClassOf maps a sentinel (possibly wrapped) to its error class.
// Unrecognized errors are ClassUnknown; handlers treat those as
// internal failures.
func ClassOf(err error) ErrorClass {
	switch {
	case errors.Is(err, ErrMissingOTPCode),
		errors.Is(err, ErrMissingPhone),
		errors.Is(err, ErrUnknownRole),
		errors.Is(err, ErrStepNotAllowed),
		errors.Is(err, ErrResendThrottled):
		return ClassValidation
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUserInactive),
		errors.Is(err, ErrNoActiveChallenge),
		errors.Is(err, ErrChallengeUnusable),
		errors.Is(err, ErrOTPRejected),
		errors.Is(err, ErrOTPMaxAttempts),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenMalformed),
		errors.Is(err, ErrSessionExpired):
		return ClassAuthentication
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCustomerNotFound),
		errors.Is(err, ErrSessionNotFound):
		return ClassNotFound
	case errors.Is(err, ErrProviderUnavailable),
		errors.Is(err, ErrStoreUnavailable):
		return ClassDependency
	case errors.Is(err, ErrNoSigningKey),
		errors.Is(err, ErrProviderUnconfigured):
		return ClassConfiguration
	}
	return ClassUnknown
}
