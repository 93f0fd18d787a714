package domain

import (
	"context"
	"time"
)

// UserRepository defines identity data access operations
type UserRepository interface {
	FindByEmailAndRole(ctx context.Context, email, role string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByMobileAndRole(ctx context.Context, mobile, role string) (*User, error)
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error
	IncrementFailedAttempts(ctx context.Context, userID uint) (int, error)
	SetLockedUntil(ctx context.Context, userID uint, until time.Time) error
}

// CustomerRepository defines customer-profile lookups. FindByMobile must
// tolerate multiple stored phone formats and must not filter on the
// business-layer soft-delete flag.
type CustomerRepository interface {
	FindByMobile(ctx context.Context, mobiles []string) (*Customer, error)
	FindByMobileSuffix(ctx context.Context, suffix string) (*Customer, error)
	FindByUserID(ctx context.Context, userID uint) (*Customer, error)
}

// ChallengeRepository defines OTP challenge data access operations
type ChallengeRepository interface {
	Create(ctx context.Context, ch *OtpChallenge) error
	FindMostRecentActive(ctx context.Context, userID uint, purpose string) (*OtpChallenge, error)
	MarkUsed(ctx context.Context, id uint) error
	IncrementAttempts(ctx context.Context, id uint) error
	RecordEnteredCode(ctx context.Context, id uint, code string) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	FindByToken(ctx context.Context, token string) (*Session, error)
	FindActiveByUserID(ctx context.Context, userID uint) ([]*Session, error)
	Update(ctx context.Context, session *Session) error
	DeleteByID(ctx context.Context, sessionID string) (bool, error)
	DeleteByToken(ctx context.Context, token string) (bool, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

// CredentialValidator checks email+password+role against the stored
// identity and applies lockout bookkeeping.
type CredentialValidator interface {
	Validate(ctx context.Context, email, password, role string, updateLastLogin bool) (*User, error)
}

// OTPService sequences challenge issuance and verification against the
// external provider.
type OTPService interface {
	Issue(ctx context.Context, user *User, mobileOverride string) (*OtpPending, error)
	VerifyCode(ctx context.Context, user *User, code string) error
}

// SessionService mints tokens and manages the session lifecycle.
type SessionService interface {
	IssueSession(ctx context.Context, user *User, meta SessionMeta) (*AuthResult, error)
	Refresh(ctx context.Context, token string) (*AuthResult, error)
	ValidateToken(ctx context.Context, token string) (*Session, *TokenClaims, error)
	ValidateSessionID(ctx context.Context, sessionID string) (*Session, *TokenClaims, error)
	InvalidateByToken(ctx context.Context, token string) (bool, error)
	InvalidateBySessionID(ctx context.Context, sessionID string) (bool, error)
	SweepExpired(ctx context.Context) (int64, error)
}

// LoginService drives the multi-step login state machine.
type LoginService interface {
	Login(ctx context.Context, creds Credentials, step LoginStep, meta SessionMeta) (*AuthResult, *OtpPending, error)
	Logout(ctx context.Context, sessionID, token string) (bool, error)
}

// PhoneResolver looks up a person from a loosely formatted phone number.
type PhoneResolver interface {
	ResolveCustomer(ctx context.Context, rawPhone string) (*Customer, *User, error)
}

// PasswordCompareMode identifies how a stored credential was matched.
type PasswordCompareMode int

const (
	CompareBcrypt PasswordCompareMode = iota // canonical hash verification
	CompareLegacyHash                        // stored and supplied both look like hash output
	ComparePlaintext                         // deprecated raw equality fallback
)

// PasswordService defines password operations. Verify selects the
// comparison mode purely from value shape; callers never choose.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(storedCredential, password string) (bool, PasswordCompareMode)
}

// TokenService defines token sign/verify operations
type TokenService interface {
	Generate(userID uint, email, role string) (string, error)
	Validate(token string) (*TokenClaims, error)
	TTL() time.Duration
}

// OTPProvider is the external delivery/verification capability. The
// identifier fed to the provider must be identical in shape at send and
// verify time.
type OTPProvider interface {
	SendChallenge(ctx context.Context, identifier string) (correlationID string, err error)
	VerifyChallenge(ctx context.Context, identifier, code, correlationID string) error
}
