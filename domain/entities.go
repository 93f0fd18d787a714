package domain

import (
	"strings"
	"time"
)

// Roles known to the login protocol.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleCustomer = "customer"
	RolePartner  = "partner"
)

// ValidRole reports whether role is one of the four login roles.
func ValidRole(role string) bool {
	switch strings.ToLower(role) {
	case RoleAdmin, RoleEmployee, RoleCustomer, RolePartner:
		return true
	}
	return false
}

// RequiresOTP reports whether the role authenticates with a second factor.
func RequiresOTP(role string) bool {
	role = strings.ToLower(role)
	return role == RoleAdmin || role == RoleCustomer
}

// User represents an identity capable of authenticating
type User struct {
	ID             uint
	Email          string
	Mobile         string
	PasswordHash   string `gorm:"column:password"`
	Role           string
	IsActive       bool
	FailedAttempts int
	LockedUntil    *time.Time
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Locked reports whether a lockout window set by failed logins is still open.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}

// Customer is the business profile optionally linked 1:1 to a User.
// Its soft-delete flag belongs to the business layer and is ignored
// when resolving sessions.
type Customer struct {
	ID        uint
	UserID    *uint
	Name      string
	Mobile    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OtpPurposeLogin is the only challenge purpose issued by the login flow.
const OtpPurposeLogin = "login"

// OtpChallenge is one outstanding second-factor attempt.
// The external provider is authoritative for the code; CodeEntered is
// recorded at verification time for audit only.
type OtpChallenge struct {
	ID          uint
	UserID      uint
	Mobile      string // canonical form, no country-code prefix
	Purpose     string
	ProviderSID string // correlation id returned by the provider at send time
	CodeEntered string
	Used        bool
	Attempts    int
	MaxAttempts int
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Active reports whether the challenge can still be verified.
func (c *OtpChallenge) Active(now time.Time) bool {
	return !c.Used && now.Before(c.ExpiresAt)
}

// Session binds a minted token to a user for a bounded lifetime.
type Session struct {
	ID        string
	UserID    uint
	Token     string
	IPAddress string
	UserAgent string
	IsActive  bool
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the session lifetime has passed.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionMeta carries request metadata recorded on session creation.
type SessionMeta struct {
	IPAddress string
	UserAgent string
}

// AuthResult is the outcome of a completed login, refresh or validation.
type AuthResult struct {
	User      *User
	Token     string
	SessionID string
	ExpiresAt time.Time
	ExpiresIn int64 // seconds remaining
}

// OtpPending is the outcome of a login step that sent a challenge and now
// waits for the code. ProviderSID is exposed for client-side tracing only
// and is never required back as input.
type OtpPending struct {
	MaskedMobile string
	ProviderSID  string
	NextStep     string
	ExpiresAt    time.Time
}

// TokenClaims is the decoded claim set of a bearer token.
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Credentials is the role-agnostic credential envelope for a login step.
type Credentials struct {
	Email          string
	Password       string
	Role           string
	MobileOverride string
}

// LoginStep is a tagged step variant. Using concrete types per step keeps
// the orchestrator's transition table exhaustive; combinations that do not
// correspond to a protocol step cannot be constructed.
type LoginStep interface{ loginStep() }

// BeginStep starts a login: validate credentials and, for two-factor roles,
// send a challenge.
type BeginStep struct{}

// ResendStep re-validates credentials and sends a fresh challenge.
// A prior still-active challenge is left intact.
type ResendStep struct{}

// CompleteStep finishes a two-factor login with the delivered code.
type CompleteStep struct{ Code string }

// PhoneBeginStep starts a phone-first customer login from a raw phone
// number, with no credentials at all.
type PhoneBeginStep struct{ Phone string }

// PhoneOtpStep sends a challenge for an already validated phone.
type PhoneOtpStep struct{ Phone string }

// PhoneVerifyStep finishes a phone-first login with the delivered code.
type PhoneVerifyStep struct {
	Phone string
	Code  string
}

func (BeginStep) loginStep()       {}
func (ResendStep) loginStep()      {}
func (CompleteStep) loginStep()    {}
func (PhoneBeginStep) loginStep()  {}
func (PhoneOtpStep) loginStep()    {}
func (PhoneVerifyStep) loginStep() {}
