package mocks

import (
	"context"
	"time"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// MockPasswordService implements domain.PasswordService for testing
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(storedCredential, password string) (bool, domain.PasswordCompareMode)
}

func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordService) Verify(storedCredential, password string) (bool, domain.PasswordCompareMode) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(storedCredential, password)
	}
	return storedCredential == "hashed_"+password, domain.CompareBcrypt
}

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateFunc func(userID uint, email, role string) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
	TTLValue     time.Duration

	Generated int
}

func NewMockTokenService() *MockTokenService {
	return &MockTokenService{TTLValue: 3 * time.Hour}
}

func (m *MockTokenService) Generate(userID uint, email, role string) (string, error) {
	m.Generated++
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID, email, role)
	}
	return "token_for_" + email, nil
}

func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) TTL() time.Duration {
	return m.TTLValue
}

// MockOTPProvider implements domain.OTPProvider for testing
type MockOTPProvider struct {
	SendChallengeFunc   func(ctx context.Context, identifier string) (string, error)
	VerifyChallengeFunc func(ctx context.Context, identifier, code, correlationID string) error

	SentTo       []string
	VerifiedWith []string // identifiers used at verify time
}

func NewMockOTPProvider() *MockOTPProvider {
	return &MockOTPProvider{}
}

func (m *MockOTPProvider) SendChallenge(ctx context.Context, identifier string) (string, error) {
	m.SentTo = append(m.SentTo, identifier)
	if m.SendChallengeFunc != nil {
		return m.SendChallengeFunc(ctx, identifier)
	}
	return "VE_mock_sid", nil
}

func (m *MockOTPProvider) VerifyChallenge(ctx context.Context, identifier, code, correlationID string) error {
	m.VerifiedWith = append(m.VerifiedWith, identifier)
	if m.VerifyChallengeFunc != nil {
		return m.VerifyChallengeFunc(ctx, identifier, code, correlationID)
	}
	if code == "123456" {
		return nil
	}
	return domain.ErrOTPRejected
}

// MockCredentialValidator implements domain.CredentialValidator for testing
type MockCredentialValidator struct {
	ValidateFunc func(ctx context.Context, email, password, role string, updateLastLogin bool) (*domain.User, error)

	Calls []bool // updateLastLogin flag per call
}

func NewMockCredentialValidator() *MockCredentialValidator {
	return &MockCredentialValidator{}
}

func (m *MockCredentialValidator) Validate(ctx context.Context, email, password, role string, updateLastLogin bool) (*domain.User, error) {
	m.Calls = append(m.Calls, updateLastLogin)
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, email, password, role, updateLastLogin)
	}
	return nil, domain.ErrInvalidCredentials
}

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	IssueFunc      func(ctx context.Context, user *domain.User, mobileOverride string) (*domain.OtpPending, error)
	VerifyCodeFunc func(ctx context.Context, user *domain.User, code string) error

	IssueCalls  int
	VerifyCalls int
}

func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Issue(ctx context.Context, user *domain.User, mobileOverride string) (*domain.OtpPending, error) {
	m.IssueCalls++
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, user, mobileOverride)
	}
	return &domain.OtpPending{
		MaskedMobile: "********90",
		ProviderSID:  "VE_mock_sid",
		ExpiresAt:    time.Now().Add(10 * time.Minute),
	}, nil
}

func (m *MockOTPService) VerifyCode(ctx context.Context, user *domain.User, code string) error {
	m.VerifyCalls++
	if m.VerifyCodeFunc != nil {
		return m.VerifyCodeFunc(ctx, user, code)
	}
	if code == "123456" {
		return nil
	}
	return domain.ErrOTPRejected
}

// MockSessionService implements domain.SessionService for testing
type MockSessionService struct {
	IssueSessionFunc      func(ctx context.Context, user *domain.User, meta domain.SessionMeta) (*domain.AuthResult, error)
	RefreshFunc           func(ctx context.Context, token string) (*domain.AuthResult, error)
	ValidateTokenFunc     func(ctx context.Context, token string) (*domain.Session, *domain.TokenClaims, error)
	ValidateSessionIDFunc func(ctx context.Context, sessionID string) (*domain.Session, *domain.TokenClaims, error)
	InvalidateByTokenFunc func(ctx context.Context, token string) (bool, error)
	InvalidateByIDFunc    func(ctx context.Context, sessionID string) (bool, error)
	SweepExpiredFunc      func(ctx context.Context) (int64, error)

	Issued int
}

func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

func (m *MockSessionService) IssueSession(ctx context.Context, user *domain.User, meta domain.SessionMeta) (*domain.AuthResult, error) {
	m.Issued++
	if m.IssueSessionFunc != nil {
		return m.IssueSessionFunc(ctx, user, meta)
	}
	expires := time.Now().Add(3 * time.Hour)
	return &domain.AuthResult{
		User:      user,
		Token:     "token_for_" + user.Email,
		SessionID: "sess-1",
		ExpiresAt: expires,
		ExpiresIn: 10800,
	}, nil
}

func (m *MockSessionService) Refresh(ctx context.Context, token string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, token)
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionService) ValidateToken(ctx context.Context, token string) (*domain.Session, *domain.TokenClaims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return nil, nil, domain.ErrTokenInvalid
}

func (m *MockSessionService) ValidateSessionID(ctx context.Context, sessionID string) (*domain.Session, *domain.TokenClaims, error) {
	if m.ValidateSessionIDFunc != nil {
		return m.ValidateSessionIDFunc(ctx, sessionID)
	}
	return nil, nil, domain.ErrSessionNotFound
}

func (m *MockSessionService) InvalidateByToken(ctx context.Context, token string) (bool, error) {
	if m.InvalidateByTokenFunc != nil {
		return m.InvalidateByTokenFunc(ctx, token)
	}
	return false, nil
}

func (m *MockSessionService) InvalidateBySessionID(ctx context.Context, sessionID string) (bool, error) {
	if m.InvalidateByIDFunc != nil {
		return m.InvalidateByIDFunc(ctx, sessionID)
	}
	return false, nil
}

func (m *MockSessionService) SweepExpired(ctx context.Context) (int64, error) {
	if m.SweepExpiredFunc != nil {
		return m.SweepExpiredFunc(ctx)
	}
	return 0, nil
}

// MockPhoneResolver implements domain.PhoneResolver for testing
type MockPhoneResolver struct {
	ResolveCustomerFunc func(ctx context.Context, rawPhone string) (*domain.Customer, *domain.User, error)
}

func NewMockPhoneResolver() *MockPhoneResolver {
	return &MockPhoneResolver{}
}

func (m *MockPhoneResolver) ResolveCustomer(ctx context.Context, rawPhone string) (*domain.Customer, *domain.User, error) {
	if m.ResolveCustomerFunc != nil {
		return m.ResolveCustomerFunc(ctx, rawPhone)
	}
	return nil, nil, domain.ErrCustomerNotFound
}

// MockLoginService implements domain.LoginService for testing
type MockLoginService struct {
	LoginFunc  func(ctx context.Context, creds domain.Credentials, step domain.LoginStep, meta domain.SessionMeta) (*domain.AuthResult, *domain.OtpPending, error)
	LogoutFunc func(ctx context.Context, sessionID, token string) (bool, error)

	Steps []domain.LoginStep
}

func NewMockLoginService() *MockLoginService {
	return &MockLoginService{}
}

func (m *MockLoginService) Login(ctx context.Context, creds domain.Credentials, step domain.LoginStep, meta domain.SessionMeta) (*domain.AuthResult, *domain.OtpPending, error) {
	m.Steps = append(m.Steps, step)
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds, step, meta)
	}
	return nil, nil, domain.ErrInvalidCredentials
}

func (m *MockLoginService) Logout(ctx context.Context, sessionID, token string) (bool, error) {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID, token)
	}
	return false, nil
}

// Compile-time interface compliance verification
var (
	_ domain.PasswordService     = (*MockPasswordService)(nil)
	_ domain.TokenService        = (*MockTokenService)(nil)
	_ domain.OTPProvider         = (*MockOTPProvider)(nil)
	_ domain.CredentialValidator = (*MockCredentialValidator)(nil)
	_ domain.OTPService          = (*MockOTPService)(nil)
	_ domain.SessionService      = (*MockSessionService)(nil)
	_ domain.PhoneResolver       = (*MockPhoneResolver)(nil)
	_ domain.LoginService        = (*MockLoginService)(nil)
)
