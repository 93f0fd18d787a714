package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// Next-step markers returned to clients on OTP-pending responses.
const (
	StepFinalLogin = "final_login"
	StepSendOTP    = "send_otp"
	StepVerifyOTP  = "verify_otp"
)

// LoginServiceImpl implements domain.LoginService. It owns the step
// transitions; credential checks, challenges and session issuance are
// delegated. Rejections retain no partial progress: every failed step
// sends the caller back to the start with fresh credentials.
type LoginServiceImpl struct {
	validator  domain.CredentialValidator
	otpSvc     domain.OTPService
	sessionSvc domain.SessionService
	resolver   domain.PhoneResolver
}

// NewLoginService creates the login orchestrator
func NewLoginService(validator domain.CredentialValidator, otpSvc domain.OTPService, sessionSvc domain.SessionService, resolver domain.PhoneResolver) domain.LoginService {
	return &LoginServiceImpl{
		validator:  validator,
		otpSvc:     otpSvc,
		sessionSvc: sessionSvc,
		resolver:   resolver,
	}
}

// Login implements domain.LoginService. Exactly one of the result and
// pending values is non-nil on success.
func (s *LoginServiceImpl) Login(ctx context.Context, creds domain.Credentials, step domain.LoginStep, meta domain.SessionMeta) (*domain.AuthResult, *domain.OtpPending, error) {
	switch st := step.(type) {
	case domain.BeginStep:
		return s.begin(ctx, creds, meta)
	case domain.ResendStep:
		return s.resend(ctx, creds)
	case domain.CompleteStep:
		return s.complete(ctx, creds, st.Code, meta)
	case domain.PhoneBeginStep:
		return s.phoneBegin(ctx, st.Phone)
	case domain.PhoneOtpStep:
		return s.phoneOtp(ctx, st.Phone)
	case domain.PhoneVerifyStep:
		return s.phoneVerify(ctx, st.Phone, st.Code, meta)
	}
	return nil, nil, fmt.Errorf("unhandled login step %T", step)
}

// begin validates credentials, then either issues the session directly
// (single-step roles) or sends a challenge (two-factor roles). A
// credential failure short-circuits before any send.
func (s *LoginServiceImpl) begin(ctx context.Context, creds domain.Credentials, meta domain.SessionMeta) (*domain.AuthResult, *domain.OtpPending, error) {
	if !domain.RequiresOTP(creds.Role) {
		user, err := s.validator.Validate(ctx, creds.Email, creds.Password, creds.Role, true)
		if err != nil {
			return nil, nil, err
		}
		result, err := s.sessionSvc.IssueSession(ctx, user, meta)
		return result, nil, err
	}

	user, err := s.validator.Validate(ctx, creds.Email, creds.Password, creds.Role, false)
	if err != nil {
		return nil, nil, err
	}

	pending, err := s.otpSvc.Issue(ctx, user, creds.MobileOverride)
	if err != nil {
		return nil, nil, err
	}
	pending.NextStep = StepFinalLogin
	return nil, pending, nil
}

// resend re-validates credentials before sending a fresh challenge; a
// prior still-active challenge stays in place and the most-recent-active
// selection rule decides which one verification will use.
func (s *LoginServiceImpl) resend(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, *domain.OtpPending, error) {
	if !domain.RequiresOTP(creds.Role) {
		return nil, nil, domain.ErrStepNotAllowed
	}

	user, err := s.validator.Validate(ctx, creds.Email, creds.Password, creds.Role, false)
	if err != nil {
		return nil, nil, err
	}

	pending, err := s.otpSvc.Issue(ctx, user, creds.MobileOverride)
	if err != nil {
		return nil, nil, err
	}
	pending.NextStep = StepFinalLogin
	return nil, pending, nil
}

// complete verifies the code, re-validates credentials (the password may
// have changed between steps) and only then issues the session. OTP
// success without the final credential re-check never issues.
func (s *LoginServiceImpl) complete(ctx context.Context, creds domain.Credentials, code string, meta domain.SessionMeta) (*domain.AuthResult, *domain.OtpPending, error) {
	if !domain.RequiresOTP(creds.Role) {
		return nil, nil, domain.ErrStepNotAllowed
	}
	if strings.TrimSpace(code) == "" {
		return nil, nil, domain.ErrMissingOTPCode
	}

	user, err := s.validator.Validate(ctx, creds.Email, creds.Password, creds.Role, false)
	if err != nil {
		return nil, nil, err
	}

	if err := s.otpSvc.VerifyCode(ctx, user, code); err != nil {
		return nil, nil, err
	}

	user, err = s.validator.Validate(ctx, creds.Email, creds.Password, creds.Role, true)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.sessionSvc.IssueSession(ctx, user, meta)
	return result, nil, err
}

// phoneBegin validates that the raw phone resolves to a linked
// identity+customer pair. No challenge is sent yet.
func (s *LoginServiceImpl) phoneBegin(ctx context.Context, phone string) (*domain.AuthResult, *domain.OtpPending, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, nil, domain.ErrMissingPhone
	}
	_, user, err := s.resolver.ResolveCustomer(ctx, phone)
	if err != nil {
		return nil, nil, err
	}
	return nil, &domain.OtpPending{
		MaskedMobile: MaskMobile(user.Mobile),
		NextStep:     StepSendOTP,
	}, nil
}

// phoneOtp sends a challenge for a validated phone.
func (s *LoginServiceImpl) phoneOtp(ctx context.Context, phone string) (*domain.AuthResult, *domain.OtpPending, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, nil, domain.ErrMissingPhone
	}
	_, user, err := s.resolver.ResolveCustomer(ctx, phone)
	if err != nil {
		return nil, nil, err
	}
	pending, err := s.otpSvc.Issue(ctx, user, phone)
	if err != nil {
		return nil, nil, err
	}
	pending.NextStep = StepVerifyOTP
	return nil, pending, nil
}

// phoneVerify finishes the phone-first flow: the token is minted from
// the resolved identity, never from submitted credentials.
func (s *LoginServiceImpl) phoneVerify(ctx context.Context, phone, code string, meta domain.SessionMeta) (*domain.AuthResult, *domain.OtpPending, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, nil, domain.ErrMissingPhone
	}
	if strings.TrimSpace(code) == "" {
		return nil, nil, domain.ErrMissingOTPCode
	}

	_, user, err := s.resolver.ResolveCustomer(ctx, phone)
	if err != nil {
		return nil, nil, err
	}

	if err := s.otpSvc.VerifyCode(ctx, user, code); err != nil {
		return nil, nil, err
	}

	result, err := s.sessionSvc.IssueSession(ctx, user, meta)
	return result, nil, err
}

// Logout implements domain.LoginService, invalidating by session id or
// token, whichever is supplied. Calling it twice with the same id is
// safe; the second call reports not-found.
func (s *LoginServiceImpl) Logout(ctx context.Context, sessionID, token string) (bool, error) {
	switch {
	case sessionID != "":
		return s.sessionSvc.InvalidateBySessionID(ctx, sessionID)
	case token != "":
		return s.sessionSvc.InvalidateByToken(ctx, token)
	}
	log.Printf("logout: request carried neither session id nor token")
	return false, domain.ErrSessionNotFound
}
