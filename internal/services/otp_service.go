package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// OTPServiceImpl implements domain.OTPService. Challenge rows live in
// the relational store; the resend throttle lives in Redis so it expires
// on its own.
type OTPServiceImpl struct {
	provider      domain.OTPProvider
	challengeRepo domain.ChallengeRepository
	redisClient   *redis.Client
	config        OTPConfig
	now           func() time.Time
}

type OTPConfig struct {
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
	CountryCode  string
}

// NewOTPService creates a new OTP challenge service
func NewOTPService(provider domain.OTPProvider, challengeRepo domain.ChallengeRepository, redisClient *redis.Client, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		provider:      provider,
		challengeRepo: challengeRepo,
		redisClient:   redisClient,
		config:        config,
		now:           time.Now,
	}
}

// Issue implements domain.OTPService. The identity's on-file mobile wins
// over any caller-supplied override; the provider generates the code and
// the returned correlation id is persisted on the challenge row.
func (s *OTPServiceImpl) Issue(ctx context.Context, user *domain.User, mobileOverride string) (*domain.OtpPending, error) {
	target := strings.TrimSpace(user.Mobile)
	if target == "" {
		target = strings.TrimSpace(mobileOverride)
	}

	canonical := CanonicalMobile(target, s.config.CountryCode)
	if canonical == "" {
		return nil, domain.ErrMissingPhone
	}

	if wait, throttled := s.resendWait(ctx, canonical); throttled {
		return nil, fmt.Errorf("%w: retry in %d seconds", domain.ErrResendThrottled, wait)
	}

	sid, err := s.provider.SendChallenge(ctx, ProviderMobile(canonical, s.config.CountryCode))
	if err != nil {
		return nil, err
	}

	challenge := &domain.OtpChallenge{
		UserID:      user.ID,
		Mobile:      canonical,
		Purpose:     domain.OtpPurposeLogin,
		ProviderSID: sid,
		MaxAttempts: s.config.MaxAttempts,
		ExpiresAt:   s.now().Add(s.config.TTL),
	}
	if err := s.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	s.setResendThrottle(ctx, canonical)

	return &domain.OtpPending{
		MaskedMobile: MaskMobile(canonical),
		ProviderSID:  sid,
		ExpiresAt:    challenge.ExpiresAt,
	}, nil
}

// VerifyCode implements domain.OTPService. The most recent active
// challenge governs; a challenge without a correlation id can never be
// verified. The provider is authoritative for code correctness.
func (s *OTPServiceImpl) VerifyCode(ctx context.Context, user *domain.User, code string) error {
	challenge, err := s.challengeRepo.FindMostRecentActive(ctx, user.ID, domain.OtpPurposeLogin)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveChallenge) {
			return domain.ErrNoActiveChallenge
		}
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if challenge.ProviderSID == "" {
		return domain.ErrChallengeUnusable
	}

	// audit trail only; the stored value is never compared against
	if err := s.challengeRepo.RecordEnteredCode(ctx, challenge.ID, code); err != nil {
		log.Printf("otp: recording entered code failed for challenge %d: %v", challenge.ID, err)
	}

	if challenge.Attempts >= challenge.MaxAttempts {
		return domain.ErrOTPMaxAttempts
	}

	err = s.provider.VerifyChallenge(ctx, ProviderMobile(challenge.Mobile, s.config.CountryCode), code, challenge.ProviderSID)
	if err != nil {
		if errors.Is(err, domain.ErrOTPRejected) {
			if ierr := s.challengeRepo.IncrementAttempts(ctx, challenge.ID); ierr != nil {
				log.Printf("otp: attempt increment failed for challenge %d: %v", challenge.ID, ierr)
			}
		}
		return err
	}

	if err := s.challengeRepo.MarkUsed(ctx, challenge.ID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// resendWait reports whether the resend window for a number is still
// open and how many seconds remain.
func (s *OTPServiceImpl) resendWait(ctx context.Context, canonical string) (int64, bool) {
	if s.redisClient == nil {
		return 0, false
	}
	ttl, err := s.redisClient.TTL(ctx, resendKey(canonical)).Result()
	if err != nil {
		log.Printf("otp: resend throttle check failed for %s: %v", MaskMobile(canonical), err)
		return 0, false
	}
	if ttl <= 0 {
		return 0, false
	}
	return int64(ttl.Seconds()), true
}

func (s *OTPServiceImpl) setResendThrottle(ctx context.Context, canonical string) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Set(ctx, resendKey(canonical), 1, s.config.ResendWindow).Err(); err != nil {
		log.Printf("otp: resend throttle write failed for %s: %v", MaskMobile(canonical), err)
	}
}

func resendKey(canonical string) string {
	return "otp:res:" + canonical
}
