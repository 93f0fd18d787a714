package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// SessionServiceImpl implements domain.SessionService
type SessionServiceImpl struct {
	sessionRepo domain.SessionRepository
	tokenSvc    domain.TokenService
	now         func() time.Time
}

// NewSessionService creates a new token and session issuer
func NewSessionService(sessionRepo domain.SessionRepository, tokenSvc domain.TokenService) domain.SessionService {
	return &SessionServiceImpl{
		sessionRepo: sessionRepo,
		tokenSvc:    tokenSvc,
		now:         time.Now,
	}
}

// IssueSession implements domain.SessionService: mints a token with the
// fixed claim set and persists a new session row. Only the opaque id is
// returned, never the row.
func (s *SessionServiceImpl) IssueSession(ctx context.Context, user *domain.User, meta domain.SessionMeta) (*domain.AuthResult, error) {
	token, err := s.tokenSvc.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := s.now()
	expiresAt := now.Add(s.tokenSvc.TTL())
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     token,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		IsActive:  true,
		ExpiresAt: expiresAt,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return &domain.AuthResult{
		User:      user,
		Token:     token,
		SessionID: session.ID,
		ExpiresAt: expiresAt,
		ExpiresIn: int64(expiresAt.Sub(now).Seconds()),
	}, nil
}

// Refresh implements domain.SessionService: the session keeps its id,
// the token and expiry rotate in place. The incoming token's signature
// is verified independently of the store row.
func (s *SessionServiceImpl) Refresh(ctx context.Context, token string) (*domain.AuthResult, error) {
	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	claims, err := s.tokenSvc.Validate(token)
	if err != nil {
		return nil, err
	}

	newToken, err := s.tokenSvc.Generate(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := s.now()
	session.Token = newToken
	session.ExpiresAt = now.Add(s.tokenSvc.TTL())
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return &domain.AuthResult{
		User:      &domain.User{ID: claims.UserID, Email: claims.Email, Role: claims.Role},
		Token:     newToken,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
		ExpiresIn: int64(session.ExpiresAt.Sub(now).Seconds()),
	}, nil
}

// ValidateToken implements domain.SessionService. Token signature and
// store-side expiry are independent checks; either failing alone rejects
// the result.
func (s *SessionServiceImpl) ValidateToken(ctx context.Context, token string) (*domain.Session, *domain.TokenClaims, error) {
	claims, err := s.tokenSvc.Validate(token)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if session.Expired(s.now()) {
		return nil, nil, domain.ErrSessionExpired
	}
	return session, claims, nil
}

// ValidateSessionID implements domain.SessionService, validating the
// session's current token through the row.
func (s *SessionServiceImpl) ValidateSessionID(ctx context.Context, sessionID string) (*domain.Session, *domain.TokenClaims, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.Expired(s.now()) || !session.IsActive {
		return nil, nil, domain.ErrSessionExpired
	}

	claims, err := s.tokenSvc.Validate(session.Token)
	if err != nil {
		return nil, nil, err
	}
	return session, claims, nil
}

// InvalidateByToken implements domain.SessionService. Not-found is not
// an error; it reports deleted=false.
func (s *SessionServiceImpl) InvalidateByToken(ctx context.Context, token string) (bool, error) {
	deleted, err := s.sessionRepo.DeleteByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return deleted, nil
}

// InvalidateBySessionID implements domain.SessionService, idempotently.
func (s *SessionServiceImpl) InvalidateBySessionID(ctx context.Context, sessionID string) (bool, error) {
	deleted, err := s.sessionRepo.DeleteByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return deleted, nil
}

// SweepExpired implements domain.SessionService. The sweep only touches
// rows whose expiry has already passed, so it is safe to run while live
// validations are in flight.
func (s *SessionServiceImpl) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.sessionRepo.ExpireOverdue(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return n, nil
}
