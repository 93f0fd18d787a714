package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	loginSvc   domain.LoginService
	sessionSvc domain.SessionService
	resolver   domain.PhoneResolver
	sessions   domain.SessionRepository
	customers  domain.CustomerRepository
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(loginSvc domain.LoginService, sessionSvc domain.SessionService, resolver domain.PhoneResolver, sessions domain.SessionRepository, customers domain.CustomerRepository) *AuthHandlers {
	return &AuthHandlers{
		loginSvc:   loginSvc,
		sessionSvc: sessionSvc,
		resolver:   resolver,
		sessions:   sessions,
		customers:  customers,
	}
}

// LoginRequest is the role-agnostic login envelope. Step names follow the
// client protocol; when step is omitted the presence of an OTP code marks
// the completing call.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
	OTP      string `json:"otp,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
	Step     string `json:"step,omitempty"`
}

// PhoneLoginRequest is the phone-first customer login envelope.
type PhoneLoginRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp,omitempty"`
	Step  string `json:"step,omitempty"`
}

// RefreshRequest carries the current bearer token to rotate.
type RefreshRequest struct {
	Token string `json:"token" binding:"required"`
}

// LogoutRequest invalidates by session id or token, whichever is given.
type LogoutRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Token     string `json:"token,omitempty"`
}

// stepFromRequest maps the wire envelope onto a tagged step variant.
func stepFromRequest(req *LoginRequest) (domain.LoginStep, error) {
	switch strings.ToLower(strings.TrimSpace(req.Step)) {
	case "":
		if req.OTP != "" {
			return domain.CompleteStep{Code: req.OTP}, nil
		}
		return domain.BeginStep{}, nil
	case "resend", "resend_otp":
		return domain.ResendStep{}, nil
	case "final_login":
		return domain.CompleteStep{Code: req.OTP}, nil
	}
	return nil, domain.ErrStepNotAllowed
}

func phoneStepFromRequest(req *PhoneLoginRequest) (domain.LoginStep, error) {
	switch strings.ToLower(strings.TrimSpace(req.Step)) {
	case "":
		if req.OTP != "" {
			return domain.PhoneVerifyStep{Phone: req.Phone, Code: req.OTP}, nil
		}
		return domain.PhoneBeginStep{Phone: req.Phone}, nil
	case "send_otp":
		return domain.PhoneOtpStep{Phone: req.Phone}, nil
	case "verify_otp":
		return domain.PhoneVerifyStep{Phone: req.Phone, Code: req.OTP}, nil
	}
	return nil, domain.ErrStepNotAllowed
}

// Login drives the credential-based login protocol for all four roles.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	step, err := stepFromRequest(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown login step"})
		return
	}

	creds := domain.Credentials{
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		MobileOverride: req.Mobile,
	}
	result, pending, err := h.loginSvc.Login(c.Request.Context(), creds, step, metaFrom(c))
	if err != nil {
		respondLoginError(c, err)
		return
	}

	if pending != nil {
		c.JSON(http.StatusOK, gin.H{"data": pendingBody(pending)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resultBody(result)})
}

// PhoneLogin drives the phone-first customer self-service flow.
func (h *AuthHandlers) PhoneLogin(c *gin.Context) {
	var req PhoneLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	step, err := phoneStepFromRequest(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown login step"})
		return
	}

	result, pending, err := h.loginSvc.Login(c.Request.Context(), domain.Credentials{}, step, metaFrom(c))
	if err != nil {
		respondLoginError(c, err)
		return
	}

	if pending != nil {
		c.JSON(http.StatusOK, gin.H{"data": pendingBody(pending)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resultBody(result)})
}

// Refresh rotates the token of an existing session in place.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.sessionSvc.Refresh(c.Request.Context(), req.Token)
	if err != nil {
		switch domain.ClassOf(err) {
		case domain.ClassAuthentication, domain.ClassNotFound:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resultBody(result)})
}

// Logout invalidates a session. Missing sessions yield a not-found
// outcome, never a server error.
func (h *AuthHandlers) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.SessionID == "" && req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id or token is required"})
		return
	}

	deleted, err := h.loginSvc.Logout(c.Request.Context(), req.SessionID, req.Token)
	if err != nil && domain.ClassOf(err) != domain.ClassNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"data": gin.H{"deleted": false, "message": "Session not found"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

// Validate checks the bearer token against both its signature and the
// session store.
func (h *AuthHandlers) Validate(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		return
	}

	session, claims, err := h.sessionSvc.ValidateToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"session_id": session.ID,
		"user_id":    claims.UserID,
		"role":       claims.Role,
		"expires_at": session.ExpiresAt,
	}})
}

// Me returns the authenticated caller's identity as seen by the session
// middleware.
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, _ := c.Get("user_id")
	role, _ := c.Get("user_role")
	email, _ := c.Get("user_email")
	sessionID, _ := c.Get("session_id")

	body := gin.H{
		"user_id":    userID,
		"email":      email,
		"role":       role,
		"session_id": sessionID,
	}

	// customers get their linked business profile, when one exists
	if role == domain.RoleCustomer {
		if id, err := strconv.ParseUint(userID.(string), 10, 32); err == nil {
			if customer, err := h.customers.FindByUserID(c.Request.Context(), uint(id)); err == nil {
				body["customer_id"] = customer.ID
				body["customer_name"] = customer.Name
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": body})
}

// SessionsByPhone resolves a loosely formatted phone number to a person
// and lists their live sessions.
func (h *AuthHandlers) SessionsByPhone(c *gin.Context) {
	phone := c.Param("phone")

	customer, user, err := h.resolver.ResolveCustomer(c.Request.Context(), phone)
	if err != nil {
		switch domain.ClassOf(err) {
		case domain.ClassNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "No person found for phone"})
		case domain.ClassValidation:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
		}
		return
	}

	sessions, err := h.sessions.FindActiveByUserID(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
		return
	}

	list := make([]gin.H, 0, len(sessions))
	for _, s := range sessions {
		list = append(list, gin.H{
			"session_id": s.ID,
			"created_at": s.CreatedAt,
			"expires_at": s.ExpiresAt,
			"ip_address": s.IPAddress,
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"user_id":     user.ID,
		"customer_id": customer.ID,
		"sessions":    list,
	}})
}

// respondLoginError maps the error taxonomy onto transport statuses. The
// generic invalid-credentials message never reveals whether the email
// exists; provider messages pass through so callers know to retry.
func respondLoginError(c *gin.Context, err error) {
	switch domain.ClassOf(err) {
	case domain.ClassValidation:
		if errors.Is(err, domain.ErrResendThrottled) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.ClassAuthentication:
		if errors.Is(err, domain.ErrOTPRejected) || errors.Is(err, domain.ErrOTPMaxAttempts) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, domain.ErrUserInactive) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case domain.ClassNotFound:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case domain.ClassDependency:
		log.Printf("login: dependency failure: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case domain.ClassConfiguration:
		log.Printf("login: configuration failure: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service misconfigured"})
	default:
		log.Printf("login: unexpected failure: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
	}
}

func pendingBody(p *domain.OtpPending) gin.H {
	return gin.H{
		"mobile":       p.MaskedMobile,
		"request_id":   p.ProviderSID,
		"next_step":    p.NextStep,
		"otp_required": true,
		"expires_at":   p.ExpiresAt,
	}
}

func resultBody(r *domain.AuthResult) gin.H {
	return gin.H{
		"token":      r.Token,
		"token_type": "Bearer",
		"session_id": r.SessionID,
		"user_id":    r.User.ID,
		"role":       r.User.Role,
		"expires_at": r.ExpiresAt,
		"expires_in": r.ExpiresIn,
	}
}

func metaFrom(c *gin.Context) domain.SessionMeta {
	return domain.SessionMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
