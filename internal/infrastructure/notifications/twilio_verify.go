package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	verify "github.com/twilio/twilio-go/rest/verify/v2"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

// TwilioVerifyService implements domain.OTPProvider on the Twilio Verify
// API. The provider generates and checks the code; this service never
// sees the code value at send time.
type TwilioVerifyService struct {
	client     *twilio.RestClient
	serviceSID string
}

// NewTwilioVerifyService creates a new Twilio Verify provider with a
// bounded request timeout.
func NewTwilioVerifyService(accountSID, authToken, serviceSID string, timeout time.Duration) *TwilioVerifyService {
	base := &twilioclient.Client{
		Credentials: twilioclient.NewCredentials(accountSID, authToken),
	}
	base.SetTimeout(timeout)

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
		Client:   base,
	})

	return &TwilioVerifyService{
		client:     client,
		serviceSID: serviceSID,
	}
}

// SendChallenge implements domain.OTPProvider. The returned SID is the
// correlation id persisted on the challenge row.
func (t *TwilioVerifyService) SendChallenge(ctx context.Context, identifier string) (string, error) {
	if t.serviceSID == "" {
		return "", domain.ErrProviderUnconfigured
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}

	params := &verify.CreateVerificationParams{}
	params.SetTo(identifier)
	params.SetChannel("sms")

	resp, err := t.client.VerifyV2.CreateVerification(t.serviceSID, params)
	if err != nil {
		return "", providerError(err)
	}
	if resp.Sid == nil {
		return "", fmt.Errorf("%w: verification created without sid", domain.ErrProviderUnavailable)
	}
	return *resp.Sid, nil
}

// VerifyChallenge implements domain.OTPProvider. The identifier must be
// in the identical shape used at send time.
func (t *TwilioVerifyService) VerifyChallenge(ctx context.Context, identifier, code, correlationID string) error {
	if t.serviceSID == "" {
		return domain.ErrProviderUnconfigured
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}

	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(identifier)
	params.SetCode(code)
	params.SetVerificationSid(correlationID)

	resp, err := t.client.VerifyV2.CreateVerificationCheck(t.serviceSID, params)
	if err != nil {
		return providerError(err)
	}
	if resp.Status == nil || *resp.Status != "approved" {
		status := "unknown"
		if resp.Status != nil {
			status = *resp.Status
		}
		return fmt.Errorf("%w: status %s", domain.ErrOTPRejected, status)
	}
	return nil
}

// providerError distinguishes Twilio-side rejections from transport or
// service failures. 4xx responses carry the provider's message back to
// the caller; everything else is a dependency failure.
func providerError(err error) error {
	var restErr *twilioclient.TwilioRestError
	if errors.As(err, &restErr) && restErr.Status >= 400 && restErr.Status < 500 {
		return fmt.Errorf("%w: %s", domain.ErrOTPRejected, restErr.Message)
	}
	return fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
}

var _ domain.OTPProvider = (*TwilioVerifyService)(nil)
