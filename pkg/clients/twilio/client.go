package twilio

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// Client defines the interface for sending text messages through Twilio
type Client interface {
	SendSMS(ctx context.Context, to, body string) error
}

type clientImpl struct {
	client     *twilio.RestClient
	fromNumber string
	logger     *zap.SugaredLogger
}

// NewClient creates a new Twilio client
func NewClient(accountSid, authToken, fromNumber string, logger *zap.SugaredLogger) Client {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return &clientImpl{
		client:     client,
		fromNumber: fromNumber,
		logger:     logger,
	}
}

// SendSMS sends body to a North American number given in any common format
func (c *clientImpl) SendSMS(ctx context.Context, to, body string) error {
	// The SDK does not take a context, so only honour one that is already done
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("error sending sms: %w", err)
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(ToE164(to))
	params.SetFrom(c.fromNumber)
	params.SetBody(body)

	resp, err := c.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("error sending sms: %w", err)
	}

	if resp.Sid != nil {
		c.logger.Debugw("Twilio message queued", "sid", *resp.Sid)
	}
	return nil
}

// ToE164 converts a US/Canada number to +1XXXXXXXXXX. Other lengths are prefixed with + as is.
func ToE164(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	// Add "1" to the beginning of the phone number if not already present
	if len(digits) == 10 {
		digits = "1" + digits
	}
	return "+" + digits
}
