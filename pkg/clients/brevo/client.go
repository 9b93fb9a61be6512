package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"softwave-landing/pkg/models"
)

// DefaultBaseURL is Brevo's public REST endpoint
const DefaultBaseURL = "https://api.brevo.com/v3"

// Client defines the interface for interacting with the Brevo API
type Client interface {
	UpsertContact(ctx context.Context, contact models.Contact) error
	SendEmail(ctx context.Context, email models.Email) error
}

type clientImpl struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// NewClient creates a new Brevo client. An empty baseURL selects DefaultBaseURL.
func NewClient(apiKey, baseURL string, logger *zap.SugaredLogger) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &clientImpl{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// UpsertContact creates the contact or updates it when the email is already known.
// A duplicate_parameter rejection is reported as models.ErrDuplicateContact.
func (c *clientImpl) UpsertContact(ctx context.Context, contact models.Contact) error {
	payload := map[string]interface{}{
		"email":         contact.Email,
		"attributes":    contact.Attributes,
		"updateEnabled": true,
	}
	if len(contact.ListIDs) > 0 {
		payload["listIds"] = contact.ListIDs
	}

	status, body, err := c.post(ctx, "/contacts", payload)
	if err != nil {
		return fmt.Errorf("error creating contact: %w", err)
	}

	// Check for duplicate contact error (400 status code)
	if status == http.StatusBadRequest {
		var errResp apiError
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Code == "duplicate_parameter" {
			return fmt.Errorf("%w: %s", models.ErrDuplicateContact, errResp.Message)
		}
		return fmt.Errorf("error from Brevo API: %s", string(body))
	}

	// 201 when created, 204 when an existing contact was updated
	if status != http.StatusCreated && status != http.StatusNoContent && status != http.StatusOK {
		return fmt.Errorf("error from Brevo API (status %d): %s", status, string(body))
	}

	c.logger.Debugw("Brevo contact upserted", "status", status)
	return nil
}

// SendEmail sends a transactional email
func (c *clientImpl) SendEmail(ctx context.Context, email models.Email) error {
	payload := map[string]interface{}{
		"sender":      email.From,
		"to":          email.To,
		"subject":     email.Subject,
		"htmlContent": email.HTMLContent,
	}
	if len(email.Tags) > 0 {
		payload["tags"] = email.Tags
	}

	status, body, err := c.post(ctx, "/smtp/email", payload)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}

	if status != http.StatusCreated && status != http.StatusOK && status != http.StatusAccepted {
		return fmt.Errorf("error from Brevo API (status %d): %s", status, string(body))
	}

	var response struct {
		MessageID string `json:"messageId"`
	}
	// Brevo always returns a message id, but a missing one is not a delivery failure
	_ = json.Unmarshal(body, &response)

	c.logger.Debugw("Brevo email accepted", "message_id", response.MessageID, "subject", email.Subject)
	return nil
}

func (c *clientImpl) post(ctx context.Context, path string, payload interface{}) (int, []byte, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return 0, nil, fmt.Errorf("error creating request: %w", err)
	}

	// Add authentication headers
	req.Header.Add("api-key", c.apiKey)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("error reading response: %w", err)
	}

	return resp.StatusCode, body, nil
}
