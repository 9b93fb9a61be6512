package brevo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"softwave-landing/pkg/models"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("xkeysib-test", srv.URL, zap.NewNop().Sugar())
}

func TestUpsertContactSendsPayload(t *testing.T) {
	var got map[string]interface{}
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/contacts", r.URL.Path)
		assert.Equal(t, "xkeysib-test", r.Header.Get("api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42}`))
	})

	err := client.UpsertContact(context.Background(), models.Contact{
		Email:      "jane@example.com",
		Attributes: map[string]interface{}{"FIRSTNAME": "Jane"},
		ListIDs:    []int64{1, 4},
	})
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", got["email"])
	assert.Equal(t, true, got["updateEnabled"])
	assert.Equal(t, []interface{}{float64(1), float64(4)}, got["listIds"])
	assert.Equal(t, map[string]interface{}{"FIRSTNAME": "Jane"}, got["attributes"])
}

func TestUpsertContactUpdatedExisting(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.UpsertContact(context.Background(), models.Contact{Email: "jane@example.com"}))
}

func TestUpsertContactDuplicate(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"duplicate_parameter","message":"Contact already exist"}`))
	})

	err := client.UpsertContact(context.Background(), models.Contact{Email: "jane@example.com"})
	assert.ErrorIs(t, err, models.ErrDuplicateContact)
}

func TestUpsertContactOtherBadRequest(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"invalid_parameter","message":"email is not valid"}`))
	})

	err := client.UpsertContact(context.Background(), models.Contact{Email: "x"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrDuplicateContact)
	assert.Contains(t, err.Error(), "invalid_parameter")
}

func TestUpsertContactServerError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized","message":"Key not found"}`))
	})

	err := client.UpsertContact(context.Background(), models.Contact{Email: "jane@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSendEmail(t *testing.T) {
	var got struct {
		Sender      models.Address   `json:"sender"`
		To          []models.Address `json:"to"`
		Subject     string           `json:"subject"`
		HTMLContent string           `json:"htmlContent"`
		Tags        []string         `json:"tags"`
	}
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/smtp/email", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<202406101200.123@smtp-relay.mailin.fr>"}`))
	})

	err := client.SendEmail(context.Background(), models.Email{
		From:        models.Address{Name: "Clinic", Email: "noreply@clinic.test"},
		To:          []models.Address{{Name: "Jane Doe", Email: "jane@example.com"}},
		Subject:     "Your voucher",
		HTMLContent: "<p>hi</p>",
		Tags:        []string{"voucher-confirmation"},
	})
	require.NoError(t, err)

	assert.Equal(t, "noreply@clinic.test", got.Sender.Email)
	assert.Equal(t, "Jane Doe", got.To[0].Name)
	assert.Equal(t, "Your voucher", got.Subject)
	assert.Equal(t, "<p>hi</p>", got.HTMLContent)
	assert.Equal(t, []string{"voucher-confirmation"}, got.Tags)
}

func TestSendEmailRejected(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"invalid_parameter","message":"sender is not valid"}`))
	})

	err := client.SendEmail(context.Background(), models.Email{To: []models.Address{{Email: "jane@example.com"}}})
	assert.Error(t, err)
}

func TestRequestsHonourContext(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
		w.WriteHeader(http.StatusCreated)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := client.SendEmail(ctx, models.Email{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClientDefaultsBaseURL(t *testing.T) {
	c := NewClient("k", "", zap.NewNop().Sugar()).(*clientImpl)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}
