package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		rawQuery string
		want     string
	}{
		{"no query", "/map-url", "", "/map-url"},
		{"safe params", "/map-url", "address=1+Main&businessName=Clinic", "/map-url?address=1+Main&businessName=Clinic"},
		{"api key", "/map-url", "key=secret&address=x", "/map-url?key=[REDACTED]&address=x"},
		{"case insensitive", "/x", "API_KEY=abc", "/x?API_KEY=[REDACTED]"},
		{"pii", "/x", "email=jane%40example.com&phone=555", "/x?email=[REDACTED]&phone=[REDACTED]"},
		{"malformed only", "/x", "flag", "/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizePath(tt.path, tt.rawQuery))
		})
	}
}

func TestRequestLoggerLogsRequests(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.Use(RequestID(), RequestLogger(zap.New(core).Sugar()))
	router.GET("/map-url", func(c *gin.Context) { c.Status(http.StatusTeapot) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/map-url?key=abc", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	entries := logs.All()
	require.Len(t, entries, 1, "health checks are not logged")

	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/map-url?key=[REDACTED]", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.Equal(t, rec.Header().Get(RequestIDHeader), fields["request_id"])
}

func TestRequestLoggerWarnsOnServerErrors(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.Use(RequestLogger(zap.New(core).Sugar()))
	router.POST("/vouchers", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/vouchers", nil))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zap.WarnLevel, logs.All()[0].Level)
}

func TestRequestIDGeneratedAndPropagated(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id", rec.Header().Get(RequestIDHeader))
}

func TestRecoveryReturnsJSON(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core).Sugar()))
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"An unexpected error occurred. Please try again later."}`, rec.Body.String())
	assert.Equal(t, 1, logs.Len())
}

func TestRequestLoggerSeesRecoveredPanics(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core).Sugar()

	router := gin.New()
	router.Use(RequestLogger(logger), Recovery(logger))
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	requests := logs.FilterMessage("request").All()
	require.Len(t, requests, 1)
	assert.Equal(t, zap.WarnLevel, requests[0].Level)
	assert.EqualValues(t, http.StatusInternalServerError, requests[0].ContextMap()["status"])
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"https://softwave.example.com"}))
	router.POST("/vouchers", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/vouchers", nil)
	req.Header.Set("Origin", "https://softwave.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://softwave.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/vouchers", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCORSWildcard(t *testing.T) {
	router := gin.New()
	router.Use(CORS([]string{"*"}))
	router.GET("/map-url", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/map-url", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
