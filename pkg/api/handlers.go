package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"softwave-landing/pkg/models"
	"softwave-landing/pkg/services"
)

// maxBodyBytes caps the voucher form body
const maxBodyBytes = 16 << 10

// MapURLBuilder builds the embeddable map URL
type MapURLBuilder interface {
	EmbedURL(address, businessName string) (string, error)
}

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	submissionService services.VoucherSubmissionService
	maps              MapURLBuilder
	logger            *zap.SugaredLogger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(submissionService services.VoucherSubmissionService, maps MapURLBuilder, logger *zap.SugaredLogger) *Handlers {
	return &Handlers{
		submissionService: submissionService,
		maps:              maps,
		logger:            logger,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleVoucherSubmission processes the voucher form posted by the landing page
func (h *Handlers) HandleVoucherSubmission(c *gin.Context) {
	var input models.SubmissionInput

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	// Bind JSON only; field rules are checked by the submission service
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Infow("Error parsing voucher request body", "error", err)
		c.JSON(http.StatusBadRequest, models.VoucherResponse{
			Success: false,
			Message: services.MsgInvalidForm,
			Error:   services.MsgInvalidJSONBody,
		})
		return
	}

	status, resp := h.submissionService.ProcessVoucherSubmission(c.Request.Context(), input)
	c.JSON(status, resp)
}

// HandleMapURL returns the map embed URL for the clinic without exposing the API key
func (h *Handlers) HandleMapURL(c *gin.Context) {
	mapSrc, err := h.maps.EmbedURL(c.Query("address"), c.Query("businessName"))

	switch {
	case errors.Is(err, models.ErrMissingMapParams):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Address and business name are required"})
	case errors.Is(err, models.ErrMapsNotConfigured):
		h.logger.Error("GOOGLE_MAPS_API_KEY not found in environment variables")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Maps service not configured"})
	case err != nil:
		h.logger.Errorw("Error generating map URL", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate map URL"})
	default:
		c.JSON(http.StatusOK, models.MapResponse{MapSrc: mapSrc})
	}
}
