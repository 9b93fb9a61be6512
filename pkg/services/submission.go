package services

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"softwave-landing/pkg/logger"
	"softwave-landing/pkg/metrics"
	"softwave-landing/pkg/models"
	"softwave-landing/pkg/utils"
)

// Client-facing messages
const (
	MsgInvalidForm     = "Invalid form data"
	MsgProcessFailed   = "Failed to process voucher request"
	MsgUnavailable     = "Voucher requests are temporarily unavailable. Please try again later."
	MsgUnexpected      = "An unexpected error occurred. Please try again later."
	MsgCheckEmail      = "Voucher request submitted successfully! Check your email for voucher details."
	MsgPhoneFollowUp   = "Voucher created successfully. We will contact you by phone within 24 hours to provide your voucher details."
	msgContactViaFmt   = "Voucher request submitted successfully! We will contact you via %s within 24 hours."
	MsgInvalidJSONBody = "Request body must be valid JSON"
)

// Stage is a step of the per-request submission pipeline
type Stage string

const (
	StageReceived    Stage = "received"
	StageValidating  Stage = "validating"
	StageRejected    Stage = "rejected"
	StageValidated   Stage = "validated"
	StageNormalizing Stage = "normalizing"
	StageNotifying   Stage = "notifying"
	StageResponding  Stage = "responding"
	StageDone        Stage = "done"
)

// VoucherSubmissionService defines the interface for handling voucher form submissions
type VoucherSubmissionService interface {
	ProcessVoucherSubmission(ctx context.Context, in models.SubmissionInput) (int, models.VoucherResponse)
}

type voucherSubmissionServiceImpl struct {
	validator  *SubmissionValidator
	normalizer *Normalizer
	notifier   *Notifier
	logger     *zap.SugaredLogger
}

// NewVoucherSubmissionService creates a new submission service
func NewVoucherSubmissionService(
	validator *SubmissionValidator,
	normalizer *Normalizer,
	notifier *Notifier,
	logger *zap.SugaredLogger,
) VoucherSubmissionService {
	return &voucherSubmissionServiceImpl{
		validator:  validator,
		normalizer: normalizer,
		notifier:   notifier,
		logger:     logger,
	}
}

// ProcessVoucherSubmission handles the entire submission workflow and returns the
// HTTP status with the response body. It never panics.
func (s *voucherSubmissionServiceImpl) ProcessVoucherSubmission(ctx context.Context, in models.SubmissionInput) (status int, resp models.VoucherResponse) {
	stage := StageReceived

	defer func() {
		if r := recover(); r != nil {
			s.logger.Errorw("Voucher pipeline panicked", "stage", stage, "panic", r)
			metrics.RecordSubmission(metrics.ResultFailed)
			status, resp = http.StatusInternalServerError, models.VoucherResponse{Success: false, Message: MsgUnexpected}
		}
	}()

	stage = s.advance(stage, StageValidating)
	validated, fieldErrs := s.validator.Validate(in)
	if len(fieldErrs) > 0 {
		s.advance(stage, StageRejected)
		s.logger.Infow("Voucher submission rejected", "field", fieldErrs[0].Field, "errors", len(fieldErrs))
		metrics.RecordSubmission(metrics.ResultRejected)
		return http.StatusBadRequest, models.VoucherResponse{
			Success: false,
			Message: MsgInvalidForm,
			Error:   fieldErrs[0].Message,
			Errors:  fieldErrs,
		}
	}
	stage = s.advance(stage, StageValidated)

	stage = s.advance(stage, StageNormalizing)
	record, err := s.normalizer.Normalize(validated)
	if err != nil {
		s.logger.Errorw("Error normalizing submission", "error", err)
		metrics.RecordSubmission(metrics.ResultFailed)
		return http.StatusInternalServerError, models.VoucherResponse{Success: false, Message: MsgUnexpected}
	}

	s.logger.Infow("Processing voucher submission",
		"voucher_id", record.VoucherID,
		"lead", utils.LeadKey(record.Phone),
		"email", logger.MaskEmail(record.Email),
		"preferred_contact", record.PreferredContact,
	)

	stage = s.advance(stage, StageNotifying)
	outcome := s.notifier.Notify(ctx, &record)

	stage = s.advance(stage, StageResponding)
	status, resp = s.respond(record, outcome)
	s.advance(stage, StageDone)
	return status, resp
}

// respond maps the notification outcome to the client contract
func (s *voucherSubmissionServiceImpl) respond(record models.VoucherRecord, outcome Outcome) (int, models.VoucherResponse) {
	switch {
	case outcome.Status == OutcomeSkipped:
		metrics.RecordSubmission(metrics.ResultUnavailable)
		return http.StatusInternalServerError, models.VoucherResponse{Success: false, Message: MsgUnavailable}

	case !outcome.ContactRegistered:
		metrics.RecordSubmission(metrics.ResultFailed)
		return http.StatusInternalServerError, models.VoucherResponse{Success: false, Message: MsgProcessFailed}

	case outcome.ConfirmationRequested && !outcome.ConfirmationSent:
		// Email failed but contact was created
		metrics.RecordSubmission(metrics.ResultDegraded)
		return http.StatusOK, models.VoucherResponse{Success: true, VoucherID: record.VoucherID, Message: MsgPhoneFollowUp}
	}

	metrics.RecordSubmission(metrics.ResultAccepted)
	if record.PreferredContact == models.ContactEmail {
		return http.StatusOK, models.VoucherResponse{Success: true, VoucherID: record.VoucherID, Message: MsgCheckEmail}
	}
	return http.StatusOK, models.VoucherResponse{
		Success:   true,
		VoucherID: record.VoucherID,
		Message:   fmt.Sprintf(msgContactViaFmt, record.PreferredContact),
	}
}

func (s *voucherSubmissionServiceImpl) advance(from, to Stage) Stage {
	s.logger.Debugw("Voucher pipeline transition", "from", from, "to", to)
	return to
}
