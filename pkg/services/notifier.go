package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"softwave-landing/pkg/metrics"
	"softwave-landing/pkg/models"
	"softwave-landing/pkg/utils"
)

// Notification effects
const (
	EffectContact      = "contact"
	EffectConfirmation = "confirmation_email"
	EffectAdmin        = "admin_email"
	EffectSMS          = "sms"
)

// DefaultEffectTimeout bounds a single outbound call
const DefaultEffectTimeout = 5 * time.Second

// ContactProvider is the contact-management and transactional email service
type ContactProvider interface {
	UpsertContact(ctx context.Context, contact models.Contact) error
	SendEmail(ctx context.Context, email models.Email) error
}

// SMSSender sends text messages to leads who prefer texting
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// OutcomeStatus summarises a notification attempt
type OutcomeStatus string

const (
	OutcomeAllSucceeded   OutcomeStatus = "all_succeeded"
	OutcomePartialFailure OutcomeStatus = "partial_failure"
	OutcomeSkipped        OutcomeStatus = "skipped"
)

// EffectFailure records why one effect did not complete
type EffectFailure struct {
	Effect string
	Err    error
}

// Outcome is the result of dispatching all notifications for one voucher
type Outcome struct {
	Status OutcomeStatus
	// Err is set when every effect was skipped
	Err error

	ContactRegistered     bool
	ConfirmationRequested bool
	ConfirmationSent      bool
	AdminNotified         bool
	SMSSent               bool

	Failures []EffectFailure
}

// Failed reports whether effect was attempted and failed
func (o Outcome) Failed(effect string) bool {
	for _, f := range o.Failures {
		if f.Effect == effect {
			return true
		}
	}
	return false
}

// NotifierConfig selects which notifications are sent and from whom
type NotifierConfig struct {
	Sender             models.Address
	AdminRecipients    []models.Address
	AdminNotifications bool
	ListIDs            []int64
	EffectTimeout      time.Duration
	Clinic             ClinicInfo
}

// Notifier dispatches the outbound effects of an accepted voucher
type Notifier struct {
	provider ContactProvider
	sms      SMSSender
	config   NotifierConfig
	logger   *zap.SugaredLogger
}

// NewNotifier creates a notifier. A nil provider makes every Notify call report OutcomeSkipped,
// a nil sms sender disables text confirmations.
func NewNotifier(provider ContactProvider, sms SMSSender, config NotifierConfig, logger *zap.SugaredLogger) *Notifier {
	if config.EffectTimeout <= 0 {
		config.EffectTimeout = DefaultEffectTimeout
	}

	return &Notifier{
		provider: provider,
		sms:      sms,
		config:   config,
		logger:   logger,
	}
}

// Notify attempts each effect exactly once, concurrently, and waits for all of them.
// Effect errors are folded into the Outcome and never returned.
func (n *Notifier) Notify(ctx context.Context, rec *models.VoucherRecord) Outcome {
	leadHash := utils.LeadKey(rec.Phone)

	if n.provider == nil {
		n.logger.Errorw("Skipping notifications, BREVO_API_KEY is not set",
			"voucher_id", rec.VoucherID, "lead", leadHash)
		return Outcome{Status: OutcomeSkipped, Err: models.ErrProviderNotConfigured}
	}

	confirmationRequested := rec.PreferredContact == models.ContactEmail
	adminRequested := n.config.AdminNotifications && len(n.config.AdminRecipients) > 0
	smsRequested := rec.PreferredContact == models.ContactText && n.sms != nil

	// Caller cancellation does not reach the effects, EffectTimeout bounds each one
	ctx = context.WithoutCancel(ctx)

	// Each goroutine owns exactly one of these; g.Wait publishes them
	var contactErr, confirmErr, adminErr, smsErr error
	snapshot := *rec

	var g errgroup.Group
	g.Go(func() error {
		contactErr = n.runEffect(ctx, EffectContact, func(ctx context.Context) error {
			return n.registerContact(ctx, snapshot)
		})
		return nil
	})
	if confirmationRequested {
		g.Go(func() error {
			confirmErr = n.runEffect(ctx, EffectConfirmation, func(ctx context.Context) error {
				return n.sendConfirmation(ctx, snapshot)
			})
			return nil
		})
	}
	if adminRequested {
		g.Go(func() error {
			adminErr = n.runEffect(ctx, EffectAdmin, func(ctx context.Context) error {
				return n.sendAdminNotification(ctx, snapshot)
			})
			return nil
		})
	}
	if smsRequested {
		g.Go(func() error {
			smsErr = n.runEffect(ctx, EffectSMS, func(ctx context.Context) error {
				return n.sms.SendSMS(ctx, snapshot.Phone, smsBody(snapshot, n.config.Clinic))
			})
			return nil
		})
	}
	_ = g.Wait()

	outcome := Outcome{
		ContactRegistered:     contactErr == nil,
		ConfirmationRequested: confirmationRequested,
		ConfirmationSent:      confirmationRequested && confirmErr == nil,
		AdminNotified:         adminRequested && adminErr == nil,
		SMSSent:               smsRequested && smsErr == nil,
	}

	for _, f := range []EffectFailure{
		{Effect: EffectContact, Err: contactErr},
		{Effect: EffectConfirmation, Err: confirmErr},
		{Effect: EffectAdmin, Err: adminErr},
		{Effect: EffectSMS, Err: smsErr},
	} {
		if f.Err != nil {
			outcome.Failures = append(outcome.Failures, f)
		}
	}

	outcome.Status = OutcomeAllSucceeded
	if len(outcome.Failures) > 0 {
		outcome.Status = OutcomePartialFailure
	}

	if outcome.ConfirmationSent {
		rec.Status = models.VoucherSent
	}

	n.logger.Infow("Notifications dispatched",
		"voucher_id", rec.VoucherID,
		"lead", leadHash,
		"status", outcome.Status,
		"failures", len(outcome.Failures),
	)
	return outcome
}

// runEffect runs fn under the per-effect timeout. It returns when fn does or when the
// timeout fires, whichever is first, so a provider that ignores its context cannot stall
// the request.
func (n *Notifier) runEffect(ctx context.Context, effect string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, n.config.EffectTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("%s panicked: %v", effect, r)
			}
		}()
		done <- fn(ctx)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = fmt.Errorf("%s timed out: %w", effect, ctx.Err())
	}

	metrics.RecordNotification(effect, err == nil)
	if err != nil {
		n.logger.Warnw("Notification effect failed", "effect", effect, "error", err)
	}
	return err
}

func (n *Notifier) registerContact(ctx context.Context, rec models.VoucherRecord) error {
	contact := models.Contact{
		Email: rec.Email,
		Attributes: map[string]interface{}{
			"FIRSTNAME":         rec.FirstName,
			"LASTNAME":          rec.LastName,
			"SMS":               rec.Phone,
			"PAIN_AREA":         rec.PainArea,
			"PREFERRED_CONTACT": string(rec.PreferredContact),
			"VOUCHER_ID":        rec.VoucherID,
			"VOUCHER_STATUS":    string(models.VoucherPending),
		},
		ListIDs: n.config.ListIDs,
	}

	err := n.provider.UpsertContact(ctx, contact)
	if errors.Is(err, models.ErrDuplicateContact) {
		n.logger.Infow("Contact already exists", "voucher_id", rec.VoucherID)
		return nil
	}
	return err
}

func (n *Notifier) sendConfirmation(ctx context.Context, rec models.VoucherRecord) error {
	html, err := renderTemplate(confirmationTmpl, rec, n.config.Clinic)
	if err != nil {
		return err
	}

	return n.provider.SendEmail(ctx, models.Email{
		From:        n.config.Sender,
		To:          []models.Address{{Name: rec.FullName(), Email: rec.Email}},
		Subject:     confirmationSubject(rec, n.config.Clinic),
		HTMLContent: html,
		Tags:        []string{"voucher-confirmation"},
	})
}

func (n *Notifier) sendAdminNotification(ctx context.Context, rec models.VoucherRecord) error {
	html, err := renderTemplate(adminTmpl, rec, n.config.Clinic)
	if err != nil {
		return err
	}

	return n.provider.SendEmail(ctx, models.Email{
		From:        n.config.Sender,
		To:          n.config.AdminRecipients,
		Subject:     adminSubject(rec),
		HTMLContent: html,
		Tags:        []string{"voucher-admin"},
	})
}
