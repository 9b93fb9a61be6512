package services

import (
	"context"
	"sync"
	"time"

	"softwave-landing/pkg/models"
)

type fakeProvider struct {
	mu       sync.Mutex
	contacts []models.Contact
	emails   []models.Email

	upsertErr error
	// emailErr decides the result per message, nil means success
	emailErr func(models.Email) error
	delay    time.Duration
}

func (f *fakeProvider) UpsertContact(ctx context.Context, contact models.Contact) error {
	if err := f.wait(ctx); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts = append(f.contacts, contact)
	return f.upsertErr
}

func (f *fakeProvider) SendEmail(ctx context.Context, email models.Email) error {
	if err := f.wait(ctx); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.emails = append(f.emails, email)
	if f.emailErr != nil {
		return f.emailErr(email)
	}
	return nil
}

func (f *fakeProvider) wait(ctx context.Context) error {
	if f.delay == 0 {
		return nil
	}
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeProvider) contactCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.contacts)
}

func (f *fakeProvider) sentEmails() []models.Email {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Email(nil), f.emails...)
}

type fakeSMS struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeSMS) SendSMS(_ context.Context, to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to+": "+body)
	return f.err
}

func testNotifierConfig() NotifierConfig {
	return NotifierConfig{
		Sender:             models.Address{Name: "Preferred Therapy Services", Email: "noreply@clinic.test"},
		AdminRecipients:    []models.Address{{Email: "front@clinic.test"}},
		AdminNotifications: true,
		ListIDs:            []int64{1},
		EffectTimeout:      time.Second,
		Clinic: ClinicInfo{
			Name:         "Preferred Therapy Services",
			Address:      "6962 Boulder Ave, Highland, CA 92346",
			Phone:        "(909) 123-4567",
			VoucherValue: "$49",
		},
	}
}

func isConfirmation(e models.Email) bool {
	return len(e.Tags) > 0 && e.Tags[0] == "voucher-confirmation"
}
