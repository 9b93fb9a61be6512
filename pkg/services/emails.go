package services

import (
	"bytes"
	"fmt"
	"html/template"

	"softwave-landing/pkg/models"
)

// ClinicInfo is the practice contact block printed in lead-facing messages
type ClinicInfo struct {
	Name         string
	Address      string
	Phone        string
	VoucherValue string
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb;">Thank You for Your Interest in SoftWave Therapy!</h2>
  <p>Dear {{.Record.FirstName}},</p>
  <p>We're excited to help you on your journey to pain relief! Your voucher request has been successfully submitted.</p>
  <div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #1f2937; margin-top: 0;">Your Voucher Details:</h3>
    <p><strong>Voucher ID:</strong> {{.Record.VoucherID}}</p>
    <p><strong>Value:</strong> {{.Clinic.VoucherValue}}</p>
    <p><strong>Pain Area:</strong> {{.Record.PainArea}}</p>
    <p><strong>Valid For:</strong> 30 days from today</p>
  </div>
  <h3>Next Steps:</h3>
  <ol>
    <li>We'll contact you within 24 hours to schedule your appointment</li>
    <li>Bring this voucher ID to your first session</li>
    <li>Experience the revolutionary SoftWave therapy treatment</li>
  </ol>
  <p><strong>Contact Information:</strong></p>
  <p>{{.Clinic.Name}}<br>{{.Clinic.Address}}<br>Phone: {{.Clinic.Phone}}</p>
  <p>Best regards,<br>The {{.Clinic.Name}} Team</p>
</div>
`))

var adminTmpl = template.Must(template.New("admin").Parse(`
<p><strong>Voucher ID:</strong> {{.Record.VoucherID}}</p>
<p><strong>Name:</strong> {{.Record.FullName}}</p>
<p><strong>Email:</strong> {{.Record.Email}}</p>
<p><strong>Phone:</strong> {{.Record.Phone}}</p>
<p><strong>Pain Area:</strong> {{.Record.PainArea}}</p>
<p><strong>Preferred Contact Method:</strong> {{.Record.PreferredContact}}</p>
`))

type emailData struct {
	Record models.VoucherRecord
	Clinic ClinicInfo
}

func renderTemplate(tmpl *template.Template, rec models.VoucherRecord, clinic ClinicInfo) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, emailData{Record: rec, Clinic: clinic}); err != nil {
		return "", fmt.Errorf("error rendering %s email: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func confirmationSubject(rec models.VoucherRecord, clinic ClinicInfo) string {
	return fmt.Sprintf("Your %s SoftWave Therapy Voucher - %s", clinic.VoucherValue, rec.VoucherID)
}

func adminSubject(rec models.VoucherRecord) string {
	return "New Voucher Request from " + rec.FullName()
}

func smsBody(rec models.VoucherRecord, clinic ClinicInfo) string {
	return fmt.Sprintf("Hi %s, thanks for requesting your %s SoftWave Therapy voucher (%s). We will text you within 24 hours to schedule. - %s",
		rec.FirstName, clinic.VoucherValue, rec.VoucherID, clinic.Name)
}
