package services

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"softwave-landing/pkg/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// minPhoneDigits is the fewest digits a phone number may contain
const minPhoneDigits = 10

// fieldMessages maps field name and failed tag to the message shown to the lead
var fieldMessages = map[string]map[string]string{
	"firstName": {"required": "First name is required"},
	"lastName":  {"required": "Last name is required"},
	"email": {
		"required":   "Email is required",
		"lead_email": "Please enter a valid email address",
	},
	"phone": {
		"required":     "Phone number is required",
		"phone_digits": "Please enter a valid phone number",
	},
	"painArea":         {"required": "Please tell us about your pain area"},
	"preferredContact": {"oneof": "Please choose email, phone, or text as your preferred contact method"},
}

// SubmissionValidator checks voucher form submissions
type SubmissionValidator struct {
	validate *validator.Validate
}

// NewSubmissionValidator creates a validator with the lead form rules registered
func NewSubmissionValidator() (*SubmissionValidator, error) {
	validate := validator.New()

	// Report json names so errors line up with the form fields
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("lead_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		return nil, err
	}

	if err := validate.RegisterValidation("phone_digits", func(fl validator.FieldLevel) bool {
		return len(Digits(fl.Field().String())) >= minPhoneDigits
	}); err != nil {
		return nil, err
	}

	return &SubmissionValidator{validate: validate}, nil
}

// Validate checks every field of the input and collects all violations in form order.
// The submission is accepted only when no field fails.
func (v *SubmissionValidator) Validate(in models.SubmissionInput) (models.ValidatedSubmission, []models.FieldError) {
	in = trimInput(in)

	err := v.validate.Struct(in)
	if err == nil {
		return models.ValidatedSubmission{
			FirstName:        in.FirstName,
			LastName:         in.LastName,
			Email:            in.Email,
			Phone:            in.Phone,
			PainArea:         in.PainArea,
			PreferredContact: models.ContactMethod(in.PreferredContact),
		}, nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return models.ValidatedSubmission{}, []models.FieldError{{Field: "_form", Message: "Invalid form data"}}
	}

	fieldErrs := make([]models.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrs = append(fieldErrs, models.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe.Field(), fe.Tag()),
		})
	}
	return models.ValidatedSubmission{}, fieldErrs
}

func messageFor(field, tag string) string {
	if msg, ok := fieldMessages[field][tag]; ok {
		return msg
	}
	return "Invalid value for " + field
}

func trimInput(in models.SubmissionInput) models.SubmissionInput {
	return models.SubmissionInput{
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Email:            strings.TrimSpace(in.Email),
		Phone:            strings.TrimSpace(in.Phone),
		PainArea:         strings.TrimSpace(in.PainArea),
		PreferredContact: strings.TrimSpace(in.PreferredContact),
	}
}
