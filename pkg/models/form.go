package models

// ContactMethod is the channel a lead wants to be reached on
type ContactMethod string

const (
	ContactEmail ContactMethod = "email"
	ContactPhone ContactMethod = "phone"
	ContactText  ContactMethod = "text"
)

// Represents the data structure coming from the voucher form on the landing page
type SubmissionInput struct {
	FirstName        string `json:"firstName" validate:"required"`
	LastName         string `json:"lastName" validate:"required"`
	Email            string `json:"email" validate:"required,lead_email"`
	Phone            string `json:"phone" validate:"required,phone_digits"`
	PainArea         string `json:"painArea" validate:"required"`
	PreferredContact string `json:"preferredContact" validate:"oneof=email phone text"`
}

// ValidatedSubmission holds a trimmed submission whose fields all satisfied their constraints
type ValidatedSubmission struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	PainArea         string
	PreferredContact ContactMethod
}

// FullName joins first and last name for greetings and email recipients
func (v ValidatedSubmission) FullName() string {
	return v.FirstName + " " + v.LastName
}

// FieldError describes one violated field constraint
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
