package models

import "time"

// VoucherStatus is the transient delivery state of a voucher during one request
type VoucherStatus string

const (
	VoucherPending VoucherStatus = "pending"
	VoucherSent    VoucherStatus = "sent"
)

// VoucherRecord is an accepted submission with its generated voucher ID.
// It lives only for the duration of the request and is never stored.
type VoucherRecord struct {
	ValidatedSubmission
	VoucherID string
	Status    VoucherStatus
	CreatedAt time.Time
}

// VoucherResponse is the JSON contract of POST /vouchers
type VoucherResponse struct {
	Success   bool         `json:"success"`
	VoucherID string       `json:"voucherId,omitempty"`
	Message   string       `json:"message"`
	Error     string       `json:"error,omitempty"`
	Errors    []FieldError `json:"errors,omitempty"`
}

// MapResponse is the JSON contract of GET /map-url
type MapResponse struct {
	MapSrc string `json:"mapSrc"`
}
