package models

import "errors"

var (
	// ErrProviderNotConfigured means the contact/email provider has no credential
	ErrProviderNotConfigured = errors.New("contact provider not configured")
	// ErrDuplicateContact is returned by providers when the contact already exists
	ErrDuplicateContact = errors.New("contact already exists")

	ErrMapsNotConfigured = errors.New("maps api key not configured")
	ErrMissingMapParams  = errors.New("address and business name are required")
)
