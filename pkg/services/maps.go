package services

import (
	"fmt"
	"net/url"
	"strings"

	"softwave-landing/pkg/models"
)

// DefaultMapsEmbedURL is the Google Maps Embed API place endpoint
const DefaultMapsEmbedURL = "https://www.google.com/maps/embed/v1/place"

const defaultMapZoom = 15

// MapService builds embeddable map URLs with the server-held API key
type MapService struct {
	apiKey  string
	baseURL string
	zoom    int
}

// NewMapService creates a map service. An empty apiKey is reported on every call.
func NewMapService(apiKey string) *MapService {
	return &MapService{
		apiKey:  apiKey,
		baseURL: DefaultMapsEmbedURL,
		zoom:    defaultMapZoom,
	}
}

// EmbedURL returns the embed URL for the business at address
func (m *MapService) EmbedURL(address, businessName string) (string, error) {
	address, businessName = strings.TrimSpace(address), strings.TrimSpace(businessName)
	if address == "" || businessName == "" {
		return "", models.ErrMissingMapParams
	}

	if m.apiKey == "" {
		return "", models.ErrMapsNotConfigured
	}

	return fmt.Sprintf("%s?key=%s&q=%s&zoom=%d",
		m.baseURL,
		url.QueryEscape(m.apiKey),
		EncodeURIComponent(businessName+", "+address),
		m.zoom,
	), nil
}

// uriComponentUnescaper restores the marks encodeURIComponent leaves alone
var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s the way browsers' encodeURIComponent does
func EncodeURIComponent(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}
