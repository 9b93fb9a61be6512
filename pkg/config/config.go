package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration values
type Config struct {
	Env  string
	Port string

	BrevoAPIKey  string
	BrevoBaseURL string
	BrevoListIDs []int64

	SenderName         string
	SenderEmail        string
	AdminEmails        []string
	AdminNotifications bool
	NotifyTimeout      time.Duration

	GoogleMapsAPIKey string

	TwilioAccountSid string
	TwilioAuthToken  string
	TwilioFromNumber string

	CORSAllowedOrigins []string

	ClinicName    string
	ClinicAddress string
	ClinicPhone   string
	VoucherValue  string
}

// LoadConfig reads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8080"),

		BrevoAPIKey:  os.Getenv("BREVO_API_KEY"),
		BrevoBaseURL: os.Getenv("BREVO_BASE_URL"),

		SenderName:         getEnv("SENDER_NAME", "Preferred Therapy Services"),
		SenderEmail:        getEnv("SENDER_EMAIL", "noreply@preferredtherapy.com"),
		AdminEmails:        getEnvList("ADMIN_EMAILS", "info@preferredtherapyservice.com"),

		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),

		TwilioAccountSid: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", "*"),

		ClinicName:    getEnv("CLINIC_NAME", "Preferred Therapy Services"),
		ClinicAddress: getEnv("CLINIC_ADDRESS", "6962 Boulder Ave, Highland, CA 92346"),
		ClinicPhone:   getEnv("CLINIC_PHONE", "(909) 123-4567"),
		VoucherValue:  getEnv("VOUCHER_VALUE", "$49"),
	}

	listIDs, err := parseInt64List(getEnv("BREVO_LIST_IDS", "1"))
	if err != nil {
		return nil, fmt.Errorf("BREVO_LIST_IDS: %w", err)
	}
	cfg.BrevoListIDs = listIDs

	if cfg.AdminNotifications, err = getEnvBool("ADMIN_NOTIFICATIONS", true); err != nil {
		return nil, err
	}
	if cfg.NotifyTimeout, err = getEnvDuration("NOTIFY_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	if cfg.NotifyTimeout <= 0 {
		return nil, fmt.Errorf("NOTIFY_TIMEOUT must be positive, got %s", cfg.NotifyTimeout)
	}

	return cfg, nil
}

// BrevoConfigured reports whether the contact/email provider credential is present
func (c *Config) BrevoConfigured() bool {
	return c.BrevoAPIKey != ""
}

// TwilioConfigured reports whether SMS confirmations can be sent
func (c *Config) TwilioConfigured() bool {
	return c.TwilioAccountSid != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, raw)
	}
	return val, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return val, nil
}

// getEnvList splits a comma-separated variable, dropping blanks
func getEnvList(key, fallback string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, fallback), ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseInt64List(s string) ([]int64, error) {
	var out []int64
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid list id %q: %w", item, err)
		}
		out = append(out, id)
	}
	return out, nil
}
