package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a sugared zap logger for env ("production" logs JSON at info level)
func NewLogger(env string) (*zap.SugaredLogger, error) {
	var config zap.Config

	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production":
		config = zap.NewProductionConfig()
		config.DisableStacktrace = true
	default:
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.DisableStacktrace = true
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("cannot init zap logger: %w", err)
	}

	return logger.Named("voucher").Sugar(), nil
}

// MaskEmail hides the local part of an address except its first and last character
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "***"
	}

	local, domain := []rune(email[:at]), email[at:]
	if len(local) <= 2 {
		return string(local[0]) + "*" + domain
	}
	return string(local[0]) + strings.Repeat("*", len(local)-2) + string(local[len(local)-1]) + domain
}
