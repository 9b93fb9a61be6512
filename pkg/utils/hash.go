package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString creates a SHA-256 hash of the input string
func HashString(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// LeadKey identifies a lead in logs without exposing the phone number.
// Only digits are hashed so "(555) 123-4567" and "5551234567" share a key.
func LeadKey(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return HashString(digits)[:16]
}
