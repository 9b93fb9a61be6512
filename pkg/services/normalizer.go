package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"softwave-landing/pkg/models"
)

const (
	voucherPrefix   = "SW"
	voucherTokenLen = 6
)

// 36^6 possible tokens
var voucherTokenSpace = big.NewInt(2176782336)

// Normalizer turns validated submissions into voucher records
type Normalizer struct {
	now   func() time.Time
	token func() (string, error)
}

// NewNormalizer creates a normalizer using the wall clock and crypto/rand
func NewNormalizer() *Normalizer {
	return &Normalizer{
		now:   time.Now,
		token: randomToken,
	}
}

// Normalize formats the phone number and assigns a fresh voucher ID.
// IDs are not checked against earlier ones, uniqueness is only probabilistic.
func (n *Normalizer) Normalize(v models.ValidatedSubmission) (models.VoucherRecord, error) {
	createdAt := n.now()

	token, err := n.token()
	if err != nil {
		return models.VoucherRecord{}, fmt.Errorf("error generating voucher token: %w", err)
	}

	v.Phone = FormatPhone(v.Phone)

	return models.VoucherRecord{
		ValidatedSubmission: v,
		VoucherID:           fmt.Sprintf("%s-%d-%s", voucherPrefix, createdAt.UnixMilli(), token),
		Status:              models.VoucherPending,
		CreatedAt:           createdAt,
	}, nil
}

// FormatPhone rewrites a 10-digit number as (AAA) BBB-CCCC and returns anything else unchanged
func FormatPhone(phone string) string {
	digits := Digits(phone)
	if len(digits) != 10 {
		return phone
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
}

// Digits strips every non-digit character from s
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// randomToken returns 6 uppercase base-36 characters
func randomToken() (string, error) {
	n, err := rand.Int(rand.Reader, voucherTokenSpace)
	if err != nil {
		return "", err
	}
	token := strings.ToUpper(n.Text(36))
	return strings.Repeat("0", voucherTokenLen-len(token)) + token, nil
}
