// internal/otp/otp.go
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/relivo/orgportal/internal/domain"
	"github.com/relivo/orgportal/internal/model"
)

// Validity is how long an issued code can be redeemed.
const Validity = 10 * time.Minute

const codeLength = 6

// Engine issues and validates one-time codes stored on the
// organization row. Codes are single-use: a successful validation
// clears both the code and its expiry.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock allows tests to control the issuance clock.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// Generate returns a 6-digit numeric code, each digit drawn uniformly
// at random. Codes carry no uniqueness guarantee.
func Generate() (string, error) {
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generating otp digit: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}

// Issue stamps a fresh code and expiry window onto the organization,
// replacing any pending code. The caller persists the row.
func (e *Engine) Issue(org *model.Organization) (string, error) {
	code, err := Generate()
	if err != nil {
		return "", err
	}
	expires := e.now().Add(Validity)
	org.Otp = &code
	org.OtpExpires = &expires
	return code, nil
}

// Validate redeems a submitted code against the organization's pending
// one. Equality is checked before expiry, so a wrong code on an expired
// window still reports ErrInvalidOTP. On success both OTP fields are
// cleared; the caller persists the row.
func (e *Engine) Validate(org *model.Organization, submitted string) error {
	if org.Otp == nil || org.OtpExpires == nil {
		return domain.ErrOTPNotFound
	}

	if *org.Otp != submitted {
		return domain.ErrInvalidOTP
	}

	if e.now().After(*org.OtpExpires) {
		return domain.ErrOTPExpired
	}

	org.Otp = nil
	org.OtpExpires = nil
	return nil
}

// Expired reports whether the pending window has passed. A missing
// expiry counts as expired.
func (e *Engine) Expired(org *model.Organization) bool {
	return org.OtpExpires == nil || e.now().After(*org.OtpExpires)
}

// HasPending reports whether a code is awaiting redemption. An
// organization with no pending code is considered verified.
func HasPending(org *model.Organization) bool {
	return org.Otp != nil || org.OtpExpires != nil
}
