package otp_test

import (
	"testing"
	"time"

	"github.com/relivo/orgportal/internal/domain"
	"github.com/relivo/orgportal/internal/model"
	"github.com/relivo/orgportal/internal/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := otp.Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "code %q contains non-digit", code)
		}
	}
}

func TestIssueAndValidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	engine := otp.NewEngineWithClock(func() time.Time { return now })

	org := &model.Organization{}
	code, err := engine.Issue(org)
	require.NoError(t, err)
	require.NotNil(t, org.Otp)
	require.NotNil(t, org.OtpExpires)
	assert.Equal(t, code, *org.Otp)
	assert.Equal(t, now.Add(otp.Validity), *org.OtpExpires)

	// Within the window the exact code redeems and clears both fields.
	now = now.Add(9 * time.Minute)
	require.NoError(t, engine.Validate(org, code))
	assert.Nil(t, org.Otp)
	assert.Nil(t, org.OtpExpires)

	// Single-use: the same code fails with not-found afterwards.
	err = engine.Validate(org, code)
	assert.ErrorIs(t, err, domain.ErrOTPNotFound)
}

func TestValidateWrongCode(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	engine := otp.NewEngineWithClock(func() time.Time { return now })

	org := &model.Organization{}
	code, err := engine.Issue(org)
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}

	err = engine.Validate(org, wrong)
	assert.ErrorIs(t, err, domain.ErrInvalidOTP)

	// Pending code survives a failed attempt.
	assert.NotNil(t, org.Otp)
	assert.NotNil(t, org.OtpExpires)
}

func TestValidateExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	engine := otp.NewEngineWithClock(func() time.Time { return now })

	org := &model.Organization{}
	code, err := engine.Issue(org)
	require.NoError(t, err)

	now = now.Add(otp.Validity + time.Second)
	err = engine.Validate(org, code)
	assert.ErrorIs(t, err, domain.ErrOTPExpired)
}

// A wrong code on an expired window reports invalid, not expired:
// equality is checked before the expiry window.
func TestValidateWrongAndExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	engine := otp.NewEngineWithClock(func() time.Time { return now })

	org := &model.Organization{}
	code, err := engine.Issue(org)
	require.NoError(t, err)

	wrong := "999999"
	if code == wrong {
		wrong = "999998"
	}

	now = now.Add(time.Hour)
	err = engine.Validate(org, wrong)
	assert.ErrorIs(t, err, domain.ErrInvalidOTP)
}

func TestValidateBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	engine := otp.NewEngineWithClock(func() time.Time { return now })

	org := &model.Organization{}
	code, err := engine.Issue(org)
	require.NoError(t, err)

	// Exactly at the expiry instant the code is still accepted.
	now = now.Add(otp.Validity)
	assert.NoError(t, engine.Validate(org, code))
}

func TestReissueReplacesPendingCode(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	engine := otp.NewEngineWithClock(func() time.Time { return now })

	org := &model.Organization{}
	first, err := engine.Issue(org)
	require.NoError(t, err)

	now = now.Add(5 * time.Minute)
	second, err := engine.Issue(org)
	require.NoError(t, err)
	assert.Equal(t, second, *org.Otp)
	assert.Equal(t, now.Add(otp.Validity), *org.OtpExpires)

	if first != second {
		err = engine.Validate(org, first)
		assert.ErrorIs(t, err, domain.ErrInvalidOTP)
	}
}

func TestHasPending(t *testing.T) {
	org := &model.Organization{}
	assert.False(t, otp.HasPending(org))

	engine := otp.NewEngine()
	_, err := engine.Issue(org)
	require.NoError(t, err)
	assert.True(t, otp.HasPending(org))
}
