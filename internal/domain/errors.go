// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// User-related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrWrongOldPassword   = errors.New("old password incorrect")

	// Organization-related errors
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrAlreadyApproved      = errors.New("organization already registered and approved")
	ErrSuspended            = errors.New("organization suspended")

	// OTP-related errors
	ErrOTPNotFound       = errors.New("otp not found")
	ErrInvalidOTP        = errors.New("invalid otp")
	ErrOTPExpired        = errors.New("otp expired")
	ErrAlreadyVerified   = errors.New("email already verified")
	ErrInvalidOTPOrEmail = errors.New("invalid otp or email")

	// Grant-related errors
	ErrGrantNotFound = errors.New("grant not found")
)
