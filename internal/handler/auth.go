// internal/handler/auth.go
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/relivo/orgportal/internal/domain"
	"github.com/relivo/orgportal/internal/middleware"
	"github.com/relivo/orgportal/internal/service"
)

type AuthHandler struct {
	registration *service.RegistrationService
	sessions     *service.SessionService
	tokenTTL     time.Duration
}

func NewAuthHandler(registration *service.RegistrationService, sessions *service.SessionService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		registration: registration,
		sessions:     sessions,
		tokenTTL:     tokenTTL,
	}
}

// RegisterHandler handles POST /auth/register (form-encoded).
func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form payload")
		return
	}

	input := service.RegisterInput{
		Name:         r.PostFormValue("name"),
		ContactEmail: r.PostFormValue("contact_email"),
		Password:     r.PostFormValue("password"),
		Country:      r.PostFormValue("country"),
		OrgType:      r.PostFormValue("org_type"),
		Website:      r.PostFormValue("website"),
	}

	email, err := h.registration.Register(r.Context(), input)
	if err != nil {
		slog.ErrorContext(r.Context(), "Registration error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrAlreadyApproved):
			respondWithError(w, http.StatusBadRequest, "Organization already registered and approved.")
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, "Invalid registration data")
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message": "OTP sent successfully",
		"email":   email,
	})
}

// ResendOTPHandler handles POST /auth/resend-otp.
func (h *AuthHandler) ResendOTPHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form payload")
		return
	}

	err := h.registration.ResendOTP(r.Context(), r.PostFormValue("email"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrganizationNotFound):
			respondWithError(w, http.StatusNotFound, "Organization not found")
		case errors.Is(err, domain.ErrAlreadyVerified):
			respondWithError(w, http.StatusBadRequest, "Email already verified")
		default:
			slog.ErrorContext(r.Context(), "Resend OTP error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "OTP resent successfully"})
}

// VerifyHandler handles POST /auth/verify.
func (h *AuthHandler) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form payload")
		return
	}

	err := h.registration.Verify(r.Context(), r.PostFormValue("email"), r.PostFormValue("code"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrganizationNotFound):
			respondWithError(w, http.StatusNotFound, "Organization not found")
		case errors.Is(err, domain.ErrOTPNotFound):
			respondWithError(w, http.StatusBadRequest, "OTP not found. Please re-register.")
		case errors.Is(err, domain.ErrInvalidOTP):
			respondWithError(w, http.StatusBadRequest, "Invalid OTP")
		case errors.Is(err, domain.ErrOTPExpired):
			respondWithError(w, http.StatusBadRequest, "OTP expired")
		default:
			slog.ErrorContext(r.Context(), "Verification error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Email verified successfully"})
}

// LoginHandler handles POST /auth/login. A token is issued whatever
// the organization's status; the redirect field only hints where the
// client should land.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form payload")
		return
	}

	output, err := h.sessions.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrganizationNotFound):
			respondWithError(w, http.StatusNotFound, "Organization not found")
		case errors.Is(err, domain.ErrInvalidCredentials):
			respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			slog.ErrorContext(r.Context(), "Login error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.setSessionCookie(w, output.Token)

	respondWithJSON(w, http.StatusOK, map[string]string{
		"message":      "Login successful",
		"redirect":     output.Redirect,
		"access_token": output.Token,
	})
}

// ChangePasswordHandler handles POST /auth/change-password for an
// authenticated organization.
func (h *AuthHandler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := middleware.OrgFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form payload")
		return
	}

	err := h.sessions.ChangePassword(r.Context(), org, r.PostFormValue("old_password"), r.PostFormValue("new_password"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWrongOldPassword):
			respondWithError(w, http.StatusBadRequest, "Old password incorrect")
		default:
			slog.ErrorContext(r.Context(), "Change password error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// LogoutHandler handles GET /auth/logout by expiring the session
// cookie.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// ForgotPasswordRequestHandler handles POST /auth/forgot-password/request.
// The response never reveals whether the address is registered.
func (h *AuthHandler) ForgotPasswordRequestHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form payload")
		return
	}

	if err := h.registration.ForgotPasswordRequest(r.Context(), r.PostFormValue("email")); err != nil {
		slog.ErrorContext(r.Context(), "Forgot password request error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "If this email is registered, an OTP has been sent."})
}

// ForgotPasswordResetHandler handles POST /auth/forgot-password/reset.
func (h *AuthHandler) ForgotPasswordResetHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form payload")
		return
	}

	err := h.registration.ForgotPasswordReset(
		r.Context(),
		r.PostFormValue("email"),
		r.PostFormValue("otp"),
		r.PostFormValue("new_password"),
	)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidOTPOrEmail):
			respondWithError(w, http.StatusBadRequest, "Invalid OTP or email")
		case errors.Is(err, domain.ErrOTPExpired):
			respondWithError(w, http.StatusBadRequest, "OTP expired")
		default:
			slog.ErrorContext(r.Context(), "Forgot password reset error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

// setSessionCookie installs the cross-site session cookie; the portal
// frontend is served from a different origin.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
