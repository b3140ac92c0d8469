// internal/handler/auth_test.go
package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/relivo/orgportal/internal/auth"
	"github.com/relivo/orgportal/internal/domain"
	"github.com/relivo/orgportal/internal/email"
	"github.com/relivo/orgportal/internal/handler"
	"github.com/relivo/orgportal/internal/middleware"
	"github.com/relivo/orgportal/internal/mocks"
	"github.com/relivo/orgportal/internal/model"
	"github.com/relivo/orgportal/internal/otp"
	"github.com/relivo/orgportal/internal/service"
	"github.com/relivo/orgportal/internal/task"
)

// nopSender discards outbound mail; handler tests only care about HTTP
// behavior.
type nopSender struct {
	mu sync.Mutex
	n  int
}

func (s *nopSender) SendEmail(email.EmailData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return nil
}

type authFixture struct {
	h        *handler.AuthHandler
	userRepo *mocks.MockUserRepositoryIface
	orgRepo  *mocks.MockOrganizationRepositoryIface
	hasher   *auth.PasswordHasher
	tasks    *task.Dispatcher
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &authFixture{
		userRepo: mocks.NewMockUserRepositoryIface(ctrl),
		orgRepo:  mocks.NewMockOrganizationRepositoryIface(ctrl),
		hasher:   auth.NewPasswordHasher(),
		tasks:    task.NewDispatcher(8, 1),
	}

	sender := &nopSender{}
	tokens := auth.NewTokenManager("test-secret", 30*time.Minute)
	registration := service.NewRegistrationService(f.userRepo, f.orgRepo, f.hasher, otp.NewEngine(), sender, f.tasks)
	sessions := service.NewSessionService(f.userRepo, f.orgRepo, f.hasher, tokens, sender, f.tasks)
	f.h = handler.NewAuthHandler(registration, sessions, 30*time.Minute)
	return f
}

func postForm(t *testing.T, h http.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func TestLoginHandlerSuccess(t *testing.T) {
	f := newAuthFixture(t)

	hashed, err := f.hasher.Hash("rightpassword")
	require.NoError(t, err)
	org := &model.Organization{
		ID:           uuid.New(),
		ContactEmail: "hope@example.org",
		Password:     hashed,
		Status:       model.OrgStatusApproved,
	}
	f.orgRepo.EXPECT().FindByContactEmail(gomock.Any(), "hope@example.org").Return(org, nil)

	w := postForm(t, f.h.LoginHandler, "/auth/login", url.Values{
		"email":    {"hope@example.org"},
		"password": {"rightpassword"},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Login successful", body["message"])
	assert.Equal(t, "dashboard", body["redirect"])
	assert.NotEmpty(t, body["access_token"])

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, middleware.SessionCookie, c.Name)
	assert.Equal(t, body["access_token"], c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
	assert.Equal(t, 1800, c.MaxAge)
}

func TestLoginHandlerUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	f.orgRepo.EXPECT().FindByContactEmail(gomock.Any(), "ghost@example.org").Return(nil, domain.ErrOrganizationNotFound)

	w := postForm(t, f.h.LoginHandler, "/auth/login", url.Values{
		"email":    {"ghost@example.org"},
		"password": {"whatever12"},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Organization not found"}`, w.Body.String())
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	f := newAuthFixture(t)

	hashed, err := f.hasher.Hash("rightpassword")
	require.NoError(t, err)
	org := &model.Organization{ID: uuid.New(), ContactEmail: "hope@example.org", Password: hashed}
	f.orgRepo.EXPECT().FindByContactEmail(gomock.Any(), "hope@example.org").Return(org, nil)

	w := postForm(t, f.h.LoginHandler, "/auth/login", url.Values{
		"email":    {"hope@example.org"},
		"password": {"wrongpassword"},
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Invalid credentials"}`, w.Body.String())
}

func TestVerifyHandlerInvalidOTP(t *testing.T) {
	f := newAuthFixture(t)

	code := "123456"
	expiry := time.Now().Add(5 * time.Minute)
	org := &model.Organization{ContactEmail: "hope@example.org", Otp: &code, OtpExpires: &expiry}
	f.orgRepo.EXPECT().FindByContactEmail(gomock.Any(), "hope@example.org").Return(org, nil)

	w := postForm(t, f.h.VerifyHandler, "/auth/verify", url.Values{
		"email": {"hope@example.org"},
		"code":  {"654321"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Invalid OTP"}`, w.Body.String())
}

func TestForgotPasswordRequestHandlerNeverReveals(t *testing.T) {
	f := newAuthFixture(t)

	f.orgRepo.EXPECT().FindByContactEmail(gomock.Any(), "ghost@example.org").Return(nil, domain.ErrOrganizationNotFound)

	w := postForm(t, f.h.ForgotPasswordRequestHandler, "/auth/forgot-password/request", url.Values{
		"email": {"ghost@example.org"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"If this email is registered, an OTP has been sent."}`, w.Body.String())
}

func TestLogoutHandlerExpiresCookie(t *testing.T) {
	f := newAuthFixture(t)

	r := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	w := httptest.NewRecorder()
	f.h.LogoutHandler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Logged out"}`, w.Body.String())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
