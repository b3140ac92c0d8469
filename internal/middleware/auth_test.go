// internal/middleware/auth_test.go
package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/relivo/orgportal/internal/auth"
	"github.com/relivo/orgportal/internal/domain"
	"github.com/relivo/orgportal/internal/middleware"
	"github.com/relivo/orgportal/internal/mocks"
	"github.com/relivo/orgportal/internal/model"
)

func TestTokenFromRequest(t *testing.T) {
	t.Run("cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "cookie-token"})
		assert.Equal(t, "cookie-token", middleware.TokenFromRequest(r))
	})

	t.Run("bearer header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer header-token")
		assert.Equal(t, "header-token", middleware.TokenFromRequest(r))
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "cookie-token"})
		r.Header.Set("Authorization", "Bearer header-token")
		assert.Equal(t, "cookie-token", middleware.TokenFromRequest(r))
	})

	t.Run("missing", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, middleware.TokenFromRequest(r))
	})
}

func TestRequireOrg(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	org := &model.Organization{
		ID:           uuid.New(),
		ContactEmail: "hope@example.org",
		Status:       model.OrgStatusApproved,
	}

	newHandler := func(t *testing.T, orgRepo *mocks.MockOrganizationRepositoryIface) (http.Handler, *bool) {
		t.Helper()
		reached := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := middleware.OrgFromContext(r.Context())
			require.True(t, ok)
			assert.Equal(t, org.ID, got.ID)
			reached = true
			w.WriteHeader(http.StatusOK)
		})
		return middleware.RequireOrg(tokens, orgRepo)(next), &reached
	}

	t.Run("no token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h, reached := newHandler(t, mocks.NewMockOrganizationRepositoryIface(ctrl))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"detail":"Not authenticated"}`, w.Body.String())
		assert.False(t, *reached)
	})

	t.Run("garbage token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h, reached := newHandler(t, mocks.NewMockOrganizationRepositoryIface(ctrl))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"detail":"Invalid token"}`, w.Body.String())
		assert.False(t, *reached)
	})

	t.Run("organization gone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(nil, domain.ErrOrganizationNotFound)
		h, reached := newHandler(t, orgRepo)

		token, err := tokens.Generate(org.ContactEmail, org.ID)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, *reached)
	})

	t.Run("valid cookie", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil)
		h, reached := newHandler(t, orgRepo)

		token, err := tokens.Generate(org.ContactEmail, org.ID)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, *reached)
	})

	t.Run("valid bearer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil)
		h, reached := newHandler(t, orgRepo)

		token, err := tokens.Generate(org.ContactEmail, org.ID)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, *reached)
	})
}
