// internal/handler/grant_test.go
package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/relivo/orgportal/internal/domain"
	"github.com/relivo/orgportal/internal/handler"
	"github.com/relivo/orgportal/internal/middleware"
	"github.com/relivo/orgportal/internal/mocks"
	"github.com/relivo/orgportal/internal/model"
	"github.com/relivo/orgportal/internal/repository"
	"github.com/relivo/orgportal/internal/service"
)

type grantHandlerFixture struct {
	router *chi.Mux
	repo   *mocks.MockGrantRepositoryIface
	org    *model.Organization
}

// withOrg stands in for the auth middleware, injecting the tenant the
// way RequireOrg does.
func withOrg(org *model.Organization) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.OrgKey, org)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newGrantHandlerFixture(t *testing.T) *grantHandlerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &grantHandlerFixture{
		repo: mocks.NewMockGrantRepositoryIface(ctrl),
		org: &model.Organization{
			ID:           uuid.New(),
			UserID:       uuid.New(),
			Name:         "Hope Foundation",
			ContactEmail: "hope@example.org",
			Status:       model.OrgStatusApproved,
		},
	}

	h := handler.NewGrantHandler(service.NewGrantService(f.repo))

	r := chi.NewRouter()
	r.Use(withOrg(f.org))
	r.Post("/org/grants/create", h.CreateHandler)
	r.Post("/org/grants/{id}/edit", h.EditHandler)
	r.Post("/org/grants/{id}/delete", h.DeleteHandler)
	r.Post("/org/grants/{id}/permanent-delete", h.PermanentDeleteHandler)
	r.Post("/org/grants/{id}/restore", h.RestoreHandler)
	r.Get("/api/dashboard_data", h.DashboardHandler)
	r.Get("/api/grants/{id}", h.GetHandler)
	f.router = r
	return f
}

func (f *grantHandlerFixture) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)
	return w
}

func TestCreateGrantHandler(t *testing.T) {
	f := newGrantHandlerFixture(t)

	grantID := uuid.New()
	f.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, grant *model.Grant) error {
			grant.ID = grantID
			return nil
		})

	w := f.postForm(t, "/org/grants/create", url.Values{
		"title":     {"Education Fund"},
		"apply_url": {"https://apply.example.org"},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Grant created successfully", body["message"])
	assert.Equal(t, grantID.String(), body["id"])
}

func TestCreateGrantHandlerSuspended(t *testing.T) {
	f := newGrantHandlerFixture(t)
	f.org.Status = model.OrgStatusSuspended

	w := f.postForm(t, "/org/grants/create", url.Values{
		"title":     {"Education Fund"},
		"apply_url": {"https://apply.example.org"},
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"detail":"Organization suspended"}`, w.Body.String())
}

func TestCreateGrantHandlerMissingTitle(t *testing.T) {
	f := newGrantHandlerFixture(t)

	w := f.postForm(t, "/org/grants/create", url.Values{
		"apply_url": {"https://apply.example.org"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Invalid grant data"}`, w.Body.String())
}

func TestEditGrantHandlerSuspendedAllowed(t *testing.T) {
	f := newGrantHandlerFixture(t)
	f.org.Status = model.OrgStatusSuspended

	grantID := uuid.New()
	grant := &model.Grant{ID: grantID, Title: "Old", Organizer: "Hope Foundation", Status: model.GrantStatusLive}
	f.repo.EXPECT().FindOwned(gomock.Any(), grantID, f.org.ID).Return(grant, nil)
	f.repo.EXPECT().Update(gomock.Any(), grant).Return(nil)

	// Suspension blocks only creation; maintenance of existing listings
	// stays open.
	w := f.postForm(t, "/org/grants/"+grantID.String()+"/edit", url.Values{
		"title":     {"New Title"},
		"apply_url": {"https://apply.example.org"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Grant updated successfully"}`, w.Body.String())
}

func TestDeleteGrantHandlerMalformedID(t *testing.T) {
	f := newGrantHandlerFixture(t)

	// No repository expectations: a malformed id is masked as a miss
	// before any lookup.
	w := f.postForm(t, "/org/grants/not-a-uuid/delete", url.Values{})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Grant not found"}`, w.Body.String())
}

func TestDeleteGrantHandler(t *testing.T) {
	f := newGrantHandlerFixture(t)

	grantID := uuid.New()
	grant := &model.Grant{ID: grantID, Status: model.GrantStatusLive}
	f.repo.EXPECT().FindOwned(gomock.Any(), grantID, f.org.ID).Return(grant, nil)
	f.repo.EXPECT().Update(gomock.Any(), grant).Return(nil)

	w := f.postForm(t, "/org/grants/"+grantID.String()+"/delete", url.Values{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Grant moved to pending deletion"}`, w.Body.String())
	assert.Equal(t, model.GrantStatusDeletionPending, grant.Status)
}

func TestPermanentDeleteGrantHandlerNotInTrash(t *testing.T) {
	f := newGrantHandlerFixture(t)

	grantID := uuid.New()
	f.repo.EXPECT().FindOwnedWithStatus(gomock.Any(), grantID, f.org.ID, model.GrantStatusDeletionPending).
		Return(nil, domain.ErrGrantNotFound)

	w := f.postForm(t, "/org/grants/"+grantID.String()+"/permanent-delete", url.Values{})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Grant not found in pending deletion"}`, w.Body.String())
}

func TestRestoreGrantHandler(t *testing.T) {
	f := newGrantHandlerFixture(t)

	grantID := uuid.New()
	grant := &model.Grant{ID: grantID, Status: model.GrantStatusDeletionPending}
	f.repo.EXPECT().FindOwnedWithStatus(gomock.Any(), grantID, f.org.ID, model.GrantStatusDeletionPending).Return(grant, nil)
	f.repo.EXPECT().Update(gomock.Any(), grant).Return(nil)

	w := f.postForm(t, "/org/grants/"+grantID.String()+"/restore", url.Values{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Grant restored to workspace"}`, w.Body.String())
	assert.Equal(t, model.GrantStatusLive, grant.Status)
}

func TestDashboardHandler(t *testing.T) {
	f := newGrantHandlerFixture(t)
	f.org.MustChangePassword = true
	f.org.Country = "Kenya"

	grants := []*model.Grant{
		{ID: uuid.New(), Title: "A", IsActive: true, Status: model.GrantStatusLive},
		{ID: uuid.New(), Title: "B", IsActive: true, Status: model.GrantStatusDeletionPending},
	}
	f.repo.EXPECT().ListByOrganization(gomock.Any(), f.org.ID).Return(grants, nil)
	f.repo.EXPECT().CountByOrganization(gomock.Any(), f.org.ID).Return(repository.GrantCounts{
		Total:  2,
		Active: 1,
		Trash:  1,
	}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/dashboard_data", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Org struct {
			Name         string `json:"name"`
			ContactEmail string `json:"contact_email"`
			Country      string `json:"country"`
			Status       string `json:"status"`
		} `json:"org"`
		MustChangePassword bool              `json:"must_change_password"`
		Grants             []json.RawMessage `json:"grants"`
		TotalGrants        int64             `json:"total_grants"`
		ActiveGrants       int64             `json:"active_grants"`
		InactiveGrants     int64             `json:"inactive_grants"`
		TrashCount         int64             `json:"trash_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "Hope Foundation", body.Org.Name)
	assert.Equal(t, "hope@example.org", body.Org.ContactEmail)
	assert.Equal(t, "approved", body.Org.Status)
	assert.True(t, body.MustChangePassword)
	assert.Len(t, body.Grants, 2)
	assert.Equal(t, int64(1), body.TotalGrants)
	assert.Equal(t, int64(1), body.ActiveGrants)
	assert.Equal(t, int64(0), body.InactiveGrants)
	assert.Equal(t, int64(1), body.TrashCount)
}

func TestGetGrantHandlerForeignID(t *testing.T) {
	f := newGrantHandlerFixture(t)

	grantID := uuid.New()
	f.repo.EXPECT().FindOwned(gomock.Any(), grantID, f.org.ID).Return(nil, domain.ErrGrantNotFound)

	r := httptest.NewRequest(http.MethodGet, "/api/grants/"+grantID.String(), nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Grant not found"}`, w.Body.String())
}
