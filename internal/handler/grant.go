// internal/handler/grant.go
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/relivo/orgportal/internal/domain"
	"github.com/relivo/orgportal/internal/middleware"
	"github.com/relivo/orgportal/internal/model"
	"github.com/relivo/orgportal/internal/service"
)

type GrantHandler struct {
	grants *service.GrantService
}

func NewGrantHandler(grants *service.GrantService) *GrantHandler {
	return &GrantHandler{grants: grants}
}

func grantInputFromForm(r *http.Request) service.GrantInput {
	return service.GrantInput{
		Title:          r.PostFormValue("title"),
		Organizer:      r.PostFormValue("organizer"),
		ApplyURL:       r.PostFormValue("apply_url"),
		Deadline:       r.PostFormValue("deadline"),
		Description:    r.PostFormValue("description"),
		Eligibility:    r.PostFormValue("eligibility"),
		RefugeeCountry: r.PostFormValue("refugee_country"),
		Amount:         r.PostFormValue("amount"),
		Category:       r.PostFormValue("category"),
	}
}

// grantID parses the id route parameter. A malformed id behaves like a
// missing grant so probing ids reveals nothing.
func grantID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// CreateHandler handles POST /org/grants/create.
func (h *GrantHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := middleware.OrgFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form payload")
		return
	}

	grant, err := h.grants.Create(r.Context(), org, grantInputFromForm(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSuspended):
			respondWithError(w, http.StatusForbidden, "Organization suspended")
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, "Invalid grant data")
		default:
			slog.ErrorContext(r.Context(), "Grant create error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Grant created successfully",
		"id":      grant.ID,
	})
}

// EditHandler handles POST /org/grants/{id}/edit.
func (h *GrantHandler) EditHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := middleware.OrgFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, err := grantID(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Grant not found")
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form payload")
		return
	}

	_, err = h.grants.Edit(r.Context(), org, id, grantInputFromForm(r))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGrantNotFound):
			respondWithError(w, http.StatusNotFound, "Grant not found")
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, "Invalid grant data")
		default:
			slog.ErrorContext(r.Context(), "Grant edit error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Grant updated successfully"})
}

// DeleteHandler handles POST /org/grants/{id}/delete (soft delete).
func (h *GrantHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := middleware.OrgFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, err := grantID(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Grant not found")
		return
	}

	if err := h.grants.SoftDelete(r.Context(), org, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrGrantNotFound):
			respondWithError(w, http.StatusNotFound, "Grant not found")
		default:
			slog.ErrorContext(r.Context(), "Grant delete error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Grant moved to pending deletion"})
}

// PermanentDeleteHandler handles POST /org/grants/{id}/permanent-delete.
func (h *GrantHandler) PermanentDeleteHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := middleware.OrgFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, err := grantID(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Grant not found in pending deletion")
		return
	}

	if err := h.grants.PermanentDelete(r.Context(), org, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrGrantNotFound):
			respondWithError(w, http.StatusNotFound, "Grant not found in pending deletion")
		default:
			slog.ErrorContext(r.Context(), "Grant permanent delete error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Grant permanently deleted"})
}

// RestoreHandler handles POST /org/grants/{id}/restore.
func (h *GrantHandler) RestoreHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := middleware.OrgFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, err := grantID(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Grant not found in pending deletion")
		return
	}

	if err := h.grants.Restore(r.Context(), org, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrGrantNotFound):
			respondWithError(w, http.StatusNotFound, "Grant not found in pending deletion")
		default:
			slog.ErrorContext(r.Context(), "Grant restore error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Grant restored to workspace"})
}

// GetHandler handles GET /api/grants/{id}.
func (h *GrantHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := middleware.OrgFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, err := grantID(r)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Grant not found")
		return
	}

	grant, err := h.grants.Get(r.Context(), org, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGrantNotFound):
			respondWithError(w, http.StatusNotFound, "Grant not found")
		default:
			slog.ErrorContext(r.Context(), "Grant fetch error", "error", err, "requestID", chmw.GetReqID(r.Context()))
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, grant)
}

// DashboardHandler handles GET /api/dashboard_data.
func (h *GrantHandler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := middleware.OrgFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	data, err := h.grants.Dashboard(r.Context(), org)
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, dashboardResponse{
		Org: orgSummary{
			Name:         org.Name,
			ContactEmail: org.ContactEmail,
			Country:      org.Country,
			Status:       org.Status,
		},
		MustChangePassword: data.MustChangePassword,
		Grants:             data.Grants,
		TotalGrants:        data.TotalGrants,
		ActiveGrants:       data.ActiveGrants,
		InactiveGrants:     data.InactiveGrants,
		TrashCount:         data.TrashCount,
	})
}

type orgSummary struct {
	Name         string                   `json:"name"`
	ContactEmail string                   `json:"contact_email"`
	Country      string                   `json:"country"`
	Status       model.OrganizationStatus `json:"status"`
}

type dashboardResponse struct {
	Org                orgSummary             `json:"org"`
	MustChangePassword bool                   `json:"must_change_password"`
	Grants             []service.GrantSummary `json:"grants"`
	TotalGrants        int64                  `json:"total_grants"`
	ActiveGrants       int64                  `json:"active_grants"`
	InactiveGrants     int64                  `json:"inactive_grants"`
	TrashCount         int64                  `json:"trash_count"`
}
