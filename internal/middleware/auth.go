// internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/relivo/orgportal/internal/auth"
	"github.com/relivo/orgportal/internal/domain"
	"github.com/relivo/orgportal/internal/model"
	"github.com/relivo/orgportal/internal/repository"
)

type orgContextKey string

// OrgKey is the context key under which the authenticated organization
// is stored.
var OrgKey orgContextKey = "org"

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "org_token"

// TokenFromRequest extracts the session token, cookie first, then the
// Authorization header. One lookup policy for every authenticated
// operation.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	authHeader := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return after
	}

	return ""
}

// OrgFromContext returns the organization resolved by RequireOrg.
func OrgFromContext(ctx context.Context) (*model.Organization, bool) {
	org, ok := ctx.Value(OrgKey).(*model.Organization)
	return org, ok
}

// RequireOrg validates the session token and loads the caller's
// organization into the request context. The organization is attached
// whatever its status; operations decide for themselves what a
// pending or suspended tenant may do.
func RequireOrg(tokenManager *auth.TokenManager, orgRepo repository.OrganizationRepositoryIface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				respondWithError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			claims, err := tokenManager.Validate(token)
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			orgID, err := uuid.Parse(claims.OrgID)
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			org, err := orgRepo.FindByID(r.Context(), orgID)
			if err != nil {
				if errors.Is(err, domain.ErrOrganizationNotFound) {
					respondWithError(w, http.StatusNotFound, "Organization not found")
					return
				}
				respondWithError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), OrgKey, org)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// respondWithError sends a JSON error response
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"detail": message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
