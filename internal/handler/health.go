// internal/handler/health.go
package handler

import (
	"net/http"

	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Handle probes storage connectivity. The endpoint always answers 200;
// the body says whether the database is reachable.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.db.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
		respondWithJSON(w, http.StatusOK, map[string]string{
			"status":   "degraded",
			"database": "unreachable",
			"error":    err.Error(),
		})
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "connected",
	})
}
