package handlers

import (
	"database/sql"
	"net/http"

	"github.com/rodrigoBaranda/PersonalPortfolio/internal/api/response"
	"github.com/rodrigoBaranda/PersonalPortfolio/internal/database"
)

// SystemHandler handles HTTP requests for system endpoints.
type SystemHandler struct {
	db *sql.DB
}

// NewSystemHandler creates a new SystemHandler with the provided database connection.
func NewSystemHandler(db *sql.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

// Health handles GET requests for the service health check.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with {"status": "ok"}
// Error: 503 Service Unavailable if the database is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := database.HealthCheck(h.db); err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, "database unreachable", err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
