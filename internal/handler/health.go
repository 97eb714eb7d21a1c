package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"webwallet-api/internal/model"
)

type HealthHandler struct {
	db      *sql.DB
	version string
}

func NewHealthHandler(db *sql.DB, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		version: version,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", model.ErrCodeInvalidInput)
		return
	}

	response := model.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
		Database:  h.checkDatabase(),
	}

	statusCode := http.StatusOK
	if response.Database.Status != "healthy" {
		response.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, response)
}

func (h *HealthHandler) checkDatabase() model.DatabaseHealth {
	dbHealth := model.DatabaseHealth{
		Status: "unhealthy",
	}

	if h.db == nil {
		return dbHealth
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		return dbHealth
	}

	stats := h.db.Stats()
	dbHealth.Status = "healthy"
	dbHealth.ConnectionPool = fmt.Sprintf("%d/%d", stats.InUse, stats.MaxOpenConnections)

	return dbHealth
}
