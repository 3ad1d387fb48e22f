package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/errors"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/logger"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/utils"
)

const readinessTimeout = 2 * time.Second

// Pinger is the part of *sql.DB the readiness check needs
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness checks
type HealthHandler struct {
	store  Pinger
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		store:  store,
		logger: log,
	}
}

// Healthz handles the liveness check
// @Summary Liveness check
// @Tags Health
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /healthz [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports whether the account store answers within readinessTimeout
// @Summary Readiness check
// @Description Checks that the account store is reachable
// @Tags Health
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 503 {object} utils.ErrorResponse "Service unavailable"
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	started := time.Now()
	if err := h.store.PingContext(ctx); err != nil {
		h.logger.ErrorWithErr(err, "Account store ping failed")
		utils.WriteError(w, errors.ServiceUnavailable("Account store unreachable").
			WithDetails(map[string]string{"database": "unreachable"}))
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": "connected",
		"latency":  time.Since(started).Round(time.Millisecond).String(),
	})
}
