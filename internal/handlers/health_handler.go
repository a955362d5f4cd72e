package handlers

import (
	"net/http"

	"installment-backend/internal/health"
	"installment-backend/pkg/utils"
)

type HealthHandler struct {
	checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// BasicHealth is the liveness probe.
func (h *HealthHandler) BasicHealth(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckBasic()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}

// ReadinessHealth reports whether the service can take traffic.
func (h *HealthHandler) ReadinessHealth(w http.ResponseWriter, r *http.Request) {
	status := h.checker.CheckBasic()

	if status.Database.Status != "healthy" {
		utils.JSON(w, http.StatusServiceUnavailable, status)
		return
	}
	utils.JSON(w, http.StatusOK, status)
}

// DetailedHealth includes cache and host stats for operators.
func (h *HealthHandler) DetailedHealth(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.checker.CheckDetailed())
}
