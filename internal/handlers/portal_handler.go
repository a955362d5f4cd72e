package handlers

import (
	"net/http"

	"installment-backend/internal/middleware"
	"installment-backend/internal/services"
	"installment-backend/pkg/utils"
)

type PortalHandler struct {
	Service *services.ClientPortalService
}

func NewPortalHandler(service *services.ClientPortalService) *PortalHandler {
	return &PortalHandler{Service: service}
}

// Dashboard returns the authenticated client's agreements with their
// installment schedules plus a ledger summary.
func (h *PortalHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	data, err := h.Service.GetDashboardData(r.Context(), userID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, data)
}
