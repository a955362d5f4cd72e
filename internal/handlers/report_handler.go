package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"installment-backend/internal/models"
	"installment-backend/internal/services"
	"installment-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// SchedulePDF streams the installment schedule of one sale as a PDF.
func (h *ReportHandler) SchedulePDF(w http.ResponseWriter, r *http.Request) {
	saleID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, &models.ValidationError{Field: "id", Msg: "must be an integer"})
		return
	}

	data, err := h.Service.SchedulePDF(r.Context(), saleID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=schedule-%d.pdf", saleID))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// PaymentsCSV exports the full payment ledger as CSV.
func (h *ReportHandler) PaymentsCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.PaymentsCSV(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=payments.csv")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
