package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"installment-backend/internal/models"
	"installment-backend/internal/services"
	"installment-backend/pkg/utils"
)

type SaleHandler struct {
	Service *services.SaleService
	Ledger  *services.LedgerService
}

func NewSaleHandler(service *services.SaleService, ledger *services.LedgerService) *SaleHandler {
	return &SaleHandler{
		Service: service,
		Ledger:  ledger,
	}
}

// CreateSale creates a client (if needed), the sale, and its full schedule.
func (h *SaleHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, &models.ValidationError{Msg: "invalid request body"})
		return
	}

	result, err := h.Service.CreateSale(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, result)
}

func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Service.ListSales(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, sales)
}

func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, &models.ValidationError{Field: "id", Msg: "must be an integer"})
		return
	}

	sale, err := h.Service.GetSale(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	payments, err := h.Ledger.ListBySale(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, &models.SaleWithPayments{Sale: sale, Payments: payments})
}
