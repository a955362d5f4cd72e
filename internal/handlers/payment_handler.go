package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"installment-backend/internal/models"
	"installment-backend/internal/services"
	"installment-backend/pkg/utils"
)

type PaymentHandler struct {
	Service *services.LedgerService
}

func NewPaymentHandler(service *services.LedgerService) *PaymentHandler {
	return &PaymentHandler{Service: service}
}

// ListPayments returns the ledger, optionally filtered by sale or client via
// query parameters.
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	var (
		payments []*models.Payment
		err      error
	)

	switch {
	case r.URL.Query().Get("sale_id") != "":
		var saleID int
		saleID, err = strconv.Atoi(r.URL.Query().Get("sale_id"))
		if err != nil {
			utils.Error(w, &models.ValidationError{Field: "sale_id", Msg: "must be an integer"})
			return
		}
		payments, err = h.Service.ListBySale(r.Context(), saleID)
	case r.URL.Query().Get("user_id") != "":
		var userID int
		userID, err = strconv.Atoi(r.URL.Query().Get("user_id"))
		if err != nil {
			utils.Error(w, &models.ValidationError{Field: "user_id", Msg: "must be an integer"})
			return
		}
		payments, err = h.Service.ListByUser(r.Context(), userID)
	default:
		payments, err = h.Service.ListAll(r.Context())
	}

	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, payments)
}

// MarkPaid settles a pending installment.
func (h *PaymentHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, &models.ValidationError{Field: "id", Msg: "must be an integer"})
		return
	}

	payment, err := h.Service.MarkPaid(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, payment)
}
