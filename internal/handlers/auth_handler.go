package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"installment-backend/internal/models"
	"installment-backend/internal/services"
	"installment-backend/pkg/utils"
)

type AuthHandler struct {
	Service *services.UserService
	Logger  *zap.Logger
}

func NewAuthHandler(s *services.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		Service: s,
		Logger:  logger,
	}
}

// Signup handles client self-registration
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, &models.ValidationError{Msg: "invalid request body"})
		return
	}

	authResp, err := h.Service.Signup(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, authResp)
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, &models.ValidationError{Msg: "invalid request body"})
		return
	}

	authResp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("login failed", zap.String("email", req.Email))
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, authResp)
}
