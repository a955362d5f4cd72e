package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"installment-backend/internal/models"
)

// JSON writes data as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error maps domain error kinds to HTTP statuses and writes a JSON error body.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var ve *models.ValidationError

	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	}

	JSON(w, status, map[string]string{"error": err.Error()})
}
