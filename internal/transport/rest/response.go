package rest

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type APIResponse struct {
	ErrorCode int    `json:"error_code"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
}

func Response(w http.ResponseWriter, message string, data any, errorCode int, status string, httpStatus int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	response := APIResponse{
		ErrorCode: errorCode,
		Status:    status,
		Message:   message,
		Data:      data,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		zap.L().Warn("write response failed", zap.Error(err))
	}
}

func Success(w http.ResponseWriter, message string, data any) {
	Response(w, message, data, 0, "success", http.StatusOK)
}

func SuccessCreated(w http.ResponseWriter, message string, data any) {
	Response(w, message, data, 0, "success", http.StatusCreated)
}

func Error(w http.ResponseWriter, message string, errorCode int, httpStatus int) {
	Response(w, message, nil, errorCode, "error", httpStatus)
}

// ErrorStatus reports message with the HTTP status doubling as error code.
func ErrorStatus(w http.ResponseWriter, httpStatus int, message string) {
	Error(w, message, httpStatus, httpStatus)
}

func ErrorBadRequest(w http.ResponseWriter, message string) {
	Error(w, message, 400, http.StatusBadRequest)
}

func ErrorValidation(w http.ResponseWriter, err *ValidationError) {
	Response(w, err.Error(), map[string]string{"field": err.Field}, 400, "error", http.StatusBadRequest)
}

func ErrorUnauthorized(w http.ResponseWriter, message string) {
	Error(w, message, 401, http.StatusUnauthorized)
}

func ErrorNotFound(w http.ResponseWriter, message string) {
	Error(w, message, 404, http.StatusNotFound)
}

func ErrorInternal(w http.ResponseWriter, message string) {
	Error(w, message, 500, http.StatusInternalServerError)
}
