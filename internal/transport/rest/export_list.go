package rest

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"talent-horizon/internal/applications"
	"talent-horizon/internal/service"
	"talent-horizon/internal/transport/auth"
)

func (h *Handler) exportApplications(w http.ResponseWriter, r *http.Request) {
	req, err := ValidateExportRequest(r)
	if err != nil {
		badRequest(w, err)
		return
	}

	clientID, err := auth.GetClientID(r.Context())
	if err != nil {
		ErrorUnauthorized(w, "Unauthorized")
		return
	}

	res, err := h.exports.ExportApplications(r.Context(), clientID, applications.FromContext(r.Context()), *req)
	if err != nil {
		var unknown *service.UnknownColumnError
		if errors.As(err, &unknown) {
			Response(w, err.Error(), map[string]any{"fields": unknown.Fields}, 400, "error", http.StatusBadRequest)
			return
		}
		h.log.Error("export failed", zap.String("client_id", clientID), zap.Error(err))
		ErrorInternal(w, "failed to export applications")
		return
	}

	Success(w, "export ready", res)
}

func (h *Handler) listExports(w http.ResponseWriter, r *http.Request) {
	clientID, err := auth.GetClientID(r.Context())
	if err != nil {
		ErrorUnauthorized(w, "Unauthorized")
		return
	}

	exports, err := h.exports.GetExports(r.Context(), clientID)
	if err != nil {
		h.log.Error("list exports failed", zap.String("client_id", clientID), zap.Error(err))
		ErrorInternal(w, "failed to get exports")
		return
	}

	Success(w, "", exports)
}

func (h *Handler) getExport(w http.ResponseWriter, r *http.Request) {
	clientID, err := auth.GetClientID(r.Context())
	if err != nil {
		ErrorUnauthorized(w, "Unauthorized")
		return
	}

	exportIDParam := chi.URLParam(r, "export_id")
	if exportIDParam == "" {
		ErrorBadRequest(w, "export_id is required")
		return
	}
	exportID := "exports:" + exportIDParam

	export, err := h.exports.GetExport(r.Context(), exportID, clientID)
	if errors.Is(err, service.ErrExportNotFound) {
		ErrorNotFound(w, "export not found")
		return
	}
	if err != nil {
		h.log.Error("get export failed", zap.String("client_id", clientID), zap.Error(err))
		ErrorInternal(w, "failed to get export")
		return
	}

	Success(w, "", export)
}
