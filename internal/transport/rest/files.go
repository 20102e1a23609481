package rest

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"talent-horizon/internal/transport/auth"
)

// serveFile downloads a finished export. Stored names carry a random prefix
// which is stripped from the suggested file name.
func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	path, err := h.files.Path(file)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		h.log.Error("stat export file failed", zap.String("file", file), zap.Error(err))
		http.Error(w, "failed to access file", http.StatusInternalServerError)
		return
	}

	orig := file
	if idx := strings.IndexByte(file, '_'); idx >= 0 {
		orig = file[idx+1:]
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", orig))

	http.ServeFile(w, r, path)
}

func (h *Handler) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	clientID, err := auth.GetClientID(r.Context())
	if err != nil {
		ErrorUnauthorized(w, "Unauthorized")
		return
	}
	h.hub.HandleWebSocket(w, r, clientID)
}
