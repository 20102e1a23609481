package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talent-horizon/internal/domain"
	"talent-horizon/internal/profile"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	Success(w, "", profile.FromContext(r.Context()).Profile())
}

// patchProfile merges a patch into the document, or one of its sections, and
// answers with the whole updated document.
func patchProfile[P any](h *Handler, update func(*profile.Store, context.Context, P) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch P
		if err := decodeJSON(r, &patch, false); err != nil {
			badRequest(w, err)
			return
		}

		st := profile.FromContext(r.Context())
		if err := update(st, r.Context(), patch); err != nil {
			h.saveFailed(w, r, err)
			return
		}
		Success(w, "profile updated", st.Profile())
	}
}

// profileList mounts add, update and delete routes for one id-keyed profile
// list.
func profileList[T, P any](
	r chi.Router,
	h *Handler,
	section string,
	add func(*profile.Store, context.Context, T) (T, error),
	update func(*profile.Store, context.Context, string, P) (bool, error),
	del func(*profile.Store, context.Context, string) (bool, error),
) {
	r.Post("/"+section, func(w http.ResponseWriter, r *http.Request) {
		var item T
		if err := decodeJSON(r, &item, false); err != nil {
			badRequest(w, err)
			return
		}
		if err := ValidateProfileItem(item); err != nil {
			badRequest(w, err)
			return
		}

		created, err := add(profile.FromContext(r.Context()), r.Context(), item)
		if err != nil {
			h.saveFailed(w, r, err)
			return
		}
		SuccessCreated(w, "", created)
	})

	r.Patch("/"+section+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		var patch P
		if err := decodeJSON(r, &patch, false); err != nil {
			badRequest(w, err)
			return
		}

		st := profile.FromContext(r.Context())
		found, err := update(st, r.Context(), chi.URLParam(r, "id"), patch)
		writeListResult(h, w, r, st, found, err)
	})

	r.Delete("/"+section+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		st := profile.FromContext(r.Context())
		found, err := del(st, r.Context(), chi.URLParam(r, "id"))
		writeListResult(h, w, r, st, found, err)
	})
}

func writeListResult(h *Handler, w http.ResponseWriter, r *http.Request, st *profile.Store, found bool, err error) {
	if !found {
		ErrorNotFound(w, "item not found")
		return
	}
	if err != nil {
		h.saveFailed(w, r, err)
		return
	}
	Success(w, "profile updated", st.Profile())
}

func (h *Handler) updateLanguageAt(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(chi.URLParam(r, "index"))
	if err != nil {
		badRequest(w, err)
		return
	}

	var patch domain.LanguagePatch
	if err := decodeJSON(r, &patch, false); err != nil {
		badRequest(w, err)
		return
	}

	st := profile.FromContext(r.Context())
	found, err := st.UpdateLanguageAt(r.Context(), index, patch)
	writeListResult(h, w, r, st, found, err)
}

func (h *Handler) deleteLanguageAt(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(chi.URLParam(r, "index"))
	if err != nil {
		badRequest(w, err)
		return
	}

	st := profile.FromContext(r.Context())
	found, err := st.DeleteLanguageAt(r.Context(), index)
	writeListResult(h, w, r, st, found, err)
}
