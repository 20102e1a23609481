package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"talent-horizon/internal/applications"
)

func listApplications[T any](
	list func(*applications.Store) []T,
	filter func(applications.Filter, []T) []T,
	validStatus func(string) bool,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := ParseListFilter(r, validStatus)
		if err != nil {
			badRequest(w, err)
			return
		}

		Success(w, "", filter(f, list(applications.FromContext(r.Context()))))
	}
}

func createApplication[In, Out any](
	h *Handler,
	validate func(In) error,
	add func(*applications.Store, context.Context, In) (Out, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := decodeJSON(r, &in, false); err != nil {
			badRequest(w, err)
			return
		}
		if err := validate(in); err != nil {
			badRequest(w, err)
			return
		}

		app, err := add(applications.FromContext(r.Context()), r.Context(), in)
		if err != nil {
			h.saveFailed(w, r, err)
			return
		}
		SuccessCreated(w, "application submitted", app)
	}
}

func getApplication[T any](get func(*applications.Store, string) (T, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app, ok := get(applications.FromContext(r.Context()), chi.URLParam(r, "id"))
		if !ok {
			ErrorNotFound(w, "application not found")
			return
		}
		Success(w, "", app)
	}
}

func updateApplication[P, T any](
	h *Handler,
	validate func(P) error,
	update func(*applications.Store, context.Context, string, P) (bool, error),
	get func(*applications.Store, string) (T, bool),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch P
		if err := decodeJSON(r, &patch, false); err != nil {
			badRequest(w, err)
			return
		}
		if err := validate(patch); err != nil {
			badRequest(w, err)
			return
		}

		st := applications.FromContext(r.Context())
		id := chi.URLParam(r, "id")
		found, err := update(st, r.Context(), id, patch)
		if !found {
			ErrorNotFound(w, "application not found")
			return
		}
		if err != nil {
			h.saveFailed(w, r, err)
			return
		}

		app, _ := get(st, id)
		Success(w, "application updated", app)
	}
}
