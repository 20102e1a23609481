package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestParseClientID(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		query   string
		want    string
		wantErr error
	}{
		{name: "header", header: "6F1C2D4E-9A8B-4C3D-8E7F-1A2B3C4D5E6F", want: "6f1c2d4e-9a8b-4c3d-8e7f-1a2b3c4d5e6f"},
		{name: "query", query: "6f1c2d4e-9a8b-4c3d-8e7f-1a2b3c4d5e6f", want: "6f1c2d4e-9a8b-4c3d-8e7f-1a2b3c4d5e6f"},
		{name: "header wins", header: "0b9e8d7c-6a5f-4e3d-9c2b-1a0f9e8d7c6b", query: "6f1c2d4e-9a8b-4c3d-8e7f-1a2b3c4d5e6f", want: "0b9e8d7c-6a5f-4e3d-9c2b-1a0f9e8d7c6b"},
		{name: "missing", wantErr: ErrMissingClientID},
		{name: "not a uuid", header: "browser-1", wantErr: ErrInvalidClientID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/api/profile"
			if tt.query != "" {
				target += "?client_id=" + tt.query
			}
			r := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				r.Header.Set(HeaderClientID, tt.header)
			}

			got, err := ParseClientID(r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientIDMiddleware(t *testing.T) {
	var rejected int
	reject := func(w http.ResponseWriter, status int, message string) {
		rejected = status
		http.Error(w, message, status)
	}

	var seen string
	h := ClientIDMiddleware(zaptest.NewLogger(t), reject)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetClientID(r.Context())
		require.NoError(t, err)
		seen = id
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderClientID, "6f1c2d4e-9a8b-4c3d-8e7f-1a2b3c4d5e6f")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "6f1c2d4e-9a8b-4c3d-8e7f-1a2b3c4d5e6f", seen)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, http.StatusUnauthorized, rejected)

	r = httptest.NewRequest(http.MethodGet, "/?client_id=nope", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetClientID_Missing(t *testing.T) {
	_, err := GetClientID(context.Background())
	assert.Error(t, err)
}
