// Package auth identifies the browser-side client a request acts for.
//
// Clients are anonymous: each one generates a UUID once and sends it with
// every request. The id only selects a storage namespace, it is not a
// credential.
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey string

const ClientIDKey ctxKey = "clientID"

const (
	HeaderClientID = "X-Client-ID"
	QueryClientID  = "client_id"
)

var (
	ErrMissingClientID = errors.New("client id is required")
	ErrInvalidClientID = errors.New("client id must be a UUID")
)

// ParseClientID reads the client id from the X-Client-ID header, falling
// back to the client_id query parameter for websocket handshakes, and
// returns it in canonical lower-case form.
func ParseClientID(r *http.Request) (string, error) {
	raw := r.Header.Get(HeaderClientID)
	if raw == "" {
		raw = r.URL.Query().Get(QueryClientID)
	}
	if raw == "" {
		return "", ErrMissingClientID
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return "", ErrInvalidClientID
	}
	return id.String(), nil
}

// ClientIDMiddleware rejects requests without a valid client id through
// reject and stores the id in the request context otherwise.
func ClientIDMiddleware(log *zap.Logger, reject func(w http.ResponseWriter, status int, message string)) func(http.Handler) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID, err := ParseClientID(r)
			if err != nil {
				log.Debug("client id rejected",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				status := http.StatusBadRequest
				if errors.Is(err, ErrMissingClientID) {
					status = http.StatusUnauthorized
				}
				reject(w, status, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), clientID)))
		})
	}
}

func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, ClientIDKey, clientID)
}

func GetClientID(ctx context.Context) (string, error) {
	clientID, ok := ctx.Value(ClientIDKey).(string)
	if !ok || clientID == "" {
		return "", errors.New("clientID not found in context")
	}
	return clientID, nil
}
