// Package clientstest provides in-process stand-ins for the external
// services the clients package talks to.
package clientstest

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"talent-horizon/internal/clients"
)

const (
	S3Bucket = "talent-horizon-test"
	S3Region = "us-east-1"
)

// S3Server is a minimal path-style S3 endpoint holding objects in memory.
// It answers bucket HEAD/PUT and object PUT/GET, which is all S3Client uses.
type S3Server struct {
	srv *httptest.Server

	mu      sync.Mutex
	objects map[string][]byte
	failing atomic.Bool
}

// NewS3Server starts a TLS server and registers its shutdown with t.
func NewS3Server(t *testing.T) *S3Server {
	t.Helper()

	s := &S3Server{objects: make(map[string][]byte)}
	s.srv = httptest.NewTLSServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.srv.Close)
	return s
}

// Client returns an S3Client bound to the server. Retries are disabled so
// failures surface on the first attempt.
func (s *S3Server) Client(t *testing.T, prefix string) *clients.S3Client {
	t.Helper()

	c, err := clients.NewS3Client(t.Context(), clients.S3Config{
		Endpoint:        strings.TrimPrefix(s.srv.URL, "https://"),
		AccessKeyID:     "test",
		SecretAccessKey: "test-secret",
		Bucket:          S3Bucket,
		Region:          S3Region,
		UseSSL:          true,
		Prefix:          prefix,
		Transport:       s.srv.Client().Transport,
		MaxRetries:      1,
	})
	require.NoError(t, err)
	return c
}

// FailWrites makes every object PUT answer 500.
func (s *S3Server) FailWrites(fail bool) {
	s.failing.Store(fail)
}

// Close stops the server early; later requests fail at the transport.
func (s *S3Server) Close() {
	s.srv.Close()
}

// Object returns the stored bytes for key.
func (s *S3Server) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.objects[key]
	return v, ok
}

// Keys lists every stored object key.
func (s *S3Server) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

func (s *S3Server) serve(w http.ResponseWriter, r *http.Request) {
	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if bucket != S3Bucket {
		writeS3Error(w, http.StatusNotFound, "NoSuchBucket")
		return
	}

	if key == "" {
		switch r.Method {
		case http.MethodHead, http.MethodPut:
			w.WriteHeader(http.StatusOK)
		default:
			writeS3Error(w, http.StatusMethodNotAllowed, "MethodNotAllowed")
		}
		return
	}

	switch r.Method {
	case http.MethodPut:
		if s.failing.Load() {
			writeS3Error(w, http.StatusInternalServerError, "InternalError")
			return
		}
		data, err := io.ReadAll(r.Body)
		if err != nil {
			writeS3Error(w, http.StatusBadRequest, "IncompleteBody")
			return
		}
		s.mu.Lock()
		s.objects[key] = data
		s.mu.Unlock()
		w.Header().Set("ETag", etag(data))
		w.WriteHeader(http.StatusOK)

	case http.MethodGet, http.MethodHead:
		data, ok := s.Object(key)
		if !ok {
			writeS3Error(w, http.StatusNotFound, "NoSuchKey")
			return
		}
		h := w.Header()
		h.Set("ETag", etag(data))
		h.Set("Last-Modified", time.Now().UTC().Format(http.TimeFormat))
		h.Set("Content-Length", strconv.Itoa(len(data)))
		h.Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(data)
		}

	default:
		writeS3Error(w, http.StatusMethodNotAllowed, "MethodNotAllowed")
	}
}

func etag(data []byte) string {
	sum := md5.Sum(data)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

func writeS3Error(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>%s</Code><Message>%s</Message></Error>`, code, code)
}
