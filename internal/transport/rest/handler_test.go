package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"talent-horizon/internal/applications"
	"talent-horizon/internal/clients"
	"talent-horizon/internal/domain"
	"talent-horizon/internal/profile"
	"talent-horizon/internal/service"
	"talent-horizon/internal/storage"
)

const (
	clientA = "6f1c2d4e-9a8b-4c3d-8e7f-1a2b3c4d5e6f"
	clientB = "0b9e8d7c-6a5f-4e3d-9c2b-1a0f9e8d7c6b"
)

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

type failingKV struct {
	storage.KeyValue
}

func (failingKV) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func newTestServer(t *testing.T, kv storage.KeyValue) *httptest.Server {
	t.Helper()

	log := zaptest.NewLogger(t)
	files, err := clients.NewLocalStorage(t.TempDir(), "/files", "")
	require.NoError(t, err)

	h := NewHandler(Options{
		Applications: applications.NewRegistry(kv, log, nil, nil),
		Profiles:     profile.NewRegistry(kv, log, nil),
		Exports:      service.NewExportService(service.ExportOptions{Files: files, Logger: log}),
		Files:        files,
		Logger:       log,
	})

	srv := httptest.NewServer(h.InitRouter())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, clientID, method, path string, body any) (*http.Response, envelope) {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, rd)
	require.NoError(t, err)
	if clientID != "" {
		req.Header.Set("X-Client-ID", clientID)
	}
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v), string(env.Data))
	return v
}

func newCard() map[string]any {
	return map[string]any{
		"firstName":      "Jane",
		"lastName":       "Roe",
		"email":          "jane@example.com",
		"bankName":       "First Bank",
		"cardLast4":      "4242",
		"creditLimit":    5000,
		"currentBalance": 2000,
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, storage.NewMemory())

	resp, env := do(t, srv, "", http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", env.Status)
}

func TestClientIDRequired(t *testing.T) {
	srv := newTestServer(t, storage.NewMemory())

	resp, env := do(t, srv, "", http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 401, env.ErrorCode)

	resp, _ = do(t, srv, "browser-1", http.MethodGet, "/api/profile", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, "", http.MethodGet, "/api/profile?client_id="+clientA, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreditCardLifecycle(t *testing.T) {
	srv := newTestServer(t, storage.NewMemory())

	resp, env := do(t, srv, clientA, http.MethodPost, "/api/applications/credit-card", newCard())
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	created := decodeData[domain.CreditCardApplication](t, env)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.ApplicationNumber)
	assert.Equal(t, domain.CreditCardSubmitted, created.Status)
	assert.Zero(t, created.ServiceFee)
	assert.Zero(t, created.ServiceFeePercentage)

	resp, env = do(t, srv, clientA, http.MethodGet, "/api/applications/credit-card/"+created.ApplicationNumber, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.ID, decodeData[domain.CreditCardApplication](t, env).ID)

	resp, env = do(t, srv, clientA, http.MethodPatch, "/api/applications/credit-card/"+created.ID,
		map[string]any{"currentBalance": 1000, "status": "approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	updated := decodeData[domain.CreditCardApplication](t, env)
	assert.InDelta(t, 150, updated.ServiceFee, 1e-9)
	assert.Equal(t, domain.CreditCardApproved, updated.Status)

	resp, env = do(t, srv, clientA, http.MethodGet, "/api/applications/credit-card", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeData[[]domain.CreditCardApplication](t, env)
	require.Len(t, list, 1)
	assert.Equal(t, 1000.0, list[0].CurrentBalance)

	resp, _ = do(t, srv, clientB, http.MethodGet, "/api/applications/credit-card/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "clients do not see each other's applications")
}

func TestCreditCardValidation(t *testing.T) {
	srv := newTestServer(t, storage.NewMemory())

	bad := newCard()
	bad["email"] = "not-an-email"
	resp, env := do(t, srv, clientA, http.MethodPost, "/api/applications/credit-card", bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"field":"email"}`, string(env.Data))

	resp, _ = do(t, srv, clientA, http.MethodPost, "/api/applications/credit-card", "{")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, clientA, http.MethodPatch, "/api/applications/credit-card/missing",
		map[string]any{"currentBalance": 10})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env = do(t, srv, clientA, http.MethodPatch, "/api/applications/credit-card/missing",
		map[string]any{"status": "paid"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"field":"status"}`, string(env.Data))
}

func TestTaxRefundZeroActualRefund(t *testing.T) {
	srv := newTestServer(t, storage.NewMemory())

	resp, env := do(t, srv, clientA, http.MethodPost, "/api/applications/tax-refund", map[string]any{
		"firstName":       "Jon",
		"lastName":        "Doe",
		"email":           "jon@example.com",
		"taxYear":         2024,
		"estimatedRefund": 800,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	created := decodeData[domain.TaxRefundApplication](t, env)

	resp, env = do(t, srv, clientA, http.MethodPatch, "/api/applications/tax-refund/"+created.ID,
		map[string]any{"actualRefund": 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeData[domain.TaxRefundApplication](t, env)
	assert.Zero(t, updated.ServiceFee)
	assert.Zero(t, updated.NetRefund)

	resp, env = do(t, srv, clientA, http.MethodPatch, "/api/applications/tax-refund/"+created.ID,
		map[string]any{"teamNotes": "docs received"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated = decodeData[domain.TaxRefundApplication](t, env)
	require.NotNil(t, updated.TeamNotes)
	assert.Equal(t, "docs received", *updated.TeamNotes)
}

func TestListFilter(t *testing.T) {
	srv := newTestServer(t, storage.NewMemory())

	for _, name := range []string{"Ada", "Alan"} {
		card := newCard()
		card["firstName"] = name
		resp, _ := do(t, srv, clientA, http.MethodPost, "/api/applications/credit-card", card)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, env := do(t, srv, clientA, http.MethodGet, "/api/applications/credit-card?search=alan", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeData[[]domain.CreditCardApplication](t, env)
	require.Len(t, list, 1)
	assert.Equal(t, "Alan", list[0].FirstName)

	resp, _ = do(t, srv, clientA, http.MethodGet, "/api/applications/credit-card?status=paid", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, clientA, http.MethodGet, "/api/applications/tax-refund?submitted_from=June", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPersistFailureKeepsChange(t *testing.T) {
	srv := newTestServer(t, failingKV{storage.NewMemory()})

	resp, _ := do(t, srv, clientA, http.MethodPost, "/api/applications/credit-card", newCard())
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, env := do(t, srv, clientA, http.MethodGet, "/api/applications/credit-card", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeData[[]domain.CreditCardApplication](t, env), 1)
}

func TestProfileSections(t *testing.T) {
	srv := newTestServer(t, storage.NewMemory())

	resp, env := do(t, srv, clientA, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	seed := decodeData[domain.Profile](t, env)
	require.NotEmpty(t, seed.Languages)
	for _, l := range seed.Languages {
		assert.True(t, strings.HasPrefix(l.ID, "lang"), "language id %q", l.ID)
	}

	resp, env = do(t, srv, clientA, http.MethodPatch, "/api/profile/overview", map[string]any{"summary": "Go engineer"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Go engineer", decodeData[domain.Profile](t, env).Overview.Summary)

	resp, env = do(t, srv, clientA, http.MethodPost, "/api/profile/skills", map[string]any{"name": "Go", "level": "expert"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	skill := decodeData[domain.Skill](t, env)
	assert.True(t, strings.HasPrefix(skill.ID, "sk"))

	resp, env = do(t, srv, clientA, http.MethodPatch, "/api/profile/skills/"+skill.ID, map[string]any{"endorsements": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := decodeData[domain.Profile](t, env)
	last := doc.Skills[len(doc.Skills)-1]
	assert.Equal(t, skill.ID, last.ID)
	assert.Equal(t, 3, last.Endorsements)

	resp, _ = do(t, srv, clientA, http.MethodPost, "/api/profile/skills", map[string]any{"level": "expert"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, clientA, http.MethodDelete, "/api/profile/experience/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env = do(t, srv, clientA, http.MethodPost, "/api/profile/experience", map[string]any{"title": "Staff Engineer"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	exp := decodeData[domain.Experience](t, env)

	resp, env = do(t, srv, clientA, http.MethodDelete, "/api/profile/experience/"+exp.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, e := range decodeData[domain.Profile](t, env).Experience {
		assert.NotEqual(t, exp.ID, e.ID)
	}

	resp, _ = do(t, srv, clientB, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProfileLanguagesByIndex(t *testing.T) {
	srv := newTestServer(t, storage.NewMemory())

	resp, env := do(t, srv, clientA, http.MethodPatch, "/api/profile/languages/at/0", map[string]any{"proficiency": "fluent"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := decodeData[domain.Profile](t, env)
	assert.Equal(t, "fluent", doc.Languages[0].Proficiency)
	count := len(doc.Languages)

	resp, _ = do(t, srv, clientA, http.MethodPatch, "/api/profile/languages/at/99", map[string]any{"proficiency": "fluent"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, srv, clientA, http.MethodDelete, "/api/profile/languages/at/x", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, env = do(t, srv, clientA, http.MethodDelete, "/api/profile/languages/at/0", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeData[domain.Profile](t, env).Languages, count-1)
}

func TestExportAndDownload(t *testing.T) {
	srv := newTestServer(t, storage.NewMemory())

	resp, _ := do(t, srv, clientA, http.MethodPost, "/api/applications/credit-card", newCard())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := do(t, srv, clientA, http.MethodPost, "/api/applications/export",
		map[string]any{"credit_card_fields": "application_number, status"})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	res := decodeData[service.ExportResult](t, env)
	assert.Equal(t, 1, res.Rows)
	require.True(t, strings.HasPrefix(res.URL, "/files/"))

	dl, err := http.Get(srv.URL + res.URL)
	require.NoError(t, err)
	defer dl.Body.Close()
	assert.Equal(t, http.StatusOK, dl.StatusCode)
	assert.Contains(t, dl.Header.Get("Content-Disposition"), res.FileName)

	resp, env = do(t, srv, clientA, http.MethodPost, "/api/applications/export",
		map[string]any{"tax_refund_fields": []string{"ssn"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"fields":["ssn"]}`, string(env.Data))

	resp, _ = do(t, srv, clientA, http.MethodPost, "/api/applications/export",
		map[string]any{"tax_refund_fields": 7})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, env = do(t, srv, clientA, http.MethodGet, "/api/exports", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(env.Data))

	resp, _ = do(t, srv, clientA, http.MethodGet, "/api/exports/"+strings.TrimPrefix(res.ID, "exports:"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeFile_RejectsUnknown(t *testing.T) {
	srv := newTestServer(t, storage.NewMemory())

	resp, err := http.Get(srv.URL + "/files/nope.xlsx")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRequestTimeoutDefault(t *testing.T) {
	h := NewHandler(Options{})
	assert.Equal(t, 60*time.Second, h.timeout)
}
