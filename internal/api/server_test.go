package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lojacapivara/catalog/internal/testutil"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(testutil.NewCatalog(t), testutil.OpenSession(t), testutil.WelcomeCredentials, zap.NewNop())
}

// do sends a request and decodes the envelope, leaving Data as raw JSON.
func do(t *testing.T, s *Server, method, target, body string) (int, rawResponse) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var resp rawResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec.Code, resp
}

type rawResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *ErrorBody      `json:"error"`
}

type productJSON struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	Description string   `json:"description"`
}

func decodeProducts(t *testing.T, raw json.RawMessage) []productJSON {
	t.Helper()
	var out []productJSON
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func productNames(products []productJSON) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Len(t, rec.Header().Get("X-Request-Id"), 36)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
