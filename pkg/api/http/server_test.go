package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aescanero/pipeline-demo/internal/application/catalog"
	"github.com/aescanero/pipeline-demo/pkg/adapters/metrics/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(&Config{
		Addr:              "127.0.0.1:0",
		ReadHeaderTimeout: time.Second,
		Version:           "1.0.0",
		Environment:       "production",
		Catalog:           catalog.New(),
		Metrics:           prometheus.NewCollector(),
		Logger:            zap.NewNop(),
	})
}

func do(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHome(t *testing.T) {
	s := setupServer(t)

	w := do(t, s, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Equal(t, map[string]interface{}{
		"message":     "🚀 CI/CD Pipeline - Application opérationnelle",
		"version":     "1.0.0",
		"environment": "production",
		"status":      "healthy",
	}, decode(t, w))
}

func TestHome_ReflectsConfig(t *testing.T) {
	s := NewServer(&Config{
		Version:     "2.0.1",
		Environment: "staging",
		Catalog:     catalog.New(),
		Logger:      zap.NewNop(),
	})

	body := decode(t, do(t, s, http.MethodGet, "/"))
	assert.Equal(t, "2.0.1", body["version"])
	assert.Equal(t, "staging", body["environment"])
}

func TestProbes(t *testing.T) {
	s := setupServer(t)

	tests := []struct {
		path string
		want string
	}{
		{"/health", `{"status":"ok"}`},
		{"/ready", `{"status":"ready"}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, s, http.MethodGet, tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestListItems(t *testing.T) {
	s := setupServer(t)

	w := do(t, s, http.MethodGet, "/api/items")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ItemListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "Item Alpha", resp.Items[0].Name)
	assert.Equal(t, "Item Beta", resp.Items[1].Name)
	assert.Equal(t, "Item Gamma", resp.Items[2].Name)
	assert.Equal(t, "inactif", resp.Items[2].Status)
}

func TestGetItem(t *testing.T) {
	s := setupServer(t)

	for id := -2; id <= 6; id++ {
		t.Run(fmt.Sprint(id), func(t *testing.T) {
			w := do(t, s, http.MethodGet, fmt.Sprintf("/api/items/%d", id))

			switch {
			case id >= 1 && id <= 3:
				assert.Equal(t, http.StatusOK, w.Code)
				assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"name":"Item %d"}`, id, id), w.Body.String())
			case id < 0:
				assert.Equal(t, http.StatusNotFound, w.Code)
				assert.JSONEq(t, `{"error":"Not Found"}`, w.Body.String())
			default:
				assert.Equal(t, http.StatusNotFound, w.Code)
				assert.JSONEq(t, `{"error":"Item non trouvé"}`, w.Body.String())
			}
		})
	}
}

func TestGetItem_NonInteger(t *testing.T) {
	s := setupServer(t)

	for _, raw := range []string{"abc", "1.5", "+1", "1e3"} {
		w := do(t, s, http.MethodGet, "/api/items/"+raw)
		assert.Equal(t, http.StatusNotFound, w.Code, raw)
		assert.JSONEq(t, `{"error":"Not Found"}`, w.Body.String(), raw)
	}
}

func TestGetItem_BeyondIntRange(t *testing.T) {
	s := setupServer(t)

	for _, raw := range []string{"9223372036854775808", "99999999999999999999999"} {
		w := do(t, s, http.MethodGet, "/api/items/"+raw)
		assert.Equal(t, http.StatusNotFound, w.Code, raw)
		assert.JSONEq(t, `{"error":"Item non trouvé"}`, w.Body.String(), raw)
	}
}

func TestHeadOnGetRoutes(t *testing.T) {
	s := setupServer(t)

	for _, path := range []string{"/", "/health", "/ready", "/api/items", "/api/items/1"} {
		w := do(t, s, http.MethodHead, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestTrailingSlashNotRedirected(t *testing.T) {
	s := setupServer(t)

	w := do(t, s, http.MethodGet, "/health/")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	assert.JSONEq(t, `{"error":"Not Found"}`, w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	s := setupServer(t)

	w := do(t, s, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, w.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	s := setupServer(t)

	w := do(t, s, http.MethodPost, "/api/items")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method Not Allowed"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	s := setupServer(t)

	w := do(t, s, http.MethodOptions, "/api/items")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	s := setupServer(t)

	w := do(t, s, http.MethodGet, "/health")
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	s := setupServer(t)

	do(t, s, http.MethodGet, "/api/items/2")
	do(t, s, http.MethodGet, "/api/items/4")

	w := do(t, s, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, `pipeline_demo_item_lookups_total{result="found"} 1`), body)
	assert.True(t, strings.Contains(body, `pipeline_demo_item_lookups_total{result="not_found"} 1`), body)
	assert.Contains(t, body, `route="/api/items/:id"`)
}

func TestServeShutdown(t *testing.T) {
	s := setupServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ln) }()

	// the listener is already bound, so the request queues until Serve accepts it
	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.NoError(t, <-errCh)
}

func TestStart_AddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	s := NewServer(&Config{
		Addr:    ln.Addr().String(),
		Catalog: catalog.New(),
		Logger:  zap.NewNop(),
	})

	assert.Error(t, s.Start())
}

func TestParseItemID(t *testing.T) {
	tests := []struct {
		raw     string
		id      int
		wantErr error
	}{
		{"1", 1, nil},
		{"007", 7, nil},
		{"0", 0, nil},
		{"", 0, errInvalidItemID},
		{"-1", 0, errInvalidItemID},
		{"+1", 0, errInvalidItemID},
		{"x1", 0, errInvalidItemID},
		{"1x", 0, errInvalidItemID},
		{"9223372036854775808", 0, catalog.ErrItemNotFound},
	}

	for _, tt := range tests {
		id, err := parseItemID(tt.raw)
		if tt.wantErr == nil {
			assert.NoError(t, err, tt.raw)
		} else {
			assert.ErrorIs(t, err, tt.wantErr, tt.raw)
		}
		assert.Equal(t, tt.id, id, tt.raw)
	}
}
