package orchestrator

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dungeonworks/gateway/internal/httputil"
	"github.com/dungeonworks/gateway/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.New("test", "error", "text")
}

// serviceClient spins up a fake downstream service and returns a
// client pointed at it.
func serviceClient(t *testing.T, service string, handler http.Handler) *httputil.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return httputil.NewClient(httputil.ClientConfig{Service: service, BaseURL: srv.URL})
}

// fixed responds to every request with one status and body.
func fixed(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}
