package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsHandler(reached *bool) http.Handler {
	return CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reached != nil {
			*reached = true
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORS_AllowedOriginGetsCredentialedHeaders(t *testing.T) {
	handler := corsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/player_stats", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("Allow-Credentials missing; cookies cannot cross origins without it")
	}
}

func TestCORS_ConfiguredOriginsOverrideDefaults(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://game.example.com")
	handler := corsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://game.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for configured origin", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 once defaults are overridden", rec.Code)
	}
}

func TestCORS_DisallowedOriginRejected(t *testing.T) {
	var reached bool
	handler := corsHandler(&reached)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if reached {
		t.Error("handler ran for a rejected origin")
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	var reached bool
	handler := corsHandler(&reached)

	req := httptest.NewRequest(http.MethodOptions, "/combat/attack", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if reached {
		t.Error("preflight must not reach the handler")
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("preflight response missing Allow-Methods")
	}
}

func TestCORS_NoOriginPassesThroughUntouched(t *testing.T) {
	var reached bool
	handler := corsHandler(&reached)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !reached {
		t.Fatalf("status = %d, reached = %v", rec.Code, reached)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("same-origin request must not get CORS headers")
	}
}
