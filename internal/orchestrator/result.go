// Package orchestrator sequences calls across the domain services to
// realize multi-step game actions: room traversal, combat turns,
// inventory operations and end-of-game finalization. It holds no
// durable state; every step re-fetches authoritative state from the
// owning service, and partially-applied sequences are surfaced as-is
// rather than compensated.
package orchestrator

import (
	"encoding/json"
	"net/http"

	"github.com/dungeonworks/gateway/internal/httputil"
)

// Result is an orchestration outcome destined for the HTTP surface:
// either a downstream payload passed through with its original status,
// or a gateway-composed payload.
type Result struct {
	Status int
	Body   []byte
}

// passThrough wraps a downstream response unmodified.
func passThrough(resp *httputil.Response) *Result {
	return &Result{Status: resp.Status, Body: resp.Body}
}

// composed builds a Result from a gateway-owned payload.
func composed(status int, payload interface{}) *Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return &Result{Status: http.StatusInternalServerError, Body: []byte(`{"error":"failed to encode response"}`)}
	}
	return &Result{Status: status, Body: body}
}
