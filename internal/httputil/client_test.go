package httputil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/dungeonworks/gateway/internal/errors"
)

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Method = %s, want GET", r.Method)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Service: "player", BaseURL: server.URL})

	resp, err := client.Get(context.Background(), "/test")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !resp.OK() {
		t.Errorf("Status = %d, want 2xx", resp.Status)
	}

	var payload map[string]string
	if err := resp.Decode(&payload); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if payload["status"] != "ok" {
		t.Errorf("status = %q, want ok", payload["status"])
	}
}

func TestClient_Post_SendsJSONBody(t *testing.T) {
	var received map[string]int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Service: "player", BaseURL: server.URL})

	resp, err := client.Post(context.Background(), "/players", map[string]int{"player_id": 7})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if resp.Status != http.StatusCreated {
		t.Errorf("Status = %d, want 201", resp.Status)
	}
	if received["player_id"] != 7 {
		t.Errorf("received player_id = %d, want 7", received["player_id"])
	}
}

func TestClient_ConnectionFailureIsUnavailable(t *testing.T) {
	client := NewClient(ClientConfig{
		Service: "dice",
		BaseURL: "http://127.0.0.1:1",
		Timeout: 200 * time.Millisecond,
	})

	_, err := client.Get(context.Background(), "/roll")
	if err == nil {
		t.Fatal("expected error for unreachable service")
	}

	se := apperrors.AsServiceError(err)
	if se.Code != apperrors.CodeUnavailable {
		t.Errorf("Code = %s, want %s", se.Code, apperrors.CodeUnavailable)
	}
	if se.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("HTTPStatus = %d, want 500", se.HTTPStatus)
	}
}

type upstreamCounter struct {
	byService map[string]int
}

func (c *upstreamCounter) RecordUpstreamError(upstream string) {
	if c.byService == nil {
		c.byService = make(map[string]int)
	}
	c.byService[upstream]++
}

func TestClient_ConnectionFailureRecordsUpstreamError(t *testing.T) {
	counter := &upstreamCounter{}
	client := NewClient(ClientConfig{
		Service: "dice",
		BaseURL: "http://127.0.0.1:1",
		Timeout: 200 * time.Millisecond,
		Metrics: counter,
	})

	_, err := client.Get(context.Background(), "/roll")
	if err == nil {
		t.Fatal("expected error for unreachable service")
	}
	if counter.byService["dice"] != 1 {
		t.Errorf("upstream errors for dice = %d, want 1", counter.byService["dice"])
	}
}

func TestClient_SuccessfulCallRecordsNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	counter := &upstreamCounter{}
	client := NewClient(ClientConfig{Service: "player", BaseURL: server.URL, Metrics: counter})

	if _, err := client.Get(context.Background(), "/player/1"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	// Non-2xx statuses are business outcomes for the orchestrators,
	// not transport failures; only failed calls count.
	if len(counter.byService) != 0 {
		t.Errorf("upstream errors = %v, want none", counter.byService)
	}
}

func TestResponse_ErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"json error field", `{"error":"room not found"}`, "room not found"},
		{"non-json body", `boom`, "boom"},
		{"json without error field", `{"message":"hi"}`, `{"message":"hi"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &Response{Status: 404, Body: []byte(tt.body)}
			if got := resp.ErrorMessage(); got != tt.want {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
