package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"

	"github.com/MikeSquared-Agency/onesheet/internal/llm"
)

func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", got)
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req["model"] != "test-model" {
			t.Errorf("expected model test-model, got %v", req["model"])
		}
		if req["max_tokens"] != float64(256) {
			t.Errorf("expected max_tokens 256, got %v", req["max_tokens"])
		}
		msgs, _ := req["messages"].([]any)
		if len(msgs) != 2 {
			t.Fatalf("expected system and user messages, got %v", req["messages"])
		}
		first, _ := msgs[0].(map[string]any)
		if first["role"] != "system" {
			t.Errorf("expected system message first, got %v", first)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","created":1,"model":"test-model","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"- Saves time"}}]}`))
	}))
	defer server.Close()

	c, err := NewClient("test-key", "test-model", server.URL+"/", option.WithMaxRetries(0))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	got, err := c.Complete(context.Background(), "you are a test", []llm.Message{llm.User("benefits")}, 256)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "- Saves time" {
		t.Errorf("expected completion text, got %q", got)
	}
}

func TestComplete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	c, _ := NewClient("test-key", "test-model", server.URL+"/", option.WithMaxRetries(0))

	if _, err := c.Complete(context.Background(), "", []llm.Message{llm.User("hi")}, 0); err == nil {
		t.Fatal("expected error for API error response")
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer server.Close()

	c, _ := NewClient("test-key", "m", server.URL+"/", option.WithMaxRetries(0))

	if _, err := c.Complete(context.Background(), "", []llm.Message{llm.User("hi")}, 0); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestNewClient_Defaults(t *testing.T) {
	if _, err := NewClient("", "", ""); err == nil {
		t.Error("expected error without api key")
	}
	c, err := NewClient("k", "", "")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.Model() != DefaultModel {
		t.Errorf("expected default model, got %q", c.Model())
	}
}
