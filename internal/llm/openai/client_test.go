package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"contract-backend/internal/llm"
)

func TestNewClient_RequiresConfiguration(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini"); !errors.Is(err, llm.ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured for missing key", err)
	}
	if _, err := NewClient("sk-test", ""); !errors.Is(err, llm.ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured for missing model", err)
	}
}

func TestAnalyze_ReturnsContent(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("messages = %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": `{"summary":{"documentType":"Service Agreement"}}`}},
			},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30},
		})
	}))
	defer server.Close()

	client, err := NewClient("sk-test", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.apiURL = server.URL

	out, err := client.Analyze(context.Background(), llm.AnalyzeInput{DocumentText: "doc"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if out != `{"summary":{"documentType":"Service Agreement"}}` {
		t.Fatalf("out = %q", out)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("authorization = %q", gotAuth)
	}
}

func TestAnalyze_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"message": "Incorrect API key provided",
				"type":    "invalid_request_error",
				"code":    "invalid_api_key",
			},
		})
	}))
	defer server.Close()

	client, err := NewClient("sk-bad", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.apiURL = server.URL

	_, err = client.Analyze(context.Background(), llm.AnalyzeInput{DocumentText: "doc"})
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("err = %v, want ProviderError", err)
	}
	if provErr.Status != http.StatusUnauthorized {
		t.Fatalf("status = %d", provErr.Status)
	}
	if provErr.Message != "Incorrect API key provided" {
		t.Fatalf("message = %q", provErr.Message)
	}
}

func TestAnalyze_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client, err := NewClient("sk-test", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	client.apiURL = server.URL

	if _, err := client.Analyze(context.Background(), llm.AnalyzeInput{DocumentText: "doc"}); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
