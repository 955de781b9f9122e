package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/luoxin/dailydo/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
	})
	client.delay = time.Millisecond
	return client, server
}

func chatBody(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestChatSendsSystemAndUserMessages(t *testing.T) {
	var gotReq chatRequest
	var gotAuth string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(chatBody("  回答内容  ")))
	})

	got, err := client.Chat(context.Background(), "系统提示", "用户提示")
	if err != nil {
		t.Fatalf("Chat() error: %v", err)
	}
	if got != "回答内容" {
		t.Errorf("Chat() = %q, want trimmed content", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("model = %q, want test-model", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 ||
		gotReq.Messages[0].Role != "system" || gotReq.Messages[0].Content != "系统提示" ||
		gotReq.Messages[1].Role != "user" || gotReq.Messages[1].Content != "用户提示" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestChatMissingAPIKey(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.Chat(context.Background(), "s", "u")
	if !errors.Is(err, errors.ErrAPIKeyMissing) {
		t.Errorf("error = %v, want ErrAPIKeyMissing", err)
	}
}

func TestChatRetriesTransientFailures(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(chatBody("终于成功")))
	})

	got, err := client.Chat(context.Background(), "s", "u")
	if err != nil {
		t.Fatalf("Chat() error after retries: %v", err)
	}
	if got != "终于成功" {
		t.Errorf("Chat() = %q", got)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestChatAuthErrorNotRetried(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key", "type": "invalid_request_error"}}`))
	})

	_, err := client.Chat(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("Chat() should fail on 401")
	}
	var upErr *errors.UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("error = %T, want UpstreamError", err)
	}
	if upErr.Kind != errors.UpstreamAuth {
		t.Errorf("Kind = %v, want auth", upErr.Kind)
	}
	if !strings.Contains(err.Error(), "bad key") {
		t.Errorf("error should carry provider message: %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestChatDecodeFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "not json at all"},
		{"no choices", `{"choices": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Chat(context.Background(), "s", "u")
			var upErr *errors.UpstreamError
			if !errors.As(err, &upErr) {
				t.Fatalf("error = %v, want UpstreamError", err)
			}
			if upErr.Kind != errors.UpstreamDecode {
				t.Errorf("Kind = %v, want decode", upErr.Kind)
			}
		})
	}
}

func TestChatContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Chat(ctx, "s", "u")
	if err == nil {
		t.Fatal("Chat() should fail with canceled context")
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"unclosed fence", "```json\n{\"a\": 1}", `{"a": 1}`},
		{"surrounding whitespace", "  \n```\nx\n```\n ", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFence(tt.in); got != tt.want {
				t.Errorf("StripFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})

	if client.baseURL != defaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, defaultBaseURL)
	}
	if client.model != defaultModel {
		t.Errorf("model = %q, want %q", client.model, defaultModel)
	}
	if client.maxRetries != defaultMaxRetries {
		t.Errorf("maxRetries = %d, want %d", client.maxRetries, defaultMaxRetries)
	}
}
