// internal/llm/client_test.go
package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "idea-generator/internal/common/errors"
)

// ==========================
// Test Logger Implementation
// ==========================

type TestLogger struct {
	t *testing.T
}

func (l *TestLogger) Debug(msg string, fields map[string]interface{}) {
	l.t.Logf("DEBUG: %s %v", msg, fields)
}

func (l *TestLogger) Warn(msg string, fields map[string]interface{}) {
	l.t.Logf("WARN: %s %v", msg, fields)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig(endpoint string) *Config {
	return &Config{
		Endpoint:       endpoint,
		APIVersion:     "2023-06-01",
		ProbeModel:     "claude-3-5-sonnet-20241022",
		ProbeMaxTokens: 10,
		ProbeMessage:   "Hi",
		Timeout:        5 * time.Second,
	}
}

type capturedRequest struct {
	method  string
	headers http.Header
	body    CompletionRequest
}

func newCapturingServer(t *testing.T, status int, reply string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		if captured != nil {
			captured.method = r.Method
			captured.headers = r.Header.Clone()
			assert.NoError(t, json.Unmarshal(raw, &captured.body))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)
	return server
}

// ==========================
// Complete
// ==========================

func TestClient_Complete_Success(t *testing.T) {
	var captured capturedRequest
	server := newCapturingServer(t, http.StatusOK,
		`{"id":"msg_1","type":"message","content":[{"type":"text","text":"hello"},{"type":"text","text":"world"}]}`,
		&captured)

	client := NewClient(createTestConfig(server.URL), &TestLogger{t: t})
	resp, err := client.Complete(context.Background(), []Message{UserMessage("prompt")}, "sk-test", 2048, "claude-3-5-sonnet-20241022")

	require.NoError(t, err)
	require.Len(t, resp.Content, 2)
	assert.Equal(t, "hello", resp.Content[0].Text)
	assert.Equal(t, "world", resp.Content[1].Text)

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "sk-test", captured.headers.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", captured.headers.Get("anthropic-version"))
	assert.Equal(t, "application/json", captured.headers.Get("Content-Type"))
	assert.Equal(t, CompletionRequest{
		Model:     "claude-3-5-sonnet-20241022",
		MaxTokens: 2048,
		Messages:  []Message{{Role: "user", Content: "prompt"}},
	}, captured.body)
}

func TestClient_Complete_WireShape(t *testing.T) {
	var raw map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	client := NewClient(createTestConfig(server.URL), &TestLogger{t: t})
	_, err := client.Complete(context.Background(), []Message{UserMessage("p")}, "k", 100, "m")
	require.NoError(t, err)

	assert.Len(t, raw, 3)
	assert.Equal(t, "m", raw["model"])
	assert.Equal(t, float64(100), raw["max_tokens"])
	messages, ok := raw["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 1)
	assert.Equal(t, map[string]interface{}{"role": "user", "content": "p"}, messages[0])
}

func TestClient_Complete_EmptyContentIsNotAnError(t *testing.T) {
	server := newCapturingServer(t, http.StatusOK, `{"content":[]}`, nil)

	client := NewClient(createTestConfig(server.URL), &TestLogger{t: t})
	resp, err := client.Complete(context.Background(), []Message{UserMessage("p")}, "k", 10, "m")

	require.NoError(t, err)
	assert.Empty(t, resp.Content)
}

func TestClient_Complete_APIError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`},
		{"rate limited", http.StatusTooManyRequests, `{"type":"error","error":{"type":"rate_limit_error"}}`},
		{"server error with plain body", http.StatusInternalServerError, "upstream exploded"},
		{"empty body", http.StatusBadGateway, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newCapturingServer(t, tt.status, tt.body, nil)

			client := NewClient(createTestConfig(server.URL), &TestLogger{t: t})
			resp, err := client.Complete(context.Background(), []Message{UserMessage("p")}, "k", 10, "m")

			assert.Nil(t, resp)
			require.Error(t, err)
			stdErr := apperrors.AsStandard(err)
			assert.Equal(t, apperrors.ErrCodeAPI, stdErr.Code)
			assert.Equal(t, tt.status, stdErr.StatusCode)
			assert.Equal(t, tt.body, stdErr.Details)
		})
	}
}

func TestClient_Complete_DecodeError(t *testing.T) {
	server := newCapturingServer(t, http.StatusOK, `not json at all`, nil)

	client := NewClient(createTestConfig(server.URL), &TestLogger{t: t})
	_, err := client.Complete(context.Background(), []Message{UserMessage("p")}, "k", 10, "m")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeDecode))
	assert.Contains(t, err.Error(), "not json at all")
}

func TestClient_Complete_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(createTestConfig(url), &TestLogger{t: t})
	_, err := client.Complete(context.Background(), []Message{UserMessage("p")}, "k", 10, "m")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeTransport))
}

func TestClient_Complete_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(createTestConfig(server.URL), &TestLogger{t: t})
	_, err := client.Complete(ctx, []Message{UserMessage("p")}, "k", 10, "m")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeTransport))
}

// ==========================
// Probe
// ==========================

func TestClient_Probe(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected bool
	}{
		{"ok", http.StatusOK, `{"content":[{"text":"Hello"}]}`, true},
		{"ok with unparseable body", http.StatusOK, `garbage`, true},
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad key"}`, false},
		{"forbidden", http.StatusForbidden, ``, false},
		{"server error", http.StatusInternalServerError, `oops`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured capturedRequest
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured.headers = r.Header.Clone()
				_ = json.NewDecoder(r.Body).Decode(&captured.body)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(createTestConfig(server.URL), &TestLogger{t: t})
			ok, err := client.Probe(context.Background(), "sk-probe")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			assert.Equal(t, "sk-probe", captured.headers.Get("x-api-key"))
			assert.Equal(t, 10, captured.body.MaxTokens)
			assert.Equal(t, "claude-3-5-sonnet-20241022", captured.body.Model)
			assert.Equal(t, []Message{{Role: "user", Content: "Hi"}}, captured.body.Messages)
		})
	}
}

func TestClient_Probe_TransportError(t *testing.T) {
	client := NewClient(createTestConfig("http://127.0.0.1:1"), &TestLogger{t: t})
	ok, err := client.Probe(context.Background(), "k")

	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeTransport))
}

func TestClient_InvalidEndpointIsTransportError(t *testing.T) {
	client := NewClient(createTestConfig("://bad"), &TestLogger{t: t})
	_, err := client.Complete(context.Background(), nil, "k", 1, "m")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeTransport))
}

func newTruncatingServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Length", "100")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":`))
		w.(http.Flusher).Flush()

		conn, _, err := w.(http.Hijacker).Hijack()
		if assert.NoError(t, err) {
			conn.Close()
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_Probe_TruncatedBodyStillReportsStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		expected bool
	}{
		{"unauthorized", http.StatusUnauthorized, false},
		{"ok", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTruncatingServer(t, tt.status)

			client := NewClient(createTestConfig(server.URL), &TestLogger{t: t})
			ok, err := client.Probe(context.Background(), "sk-probe")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestClient_Complete_TruncatedBodyIsTransportError(t *testing.T) {
	server := newTruncatingServer(t, http.StatusOK)

	client := NewClient(createTestConfig(server.URL), &TestLogger{t: t})
	_, err := client.Complete(context.Background(), []Message{UserMessage("p")}, "k", 10, "m")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeTransport))
}
