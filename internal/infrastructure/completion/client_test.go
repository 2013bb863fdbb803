package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faizxmak/latilong/internal/domain/chat"
)

func sseChunk(content string) string {
	payload, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"delta": map[string]string{"content": content}},
		},
	})
	return fmt.Sprintf("data: %s\n\n", payload)
}

func newStreamServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, true, req["stream"])

		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
}

func testClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:   baseURL,
		APIKey:    "test-key",
		Model:     "gpt-4o-mini",
		MaxTokens: 256,
		Timeout:   5 * time.Second,
	})
}

func TestStreamCompletion_YieldsDeltasUntilDone(t *testing.T) {
	body := sseChunk("Hello") + sseChunk(", ") + sseChunk("world") + "data: [DONE]\n\n"
	server := newStreamServer(t, body, http.StatusOK)
	defer server.Close()

	client := testClient(server.URL)
	stream, err := client.StreamCompletion(context.Background(), []chat.CompletionMessage{
		{Role: chat.RoleUser, Content: "hi"},
	})
	require.NoError(t, err)
	defer stream.Close()

	var got string
	for {
		delta, err := stream.Recv()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got += delta.Content
	}
	assert.Equal(t, "Hello, world", got)
}

func TestStreamCompletion_SkipsMalformedAndEmptyChunks(t *testing.T) {
	body := "data: {not json}\n\n" +
		": keepalive comment\n\n" +
		"data: {\"choices\":[]}\n\n" +
		sseChunk("ok") +
		"data: [DONE]\n\n"
	server := newStreamServer(t, body, http.StatusOK)
	defer server.Close()

	client := testClient(server.URL)
	stream, err := client.StreamCompletion(context.Background(), []chat.CompletionMessage{
		{Role: chat.RoleUser, Content: "hi"},
	})
	require.NoError(t, err)
	defer stream.Close()

	delta, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "ok", delta.Content)

	_, err = stream.Recv()
	assert.Equal(t, io.EOF, err)
}

func TestStreamCompletion_UpstreamDropIsAnError(t *testing.T) {
	// Body ends without the [DONE] marker.
	body := sseChunk("partial ")
	server := newStreamServer(t, body, http.StatusOK)
	defer server.Close()

	client := testClient(server.URL)
	stream, err := client.StreamCompletion(context.Background(), []chat.CompletionMessage{
		{Role: chat.RoleUser, Content: "hi"},
	})
	require.NoError(t, err)
	defer stream.Close()

	delta, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "partial ", delta.Content)

	_, err = stream.Recv()
	require.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestStreamCompletion_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.StreamCompletion(context.Background(), []chat.CompletionMessage{
		{Role: chat.RoleUser, Content: "hi"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
