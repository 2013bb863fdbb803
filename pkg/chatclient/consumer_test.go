package chatclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatServer(t *testing.T, streamBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/conversations/conv_1/messages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		// Write in two chunks so a frame boundary lands mid-write.
		half := len(streamBody) / 2
		_, _ = io.WriteString(w, streamBody[:half])
		flusher.Flush()
		_, _ = io.WriteString(w, streamBody[half:])
	})
	mux.HandleFunc("GET /api/conversations/conv_1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "conv_1",
			"title": "Trip planning",
			"messages": [
				{"id": "msg_1", "role": "user", "content": "hi"},
				{"id": "msg_2", "role": "assistant", "content": "Hello, world"}
			]
		}`)
	})
	return httptest.NewServer(mux)
}

func TestSendMessage_AccumulatesAndRefetches(t *testing.T) {
	body := "data: {\"content\":\"Hello\"}\n\n" +
		"data: {\"content\":\", world\"}\n\n" +
		"data: {\"done\":true}\n\n"
	server := newChatServer(t, body)
	defer server.Close()

	client := New(server.URL, WithToken("tok"))
	session := &Session{}

	var fragments []string
	conversation, err := client.SendMessage(context.Background(), session, "conv_1", "hi",
		func(fragment string) {
			fragments = append(fragments, fragment)
			// Live text grows as fragments arrive.
			assert.True(t, session.IsStreaming())
		})
	require.NoError(t, err)

	assert.Equal(t, []string{"Hello", ", world"}, fragments)

	// The refetched transcript contains the persisted reply.
	require.Len(t, conversation.Messages, 2)
	assert.Equal(t, "Hello, world", conversation.Messages[1].Content)

	// Live state is cleared once the turn is over.
	assert.False(t, session.IsStreaming())
	assert.Empty(t, session.LiveText())
}

func TestSendMessage_ErrorFrameClearsLiveText(t *testing.T) {
	body := "data: {\"content\":\"partial\"}\n\n" +
		"data: {\"error\":\"The assistant could not finish its reply. Please try again.\"}\n\n"
	server := newChatServer(t, body)
	defer server.Close()

	client := New(server.URL, WithToken("tok"))
	session := &Session{}

	_, err := client.SendMessage(context.Background(), session, "conv_1", "hi", nil)
	require.Error(t, err)

	var streamErr *StreamError
	require.True(t, errors.As(err, &streamErr))
	assert.Contains(t, streamErr.Message, "could not finish")

	assert.False(t, session.IsStreaming())
	assert.Empty(t, session.LiveText())
}

func TestSendMessage_TruncatedStreamIsAnError(t *testing.T) {
	// Stream ends without a terminal frame.
	body := "data: {\"content\":\"partial\"}\n\n"
	server := newChatServer(t, body)
	defer server.Close()

	client := New(server.URL, WithToken("tok"))
	_, err := client.SendMessage(context.Background(), &Session{}, "conv_1", "hi", nil)
	require.Error(t, err)

	var streamErr *StreamError
	require.True(t, errors.As(err, &streamErr))
}

func TestSendMessage_SkipsMalformedFrames(t *testing.T) {
	body := "data: {not json}\n\n" +
		": comment line\n\n" +
		"data: {\"content\":\"ok\"}\n\n" +
		"data: {\"done\":true}\n\n"
	server := newChatServer(t, body)
	defer server.Close()

	client := New(server.URL, WithToken("tok"))
	session := &Session{}

	var fragments []string
	_, err := client.SendMessage(context.Background(), session, "conv_1", "hi",
		func(fragment string) { fragments = append(fragments, fragment) })
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, fragments)
}

func TestSendMessage_HTTPErrorResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/conversations/conv_missing/messages", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":{"message":"conversation not found","type":"not_found_error"}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL, WithToken("tok"))
	_, err := client.SendMessage(context.Background(), &Session{}, "conv_missing", "hi", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "not_found_error", apiErr.Type)
}
