package chatclient

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// streamFrame is the wire shape of one streamed SSE data payload. Exactly one
// field is set per frame.
type streamFrame struct {
	Content string `json:"content"`
	Done    bool   `json:"done"`
	Error   string `json:"error"`
}

// StreamError is the terminal error frame of a message stream. Any live text
// shown for the turn should be discarded when it arrives.
type StreamError struct {
	Message string
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("assistant stream failed: %s", e.Message)
}

// Session tracks the live state of a streaming turn: whether a stream is in
// flight and the assistant text accumulated so far. Safe for concurrent use
// so a renderer can poll while the consumer appends.
type Session struct {
	mu        sync.Mutex
	streaming bool
	liveText  strings.Builder
}

// IsStreaming reports whether a turn is currently in flight.
func (s *Session) IsStreaming() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streaming
}

// LiveText returns the assistant text accumulated so far in the current turn.
func (s *Session) LiveText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liveText.String()
}

func (s *Session) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streaming = true
	s.liveText.Reset()
}

func (s *Session) append(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liveText.WriteString(text)
}

func (s *Session) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streaming = false
	s.liveText.Reset()
}

// SendMessage posts the user's text to a conversation and consumes the SSE
// reply stream, updating the session as fragments arrive and calling onContent
// for each one. When the stream finishes cleanly it refetches the conversation
// so the caller gets the persisted transcript; live text is cleared either way.
// onContent may be nil.
func (c *Client) SendMessage(ctx context.Context, session *Session, conversationID, content string, onContent func(fragment string)) (*Conversation, error) {
	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}

	url := strings.TrimRight(c.baseURL, "/") + "/api/conversations/" + conversationID + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeErrorResponse(resp)
	}

	session.begin()
	defer session.end()

	if err := c.consumeStream(resp.Body, session, onContent); err != nil {
		return nil, err
	}

	// The assistant message is persisted before the done frame, so a refetch
	// returns the complete transcript.
	return c.GetConversation(ctx, conversationID)
}

// consumeStream reads SSE data frames until a terminal frame or EOF. Frames
// may arrive split across reads; bufio reassembles lines before parsing.
func (c *Client) consumeStream(r io.Reader, session *Session, onContent func(string)) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// Server went away without a terminal frame.
				return &StreamError{Message: "stream ended unexpectedly"}
			}
			return fmt.Errorf("read stream: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" || !strings.HasPrefix(line, "data: ") {
			continue
		}

		var frame streamFrame
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &frame); err != nil {
			// Skip malformed frames rather than aborting the turn.
			continue
		}

		switch {
		case frame.Error != "":
			return &StreamError{Message: frame.Error}
		case frame.Done:
			return nil
		case frame.Content != "":
			session.append(frame.Content)
			if onContent != nil {
				onContent(frame.Content)
			}
		}
	}
}

func decodeErrorResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body apiError
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Type = body.Error.Type
		apiErr.Message = body.Error.Message
	}
	return apiErr
}
