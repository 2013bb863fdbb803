package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/faizxmak/latilong/internal/domain/chat"
	"github.com/faizxmak/latilong/internal/infrastructure/auth"
	"github.com/faizxmak/latilong/internal/infrastructure/metrics"
	"github.com/faizxmak/latilong/internal/interfaces/httpserver/requests"
	"github.com/faizxmak/latilong/internal/utils/apperrors"
)

// TurnStarter runs one message turn, emitting stream events to the sink.
type TurnStarter interface {
	RunTurn(ctx context.Context, input chat.TurnInput, sink chat.TurnSink) error
}

// ChatHandler serves the streaming message endpoint.
type ChatHandler struct {
	turns  TurnStarter
	logger zerolog.Logger
}

// NewChatHandler wires the chat handler.
func NewChatHandler(turns TurnStarter, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		turns:  turns,
		logger: logger.With().Str("component", "chat-handler").Logger(),
	}
}

// contentFrame is the wire shape of a single streamed fragment.
type contentFrame struct {
	Content string `json:"content"`
}

// doneFrame is the wire shape of the successful terminal frame.
type doneFrame struct {
	Done bool `json:"done"`
}

// errorFrame is the wire shape of the failure terminal frame.
type errorFrame struct {
	Error string `json:"error"`
}

// sseSink writes stream events to the response as SSE data frames. It is safe
// for concurrent use and reports write failures so the caller can stop
// forwarding while the turn drains.
type sseSink struct {
	mu      sync.Mutex
	writer  gin.ResponseWriter
	flusher http.Flusher
	failed  bool
}

// newSSESink sets the event-stream response headers and binds the sink to
// the connection. It fails when the connection cannot flush incrementally.
func newSSESink(c *gin.Context) (*sseSink, error) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming unsupported by connection")
	}

	header := c.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")

	return &sseSink{writer: c.Writer, flusher: flusher}, nil
}

// Send encodes the event as one SSE frame and flushes it.
func (s *sseSink) Send(event chat.StreamEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failed {
		return fmt.Errorf("sse sink closed")
	}

	var payload any
	switch event.Type {
	case chat.StreamEventContent:
		payload = contentFrame{Content: event.Text}
	case chat.StreamEventDone:
		payload = doneFrame{Done: true}
	case chat.StreamEventError:
		payload = errorFrame{Error: event.Err}
	default:
		return fmt.Errorf("unknown stream event type: %s", event.Type)
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode stream event: %w", err)
	}

	if _, err := fmt.Fprintf(s.writer, "data: %s\n\n", encoded); err != nil {
		s.failed = true
		return fmt.Errorf("failed to write stream event: %w", err)
	}
	s.flusher.Flush()
	return nil
}

// SendMessage appends the user's message to a conversation and streams the
// assistant's reply back as Server Sent Events.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		apperrors.WriteUnauthorized(c, "missing principal")
		return
	}

	var req requests.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.WriteValidationError(c, err.Error())
		return
	}

	input := chat.TurnInput{
		ConversationPublicID: c.Param("id"),
		UserID:               principal.UserID,
		UserText:             req.Content,
	}

	sink, err := newSSESink(c)
	if err != nil {
		apperrors.WriteInternalError(c, err.Error())
		return
	}

	metrics.ActiveStreams.Inc()
	defer metrics.ActiveStreams.Dec()

	start := time.Now()
	err = h.turns.RunTurn(c.Request.Context(), input, sink)
	if err != nil {
		metrics.RecordTurn(string(chat.TurnStateFailed), time.Since(start).Seconds())
		// Failures before the stream opened still have a JSON-able response.
		if !c.Writer.Written() {
			c.Writer.Header().Del("Content-Type")
			apperrors.WriteError(c, err, h.logger)
		}
		return
	}
	metrics.RecordTurn(string(chat.TurnStateCompleted), time.Since(start).Seconds())
}
