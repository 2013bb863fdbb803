package completion

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/faizxmak/latilong/internal/domain/chat"
)

// Config controls the upstream completion endpoint.
type Config struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// Client talks to an OpenAI-compatible chat completion endpoint. It
// implements chat.Provider.
type Client struct {
	httpClient *resty.Client
	cfg        Config
}

// NewClient creates a Resty-backed client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &Client{
		httpClient: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetHeader("Content-Type", "application/json").
			SetAuthToken(cfg.APIKey).
			SetTimeout(cfg.Timeout),
		cfg: cfg,
	}
}

var _ chat.Provider = (*Client)(nil)

// StreamCompletion opens a streaming completion. The returned stream yields
// content deltas and io.EOF at the [DONE] marker.
func (c *Client) StreamCompletion(ctx context.Context, messages []chat.CompletionMessage) (chat.Stream, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Accept", "text/event-stream").
		SetBody(c.buildRequest(messages)).
		SetDoNotParseResponse(true).
		Post("/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}

	body := resp.RawBody()
	if resp.StatusCode() != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(body, 4096))
		body.Close()
		return nil, fmt.Errorf("completion api error: %d %s", resp.StatusCode(), string(respBody))
	}

	return &sseStream{
		body:   body,
		reader: bufio.NewReader(body),
	}, nil
}

func (c *Client) buildRequest(messages []chat.CompletionMessage) openai.ChatCompletionRequest {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		out[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}
	return openai.ChatCompletionRequest{
		Model:     c.cfg.Model,
		Messages:  out,
		MaxTokens: c.cfg.MaxTokens,
		Stream:    true,
	}
}

// sseStream implements chat.Stream backed by the raw response body with SSE
// parsing.
type sseStream struct {
	body   io.ReadCloser
	reader *bufio.Reader
}

func (s *sseStream) Recv() (*chat.Delta, error) {
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// Upstream dropped without the [DONE] marker.
				return nil, fmt.Errorf("stream ended unexpectedly: %w", io.ErrUnexpectedEOF)
			}
			return nil, fmt.Errorf("read line: %w", err)
		}

		line = strings.TrimSpace(line)

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")

		if data == "[DONE]" {
			return nil, io.EOF
		}

		var chunk openai.ChatCompletionStreamResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Skip malformed chunks
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		return &chat.Delta{Content: chunk.Choices[0].Delta.Content}, nil
	}
}

func (s *sseStream) Close() error {
	if s.body != nil {
		return s.body.Close()
	}
	return nil
}
