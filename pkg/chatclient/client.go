// Package chatclient is a Go client for the latilong API. It covers the JSON
// endpoints and consumes the streaming message endpoint, tracking in-progress
// assistant output so callers can render live text the way the web app does.
package chatclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Conversation mirrors the conversation payload returned by the API.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message mirrors the message payload returned by the API.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// User mirrors the account payload returned by the API.
type User struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// AuthResult carries the account and bearer token returned by signup or login.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (%d %s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("api error (%d)", e.StatusCode)
}

// Client talks to a latilong server.
type Client struct {
	baseURL string
	token   string
	rest    *resty.Client
	// Streaming requests bypass resty so the response body can be read
	// incrementally.
	http *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithToken sets the bearer token used on authenticated requests.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the HTTP client used for streaming requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New constructs a client for the given server base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		rest: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second),
		http: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, e.g. after login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Signup creates an account and stores the returned token on the client.
func (c *Client) Signup(ctx context.Context, email, password, firstName, lastName string) (*AuthResult, error) {
	var result AuthResult
	resp, err := c.request(ctx).
		SetBody(map[string]string{
			"email":      email,
			"password":   password,
			"first_name": firstName,
			"last_name":  lastName,
		}).
		SetResult(&result).
		Post("/api/auth/signup")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	resp, err := c.request(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&result).
		Post("/api/auth/login")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

// Me returns the authenticated account.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	resp, err := c.request(ctx).SetResult(&user).Get("/api/auth/me")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListConversations returns the caller's conversations.
func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	var conversations []Conversation
	resp, err := c.request(ctx).SetResult(&conversations).Get("/api/conversations")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return conversations, nil
}

// CreateConversation starts a new conversation.
func (c *Client) CreateConversation(ctx context.Context, title string) (*Conversation, error) {
	var conversation Conversation
	resp, err := c.request(ctx).
		SetBody(map[string]string{"title": title}).
		SetResult(&conversation).
		Post("/api/conversations")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// GetConversation returns one conversation with its transcript.
func (c *Client) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	var conversation Conversation
	resp, err := c.request(ctx).SetResult(&conversation).Get("/api/conversations/" + id)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// RenameConversation updates a conversation's title.
func (c *Client) RenameConversation(ctx context.Context, id, title string) (*Conversation, error) {
	var conversation Conversation
	resp, err := c.request(ctx).
		SetBody(map[string]string{"title": title}).
		SetResult(&conversation).
		Patch("/api/conversations/" + id)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// DeleteConversation removes a conversation.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	resp, err := c.request(ctx).Delete("/api/conversations/" + id)
	return checkResponse(resp, err)
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.rest.R().SetContext(ctx).SetError(&apiError{})
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	return req
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		if body, ok := resp.Error().(*apiError); ok && body != nil {
			apiErr.Type = body.Error.Type
			apiErr.Message = body.Error.Message
		}
		return apiErr
	}
	return nil
}
