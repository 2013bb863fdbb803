package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/faizxmak/latilong/internal/domain/chat"
	"github.com/faizxmak/latilong/internal/infrastructure/auth"
	"github.com/faizxmak/latilong/internal/interfaces/httpserver/handlers"
	"github.com/faizxmak/latilong/internal/utils/apperrors"
)

// MockConversationService is a mock implementation of the conversation
// service used by the handlers.
type MockConversationService struct {
	CreateFunc func(ctx context.Context, userID uint, title string) (*chat.Conversation, error)
	ListFunc   func(ctx context.Context, userID uint) ([]chat.Conversation, error)
	GetFunc    func(ctx context.Context, userID uint, publicID string) (*chat.Conversation, error)
	RenameFunc func(ctx context.Context, userID uint, publicID, title string) (*chat.Conversation, error)
	DeleteFunc func(ctx context.Context, userID uint, publicID string) error
}

func (m *MockConversationService) Create(ctx context.Context, userID uint, title string) (*chat.Conversation, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, title)
	}
	return nil, nil
}

func (m *MockConversationService) List(ctx context.Context, userID uint) ([]chat.Conversation, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockConversationService) Get(ctx context.Context, userID uint, publicID string) (*chat.Conversation, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID, publicID)
	}
	return nil, nil
}

func (m *MockConversationService) Rename(ctx context.Context, userID uint, publicID, title string) (*chat.Conversation, error) {
	if m.RenameFunc != nil {
		return m.RenameFunc(ctx, userID, publicID, title)
	}
	return nil, nil
}

func (m *MockConversationService) Delete(ctx context.Context, userID uint, publicID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, publicID)
	}
	return nil
}

func setupConversationTestRouter(handler *handlers.ConversationHandler, principal *auth.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if principal != nil {
			auth.SetPrincipal(c, principal)
		}
	})
	r.GET("/api/conversations", handler.List)
	r.POST("/api/conversations", handler.Create)
	r.GET("/api/conversations/:id", handler.Get)
	r.PATCH("/api/conversations/:id", handler.Rename)
	r.DELETE("/api/conversations/:id", handler.Delete)
	return r
}

func TestConversationHandler_List(t *testing.T) {
	mockService := &MockConversationService{
		ListFunc: func(ctx context.Context, userID uint) ([]chat.Conversation, error) {
			return []chat.Conversation{
				{PublicID: "conv_1", UserID: userID, Title: "Trip to Rome", UpdatedAt: time.Now()},
				{PublicID: "conv_2", UserID: userID, Title: "New Conversation", UpdatedAt: time.Now()},
			}, nil
		},
	}

	handler := handlers.NewConversationHandler(mockService, zerolog.Nop())
	router := setupConversationTestRouter(handler, &auth.Principal{UserID: 3})

	req, _ := http.NewRequest("GET", "/api/conversations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("Expected 2 conversations, got %d", len(response))
	}
	if response[0]["id"] != "conv_1" {
		t.Errorf("Expected conversation id 'conv_1', got %v", response[0]["id"])
	}
}

func TestConversationHandler_Create(t *testing.T) {
	mockService := &MockConversationService{
		CreateFunc: func(ctx context.Context, userID uint, title string) (*chat.Conversation, error) {
			return &chat.Conversation{PublicID: "conv_new", UserID: userID, Title: "New Conversation"}, nil
		},
	}

	handler := handlers.NewConversationHandler(mockService, zerolog.Nop())
	router := setupConversationTestRouter(handler, &auth.Principal{UserID: 3})

	req, _ := http.NewRequest("POST", "/api/conversations", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["id"] != "conv_new" {
		t.Errorf("Expected conversation id 'conv_new', got %v", response["id"])
	}
}

func TestConversationHandler_GetNotFound(t *testing.T) {
	mockService := &MockConversationService{
		GetFunc: func(ctx context.Context, userID uint, publicID string) (*chat.Conversation, error) {
			return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeNotFound,
				"conversation not found", nil, "")
		},
	}

	handler := handlers.NewConversationHandler(mockService, zerolog.Nop())
	router := setupConversationTestRouter(handler, &auth.Principal{UserID: 3})

	req, _ := http.NewRequest("GET", "/api/conversations/conv_other", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestConversationHandler_Rename(t *testing.T) {
	mockService := &MockConversationService{
		RenameFunc: func(ctx context.Context, userID uint, publicID, title string) (*chat.Conversation, error) {
			return &chat.Conversation{PublicID: publicID, UserID: userID, Title: title}, nil
		},
	}

	handler := handlers.NewConversationHandler(mockService, zerolog.Nop())
	router := setupConversationTestRouter(handler, &auth.Principal{UserID: 3})

	req, _ := http.NewRequest("PATCH", "/api/conversations/conv_1",
		bytes.NewBufferString(`{"title":"Renamed"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response["title"] != "Renamed" {
		t.Errorf("Expected title 'Renamed', got %v", response["title"])
	}
}

func TestConversationHandler_RenameMissingTitle(t *testing.T) {
	handler := handlers.NewConversationHandler(&MockConversationService{}, zerolog.Nop())
	router := setupConversationTestRouter(handler, &auth.Principal{UserID: 3})

	req, _ := http.NewRequest("PATCH", "/api/conversations/conv_1", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestConversationHandler_Delete(t *testing.T) {
	deleted := ""
	mockService := &MockConversationService{
		DeleteFunc: func(ctx context.Context, userID uint, publicID string) error {
			deleted = publicID
			return nil
		},
	}

	handler := handlers.NewConversationHandler(mockService, zerolog.Nop())
	router := setupConversationTestRouter(handler, &auth.Principal{UserID: 3})

	req, _ := http.NewRequest("DELETE", "/api/conversations/conv_1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if deleted != "conv_1" {
		t.Errorf("Expected conv_1 deleted, got %q", deleted)
	}
}

func TestConversationHandler_MissingPrincipal(t *testing.T) {
	handler := handlers.NewConversationHandler(&MockConversationService{}, zerolog.Nop())
	router := setupConversationTestRouter(handler, nil)

	req, _ := http.NewRequest("GET", "/api/conversations", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}
}
