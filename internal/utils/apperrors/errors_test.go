package apperrors

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeConflict, http.StatusConflict},
		{ErrorTypeUnauthorized, http.StatusUnauthorized},
		{ErrorTypeForbidden, http.StatusForbidden},
		{ErrorTypeDatabaseError, http.StatusInternalServerError},
		{ErrorTypeExternal, http.StatusBadGateway},
		{ErrorTypeInternal, http.StatusInternalServerError},
		{ErrorType("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := ErrorTypeToHTTPStatus(tt.errorType); got != tt.want {
			t.Errorf("ErrorTypeToHTTPStatus(%s) = %d, want %d", tt.errorType, got, tt.want)
		}
	}
}

func TestAsErrorPreservesType(t *testing.T) {
	ctx := context.Background()
	inner := NewError(ctx, LayerRepository, ErrorTypeNotFound, "conversation not found", nil, "get-conversation-error")

	wrapped := AsError(ctx, LayerDomain, inner, "get conversation")
	if wrapped.Type != ErrorTypeNotFound {
		t.Errorf("expected wrapped type NOT_FOUND, got %s", wrapped.Type)
	}
	if wrapped.UUID != inner.UUID {
		t.Errorf("expected wrapped UUID %q, got %q", inner.UUID, wrapped.UUID)
	}
	if !errors.Is(wrapped, inner) {
		t.Error("expected wrapped error to unwrap to the inner error")
	}
}

func TestAsErrorDefaultsToInternal(t *testing.T) {
	wrapped := AsError(context.Background(), LayerDomain, errors.New("boom"), "stream completion")
	if wrapped.Type != ErrorTypeInternal {
		t.Errorf("expected INTERNAL for plain errors, got %s", wrapped.Type)
	}

	if AsError(context.Background(), LayerDomain, nil, "noop") != nil {
		t.Error("expected nil for nil input")
	}
}

func TestIsErrorType(t *testing.T) {
	err := NewError(context.Background(), LayerHandler, ErrorTypeUnauthorized, "missing token", nil, "")

	if !IsErrorType(err, ErrorTypeUnauthorized) {
		t.Error("expected IsErrorType to match UNAUTHORIZED")
	}
	if IsErrorType(err, ErrorTypeNotFound) {
		t.Error("expected IsErrorType to reject a different type")
	}
	if IsErrorType(errors.New("plain"), ErrorTypeInternal) {
		t.Error("expected IsErrorType to reject non-AppError values")
	}
	if GetAppError(errors.New("plain")) != nil {
		t.Error("expected GetAppError to return nil for non-AppError values")
	}
}
