package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
)

func SetRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(RequestIDKey)
	if val == nil {
		return "", false
	}

	requestID, ok := val.(string)
	return requestID, ok
}

// NewRequestID returns a fresh random request identifier.
func NewRequestID() string {
	return uuid.New().String()
}

// ValidRequestID reports whether an incoming X-Request-ID can be reused as is.
func ValidRequestID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
