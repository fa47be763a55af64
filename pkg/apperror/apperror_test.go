package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NotFound("Movie not found with id %d", 7), KindNotFound},
		{"invalid", InvalidArgument("bad"), KindInvalidArgument},
		{"malformed", Malformed("bad json"), KindMalformedRequest},
		{"wrapped", fmt.Errorf("patch movie: %w", NotFound("gone")), KindNotFound},
		{"plain error", errors.New("boom"), KindInternal},
		{"validation", Validation(map[string]string{"title": "required"}), KindInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Kind: KindInternal, Message: "find movie 3", Err: cause}

	if err.Error() != "find movie 3: connection refused" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}
