package errors

import (
	"errors"
	"fmt"
	"testing"
)

type timeoutError struct {
	Msg string
}

func (e timeoutError) Error() string { return e.Msg }

func TestNew(t *testing.T) {
	err := New("boom")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "boom" {
		t.Errorf("expected 'boom', got '%s'", err.Error())
	}
}

func TestWrap(t *testing.T) {
	base := errors.New("base error")

	t.Run("wrap non-nil error", func(t *testing.T) {
		wrapped := Wrap(base, "context")
		if wrapped == nil {
			t.Fatal("expected wrapped error, got nil")
		}
		if wrapped.Error() != "context: base error" {
			t.Errorf("unexpected message: %s", wrapped.Error())
		}
		if !errors.Is(wrapped, base) {
			t.Error("expected wrapped error to wrap base")
		}
	})

	t.Run("wrap nil error", func(t *testing.T) {
		if wrapped := Wrap(nil, "context"); wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestWrapf(t *testing.T) {
	base := errors.New("base error")

	t.Run("wrapf non-nil error", func(t *testing.T) {
		wrapped := Wrapf(base, "bucket %q", "verify:ip:1.2.3.4")
		if wrapped == nil {
			t.Fatal("expected wrapped error, got nil")
		}
		if wrapped.Error() != `bucket "verify:ip:1.2.3.4": base error` {
			t.Errorf("unexpected message: %s", wrapped.Error())
		}
		if !errors.Is(wrapped, base) {
			t.Error("expected wrapped error to wrap base")
		}
	})

	t.Run("wrapf nil error", func(t *testing.T) {
		if wrapped := Wrapf(nil, "context %d", 1); wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestIs(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrConflict,
		ErrInvalidInput,
		ErrUnauthorized,
		ErrForbidden,
		ErrRateLimited,
		ErrIntegrity,
		ErrConfiguration,
	}

	for _, sentinel := range sentinels {
		wrapped := Wrap(sentinel, "layer context")
		if !Is(wrapped, sentinel) {
			t.Errorf("expected Is(%v) to hold through wrapping", sentinel)
		}
	}

	if Is(Wrap(ErrIntegrity, "decrypt"), ErrUnauthorized) {
		t.Error("distinct sentinels must not match each other")
	}
}

func TestAs(t *testing.T) {
	custom := timeoutError{Msg: "deadline"}
	wrapped := fmt.Errorf("outer: %w", custom)

	var target timeoutError
	if !As(wrapped, &target) {
		t.Fatal("expected As to find timeoutError")
	}
	if target.Msg != "deadline" {
		t.Errorf("expected 'deadline', got '%s'", target.Msg)
	}
}
