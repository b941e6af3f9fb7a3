package errx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestWrapRedis(t *testing.T) {
	if WrapRedis(nil) != nil {
		t.Fatal("WrapRedis(nil) should be nil")
	}

	miss := WrapRedis(redis.Nil)
	if !IsNotFound(miss) {
		t.Errorf("redis.Nil should map to not found, got %v", miss)
	}
	if !errors.Is(miss, redis.Nil) {
		t.Error("wrapped error should still match redis.Nil")
	}

	boom := errors.New("connection refused")
	wrapped := WrapRedis(boom)
	if StatusOf(wrapped) != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", StatusOf(wrapped), http.StatusBadGateway)
	}
	if IsNotFound(wrapped) {
		t.Error("transport error must not be reported as not found")
	}
	if MessageOf(wrapped) != RedisErrorMessage {
		t.Errorf("message = %q", MessageOf(wrapped))
	}
}

func TestStatusOfPlainError(t *testing.T) {
	err := errors.New("plain")
	if StatusOf(err) != http.StatusInternalServerError {
		t.Errorf("status = %d", StatusOf(err))
	}
	if MessageOf(err) != SystemErrorMessage {
		t.Errorf("message = %q", MessageOf(err))
	}
}

func TestWrapBackendChain(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := WrapBackend(cause)
	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("expected *Error")
	}
	if e.Message != BackendErrorMessage || !errors.Is(err, cause) {
		t.Errorf("unexpected wrap: %v", err)
	}
	if WrapDecode(nil) != nil || WrapBackend(nil) != nil {
		t.Error("nil in, nil out")
	}
}
