package net

import (
	"context"
	"net/http"
	"testing"

	perr "braindump/internal/platform/errors"
)

func TestRequestContextRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequest(context.Background(), "req-7")
	if got := RequestID(ctx); got != "req-7" {
		t.Fatalf("RequestID = %q, want req-7", got)
	}

	// blank ids must not shadow an existing value
	ctx = WithRequest(ctx, "")
	if got := RequestID(ctx); got != "req-7" {
		t.Fatalf("RequestID after blank = %q, want req-7", got)
	}
}

func TestUserContextRoundTrip(t *testing.T) {
	t.Parallel()

	if got := UserID(context.Background()); got != "" {
		t.Fatalf("UserID on empty ctx = %q, want empty", got)
	}
	ctx := WithUser(context.Background(), "user-1")
	if got := UserID(ctx); got != "user-1" {
		t.Fatalf("UserID = %q, want user-1", got)
	}
}

func TestOKEnvelope(t *testing.T) {
	t.Parallel()

	status, w := OK(map[string]string{"k": "v"}, "req-1")
	if status != http.StatusOK || w.StatusCode != http.StatusOK {
		t.Fatalf("status = %d/%d, want 200", status, w.StatusCode)
	}
	if w.RequestID != "req-1" || w.Error != "" {
		t.Fatalf("unexpected envelope: %+v", w)
	}
}

func TestErrorEnvelope(t *testing.T) {
	t.Parallel()

	status, w := Error(perr.NothingSelectedf("pick something first"), "req-2")
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", status)
	}
	if w.Code != perr.ErrorCodeNothingSelected || w.Error == "" || w.RequestID != "req-2" {
		t.Fatalf("unexpected envelope: %+v", w)
	}

	// nil error folds to the OK shape
	status, w = Error(nil, "req-3")
	if status != http.StatusOK || w.Error != "" {
		t.Fatalf("nil error: %d %+v", status, w)
	}
}
