package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindForbidden, http.StatusForbidden},
		{KindPolicyViolation, http.StatusBadRequest},
		{KindValidation, http.StatusBadRequest},
		{KindUpstreamFailure, http.StatusBadGateway},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := HTTPStatus(New(tc.kind, "boom")); got != tc.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestUnclassifiedErrorsStayInternal(t *testing.T) {
	err := errors.New("pq: deadlock detected")
	if KindOf(err) != KindInternal {
		t.Errorf("kind = %s, want INTERNAL", KindOf(err))
	}
	if MessageOf(err) != "internal server error" {
		t.Errorf("message = %q, storage details must not leak", MessageOf(err))
	}
	if HTTPStatus(err) != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", HTTPStatus(err))
	}
}

func TestWrapKeepsKindThroughChain(t *testing.T) {
	cause := errors.New("row not found")
	err := Wrap(KindNotFound, "reservation not found", cause)
	wrapped := fmt.Errorf("handling request: %w", err)

	if !IsKind(wrapped, KindNotFound) {
		t.Errorf("kind lost through wrapping, got %s", KindOf(wrapped))
	}
	if MessageOf(wrapped) != "reservation not found" {
		t.Errorf("message = %q", MessageOf(wrapped))
	}
	if !errors.Is(wrapped, cause) {
		t.Error("cause not reachable via errors.Is")
	}
}
