package funnel

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsCode_ThroughWrapping(t *testing.T) {
	base := NewError(CodeNotFound, "repo.GetByID", "variant missing", nil)
	wrapped := fmt.Errorf("handling request: %w", base)

	if !IsCode(wrapped, CodeNotFound) {
		t.Fatalf("expected %s through wrapping", CodeNotFound)
	}
	if IsCode(wrapped, CodeAlreadyWinner) {
		t.Fatalf("matched wrong code")
	}
	if IsCode(errors.New("plain"), CodeNotFound) {
		t.Fatalf("plain error should not match")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(NewError(CodeInvalidCount, "", "", nil)); got != CodeInvalidCount {
		t.Fatalf("got %s", got)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Fatalf("expected empty code, got %s", got)
	}
	if got := CodeOf(nil); got != "" {
		t.Fatalf("expected empty code for nil, got %s", got)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(CodeInternal, "op", nil) != nil {
		t.Fatalf("wrapping nil should stay nil")
	}
	cause := errors.New("disk on fire")
	err := Wrap(CodeTransactionFailed, "repo.Create", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("cause should be reachable via errors.Is")
	}
	if !IsCode(err, CodeTransactionFailed) {
		t.Fatalf("expected %s, got %v", CodeTransactionFailed, err)
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{Code: CodeNotAWinner, Op: "svc.Scale", Message: "variant is not a winner"}
	want := "svc.Scale: variant is not a winner (not_a_winner)"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}
