package stage_test

import (
	"errors"
	"strings"
	"testing"

	"eccdeploy/internal/stage"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := stage.Wrap(stage.ErrArchive, "archive", "write", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, stage.ErrArchive) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"archive", "write", "failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutDetail(t *testing.T) {
	err := stage.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, stage.ErrTransport) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "stage failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestKindMapping(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{stage.Wrap(stage.ErrValidation, "inputs", "", "missing", nil), "validation"},
		{stage.Wrap(stage.ErrNotFound, "packages", "", "", nil), "not_found"},
		{stage.Wrap(stage.ErrArchive, "archive", "", "", errors.New("disk full")), "archive"},
		{stage.Wrap(stage.ErrTransport, "upload", "", "", errors.New("refused")), "transport"},
		{errors.New("plain"), "failure"},
	}
	for _, tc := range tests {
		if got := stage.Kind(tc.err); got != tc.want {
			t.Fatalf("Kind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
