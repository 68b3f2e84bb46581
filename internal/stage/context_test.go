package stage

import (
	"context"
	"testing"
)

func TestContextValuesRoundTrip(t *testing.T) {
	ctx := WithStage(WithRunID(context.Background(), "run-1"), Archive)
	if id, ok := RunIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("unexpected run id %q (ok=%v)", id, ok)
	}
	if name, ok := FromContext(ctx); !ok || name != Archive {
		t.Fatalf("unexpected stage %q (ok=%v)", name, ok)
	}
}

func TestEmptyValuesLeaveContextUntouched(t *testing.T) {
	base := context.Background()
	if WithRunID(base, "") != base {
		t.Fatal("expected empty run id to return original context")
	}
	if WithStage(base, "") != base {
		t.Fatal("expected empty stage to return original context")
	}
	if _, ok := FromContext(base); ok {
		t.Fatal("expected no stage on bare context")
	}
}

func TestAllReady(t *testing.T) {
	if !AllReady(nil) {
		t.Fatal("expected empty set to be ready")
	}
	records := []Health{Healthy("a", "ok"), Unhealthy("b", "missing")}
	if AllReady(records) {
		t.Fatal("expected unhealthy record to fail the set")
	}
	if AllReady(records[1:]) || !AllReady(records[:1]) {
		t.Fatal("unexpected readiness")
	}
}
