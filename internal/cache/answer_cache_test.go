package cache

import (
	"context"
	"testing"

	"github.com/gcbaptista/go-faq-engine/services"
)

func TestNilCacheIsNoOp(t *testing.T) {
	var c *AnswerCache
	ctx := context.Background()

	if _, ok := c.Get(ctx, "college", "admission fee", 0.3); ok {
		t.Error("nil cache must always miss")
	}

	// Must not panic.
	c.Set(ctx, "college", "admission fee", 0.3, services.MatchResult{Matched: true})
	c.InvalidateIndex(ctx, "college")
}

func TestCacheKey_NormalizesQuery(t *testing.T) {
	a := cacheKey("college", "Admission FEE?", 0.3)
	b := cacheKey("college", "admission   fee", 0.3)
	if a != b {
		t.Errorf("expected rephrased queries to share a key:\n%s\n%s", a, b)
	}
}

func TestCacheKey_DistinguishesInputs(t *testing.T) {
	base := cacheKey("college", "admission fee", 0.3)

	if got := cacheKey("college", "hostel fee", 0.3); got == base {
		t.Error("different queries must produce different keys")
	}
	if got := cacheKey("admissions", "admission fee", 0.3); got == base {
		t.Error("different indexes must produce different keys")
	}
	if got := cacheKey("college", "admission fee", 0.8); got == base {
		t.Error("different thresholds must produce different keys")
	}
}
