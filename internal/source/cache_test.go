package source

import (
	"testing"
	"time"
)

func TestResponseCache(t *testing.T) {
	c := newResponseCache(time.Hour)

	if _, ok := c.get("missing"); ok {
		t.Error("expected miss for unknown key")
	}

	c.set("k", "v")
	got, ok := c.get("k")
	if !ok || got != "v" {
		t.Errorf("get(k) = %v, %v", got, ok)
	}
	if c.len() != 1 {
		t.Errorf("len() = %d, want 1", c.len())
	}

	c.clear()
	if _, ok := c.get("k"); ok {
		t.Error("expected miss after clear")
	}
}

func TestResponseCacheExpiry(t *testing.T) {
	c := newResponseCache(-time.Second)
	c.set("k", "v")

	if _, ok := c.get("k"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestErrorPredicates(t *testing.T) {
	rl := &RateLimitedError{Reset: time.Now()}
	nf := &NotFoundError{Resource: "manifest"}
	up := &UpstreamError{Status: 500, Message: "boom"}

	if !IsRateLimited(rl) || IsRateLimited(nf) || IsRateLimited(up) {
		t.Error("IsRateLimited misclassified")
	}
	if !IsNotFound(nf) || IsNotFound(rl) || IsNotFound(up) {
		t.Error("IsNotFound misclassified")
	}
}
