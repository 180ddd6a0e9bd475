package querycache

import (
	"testing"

	"github.com/bastiangx/anahash/pkg/variant"
)

func TestPutGetRoundTrip(t *testing.T) {
	c := New(10)
	want := []variant.Match{{Text: "separate", Similarity: 0.9}}
	c.Put("fp1", want)

	got, ok := c.Get("fp1")
	if !ok || len(got) != 1 || got[0].Text != "separate" {
		t.Errorf("Get(fp1) = %v, %v, want %v, true", got, ok, want)
	}
}

func TestGetMissReturnsFalse(t *testing.T) {
	c := New(10)
	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unseen fingerprint")
	}
}

func TestClearOnOverflow(t *testing.T) {
	c := New(2)
	c.Put("a", nil)
	c.Put("b", nil)
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 before overflow", c.Len())
	}
	c.Put("c", nil) // stored first, then 3 > maxSize=2 clears everything
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after clear-on-overflow", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("expected \"a\" to have been cleared on overflow")
	}
}

func TestNoCapNeverClears(t *testing.T) {
	c := New(0)
	for i := 0; i < 100; i++ {
		c.Put(string(rune('a'+i%26)), nil)
	}
	if c.Len() == 0 {
		t.Error("maxSize<=0 should disable the cap, not clear on every put")
	}
}

func TestClearEmptiesCache(t *testing.T) {
	c := New(10)
	c.Put("a", nil)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear(), want 0", c.Len())
	}
}
