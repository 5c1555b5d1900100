package cache

import (
	"testing"
	"time"
)

func TestGenerateKey(t *testing.T) {
	a := GenerateKey("en", "vi", "hello")
	b := GenerateKey("en", "vi", "hello")
	if a != b {
		t.Errorf("GenerateKey not deterministic: %q != %q", a, b)
	}

	// The separator keeps adjacent parts from colliding.
	c := GenerateKey("en", "vihello")
	d := GenerateKey("envi", "hello")
	if c == d {
		t.Error("GenerateKey collides across part boundaries")
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c, err := Open("")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close()

	key := GenerateKey("en", "vi", "hello")
	entry := &Entry{Text: "xin chào", CreatedAt: time.Now()}
	if err := c.Set(key, entry, DefaultTTL); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if got.Text != "xin chào" {
		t.Errorf("Get() text = %q, want %q", got.Text, "xin chào")
	}
}

func TestCacheMiss(t *testing.T) {
	c, err := Open("")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close()

	if _, ok := c.Get("absent"); ok {
		t.Error("Get(absent) ok = true, want false")
	}
}

func TestCacheExpiry(t *testing.T) {
	c, err := Open("")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer c.Close()

	key := GenerateKey("en", "vi", "short-lived")
	if err := c.Set(key, &Entry{Text: "x", CreatedAt: time.Now()}, 50*time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(120 * time.Millisecond)
	if _, ok := c.Get(key); ok {
		t.Error("Get() after TTL ok = true, want false")
	}
}
