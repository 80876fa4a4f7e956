package ast

import (
	"testing"
	"time"
)

func TestCacheHit(t *testing.T) {
	c := NewCache(time.Minute)
	root := &Node{Type: "source_file"}
	content := []byte("package main")

	c.Set("main.go", content, root)

	got, ok := c.Get("main.go", content)
	if !ok {
		t.Fatal("Get() miss, want hit")
	}
	if got != root {
		t.Error("Get() returned a different tree")
	}
}

func TestCacheMissOnDifferentContent(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("main.go", []byte("package main"), &Node{Type: "source_file"})

	if _, ok := c.Get("main.go", []byte("package other")); ok {
		t.Error("Get() hit for different content, want miss")
	}
	if _, ok := c.Get("other.go", []byte("package main")); ok {
		t.Error("Get() hit for different path, want miss")
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := NewCache(time.Minute)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	content := []byte("package main")
	c.Set("main.go", content, &Node{Type: "source_file"})

	now = now.Add(30 * time.Second)
	if _, ok := c.Get("main.go", content); !ok {
		t.Error("entry expired before TTL")
	}

	now = now.Add(45 * time.Second)
	if _, ok := c.Get("main.go", content); ok {
		t.Error("entry survived past TTL")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expiry read, want 0", c.Len())
	}
}

func TestCacheLazySweepOnSet(t *testing.T) {
	c := NewCache(time.Minute)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	c.Set("a.go", []byte("a"), &Node{})
	c.Set("b.go", []byte("b"), &Node{})

	now = now.Add(2 * time.Minute)
	c.Set("c.go", []byte("c"), &Node{})

	if c.Len() != 1 {
		t.Errorf("Len() = %d after sweep, want 1", c.Len())
	}
}

func TestCacheClear(t *testing.T) {
	c := NewCache(0)
	c.Set("a.go", []byte("a"), &Node{})
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}
}
