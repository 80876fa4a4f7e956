package hash

import (
	"strings"
	"testing"
)

func TestSHA256(t *testing.T) {
	// Known vector for empty input.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := SHA256(nil); got != want {
		t.Errorf("SHA256(nil) = %s, want %s", got, want)
	}

	if SHA256([]byte("a")) == SHA256([]byte("b")) {
		t.Error("SHA256 collision for distinct inputs")
	}
}

func TestContent64(t *testing.T) {
	a := Content64([]byte("package main"))
	b := Content64([]byte("package main"))
	if a != b {
		t.Error("Content64 not deterministic")
	}

	if Content64([]byte("x")) == Content64([]byte("y")) {
		t.Error("Content64 collision for distinct inputs")
	}
}

func TestCacheKey(t *testing.T) {
	key := CacheKey("src/main.go", []byte("package main"))
	if !strings.HasPrefix(key, "src/main.go:") {
		t.Errorf("CacheKey = %s, want path prefix", key)
	}

	other := CacheKey("src/main.go", []byte("package other"))
	if key == other {
		t.Error("CacheKey identical for different content")
	}
}
