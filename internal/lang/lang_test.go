package lang

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"src/app.ts", TypeScript},
		{"src/App.TSX", TypeScript},
		{"lib/util.js", JavaScript},
		{"lib/util.mjs", JavaScript},
		{"main.py", Python},
		{"Main.java", Java},
		{"cmd/main.go", Go},
		{"kernel.c", C},
		{"kernel.h", C},
		{"engine.cpp", CPP},
		{"engine.hpp", CPP},
		{"Program.cs", CSharp},
		{"lib.rs", Rust},
		{"index.php", PHP},
		{"app.rb", Ruby},
		{"View.swift", Swift},
		{"Main.kt", Kotlin},
		{"main.dart", Dart},
		{"README.md", Unknown},
		{"noext", Unknown},
		{"UPPER.GO", Go},
	}

	for _, tt := range tests {
		if got := Detect(tt.path); got != tt.want {
			t.Errorf("Detect(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"js", JavaScript},
		{"JS", JavaScript},
		{"ts", TypeScript},
		{"golang", Go},
		{"c++", CPP},
		{"c#", CSharp},
		{"python", Python},
		{" ruby ", Ruby},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestIsSupported(t *testing.T) {
	for _, id := range Supported() {
		if !IsSupported(id) {
			t.Errorf("IsSupported(%s) = false, want true", id)
		}
	}

	if IsSupported(Unknown) {
		t.Error("IsSupported(unknown) = true, want false")
	}
	if IsSupported("scala") {
		t.Error("IsSupported(scala) = true, want false")
	}
}

func TestSupportedCount(t *testing.T) {
	if len(Supported()) != 14 {
		t.Errorf("len(Supported()) = %d, want 14", len(Supported()))
	}
}
