package security

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid simple", "file.go", false},
		{"valid nested", "src/internal/file.go", false},
		{"valid with dots", "file.test.go", false},
		{"empty", "", true},
		{"null byte", "file\x00.go", true},
		{"traversal", "../etc/passwd", true},
		{"traversal nested", "src/../../etc/passwd", true},
		{"absolute", "/etc/passwd", true},
		{"too long", strings.Repeat("a/", 600) + "f.go", true},
		{"reserved name", "src/con.go", true},
		{"reserved name upper", "NUL", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeForLog(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello world", "hello world"},
		{"newline", "line1\nline2", "line1\\nline2"},
		{"carriage return", "a\rb", "a\\rb"},
		{"tab", "a\tb", "a\\tb"},
		{"control chars dropped", "a\x01b", "ab"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeForLog(tt.input); got != tt.want {
				t.Errorf("SanitizeForLog(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeForLogTruncates(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := SanitizeForLogWithLength(long, 100)

	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated string missing ellipsis: %q", got[len(got)-10:])
	}
	if len(got) > 110 {
		t.Errorf("len = %d, want <= 110", len(got))
	}
}

func TestValidateContent(t *testing.T) {
	if err := ValidateContent("package main", 1024); err != nil {
		t.Errorf("ValidateContent() error = %v, want nil", err)
	}

	if err := ValidateContent(strings.Repeat("x", 100), 50); err == nil {
		t.Error("ValidateContent() = nil for oversized content")
	}

	if err := ValidateContent("bad\xff\xfe", 1024); err == nil {
		t.Error("ValidateContent() = nil for invalid UTF-8")
	}
}

func TestIsBinaryContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"empty", "", false},
		{"source code", "package main\n\nfunc main() {}\n", false},
		{"tabs and newlines", "a\tb\nc\r\n", false},
		{"null bytes", "PK\x03\x04\x00\x00\x00\x00\x00", true},
		{"mostly non-printable", "\x01\x02\x03\x04\x05\x06\x07\x08ab", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBinaryContent(tt.content); got != tt.want {
				t.Errorf("IsBinaryContent() = %v, want %v", got, tt.want)
			}
		})
	}
}
