// Package lang maps file paths to the closed set of supported languages.
package lang

import (
	"path/filepath"
	"strings"
)

// Language identifiers.
const (
	TypeScript = "typescript"
	JavaScript = "javascript"
	Python     = "python"
	Java       = "java"
	Go         = "go"
	C          = "c"
	CPP        = "cpp"
	CSharp     = "csharp"
	Rust       = "rust"
	PHP        = "php"
	Ruby       = "ruby"
	Swift      = "swift"
	Kotlin     = "kotlin"
	Dart       = "dart"
	Unknown    = "unknown"
)

// Extension mapping. Lookup is case-insensitive.
var extensions = map[string]string{
	".ts":    TypeScript,
	".tsx":   TypeScript,
	".mts":   TypeScript,
	".cts":   TypeScript,
	".js":    JavaScript,
	".jsx":   JavaScript,
	".mjs":   JavaScript,
	".cjs":   JavaScript,
	".py":    Python,
	".pyw":   Python,
	".java":  Java,
	".go":    Go,
	".c":     C,
	".h":     C,
	".cpp":   CPP,
	".cc":    CPP,
	".cxx":   CPP,
	".hpp":   CPP,
	".hh":    CPP,
	".cs":    CSharp,
	".rs":    Rust,
	".php":   PHP,
	".rb":    Ruby,
	".swift": Swift,
	".kt":    Kotlin,
	".kts":   Kotlin,
	".dart":  Dart,
}

// Short aliases accepted on the command line and in config files.
var aliases = map[string]string{
	"ts":     TypeScript,
	"js":     JavaScript,
	"py":     Python,
	"golang": Go,
	"c++":    CPP,
	"c#":     CSharp,
	"rs":     Rust,
	"rb":     Ruby,
	"kt":     Kotlin,
}

// Detect resolves a language identifier from a file extension.
// Returns Unknown for unmapped extensions.
func Detect(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if id, ok := extensions[ext]; ok {
		return id
	}
	return Unknown
}

// Normalize resolves aliases like "js" to canonical identifiers.
// Unrecognized input is returned lowercased and unchanged.
func Normalize(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if canonical, ok := aliases[id]; ok {
		return canonical
	}
	return id
}

// Supported returns the supported language identifiers in stable order.
func Supported() []string {
	return []string{
		TypeScript, JavaScript, Python, Java, Go, C, CPP,
		CSharp, Rust, PHP, Ruby, Swift, Kotlin, Dart,
	}
}

// IsSupported reports whether id names a supported language.
func IsSupported(id string) bool {
	for _, s := range Supported() {
		if s == id {
			return true
		}
	}
	return false
}
