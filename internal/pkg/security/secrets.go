package security

import (
	"regexp"
	"strings"
)

// Finding is one suspected secret in a file.
type Finding struct {
	Path string `json:"path"`
	Line int    `json:"line"` // 1-based
	Rule string `json:"rule"`
}

// secretRule pairs a rule name with its detection pattern. Patterns
// target high-confidence token shapes; generic assignments additionally
// require a long opaque value to keep noise down.
type secretRule struct {
	name    string
	pattern *regexp.Regexp
}

var secretRules = []secretRule{
	{"aws-access-key-id", regexp.MustCompile(`\b(?:AKIA|ASIA|ABIA|ACCA)[0-9A-Z]{16}\b`)},
	{"aws-secret-access-key", regexp.MustCompile(`(?i)aws[_\-.]?secret[_\-.]?(?:access[_\-.]?)?key\s*[:=]\s*['"]?[A-Za-z0-9/+=]{40}`)},
	{"github-token", regexp.MustCompile(`\b(?:ghp|gho|ghu|ghs|ghr)_[A-Za-z0-9]{36,}\b`)},
	{"github-fine-grained-token", regexp.MustCompile(`\bgithub_pat_[A-Za-z0-9_]{60,}\b`)},
	{"gitlab-token", regexp.MustCompile(`\bglpat-[A-Za-z0-9\-_]{20,}\b`)},
	{"slack-token", regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9\-]{10,}\b`)},
	{"stripe-key", regexp.MustCompile(`\b[sr]k_live_[A-Za-z0-9]{20,}\b`)},
	{"google-api-key", regexp.MustCompile(`\bAIza[0-9A-Za-z\-_]{35}\b`)},
	{"openai-key", regexp.MustCompile(`\bsk-[A-Za-z0-9]{20}T3BlbkFJ[A-Za-z0-9]{20}\b`)},
	{"private-key", regexp.MustCompile(`-----BEGIN\s+(?:RSA|EC|DSA|OPENSSH|PGP)?\s*PRIVATE KEY`)},
	{"jwt", regexp.MustCompile(`\beyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\b`)},
	{"connection-string", regexp.MustCompile(`(?i)\b(?:postgres(?:ql)?|mysql|mongodb(?:\+srv)?|redis|amqp)://[^\s:@]+:[^\s@]+@`)},
	{"generic-credential", regexp.MustCompile(`(?i)\b(?:api[_\-]?key|api[_\-]?secret|auth[_\-]?token|access[_\-]?token|client[_\-]?secret|password|passwd)\s*[:=]\s*['"][A-Za-z0-9/+=_\-.]{16,}['"]`)},
}

// Scanner detects likely secrets in text content. The zero value is
// not usable; construct with NewScanner. Safe for concurrent use.
type Scanner struct {
	rules []secretRule
}

// NewScanner creates a scanner with the built-in rule set.
func NewScanner() *Scanner {
	return &Scanner{rules: secretRules}
}

// Scan checks content line by line and returns all findings. A line
// matching several rules reports only the first, one finding per line
// is enough to exclude the file.
func (s *Scanner) Scan(path, content string) []Finding {
	var findings []Finding

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if len(line) < 8 {
			continue
		}
		for _, rule := range s.rules {
			if rule.pattern.MatchString(line) {
				findings = append(findings, Finding{
					Path: path,
					Line: i + 1,
					Rule: rule.name,
				})
				break
			}
		}
	}
	return findings
}
