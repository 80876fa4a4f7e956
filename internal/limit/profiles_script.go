package limit

import (
	"regexp"

	"github.com/repopack/repopack/internal/lang"
)

func pythonProfile() languageProfile {
	return languageProfile{
		id: lang.Python,
		headerKinds: []string{
			"import_statement", "import_from_statement", "future_import_statement",
		},
		signatureKinds: []string{
			"class_definition", "function_definition", "decorated_definition",
		},
		functionKinds: []string{"function_definition", "lambda"},
		controlKinds: []string{
			"if_statement", "elif_clause", "for_statement", "while_statement",
			"try_statement", "except_clause", "with_statement",
			"conditional_expression", "boolean_operator",
			"match_statement", "case_clause",
		},
		footerKinds: []string{"expression_statement"},
		bonusKinds: map[string]float64{
			"decorator":                0.3,
			"async":                    0.3,
			"await":                    0.2,
			"list_comprehension":       0.2,
			"dictionary_comprehension": 0.2,
			"generator_expression":     0.2,
		},
		paramListKinds: []string{"parameters", "lambda_parameters"},
		entryNames:     []string{"main"},
		sigTerminators: []string{":"},

		headerPattern: regexp.MustCompile(`^(import\s|from\s|class\s|def\s|async\s+def\s|@)`),
		functionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)`),
		},
		footerPattern: regexp.MustCompile(`^[A-Za-z_][\w.]*\s*(=|\()`),
		entryPattern:  regexp.MustCompile(`^if\s+__name__\s*==`),
	}
}

func rubyProfile() languageProfile {
	return languageProfile{
		id:          lang.Ruby,
		headerKinds: nil, // requires are plain calls; the heuristic covers them
		signatureKinds: []string{
			"class", "module", "method", "singleton_method",
		},
		functionKinds: []string{"method", "singleton_method", "lambda"},
		controlKinds: []string{
			"if", "unless", "while", "until", "for", "case", "when",
			"rescue", "conditional", "&&", "||",
		},
		footerKinds: []string{"call", "assignment"},
		bonusKinds: map[string]float64{
			"do_block": 0.3,
			"block":    0.3,
			"yield":    0.2,
		},
		paramListKinds: []string{"method_parameters", "lambda_parameters", "block_parameters"},
		entryNames:     []string{"main"},
		sigTerminators: nil, // def lines stand alone; no brace to scan for

		headerPattern: regexp.MustCompile(`^(require\b|require_relative\b|include\s|extend\s|class\s|module\s|def\s|attr_)`),
		functionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*def\s+(?:self\.)?([A-Za-z_][\w?!]*)`),
		},
		footerPattern: regexp.MustCompile(`^[A-Za-z_][\w.]*(\s*=|\s+\S|\()`),
		entryPattern:  regexp.MustCompile(`^if\s+__FILE__\s*==\s*\$(0|PROGRAM_NAME)`),
	}
}

func phpProfile() languageProfile {
	return languageProfile{
		id: lang.PHP,
		headerKinds: []string{
			"namespace_definition", "namespace_use_declaration",
		},
		signatureKinds: []string{
			"class_declaration", "interface_declaration", "trait_declaration",
			"enum_declaration", "function_definition", "method_declaration",
		},
		functionKinds: []string{
			"function_definition", "method_declaration",
			"anonymous_function_creation_expression", "arrow_function",
		},
		controlKinds: []string{
			"if_statement", "else_if_clause", "for_statement",
			"foreach_statement", "while_statement", "do_statement",
			"case_statement", "catch_clause", "conditional_expression",
			"match_expression", "&&", "||", "??",
		},
		footerKinds: []string{"expression_statement", "echo_statement"},
		bonusKinds: map[string]float64{
			"anonymous_function_use_clause": 0.2,
			"yield_expression":              0.2,
			"?->":                           0.2,
		},
		paramListKinds: []string{"formal_parameters"},
		entryNames:     []string{"main"},
		sigTerminators: braceTerminators,

		headerPattern: regexp.MustCompile(`^(<\?php|namespace\s|use\s|require\b|include\b|class\s|interface\s|trait\s|function\s|abstract\s|final\s)`),
		functionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:public\s+|private\s+|protected\s+|static\s+|abstract\s+|final\s+)*function\s+&?([A-Za-z_]\w*)`),
		},
		footerPattern: regexp.MustCompile(`^(\$\w+\s*=|echo\s|[A-Za-z_][\w\\]*\s*\()`),
		entryPattern:  regexp.MustCompile(`^function\s+main\s*\(`),
	}
}

// Dart has no grammar in the tree-sitter binding; every operation runs
// through the heuristic tables.
func dartProfile() languageProfile {
	return languageProfile{
		id: lang.Dart,

		headerPattern: regexp.MustCompile(`^(import\s|export\s|part\s|library\s|class\s|abstract\s|mixin\s|enum\s|typedef\s|extension\s|@)`),
		functionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:static\s+)?(?:[\w<>\[\],?\s]+\s)?([A-Za-z_]\w*)\s*\([^;]*\)\s*(?:async\s*\*?\s*)?{`),
			regexp.MustCompile(`^\s*(?:final|const|var)\s+([A-Za-z_]\w*)\s*=\s*\(`),
		},
		footerPattern: regexp.MustCompile(`^(final\s|const\s|var\s|[A-Za-z_][\w.]*\s*\()`),
		entryPattern:  regexp.MustCompile(`^\s*(?:void\s+|Future<void>\s+)?main\s*\(`),
	}
}
