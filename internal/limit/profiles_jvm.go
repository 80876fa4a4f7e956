package limit

import (
	"regexp"

	"github.com/repopack/repopack/internal/lang"
)

func javaProfile() languageProfile {
	return languageProfile{
		id:          lang.Java,
		headerKinds: []string{"package_declaration", "import_declaration"},
		signatureKinds: []string{
			"class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration",
			"method_declaration", "constructor_declaration",
		},
		functionKinds: []string{
			"method_declaration", "constructor_declaration", "lambda_expression",
		},
		controlKinds: []string{
			"if_statement", "for_statement", "enhanced_for_statement",
			"while_statement", "do_statement", "switch_expression",
			"switch_label", "catch_clause", "ternary_expression",
			"&&", "||",
		},
		footerKinds: []string{"field_declaration", "static_initializer"},
		bonusKinds: map[string]float64{
			"annotation":             0.2,
			"marker_annotation":      0.2,
			"type_parameters":        0.3,
			"synchronized_statement": 0.3,
		},
		paramListKinds: []string{"formal_parameters"},
		entryNames:     []string{"main"},
		sigTerminators: braceTerminators,

		headerPattern: regexp.MustCompile(`^(package\s|import\s|@|(?:\s*)(?:public|private|protected|abstract|final|static)\b|class\s|interface\s|enum\s|record\s)`),
		functionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:public|private|protected|static|final|abstract|synchronized|native|\s)*[\w<>\[\],\s]+\s([A-Za-z_]\w*)\s*\([^;]*\)\s*(?:throws\s[\w,\s]+)?{?\s*$`),
		},
		footerPattern: regexp.MustCompile(`^\s*(?:static\s*{|(?:public|private|protected)?\s*(?:static\s+)?(?:final\s+)?[\w<>\[\]]+\s+[A-Z_][A-Z0-9_]*\s*=)`),
		entryPattern:  regexp.MustCompile(`\bstatic\s+void\s+main\s*\(`),
	}
}

func kotlinProfile() languageProfile {
	return languageProfile{
		id:          lang.Kotlin,
		headerKinds: []string{"package_header", "import_header", "import_list"},
		signatureKinds: []string{
			"class_declaration", "object_declaration", "function_declaration",
		},
		functionKinds: []string{
			"function_declaration", "lambda_literal", "anonymous_function",
		},
		controlKinds: []string{
			"if_expression", "when_expression", "when_entry",
			"for_statement", "while_statement", "do_while_statement",
			"catch_block", "elvis_expression", "&&", "||",
		},
		footerKinds: []string{"property_declaration"},
		bonusKinds: map[string]float64{
			"annotation":    0.2,
			"suspend":       0.4,
			"nullable_type": 0.2,
			"?.":            0.2,
		},
		paramListKinds: []string{"function_value_parameters", "class_parameters"},
		entryNames:     []string{"main"},
		sigTerminators: braceTerminators,

		headerPattern: regexp.MustCompile(`^(package\s|import\s|class\s|object\s|interface\s|fun\s|val\s|var\s|@)`),
		functionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:\w+\s+)*fun\s+(?:<[^>]*>\s*)?(?:[\w.<>?]+\.)?([A-Za-z_]\w*)`),
		},
		footerPattern: regexp.MustCompile(`^(val\s|var\s|[A-Za-z_][\w.]*\s*\()`),
		entryPattern:  regexp.MustCompile(`^\s*fun\s+main\s*\(`),
	}
}
