package limit

import (
	"regexp"

	"github.com/repopack/repopack/internal/lang"
)

// Kinds shared by the JavaScript and TypeScript grammars. Both the
// pre- and post-rename function-expression kinds are listed so the
// tables work across grammar revisions.
var jsFunctionKinds = []string{
	"function_declaration", "function_expression", "function",
	"generator_function_declaration", "generator_function",
	"arrow_function", "method_definition",
}

var jsControlKinds = []string{
	"if_statement", "for_statement", "for_in_statement",
	"while_statement", "do_statement", "switch_case", "switch_default",
	"catch_clause", "ternary_expression", "&&", "||", "??",
}

var jsFunctionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)?`),
	regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s*)?(?:function\b|\()`),
	regexp.MustCompile(`^\s*(?:public|private|protected|static|readonly|\s)*([A-Za-z_$][\w$]*)\s*\([^;]*\)\s*{\s*$`),
}

func javascriptProfile() languageProfile {
	return languageProfile{
		id:          lang.JavaScript,
		headerKinds: []string{"import_statement"},
		signatureKinds: []string{
			"class_declaration", "function_declaration",
			"generator_function_declaration", "export_statement",
			"lexical_declaration", "variable_declaration",
		},
		functionKinds: jsFunctionKinds,
		controlKinds:  jsControlKinds,
		footerKinds:   []string{"expression_statement", "lexical_declaration", "variable_declaration"},
		bonusKinds: map[string]float64{
			"await_expression": 0.2,
			"yield_expression": 0.2,
			"async":            0.3,
		},
		paramListKinds: []string{"formal_parameters"},
		entryNames:     []string{"main"},
		sigTerminators: []string{"{", "=>", ";"},

		headerPattern:    regexp.MustCompile(`^(import\s|export\s|class\s|function\s|const\s|let\s|var\s)`),
		functionPatterns: jsFunctionPatterns,
		footerPattern:    regexp.MustCompile(`^(module\.exports|exports\.|[A-Za-z_$][\w$.]*\s*\(|const\s|let\s|var\s)`),
		entryPattern:     regexp.MustCompile(`^(?:export\s+)?(?:async\s+)?function\s+main\b`),
	}
}

func typescriptProfile() languageProfile {
	return languageProfile{
		id: lang.TypeScript,
		headerKinds: []string{
			"import_statement", "import_alias",
		},
		signatureKinds: []string{
			"class_declaration", "abstract_class_declaration",
			"interface_declaration", "type_alias_declaration",
			"enum_declaration", "function_declaration",
			"generator_function_declaration", "export_statement",
			"lexical_declaration", "variable_declaration",
			"internal_module",
		},
		functionKinds: append([]string{
			"method_signature", "abstract_method_signature", "function_signature",
		}, jsFunctionKinds...),
		controlKinds: jsControlKinds,
		footerKinds:  []string{"expression_statement", "lexical_declaration", "variable_declaration"},
		bonusKinds: map[string]float64{
			"await_expression":    0.2,
			"yield_expression":    0.2,
			"async":               0.3,
			"type_parameters":     0.3,
			"decorator":           0.3,
			"non_null_expression": 0.2,
			"?.":                  0.2,
		},
		paramListKinds: []string{"formal_parameters"},
		entryNames:     []string{"main"},
		sigTerminators: []string{"{", "=>", ";"},

		headerPattern:    regexp.MustCompile(`^(import\s|export\s|class\s|abstract\s|interface\s|type\s|enum\s|namespace\s|declare\s|function\s|const\s|let\s|var\s|@)`),
		functionPatterns: jsFunctionPatterns,
		footerPattern:    regexp.MustCompile(`^(module\.exports|exports\.|[A-Za-z_$][\w$.]*\s*\(|const\s|let\s|var\s)`),
		entryPattern:     regexp.MustCompile(`^(?:export\s+)?(?:async\s+)?function\s+main\b`),
	}
}
