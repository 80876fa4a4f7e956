package limit

import (
	"regexp"

	"github.com/repopack/repopack/internal/lang"
)

func goProfile() languageProfile {
	return languageProfile{
		id:          lang.Go,
		headerKinds: []string{"package_clause", "import_declaration"},
		signatureKinds: []string{
			"function_declaration", "method_declaration", "type_declaration",
		},
		functionKinds: []string{
			"function_declaration", "method_declaration", "func_literal",
		},
		controlKinds: []string{
			"if_statement", "for_statement",
			"expression_switch_statement", "type_switch_statement",
			"select_statement", "expression_case", "type_case",
			"communication_case", "&&", "||",
		},
		footerKinds: []string{"var_declaration", "const_declaration"},
		bonusKinds: map[string]float64{
			"go_statement":        0.3,
			"defer_statement":     0.2,
			"send_statement":      0.2,
			"type_parameter_list": 0.3,
		},
		paramListKinds: []string{"parameter_list"},
		entryNames:     []string{"main"},
		sigTerminators: braceTerminators,

		headerPattern: regexp.MustCompile(`^(package\s|import\s|type\s|func\s|const\s|var\s|\t")`),
		functionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^func\s+(?:\([^)]*\)\s+)?([A-Za-z_]\w*)\s*\(`),
		},
		footerPattern: regexp.MustCompile(`^(var\s|const\s|func\s+init\b)`),
		entryPattern:  regexp.MustCompile(`^func\s+main\s*\(`),
	}
}

func rustProfile() languageProfile {
	return languageProfile{
		id: lang.Rust,
		headerKinds: []string{
			"use_declaration", "extern_crate_declaration", "attribute_item",
		},
		signatureKinds: []string{
			"function_item", "struct_item", "enum_item", "trait_item",
			"impl_item", "mod_item", "macro_definition",
		},
		functionKinds: []string{
			"function_item", "function_signature_item", "closure_expression",
		},
		controlKinds: []string{
			"if_expression", "if_let_expression", "match_expression",
			"match_arm", "for_expression", "while_expression",
			"while_let_expression", "loop_expression", "&&", "||",
		},
		footerKinds: []string{"static_item", "const_item"},
		bonusKinds: map[string]float64{
			"type_parameters":  0.3,
			"lifetime":         0.2,
			"unsafe_block":     0.4,
			"await_expression": 0.3,
		},
		paramListKinds: []string{"parameters"},
		entryNames:     []string{"main"},
		sigTerminators: braceTerminators,

		headerPattern: regexp.MustCompile(`^(use\s|pub\s|fn\s|struct\s|enum\s|trait\s|impl\s|mod\s|extern\s|macro_rules!|#\[|#!\[)`),
		functionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?(?:unsafe\s+)?(?:extern\s+"[^"]*"\s+)?fn\s+([A-Za-z_]\w*)`),
		},
		footerPattern: regexp.MustCompile(`^(static\s|const\s|lazy_static!|thread_local!)`),
		entryPattern:  regexp.MustCompile(`^\s*(?:pub\s+)?fn\s+main\s*\(`),
	}
}

func swiftProfile() languageProfile {
	return languageProfile{
		id:          lang.Swift,
		headerKinds: []string{"import_declaration"},
		signatureKinds: []string{
			"class_declaration", "protocol_declaration",
			"function_declaration", "typealias_declaration",
		},
		functionKinds: []string{
			"function_declaration", "init_declaration", "lambda_literal",
		},
		controlKinds: []string{
			"if_statement", "guard_statement", "for_statement",
			"while_statement", "repeat_while_statement", "switch_entry",
			"catch_block", "ternary_expression", "&&", "||", "??",
		},
		footerKinds: []string{"property_declaration", "call_expression"},
		bonusKinds: map[string]float64{
			"attribute":        0.2,
			"await_expression": 0.3,
			"type_parameters":  0.3,
		},
		paramKinds:     []string{"parameter"},
		entryNames:     []string{"main"},
		sigTerminators: braceTerminators,

		headerPattern: regexp.MustCompile(`^(import\s|class\s|struct\s|enum\s|protocol\s|extension\s|func\s|typealias\s|public\s|private\s|internal\s|open\s|final\s|@)`),
		functionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:@\w+\s+)?(?:\w+\s+)*func\s+([A-Za-z_]\w*)`),
		},
		footerPattern: regexp.MustCompile(`^(let\s|var\s|[A-Za-z_][\w.]*\s*\()`),
		entryPattern:  regexp.MustCompile(`^@main\b`),
	}
}
