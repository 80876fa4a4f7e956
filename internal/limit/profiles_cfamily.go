package limit

import (
	"regexp"

	"github.com/repopack/repopack/internal/lang"
)

var cFunctionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:[A-Za-z_][\w]*[\s\*]+)+\*?([A-Za-z_]\w*)\s*\([^;]*$`),
	regexp.MustCompile(`^(?:[A-Za-z_][\w]*[\s\*]+)+\*?([A-Za-z_]\w*)\s*\([^;]*\)\s*{`),
}

func cProfile() languageProfile {
	return languageProfile{
		id: lang.C,
		headerKinds: []string{
			"preproc_include", "preproc_def", "preproc_function_def",
		},
		signatureKinds: []string{
			"function_definition", "struct_specifier", "enum_specifier",
			"union_specifier", "type_definition", "declaration",
		},
		functionKinds: []string{"function_definition"},
		controlKinds: []string{
			"if_statement", "for_statement", "while_statement",
			"do_statement", "switch_statement", "case_statement",
			"conditional_expression", "goto_statement", "&&", "||",
		},
		footerKinds: []string{"declaration"},
		bonusKinds: map[string]float64{
			"pointer_declarator": 0.2,
			"pointer_expression": 0.2,
			"preproc_ifdef":      0.2,
		},
		paramListKinds: []string{"parameter_list"},
		entryNames:     []string{"main"},
		sigTerminators: braceTerminators,

		headerPattern:    regexp.MustCompile(`^(#\s*(include|define|if|ifdef|ifndef|pragma|endif)|typedef\s|struct\s|enum\s|union\s|extern\s|static\s)`),
		functionPatterns: cFunctionPatterns,
		footerPattern:    regexp.MustCompile(`^(static\s|extern\s|[A-Za-z_][\w\s\*]*=)`),
		entryPattern:     regexp.MustCompile(`^(?:int|void)\s+main\s*\(`),
	}
}

func cppProfile() languageProfile {
	return languageProfile{
		id: lang.CPP,
		headerKinds: []string{
			"preproc_include", "preproc_def", "preproc_function_def",
			"using_declaration", "alias_declaration",
		},
		signatureKinds: []string{
			"function_definition", "class_specifier", "struct_specifier",
			"enum_specifier", "union_specifier", "type_definition",
			"namespace_definition", "template_declaration", "declaration",
		},
		functionKinds: []string{"function_definition", "lambda_expression"},
		controlKinds: []string{
			"if_statement", "for_statement", "for_range_loop",
			"while_statement", "do_statement", "switch_statement",
			"case_statement", "catch_clause", "conditional_expression",
			"goto_statement", "&&", "||",
		},
		footerKinds: []string{"declaration"},
		bonusKinds: map[string]float64{
			"pointer_declarator":   0.2,
			"pointer_expression":   0.2,
			"reference_declarator": 0.2,
			"template_declaration": 0.3,
			"co_await_expression":  0.3,
		},
		paramListKinds: []string{"parameter_list"},
		entryNames:     []string{"main"},
		sigTerminators: braceTerminators,

		headerPattern:    regexp.MustCompile(`^(#\s*(include|define|if|ifdef|ifndef|pragma|endif)|using\s|namespace\s|template\s*<|typedef\s|class\s|struct\s|enum\s|union\s|extern\s|static\s)`),
		functionPatterns: cFunctionPatterns,
		footerPattern:    regexp.MustCompile(`^(static\s|extern\s|[A-Za-z_][\w:<>\s\*&]*=)`),
		entryPattern:     regexp.MustCompile(`^(?:int|void)\s+main\s*\(`),
	}
}

func csharpProfile() languageProfile {
	return languageProfile{
		id:          lang.CSharp,
		headerKinds: []string{"using_directive"},
		signatureKinds: []string{
			"namespace_declaration", "file_scoped_namespace_declaration",
			"class_declaration", "interface_declaration",
			"struct_declaration", "enum_declaration", "record_declaration",
			"method_declaration", "constructor_declaration",
			"property_declaration",
		},
		functionKinds: []string{
			"method_declaration", "constructor_declaration",
			"local_function_statement", "lambda_expression",
			"anonymous_method_expression",
		},
		controlKinds: []string{
			"if_statement", "for_statement", "foreach_statement",
			"while_statement", "do_statement", "switch_section",
			"switch_expression_arm", "catch_clause",
			"conditional_expression", "&&", "||", "??",
		},
		footerKinds: []string{"global_statement"},
		bonusKinds: map[string]float64{
			"attribute_list":      0.2,
			"type_parameter_list": 0.3,
			"await_expression":    0.2,
			"async":               0.3,
		},
		paramListKinds: []string{"parameter_list"},
		entryNames:     []string{"Main"},
		sigTerminators: braceTerminators,

		headerPattern: regexp.MustCompile(`^(using\s|namespace\s|\[|(?:\s*)(?:public|private|protected|internal|static|sealed|abstract|partial)\b|class\s|interface\s|struct\s|enum\s|record\s)`),
		functionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\s*(?:public|private|protected|internal|static|sealed|abstract|virtual|override|async|\s)*[\w<>\[\],\s]+\s([A-Za-z_]\w*)\s*\([^;]*\)\s*{?\s*$`),
		},
		footerPattern: regexp.MustCompile(`^[A-Za-z_][\w.]*\s*(\(|=)`),
		entryPattern:  regexp.MustCompile(`\bstatic\s+(?:async\s+)?\w[\w<>]*\s+Main\s*\(`),
	}
}
