package limit

// allProfiles returns the per-language tables the generic strategy is
// built from. Node kind names follow each language's tree-sitter
// grammar; an unknown kind simply never matches.
func allProfiles() []languageProfile {
	return []languageProfile{
		typescriptProfile(),
		javascriptProfile(),
		pythonProfile(),
		javaProfile(),
		goProfile(),
		cProfile(),
		cppProfile(),
		csharpProfile(),
		rustProfile(),
		phpProfile(),
		rubyProfile(),
		swiftProfile(),
		kotlinProfile(),
		dartProfile(),
	}
}

// braceTerminators end signatures in brace-delimited languages.
var braceTerminators = []string{"{"}
