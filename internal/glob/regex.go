package glob

import "github.com/coregx/coregex"

// Regex wraps a compiled github.com/coregx/coregex pattern for the
// supplemental regex search mode (grounds original_source/src/regex/regex.c
// and pattern_matches' use_regex parameter, which the distilled spec dropped).
//
// coregex v1.0 has no case-insensitive flag yet, so case-insensitive matching
// folds both the pattern and the candidate through the same ASCII table the
// rest of this package uses before compiling/matching — mirroring how the
// original lower-cased both strings before calling into its regex engine.
type Regex struct {
	re            *coregex.Regex
	caseSensitive bool
}

// CompileRegex compiles pattern once, for reuse across every entry a search
// evaluates.
func CompileRegex(pattern string, caseSensitive bool) (*Regex, error) {
	compiled := pattern
	if !caseSensitive {
		compiled = foldString(pattern)
	}

	re, err := coregex.Compile(compiled)
	if err != nil {
		return nil, err
	}

	return &Regex{re: re, caseSensitive: caseSensitive}, nil
}

// MatchString reports whether s contains a match of the compiled pattern.
func (r *Regex) MatchString(s string) bool {
	if !r.caseSensitive {
		s = foldString(s)
	}
	return r.re.MatchString(s)
}

func foldString(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b[i] = asciiLower[s[i]]
	}
	return string(b)
}
