package core

import "regexp"

// filePathPattern matches path-like substrings: one or more segments
// separated by '/', ending in a plausible source extension. Backticks and
// quotes are outside the segment charset, so inline-code delimiters fall
// away naturally. Bare extensions without a path prefix do not match.
var filePathPattern = regexp.MustCompile(
	`(?:[A-Za-z0-9_.\-]+/)+[A-Za-z0-9_.\-]+\.` +
		`(?:py|go|md|rst|json|yaml|yml|toml|cfg|ini|txt|js|jsx|ts|tsx|c|h|cc|cpp|hpp|cu|rs|java|rb|sh|proto|sql)\b`)

// urlPattern marks spans to exclude so URL paths are not mistaken for
// repository files.
var urlPattern = regexp.MustCompile(`\bhttps?://[^\s<>"']+`)

// extractFileRefs scans issue text for likely source file paths and returns
// them deduplicated in first-seen order. Matches inside URLs are skipped.
// This is best-effort advisory matching: false negatives are acceptable.
func extractFileRefs(text string) []string {
	if text == "" {
		return nil
	}

	urlSpans := urlPattern.FindAllStringIndex(text, -1)
	inURL := func(start, end int) bool {
		for _, span := range urlSpans {
			if start >= span[0] && end <= span[1] {
				return true
			}
		}
		return false
	}

	matches := filePathPattern.FindAllStringIndex(text, -1)
	seen := make(map[string]struct{}, len(matches))
	var refs []string
	for _, m := range matches {
		if inURL(m[0], m[1]) {
			continue
		}
		path := text[m[0]:m[1]]
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		refs = append(refs, path)
	}
	return refs
}
