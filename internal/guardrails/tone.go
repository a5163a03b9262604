// Package guardrails implements the safety stages applied after content
// selection: consent, tone, offer eligibility and operator overrides. Every
// stage fails closed: when a check cannot pass, the content is suppressed,
// never rewritten.
package guardrails

import (
	"regexp"
	"strings"
)

// shamePatterns matches shaming or judgmental phrasing. Any hit suppresses
// the recommendation carrying the text.
var shamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\byou'?re\s+overspending\b`),
	regexp.MustCompile(`\bbad\s+financial\s+habits?\b`),
	regexp.MustCompile(`\birresponsible\b`),
	regexp.MustCompile(`\bcareless\b`),
	regexp.MustCompile(`\bwasting\s+money\b`),
	regexp.MustCompile(`\bpoor\s+choices?\b`),
	regexp.MustCompile(`\bfinancial\s+mistakes?\b`),
	regexp.MustCompile(`\bbad\s+decisions?\b`),
	regexp.MustCompile(`\bfoolish\b`),
	regexp.MustCompile(`\bstupid\b`),
	regexp.MustCompile(`\breckless\b`),
}

// CheckTone scans text against the blocklist, case-insensitively. It returns
// whether the text is acceptable and the matched phrases when it is not.
func CheckTone(text string) (bool, []string) {
	if text == "" {
		return true, nil
	}

	lower := strings.ToLower(text)
	var violations []string
	for _, pattern := range shamePatterns {
		for _, match := range pattern.FindAllString(lower, -1) {
			violations = append(violations, match)
		}
	}

	return len(violations) == 0, violations
}
