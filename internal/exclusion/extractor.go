// Package exclusion detects "leave so-and-so out" phrasing in free-form
// expense notes and maps it to known participant names. It is a best-effort
// rule-based scanner, not a parser: its accuracy is bounded by design, and
// anything it cannot resolve is silently ignored.
package exclusion

import (
	"regexp"
	"strings"
)

// rules are scanned in order against the lowercased input. Each rule
// captures a single candidate name token per match.
//
// Known limitation: compound phrasing like "bob and alice didn't join"
// captures only the token adjacent to the cue word, so one of the two names
// is missed. Deduplication keeps a name matched by several rules from
// appearing twice, but it cannot recover names a rule never captured.
var rules = []*regexp.Regexp{
	// "exclude bob", "without bob", "except bob", "not including bob", "minus bob"
	regexp.MustCompile(`(?:exclude|without|except|not including|minus)\s+([a-z]+)`),
	// "bob didn't join", "bob wasn't there", "bob isn't eating"
	regexp.MustCompile(`([a-z]+)\s+(?:didn't|wasn't|isn't|didnt|wasnt|isnt)\s+(?:join|participate|there|included|eating|drinking)`),
	// "no bob", "not bob"
	regexp.MustCompile(`(?:no|not)\s+([a-z]+)`),
}

// Extract scans free-form text for exclusion phrasing and returns the known
// participant names it mentions, deduplicated, in the order they were first
// matched. Matching against the participant list is case-insensitive and
// exact; the returned names use the spelling from participants. Tokens that
// resolve to no known participant are dropped without error.
func Extract(text string, participants []string) []string {
	if text == "" || len(participants) == 0 {
		return nil
	}

	lowered := strings.ToLower(text)

	byLower := make(map[string]string, len(participants))
	for _, name := range participants {
		byLower[strings.ToLower(name)] = name
	}

	seen := make(map[string]bool)
	var excluded []string
	for _, rule := range rules {
		for _, match := range rule.FindAllStringSubmatch(lowered, -1) {
			name, known := byLower[match[1]]
			if !known || seen[name] {
				continue
			}
			seen[name] = true
			excluded = append(excluded, name)
		}
	}

	return excluded
}
