// Package linkextract pulls URLs out of free-form LLM answer text.
package linkextract

import (
	"regexp"
	"strings"
)

var (
	markdownLinkRe = regexp.MustCompile(`\[[^\]]*?\]\((https?://[^\s)]+)\)`)
	bareURLRe      = regexp.MustCompile(`https?://[^\s\)\]\}\,'"]+`)
)

// trailing punctuation that leaks in from prose around a link
const trailingJunk = `).,]>'"`

// Extract returns the unique URLs found in text, in first-seen order. The
// markdown pass runs before the bare-URL pass so a bracketed link's URL is
// captured whole rather than mangled by the generic pattern.
//
// When domains is non-empty the result is filtered to URLs containing at
// least one entry as a case-insensitive substring. The match is not anchored
// to the host, so a URL that merely mentions the domain in a path or query
// string passes the filter; that is accepted behaviour.
func Extract(text string, domains ...string) []string {
	seen := make(map[string]struct{})
	var ordered []string

	add := func(raw string) {
		u := strings.TrimRight(strings.TrimSpace(raw), trailingJunk)
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		ordered = append(ordered, u)
	}

	for _, m := range markdownLinkRe.FindAllStringSubmatch(text, -1) {
		add(m[1])
	}
	for _, m := range bareURLRe.FindAllString(text, -1) {
		add(m)
	}

	if len(domains) == 0 {
		return ordered
	}

	lowered := make([]string, len(domains))
	for i, d := range domains {
		lowered[i] = strings.ToLower(d)
	}

	var filtered []string
	for _, u := range ordered {
		ul := strings.ToLower(u)
		for _, d := range lowered {
			if strings.Contains(ul, d) {
				filtered = append(filtered, u)
				break
			}
		}
	}
	return filtered
}
