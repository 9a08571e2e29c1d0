package resolver

import (
	"regexp"
	"sort"
	"strings"
)

var tokenRe = regexp.MustCompile(`[a-z0-9]+`)

// Candidate is a GitHub organization slug seen while scanning a website,
// with its occurrence count.
type Candidate struct {
	Org   string
	Count int
}

// Tokens splits a company name into maximal lowercase alphanumeric runs.
func Tokens(companyName string) []string {
	return tokenRe.FindAllString(strings.ToLower(companyName), -1)
}

// Score rates how plausible org is as the official organization for a company.
// Occurrence count dominates only when the name gives no signal: a name match
// is worth a flat 5 and each company-name token found inside the slug adds 2.
func Score(org string, count int, companyName string) int {
	orgLower := strings.ToLower(org)
	companyLower := strings.ToLower(companyName)
	tokens := Tokens(companyName)

	score := count

	nameMatch := strings.Contains(companyLower, orgLower)
	tokenHits := 0
	for _, tok := range tokens {
		if strings.Contains(orgLower, tok) {
			nameMatch = true
			tokenHits++
		}
	}
	if nameMatch {
		score += 5
	}
	score += 2 * tokenHits

	return score
}

// RankCandidates orders candidates by descending score. The sort is stable,
// so when two organizations tie the one seen first on the page wins.
func RankCandidates(candidates []Candidate, companyName string) []Candidate {
	ranked := make([]Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i].Org, ranked[i].Count, companyName) >
			Score(ranked[j].Org, ranked[j].Count, companyName)
	})
	return ranked
}
