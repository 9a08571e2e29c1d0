// Package resolver narrows a company's web presence down to validated GitHub
// organizations. It is a fallback chain: each stage runs only when every
// earlier stage produced nothing, and network failure at any stage is a soft
// warning, never an abort.
package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/stake-plus/company-scout/src/githubapi"
	"github.com/stake-plus/company-scout/src/linkextract"
	"github.com/stake-plus/company-scout/src/types"
	"github.com/stake-plus/company-scout/src/webclient"
)

// Provenance tags recording which stage produced an organization.
const (
	ProvenanceSite       = "site"
	ProvenanceLLM        = "llm"
	ProvenanceStrictLLM  = "strict-llm"
	ProvenanceUnverified = "unverified"
)

const siteUserAgent = "Mozilla/5.0 (compatible; CompanyScoutBot/1.0)"

var siteOrgRe = regexp.MustCompile(`(?i)github\.com/([A-Za-z0-9_.-]+)`)

// OrgValidator checks that an organization slug exists.
type OrgValidator interface {
	OrgExists(ctx context.Context, org string) bool
}

// Querier issues one more natural-language query when earlier stages come up
// empty. May be nil, in which case the strict re-query stage is skipped.
type Querier interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

type Resolver struct {
	httpClient *http.Client
	github     OrgValidator
	querier    Querier

	// simpleMode skips the site-scan/scoring machinery and validates every
	// LLM-suggested link directly. Strictly weaker; kept as a config switch.
	simpleMode bool
}

func New(github OrgValidator, querier Querier, simpleMode bool) *Resolver {
	return &Resolver{
		httpClient: webclient.NewDefault(8 * time.Second),
		github:     github,
		querier:    querier,
		simpleMode: simpleMode,
	}
}

// Resolve runs the fallback chain and returns zero or more organizations plus
// soft warnings describing stages that failed along the way.
func (r *Resolver) Resolve(ctx context.Context, companyName, websiteURL string, llmLinks []string) ([]types.ResolvedOrg, []string) {
	var warnings []string

	if !r.simpleMode && websiteURL != "" {
		candidates, warn := r.scanSite(ctx, websiteURL)
		if warn != "" {
			warnings = append(warnings, warn)
		}
		if len(candidates) > 0 {
			for _, cand := range RankCandidates(candidates, companyName) {
				if r.github.OrgExists(ctx, cand.Org) {
					return []types.ResolvedOrg{{
						Slug:       cand.Org,
						URL:        githubapi.OrgURL(cand.Org),
						Provenance: ProvenanceSite,
						Verified:   true,
					}}, warnings
				}
			}
			warnings = append(warnings, fmt.Sprintf("no organization found on %s passed validation", websiteURL))
		}
	}

	if orgs := r.validateLinks(ctx, llmLinks, ProvenanceLLM); len(orgs) > 0 {
		return orgs, warnings
	}

	if r.querier != nil && companyName != "" {
		prompt := fmt.Sprintf("Find the official GitHub organization URL for %s. Respond with only the https://github.com/<organization> link and nothing else.", companyName)
		text, err := r.querier.Ask(ctx, prompt)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("strict re-query failed: %v", err))
		} else if orgs := r.validateLinks(ctx, linkextract.Extract(text, "github.com"), ProvenanceStrictLLM); len(orgs) > 0 {
			return orgs, warnings
		}
	}

	// Last resort: hand back normalized but unverified organization URLs.
	// Callers must treat these as lower confidence.
	if orgs := normalizeLinks(llmLinks, ProvenanceUnverified); len(orgs) > 0 {
		warnings = append(warnings, "returning unverified organization links; no stage could validate them")
		return orgs, warnings
	}

	return nil, warnings
}

// scanSite fetches the company website and tallies github.com/<org> mentions
// per organization, preserving first-seen order.
func (r *Resolver) scanSite(ctx context.Context, websiteURL string) ([]Candidate, string) {
	req, err := http.NewRequestWithContext(ctx, "GET", websiteURL, nil)
	if err != nil {
		return nil, fmt.Sprintf("website scan skipped: %v", err)
	}
	req.Header.Set("User-Agent", siteUserAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Sprintf("website scan failed for %s: %v", websiteURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Sprintf("website scan for %s returned status %d", websiteURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Sprintf("website scan failed for %s: %v", websiteURL, err)
	}

	counts := make(map[string]int)
	var order []string
	for _, m := range siteOrgRe.FindAllStringSubmatch(string(body), -1) {
		slug := strings.ToLower(m[1])
		if counts[slug] == 0 {
			order = append(order, slug)
		}
		counts[slug]++
	}

	candidates := make([]Candidate, 0, len(order))
	for _, slug := range order {
		candidates = append(candidates, Candidate{Org: slug, Count: counts[slug]})
	}
	return candidates, ""
}

// validateLinks normalizes each link to its organization root and keeps the
// ones whose slug passes the existence check.
func (r *Resolver) validateLinks(ctx context.Context, links []string, provenance string) []types.ResolvedOrg {
	var orgs []types.ResolvedOrg
	for _, org := range normalizeLinks(links, provenance) {
		if r.github.OrgExists(ctx, org.Slug) {
			org.Verified = true
			orgs = append(orgs, org)
		}
	}
	return orgs
}

// normalizeLinks maps URLs to deduplicated organization-root entries,
// preserving first-seen order. Results are unverified.
func normalizeLinks(links []string, provenance string) []types.ResolvedOrg {
	seen := make(map[string]struct{})
	var orgs []types.ResolvedOrg
	for _, link := range links {
		slug := githubapi.OrgFromURL(link)
		if slug == "" {
			continue
		}
		key := strings.ToLower(slug)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		orgs = append(orgs, types.ResolvedOrg{
			Slug:       slug,
			URL:        githubapi.OrgURL(slug),
			Provenance: provenance,
		})
	}
	return orgs
}
