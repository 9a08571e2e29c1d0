// Package report orchestrates one full company search: topic queries against
// the search API, link extraction, organization resolution, and member
// enrichment, assembled into a single response document.
package report

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/stake-plus/company-scout/src/linkextract"
	"github.com/stake-plus/company-scout/src/types"
)

// Topic is one research angle with its query template.
type Topic struct {
	Name    string
	Prompt  string
	Domains []string
}

// Topics in render order. Prompt wording is deliberately terse; the search
// API answers better when asked for links only.
var Topics = []Topic{
	{Name: "Website", Prompt: "Find the official main website for %s. Return only the link."},
	{Name: "General Contacts", Prompt: "Find official contact details for %s. Include emails and contact pages."},
	{Name: "Twitter", Prompt: "Find the official Twitter account for %s. Return only the link(s).", Domains: []string{"twitter.com", "x.com"}},
	{Name: "LinkedIn", Prompt: "Find the official LinkedIn page for %s. Return only the link(s).", Domains: []string{"linkedin.com"}},
	{Name: "GitHub", Prompt: "Find the official GitHub organization or repositories for %s. Return only the link(s).", Domains: []string{"github.com"}},
}

// Searcher is the opaque search oracle.
type Searcher interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// OrgResolver narrows extracted links to GitHub organizations.
type OrgResolver interface {
	Resolve(ctx context.Context, companyName, websiteURL string, llmLinks []string) ([]types.ResolvedOrg, []string)
}

// MemberEnricher expands an organization into its member roster.
type MemberEnricher interface {
	EnrichOrg(ctx context.Context, orgURL string, allowScrape bool) ([]types.Member, []string)
}

type Builder struct {
	search    Searcher
	resolver  OrgResolver
	enricher  MemberEnricher
	sanitizer *bluemonday.Policy
}

func NewBuilder(search Searcher, resolver OrgResolver, enricher MemberEnricher) *Builder {
	// The search API returns arbitrary text that ends up in API responses;
	// strip any HTML it smuggles in.
	return &Builder{
		search:    search,
		resolver:  resolver,
		enricher:  enricher,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Run performs one search. A failed topic query empties that section and the
// pipeline continues; after startup nothing aborts a search.
func (b *Builder) Run(ctx context.Context, companyName string, allowScrape bool) *types.Report {
	rep := &types.Report{
		ID:          uuid.NewString(),
		Company:     companyName,
		GeneratedAt: time.Now().UTC(),
	}

	sections := make(map[string]string, len(Topics))
	for _, topic := range Topics {
		text, err := b.search.Ask(ctx, fmt.Sprintf(topic.Prompt, companyName))
		if err != nil {
			log.Printf("report: %s query failed for %q: %v", topic.Name, companyName, err)
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s query failed: %v", topic.Name, err))
			text = ""
		}
		sections[topic.Name] = text

		rep.Sections = append(rep.Sections, types.Section{
			Topic: topic.Name,
			Text:  b.sanitizer.Sanitize(text),
			Links: linkextract.Extract(text, topic.Domains...),
		})
	}

	rep.LinkedInLinks = linkextract.Extract(sections["LinkedIn"], "linkedin.com")
	rep.GithubLinks = linkextract.Extract(sections["GitHub"], "github.com")

	websiteURL := ""
	if links := linkextract.Extract(sections["Website"]); len(links) > 0 {
		websiteURL = links[0]
	}

	orgs, warnings := b.resolver.Resolve(ctx, companyName, websiteURL, rep.GithubLinks)
	rep.Warnings = append(rep.Warnings, warnings...)

	for i := range orgs {
		members, memberWarnings := b.enricher.EnrichOrg(ctx, orgs[i].URL, allowScrape)
		orgs[i].Members = members
		rep.Warnings = append(rep.Warnings, memberWarnings...)
	}
	rep.Orgs = orgs

	return rep
}
