// Package enricher expands a resolved GitHub organization into a roster of
// public members with best-effort contact details. Each contact field is an
// ordered list of providers tried left to right; the first non-empty value
// wins and a failing provider contributes nothing.
package enricher

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"

	"github.com/stake-plus/company-scout/src/githubapi"
	"github.com/stake-plus/company-scout/src/types"
)

// API is the slice of the GitHub client the enricher needs.
type API interface {
	ListMembers(ctx context.Context, org string) ([]string, bool)
	User(ctx context.Context, login string) (*githubapi.User, error)
	PushEventEmails(ctx context.Context, login string) []string
	ProfilePage(ctx context.Context, login string) (string, error)
	PeopleLogins(ctx context.Context, org string) []string
}

var linkedinRe = regexp.MustCompile(`https?://(?:[A-Za-z0-9-]+\.)?linkedin\.com/[^\s)\]'">]+`)

const maxConcurrentMembers = 3

type Enricher struct {
	gh API
}

func New(gh API) *Enricher {
	return &Enricher{gh: gh}
}

// EnrichOrg lists the organization's public members and enriches each one.
// A hidden or empty membership yields an empty roster plus a warning; it is
// expected behaviour, not an error. When allowScrape is set and the API shows
// nothing, the public people page is scraped as a fallback roster source.
func (e *Enricher) EnrichOrg(ctx context.Context, orgURL string, allowScrape bool) ([]types.Member, []string) {
	var warnings []string

	slug := githubapi.OrgFromURL(orgURL)
	if slug == "" {
		return nil, []string{fmt.Sprintf("could not parse an organization from %q", orgURL)}
	}

	logins, ok := e.gh.ListMembers(ctx, slug)
	if !ok || len(logins) == 0 {
		warnings = append(warnings, fmt.Sprintf("no public members visible for %s", slug))
		if allowScrape {
			logins = e.gh.PeopleLogins(ctx, slug)
			if len(logins) > 0 {
				warnings = append(warnings, fmt.Sprintf("roster for %s scraped from the people page", slug))
			}
		}
	}
	if len(logins) == 0 {
		return nil, warnings
	}

	// Independent, read-only, idempotent lookups: fan out with a small
	// bound. Field ordering inside each member is untouched.
	members := make([]types.Member, len(logins))
	semaphore := make(chan struct{}, maxConcurrentMembers)
	var wg sync.WaitGroup

	for i, login := range logins {
		wg.Add(1)
		go func(index int, login string) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				members[index] = types.Member{Login: login, URL: "https://github.com/" + login}
				return
			}

			members[index] = e.enrichMember(ctx, login)
		}(i, login)
	}
	wg.Wait()

	return members, warnings
}

// enrichMember builds one Member. Every sub-call failure leaves fields empty
// rather than propagating.
func (e *Enricher) enrichMember(ctx context.Context, login string) types.Member {
	m := types.Member{Login: login, URL: "https://github.com/" + login}

	user, err := e.gh.User(ctx, login)
	if err != nil {
		log.Printf("enricher: profile fetch for %s contributed nothing: %v", login, err)
		return m
	}

	if user.Login != "" {
		m.Login = user.Login
	}
	m.Name = user.Name
	if user.HTMLURL != "" {
		m.URL = user.HTMLURL
	}

	src := &memberSources{ctx: ctx, gh: e.gh, login: m.Login, user: user}

	m.Email = firstNonEmpty(src, emailProviders)
	m.LinkedIn = firstNonEmpty(src, linkedinProviders)

	if user.TwitterUsername != "" {
		m.Twitter = user.TwitterUsername
		m.TwitterURL = "https://twitter.com/" + user.TwitterUsername
	}

	// The blog field often just repeats the LinkedIn link; treat that as
	// absent.
	if user.Blog != "" && user.Blog != m.LinkedIn {
		m.Blog = user.Blog
	}

	return m
}

// memberSources lazily materializes the expensive inputs (profile page HTML,
// push-event emails) so providers that never run never pay for them.
type memberSources struct {
	ctx   context.Context
	gh    API
	login string
	user  *githubapi.User

	pageFetched bool
	page        string

	eventsFetched bool
	eventEmails   []string
}

func (s *memberSources) profilePage() string {
	if !s.pageFetched {
		s.pageFetched = true
		page, err := s.gh.ProfilePage(s.ctx, s.login)
		if err == nil {
			s.page = page
		}
	}
	return s.page
}

func (s *memberSources) pushEmails() []string {
	if !s.eventsFetched {
		s.eventsFetched = true
		s.eventEmails = s.gh.PushEventEmails(s.ctx, s.login)
	}
	return s.eventEmails
}

// provider returns one contact field value, or "" when the source has nothing.
type provider func(s *memberSources) string

func firstNonEmpty(s *memberSources, providers []provider) string {
	for _, p := range providers {
		if v := p(s); v != "" {
			return v
		}
	}
	return ""
}

var emailProviders = []provider{
	func(s *memberSources) string { return s.user.Email },
	func(s *memberSources) string {
		if emails := githubapi.FindEmails(s.user.Bio); len(emails) > 0 {
			return emails[0]
		}
		return ""
	},
	func(s *memberSources) string {
		for _, email := range s.pushEmails() {
			if !strings.Contains(email, "noreply") {
				return email
			}
		}
		return ""
	},
	func(s *memberSources) string { return emailFromPage(s.profilePage()) },
}

var linkedinProviders = []provider{
	func(s *memberSources) string { return linkedinRe.FindString(s.user.Bio) },
	func(s *memberSources) string {
		if strings.Contains(strings.ToLower(s.user.Blog), "linkedin.com") {
			return s.user.Blog
		}
		return ""
	},
	func(s *memberSources) string {
		if hrefs := githubapi.AnchorsWithSubstring(s.profilePage(), "linkedin.com"); len(hrefs) > 0 {
			return hrefs[0]
		}
		return ""
	},
}

// emailFromPage prefers a mailto: anchor; failing that it takes the first
// email-shaped substring of the page's visible text.
func emailFromPage(html string) string {
	if html == "" {
		return ""
	}
	for _, href := range githubapi.AnchorsWithSubstring(html, "mailto:") {
		if email := strings.TrimPrefix(href, "mailto:"); email != "" {
			return email
		}
	}
	if emails := githubapi.FindEmails(githubapi.PageText(html)); len(emails) > 0 {
		return emails[0]
	}
	return ""
}
