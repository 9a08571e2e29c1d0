package githubapi

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// FindEmails returns email-shaped substrings of text, deduplicated in
// first-seen order.
func FindEmails(text string) []string {
	seen := make(map[string]struct{})
	var emails []string
	for _, m := range emailRe.FindAllString(text, -1) {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		emails = append(emails, m)
	}
	return emails
}

// AnchorsWithSubstring returns hrefs of anchors whose href contains substr.
// The parsing strategy lives behind this narrow surface so callers never
// touch HTML directly.
func AnchorsWithSubstring(html, substr string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if strings.Contains(href, substr) {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

// PageText extracts the visible text of an HTML document.
func PageText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return doc.Text()
}

// Paths GitHub uses for site chrome; the generic people-page fallback must
// not mistake them for user logins.
var nonUserPaths = map[string]struct{}{
	"issues": {}, "pulls": {}, "releases": {}, "security": {}, "settings": {},
	"features": {}, "projects": {}, "collections": {}, "organizations": {},
	"marketplace": {}, "about": {}, "contact": {}, "blog": {}, "docs": {},
	"help": {}, "login": {}, "search": {},
}

// PeopleLogins scrapes the org's /people page as a best-effort fallback when
// the members API shows nothing. GitHub HTML can change underneath this; an
// empty result is always acceptable.
func (c *Client) PeopleLogins(ctx context.Context, org string) []string {
	html, err := c.fetchPage(ctx, fmt.Sprintf("%s/orgs/%s/people", c.webBase, org))
	if err != nil {
		return nil
	}
	return peopleLoginsFromHTML(html, org)
}

func peopleLoginsFromHTML(html, org string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	found := make(map[string]struct{})

	// Primary: user hovercards are the strongest signal.
	doc.Find(`a[data-hovercard-type="user"]`).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		login := strings.Trim(href, "/")
		if login != "" && !strings.Contains(login, "/") && !strings.EqualFold(login, org) {
			found[login] = struct{}{}
		}
	})

	// Fallback: any single-segment anchor that is not site chrome.
	if len(found) == 0 {
		doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			if !strings.HasPrefix(href, "/") {
				return
			}
			login := strings.Trim(href, "/")
			if login == "" || strings.Contains(login, "/") || len(login) < 2 {
				return
			}
			lower := strings.ToLower(login)
			if _, bad := nonUserPaths[lower]; bad || lower == strings.ToLower(org) {
				return
			}
			found[login] = struct{}{}
		})
	}

	logins := make([]string, 0, len(found))
	for login := range found {
		logins = append(logins, login)
	}
	sort.Strings(logins)
	return logins
}
