// Package githubapi is a thin client for the handful of GitHub REST endpoints
// and public HTML pages the pipeline needs. Every call degrades to an empty
// result on network failure or a non-200 status; callers never see an abort.
package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/stake-plus/company-scout/src/webclient"
)

const (
	defaultAPIBase = "https://api.github.com"
	defaultWebBase = "https://github.com"
	userAgent      = "Mozilla/5.0 (compatible; CompanyScoutBot/1.0)"
)

var orgSegmentRe = regexp.MustCompile(`(?i)github\.com/([A-Za-z0-9_.-]+)`)

// OrgFromURL returns the first path segment after github.com, or "" when the
// URL has no recognizable organization segment.
func OrgFromURL(url string) string {
	m := orgSegmentRe.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// OrgURL builds the canonical organization-root URL for a slug.
func OrgURL(slug string) string {
	return defaultWebBase + "/" + slug
}

// User is the subset of the public user profile the enricher consumes.
type User struct {
	Login           string `json:"login"`
	Name            string `json:"name"`
	HTMLURL         string `json:"html_url"`
	Email           string `json:"email"`
	TwitterUsername string `json:"twitter_username"`
	Blog            string `json:"blog"`
	Bio             string `json:"bio"`
}

type Client struct {
	token      string
	apiBase    string
	webBase    string
	httpClient *http.Client
}

// NewClient builds a client. token may be empty; it still works at lower rate
// limits.
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		apiBase:    defaultAPIBase,
		webBase:    defaultWebBase,
		httpClient: webclient.NewDefault(10 * time.Second),
	}
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
	return c.httpClient.Do(req)
}

// OrgExists reports whether the organizations endpoint answers 200 for slug.
func (c *Client) OrgExists(ctx context.Context, org string) bool {
	resp, err := c.get(ctx, fmt.Sprintf("%s/orgs/%s", c.apiBase, org))
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// ListMembers returns the org's public member logins. ok is false when the
// endpoint answered non-200, which legitimately happens for orgs with hidden
// membership; it is "no public members visible", not an error.
func (c *Client) ListMembers(ctx context.Context, org string) (logins []string, ok bool) {
	resp, err := c.get(ctx, fmt.Sprintf("%s/orgs/%s/members", c.apiBase, org))
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	var items []struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, false
	}

	for _, item := range items {
		if item.Login != "" {
			logins = append(logins, item.Login)
		}
	}
	return logins, true
}

// User fetches the public profile for a login.
func (c *Client) User(ctx context.Context, login string) (*User, error) {
	resp, err := c.get(ctx, fmt.Sprintf("%s/users/%s", c.apiBase, login))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user %s: status %d", login, resp.StatusCode)
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("user %s: %w", login, err)
	}
	return &u, nil
}

// PushEventEmails mines commit-author emails from a user's recent public push
// events, in first-seen order. noreply filtering is the caller's concern.
func (c *Client) PushEventEmails(ctx context.Context, login string) []string {
	resp, err := c.get(ctx, fmt.Sprintf("%s/users/%s/events/public", c.apiBase, login))
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var events []struct {
		Type    string `json:"type"`
		Payload struct {
			Commits []struct {
				Author struct {
					Email string `json:"email"`
				} `json:"author"`
			} `json:"commits"`
		} `json:"payload"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var emails []string
	for _, ev := range events {
		if ev.Type != "PushEvent" {
			continue
		}
		for _, commit := range ev.Payload.Commits {
			email := commit.Author.Email
			if email == "" {
				continue
			}
			if _, dup := seen[email]; dup {
				continue
			}
			seen[email] = struct{}{}
			emails = append(emails, email)
		}
	}
	return emails
}

// ProfilePage fetches the public profile page HTML for a login.
func (c *Client) ProfilePage(ctx context.Context, login string) (string, error) {
	return c.fetchPage(ctx, fmt.Sprintf("%s/%s", c.webBase, login))
}

func (c *Client) fetchPage(ctx context.Context, url string) (string, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
