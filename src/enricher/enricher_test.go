package enricher

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stake-plus/company-scout/src/githubapi"
	"github.com/stake-plus/company-scout/src/types"
)

type fakeAPI struct {
	members   []string
	membersOK bool
	users     map[string]*githubapi.User
	events    map[string][]string
	pages     map[string]string
	people    []string
}

func (f *fakeAPI) ListMembers(_ context.Context, _ string) ([]string, bool) {
	return f.members, f.membersOK
}

func (f *fakeAPI) User(_ context.Context, login string) (*githubapi.User, error) {
	u, ok := f.users[login]
	if !ok {
		return nil, fmt.Errorf("user %s: status 404", login)
	}
	return u, nil
}

func (f *fakeAPI) PushEventEmails(_ context.Context, login string) []string {
	return f.events[login]
}

func (f *fakeAPI) ProfilePage(_ context.Context, login string) (string, error) {
	page, ok := f.pages[login]
	if !ok {
		return "", fmt.Errorf("fetch: status 404")
	}
	return page, nil
}

func (f *fakeAPI) PeopleLogins(_ context.Context, _ string) []string {
	return f.people
}

func memberByLogin(t *testing.T, members []types.Member, login string) types.Member {
	t.Helper()
	for _, m := range members {
		if m.Login == login {
			return m
		}
	}
	t.Fatalf("member %q not in result %v", login, members)
	return types.Member{}
}

func TestEnrichOrgNoPublicMembers(t *testing.T) {
	e := New(&fakeAPI{membersOK: false})
	members, warnings := e.EnrichOrg(context.Background(), "https://github.com/hiddenorg", false)

	if len(members) != 0 {
		t.Errorf("got %d members, want 0", len(members))
	}
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "no public members visible") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want a 'no public members visible' entry", warnings)
	}
}

func TestEnrichOrgUnparsableURL(t *testing.T) {
	e := New(&fakeAPI{membersOK: true, members: []string{"alice"}})
	members, warnings := e.EnrichOrg(context.Background(), "https://example.com/not-github", false)

	if len(members) != 0 {
		t.Errorf("got %d members, want 0", len(members))
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want exactly one parse warning", warnings)
	}
}

func TestEnrichEmailWaterfall(t *testing.T) {
	tests := []struct {
		name   string
		user   *githubapi.User
		events []string
		page   string
		want   string
	}{
		{
			name: "profile field wins",
			user: &githubapi.User{Login: "alice", Email: "alice@acme.io", Bio: "reach me at other@acme.io"},
			want: "alice@acme.io",
		},
		{
			name: "bio regex second",
			user: &githubapi.User{Login: "alice", Bio: "DMs closed, email alice@acme.io instead"},
			want: "alice@acme.io",
		},
		{
			name:   "push events skip noreply",
			user:   &githubapi.User{Login: "alice"},
			events: []string{"12345+alice@users.noreply.github.com", "alice@commits.acme.io"},
			want:   "alice@commits.acme.io",
		},
		{
			name: "mailto anchor last resort",
			user: &githubapi.User{Login: "alice"},
			page: `<html><body><a href="mailto:alice@pages.acme.io">mail</a></body></html>`,
			want: "alice@pages.acme.io",
		},
		{
			name:   "absent when every source is empty",
			user:   &githubapi.User{Login: "alice", Bio: "no contact info"},
			events: []string{"12345+alice@users.noreply.github.com"},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{
				members:   []string{"alice"},
				membersOK: true,
				users:     map[string]*githubapi.User{"alice": tt.user},
				events:    map[string][]string{"alice": tt.events},
				pages:     map[string]string{},
			}
			if tt.page != "" {
				api.pages["alice"] = tt.page
			}

			members, _ := New(api).EnrichOrg(context.Background(), "https://github.com/acme", false)
			m := memberByLogin(t, members, "alice")
			if m.Email != tt.want {
				t.Errorf("email = %q, want %q", m.Email, tt.want)
			}
		})
	}
}

func TestEnrichLinkedInWaterfall(t *testing.T) {
	tests := []struct {
		name string
		user *githubapi.User
		page string
		want string
	}{
		{
			name: "bio regex first",
			user: &githubapi.User{Login: "bob", Bio: "Find me on https://linkedin.com/in/bob-acme"},
			want: "https://linkedin.com/in/bob-acme",
		},
		{
			name: "blog field second",
			user: &githubapi.User{Login: "bob", Blog: "https://www.linkedin.com/in/bob-acme"},
			want: "https://www.linkedin.com/in/bob-acme",
		},
		{
			name: "profile page anchor last",
			user: &githubapi.User{Login: "bob"},
			page: `<html><body><a href="https://linkedin.com/in/bob-acme">li</a></body></html>`,
			want: "https://linkedin.com/in/bob-acme",
		},
		{
			name: "absent when nothing matches",
			user: &githubapi.User{Login: "bob", Bio: "just a builder", Blog: "https://bob.dev"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{
				members:   []string{"bob"},
				membersOK: true,
				users:     map[string]*githubapi.User{"bob": tt.user},
				pages:     map[string]string{},
			}
			if tt.page != "" {
				api.pages["bob"] = tt.page
			}

			members, _ := New(api).EnrichOrg(context.Background(), "https://github.com/acme", false)
			m := memberByLogin(t, members, "bob")
			if m.LinkedIn != tt.want {
				t.Errorf("linkedin = %q, want %q", m.LinkedIn, tt.want)
			}
		})
	}
}

func TestEnrichBlogDuplicatingLinkedInDropped(t *testing.T) {
	api := &fakeAPI{
		members:   []string{"bob"},
		membersOK: true,
		users: map[string]*githubapi.User{
			"bob": {Login: "bob", Blog: "https://www.linkedin.com/in/bob-acme"},
		},
	}

	members, _ := New(api).EnrichOrg(context.Background(), "https://github.com/acme", false)
	m := memberByLogin(t, members, "bob")
	if m.LinkedIn != "https://www.linkedin.com/in/bob-acme" {
		t.Fatalf("linkedin = %q", m.LinkedIn)
	}
	if m.Blog != "" {
		t.Errorf("blog = %q, want empty when it duplicates the linkedin value", m.Blog)
	}
}

func TestEnrichTwitterComposed(t *testing.T) {
	api := &fakeAPI{
		members:   []string{"carol"},
		membersOK: true,
		users: map[string]*githubapi.User{
			"carol": {Login: "carol", Name: "Carol", HTMLURL: "https://github.com/carol", TwitterUsername: "carol_dev"},
		},
	}

	members, _ := New(api).EnrichOrg(context.Background(), "https://github.com/acme", false)
	m := memberByLogin(t, members, "carol")
	if m.Twitter != "carol_dev" {
		t.Errorf("twitter = %q, want carol_dev", m.Twitter)
	}
	if m.TwitterURL != "https://twitter.com/carol_dev" {
		t.Errorf("twitterUrl = %q", m.TwitterURL)
	}
	if m.URL != "https://github.com/carol" {
		t.Errorf("url = %q", m.URL)
	}
}

func TestEnrichProfileFetchFailureLeavesFieldsEmpty(t *testing.T) {
	api := &fakeAPI{
		members:   []string{"ghost"},
		membersOK: true,
		users:     map[string]*githubapi.User{},
	}

	members, _ := New(api).EnrichOrg(context.Background(), "https://github.com/acme", false)
	m := memberByLogin(t, members, "ghost")
	if m.Email != "" || m.Twitter != "" || m.LinkedIn != "" || m.Blog != "" {
		t.Errorf("expected empty contact fields, got %+v", m)
	}
	if m.URL == "" {
		t.Error("profile URL should still be composed from the login")
	}
}

func TestEnrichScrapeFallbackRoster(t *testing.T) {
	api := &fakeAPI{
		membersOK: false,
		people:    []string{"dave", "erin"},
		users: map[string]*githubapi.User{
			"dave": {Login: "dave"},
			"erin": {Login: "erin"},
		},
	}

	members, _ := New(api).EnrichOrg(context.Background(), "https://github.com/acme", true)
	if len(members) != 2 {
		t.Fatalf("got %d members, want 2 from the people-page fallback", len(members))
	}

	membersOff, _ := New(api).EnrichOrg(context.Background(), "https://github.com/acme", false)
	if len(membersOff) != 0 {
		t.Errorf("scrape fallback ran without allowScrape: %v", membersOff)
	}
}
