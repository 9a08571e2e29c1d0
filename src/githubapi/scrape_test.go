package githubapi

import (
	"reflect"
	"testing"
)

func TestFindEmails(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single", "mail me at alice@acme.io please", []string{"alice@acme.io"}},
		{"deduped first-seen", "a@x.io b@y.io a@x.io", []string{"a@x.io", "b@y.io"}},
		{"plus addressing", "12345+alice@users.noreply.github.com", []string{"12345+alice@users.noreply.github.com"}},
		{"none", "no contact details here", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindEmails(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindEmails(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestAnchorsWithSubstring(t *testing.T) {
	html := `<html><body>
		<a href="https://linkedin.com/in/alice">LinkedIn</a>
		<a href="mailto:alice@acme.io">Mail</a>
		<a href="https://alice.dev">Site</a>
		<span>linkedin.com mentioned in text only</span>
	</body></html>`

	tests := []struct {
		name   string
		substr string
		want   []string
	}{
		{"linkedin anchor", "linkedin.com", []string{"https://linkedin.com/in/alice"}},
		{"mailto anchor", "mailto:", []string{"mailto:alice@acme.io"}},
		{"no match", "twitter.com", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnchorsWithSubstring(html, tt.substr)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AnchorsWithSubstring(_, %q) = %v, want %v", tt.substr, got, tt.want)
			}
		})
	}
}

func TestPageText(t *testing.T) {
	html := `<html><body><p>Contact: alice@acme.io</p><script>var x = 1;</script></body></html>`
	text := PageText(html)
	if emails := FindEmails(text); len(emails) == 0 || emails[0] != "alice@acme.io" {
		t.Errorf("FindEmails(PageText(...)) = %v, want alice@acme.io first", emails)
	}
}

func TestPeopleLoginsFromHTML(t *testing.T) {
	t.Run("hovercards preferred", func(t *testing.T) {
		html := `<html><body>
			<a data-hovercard-type="user" href="/alice">alice</a>
			<a data-hovercard-type="user" href="/bob">bob</a>
			<a data-hovercard-type="user" href="/acme">the org itself</a>
			<a href="/carol">not a hovercard</a>
		</body></html>`

		got := peopleLoginsFromHTML(html, "acme")
		want := []string{"alice", "bob"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("logins = %v, want %v", got, want)
		}
	})

	t.Run("generic fallback filters chrome", func(t *testing.T) {
		html := `<html><body>
			<a href="/alice">alice</a>
			<a href="/issues">issues</a>
			<a href="/marketplace">marketplace</a>
			<a href="/acme">org</a>
			<a href="/acme/widget">repo</a>
			<a href="https://example.com/off-site">offsite</a>
			<a href="/a">too short</a>
		</body></html>`

		got := peopleLoginsFromHTML(html, "acme")
		want := []string{"alice"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("logins = %v, want %v", got, want)
		}
	})

	t.Run("empty page", func(t *testing.T) {
		if got := peopleLoginsFromHTML("", "acme"); len(got) != 0 {
			t.Errorf("logins = %v, want none", got)
		}
	})
}
