package linkextract

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		domains []string
		want    []string
	}{
		{
			name: "markdown before bare",
			text: "See [here](https://github.com/Acme/repo) and https://github.com/Acme",
			want: []string{"https://github.com/Acme/repo", "https://github.com/Acme"},
		},
		{
			name:    "domain filter",
			text:    "See [here](https://github.com/Acme/repo) and https://github.com/Acme",
			domains: []string{"github.com"},
			want:    []string{"https://github.com/Acme/repo", "https://github.com/Acme"},
		},
		{
			name: "dedupe keeps first seen",
			text: "https://a.io/x then https://b.io then https://a.io/x again",
			want: []string{"https://a.io/x", "https://b.io"},
		},
		{
			name: "trailing punctuation stripped",
			text: "Visit https://example.com/page). Or 'https://other.io/a,' maybe.",
			want: []string{"https://example.com/page", "https://other.io/a"},
		},
		{
			name:    "filter is case-insensitive substring",
			text:    "https://GitHub.com/Widget and https://example.org/?ref=github.com",
			domains: []string{"github.com"},
			want:    []string{"https://GitHub.com/Widget", "https://example.org/?ref=github.com"},
		},
		{
			name:    "filter excludes unrelated",
			text:    "https://linkedin.com/company/acme and https://acme.io",
			domains: []string{"linkedin.com"},
			want:    []string{"https://linkedin.com/company/acme"},
		},
		{
			name: "no links",
			text: "nothing to see here",
			want: nil,
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text, tt.domains...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q, %v) = %v, want %v", tt.text, tt.domains, got, tt.want)
			}
		})
	}
}

func TestExtractFilteredIsSubset(t *testing.T) {
	text := "[a](https://x.com/a) https://y.io/b https://x.com/c https://z.dev"
	all := Extract(text)
	filtered := Extract(text, "x.com")

	if len(filtered) == 0 {
		t.Fatal("expected filtered results")
	}

	idx := make(map[string]bool, len(all))
	for _, u := range all {
		idx[u] = true
	}
	for _, u := range filtered {
		if !idx[u] {
			t.Errorf("filtered URL %q not present in unfiltered output", u)
		}
	}
}
