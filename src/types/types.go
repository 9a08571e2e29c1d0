package types

import "time"

// Settings
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:32;not null"`
	Value string `gorm:"size:256;not null"`
}

// Report is the full result of one company search. Nothing in it outlives the
// request; it is assembled, returned, and discarded.
type Report struct {
	ID          string    `json:"id"`
	Company     string    `json:"company"`
	GeneratedAt time.Time `json:"generatedAt"`

	Sections      []Section     `json:"sections"`
	LinkedInLinks []string      `json:"linkedinLinks,omitempty"`
	GithubLinks   []string      `json:"githubLinks,omitempty"`
	Orgs          []ResolvedOrg `json:"orgs,omitempty"`
	Warnings      []string      `json:"warnings,omitempty"`
}

// Section holds the free-text answer for one research topic plus the links
// pulled out of it.
type Section struct {
	Topic string   `json:"topic"`
	Text  string   `json:"text"`
	Links []string `json:"links,omitempty"`
}

// ResolvedOrg is a GitHub organization the resolver settled on. Verified is
// false only for the last-resort unverified fallback.
type ResolvedOrg struct {
	Slug       string   `json:"slug"`
	URL        string   `json:"url"`
	Provenance string   `json:"provenance"`
	Verified   bool     `json:"verified"`
	Members    []Member `json:"members,omitempty"`
}

// Member is a public org member with best-effort contact fields. Empty string
// means the field could not be sourced; there are no placeholder values.
type Member struct {
	Login      string `json:"login"`
	Name       string `json:"name,omitempty"`
	URL        string `json:"url"`
	Email      string `json:"email,omitempty"`
	Twitter    string `json:"twitter,omitempty"`
	TwitterURL string `json:"twitterUrl,omitempty"`
	Blog       string `json:"blog,omitempty"`
	LinkedIn   string `json:"linkedin,omitempty"`
}
