// Package model contains abstract data models.
package model

import "fmt"

// DefaultProfileBaseURL is used to build an author's profile link when the
// source didn't supply one.
const DefaultProfileBaseURL = "https://github.com/"

type Author struct {
	// ID is the stable identity supplied by the source. It may be empty, in
	// which case all such authors are treated as one anonymous identity.
	ID    string `json:"id,omitempty"`
	Login string `json:"login,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

func (a Author) ProfileURL() string {
	if a.URL != "" {
		return a.URL
	}
	if a.Login == "" {
		return ""
	}
	return DefaultProfileBaseURL + a.Login
}

type Label struct {
	Name string `json:"name"`
}

type Issue struct {
	Number int     `json:"number"`
	Title  string  `json:"title"`
	Body   string  `json:"body,omitempty"`
	URL    string  `json:"html_url"`
	Labels []Label `json:"labels,omitempty"`
}

// Ref returns the issue reference as it appears in commit messages.
func (i *Issue) Ref() string {
	return fmt.Sprintf("#%d", i.Number)
}

func (i *Issue) HasLabel(name string) bool {
	for _, l := range i.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}

type Release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name,omitempty"`
	Body    string `json:"body,omitempty"`
}

func (r *Release) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.TagName
}
