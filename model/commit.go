package model

import (
	"strings"
	"time"
)

type Commit struct {
	ID         string    `json:"commit"`
	Author     Author    `json:"author"`
	AuthorDate time.Time `json:"author_date,omitempty"`
	Message    string    `json:"message"`
	Files      []string  `json:"files,omitempty"`
	Tags       []string  `json:"tags,omitempty"`

	// Issue and Release are set by enrichment. They reference shared values
	// and must not be modified through the commit.
	Issue   *Issue   `json:"-"`
	Release *Release `json:"-"`
}

func (c *Commit) ShortID() string {
	if len(c.ID) < 8 {
		return c.ID
	}
	return c.ID[:8]
}

// Subject returns the first line of the commit message.
func (c *Commit) Subject() string {
	if i := strings.IndexByte(c.Message, '\n'); i >= 0 {
		return c.Message[:i]
	}
	return c.Message
}
