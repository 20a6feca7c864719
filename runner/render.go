package runner

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/language"

	"github.com/jeffrom/ghlog/commit"
	"github.com/jeffrom/ghlog/model"
)

// bullets are the list markers by list depth, starting at depth 1.
var bullets = []string{"* ", " * ", "   * "}

// sectionLevel is the heading level of the Commits and Authors sections.
const sectionLevel = 2

// Renderer renders a group tree as a markdown document.
type Renderer struct {
	lang language.Tag
}

// NewRenderer returns a Renderer sorting author lists by the collation rules
// of lang.
func NewRenderer(lang language.Tag) *Renderer {
	return &Renderer{lang: lang}
}

// Render returns the document for the tree rooted at root, or an empty
// string if it has no commits. The root has no heading: a grouped document
// is its top-level groups, and only an ungrouped one gets a single Commits
// and Authors section.
func (r *Renderer) Render(root *commit.Group) string {
	if root == nil || len(root.Commits) == 0 {
		return ""
	}
	b := &strings.Builder{}
	if len(root.Children) > 0 {
		for _, child := range root.Children {
			r.group(b, child, 1)
		}
	} else {
		r.group(b, root, 0)
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace) + "\n"
}

func (r *Renderer) group(b *strings.Builder, g *commit.Group, depth int) {
	if g.Level > 0 {
		writeHeading(b, g.Level, g.Name)
		if g.Description != "" {
			for _, line := range strings.Split(normalizeNewlines(g.Description), "\n") {
				b.WriteString(strings.TrimRightFunc("> "+line, unicode.IsSpace))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	writeHeading(b, sectionLevel, fmt.Sprintf("Commits (%d)", len(g.Commits)))
	b.WriteString("\n")
	if len(g.Children) > 0 {
		for _, child := range g.Children {
			r.group(b, child, depth+1)
		}
	} else {
		bullet := bulletAt(depth)
		for _, c := range g.Commits {
			writeCommit(b, c, bullet)
		}
		b.WriteString("\n")
	}

	authors := commit.Authors(g.Commits, r.lang)
	writeHeading(b, sectionLevel, fmt.Sprintf("Authors (%d)", len(authors)))
	b.WriteString("\n")
	for _, a := range authors {
		b.WriteString(bullets[0])
		b.WriteString(a.Display)
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// writeHeading writes a heading for a logical level. Level 1 renders as "##",
// leaving "#" for a document title.
func writeHeading(b *strings.Builder, level int, title string) {
	b.WriteString(strings.Repeat("#", level+1))
	b.WriteString(" ")
	b.WriteString(title)
	b.WriteString("\n")
}

func bulletAt(depth int) string {
	if depth < 1 {
		depth = 1
	}
	if depth > len(bullets) {
		depth = len(bullets)
	}
	return bullets[depth-1]
}

// writeCommit writes a list item for c. Continuation lines are indented to
// line up with the text after the bullet.
func writeCommit(b *strings.Builder, c *model.Commit, bullet string) {
	indent := strings.Repeat(" ", len(bullet))

	var head string
	if issue := c.Issue; issue != nil {
		head = fmt.Sprintf("[%s](%s) - %s (%s)", issue.Ref(), issue.URL, issue.Title, c.Author.Email)
	} else {
		head = fmt.Sprintf("%s (%s)", strings.TrimSpace(normalizeNewlines(c.Message)), c.Author.Email)
	}
	b.WriteString(bullet)
	b.WriteString(indentText(head, indent))
	b.WriteString("\n")

	if c.Issue == nil {
		return
	}
	if body := strings.TrimSpace(normalizeNewlines(c.Issue.Body)); body != "" {
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(indentText(body, indent))
		b.WriteString("\n")
	}
}

// indentText follows every newline in s with indent.
func indentText(s, indent string) string {
	return strings.ReplaceAll(s, "\n", "\n"+indent)
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
