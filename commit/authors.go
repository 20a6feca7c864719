package commit

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jeffrom/ghlog/model"
)

// AuthorEntry is one distinct author as rendered in an author list.
type AuthorEntry struct {
	SortKey string
	Display string
}

func newAuthorEntry(a model.Author) AuthorEntry {
	if a.Login == "" {
		return AuthorEntry{
			SortKey: fmt.Sprintf("%s <%s>", a.Name, a.Email),
			Display: fmt.Sprintf(`%s \<%s>`, a.Name, a.Email),
		}
	}
	return AuthorEntry{
		SortKey: fmt.Sprintf("%s <%s> (@%s)", a.Name, a.Email, a.Login),
		Display: fmt.Sprintf(`%s \<%s> ([@%s](%s))`, a.Name, a.Email, a.Login, a.ProfileURL()),
	}
}

// Authors returns one entry per distinct author id, sorted by SortKey using
// the collation rules of lang. Commits without an author id all count as
// the same anonymous author. When commits disagree about an id's details,
// the entry with the lowest sort key is used, so the result doesn't depend
// on commit order.
func Authors(commits []*model.Commit, lang language.Tag) []AuthorEntry {
	byID := make(map[string]AuthorEntry)
	for _, c := range commits {
		entry := newAuthorEntry(c.Author)
		if prev, ok := byID[c.Author.ID]; ok && prev.SortKey <= entry.SortKey {
			continue
		}
		byID[c.Author.ID] = entry
	}

	entries := make([]AuthorEntry, 0, len(byID))
	for _, entry := range byID {
		entries = append(entries, entry)
	}

	col := collate.New(lang)
	sort.Slice(entries, func(i, j int) bool {
		if cmp := col.CompareString(entries[i].SortKey, entries[j].SortKey); cmp != 0 {
			return cmp < 0
		}
		if entries[i].SortKey != entries[j].SortKey {
			return entries[i].SortKey < entries[j].SortKey
		}
		return entries[i].Display < entries[j].Display
	})
	return entries
}
