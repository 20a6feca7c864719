package runner

import (
	"io"
	"text/template"

	"github.com/jeffrom/ghlog/commit"
)

const defaultAuthorsTemplate = `{{ range . }}* {{ .Display }}
{{ end }}`

// WriteAuthors renders the author list with the configured template. The
// template is executed with the []commit.AuthorEntry as its data.
func (r *Runner) WriteAuthors(w io.Writer, authors []commit.AuthorEntry) error {
	tmpl := defaultAuthorsTemplate
	if r.cfg.AuthorsTemplate != "" {
		tmpl = r.cfg.AuthorsTemplate
	}
	t, err := template.New("authors").Parse(tmpl)
	if err != nil {
		return err
	}
	return t.Execute(w, authors)
}
