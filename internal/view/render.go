// internal/view/render.go
//
// Central view engine: page templates and the helpers that execute them.
//
// Public helpers
// --------------
//   - Render         – write a rendered page to an http.ResponseWriter.
//   - RenderToString – return template.HTML (tests, fragments).
//
// Every page is its own template set made of templates/layout.html plus
// templates/<page>.html, so each page can define "content" without clashing.
// Sets are parsed once at init from the embedded files; a broken template
// stops the process at start-up instead of on the first request.
//
// Style
// -----
// • Two spaces after periods.

package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/yanizio/contact/internal/contact"
)

//go:embed templates/*.html
var files embed.FS

// Pages known to the engine.
const (
	PageContact = "contact"
)

var pages = map[string]*template.Template{}

// ContactData feeds the contact page.  Submitted is nil until a valid submit;
// the summary block is omitted entirely in that case.
type ContactData struct {
	Title     string
	Form      template.HTML
	Submitted *contact.Values
	Script    string
}

func init() {
	for _, name := range []string{PageContact} {
		pages[name] = template.Must(template.New(name).ParseFS(files,
			"templates/layout.html",
			"templates/"+name+".html",
		))
	}
}

// Render executes page name with data and streams it to w with the given
// status.  The page is rendered into a buffer first so a template failure
// never leaves a half-written response.
func Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := execute(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// RenderToString executes page name and returns the HTML.
func RenderToString(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := execute(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func execute(buf *bytes.Buffer, name string, data any) error {
	t, ok := pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	if err := t.ExecuteTemplate(buf, "layout", data); err != nil {
		return fmt.Errorf("view: render %s: %w", name, err)
	}
	return nil
}
