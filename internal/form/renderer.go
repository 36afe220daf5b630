// internal/form/renderer.go
//
// Forms subsystem: HTML renderer.
//
// Context
//   Given a registered FormDef, the renderer writes the <form> element with a
//   label and input per field, the current error message directly beneath
//   any failing input, the hidden security inputs, and the submit button.
//   The caller receives template.HTML so the page template does not
//   double-escape the markup.
//
// Style
//   Output HTML is plain, no framework classes.  Each input gets
//   id="fld-{name}" and each error paragraph id="err-{name}", both wrapped in
//   <div class="form-field">.  Browser-side constraint attributes are left out
//   (and the form carries novalidate) so the server's messages are the ones
//   users see.
//
//------------------------------------------------------------------------------

package form

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"html/template"

	"github.com/yanizio/contact/internal/contact"
)

// RenderOptions bundles the per-request state that shapes the markup.
type RenderOptions struct {
	// Action is the POST target.  Empty means the current URL.
	Action string
	// ValidateURL, when set, is exposed as data-validate for the field script.
	ValidateURL string
	// Values pre-fills the inputs.
	Values contact.Values
	// Errors holds field messages shown beneath their inputs.
	Errors contact.Errors
	// FormError is a form-level message shown above the fields.
	FormError string
	// Guard issues the hidden CSRF token.  Required.
	Guard *Guard
}

// RenderForm returns the HTML markup for the specified form ID.
func RenderForm(formID string, opts RenderOptions) (template.HTML, error) {
	fd, ok := GetFormDef(formID)
	if !ok {
		return "", fmt.Errorf("RenderForm: unknown form %q", formID)
	}
	if opts.Guard == nil {
		return "", errors.New("RenderForm: guard is required")
	}

	token, err := opts.Guard.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("RenderForm: csrf token: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(`<form id="` + html.EscapeString(fd.ID) + `-form" class="form" method="post"`)
	if opts.Action != "" {
		buf.WriteString(` action="` + html.EscapeString(opts.Action) + `"`)
	}
	if opts.ValidateURL != "" {
		buf.WriteString(` data-validate="` + html.EscapeString(opts.ValidateURL) + `"`)
	}
	buf.WriteString(` novalidate>` + "\n")

	if opts.FormError != "" {
		buf.WriteString(`<p class="form-error" role="alert">` + html.EscapeString(opts.FormError) + `</p>` + "\n")
	}

	for _, f := range fd.Fields {
		writeField(&buf, &f, opts.Values.Get(f.Field()), opts.Errors[f.Field()])
	}

	buf.WriteString(`<input type="hidden" name="csrf_token" value="` + token + `">` + "\n")
	buf.WriteString(`<button type="submit">` + html.EscapeString(fd.Submit) + `</button>` + "\n")
	buf.WriteString(`</form>`)
	return template.HTML(buf.String()), nil
}

// writeField emits one labeled input and, when msg is set, its error.
func writeField(buf *bytes.Buffer, f *FieldDef, val, msg string) {
	name := html.EscapeString(f.Name)
	buf.WriteString(`<div class="form-field">` + "\n")

	// Label first (for accessibility)
	buf.WriteString(`<label for="fld-` + name + `">` + html.EscapeString(f.Label) + `</label>` + "\n")

	attrs := `id="fld-` + name + `" name="` + name + `"`
	if f.Placeholder != "" {
		attrs += ` placeholder="` + html.EscapeString(f.Placeholder) + `"`
	}
	if msg != "" {
		attrs += ` aria-invalid="true" aria-describedby="err-` + name + `"`
	}

	switch f.Type {
	case "textarea":
		buf.WriteString(`<textarea ` + attrs + `>` + html.EscapeString(val) + `</textarea>` + "\n")
	default:
		buf.WriteString(`<input ` + attrs + ` type="` + f.Type + `"`)
		if val != "" {
			buf.WriteString(` value="` + html.EscapeString(val) + `"`)
		}
		buf.WriteString(`>` + "\n")
	}

	if msg != "" {
		buf.WriteString(`<p id="err-` + name + `" class="error" role="alert">` + html.EscapeString(msg) + `</p>` + "\n")
	}

	buf.WriteString(`</div>` + "\n")
}
