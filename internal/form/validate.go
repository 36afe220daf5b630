// internal/form/validate.go
//
// Forms subsystem: server-side checks on a posted form.
//
// Context
//   The renderer outputs HTML containing a CSRF token whose signed issue time
//   marks when the form was rendered.  When the browser posts, this file
//   verifies the token and the fill-time window, then hands the field
//   values to a fresh contact.Form.  Field rules themselves live in
//   internal/contact; this file only moves data and reports problems.
//
// Workflow
//   •  Guard.Check verifies CSRF and timing.  Failures are form-level
//      ErrorFields (empty Name) and stop processing.
//   •  ValidateForm copies each defined field into a contact.Form with
//      SetField and calls Submit.  Field failures come back as ErrorFields in
//      definition order so templates can place them beneath their inputs.
//
//------------------------------------------------------------------------------

package form

import (
	"fmt"
	"net/url"
	"time"

	"github.com/yanizio/contact/internal/contact"
)

// -----------------------------------------------------------------------------
// Error types
// -----------------------------------------------------------------------------

// ErrorField describes a single failure.  Name is empty for form-level
// problems such as an expired token.
type ErrorField struct {
	Name    string
	Message string
}

// Messages for form-level failures.
const (
	MsgBadToken = "Security token invalid.  Please refresh and try again."
	MsgTooFast  = "Form submitted too quickly.  Please enter the fields manually."
	MsgExpired  = "Form expired.  Please reload and submit again."
	MsgTooLarge = "Submission too large.  Please shorten your message."
)

// -----------------------------------------------------------------------------
// Form-level checks
// -----------------------------------------------------------------------------

// Check verifies the hidden security inputs of a posted form.  It returns nil
// when the submission may proceed.
func (g *Guard) Check(posted url.Values) *ErrorField {
	issued, ok := g.verify(posted.Get("csrf_token"))
	if !ok {
		return &ErrorField{Message: MsgBadToken}
	}
	if msg := g.checkTiming(issued); msg != "" {
		return &ErrorField{Message: msg}
	}
	return nil
}

// checkTiming ensures the form was not submitted suspiciously fast or too
// late after rendered.  Returns empty string on success.
func (g *Guard) checkTiming(rendered time.Time) string {
	delta := g.now().Sub(rendered)
	switch {
	case g.minFill > 0 && delta < g.minFill:
		return MsgTooFast
	case delta > g.maxFill:
		return MsgExpired
	default:
		return ""
	}
}

// -----------------------------------------------------------------------------
// Field values
// -----------------------------------------------------------------------------

// ValidateForm loads posted values for formID into a new contact.Form and
// submits it.  The returned slice lists field failures in display order; it
// is empty when the submit succeeded.
func ValidateForm(formID string, posted url.Values) (*contact.Form, []ErrorField, error) {
	fd, ok := GetFormDef(formID)
	if !ok {
		return nil, nil, fmt.Errorf("ValidateForm: unknown form %q", formID)
	}

	cf := contact.New()
	for _, f := range fd.Fields {
		if err := cf.SetField(f.Field(), posted.Get(f.Name)); err != nil {
			return nil, nil, err
		}
	}
	if cf.Submit() {
		return cf, nil, nil
	}

	errs := cf.Errors()
	out := make([]ErrorField, 0, len(errs))
	for _, f := range fd.Fields {
		if msg, bad := errs[f.Field()]; bad {
			out = append(out, ErrorField{Name: f.Name, Message: msg})
		}
	}
	return cf, out, nil
}
