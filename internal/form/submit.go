// internal/form/submit.go
//
// Forms subsystem: consolidated Submit helper.
//
// Context
//   Handlers want one call that parses the POST body, checks the security
//   fields, and submits the values.  HandleSubmit provides that so component
//   code stays terse.  User mistakes come back as typed errors so handlers can
//   re-render with a 4xx instead of a 500.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yanizio/contact/internal/contact"
)

// validationError carries field failures and the populated form so the page
// can be re-rendered with the user's input intact.
type validationError struct {
	Fields []ErrorField
	Form   *contact.Form
}

func (ve validationError) Error() string { return "form validation failed" }

// securityError reports a failed CSRF, timing, or size check.
type securityError struct {
	Field ErrorField
	cause error
}

func (se securityError) Error() string { return "form security check failed: " + se.Field.Message }

func (se securityError) Unwrap() error { return se.cause }

// HandleSubmit parses r, verifies the security fields with g, and submits the
// posted values of formID.  On success the returned form holds the snapshot.
func HandleSubmit(g *Guard, formID string, r *http.Request) (*contact.Form, error) {
	if err := r.ParseForm(); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, securityError{Field: ErrorField{Message: MsgTooLarge}, cause: err}
		}
		return nil, fmt.Errorf("parse form: %w", err)
	}

	if fe := g.Check(r.PostForm); fe != nil {
		return nil, securityError{Field: *fe}
	}

	cf, errs, err := ValidateForm(formID, r.PostForm)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return cf, validationError{Fields: errs, Form: cf}
	}
	return cf, nil
}

// IsValidationError reports whether err came from failed field validation.
func IsValidationError(err error) bool {
	var ve validationError
	return errors.As(err, &ve)
}

// IsSecurityError reports whether err came from a failed CSRF or timing check.
func IsSecurityError(err error) bool {
	var se securityError
	return errors.As(err, &se)
}

// IsTooLarge reports whether err came from a body over the reader's limit
// (see http.MaxBytesReader).
func IsTooLarge(err error) bool {
	var tooBig *http.MaxBytesError
	return errors.As(err, &tooBig)
}

// FieldErrors extracts the field failures from a validation error.
func FieldErrors(err error) []ErrorField {
	var ve validationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// FormError extracts the user-facing message from a security error.
func FormError(err error) string {
	var se securityError
	if errors.As(err, &se) {
		return se.Field.Message
	}
	return ""
}
