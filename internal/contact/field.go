// internal/contact/field.go
//
// Contact form: field names and the value record.
//
// Context
//   The contact form holds exactly four text fields.  Field is the typed key
//   used everywhere else (error maps, renderer lookups, JSON keys), so the
//   string forms below are part of the public surface and must stay stable.
//
//------------------------------------------------------------------------------

package contact

import (
	"errors"
	"fmt"
)

// Field names one input of the contact form.
type Field string

const (
	FirstName Field = "firstName"
	LastName  Field = "lastName"
	Email     Field = "email"
	Message   Field = "message"
)

// Fields lists every field in display order.
var Fields = []Field{FirstName, LastName, Email, Message}

// ErrUnknownField is returned when a caller names a field the form does not have.
var ErrUnknownField = errors.New("contact: unknown field")

// ParseField converts a raw name (as posted by a browser) into a Field.
func ParseField(name string) (Field, error) {
	switch f := Field(name); f {
	case FirstName, LastName, Email, Message:
		return f, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownField, name)
}

func (f Field) String() string { return string(f) }

// Values is the current content of the four inputs.  The zero value is an
// empty form.
type Values struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Message   string `json:"message,omitempty"`
}

// Get returns the value stored for f.  Unknown fields read as "".
func (v Values) Get(f Field) string {
	switch f {
	case FirstName:
		return v.FirstName
	case LastName:
		return v.LastName
	case Email:
		return v.Email
	case Message:
		return v.Message
	}
	return ""
}

// Set stores value under f.
func (v *Values) Set(f Field, value string) error {
	switch f {
	case FirstName:
		v.FirstName = value
	case LastName:
		v.LastName = value
	case Email:
		v.Email = value
	case Message:
		v.Message = value
	default:
		return fmt.Errorf("%w %q", ErrUnknownField, string(f))
	}
	return nil
}

// HasMessage reports whether the optional message should be displayed.
func (v Values) HasMessage() bool { return v.Message != "" }
