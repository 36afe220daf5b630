// internal/contact/validate.go
//
// Contact form: validation rules.
//
// Context
//   Each required field carries one go-playground/validator tag string.  The
//   rules are evaluated per field with Var so a field never reports more than
//   one message, and the message text is fixed per field regardless of which
//   tag in the chain failed.
//
//   Two rules are registered on top of the built-ins:
//
//     • notblank – from validator's non-standard set, rejects whitespace-only.
//     • tld      – the domain part must end in ".xx" with two or more letters.
//
//------------------------------------------------------------------------------

package contact

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// User-facing messages, one per validated field.
const (
	MsgFirstName = "Error: firstName must have at least 5 characters."
	MsgLastName  = "Error: lastName is a required field."
	MsgEmail     = "Error: email must be a valid email address."
)

// FirstNameMinLength is the minimum number of characters in a first name.
const FirstNameMinLength = 5

type rule struct {
	tag string
	msg string
}

// rules holds the validated fields.  Message has no rule.
var rules = map[Field]rule{
	FirstName: {tag: "min=" + strconv.Itoa(FirstNameMinLength), msg: MsgFirstName},
	LastName:  {tag: "notblank", msg: MsgLastName},
	Email:     {tag: "required,email,tld", msg: MsgEmail},
}

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	if err := val.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := val.RegisterValidation("tld", hasTLD); err != nil {
		panic(err)
	}
	return val
}

// hasTLD accepts addresses whose domain contains a dot followed by an
// alphabetic top-level label of at least two characters.
func hasTLD(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	at := strings.LastIndexByte(s, '@')
	if at < 1 {
		return false
	}
	domain := s[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	if dot < 1 {
		return false
	}
	tld := domain[dot+1:]
	if len(tld) < 2 {
		return false
	}
	for _, r := range tld {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Errors maps a field to its current error message.  A field without an entry
// is valid.
type Errors map[Field]string

// Has reports whether f currently has an error.
func (e Errors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Strings returns a copy keyed by plain field names, handy for templates and
// JSON.
func (e Errors) Strings() map[string]string {
	out := make(map[string]string, len(e))
	for f, msg := range e {
		out[string(f)] = msg
	}
	return out
}

func (e Errors) clone() Errors {
	out := make(Errors, len(e))
	for f, msg := range e {
		out[f] = msg
	}
	return out
}

// ValidateField applies the rule for f to value.  It returns the message and
// false when the value is rejected.  Fields without a rule always pass.
func ValidateField(f Field, value string) (string, bool) {
	r, ok := rules[f]
	if !ok {
		return "", true
	}
	if err := v.Var(value, r.tag); err != nil {
		return r.msg, false
	}
	return "", true
}

// Validate checks every field of values and returns the failures.  The result
// is empty, never nil, when the form is valid.
func Validate(values Values) Errors {
	errs := make(Errors)
	for _, f := range Fields {
		if msg, ok := ValidateField(f, values.Get(f)); !ok {
			errs[f] = msg
		}
	}
	return errs
}
