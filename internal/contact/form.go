// internal/contact/form.go
//
// Contact form: state holder.
//
// Context
//   Form owns the four input values, the current error map, and the snapshot
//   taken at the last valid submit.  Every mutation goes through SetField,
//   which re-validates the touched field immediately, so errors appear while
//   the user types rather than only on submit.
//
//   A Form is owned by one caller at a time and is not safe for concurrent
//   use.  The HTTP layer builds a fresh Form per request.
//
//------------------------------------------------------------------------------

package contact

// Form is the contact form component.  Use New; the zero value is not ready.
type Form struct {
	values    Values
	errors    Errors
	submitted *Values
}

// New returns an empty form with no errors and nothing submitted.
func New() *Form {
	return &Form{errors: make(Errors)}
}

// SetField stores value under name and re-validates that field only.
func (f *Form) SetField(name Field, value string) error {
	if err := f.values.Set(name, value); err != nil {
		return err
	}
	if msg, ok := ValidateField(name, value); ok {
		delete(f.errors, name)
	} else {
		f.errors[name] = msg
	}
	return nil
}

// Value returns the current content of name.
func (f *Form) Value(name Field) string { return f.values.Get(name) }

// Values returns a copy of the current input values.
func (f *Form) Values() Values { return f.values }

// Errors returns a copy of the current error map.
func (f *Form) Errors() Errors { return f.errors.clone() }

// Error returns the current message for name, if any.
func (f *Form) Error(name Field) (string, bool) {
	msg, ok := f.errors[name]
	return msg, ok
}

// Valid reports whether no field currently has an error.  Fields that were
// never set are not checked until Submit.
func (f *Form) Valid() bool { return len(f.errors) == 0 }

// Submit validates every field.  On success it snapshots the current values
// and returns true; the inputs keep their content.  On failure the previous
// snapshot, if any, is left untouched.
func (f *Form) Submit() bool {
	f.errors = Validate(f.values)
	if len(f.errors) > 0 {
		return false
	}
	snap := f.values
	f.submitted = &snap
	return true
}

// Submitted returns the snapshot from the last valid submit.  ok is false
// until the first one succeeds.
func (f *Form) Submitted() (Values, bool) {
	if f.submitted == nil {
		return Values{}, false
	}
	return *f.submitted, true
}
