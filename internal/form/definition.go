// internal/form/definition.go
//
// Forms subsystem: YAML definition loader.
//
// Context
//   The contact form's labels, input types, and field order are declared in
//   YAML rather than hard-coded in the renderer.  The default definition is
//   embedded in the binary (forms/contact.yaml) and registered at init.
//   Operators may drop replacement files into a definitions directory; those
//   are loaded by RegisterForms and override the embedded copy by ID.
//
// Workflow
//   •  Structs mirror the YAML schema: FormDef → FieldDef.
//   •  ParseFormDef decodes and validates one document.  LoadFormDef reads it
//      from disk first.
//   •  RegisterForms walks one or more directories for “*.yaml” and adds each
//      definition to the registry.
//   •  GetFormDef offers read-only access to a parsed form by ID.
//
// Style
//   Full sentences, two spaces after periods.  Helper comments use short
//   noun phrases.
//
//------------------------------------------------------------------------------

package form

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yanizio/contact/internal/contact"
)

// -----------------------------------------------------------------------------
// Data structures
// -----------------------------------------------------------------------------

// FormDef represents one form definition loaded from YAML.
type FormDef struct {
	ID     string     `yaml:"id"`     // Unique identifier, e.g. “contact”.
	Title  string     `yaml:"title"`  // Page heading.
	Submit string     `yaml:"submit"` // Submit button text, defaults to “Submit”.
	Fields []FieldDef `yaml:"fields"` // Inputs in display order.
}

// FieldDef describes a single input control on the form.  Name must be one of
// the contact fields; validation rules live in internal/contact, not here.
type FieldDef struct {
	Name        string `yaml:"name"`        // Submission key.  Required.
	Label       string `yaml:"label"`       // Label text.  Required.
	Type        string `yaml:"type"`        // text, email, or textarea.
	Placeholder string `yaml:"placeholder"` // Optional placeholder text.
}

// Field returns the contact field this definition binds to.  Definitions are
// checked at load, so the conversion cannot fail for registered forms.
func (f FieldDef) Field() contact.Field { return contact.Field(f.Name) }

// ContactFormID is the ID of the embedded contact form definition.
const ContactFormID = "contact"

//go:embed forms/*.yaml
var embedded embed.FS

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*FormDef)
)

func init() {
	if err := registerEmbedded(); err != nil {
		panic(err)
	}
}

// GetFormDef returns a parsed FormDef by ID.  The boolean is false when the
// ID is unknown.
func GetFormDef(id string) (*FormDef, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fd, ok := registry[id]
	return fd, ok
}

// -----------------------------------------------------------------------------
// Loader API
// -----------------------------------------------------------------------------

// ParseFormDef decodes raw YAML and validates its structure.  source names the
// document in error messages.
func ParseFormDef(raw []byte, source string) (*FormDef, error) {
	var fd FormDef
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", source, err)
	}
	if err := validateFormDef(&fd, source); err != nil {
		return nil, err
	}
	if fd.Submit == "" {
		fd.Submit = "Submit"
	}
	return &fd, nil
}

// LoadFormDef parses one YAML file.  It never mutates the registry.
func LoadFormDef(path string) (*FormDef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", path, err)
	}
	return ParseFormDef(raw, path)
}

// RegisterForms loads every “*.yaml” found under the given directories, in
// order.  Later directories win when two files share an ID.  A missing
// directory is not an error.
func RegisterForms(dirs []string) (int, error) {
	if len(dirs) == 0 {
		return 0, errors.New("RegisterForms: no directories provided")
	}

	n := 0
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), ".yaml") {
				return nil
			}
			fd, err := LoadFormDef(path)
			if err != nil {
				return err // fail fast so issues surface loudly.
			}
			register(fd)
			n++
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return n, err
		}
	}
	return n, nil
}

func registerEmbedded() error {
	return fs.WalkDir(embedded, "forms", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		raw, err := embedded.ReadFile(path)
		if err != nil {
			return err
		}
		fd, err := ParseFormDef(raw, "embedded:"+path)
		if err != nil {
			return err
		}
		register(fd)
		return nil
	})
}

// register inserts or overrides the form in the registry.  Caller must ensure
// the FormDef passed validation.
func register(fd *FormDef) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[fd.ID] = fd
}

// -----------------------------------------------------------------------------
// Validation helpers
// -----------------------------------------------------------------------------

var fieldTypes = map[string]bool{
	"text":     true,
	"email":    true,
	"textarea": true,
}

// validateFormDef enforces structural rules that YAML tags cannot express.
func validateFormDef(fd *FormDef, source string) error {
	if fd.ID == "" {
		return fmt.Errorf("form definition %s: missing required 'id'", source)
	}
	if len(fd.Fields) == 0 {
		return fmt.Errorf("form definition %s: must have 'fields'", source)
	}

	seen := make(map[string]struct{}, len(fd.Fields))
	for i := range fd.Fields {
		f := &fd.Fields[i]
		if err := validateField(f, source); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("form %s: duplicate field name '%s'", source, f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	// Every contact field is needed so submit errors have an input to sit under.
	for _, f := range contact.Fields {
		if _, ok := seen[f.String()]; !ok {
			return fmt.Errorf("form %s: missing field '%s'", source, f)
		}
	}
	return nil
}

// validateField confirms that essential attributes are present and sane.
func validateField(f *FieldDef, source string) error {
	if f.Name == "" {
		return fmt.Errorf("form %s: field missing 'name'", source)
	}
	if _, err := contact.ParseField(f.Name); err != nil {
		return fmt.Errorf("form %s: %w", source, err)
	}
	if f.Label == "" {
		return fmt.Errorf("form %s: field '%s' missing 'label'", source, f.Name)
	}
	if !fieldTypes[f.Type] {
		return fmt.Errorf("form %s: field '%s' has unsupported type %q", source, f.Name, f.Type)
	}
	return nil
}
