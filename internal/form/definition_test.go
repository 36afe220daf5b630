package form

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedContactDefinition(t *testing.T) {
	fd, ok := GetFormDef(ContactFormID)
	if !ok {
		t.Fatal("contact form not registered")
	}
	if fd.Title != "Contact Form" {
		t.Fatalf("title = %q", fd.Title)
	}

	want := []struct{ name, label, typ string }{
		{"firstName", "First Name*", "text"},
		{"lastName", "Last Name*", "text"},
		{"email", "Email*", "email"},
		{"message", "Message", "textarea"},
	}
	if len(fd.Fields) != len(want) {
		t.Fatalf("fields = %d, want %d", len(fd.Fields), len(want))
	}
	for i, w := range want {
		f := fd.Fields[i]
		if f.Name != w.name || f.Label != w.label || f.Type != w.typ {
			t.Fatalf("field %d = %+v, want %+v", i, f, w)
		}
	}
	if fd.Submit != "Submit" {
		t.Fatalf("submit label = %q", fd.Submit)
	}
}

const validDef = `
id: contact
title: Get in touch
fields:
  - {name: firstName, label: "First Name*", type: text}
  - {name: lastName, label: "Last Name*", type: text}
  - {name: email, label: "Email*", type: email}
  - {name: message, label: Message, type: textarea}
`

func TestParseFormDef_DefaultsSubmit(t *testing.T) {
	fd, err := ParseFormDef([]byte(validDef), "test")
	if err != nil {
		t.Fatalf("ParseFormDef: %v", err)
	}
	if fd.Submit != "Submit" {
		t.Fatalf("submit = %q", fd.Submit)
	}
}

func TestParseFormDef_Errors(t *testing.T) {
	cases := map[string]string{
		"missing id":   strings.Replace(validDef, "id: contact", "", 1),
		"no fields":    "id: x\n",
		"bad yaml":     "id: [",
		"unknown name": strings.Replace(validDef, "name: message", "name: phone", 1),
		"no label":     strings.Replace(validDef, `label: Message`, `label: ""`, 1),
		"bad type":     strings.Replace(validDef, "type: textarea", "type: select", 1),
		"duplicate":    validDef + "  - {name: email, label: Again, type: email}\n",
		"missing field": strings.Replace(validDef,
			"  - {name: message, label: Message, type: textarea}\n", "", 1),
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseFormDef([]byte(doc), "test"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRegisterForms_Override(t *testing.T) {
	t.Cleanup(func() {
		if err := registerEmbedded(); err != nil {
			t.Fatalf("restore embedded: %v", err)
		}
	})

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "contact.yaml"), []byte(validDef), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := RegisterForms([]string{filepath.Join(dir, "missing"), dir})
	if err != nil {
		t.Fatalf("RegisterForms: %v", err)
	}
	if n != 1 {
		t.Fatalf("loaded %d definitions, want 1", n)
	}
	fd, _ := GetFormDef(ContactFormID)
	if fd.Title != "Get in touch" {
		t.Fatalf("override not applied, title = %q", fd.Title)
	}
}

func TestRegisterForms_BadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("id: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := RegisterForms([]string{dir}); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := RegisterForms(nil); err == nil {
		t.Fatal("expected error for no directories")
	}
}
