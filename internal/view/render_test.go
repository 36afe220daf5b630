package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yanizio/contact/internal/contact"
)

func TestRender_ContactWithoutSubmission(t *testing.T) {
	rr := httptest.NewRecorder()
	err := Render(rr, http.StatusOK, PageContact, ContactData{
		Title: "Contact Form",
		Form:  `<form></form>`,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<h1>Contact Form</h1>") {
		t.Fatalf("header missing:\n%s", body)
	}
	if !strings.Contains(body, "<form></form>") {
		t.Fatal("form markup escaped or missing")
	}
	if strings.Contains(body, "Display") {
		t.Fatal("summary rendered without a submission")
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content-type = %q", ct)
	}
}

func TestRender_SummaryOmitsEmptyMessage(t *testing.T) {
	out, err := RenderToString(PageContact, ContactData{
		Title:     "Contact Form",
		Submitted: &contact.Values{FirstName: "Jackson", LastName: "Henry", Email: "Jack@email.com"},
	})
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`data-testid="firstnameDisplay">Jackson</span>`,
		`data-testid="lastnameDisplay">Henry</span>`,
		`data-testid="emailDisplay">Jack@email.com</span>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
	if strings.Contains(html, "messageDisplay") {
		t.Error("message display rendered for empty message")
	}
}

func TestRender_SummaryWithMessage(t *testing.T) {
	out, err := RenderToString(PageContact, ContactData{
		Submitted: &contact.Values{FirstName: "Jackson", LastName: "Henry", Email: "Jack@email.com", Message: "Message"},
	})
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	if !strings.Contains(string(out), `data-testid="messageDisplay">Message</span>`) {
		t.Errorf("message display missing:\n%s", out)
	}
}

func TestRender_EscapesSubmittedValues(t *testing.T) {
	out, err := RenderToString(PageContact, ContactData{
		Submitted: &contact.Values{FirstName: "<script>", LastName: "x", Email: "a@b.co"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatal("submitted value not escaped")
	}
}

func TestRender_UnknownPage(t *testing.T) {
	if _, err := RenderToString("nope", nil); err == nil {
		t.Fatal("unknown page rendered")
	}
}
