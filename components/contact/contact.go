// components/contact/contact.go
//
// Contact component – the contact form page, its submit handler, per-field
// validation for the browser script, and a JSON API.
//
//------------------------------------------------------------------------------

package contact

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/contact/internal/component"
	"github.com/yanizio/contact/internal/contact"
	"github.com/yanizio/contact/internal/form"
	"github.com/yanizio/contact/internal/logger"
	"github.com/yanizio/contact/internal/metrics"
	"github.com/yanizio/contact/internal/ua"
	"github.com/yanizio/contact/internal/view"
)

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Paths served by the component.
const (
	PagePath     = "/contact"
	ValidatePath = "/contact/validate"
	APIPath      = "/api/contact"
	ScriptPath   = "/static/contact.js"
)

// maxBody caps request bodies for the POST endpoints.
const maxBody = 64 << 10

//go:embed static/contact.js
var script []byte

// Component serves the contact form.
type Component struct {
	guard  *form.Guard
	formID string
}

// New returns the component.  guard signs and checks the hidden form fields.
func New(guard *form.Guard) *Component {
	return &Component{guard: guard, formID: form.ContactFormID}
}

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "contact" }

// Routes registers page, submit, validation, API, and script endpoints.
func (c *Component) Routes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, PagePath, http.StatusSeeOther)
	})
	r.Get(PagePath, c.handlePage)
	r.Post(PagePath, c.handleSubmit)
	r.Post(ValidatePath, c.handleValidate)
	r.Post(APIPath, c.handleAPI)
	r.Get(ScriptPath, c.handleScript)
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handlePage(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, form.RenderOptions{}, nil)
}

func (c *Component) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	log := logger.FromContext(r.Context()).With(ua.Parse(r.UserAgent()).Fields()...)

	cf, err := form.HandleSubmit(c.guard, c.formID, r)
	switch {
	case err == nil:
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeAccepted).Inc()
		snap, _ := cf.Submitted()
		log.Infow("contact form submitted", "has_message", snap.HasMessage())
		c.render(w, r, http.StatusOK, form.RenderOptions{Values: cf.Values()}, &snap)

	case form.IsValidationError(err):
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		fields := form.FieldErrors(err)
		for _, fe := range fields {
			metrics.FieldErrorsTotal.WithLabelValues(fe.Name).Inc()
		}
		log.Debugw("contact form invalid", "errors", len(fields))
		c.render(w, r, http.StatusUnprocessableEntity, form.RenderOptions{
			Values: cf.Values(),
			Errors: cf.Errors(),
		}, nil)

	case form.IsSecurityError(err):
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		log.Warnw("contact form rejected", "reason", form.FormError(err))
		status := http.StatusBadRequest
		if form.IsTooLarge(err) {
			status = http.StatusRequestEntityTooLarge
		}
		c.render(w, r, status, form.RenderOptions{
			Values:    valuesFrom(r.PostForm),
			FormError: form.FormError(err),
		}, nil)

	default:
		log.Errorw("contact form submit failed", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// fieldResult is the body returned by the validate endpoint.
type fieldResult struct {
	Field string `json:"field"`
	Error string `json:"error,omitempty"`
}

func (c *Component) handleValidate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseForm(); err != nil {
		if form.IsTooLarge(err) {
			writeJSON(w, r, http.StatusRequestEntityTooLarge, map[string]string{"error": form.MsgTooLarge})
			return
		}
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "malformed form body"})
		return
	}
	f, err := contact.ParseField(r.PostForm.Get("field"))
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	msg, _ := contact.ValidateField(f, r.PostForm.Get("value"))
	writeJSON(w, r, http.StatusOK, fieldResult{Field: f.String(), Error: msg})
}

// apiResult is the body returned by the JSON API.
type apiResult struct {
	Submitted *contact.Values   `json:"submitted,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

func (c *Component) handleAPI(w http.ResponseWriter, r *http.Request) {
	var in contact.Values
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		if form.IsTooLarge(err) {
			writeJSON(w, r, http.StatusRequestEntityTooLarge, map[string]string{"error": form.MsgTooLarge})
			return
		}
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "malformed JSON body"})
		return
	}

	cf := contact.New()
	for _, f := range contact.Fields {
		_ = cf.SetField(f, in.Get(f)) // f is always known
	}
	if !cf.Submit() {
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		errs := cf.Errors()
		for f := range errs {
			metrics.FieldErrorsTotal.WithLabelValues(f.String()).Inc()
		}
		writeJSON(w, r, http.StatusUnprocessableEntity, apiResult{Errors: errs.Strings()})
		return
	}

	metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeAccepted).Inc()
	snap, _ := cf.Submitted()
	logger.FromContext(r.Context()).
		With(ua.Parse(r.UserAgent()).Fields()...).
		Infow("contact form submitted", "api", true, "has_message", snap.HasMessage())
	writeJSON(w, r, http.StatusOK, apiResult{Submitted: &snap})
}

func (c *Component) handleScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(script)
}

/*──────────────────────────── Helpers ──────────────────────────────────────*/

// render writes the contact page.  submitted is nil unless a submit just
// succeeded.
func (c *Component) render(w http.ResponseWriter, r *http.Request, status int, opts form.RenderOptions, submitted *contact.Values) {
	log := logger.FromContext(r.Context())

	fd, ok := form.GetFormDef(c.formID)
	if !ok {
		log.Errorw("form definition missing", "form", c.formID)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	opts.Action = PagePath
	opts.ValidateURL = ValidatePath
	opts.Guard = c.guard
	markup, err := form.RenderForm(c.formID, opts)
	if err != nil {
		log.Errorw("render form", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	// Every render carries a fresh CSRF token.
	w.Header().Set("Cache-Control", "no-store")
	if err := view.Render(w, status, view.PageContact, view.ContactData{
		Title:     fd.Title,
		Form:      markup,
		Submitted: submitted,
		Script:    ScriptPath,
	}); err != nil {
		log.Errorw("render page", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// valuesFrom copies the contact fields out of a posted form.
func valuesFrom(posted url.Values) contact.Values {
	var v contact.Values
	for _, f := range contact.Fields {
		_ = v.Set(f, posted.Get(f.String()))
	}
	return v
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.FromContext(r.Context()).Warnw("write json", "err", err)
	}
}
