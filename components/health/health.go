// components/health/health.go
//
// Health component – liveness probe for load balancers and orchestrators.
package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/contact/internal/component"
)

// Path is the probe endpoint.
const Path = "/healthz"

// compile-time assertion
var _ component.Component = (*Comp)(nil)

// Comp implements component.Component; it holds no state.
type Comp struct{}

func (c *Comp) Name() string { return "health" }

func (c *Comp) Routes(r chi.Router) {
	r.Get(Path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte("ok"))
	})
}

func init() { component.Register(&Comp{}) }
