// cmd/web/main.go
//
// Contact form – HTTP entry point.
//
// Start-up sequence
// -----------------
//
//  1. Load configuration (defaults → .env → conf/global.yaml → CONTACT_ env,
//     with `vault:` references resolved).
//
//  2. Start the rotating file logger (tees to console when running in a TTY
//     or when log.console is set).
//
//  3. Build the submission guard and register optional form overrides.
//
//  4. Build the chi router:
//
//     • request id, real ip
//     • request logger            – per-request zap logger + latency metric
//     • panic recovery            – inside the logger so panics are logged
//     • security headers          – CSP, frame, referrer policies
//     • HTTPS enforcement         – 308 for non-local plain HTTP
//     • /metrics                  – Prometheus exposition
//     • components                – contact form, health probe
//
//  5. Serve until SIGINT/SIGTERM, then drain in-flight requests.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	contactcomp "github.com/yanizio/contact/components/contact"
	_ "github.com/yanizio/contact/components/health" // registers /healthz
	"github.com/yanizio/contact/internal/component"
	"github.com/yanizio/contact/internal/config"
	"github.com/yanizio/contact/internal/form"
	"github.com/yanizio/contact/internal/logger"
	"github.com/yanizio/contact/internal/middleware"
	"github.com/yanizio/contact/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("contact: %v", err)
	}
}

func run(ctx context.Context) error {
	//
	// ── 1.  Configuration ───────────────────────────────────────────────
	//
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	//
	// ── 2.  Logger ──────────────────────────────────────────────────────
	//
	lg, err := logger.New(logger.Options{
		Dir:     cfg.Log.Dir,
		Level:   cfg.Log.Level,
		Console: cfg.Log.Console || logger.RunningInTTY(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	//
	// ── 3.  Forms ───────────────────────────────────────────────────────
	//
	guard, err := form.NewGuard(form.GuardOptions{
		Key:         cfg.Form.CSRFKey,
		TokenMaxAge: cfg.Form.TokenMaxAge,
		MinFillTime: cfg.Form.MinFillTime,
		MaxFillTime: cfg.Form.MaxFillTime,
	})
	if err != nil {
		return err
	}
	if dir := cfg.Form.DefinitionsDir; dir != "" {
		n, err := form.RegisterForms([]string{dir})
		if err != nil {
			return err
		}
		lg.Infow("form overrides registered", "dir", dir, "count", n)
	}
	component.Register(contactcomp.New(guard))

	//
	// ── 4.  Router ──────────────────────────────────────────────────────
	//
	r := newRouter(lg, cfg.HTTP.ForceHTTPS)
	component.Mount(r)

	//
	// ── 5.  Serve ───────────────────────────────────────────────────────
	//
	return server.Run(ctx, server.New(cfg.HTTP, r), cfg.HTTP.ShutdownTimeout)
}

// newRouter returns the root router with the middleware chain and /metrics.
// Recoverer sits inside RequestLogger so a panicking request is still logged
// and timed with its 500.
func newRouter(lg *zap.SugaredLogger, forceHTTPS bool) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(lg))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Security)
	r.Use(middleware.ForceHTTPS(forceHTTPS))

	r.Handle("/metrics", promhttp.Handler())
	return r
}
