// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from its overlay layers:
//
//   • defaults from Default()                  – lowest precedence,
//   • optional `.env`                          – dotenv values,
//   • optional `conf/global.yaml`              – primary static file,
//   • `CONTACT_`-prefixed environment overrides – highest precedence.
//
// Any string value beginning with `vault:` is resolved through the Vault
// client before validation, so the model never holds Vault URIs once Load
// returns.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`; durations are written as "10s", "30m".
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr      string        `koanf:"listen_addr"      validate:"required,hostname_port"`
	ForceHTTPS      bool          `koanf:"force_https"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

//
// Log section
//

// Log controls the zap logger.  Dir is relative to Paths.Root unless
// absolute.
type Log struct {
	Level   string `koanf:"level"   validate:"oneof=debug info warn error"`
	Dir     string `koanf:"dir"     validate:"required"`
	Console bool   `koanf:"console"`
}

//
// Form section
//

// Form configures the submission guard and optional definition overrides.
//
// CSRFKey is a base64url secret of at least 32 bytes, usually a
// `vault:` reference.  When empty an ephemeral key is generated at start-up.
type Form struct {
	CSRFKey        string        `koanf:"csrf_key"        validate:"omitempty,base64rawurl"`
	TokenMaxAge    time.Duration `koanf:"token_max_age"   validate:"gt=0"`
	MinFillTime    time.Duration `koanf:"min_fill_time"   validate:"gte=0"`
	MaxFillTime    time.Duration `koanf:"max_fill_time"   validate:"gtfield=MinFillTime"`
	DefinitionsDir string        `koanf:"definitions_dir"`
}

//
// Vault section
//

// Vault is only consulted when some value carries a `vault:` prefix.  Empty
// fields fall back to VAULT_ADDR and VAULT_TOKEN.
type Vault struct {
	Addr  string `koanf:"addr"  validate:"omitempty,url"`
	Token string `koanf:"token"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime and never set in YAML or env.
type Paths struct {
	Root string // CONTACT_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads.
type Config struct {
	HTTP  HTTP  `koanf:"http"`
	Log   Log   `koanf:"log"`
	Form  Form  `koanf:"form"`
	Vault Vault `koanf:"vault"`
	Paths Paths `koanf:"-"` // not loaded from config files
}

// Default returns the configuration used when no file or env sets a key.
func Default() Config {
	return Config{
		HTTP: HTTP{
			ListenAddr:      ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: Log{
			Level: "info",
			Dir:   "logs",
		},
		Form: Form{
			TokenMaxAge: 2 * time.Hour,
			MaxFillTime: 30 * time.Minute,
		},
	}
}
