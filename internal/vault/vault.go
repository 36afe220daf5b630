// internal/vault/vault.go
//
// Vault client wrapper.
//
// Context
// -------
//   - Resolves configuration references of the form
//     `vault:<mount>/<path>#<key>` against a KV-v2 secrets engine.
//   - Wraps the HashiCorp Vault Go SDK with a small per-key cache so the
//     same reference read twice during start-up costs one round trip.
//     Concurrent misses for one key share a single request (singleflight).
//
// Public workflow
// ---------------
//  1. cli, err := vault.New(vault.Options{Addr: addr, Token: tok})
//  2. val, err := cli.Resolve(ctx, "vault:secret/contact#csrf_key")
//
// Empty options fall back to VAULT_ADDR and VAULT_TOKEN.
package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	vault "github.com/hashicorp/vault/api"
	"golang.org/x/sync/singleflight"
)

// Prefix marks a configuration value as a Vault reference.
const Prefix = "vault:"

// ErrBadRef is returned for references that do not match
// `vault:<mount>/<path>#<key>`.
var ErrBadRef = errors.New("vault: malformed reference")

//
// SECTION 1.  Public façade
//

// Options configures New.
type Options struct {
	Addr    string
	Token   string
	Timeout time.Duration
}

// Client is safe for concurrent use.  Zero value is invalid.
type Client struct {
	api *vault.Client

	cacheMu sync.RWMutex
	cache   map[string]string // canonical mount/path#key → value.
	group   singleflight.Group
}

// New constructs a Vault client.  It does not contact the server.
func New(opts Options) (*Client, error) {
	cfg := vault.DefaultConfig()
	if cfg.Error != nil {
		return nil, fmt.Errorf("vault env cfg: %w", cfg.Error)
	}
	if opts.Addr != "" {
		cfg.Address = opts.Addr
	}
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}

	apiCli, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	if opts.Token != "" {
		apiCli.SetToken(opts.Token)
	}

	return &Client{
		api:   apiCli,
		cache: make(map[string]string),
	}, nil
}

// IsRef reports whether s is a Vault reference.
func IsRef(s string) bool { return strings.HasPrefix(s, Prefix) }

// Resolve fetches the secret named by ref.
func (c *Client) Resolve(ctx context.Context, ref string) (string, error) {
	mount, path, key, err := ParseRef(ref)
	if err != nil {
		return "", err
	}
	return c.GetKV(ctx, mount, path, key)
}

// GetKV reads one key from a KV-v2 secret and caches the result for the
// lifetime of the client.
func (c *Client) GetKV(ctx context.Context, mount, path, key string) (string, error) {
	canonical := mount + "/" + path + "#" + key

	c.cacheMu.RLock()
	if v, ok := c.cache[canonical]; ok {
		c.cacheMu.RUnlock()
		return v, nil
	}
	c.cacheMu.RUnlock()

	v, err, _ := c.group.Do(canonical, func() (any, error) {
		return c.read(ctx, mount, path, key)
	})
	if err != nil {
		return "", err
	}
	sval := v.(string)

	c.cacheMu.Lock()
	c.cache[canonical] = sval
	c.cacheMu.Unlock()
	return sval, nil
}

// read performs one uncached KV-v2 lookup.
func (c *Client) read(ctx context.Context, mount, path, key string) (string, error) {
	// KV-v2 nests the payload under data/ in both the path and the body.
	sec, err := c.api.Logical().ReadWithContext(ctx, mount+"/data/"+path)
	if err != nil {
		return "", fmt.Errorf("vault get %s/%s: %w", mount, path, err)
	}
	if sec == nil || sec.Data == nil {
		return "", fmt.Errorf("vault: secret %s/%s not found", mount, path)
	}

	data, ok := sec.Data["data"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("vault: secret %s/%s has no data", mount, path)
	}
	raw, ok := data[key]
	if !ok {
		return "", fmt.Errorf("vault: key %q not found in secret %s/%s", key, mount, path)
	}
	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("vault: value at %s/%s#%s is not a string", mount, path, key)
	}
	return sval, nil
}

//
// SECTION 2.  Helpers
//

// ParseRef splits `vault:<mount>/<path>#<key>`.
func ParseRef(ref string) (mount, path, key string, err error) {
	if !IsRef(ref) {
		return "", "", "", fmt.Errorf("%w: %q", ErrBadRef, ref)
	}
	body := strings.TrimPrefix(ref, Prefix)

	loc, key, ok := strings.Cut(body, "#")
	if !ok || key == "" {
		return "", "", "", fmt.Errorf("%w: %q missing #key", ErrBadRef, ref)
	}
	mount, path, ok = strings.Cut(loc, "/")
	if !ok || mount == "" || path == "" {
		return "", "", "", fmt.Errorf("%w: %q missing mount or path", ErrBadRef, ref)
	}
	return mount, path, key, nil
}
