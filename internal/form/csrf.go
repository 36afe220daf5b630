// internal/form/csrf.go
//
// Forms subsystem: stateless CSRF tokens and submission timing.
//
// Context
//   Every rendered form embeds a hidden `csrf_token`.  The server verifies it
//   on POST to make sure the request came from a form it rendered, recently.
//   The signed issue time doubles as the render time for the fill-time
//   window, so the client cannot forge it.  The token is stateless:
//
//      base64url( nonce | unixMicro | HMAC_SHA256(key, nonce+unixMicro) )
//
//   •  nonce – 16 random bytes.
//   •  unixMicro – issue time, 8 bytes, big-endian.
//   •  HMAC – keyed with the configured secret.
//
//   No server-side session is required, so any instance can verify a token
//   issued by any other instance that shares the key.
//
//------------------------------------------------------------------------------

package form

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	nonceBytes = 16
	tokenBytes = nonceBytes + 8 + sha256.Size // nonce + ts + sig
	minKeyLen  = 32
)

// Default windows applied when GuardOptions leaves them zero.
const (
	DefaultTokenMaxAge = 2 * time.Hour
	DefaultMaxFillTime = 30 * time.Minute
)

// GuardOptions configures a Guard.
type GuardOptions struct {
	// Key is a base64url secret of at least 32 bytes.  Empty means generate
	// an ephemeral key (tokens stop verifying after a restart).
	Key string
	// TokenMaxAge bounds how old a CSRF token may be.
	TokenMaxAge time.Duration
	// MinFillTime rejects submissions faster than this.  Zero disables it.
	MinFillTime time.Duration
	// MaxFillTime rejects forms rendered longer ago than this.
	MaxFillTime time.Duration
}

// Guard issues and verifies the hidden security fields of a form.  It is
// safe for concurrent use.
type Guard struct {
	key     []byte
	maxAge  time.Duration
	minFill time.Duration
	maxFill time.Duration
	now     func() time.Time
}

// NewGuard builds a Guard from opts.  A malformed or short key is an error.
func NewGuard(opts GuardOptions) (*Guard, error) {
	g := &Guard{
		maxAge:  opts.TokenMaxAge,
		minFill: opts.MinFillTime,
		maxFill: opts.MaxFillTime,
		now:     time.Now,
	}
	if g.maxAge <= 0 {
		g.maxAge = DefaultTokenMaxAge
	}
	if g.maxFill <= 0 {
		g.maxFill = DefaultMaxFillTime
	}

	if opts.Key == "" {
		g.key = make([]byte, minKeyLen)
		if _, err := rand.Read(g.key); err != nil {
			return nil, fmt.Errorf("generate csrf key: %w", err)
		}
		zap.S().Warnw("form.csrf_key not set, using an ephemeral key")
		return g, nil
	}

	b, err := base64.RawURLEncoding.DecodeString(opts.Key)
	if err != nil {
		return nil, fmt.Errorf("decode csrf key: %w", err)
	}
	if len(b) < minKeyLen {
		return nil, fmt.Errorf("csrf key is %d bytes, want at least %d", len(b), minKeyLen)
	}
	g.key = b
	return g, nil
}

// GenerateToken creates a new CSRF token.  Call once per form render.
func (g *Guard) GenerateToken() (string, error) {
	nonce := make([]byte, nonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(g.now().UnixMicro()))

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = append(buf, g.sign(nonce, ts)...)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// VerifyToken returns true if tok passes HMAC and age checks.
func (g *Guard) VerifyToken(tok string) bool {
	_, ok := g.verify(tok)
	return ok
}

// verify checks tok and returns its signed issue time.
func (g *Guard) verify(tok string) (time.Time, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return time.Time{}, false
	}

	nonce := raw[:nonceBytes]
	tsBytes := raw[nonceBytes : nonceBytes+8]
	sig := raw[nonceBytes+8:]

	if !hmac.Equal(sig, g.sign(nonce, tsBytes)) {
		return time.Time{}, false
	}

	issued := time.UnixMicro(int64(binary.BigEndian.Uint64(tsBytes)))
	now := g.now()
	if now.Sub(issued) > g.maxAge || issued.Sub(now) > time.Minute {
		return time.Time{}, false
	}
	return issued, true
}

func (g *Guard) sign(nonce, ts []byte) []byte {
	mac := hmac.New(sha256.New, g.key)
	mac.Write(nonce)
	mac.Write(ts)
	return mac.Sum(nil)
}
