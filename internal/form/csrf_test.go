package form

import (
	"encoding/base64"
	"encoding/binary"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

// testKey is 32 bytes, base64url without padding.
var testKey = base64.RawURLEncoding.EncodeToString([]byte(strings.Repeat("k", 32)))

func newTestGuard(t *testing.T, opts GuardOptions) *Guard {
	t.Helper()
	if opts.Key == "" {
		opts.Key = testKey
	}
	g, err := NewGuard(opts)
	if err != nil {
		t.Fatalf("NewGuard: %v", err)
	}
	return g
}

func TestGuard_TokenRoundTrip(t *testing.T) {
	g := newTestGuard(t, GuardOptions{})
	tok, err := g.GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if !g.VerifyToken(tok) {
		t.Fatal("fresh token rejected")
	}
}

func TestGuard_RejectsTampering(t *testing.T) {
	g := newTestGuard(t, GuardOptions{})
	tok, _ := g.GenerateToken()

	raw, _ := base64.RawURLEncoding.DecodeString(tok)
	raw[len(raw)-1] ^= 0xff
	if g.VerifyToken(base64.RawURLEncoding.EncodeToString(raw)) {
		t.Fatal("tampered signature accepted")
	}
	if g.VerifyToken("not-a-token") {
		t.Fatal("garbage accepted")
	}
	if g.VerifyToken("") {
		t.Fatal("empty token accepted")
	}
}

func TestGuard_RejectsForeignKey(t *testing.T) {
	a := newTestGuard(t, GuardOptions{})
	b := newTestGuard(t, GuardOptions{
		Key: base64.RawURLEncoding.EncodeToString([]byte(strings.Repeat("z", 32))),
	})
	tok, _ := a.GenerateToken()
	if b.VerifyToken(tok) {
		t.Fatal("token verified under a different key")
	}
}

func TestGuard_TokenExpiry(t *testing.T) {
	g := newTestGuard(t, GuardOptions{TokenMaxAge: time.Minute})
	base := time.Now()
	g.now = func() time.Time { return base }
	tok, _ := g.GenerateToken()

	g.now = func() time.Time { return base.Add(2 * time.Minute) }
	if g.VerifyToken(tok) {
		t.Fatal("expired token accepted")
	}

	g.now = func() time.Time { return base.Add(-2 * time.Minute) }
	if g.VerifyToken(tok) {
		t.Fatal("token from the future accepted")
	}
}

func TestNewGuard_KeyErrors(t *testing.T) {
	if _, err := NewGuard(GuardOptions{Key: "%%%"}); err == nil {
		t.Fatal("malformed key accepted")
	}
	short := base64.RawURLEncoding.EncodeToString([]byte("short"))
	if _, err := NewGuard(GuardOptions{Key: short}); err == nil {
		t.Fatal("short key accepted")
	}
	g, err := NewGuard(GuardOptions{})
	if err != nil {
		t.Fatalf("ephemeral key: %v", err)
	}
	if len(g.key) != minKeyLen {
		t.Fatalf("ephemeral key len = %d", len(g.key))
	}
}

func TestGuard_Check(t *testing.T) {
	g := newTestGuard(t, GuardOptions{MinFillTime: 2 * time.Second, MaxFillTime: time.Minute})
	base := time.Now()
	issuedAgo := func(d time.Duration) string {
		g.now = func() time.Time { return base.Add(-d) }
		tok, err := g.GenerateToken()
		if err != nil {
			t.Fatalf("GenerateToken: %v", err)
		}
		return tok
	}
	ok := issuedAgo(5 * time.Second)
	fast := issuedAgo(time.Second)
	stale := issuedAgo(time.Hour)
	g.now = func() time.Time { return base }

	cases := []struct {
		name string
		form url.Values
		want string
	}{
		{"ok", url.Values{"csrf_token": {ok}}, ""},
		{"no token", url.Values{}, MsgBadToken},
		{"too fast", url.Values{"csrf_token": {fast}}, MsgTooFast},
		{"expired", url.Values{"csrf_token": {stale}}, MsgExpired},
		// A client-supplied render time plays no part in the window.
		{"unsigned render time ignored", url.Values{
			"csrf_token": {fast},
			"render_ts":  {strconv.FormatInt(base.Add(-time.Hour).UnixMicro(), 10)},
		}, MsgTooFast},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fe := g.Check(tc.form)
			switch {
			case tc.want == "" && fe != nil:
				t.Fatalf("unexpected failure: %q", fe.Message)
			case tc.want != "" && fe == nil:
				t.Fatalf("want %q, got success", tc.want)
			case tc.want != "" && fe.Message != tc.want:
				t.Fatalf("message = %q, want %q", fe.Message, tc.want)
			}
			if fe != nil && fe.Name != "" {
				t.Fatalf("form-level error carries field name %q", fe.Name)
			}
		})
	}
}

func TestGuard_Check_RejectsBackdatedToken(t *testing.T) {
	g := newTestGuard(t, GuardOptions{MinFillTime: 2 * time.Second})
	base := time.Now()
	g.now = func() time.Time { return base }
	tok, _ := g.GenerateToken()

	// Rewrite the issue time to look older; the signature no longer matches.
	raw, _ := base64.RawURLEncoding.DecodeString(tok)
	binary.BigEndian.PutUint64(raw[nonceBytes:nonceBytes+8], uint64(base.Add(-time.Minute).UnixMicro()))
	forged := base64.RawURLEncoding.EncodeToString(raw)

	fe := g.Check(url.Values{"csrf_token": {forged}})
	if fe == nil || fe.Message != MsgBadToken {
		t.Fatalf("backdated token: got %+v, want %q", fe, MsgBadToken)
	}
}
