package cookiesession

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ErrNoSecret is returned when no HMAC secret is configured.
	ErrNoSecret = errors.New("missing secret")

	// ErrInvalidMaxAge is returned when MaxAge is zero or negative.
	ErrInvalidMaxAge = errors.New("max age must be positive")
)

// Manager holds the immutable codec configuration shared by all requests.
// It is read-only after NewManager returns and therefore safe for concurrent
// use without synchronization.
type Manager struct {
	secret       []byte
	maxAge       time.Duration
	cookie       string
	cookiePath   string
	cookieDomain string
	httpOnly     bool
	secure       *bool
	sameSite     http.SameSite
	metrics      *metrics
}

type Config struct {
	// Secret is the shared HMAC key. Required; leaving it empty is a fatal
	// configuration error at startup, never at request time.
	Secret []byte

	// MaxAge is how long a freshly written token stays valid. It is also the
	// cookie's own max-age. Required, must be positive.
	MaxAge time.Duration

	CookieName   string
	CookiePath   string
	CookieDomain string
	HttpOnly     *bool
	Secure       *bool
	SameSite     http.SameSite

	// MetricsRegistry enables Prometheus instrumentation when non-nil.
	MetricsRegistry prometheus.Registerer
}

// NewManager validates cfg and returns a Manager. Configuration problems are
// the only errors this package raises at initialization; everything that can
// go wrong with an individual token degrades silently at request time
// instead.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrNoSecret
	}
	if cfg.MaxAge <= 0 {
		return nil, ErrInvalidMaxAge
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "session"
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = "/"
	}

	m := &Manager{
		secret:       cfg.Secret,
		maxAge:       cfg.MaxAge,
		cookie:       cfg.CookieName,
		cookiePath:   cfg.CookiePath,
		cookieDomain: cfg.CookieDomain,
		httpOnly:     true, // Default
		secure:       cfg.Secure,
		sameSite:     http.SameSiteLaxMode, // Default
	}

	if cfg.HttpOnly != nil {
		m.httpOnly = *cfg.HttpOnly
	}

	if cfg.SameSite != 0 {
		m.sameSite = cfg.SameSite
	}

	// Security: SameSite=None requires Secure=true.
	// Browsers reject SameSite=None cookies if the Secure attribute is missing.
	// We enforce this even if the user didn't explicitly set Secure=true.
	if m.sameSite == http.SameSiteNoneMode {
		secure := true
		m.secure = &secure
	}

	if cfg.MetricsRegistry != nil {
		m.metrics = newMetrics(cfg.MetricsRegistry)
	}

	return m, nil
}

// Bind creates the per-request session handle. Exactly one handle should be
// created per request, and its WriteBack must run exactly once before the
// response is written; Handler does both for integrations that can use
// middleware.
func (m *Manager) Bind(r *http.Request) *Handle {
	return &Handle{mgr: m, req: r}
}

func (m *Manager) setCookie(w http.ResponseWriter, r *http.Request, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    value,
		Path:     m.cookiePath,
		Domain:   m.cookieDomain,
		Expires:  time.Now().Add(m.maxAge),
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: m.httpOnly,
		Secure:   m.isSecure(r),
		SameSite: m.sameSite,
	})
}

// removeCookie instructs the client to drop the session cookie. The removal
// cookie carries the same attribute set as a regular one so browsers match
// and delete the original.
func (m *Manager) removeCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    "",
		Path:     m.cookiePath,
		Domain:   m.cookieDomain,
		MaxAge:   -1,
		HttpOnly: m.httpOnly,
		Secure:   m.isSecure(r),
		SameSite: m.sameSite,
	})
}

func (m *Manager) isSecure(r *http.Request) bool {
	if m.secure != nil {
		return *m.secure
	}
	return r.TLS != nil
}
