package cookiesession

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewManagerValidation(t *testing.T) {
	if _, err := NewManager(Config{MaxAge: time.Hour}); !errors.Is(err, ErrNoSecret) {
		t.Errorf("missing secret: got %v, want ErrNoSecret", err)
	}
	if _, err := NewManager(Config{Secret: []byte("k")}); !errors.Is(err, ErrInvalidMaxAge) {
		t.Errorf("zero max age: got %v, want ErrInvalidMaxAge", err)
	}
	if _, err := NewManager(Config{Secret: []byte("k"), MaxAge: -time.Hour}); !errors.Is(err, ErrInvalidMaxAge) {
		t.Errorf("negative max age: got %v, want ErrInvalidMaxAge", err)
	}
	if _, err := NewManager(Config{Secret: []byte("k"), MaxAge: time.Hour}); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestManagerDefaults(t *testing.T) {
	mgr, err := NewManager(Config{Secret: []byte("k"), MaxAge: time.Hour})
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	h := mgr.Bind(httptest.NewRequest("GET", "/", nil))
	h.Session().Set("user", "alice")
	w := httptest.NewRecorder()
	h.WriteBack(w)

	c := w.Result().Cookies()[0]
	if c.Name != "session" {
		t.Errorf("default cookie name = %q, want session", c.Name)
	}
	if c.Path != "/" {
		t.Errorf("default cookie path = %q, want /", c.Path)
	}
}

func TestManagerCustomCookieName(t *testing.T) {
	mgr, err := NewManager(Config{
		Secret:     []byte("k"),
		MaxAge:     time.Hour,
		CookieName: "my_app",
		CookiePath: "/app",
	})
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	h := mgr.Bind(httptest.NewRequest("GET", "/", nil))
	h.Session().Set("user", "alice")
	w := httptest.NewRecorder()
	h.WriteBack(w)

	c := w.Result().Cookies()[0]
	if c.Name != "my_app" || c.Path != "/app" {
		t.Errorf("cookie name/path = %q/%q", c.Name, c.Path)
	}
}
