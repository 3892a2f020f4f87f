package cookiesession

import (
	"context"
	"net/http"
)

type contextKey struct{}

// Handler returns middleware that binds a session Handle into the request
// context and performs the write-back exactly once, immediately before the
// first byte of the response is sent. Handlers reach the session through
// FromRequest.
//
// Integrations that cannot use middleware must call Manager.Bind themselves
// and invoke Handle.WriteBack exactly once before writing the response; that
// ordering is a correctness requirement, since a late write-back silently
// drops session changes.
func (m *Manager) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := m.Bind(r)
		r = r.WithContext(context.WithValue(r.Context(), contextKey{}, h))

		sw := &sessionWriter{ResponseWriter: w, handle: h}
		next.ServeHTTP(sw, r)

		// Handlers that never write a byte still need the cookie attached
		// before the server finalizes the implicit response.
		h.WriteBack(w)
	})
}

// FromRequest returns the Handle bound by Handler, or nil if the request did
// not pass through the middleware.
func FromRequest(r *http.Request) *Handle {
	return FromContext(r.Context())
}

// FromContext returns the Handle carried in ctx, or nil.
func FromContext(ctx context.Context) *Handle {
	h, _ := ctx.Value(contextKey{}).(*Handle)
	return h
}

// sessionWriter triggers the session write-back the moment the response
// headers are about to leave, so handlers can keep mutating the session
// right up until they start writing.
type sessionWriter struct {
	http.ResponseWriter
	handle      *Handle
	wroteHeader bool
}

func (sw *sessionWriter) WriteHeader(code int) {
	if !sw.wroteHeader {
		sw.wroteHeader = true
		sw.handle.WriteBack(sw.ResponseWriter)
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *sessionWriter) Write(b []byte) (int, error) {
	if !sw.wroteHeader {
		sw.WriteHeader(http.StatusOK)
	}
	return sw.ResponseWriter.Write(b)
}

// Unwrap supports http.ResponseController.
func (sw *sessionWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}
