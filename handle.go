package cookiesession

import (
	"net/http"

	"github.com/golang/glog"
)

// Handle binds one request to at most one session. It lazily decodes the
// inbound cookie on first access and re-encodes the session into an outbound
// cookie when WriteBack runs. A Handle is owned by a single request and is
// not safe for concurrent use, which is fine: nothing outside the handling
// of that request ever references it.
type Handle struct {
	mgr     *Manager
	req     *http.Request
	sess    *Session
	cleared bool
	done    bool
}

// Session returns the request's session, decoding the inbound cookie on the
// first call. Any decode failure (tampered, expired, malformed, wrong key)
// degrades to a fresh anonymous session; a bad cookie is never the request's
// problem. Subsequent calls return the same instance.
func (h *Handle) Session() *Session {
	if h.sess != nil {
		return h.sess
	}

	cookie, err := h.req.Cookie(h.mgr.cookie)
	if err != nil {
		h.sess = newSession()
		return h.sess
	}

	values, reason := decodeToken(cookie.Value, h.mgr.secret)
	if reason != "" {
		glog.V(2).Infof("rejected inbound session token (%s)", reason)
		h.mgr.metrics.rejectedToken(reason)
		h.sess = newSession()
		return h.sess
	}

	h.mgr.metrics.restoredSession()
	h.sess = restoredSession(values)
	return h.sess
}

// Replace swaps the entire session for the given values and marks it as
// newly created. A nil map is treated as an empty session; use Clear to
// remove the cookie instead.
func (h *Handle) Replace(values map[string]any) {
	if values == nil {
		values = make(map[string]any)
	}
	h.sess = &Session{Values: values, isNew: true}
	h.cleared = false
}

// Clear marks the session for removal: WriteBack will instruct the client to
// drop the cookie instead of re-encoding. This is distinct from replacing
// the session with empty data.
func (h *Handle) Clear() {
	h.cleared = true
	h.sess = newSession()
}

// IsNew reports whether no valid inbound token was decoded for this request.
func (h *Handle) IsNew() bool {
	return h.Session().isNew
}

// IsChanged reports whether the session is new or its data differs from the
// snapshot taken at decode time.
func (h *Handle) IsChanged() bool {
	return h.Session().Changed()
}

// IsPopulated reports whether the session currently holds any data.
func (h *Handle) IsPopulated() bool {
	return h.Session().Populated()
}

// WriteBack attaches the outbound session cookie. It must run exactly once
// per request, after all handler logic that might mutate the session and
// strictly before the response is transmitted; calls after the first are
// no-ops. The policy:
//
//   - session never accessed: the client's cookie is left alone
//   - session cleared: a removal cookie is sent
//   - session populated: a freshly signed cookie is sent, resetting the
//     expiry window regardless of the inbound token's original expiry
//   - session empty: no cookie
//
// An encoding failure is logged and swallowed; the response always proceeds,
// at worst without a session cookie.
func (h *Handle) WriteBack(w http.ResponseWriter) {
	if h.done {
		return
	}
	h.done = true

	switch {
	case h.cleared:
		h.mgr.removeCookie(w, h.req)
		h.mgr.metrics.writeBack("removed")

	case h.sess == nil:
		// Never accessed: nothing to do.

	case h.sess.Populated():
		token, err := EncodeToken(h.sess.Values, h.mgr.maxAge, h.mgr.secret)
		if err != nil {
			glog.Warningf("session write-back failed: %v", err)
			h.mgr.metrics.writeBack("failed")
			return
		}
		h.mgr.setCookie(w, h.req, token)
		h.mgr.metrics.writeBack("written")

	default:
		// Accessed but empty and not cleared: an empty session produces no
		// cookie.
	}
}
