/*
Package cookiesession provides stateless, signed, expiring cookie sessions for Go web applications.

Session state is carried entirely inside the cookie as a signed token, so no
server-side store is needed: any process holding the shared HMAC secret can
verify and decode a session. The package covers the token codec
(serialize/verify/expire) and the per-request lifecycle that binds a session
to the inbound cookie and writes it back exactly once before the response is
sent.

Key Features:

  - Stateless: no database, cache, or session store to deploy or clean up.
  - Integrity and freshness: HMAC-SHA256 signatures verified in constant
    time before any payload parsing, plus an embedded expiry.
  - Fail open to anonymous: tampered, expired, or malformed tokens silently
    become a fresh empty session, never a request error.
  - Secure default cookie settings (HttpOnly, SameSite).
  - Deferred write-back: the cookie is attached once, just before the
    response headers are sent, and the expiry window resets on every
    response that touches a non-empty session.
  - Optional Prometheus counters for token rejections and write-backs.

Usage:

Create a Manager once at startup and mount its middleware; handlers reach the
session through the request context.

	mgr, err := cookiesession.NewManager(cookiesession.Config{
		Secret: []byte(os.Getenv("SESSION_SECRET")),
		MaxAge: time.Hour,
	})
	if err != nil {
		log.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		session := cookiesession.FromRequest(r).Session()
		session.Set("user_id", 42)
	})
	http.ListenAndServe(":8080", mgr.Handler(mux))

Integrations that cannot use middleware create the handle themselves and are
required to call WriteBack exactly once before writing the response:

	h := mgr.Bind(r)
	h.Session().Set("user_id", 42)
	h.WriteBack(w)
	w.Write(body)

Token Format:

	base64url(payload) "." expirySeconds "." base64url(HMAC-SHA256(payload.expiry, secret))

The payload is the session data as JSON, base64url-encoded without padding.
A token that decodes successfully always yields exactly the data that was
encoded, and only before its expiry.

Thread Safety:

The Manager is immutable after construction and safe for concurrent use by
any number of requests. A Handle and its Session belong to a single request
and must not be shared across goroutines.
*/
package cookiesession
