package cookiesession

import "encoding/json"

// Session holds the data for one request's session. Values is a plain JSON
// object; the bookkeeping needed for change detection lives in unexported
// fields so it can never leak into the encoded payload.
type Session struct {
	Values map[string]any

	isNew bool
	prior string
}

func newSession() *Session {
	return &Session{
		Values: make(map[string]any),
		isNew:  true,
	}
}

// restoredSession wraps values decoded from a valid inbound token. The
// snapshot taken here is what Changed compares against later.
func restoredSession(values map[string]any) *Session {
	if values == nil {
		values = make(map[string]any)
	}
	s := &Session{Values: values}
	s.prior = s.fingerprint()
	return s
}

// fingerprint returns the serialized form of the session data.
// encoding/json emits object keys in sorted order, so equal content always
// produces an equal fingerprint regardless of insertion order.
func (s *Session) fingerprint() string {
	b, err := json.Marshal(s.Values)
	if err != nil {
		// Unserializable data is reported (and logged) at write-back.
		// Here it just counts as a change.
		return ""
	}
	return string(b)
}

// IsNew reports whether this session was freshly created for the current
// request, i.e. no valid inbound token was decoded into it.
func (s *Session) IsNew() bool {
	return s.isNew
}

// Changed reports whether the session needs to be re-encoded: it is either
// new or its data no longer matches the snapshot taken at decode time.
func (s *Session) Changed() bool {
	return s.isNew || s.fingerprint() != s.prior
}

// Populated reports whether the session currently holds any data.
func (s *Session) Populated() bool {
	return len(s.Values) > 0
}

// Get retrieves a value from the session.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.Values[key]
	return v, ok
}

// Set adds or updates a value in the session.
func (s *Session) Set(key string, value any) {
	s.Values[key] = value
}

// Delete removes a value from the session.
func (s *Session) Delete(key string) {
	delete(s.Values, key)
}

// Clear removes all values from the session.
func (s *Session) Clear() {
	s.Values = make(map[string]any)
}

// GetString retrieves a string value. Returns "" if not found or type mismatch.
func (s *Session) GetString(key string) string {
	v, _ := s.Values[key].(string)
	return v
}

// GetBool retrieves a bool value. Returns false if not found or type mismatch.
func (s *Session) GetBool(key string) bool {
	v, _ := s.Values[key].(bool)
	return v
}

// GetFloat64 retrieves a float64 value. Returns 0 if not found or type mismatch.
func (s *Session) GetFloat64(key string) float64 {
	v, _ := s.Values[key].(float64)
	return v
}

// GetInt retrieves an integer value. JSON decoding produces float64 numbers,
// so both float64 and int are accepted. Returns 0 if not found or type mismatch.
func (s *Session) GetInt(key string) int {
	switch v := s.Values[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
