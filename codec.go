package cookiesession

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Token wire format:
//
//	base64url(payload) "." expiryEpochSeconds "." base64url(HMAC-SHA256(payload.expiry, secret))
//
// base64 is raw (unpadded) URL encoding, so the whole token is cookie-safe
// without further escaping.

// Rejection reasons reported by decodeToken, used for debug logging and metrics.
const (
	rejectMalformed = "malformed"
	rejectSignature = "signature"
	rejectExpired   = "expired"
	rejectPayload   = "payload"
)

// EncodeToken serializes values into a signed token that expires maxAge from
// now. The only error path is unserializable data, which is a caller bug
// rather than a runtime condition.
func EncodeToken(values map[string]any, maxAge time.Duration, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", ErrNoSecret
	}
	if maxAge <= 0 {
		return "", ErrInvalidMaxAge
	}

	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	// Session plaintext transits this buffer; PutBuffer wipes it.
	defer PutBuffer(buf)

	if err := json.NewEncoder(buf).Encode(values); err != nil {
		return "", errors.Wrap(err, "serialize session payload")
	}
	payload := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})

	expiry := time.Now().Add(maxAge).Unix()
	body := base64.RawURLEncoding.EncodeToString(payload) + "." + strconv.FormatInt(expiry, 10)
	sig := base64.RawURLEncoding.EncodeToString(sign(body, secret))

	return body + "." + sig, nil
}

// DecodeToken verifies and deserializes a token produced by EncodeToken.
// Every failure mode collapses to ok == false: a tampered, expired, truncated
// or otherwise unusable token is simply an absent session, never an error.
func DecodeToken(token string, secret []byte) (map[string]any, bool) {
	values, reason := decodeToken(token, secret)
	return values, reason == ""
}

func decodeToken(token string, secret []byte) (map[string]any, string) {
	// Split off the trailing signature segment first.
	idx := strings.LastIndexByte(token, '.')
	if idx < 0 {
		return nil, rejectMalformed
	}
	body, encodedSig := token[:idx], token[idx+1:]

	sig, err := base64.RawURLEncoding.DecodeString(encodedSig)
	if err != nil {
		return nil, rejectMalformed
	}

	// Security: the HMAC is verified in constant time, and before any other
	// part of the token is interpreted. No parser ever sees unauthenticated
	// bytes.
	if !hmac.Equal(sig, sign(body, secret)) {
		return nil, rejectSignature
	}

	idx = strings.LastIndexByte(body, '.')
	if idx < 0 {
		return nil, rejectMalformed
	}
	encodedPayload, expiryStr := body[:idx], body[idx+1:]

	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil {
		return nil, rejectMalformed
	}
	if time.Now().After(time.Unix(expiry, 0)) {
		return nil, rejectExpired
	}

	payload, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return nil, rejectPayload
	}

	var values map[string]any
	if err := json.Unmarshal(payload, &values); err != nil {
		// A signed but malformed payload should never occur in practice.
		// It still must not crash the caller, so it degrades to absent
		// like everything else.
		return nil, rejectPayload
	}

	return values, ""
}

func sign(body string, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(body))
	return mac.Sum(nil)
}
