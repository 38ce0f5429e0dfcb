// Package auth validates the shared-admin bearer token. Verification is a
// total function: malformed input, a bad signature, an expired token or a
// missing configured secret all report "no identity" and nothing ever
// panics or returns an error to the caller.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strings"
	"time"
)

// Claims is the decoded token payload
type Claims map[string]interface{}

var bearerRegex = regexp.MustCompile(`(?i)^Bearer\s+(.+)$`)

// Verify checks a HS256-signed token against the shared secret. It
// recomputes the HMAC-SHA-256 signature over the header.payload substring,
// compares it to the presented signature, then decodes the payload and
// honors an exp claim (seconds since epoch). An empty secret always fails.
func Verify(token, secret string, now time.Time) (Claims, bool) {
	if secret == "" {
		return nil, false
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil, false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(parts[0] + "." + parts[1]))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	if sig != parts[2] {
		return nil, false
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, false
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, false
	}

	if exp, ok := claims["exp"].(float64); ok {
		if float64(now.Unix()) >= exp {
			return nil, false
		}
	}
	return claims, true
}

// FromRequest extracts a bearer token from an Authorization header value
// and verifies it
func FromRequest(authorization, secret string, now time.Time) (Claims, bool) {
	m := bearerRegex.FindStringSubmatch(authorization)
	if m == nil {
		return nil, false
	}
	return Verify(strings.TrimSpace(m[1]), secret, now)
}

// decodeSegment decodes a base64url token segment, tolerating padding
func decodeSegment(s string) ([]byte, error) {
	if strings.ContainsAny(s, "=") {
		return base64.URLEncoding.DecodeString(s)
	}
	return base64.RawURLEncoding.DecodeString(s)
}
