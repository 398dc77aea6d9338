// Package totp computes time-stepped one-time codes from a shared secret.
// Codes use the standard 30-second window and 6 digits.
package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Period is the code validity window in seconds.
const Period = 30

// Generate computes the code for the given secret at the given instant and
// returns it together with the seconds left in the current window. The
// secret may be raw base32 (padded or not) or a full otpauth:// URL; spaces
// are tolerated. Deterministic in (secret, now).
func Generate(secret string, now time.Time) (code string, remaining int, err error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", 0, err
	}

	unix := uint64(now.Unix())
	steps := unix / Period
	remaining = Period - int(unix%Period)

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, steps)

	h := hmac.New(sha1.New, key)
	h.Write(buf)
	sum := h.Sum(nil)

	// Dynamic truncation per RFC 4226.
	offset := sum[len(sum)-1] & 0xf
	value := (uint32(sum[offset])&0x7f)<<24 |
		uint32(sum[offset+1])<<16 |
		uint32(sum[offset+2])<<8 |
		uint32(sum[offset+3])

	return fmt.Sprintf("%06d", value%1000000), remaining, nil
}

// Expiry returns the next window boundary after now, the instant at which a
// code generated now stops being valid.
func Expiry(now time.Time) time.Time {
	unix := now.Unix()
	return time.Unix((unix/Period+1)*Period, 0)
}

func decodeSecret(secret string) ([]byte, error) {
	s := secret
	if strings.HasPrefix(s, "otpauth://") {
		u, err := url.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid otpauth url: %w", err)
		}
		s = u.Query().Get("secret")
		if s == "" {
			return nil, fmt.Errorf("otpauth url has no secret parameter")
		}
	}

	s = strings.ToUpper(strings.ReplaceAll(s, " ", ""))

	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		// Some exporters emit padded secrets.
		key, err = base32.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("decode base32 secret: %w", err)
		}
	}
	return key, nil
}
