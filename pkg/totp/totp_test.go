package totp

import (
	"testing"
	"time"
)

// Base32 encoding of the RFC 6238 ASCII test key "12345678901234567890".
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func TestGenerateKnownVectors(t *testing.T) {
	// HOTP counter 0 and 1 values for the RFC test key, 6 digits.
	tests := []struct {
		name string
		at   int64
		want string
	}{
		{"WindowZero", 0, "755224"},
		{"WindowZeroEnd", 29, "755224"},
		{"WindowOne", 30, "287082"},
		{"WindowOneLate", 59, "287082"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, err := Generate(rfcSecret, time.Unix(tt.at, 0))
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if code != tt.want {
				t.Errorf("Generate at %d = %q, want %q", tt.at, code, tt.want)
			}
		})
	}
}

func TestGenerateWindowBoundaries(t *testing.T) {
	c0, _, err := Generate(rfcSecret, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	c29, _, _ := Generate(rfcSecret, time.Unix(29, 0))
	c30, _, _ := Generate(rfcSecret, time.Unix(30, 0))
	c60, _, _ := Generate(rfcSecret, time.Unix(60, 0))

	if c0 != c29 {
		t.Errorf("codes within one window differ: %q vs %q", c0, c29)
	}
	if c0 == c30 {
		t.Errorf("codes across window boundary matched: %q", c0)
	}
	if c30 == c60 {
		t.Errorf("codes across window boundary matched: %q", c30)
	}
}

func TestGenerateRemaining(t *testing.T) {
	_, remaining, err := Generate(rfcSecret, time.Unix(45, 0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if remaining != 15 {
		t.Errorf("remaining = %d, want 15", remaining)
	}
}

func TestGenerateSecretFormats(t *testing.T) {
	base, _, err := Generate(rfcSecret, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	tests := []struct {
		name   string
		secret string
	}{
		{"LowercaseWithSpaces", "gezd gnbv gy3t qojq gezd gnbv gy3t qojq"},
		{"Padded", rfcSecret + "========"},
		{"OtpauthURL", "otpauth://totp/Example:user?secret=" + rfcSecret + "&issuer=Example"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, err := Generate(tt.secret, time.Unix(0, 0))
			if err != nil {
				t.Fatalf("Generate(%q): %v", tt.secret, err)
			}
			if code != base {
				t.Errorf("code = %q, want %q", code, base)
			}
		})
	}
}

func TestGenerateInvalidSecret(t *testing.T) {
	if _, _, err := Generate("not!valid!base32!", time.Unix(0, 0)); err == nil {
		t.Fatal("expected error for invalid secret")
	}
	if _, _, err := Generate("otpauth://totp/x?issuer=y", time.Unix(0, 0)); err == nil {
		t.Fatal("expected error for otpauth url without secret")
	}
}

func TestExpiry(t *testing.T) {
	tests := []struct {
		name string
		at   int64
		want int64
	}{
		{"MidWindow", 45, 60},
		{"OnBoundary", 60, 90},
		{"JustBefore", 59, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expiry(time.Unix(tt.at, 0)).Unix(); got != tt.want {
				t.Errorf("Expiry(%d) = %d, want %d", tt.at, got, tt.want)
			}
		})
	}
}
