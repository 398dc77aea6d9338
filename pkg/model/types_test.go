package model

import (
	"encoding/json"
	"testing"
)

func TestItemTypeFromNumber(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want ItemType
	}{
		{"Login", 1, TypeLogin},
		{"SecureNote", 2, TypeSecureNote},
		{"Card", 3, TypeCard},
		{"Identity", 4, TypeIdentity},
		{"Unknown", 99, TypeLogin},
		{"Zero", 0, TypeLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ItemTypeFromNumber(tt.n); got != tt.want {
				t.Errorf("ItemTypeFromNumber(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestItemTypeJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(TypeSecureNote)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "2" {
		t.Errorf("marshal = %s, want 2", data)
	}
	var typ ItemType
	if err := json.Unmarshal([]byte("3"), &typ); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if typ != TypeCard {
		t.Errorf("unmarshal = %v, want TypeCard", typ)
	}
}

func TestUsername(t *testing.T) {
	item := VaultItem{
		Name:  "GitHub",
		Type:  TypeLogin,
		Login: &LoginData{Username: "user@example.com"},
	}
	if got := item.Username(); got != "user@example.com" {
		t.Errorf("Username() = %q", got)
	}

	note := VaultItem{Name: "Note", Type: TypeSecureNote}
	if got := note.Username(); got != "" {
		t.Errorf("Username() on note = %q, want empty", got)
	}
}

func TestDomain(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"HTTPSWithPath", "https://example.com/path", "example.com"},
		{"HTTP", "http://example.org", "example.org"},
		{"Bare", "example.com", "example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := VaultItem{
				Type:  TypeLogin,
				Login: &LoginData{URIs: []URI{{URI: tt.uri}}},
			}
			if got := item.Domain(); got != tt.want {
				t.Errorf("Domain() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("NoLogin", func(t *testing.T) {
		item := VaultItem{Type: TypeSecureNote}
		if got := item.Domain(); got != "" {
			t.Errorf("Domain() = %q, want empty", got)
		}
	})
}

func TestParseItems(t *testing.T) {
	data := []byte(`[
		{"id":"a1","name":"GitHub","type":1,"favorite":true,
		 "login":{"username":"octocat","password":"hunter2","totp":"JBSWY3DPEHPK3PXP",
		          "uris":[{"uri":"https://github.com"}]},
		 "revisionDate":"2024-05-01T10:00:00Z"},
		{"id":"b2","name":"Visa","type":3,"favorite":false,
		 "card":{"brand":"Visa","number":"4111111111111111","code":"123"},
		 "revisionDate":"2024-05-02T10:00:00Z"}
	]`)

	items, err := ParseItems(data)
	if err != nil {
		t.Fatalf("ParseItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Type != TypeLogin || items[0].Login == nil {
		t.Errorf("item 0 not parsed as login: %+v", items[0])
	}
	if items[0].Login.TOTP != "JBSWY3DPEHPK3PXP" {
		t.Errorf("totp = %q", items[0].Login.TOTP)
	}
	if items[1].Type != TypeCard || items[1].Card == nil || items[1].Card.Code != "123" {
		t.Errorf("item 1 not parsed as card: %+v", items[1])
	}
}

func TestParseItemsBadJSON(t *testing.T) {
	if _, err := ParseItems([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestHasTOTP(t *testing.T) {
	withSeed := VaultItem{Type: TypeLogin, Login: &LoginData{TOTP: "SEED"}}
	if !withSeed.HasTOTP() {
		t.Error("item with seed should report HasTOTP")
	}
	placeholder := VaultItem{Type: TypeLogin, Login: &LoginData{HasTOTP: true}}
	if !placeholder.HasTOTP() {
		t.Error("cache placeholder should report HasTOTP")
	}
	without := VaultItem{Type: TypeLogin, Login: &LoginData{}}
	if without.HasTOTP() {
		t.Error("item without seed should not report HasTOTP")
	}
}
