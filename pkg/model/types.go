// Package model defines the vault item data model shared by every layer,
// including the JSON codec for the `bw list items` wire format.
package model

import (
	"encoding/json"
	"strings"
	"time"
)

// ItemType identifies the kind of vault item. The bw CLI encodes it as a
// number from 1 to 4.
type ItemType int

const (
	TypeLogin ItemType = iota + 1
	TypeSecureNote
	TypeCard
	TypeIdentity
)

// ItemTypeFromNumber maps the CLI's numeric type codes. Unknown codes fall
// back to Login, matching how the CLI treats unrecognized items.
func ItemTypeFromNumber(n int) ItemType {
	switch n {
	case 1, 2, 3, 4:
		return ItemType(n)
	default:
		return TypeLogin
	}
}

func (t ItemType) String() string {
	switch t {
	case TypeLogin:
		return "login"
	case TypeSecureNote:
		return "note"
	case TypeCard:
		return "card"
	case TypeIdentity:
		return "identity"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the type as its numeric wire code.
func (t ItemType) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(t))
}

func (t *ItemType) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = ItemTypeFromNumber(n)
	return nil
}

// VaultItem is a single entry as returned by `bw list items`. Instances are
// owned by the working set and never mutated after load; new syncs replace
// the collection wholesale.
type VaultItem struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Type           ItemType      `json:"type"`
	Login          *LoginData    `json:"login,omitempty"`
	Card           *CardData     `json:"card,omitempty"`
	Identity       *IdentityData `json:"identity,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	Fields         []CustomField `json:"fields,omitempty"`
	Favorite       bool          `json:"favorite"`
	FolderID       string        `json:"folderId,omitempty"`
	OrganizationID string        `json:"organizationId,omitempty"`
	RevisionDate   time.Time     `json:"revisionDate"`
}

// LoginData holds the login-specific payload. TOTP is the shared secret
// (base32 or otpauth:// URL) used for one-time code generation.
type LoginData struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	TOTP     string `json:"totp,omitempty"`
	URIs     []URI  `json:"uris,omitempty"`

	// Cache placeholders: set when the real value was stripped but existed.
	HasPassword bool `json:"-"`
	HasTOTP     bool `json:"-"`
}

type URI struct {
	URI string `json:"uri"`
}

// CardData holds the card-specific payload. Code is the CVV.
type CardData struct {
	Brand          string `json:"brand,omitempty"`
	CardholderName string `json:"cardholderName,omitempty"`
	Number         string `json:"number,omitempty"`
	ExpMonth       string `json:"expMonth,omitempty"`
	ExpYear        string `json:"expYear,omitempty"`
	Code           string `json:"code,omitempty"`

	HasNumber bool `json:"-"`
	HasCode   bool `json:"-"`
}

// IdentityData holds structured personal fields. None of these are treated
// as secrets for caching purposes.
type IdentityData struct {
	Title          string `json:"title,omitempty"`
	FirstName      string `json:"firstName,omitempty"`
	MiddleName     string `json:"middleName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	Address1       string `json:"address1,omitempty"`
	Address2       string `json:"address2,omitempty"`
	Address3       string `json:"address3,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	PostalCode     string `json:"postalCode,omitempty"`
	Country        string `json:"country,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty"`
	SSN            string `json:"ssn,omitempty"`
	LicenseNumber  string `json:"licenseNumber,omitempty"`
	PassportNumber string `json:"passportNumber,omitempty"`
	Username       string `json:"username,omitempty"`
}

type CustomField struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
	Type  int    `json:"type"`
}

// Username returns the login username, if any.
func (v *VaultItem) Username() string {
	if v.Login == nil {
		return ""
	}
	return v.Login.Username
}

// Domain extracts the host portion of the first login URI.
func (v *VaultItem) Domain() string {
	if v.Login == nil || len(v.Login.URIs) == 0 {
		return ""
	}
	u := v.Login.URIs[0].URI
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	if i := strings.IndexByte(u, '/'); i >= 0 {
		u = u[:i]
	}
	return u
}

// HasTOTP reports whether the item carries a one-time-password seed, either
// the real secret or a cache placeholder.
func (v *VaultItem) HasTOTP() bool {
	return v.Login != nil && (v.Login.TOTP != "" || v.Login.HasTOTP)
}

// ParseItems decodes the JSON array produced by `bw list items`.
func ParseItems(data []byte) ([]VaultItem, error) {
	var items []VaultItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
