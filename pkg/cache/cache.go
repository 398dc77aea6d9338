// Package cache persists a secret-stripped snapshot of the vault so the UI
// has something to show before the first sync completes. Caching is strictly
// best-effort: a missing, unreadable, or corrupt file is never an error.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/leddt/bwtui/pkg/model"
)

// Snapshot is the on-disk projection of the working set. Secret values
// (passwords, OTP seeds, card numbers, CVVs, notes, custom fields) are
// replaced by existence flags.
type Snapshot struct {
	CachedAt time.Time    `json:"cachedAt"`
	Items    []CachedItem `json:"items"`
}

type CachedItem struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Type           model.ItemType      `json:"type"`
	Favorite       bool                `json:"favorite"`
	FolderID       string              `json:"folderId,omitempty"`
	OrganizationID string              `json:"organizationId,omitempty"`
	RevisionDate   time.Time           `json:"revisionDate"`
	Login          *CachedLogin        `json:"login,omitempty"`
	Card           *CachedCard         `json:"card,omitempty"`
	Identity       *model.IdentityData `json:"identity,omitempty"`
}

type CachedLogin struct {
	Username    string   `json:"username,omitempty"`
	URIs        []string `json:"uris,omitempty"`
	HasPassword bool     `json:"hasPassword"`
	HasTOTP     bool     `json:"hasTotp"`
}

type CachedCard struct {
	Brand          string `json:"brand,omitempty"`
	CardholderName string `json:"cardholderName,omitempty"`
	ExpMonth       string `json:"expMonth,omitempty"`
	ExpYear        string `json:"expYear,omitempty"`
	HasNumber      bool   `json:"hasNumber"`
	HasCode        bool   `json:"hasCode"`
}

// NewSnapshot builds a secret-stripped snapshot from the working set.
func NewSnapshot(items []model.VaultItem) Snapshot {
	snap := Snapshot{CachedAt: time.Now().UTC(), Items: make([]CachedItem, 0, len(items))}
	for i := range items {
		it := &items[i]
		ci := CachedItem{
			ID:             it.ID,
			Name:           it.Name,
			Type:           it.Type,
			Favorite:       it.Favorite,
			FolderID:       it.FolderID,
			OrganizationID: it.OrganizationID,
			RevisionDate:   it.RevisionDate,
		}
		if it.Login != nil {
			cl := &CachedLogin{
				Username:    it.Login.Username,
				HasPassword: it.Login.Password != "",
				HasTOTP:     it.Login.TOTP != "",
			}
			for _, u := range it.Login.URIs {
				cl.URIs = append(cl.URIs, u.URI)
			}
			ci.Login = cl
		}
		if it.Card != nil {
			ci.Card = &CachedCard{
				Brand:          it.Card.Brand,
				CardholderName: it.Card.CardholderName,
				ExpMonth:       it.Card.ExpMonth,
				ExpYear:        it.Card.ExpYear,
				HasNumber:      it.Card.Number != "",
				HasCode:        it.Card.Code != "",
			}
		}
		if it.Identity != nil {
			identity := *it.Identity
			ci.Identity = &identity
		}
		snap.Items = append(snap.Items, ci)
	}
	return snap
}

// Restore converts a snapshot back into vault items. Stripped secrets come
// back as existence placeholders; notes and custom fields come back empty.
func (s Snapshot) Restore() []model.VaultItem {
	items := make([]model.VaultItem, 0, len(s.Items))
	for _, ci := range s.Items {
		it := model.VaultItem{
			ID:             ci.ID,
			Name:           ci.Name,
			Type:           ci.Type,
			Favorite:       ci.Favorite,
			FolderID:       ci.FolderID,
			OrganizationID: ci.OrganizationID,
			RevisionDate:   ci.RevisionDate,
		}
		if ci.Login != nil {
			login := &model.LoginData{
				Username:    ci.Login.Username,
				HasPassword: ci.Login.HasPassword,
				HasTOTP:     ci.Login.HasTOTP,
			}
			for _, u := range ci.Login.URIs {
				login.URIs = append(login.URIs, model.URI{URI: u})
			}
			it.Login = login
		}
		if ci.Card != nil {
			it.Card = &model.CardData{
				Brand:          ci.Card.Brand,
				CardholderName: ci.Card.CardholderName,
				ExpMonth:       ci.Card.ExpMonth,
				ExpYear:        ci.Card.ExpYear,
				HasNumber:      ci.Card.HasNumber,
				HasCode:        ci.Card.HasCode,
			}
		}
		if ci.Identity != nil {
			identity := *ci.Identity
			it.Identity = &identity
		}
		items = append(items, it)
	}
	return items
}

// Store reads and writes the snapshot file.
type Store struct {
	path string
	log  *zap.Logger
}

// NewStore creates a store rooted at the given file path. DefaultPath
// resolves the conventional location under the user's home directory.
func NewStore(path string, log *zap.Logger) *Store {
	return &Store{path: path, log: log}
}

// DefaultPath returns ~/.bwtui/vault_cache.json, creating the directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".bwtui")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "vault_cache.json"), nil
}

// Load returns the cached snapshot, or ok=false when no usable cache exists.
// A corrupt file is deleted and reported as absent.
func (s *Store) Load() (Snapshot, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("cache read failed", zap.Error(err))
		}
		return Snapshot{}, false
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn("cache corrupt, removing", zap.Error(err))
		if rmErr := os.Remove(s.path); rmErr != nil {
			s.log.Error("cache remove failed", zap.Error(rmErr))
		}
		return Snapshot{}, false
	}

	s.log.Info("cache loaded", zap.Int("items", len(snap.Items)))
	return snap, true
}

// Save overwrites the cache file. Failures are logged and swallowed.
func (s *Store) Save(snap Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		s.log.Error("cache encode failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.log.Warn("cache write failed", zap.Error(err))
	}
}
