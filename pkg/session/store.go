// Package session persists the vault session credential between runs. The
// credential always lives in the BW_SESSION environment variable; saving it
// additionally records it for future shells, best-effort.
package session

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const envVar = "BW_SESSION"

// profileMarker delimits the block this program manages in ~/.profile.
const profileMarker = "# bwtui - Bitwarden session token"

// Store loads and saves the session credential.
type Store struct {
	log *zap.Logger
}

func NewStore(log *zap.Logger) *Store {
	return &Store{log: log}
}

// Load returns the credential from the environment, or empty when unset.
func (s *Store) Load() string {
	return os.Getenv(envVar)
}

// Save records the credential for future sessions and sets it in the current
// process so subsequent CLI calls pick it up immediately. It first tries the
// systemd user environment, then falls back to a managed block in ~/.profile.
func (s *Store) Save(token string) error {
	os.Setenv(envVar, token)

	if err := exec.Command("systemctl", "--user", "set-environment", envVar+"="+token).Run(); err == nil {
		s.log.Info("session token saved via systemd user environment")
		return nil
	}

	if err := s.saveProfile(token); err != nil {
		s.log.Warn("session token save failed", zap.Error(err))
		return err
	}
	s.log.Info("session token saved to profile")
	return nil
}

func (s *Store) saveProfile(token string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}
	path := filepath.Join(home, ".profile")

	var content string
	if data, err := os.ReadFile(path); err == nil {
		content = stripManagedBlock(string(data))
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read profile: %w", err)
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += fmt.Sprintf("\n%s\nexport %s=%q\n", profileMarker, envVar, token)

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// stripManagedBlock removes a previously written marker line and the export
// that follows it, so repeated saves don't accumulate.
func stripManagedBlock(content string) string {
	lines := strings.Split(content, "\n")
	out := lines[:0]
	skipExport := false
	for _, line := range lines {
		if strings.Contains(line, profileMarker) {
			skipExport = true
			continue
		}
		if skipExport && strings.HasPrefix(strings.TrimSpace(line), "export "+envVar) {
			skipExport = false
			continue
		}
		out = append(out, line)
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}
