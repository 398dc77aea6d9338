package bw

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel conditions recognized from the CLI. CLI-not-found and
// not-logged-in are fatal to the session; a locked vault is recoverable
// through the password prompt.
var (
	ErrCliNotFound = errors.New("bitwarden CLI not found, install with: npm install -g @bitwarden/cli")
	ErrNotLoggedIn = errors.New("not logged in, run 'bw login' first")
	ErrVaultLocked = errors.New("vault is locked")
)

// CommandError wraps a failed subprocess invocation. Transient: surfaced as
// a status message, never changes the session mode.
type CommandError struct {
	Op     string
	Detail string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("bw %s failed: %s", e.Op, e.Detail)
}

// ParseError wraps unparseable CLI output.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse bw %s output: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// classifyStderr maps well-known stderr fragments onto sentinel errors.
// Returns nil when the text matches nothing specific.
func classifyStderr(stderr string) error {
	lower := strings.ToLower(stderr)
	switch {
	case strings.Contains(lower, "not logged in"):
		return ErrNotLoggedIn
	case strings.Contains(lower, "locked"):
		return ErrVaultLocked
	default:
		return nil
	}
}
