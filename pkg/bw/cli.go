// Package bw wraps the Bitwarden command-line tool. Every vault operation is
// a subprocess invocation; the session credential travels via the BW_SESSION
// environment variable.
package bw

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/leddt/bwtui/pkg/model"
)

// Status is the vault state reported by `bw status`.
type Status int

const (
	StatusLocked Status = iota
	StatusUnlocked
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUnlocked:
		return "unlocked"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "locked"
	}
}

type statusResponse struct {
	Status string `json:"status"`
}

// Runner executes a bw invocation and returns stdout, stderr, and the exec
// error. Swappable in tests.
type Runner func(ctx context.Context, session string, args ...string) (stdout, stderr []byte, err error)

// CLI invokes the bw binary. Safe to copy; WithSession returns a derived
// instance carrying a fresh credential.
type CLI struct {
	session string
	log     *zap.Logger
	run     Runner
}

// New probes that the bw binary is callable ("bw --version") and returns a
// CLI carrying the given session credential (may be empty). A probe failure
// is terminal and never retried.
func New(ctx context.Context, session string, log *zap.Logger) (*CLI, error) {
	c := &CLI{session: session, log: log, run: execRun}
	if _, _, err := c.run(ctx, "", "--version"); err != nil {
		c.log.Error("bw probe failed", zap.Error(err))
		return nil, ErrCliNotFound
	}
	return c, nil
}

// NewWithRunner builds a CLI around an injected runner, skipping the binary
// probe. Intended for tests.
func NewWithRunner(run Runner, session string, log *zap.Logger) *CLI {
	return &CLI{session: session, log: log, run: run}
}

// WithSession returns a copy of the CLI using the given session credential
// for subsequent calls.
func (c *CLI) WithSession(session string) *CLI {
	return &CLI{session: session, log: c.log, run: c.run}
}

// CheckStatus asks the external tool whether the vault is unlocked, locked,
// or not logged in. Unknown status strings are treated as locked.
func (c *CLI) CheckStatus(ctx context.Context) (Status, error) {
	stdout, stderr, err := c.run(ctx, c.session, "status")
	if err != nil {
		return StatusLocked, &CommandError{Op: "status", Detail: errDetail(err, stderr)}
	}

	var resp statusResponse
	if err := json.Unmarshal(stdout, &resp); err != nil {
		return StatusLocked, &ParseError{Op: "status", Err: err}
	}

	switch resp.Status {
	case "unlocked":
		return StatusUnlocked, nil
	case "unauthenticated":
		return StatusUnauthenticated, nil
	default:
		return StatusLocked, nil
	}
}

// ListItems fetches all vault items.
func (c *CLI) ListItems(ctx context.Context) ([]model.VaultItem, error) {
	stdout, stderr, err := c.run(ctx, c.session, "list", "items")
	if err != nil {
		if sentinel := classifyStderr(string(stderr)); sentinel != nil {
			return nil, sentinel
		}
		return nil, &CommandError{Op: "list items", Detail: errDetail(err, stderr)}
	}

	items, err := model.ParseItems(stdout)
	if err != nil {
		return nil, &ParseError{Op: "list items", Err: err}
	}
	c.log.Info("listed vault items", zap.Int("count", len(items)))
	return items, nil
}

// Sync pulls the latest vault state from the server.
func (c *CLI) Sync(ctx context.Context) error {
	_, stderr, err := c.run(ctx, c.session, "sync")
	if err != nil {
		if sentinel := classifyStderr(string(stderr)); sentinel != nil {
			return sentinel
		}
		return &CommandError{Op: "sync", Detail: errDetail(err, stderr)}
	}
	return nil
}

// Unlock exchanges the master password for a session credential.
func (c *CLI) Unlock(ctx context.Context, password string) (string, error) {
	stdout, stderr, err := c.run(ctx, "", "unlock", "--raw", password)
	if err != nil {
		text := string(stderr)
		if strings.Contains(text, "Invalid master password") {
			return "", &CommandError{Op: "unlock", Detail: "invalid master password"}
		}
		if sentinel := classifyStderr(text); sentinel == ErrNotLoggedIn {
			return "", sentinel
		}
		return "", &CommandError{Op: "unlock", Detail: errDetail(err, stderr)}
	}

	token := strings.TrimSpace(string(stdout))
	if token == "" {
		return "", &CommandError{Op: "unlock", Detail: "no session token returned"}
	}
	return token, nil
}

// GetTOTP fetches the current one-time code for an item from the external
// tool. Used when the item's seed is not available locally.
func (c *CLI) GetTOTP(ctx context.Context, itemID string) (string, error) {
	stdout, stderr, err := c.run(ctx, c.session, "get", "totp", itemID)
	if err != nil {
		if sentinel := classifyStderr(string(stderr)); sentinel != nil {
			return "", sentinel
		}
		return "", &CommandError{Op: "get totp", Detail: errDetail(err, stderr)}
	}

	code := strings.TrimSpace(string(stdout))
	if code == "" {
		return "", &CommandError{Op: "get totp", Detail: "empty code returned"}
	}
	return code, nil
}

func execRun(ctx context.Context, session string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, "bw", args...)
	if session != "" {
		cmd.Env = append(cmd.Environ(), "BW_SESSION="+session)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

func errDetail(err error, stderr []byte) string {
	text := strings.TrimSpace(string(stderr))
	if text != "" {
		return text
	}
	return err.Error()
}
