package vault

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/leddt/bwtui/pkg/bw"
	"github.com/leddt/bwtui/pkg/cache"
	"github.com/leddt/bwtui/pkg/model"
	"github.com/leddt/bwtui/pkg/totp"
)

// Clipboard is the OS clipboard collaborator. A nil Clipboard degrades copy
// actions to a "clipboard not available" notice.
type Clipboard interface {
	WriteAll(text string) error
}

// TokenStore persists the session credential between runs.
type TokenStore interface {
	Load() string
	Save(token string) error
}

// probeResult carries the startup CLI probe plus the initial status check.
type probeResult struct {
	cli    *bw.CLI
	status bw.Status
	err    error
}

type unlockResult struct {
	token string
	err   error
}

type syncResult struct {
	items []model.VaultItem
	err   error
}

type totpResult struct {
	itemID string
	code   string
	err    error
}

// Orchestrator drives every external-tool invocation off the UI goroutine.
// Each concern has its own result channel; Drain applies at most one pending
// result per channel and is called once per UI tick. All state mutation
// happens on the calling (UI) goroutine.
type Orchestrator struct {
	state  *State
	cache  *cache.Store
	tokens TokenStore
	clip   Clipboard
	log    *zap.Logger

	cli *bw.CLI

	probeCh  chan probeResult
	unlockCh chan unlockResult
	syncCh   chan syncResult
	totpCh   chan totpResult

	unlockInFlight bool
	totpInFlight   bool
	pendingToken   string
}

// NewOrchestrator wires the orchestrator to its collaborators. clip may be
// nil when no clipboard is available.
func NewOrchestrator(state *State, store *cache.Store, tokens TokenStore, clip Clipboard, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		state:    state,
		cache:    store,
		tokens:   tokens,
		clip:     clip,
		log:      log,
		probeCh:  make(chan probeResult, 1),
		unlockCh: make(chan unlockResult, 1),
		syncCh:   make(chan syncResult, 4),
		totpCh:   make(chan totpResult, 4),
	}
}

// LoadCache populates the working set from the disk snapshot, if one exists.
// Called once at startup before the first sync completes.
func (o *Orchestrator) LoadCache() {
	snap, ok := o.cache.Load()
	if !ok {
		return
	}
	items := snap.Restore()
	o.state.Items.LoadCached(items)
	o.state.SetStatus(fmt.Sprintf("Loaded %d items from cache (syncing in background...)", len(items)), LevelInfo)
}

// Start launches the startup sequence: probe the CLI binary, check the vault
// status, then either list items, prompt for a password, or fail hard.
func (o *Orchestrator) Start(ctx context.Context) {
	o.state.Sync.Start()
	go func() {
		cli, err := bw.New(ctx, o.tokens.Load(), o.log)
		if err != nil {
			o.probeCh <- probeResult{err: err}
			return
		}
		status, err := cli.CheckStatus(ctx)
		o.probeCh <- probeResult{cli: cli, status: status, err: err}
	}()
}

// Drain applies pending background results, at most one per channel per
// call. Messages within a channel arrive in production order; ordering
// across channels is unspecified.
func (o *Orchestrator) Drain(ctx context.Context) {
	select {
	case res := <-o.probeCh:
		o.handleProbe(ctx, res)
	default:
	}

	select {
	case res := <-o.unlockCh:
		o.handleUnlock(res)
	default:
	}

	select {
	case res := <-o.syncCh:
		o.handleSync(res)
	default:
	}

	select {
	case res := <-o.totpCh:
		o.handleTOTP(res)
	default:
	}
}

func (o *Orchestrator) handleProbe(ctx context.Context, res probeResult) {
	if res.cli == nil {
		// Binary missing or not runnable. Terminal; never retried.
		o.state.Sync.Stop()
		o.state.Mode.Fatal(res.err.Error())
		o.log.Error("cli probe failed", zap.Error(res.err))
		return
	}

	o.cli = res.cli

	if res.err != nil {
		o.state.Sync.Stop()
		o.state.SetStatus("Status check failed: "+res.err.Error(), LevelError)
		return
	}

	switch res.status {
	case bw.StatusUnlocked:
		o.startList(ctx)
	case bw.StatusLocked:
		o.state.Sync.Stop()
		o.state.Mode.EnterPasswordPrompt()
	case bw.StatusUnauthenticated:
		o.state.Sync.Stop()
		o.state.Mode.Fatal(bw.ErrNotLoggedIn.Error())
	}
}

// SubmitPassword starts one async unlock attempt with the typed password.
func (o *Orchestrator) SubmitPassword(ctx context.Context) {
	password := o.state.Mode.Password()
	if password == "" {
		o.state.Mode.UnlockFailed("Password cannot be empty")
		return
	}
	if o.unlockInFlight {
		o.state.SetStatus("Unlock already in progress...", LevelWarning)
		return
	}
	if o.cli == nil {
		o.state.Mode.UnlockFailed("Bitwarden CLI not available")
		return
	}

	o.unlockInFlight = true
	cli := o.cli
	go func() {
		token, err := cli.Unlock(ctx, password)
		o.unlockCh <- unlockResult{token: token, err: err}
	}()
}

func (o *Orchestrator) handleUnlock(res unlockResult) {
	o.unlockInFlight = false

	if res.err != nil {
		if errors.Is(res.err, bw.ErrNotLoggedIn) {
			o.state.Sync.Stop()
			o.state.Mode.Fatal(res.err.Error())
			return
		}
		// Inline error; the typed password buffer is preserved.
		o.state.Mode.UnlockFailed(res.err.Error())
		return
	}

	o.cli = o.cli.WithSession(res.token)
	o.pendingToken = res.token
	o.state.Mode.UnlockSucceeded()
}

// ResolveSaveToken records the user's yes/no answer to persisting the
// session credential, then unconditionally issues the first item list.
func (o *Orchestrator) ResolveSaveToken(ctx context.Context, save bool) {
	o.state.Mode.ResolveSaveToken()

	if save && o.pendingToken != "" {
		if err := o.tokens.Save(o.pendingToken); err != nil {
			o.state.SetStatus("Failed to save session token: "+err.Error(), LevelWarning)
		} else {
			o.state.SetStatus("Session token saved", LevelSuccess)
		}
	} else {
		o.state.SetStatus("Session token not saved", LevelInfo)
	}
	o.pendingToken = ""

	o.startList(ctx)
}

// Refresh runs a full sync followed by a list. Rejected with a notice while
// another sync is in flight.
func (o *Orchestrator) Refresh(ctx context.Context) {
	if o.state.Sync.Syncing() {
		o.state.SetStatus("Sync already in progress...", LevelWarning)
		return
	}
	if o.cli == nil {
		o.state.SetStatus("Bitwarden CLI not available", LevelError)
		return
	}

	o.state.Sync.Start()
	cli := o.cli
	go func() {
		if err := cli.Sync(ctx); err != nil {
			o.syncCh <- syncResult{err: err}
			return
		}
		items, err := cli.ListItems(ctx)
		o.syncCh <- syncResult{items: items, err: err}
	}()
}

// startList fetches items without a server sync, used after startup and
// after unlocking.
func (o *Orchestrator) startList(ctx context.Context) {
	if o.cli == nil {
		return
	}
	o.state.Sync.Start()
	cli := o.cli
	go func() {
		items, err := cli.ListItems(ctx)
		o.syncCh <- syncResult{items: items, err: err}
	}()
}

func (o *Orchestrator) handleSync(res syncResult) {
	o.state.Sync.Stop()

	if res.err != nil {
		switch {
		case errors.Is(res.err, bw.ErrVaultLocked):
			o.state.Mode.EnterPasswordPrompt()
		case errors.Is(res.err, bw.ErrNotLoggedIn):
			o.state.Mode.Fatal(res.err.Error())
		default:
			// Transient; the previously loaded working set stays intact.
			o.state.SetStatus("Sync failed: "+res.err.Error(), LevelError)
		}
		o.log.Warn("sync failed", zap.Error(res.err))
		return
	}

	o.cache.Save(cache.NewSnapshot(res.items))
	o.state.Items.Load(res.items)
	o.state.SetStatus("Vault synced successfully", LevelSuccess)
}

// RequestTOTP produces a code for the selected item: locally when the seed
// is readable, otherwise through one debounced remote fetch.
func (o *Orchestrator) RequestTOTP(ctx context.Context, now time.Time) {
	item := o.state.Items.Selected()
	if item == nil {
		return
	}
	if !item.HasTOTP() {
		o.state.SetStatus("No TOTP configured for this entry", LevelWarning)
		return
	}
	if !o.state.Items.SecretsAvailable() {
		o.state.SetStatus("Please wait, loading vault secrets...", LevelWarning)
		return
	}

	if seed := item.Login.TOTP; seed != "" {
		if code, _, err := totp.Generate(seed, now); err == nil {
			o.state.OTP.Set(code, totp.Expiry(now), item.ID)
			o.finishPendingCopy(code)
			return
		}
		// Seed not locally computable (e.g. steam:// or an unknown format);
		// fall back to the external tool.
	}

	if o.totpInFlight || !o.state.OTP.CanFetch(now) {
		return
	}
	if o.cli == nil {
		o.state.SetStatus("Bitwarden CLI not available", LevelError)
		return
	}

	o.state.OTP.MarkFetch(now)
	o.state.OTP.SetLoading(true)
	o.totpInFlight = true

	itemID := item.ID
	cli := o.cli
	go func() {
		code, err := cli.GetTOTP(ctx, itemID)
		o.totpCh <- totpResult{itemID: itemID, code: code, err: err}
	}()
}

func (o *Orchestrator) handleTOTP(res totpResult) {
	o.totpInFlight = false
	o.state.OTP.SetLoading(false)

	if res.err != nil {
		o.state.OTP.SetCopyPending(false)
		o.state.SetStatus("Failed to fetch TOTP: "+res.err.Error(), LevelError)
		return
	}

	// The selection may have moved while the fetch was in flight; a code for
	// a different item is discarded, never displayed.
	selected := o.state.Items.Selected()
	if selected == nil || selected.ID != res.itemID {
		o.state.OTP.SetCopyPending(false)
		o.log.Debug("discarding totp for deselected item", zap.String("item", res.itemID))
		return
	}

	o.state.OTP.Set(res.code, totp.Expiry(time.Now()), res.itemID)
	o.finishPendingCopy(res.code)
}

// finishPendingCopy completes a copy that was requested before the code
// arrived.
func (o *Orchestrator) finishPendingCopy(code string) {
	if !o.state.OTP.CopyPending() {
		return
	}
	o.state.OTP.SetCopyPending(false)
	o.copyToClipboard(code, "TOTP code copied: "+code)
}

// Tick advances time-based state and applies pending background results.
// detailsVisible enables the automatic code refresh for the selected item.
func (o *Orchestrator) Tick(ctx context.Context, now time.Time, detailsVisible bool) {
	o.state.ExpireStatus(now)
	o.state.Sync.Advance()
	o.Drain(ctx)

	if !detailsVisible || !o.state.Mode.InputAllowed() {
		return
	}
	item := o.state.Items.Selected()
	if item == nil || !item.HasTOTP() || !o.state.Items.SecretsAvailable() {
		return
	}
	if o.state.OTP.Loading() || !o.state.OTP.CanFetch(now) {
		return
	}
	// Refresh an expired or missing code while the panel is showing it.
	if o.state.OTP.Code() == "" || o.state.OTP.Expired(now) || !o.state.OTP.BelongsTo(item.ID) {
		o.RequestTOTP(ctx, now)
	}
}

// Copy actions

// CopyUsername copies the selected item's username.
func (o *Orchestrator) CopyUsername() {
	item := o.state.Items.Selected()
	if item == nil {
		return
	}
	username := item.Username()
	if username == "" {
		o.state.SetStatus("No username for this entry", LevelWarning)
		return
	}
	o.copyToClipboard(username, "Username copied: "+username)
}

// CopyPassword copies the selected item's password. Secrets are only
// available after the first full sync.
func (o *Orchestrator) CopyPassword() {
	item := o.state.Items.Selected()
	if item == nil {
		return
	}
	if !o.state.Items.SecretsAvailable() {
		o.state.SetStatus("Please wait, loading vault secrets...", LevelWarning)
		return
	}
	if item.Login == nil || item.Login.Password == "" {
		o.state.SetStatus("No password for this entry", LevelWarning)
		return
	}
	o.copyToClipboard(item.Login.Password, "Password copied to clipboard (hidden)")
}

// CopyTOTP copies the current code when one is live for the selection, or
// requests one and defers the copy until it arrives.
func (o *Orchestrator) CopyTOTP(ctx context.Context, now time.Time) {
	item := o.state.Items.Selected()
	if item == nil {
		return
	}
	if !item.HasTOTP() {
		o.state.SetStatus("No TOTP configured for this entry", LevelWarning)
		return
	}
	if !o.state.Items.SecretsAvailable() {
		o.state.SetStatus("Please wait, loading vault secrets...", LevelWarning)
		return
	}

	if o.state.OTP.BelongsTo(item.ID) && !o.state.OTP.Expired(now) {
		o.copyToClipboard(o.state.OTP.Code(), "TOTP code copied: "+o.state.OTP.Code())
		return
	}

	o.state.OTP.SetCopyPending(true)
	o.RequestTOTP(ctx, now)
}

// CopyCardNumber copies the selected card's number.
func (o *Orchestrator) CopyCardNumber() {
	o.copyCardField(func(c *model.CardData) (string, string) {
		return c.Number, "Card number copied to clipboard (hidden)"
	}, "No card number for this entry")
}

// CopyCVV copies the selected card's security code.
func (o *Orchestrator) CopyCVV() {
	o.copyCardField(func(c *model.CardData) (string, string) {
		return c.Code, "CVV copied to clipboard (hidden)"
	}, "No CVV for this entry")
}

func (o *Orchestrator) copyCardField(pick func(*model.CardData) (string, string), missing string) {
	item := o.state.Items.Selected()
	if item == nil {
		return
	}
	if item.Type != model.TypeCard || item.Card == nil {
		o.state.SetStatus("This is not a card entry", LevelWarning)
		return
	}
	if !o.state.Items.SecretsAvailable() {
		o.state.SetStatus("Please wait, loading vault secrets...", LevelWarning)
		return
	}
	value, okMsg := pick(item.Card)
	if value == "" {
		o.state.SetStatus(missing, LevelWarning)
		return
	}
	o.copyToClipboard(value, okMsg)
}

func (o *Orchestrator) copyToClipboard(text, okMsg string) {
	if o.clip == nil {
		o.state.SetStatus("Clipboard not available", LevelError)
		return
	}
	if err := o.clip.WriteAll(text); err != nil {
		o.state.SetStatus("Failed to copy to clipboard", LevelError)
		o.log.Warn("clipboard write failed", zap.Error(err))
		return
	}
	o.state.SetStatus(okMsg, LevelSuccess)
}
