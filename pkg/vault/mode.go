package vault

// ModeKind identifies which modal UI mode is active. Exactly one mode is
// active at a time; only ModeNormal allows list, filter, and copy input.
type ModeKind int

const (
	ModeNormal ModeKind = iota
	ModePasswordPrompt
	ModeSaveTokenPrompt
	ModeFatalError
)

func (k ModeKind) String() string {
	switch k {
	case ModePasswordPrompt:
		return "password-prompt"
	case ModeSaveTokenPrompt:
		return "save-token-prompt"
	case ModeFatalError:
		return "fatal-error"
	default:
		return "normal"
	}
}

// Mode is the session mode state machine. Transitions are driven exclusively
// by orchestrator events, never directly by keystrokes.
type Mode struct {
	kind      ModeKind
	password  []rune
	unlockErr string
	fatalMsg  string
}

func (m *Mode) Kind() ModeKind { return m.kind }

// InputAllowed reports whether list/filter/copy actions may run.
func (m *Mode) InputAllowed() bool { return m.kind == ModeNormal }

// EnterPasswordPrompt switches to the password prompt with a fresh buffer.
// Triggered by locked-vault detection.
func (m *Mode) EnterPasswordPrompt() {
	m.kind = ModePasswordPrompt
	m.password = m.password[:0]
	m.unlockErr = ""
}

// UnlockFailed records an inline error without leaving the prompt and
// without clearing the typed password.
func (m *Mode) UnlockFailed(msg string) {
	if m.kind != ModePasswordPrompt {
		return
	}
	m.unlockErr = msg
}

// UnlockSucceeded moves from the password prompt to the save-token prompt.
func (m *Mode) UnlockSucceeded() {
	m.kind = ModeSaveTokenPrompt
	m.password = m.password[:0]
	m.unlockErr = ""
}

// EnterSaveTokenPrompt asks whether to persist the session credential.
func (m *Mode) EnterSaveTokenPrompt() {
	m.kind = ModeSaveTokenPrompt
}

// ResolveSaveToken returns to normal mode after the user's yes/no answer.
func (m *Mode) ResolveSaveToken() {
	m.kind = ModeNormal
}

// Fatal switches to the blocking full-screen error. The only available
// action afterwards is quitting.
func (m *Mode) Fatal(msg string) {
	m.kind = ModeFatalError
	m.fatalMsg = msg
}

func (m *Mode) FatalMessage() string { return m.fatalMsg }
func (m *Mode) UnlockError() string  { return m.unlockErr }

// AppendPassword adds a character to the password buffer.
func (m *Mode) AppendPassword(r rune) {
	if m.kind != ModePasswordPrompt {
		return
	}
	m.password = append(m.password, r)
}

// DeletePasswordChar removes the last typed character.
func (m *Mode) DeletePasswordChar() {
	if m.kind != ModePasswordPrompt || len(m.password) == 0 {
		return
	}
	m.password = m.password[:len(m.password)-1]
}

func (m *Mode) Password() string    { return string(m.password) }
func (m *Mode) PasswordLen() int    { return len(m.password) }
