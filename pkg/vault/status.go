package vault

import "time"

// statusTTL is how long a status message stays visible.
const statusTTL = 3 * time.Second

// MessageLevel grades status messages for rendering.
type MessageLevel int

const (
	LevelInfo MessageLevel = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// StatusMessage is a transient, auto-expiring notice shown in the footer.
type StatusMessage struct {
	Text  string
	Level MessageLevel
	At    time.Time
}
