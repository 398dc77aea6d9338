package vault

// spinnerFrames are the braille frames shown while a sync is running.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧"}

// SyncState tracks whether a sync is in flight plus the spinner animation.
// At most one sync runs at any time; a second request while one is
// outstanding is rejected with a status notice, never queued.
type SyncState struct {
	syncing bool
	frame   int
}

func (s *SyncState) Syncing() bool { return s.syncing }

func (s *SyncState) Start() {
	s.syncing = true
	s.frame = 0
}

func (s *SyncState) Stop() {
	s.syncing = false
}

// Advance steps the animation one frame. Called once per UI tick.
func (s *SyncState) Advance() {
	if s.syncing {
		s.frame = (s.frame + 1) % len(spinnerFrames)
	}
}

// Spinner returns the current frame, or an empty string when idle.
func (s *SyncState) Spinner() string {
	if !s.syncing {
		return ""
	}
	return spinnerFrames[s.frame]
}
