// Package vault holds the concurrent state and orchestration core: the
// filtering engine over vault items, the session mode machine, the sync and
// one-time-code lifecycles, and the orchestrator that drives the external
// CLI off the UI goroutine.
//
// Everything in this package is owned by the UI goroutine. Background tasks
// communicate exclusively by value through the orchestrator's result
// channels, so no locking is needed.
package vault

import (
	"time"

	"github.com/leddt/bwtui/pkg/model"
)

// State composes the sub-states mutated by the UI goroutine.
type State struct {
	Items *Items
	Mode  Mode
	Sync  SyncState
	OTP   OTPState

	status *StatusMessage
}

func NewState() *State {
	return &State{Items: NewItems()}
}

// SetStatus replaces the footer notice.
func (s *State) SetStatus(text string, level MessageLevel) {
	s.status = &StatusMessage{Text: text, Level: level, At: time.Now()}
}

// Status returns the current notice, or nil.
func (s *State) Status() *StatusMessage { return s.status }

// ExpireStatus clears the notice once it is older than its display window.
func (s *State) ExpireStatus(now time.Time) {
	if s.status != nil && now.Sub(s.status.At) > statusTTL {
		s.status = nil
	}
}

// Selection and filter mutations clear the one-time-code state: a code must
// never outlive the selection or view it was generated under.

func (s *State) SelectNext() {
	s.Items.Next()
	s.OTP.Clear()
}

func (s *State) SelectPrevious() {
	s.Items.Previous()
	s.OTP.Clear()
}

func (s *State) Select(index int) {
	s.Items.Select(index)
	s.OTP.Clear()
}

func (s *State) PageUp(n int) {
	s.Items.PageUp(n)
	s.OTP.Clear()
}

func (s *State) PageDown(n int) {
	s.Items.PageDown(n)
	s.OTP.Clear()
}

func (s *State) Home() {
	s.Items.Home()
	s.OTP.Clear()
}

func (s *State) End() {
	s.Items.End()
	s.OTP.Clear()
}

func (s *State) SetQuery(q string) {
	s.Items.SetQuery(q)
	s.OTP.Clear()
}

func (s *State) SetTypeFilter(t model.ItemType) {
	s.Items.SetTypeFilter(t)
	s.OTP.Clear()
}

// tabOrder is the type-filter cycle: all, then each item type.
var tabOrder = []model.ItemType{0, model.TypeLogin, model.TypeSecureNote, model.TypeCard, model.TypeIdentity}

// CycleNextTab advances the type filter to the next tab, wrapping around.
func (s *State) CycleNextTab() {
	s.SetTypeFilter(tabOrder[(s.tabIndex()+1)%len(tabOrder)])
}

// CyclePreviousTab moves the type filter to the previous tab, wrapping.
func (s *State) CyclePreviousTab() {
	s.SetTypeFilter(tabOrder[(s.tabIndex()+len(tabOrder)-1)%len(tabOrder)])
}

func (s *State) tabIndex() int {
	for i, t := range tabOrder {
		if t == s.Items.TypeFilter() {
			return i
		}
	}
	return 0
}
