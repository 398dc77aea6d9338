package vault

import (
	"testing"
	"time"

	"github.com/leddt/bwtui/pkg/model"
)

func loadedState() *State {
	s := NewState()
	s.Items.Load(sampleItems())
	return s
}

func TestSelectionChangeClearsOTP(t *testing.T) {
	now := time.Unix(1000, 0)

	cases := []struct {
		name string
		move func(s *State)
	}{
		{"SelectNext", func(s *State) { s.SelectNext() }},
		{"SelectPrevious", func(s *State) { s.SelectPrevious() }},
		{"Select", func(s *State) { s.Select(2) }},
		{"PageDown", func(s *State) { s.PageDown(2) }},
		{"PageUp", func(s *State) { s.PageUp(2) }},
		{"Home", func(s *State) { s.Home() }},
		{"End", func(s *State) { s.End() }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := loadedState()
			s.OTP.Set("123456", now.Add(30*time.Second), "1")
			tc.move(s)
			if s.OTP.Code() != "" {
				t.Errorf("OTP code survived %s", tc.name)
			}
		})
	}
}

func TestFilterChangeClearsOTP(t *testing.T) {
	now := time.Unix(1000, 0)

	t.Run("Query", func(t *testing.T) {
		s := loadedState()
		s.OTP.Set("123456", now.Add(30*time.Second), "1")
		s.SetQuery("git")
		if s.OTP.Code() != "" {
			t.Error("OTP code survived a query change")
		}
	})
	t.Run("TypeFilter", func(t *testing.T) {
		s := loadedState()
		s.OTP.Set("123456", now.Add(30*time.Second), "1")
		s.SetTypeFilter(model.TypeLogin)
		if s.OTP.Code() != "" {
			t.Error("OTP code survived a type filter change")
		}
	})
}

func TestTabCycling(t *testing.T) {
	s := loadedState()

	forward := []model.ItemType{
		model.TypeLogin, model.TypeSecureNote, model.TypeCard, model.TypeIdentity, 0,
	}
	for _, want := range forward {
		s.CycleNextTab()
		if got := s.Items.TypeFilter(); got != want {
			t.Fatalf("CycleNextTab() landed on %v, want %v", got, want)
		}
	}

	// One step back from "all" wraps to the last tab.
	s.CyclePreviousTab()
	if got := s.Items.TypeFilter(); got != model.TypeIdentity {
		t.Errorf("CyclePreviousTab() = %v, want Identity", got)
	}
}

func TestStatusExpiry(t *testing.T) {
	s := NewState()
	now := time.Now()

	s.SetStatus("Vault synced successfully", LevelSuccess)
	msg := s.Status()
	if msg == nil || msg.Text != "Vault synced successfully" {
		t.Fatalf("Status() = %+v", msg)
	}

	s.ExpireStatus(now.Add(2 * time.Second))
	if s.Status() == nil {
		t.Error("status expired before its TTL")
	}

	s.ExpireStatus(now.Add(4 * time.Second))
	if s.Status() != nil {
		t.Error("status survived past its TTL")
	}
}

func TestNewerStatusReplacesOlder(t *testing.T) {
	s := NewState()
	s.SetStatus("first", LevelInfo)
	s.SetStatus("second", LevelWarning)

	msg := s.Status()
	if msg == nil || msg.Text != "second" || msg.Level != LevelWarning {
		t.Errorf("Status() = %+v, want second/warning", msg)
	}
}
