package vault

import (
	"testing"

	"github.com/leddt/bwtui/pkg/model"
)

func loginItem(id, name, username string) model.VaultItem {
	return model.VaultItem{
		ID:    id,
		Name:  name,
		Type:  model.TypeLogin,
		Login: &model.LoginData{Username: username},
	}
}

func sampleItems() []model.VaultItem {
	note := model.VaultItem{ID: "4", Name: "Bank Note", Type: model.TypeSecureNote}
	return []model.VaultItem{
		loginItem("1", "GitHub", "octocat"),
		loginItem("2", "Gmail", "user@gmail.com"),
		loginItem("3", "Amazon", "shopper"),
		note,
	}
}

func TestEmptyQueryShowsAllSorted(t *testing.T) {
	it := NewItems()
	it.Load(sampleItems())

	if it.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", it.Len())
	}
	// Alphabetical by name, case-insensitive.
	want := []string{"Amazon", "Bank Note", "GitHub", "Gmail"}
	for i, name := range want {
		if got := it.At(i).Name; got != name {
			t.Errorf("position %d = %q, want %q", i, got, name)
		}
	}
}

func TestFavoritesRankFirst(t *testing.T) {
	items := sampleItems()
	items[1].Favorite = true // Gmail
	it := NewItems()
	it.Load(items)

	if got := it.At(0).Name; got != "Gmail" {
		t.Errorf("first item = %q, want Gmail", got)
	}
	want := []string{"Gmail", "Amazon", "Bank Note", "GitHub"}
	for i, name := range want {
		if got := it.At(i).Name; got != name {
			t.Errorf("position %d = %q, want %q", i, got, name)
		}
	}
}

func TestQueryNarrowsView(t *testing.T) {
	it := NewItems()
	it.Load(sampleItems())

	it.SetQuery("git")
	if it.Len() != 1 {
		t.Fatalf("Len() after query = %d, want 1", it.Len())
	}
	if got := it.At(0).Name; got != "GitHub" {
		t.Errorf("match = %q, want GitHub", got)
	}

	// Clearing the query restores the full sorted view.
	it.SetQuery("")
	if it.Len() != 4 {
		t.Errorf("Len() after clear = %d, want 4", it.Len())
	}
}

func TestQueryMatchesUsernameAndDomain(t *testing.T) {
	items := []model.VaultItem{
		{ID: "1", Name: "Work", Type: model.TypeLogin, Login: &model.LoginData{
			Username: "alice@corp.example",
			URIs:     []model.URI{{URI: "https://portal.corp.example/login"}},
		}},
		loginItem("2", "Personal", "bob"),
	}
	it := NewItems()
	it.Load(items)

	t.Run("Username", func(t *testing.T) {
		it.SetQuery("alice")
		if it.Len() != 1 || it.At(0).ID != "1" {
			t.Errorf("query alice matched %d items", it.Len())
		}
	})
	t.Run("Domain", func(t *testing.T) {
		it.SetQuery("portal")
		if it.Len() != 1 || it.At(0).ID != "1" {
			t.Errorf("query portal matched %d items", it.Len())
		}
	})
}

func TestFilterIsIdempotent(t *testing.T) {
	it := NewItems()
	it.Load(sampleItems())
	it.SetQuery("a")

	first := make([]string, it.Len())
	for i := 0; i < it.Len(); i++ {
		first[i] = it.At(i).ID
	}

	// Re-applying the identical query must not change order or membership.
	it.SetQuery("a")
	if it.Len() != len(first) {
		t.Fatalf("Len() changed on reapply: %d vs %d", it.Len(), len(first))
	}
	for i, id := range first {
		if got := it.At(i).ID; got != id {
			t.Errorf("position %d changed: %q vs %q", i, got, id)
		}
	}
}

func TestTypeFilterRestrictsView(t *testing.T) {
	it := NewItems()
	it.Load(sampleItems())

	it.SetTypeFilter(model.TypeSecureNote)
	if it.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", it.Len())
	}
	if got := it.At(0).Name; got != "Bank Note" {
		t.Errorf("item = %q, want Bank Note", got)
	}

	// Query composes with the type filter.
	it.SetQuery("git")
	if it.Len() != 0 {
		t.Errorf("Len() with mismatched query = %d, want 0", it.Len())
	}
	if it.SelectedIndex() != -1 {
		t.Errorf("SelectedIndex() on empty view = %d, want -1", it.SelectedIndex())
	}

	it.SetTypeFilter(0)
	it.SetQuery("")
	if it.Len() != 4 {
		t.Errorf("Len() after reset = %d, want 4", it.Len())
	}
}

func TestSelectionInvariant(t *testing.T) {
	it := NewItems()

	t.Run("EmptyViewHasNoSelection", func(t *testing.T) {
		if it.Selected() != nil {
			t.Error("Selected() on empty view should be nil")
		}
		if it.SelectedIndex() != -1 {
			t.Errorf("SelectedIndex() = %d, want -1", it.SelectedIndex())
		}
	})

	it.Load(sampleItems())

	t.Run("LoadSelectsFirst", func(t *testing.T) {
		if it.SelectedIndex() != 0 {
			t.Errorf("SelectedIndex() = %d, want 0", it.SelectedIndex())
		}
	})

	t.Run("OutOfRangeClampsToLast", func(t *testing.T) {
		it.Select(10)
		if it.SelectedIndex() != 3 {
			t.Errorf("SelectedIndex() = %d, want 3", it.SelectedIndex())
		}
	})

	t.Run("ShrinkResetsToTop", func(t *testing.T) {
		it.SetQuery("git")
		if it.SelectedIndex() != 0 {
			t.Errorf("SelectedIndex() after narrowing = %d, want 0", it.SelectedIndex())
		}
	})
}

func TestNavigationWraps(t *testing.T) {
	it := NewItems()
	it.Load(sampleItems())
	n := it.Len()

	it.Select(n - 1)
	it.Next()
	if it.SelectedIndex() != 0 {
		t.Errorf("Next() from last = %d, want 0", it.SelectedIndex())
	}

	it.Previous()
	if it.SelectedIndex() != n-1 {
		t.Errorf("Previous() from first = %d, want %d", it.SelectedIndex(), n-1)
	}
}

func TestPageMovementClamps(t *testing.T) {
	it := NewItems()
	it.Load(sampleItems())

	it.PageDown(100)
	if it.SelectedIndex() != 3 {
		t.Errorf("PageDown clamped to %d, want 3", it.SelectedIndex())
	}
	it.PageUp(100)
	if it.SelectedIndex() != 0 {
		t.Errorf("PageUp clamped to %d, want 0", it.SelectedIndex())
	}

	it.End()
	if it.SelectedIndex() != 3 {
		t.Errorf("End() = %d, want 3", it.SelectedIndex())
	}
	it.Home()
	if it.SelectedIndex() != 0 {
		t.Errorf("Home() = %d, want 0", it.SelectedIndex())
	}
}

func TestNavigationOnEmptyViewIsNoop(t *testing.T) {
	it := NewItems()
	it.Next()
	it.Previous()
	it.PageDown(5)
	it.PageUp(5)
	it.Home()
	it.End()
	it.Select(0)
	if it.SelectedIndex() != -1 {
		t.Errorf("SelectedIndex() = %d, want -1", it.SelectedIndex())
	}
}

func TestExactMatchMode(t *testing.T) {
	it := NewItems()
	it.SetMatchOptions(false, false)
	it.Load(sampleItems())

	// "gml" is a fuzzy subsequence of Gmail but not a substring.
	it.SetQuery("gml")
	if it.Len() != 0 {
		t.Errorf("substring mode matched %d items for gml, want 0", it.Len())
	}

	it.SetQuery("mail")
	if it.Len() != 1 || it.At(0).Name != "Gmail" {
		t.Errorf("substring mode: got %d matches", it.Len())
	}
}

func TestCaseSensitiveMode(t *testing.T) {
	it := NewItems()
	it.SetMatchOptions(false, true)
	it.Load(sampleItems())

	it.SetQuery("github")
	if it.Len() != 0 {
		t.Errorf("case-sensitive query matched %d items, want 0", it.Len())
	}
	it.SetQuery("GitHub")
	if it.Len() != 1 {
		t.Errorf("exact-case query matched %d items, want 1", it.Len())
	}
}

func TestLoadCachedMarksSecretsUnavailable(t *testing.T) {
	it := NewItems()
	it.LoadCached(sampleItems())

	if !it.InitialLoadComplete() {
		t.Error("InitialLoadComplete() = false after cached load")
	}
	if it.SecretsAvailable() {
		t.Error("SecretsAvailable() = true after cached load")
	}

	it.Load(sampleItems())
	if !it.SecretsAvailable() {
		t.Error("SecretsAvailable() = false after full load")
	}
}
