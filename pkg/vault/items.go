package vault

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/leddt/bwtui/pkg/model"
)

// Items holds the working set of vault items plus the derived filtered view.
// The view is a pure function of (working set, query, type filter) and is
// recomputed wholesale whenever any input changes.
type Items struct {
	all      []model.VaultItem
	filtered []model.VaultItem

	query      string
	typeFilter model.ItemType // zero value means no type filter

	selected int // index into filtered; -1 when the view is empty

	fuzzyEnabled  bool
	caseSensitive bool

	initialLoadComplete bool
	secretsAvailable    bool
}

// NewItems returns an empty working set with fuzzy matching enabled.
func NewItems() *Items {
	return &Items{selected: -1, fuzzyEnabled: true}
}

// SetMatchOptions configures the search behavior. Exact mode replaces fuzzy
// subsequence scoring with substring containment.
func (it *Items) SetMatchOptions(fuzzyEnabled, caseSensitive bool) {
	it.fuzzyEnabled = fuzzyEnabled
	it.caseSensitive = caseSensitive
	it.applyFilter()
}

// LoadCached installs a secret-stripped working set restored from the cache.
func (it *Items) LoadCached(items []model.VaultItem) {
	it.all = items
	it.initialLoadComplete = true
	it.secretsAvailable = false
	it.applyFilter()
}

// Load installs the full working set from a completed sync.
func (it *Items) Load(items []model.VaultItem) {
	it.all = items
	it.initialLoadComplete = true
	it.secretsAvailable = true
	it.applyFilter()
}

// SetQuery replaces the text query and recomputes the view.
func (it *Items) SetQuery(q string) {
	it.query = q
	it.applyFilter()
}

// SetTypeFilter restricts the view to one item type; pass zero to show all.
func (it *Items) SetTypeFilter(t model.ItemType) {
	it.typeFilter = t
	it.applyFilter()
}

func (it *Items) Query() string               { return it.query }
func (it *Items) TypeFilter() model.ItemType  { return it.typeFilter }
func (it *Items) InitialLoadComplete() bool   { return it.initialLoadComplete }
func (it *Items) SecretsAvailable() bool      { return it.secretsAvailable }
func (it *Items) Len() int                    { return len(it.filtered) }
func (it *Items) TotalLen() int               { return len(it.all) }
func (it *Items) SelectedIndex() int          { return it.selected }
func (it *Items) At(i int) *model.VaultItem   { return &it.filtered[i] }

// Selected returns the item under the cursor, or nil when the view is empty.
func (it *Items) Selected() *model.VaultItem {
	if it.selected < 0 || it.selected >= len(it.filtered) {
		return nil
	}
	return &it.filtered[it.selected]
}

// Select moves the cursor to index, clamping out-of-range values to the last
// valid index. No-op on an empty view.
func (it *Items) Select(index int) {
	if len(it.filtered) == 0 {
		it.selected = -1
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(it.filtered) {
		index = len(it.filtered) - 1
	}
	it.selected = index
}

// Next advances the cursor, wrapping from the last item to the first.
func (it *Items) Next() {
	if len(it.filtered) == 0 {
		return
	}
	it.selected = (it.selected + 1) % len(it.filtered)
}

// Previous moves the cursor back, wrapping from the first item to the last.
func (it *Items) Previous() {
	if len(it.filtered) == 0 {
		return
	}
	if it.selected <= 0 {
		it.selected = len(it.filtered) - 1
	} else {
		it.selected--
	}
}

// PageUp moves the cursor up by n, clamping at the top.
func (it *Items) PageUp(n int) {
	if len(it.filtered) == 0 {
		return
	}
	it.selected -= n
	if it.selected < 0 {
		it.selected = 0
	}
}

// PageDown moves the cursor down by n, clamping at the bottom.
func (it *Items) PageDown(n int) {
	if len(it.filtered) == 0 {
		return
	}
	it.selected += n
	if it.selected >= len(it.filtered) {
		it.selected = len(it.filtered) - 1
	}
}

// Home jumps to the first item.
func (it *Items) Home() {
	if len(it.filtered) == 0 {
		return
	}
	it.selected = 0
}

// End jumps to the last item.
func (it *Items) End() {
	if len(it.filtered) == 0 {
		return
	}
	it.selected = len(it.filtered) - 1
}

func (it *Items) applyFilter() {
	candidates := it.all
	if it.typeFilter != 0 {
		restricted := make([]model.VaultItem, 0, len(candidates))
		for _, item := range candidates {
			if item.Type == it.typeFilter {
				restricted = append(restricted, item)
			}
		}
		candidates = restricted
	}

	if it.query == "" {
		view := make([]model.VaultItem, len(candidates))
		copy(view, candidates)
		sort.SliceStable(view, func(i, j int) bool {
			if view[i].Favorite != view[j].Favorite {
				return view[i].Favorite
			}
			return strings.ToLower(view[i].Name) < strings.ToLower(view[j].Name)
		})
		it.filtered = view
	} else if it.fuzzyEnabled {
		it.filtered = it.fuzzyMatch(candidates)
	} else {
		it.filtered = it.substringMatch(candidates)
	}

	if len(it.filtered) == 0 {
		it.selected = -1
	} else if it.selected < 0 || it.selected >= len(it.filtered) {
		it.selected = 0
	}
}

func (it *Items) fuzzyMatch(candidates []model.VaultItem) []model.VaultItem {
	texts := make([]string, len(candidates))
	for i := range candidates {
		texts[i] = it.searchableText(&candidates[i])
	}

	query := it.query
	if !it.caseSensitive {
		query = strings.ToLower(query)
	}

	// fuzzy.Find returns matches sorted by score descending with original
	// order preserved among equal scores.
	matches := fuzzy.Find(query, texts)
	view := make([]model.VaultItem, 0, len(matches))
	for _, m := range matches {
		view = append(view, candidates[m.Index])
	}
	return view
}

func (it *Items) substringMatch(candidates []model.VaultItem) []model.VaultItem {
	query := it.query
	if !it.caseSensitive {
		query = strings.ToLower(query)
	}

	type scored struct {
		item  model.VaultItem
		score int
	}
	var hits []scored
	for i := range candidates {
		text := it.searchableText(&candidates[i])
		offset := strings.Index(text, query)
		if offset < 0 {
			continue
		}
		// Earlier matches rank higher.
		hits = append(hits, scored{item: candidates[i], score: 1000 - offset})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	view := make([]model.VaultItem, 0, len(hits))
	for _, h := range hits {
		view = append(view, h.item)
	}
	return view
}

// searchableText builds the composite string queries match against: the item
// name, login username, and URL domain.
func (it *Items) searchableText(item *model.VaultItem) string {
	var b strings.Builder
	b.WriteString(item.Name)
	if u := item.Username(); u != "" {
		b.WriteByte(' ')
		b.WriteString(u)
	}
	if d := item.Domain(); d != "" {
		b.WriteByte(' ')
		b.WriteString(d)
	}
	if it.caseSensitive {
		return b.String()
	}
	return strings.ToLower(b.String())
}
