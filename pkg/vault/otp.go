package vault

import "time"

// otpDebounce is the minimum spacing between remote fetch attempts.
const otpDebounce = time.Second

// OTPState is the short-lived one-time-code lifecycle. A code is only ever
// displayed or copied while its owning item id matches the current
// selection; any selection or filter change clears the state outright.
type OTPState struct {
	code        string
	expiresAt   time.Time
	itemID      string
	loading     bool
	copyPending bool
	lastFetch   time.Time
}

// Set installs a fresh code stamped with its owning item id and expiry.
func (o *OTPState) Set(code string, expiresAt time.Time, itemID string) {
	o.code = code
	o.expiresAt = expiresAt
	o.itemID = itemID
	o.copyPending = false
}

// Clear drops the code and every associated flag except the fetch debounce
// timestamp, which keeps rate-limiting across selection changes.
func (o *OTPState) Clear() {
	o.code = ""
	o.expiresAt = time.Time{}
	o.itemID = ""
	o.loading = false
	o.copyPending = false
}

func (o *OTPState) Code() string          { return o.code }
func (o *OTPState) Loading() bool         { return o.loading }
func (o *OTPState) SetLoading(v bool)     { o.loading = v }
func (o *OTPState) CopyPending() bool     { return o.copyPending }
func (o *OTPState) SetCopyPending(v bool) { o.copyPending = v }

// BelongsTo reports whether the held code was generated for the given item.
func (o *OTPState) BelongsTo(itemID string) bool {
	return o.code != "" && o.itemID == itemID
}

// Expired reports whether the held code has passed its window boundary.
func (o *OTPState) Expired(now time.Time) bool {
	return o.code != "" && !now.Before(o.expiresAt)
}

// Remaining returns the seconds of validity left, or zero with ok=false when
// no live code is held.
func (o *OTPState) Remaining(now time.Time) (int, bool) {
	if o.code == "" || o.Expired(now) {
		return 0, false
	}
	return int(o.expiresAt.Sub(now).Round(time.Second) / time.Second), true
}

// CanFetch reports whether a new remote fetch may start: none in flight and
// at least one second since the previous attempt.
func (o *OTPState) CanFetch(now time.Time) bool {
	return !o.loading && now.Sub(o.lastFetch) >= otpDebounce
}

// MarkFetch records the start of a fetch attempt for debouncing.
func (o *OTPState) MarkFetch(now time.Time) {
	o.lastFetch = now
}
