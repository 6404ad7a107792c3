// Package quota implements the free-tier daily scan allowance and the premium
// entitlement that bypasses it.
package quota

import (
	"time"

	"grocery-detective/internal/model"
)

// DefaultDailyLimit is the number of scans a free user may run per UTC day.
const DefaultDailyLimit = 5

// Tracker applies the admission rules to a user's QuotaState. It is stateless;
// persisting the returned state is the caller's job.
type Tracker struct {
	dailyLimit int
	now        func() time.Time
}

// NewTracker creates a tracker. A non-positive limit uses DefaultDailyLimit and
// a nil clock uses time.Now.
func NewTracker(dailyLimit int, now func() time.Time) *Tracker {
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyLimit
	}
	if now == nil {
		now = time.Now
	}
	return &Tracker{dailyLimit: dailyLimit, now: now}
}

// DailyLimit returns the free-tier scans allowed per day.
func (t *Tracker) DailyLimit() int {
	return t.dailyLimit
}

// Today returns the current UTC calendar date at midnight.
func (t *Tracker) Today() time.Time {
	return truncateToDate(t.now())
}

// Admit decides whether a scan attempt may proceed. The first attempt on a new
// UTC date resets the counter; rolled reports that and the returned state must
// then be persisted even when the attempt is rejected. Rejection returns
// model.ErrQuotaExceeded.
func (t *Tracker) Admit(state model.QuotaState) (next model.QuotaState, rolled bool, err error) {
	next = state
	today := t.Today()

	if next.LastScanDate == nil || !truncateToDate(*next.LastScanDate).Equal(today) {
		next.ScansToday = 0
		next.LastScanDate = &today
		rolled = true
	}

	// Premium never lapses here even though subscriptions carry an expiry.
	if next.IsPremium {
		return next, rolled, nil
	}

	if next.ScansToday >= t.dailyLimit {
		return next, rolled, model.ErrQuotaExceeded
	}

	return next, rolled, nil
}

// Record counts a completed scan.
func (t *Tracker) Record(state model.QuotaState) model.QuotaState {
	state.ScansToday++
	return state
}

// Activate grants premium. There is no expiry.
func (t *Tracker) Activate(state model.QuotaState) model.QuotaState {
	state.IsPremium = true
	return state
}

// Remaining returns how many scans are left today, or -1 for premium users.
func (t *Tracker) Remaining(state model.QuotaState) int {
	if state.IsPremium {
		return -1
	}
	if state.LastScanDate == nil || !truncateToDate(*state.LastScanDate).Equal(t.Today()) {
		return t.dailyLimit
	}
	return max(0, t.dailyLimit-state.ScansToday)
}

func truncateToDate(ts time.Time) time.Time {
	ts = ts.UTC()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}
