package quota

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-detective/internal/model"
)

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestTracker_FreeUserAdmittedFiveTimes(t *testing.T) {
	tracker := NewTracker(5, fixedClock(time.Date(2026, 3, 10, 15, 4, 0, 0, time.UTC)))
	state := model.QuotaState{}

	for i := 1; i <= 5; i++ {
		next, _, err := tracker.Admit(state)
		require.NoError(t, err, "attempt %d", i)
		state = tracker.Record(next)
	}
	assert.Equal(t, 5, state.ScansToday)

	next, rolled, err := tracker.Admit(state)
	assert.ErrorIs(t, err, model.ErrQuotaExceeded)
	assert.False(t, rolled)
	assert.Equal(t, 5, next.ScansToday, "rejected attempts do not increment")
}

func TestTracker_FirstAttemptRollsOver(t *testing.T) {
	tracker := NewTracker(5, fixedClock(time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC)))

	next, rolled, err := tracker.Admit(model.QuotaState{})

	require.NoError(t, err)
	assert.True(t, rolled)
	assert.Equal(t, 0, next.ScansToday)
	assert.Equal(t, date(2026, 3, 10), next.LastScanDate)
}

func TestTracker_DayRollover(t *testing.T) {
	tracker := NewTracker(5, fixedClock(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)))
	state := model.QuotaState{ScansToday: 5, LastScanDate: date(2026, 3, 9)}

	next, rolled, err := tracker.Admit(state)

	require.NoError(t, err)
	assert.True(t, rolled)
	assert.Equal(t, 0, next.ScansToday)
	assert.Equal(t, date(2026, 3, 10), next.LastScanDate)
	assert.Equal(t, 5, state.ScansToday, "input state is not mutated")
}

func TestTracker_RolloverUsesUTC(t *testing.T) {
	// 23:30 in New York on the 9th is already the 10th in UTC.
	ny := time.FixedZone("EST", -5*60*60)
	tracker := NewTracker(5, fixedClock(time.Date(2026, 3, 9, 23, 30, 0, 0, ny)))

	state := model.QuotaState{ScansToday: 5, LastScanDate: date(2026, 3, 9)}
	next, rolled, err := tracker.Admit(state)

	require.NoError(t, err)
	assert.True(t, rolled)
	assert.Equal(t, date(2026, 3, 10), next.LastScanDate)
}

func TestTracker_RolloverPersistsOnRejection(t *testing.T) {
	tracker := NewTracker(1, fixedClock(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)))

	// Stored with a time-of-day component; still the same date.
	stored := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)
	next, rolled, err := tracker.Admit(model.QuotaState{ScansToday: 1, LastScanDate: &stored})

	assert.ErrorIs(t, err, model.ErrQuotaExceeded)
	assert.False(t, rolled)
	assert.Equal(t, 1, next.ScansToday)
}

func TestTracker_PremiumUnbounded(t *testing.T) {
	tracker := NewTracker(5, fixedClock(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)))
	state := model.QuotaState{IsPremium: true, ScansToday: 1000, LastScanDate: date(2026, 3, 10)}

	for i := 0; i < 50; i++ {
		next, _, err := tracker.Admit(state)
		require.NoError(t, err)
		state = tracker.Record(next)
	}
	assert.Equal(t, 1050, state.ScansToday)
	assert.Equal(t, -1, tracker.Remaining(state))
}

// Premium status currently never expires, even long after the subscription
// record's expires_at. This pins the existing behaviour until product intent
// is clarified.
func TestTracker_PremiumNeverExpires(t *testing.T) {
	activated := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tracker := NewTracker(5, fixedClock(activated.AddDate(1, 0, 0)))

	state := tracker.Activate(model.QuotaState{ScansToday: 5, LastScanDate: date(2026, 12, 31)})

	_, _, err := tracker.Admit(state)
	assert.NoError(t, err)
	assert.True(t, state.IsPremium)
}

func TestTracker_Activate(t *testing.T) {
	tracker := NewTracker(5, nil)
	state := model.QuotaState{ScansToday: 5, LastScanDate: date(2026, 3, 10)}

	next := tracker.Activate(state)

	assert.True(t, next.IsPremium)
	assert.Equal(t, 5, next.ScansToday)
	assert.False(t, state.IsPremium)
}

func TestTracker_Remaining(t *testing.T) {
	tracker := NewTracker(5, fixedClock(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)))

	tests := []struct {
		name     string
		state    model.QuotaState
		expected int
	}{
		{"fresh user", model.QuotaState{}, 5},
		{"used today", model.QuotaState{ScansToday: 3, LastScanDate: date(2026, 3, 10)}, 2},
		{"exhausted", model.QuotaState{ScansToday: 7, LastScanDate: date(2026, 3, 10)}, 0},
		{"used yesterday", model.QuotaState{ScansToday: 5, LastScanDate: date(2026, 3, 9)}, 5},
		{"premium", model.QuotaState{IsPremium: true}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tracker.Remaining(tt.state))
		})
	}
}

func TestNewTracker_Defaults(t *testing.T) {
	tracker := NewTracker(0, nil)

	assert.Equal(t, DefaultDailyLimit, tracker.DailyLimit())
	assert.WithinDuration(t, time.Now().UTC(), tracker.Today(), 24*time.Hour)
}
