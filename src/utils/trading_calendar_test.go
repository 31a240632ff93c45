package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveAnchorWithoutSnap(t *testing.T) {
	in := time.Date(2024, 3, 23, 17, 45, 0, 0, time.FixedZone("IST", 19800))

	assert.Equal(t, date(2024, 3, 23), ResolveAnchor(in, false, "xnys"))
}

func TestResolveAnchorSnapsWeekendToFriday(t *testing.T) {
	assert.Equal(t, date(2024, 3, 22), ResolveAnchor(date(2024, 3, 23), true, "xnys"))
	assert.Equal(t, date(2024, 3, 22), ResolveAnchor(date(2024, 3, 24), true, "XNYS"))
}

func TestResolveAnchorKeepsSession(t *testing.T) {
	assert.Equal(t, date(2024, 3, 20), ResolveAnchor(date(2024, 3, 20), true, "xnys"))
}

func TestFallbackCalendar(t *testing.T) {
	tc := &TradingCalendar{Fallback: true, Timezone: time.UTC}

	assert.True(t, tc.IsTradingDay(date(2024, 3, 22)))
	assert.False(t, tc.IsTradingDay(date(2024, 3, 23)))
	assert.False(t, tc.IsTradingDay(date(2024, 3, 24)))
	assert.Equal(t, date(2024, 3, 22), tc.LastSession(date(2024, 3, 24)))
	assert.Equal(t, date(2024, 3, 25), tc.LastSession(date(2024, 3, 25)))
}
