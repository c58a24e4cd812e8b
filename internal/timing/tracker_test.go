package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryOf(t *testing.T, tt *Tracker, operation string) Summary {
	t.Helper()
	for _, s := range tt.Summaries() {
		if s.Operation == operation {
			return s
		}
	}
	t.Fatalf("no timings recorded for %q", operation)
	return Summary{}
}

func TestTracker_Record(t *testing.T) {
	tt := NewTracker()
	tt.Record("enhance", 10*time.Millisecond)
	tt.Record("enhance", 30*time.Millisecond)

	s := summaryOf(t, tt, "enhance")
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 40*time.Millisecond, s.Total)
	assert.Equal(t, 30*time.Millisecond, s.Max)
	assert.Equal(t, 30*time.Millisecond, s.Last)
	assert.Equal(t, 20*time.Millisecond, s.Average())
}

func TestTracker_Start(t *testing.T) {
	tt := NewTracker()
	clock := time.Unix(0, 0)
	tt.now = func() time.Time { return clock }

	stop := tt.Start("load")
	clock = clock.Add(25 * time.Millisecond)

	assert.Equal(t, 25*time.Millisecond, stop())
	assert.Equal(t, 1, summaryOf(t, tt, "load").Count)
}

func TestTracker_Summaries(t *testing.T) {
	tt := NewTracker()
	assert.Empty(t, tt.Summaries())
	assert.Zero(t, Summary{}.Average())

	tt.Record("preview", time.Millisecond)
	tt.Record("filter", time.Millisecond)

	all := tt.Summaries()
	require.Len(t, all, 2)
	assert.Equal(t, "filter", all[0].Operation)
	assert.Equal(t, "preview", all[1].Operation)
}
