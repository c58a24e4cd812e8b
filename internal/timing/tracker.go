package timing

import (
	"sort"
	"sync"
	"time"
)

// Summary aggregates the recorded durations of one operation.
type Summary struct {
	Operation string
	Count     int
	Total     time.Duration
	Max       time.Duration
	Last      time.Duration
}

// Average returns the mean duration, or zero when nothing was recorded.
func (s Summary) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Tracker records how long named operations take.
type Tracker struct {
	mu        sync.RWMutex
	summaries map[string]*Summary
	now       func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		summaries: make(map[string]*Summary),
		now:       time.Now,
	}
}

// Start begins timing operation; the returned func records the elapsed
// time and returns it.
func (tt *Tracker) Start(operation string) func() time.Duration {
	start := tt.now()
	return func() time.Duration {
		elapsed := tt.now().Sub(start)
		tt.Record(operation, elapsed)
		return elapsed
	}
}

func (tt *Tracker) Record(operation string, d time.Duration) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	s, ok := tt.summaries[operation]
	if !ok {
		s = &Summary{Operation: operation}
		tt.summaries[operation] = s
	}
	s.Count++
	s.Total += d
	s.Last = d
	if d > s.Max {
		s.Max = d
	}
}

// Summaries returns every operation sorted by name.
func (tt *Tracker) Summaries() []Summary {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	result := make([]Summary, 0, len(tt.summaries))
	for _, s := range tt.summaries {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Operation < result[j].Operation })
	return result
}
