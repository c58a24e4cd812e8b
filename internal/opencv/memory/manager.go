package memory

import (
	"sync"
	"time"

	"image-processor/internal/logger"
)

// Manager keeps an account of the native OpenCV memory held by safe.Mat
// values. It implements safe.MemoryTracker.
type Manager struct {
	allocations map[uint64]*AllocationRecord
	mu          sync.Mutex
	stats       Stats
	logger      logger.Logger
}

type AllocationRecord struct {
	Tag       string
	CreatedAt time.Time
	Size      int64
}

type Stats struct {
	TotalAllocated int64
	TotalReleased  int64
	ActiveMats     int64
	PeakBytes      int64
}

// InUse returns the number of bytes currently held by live Mats.
func (s Stats) InUse() int64 {
	return s.TotalAllocated - s.TotalReleased
}

func NewManager(log logger.Logger) *Manager {
	return &Manager{
		allocations: make(map[uint64]*AllocationRecord),
		logger:      log,
	}
}

func (m *Manager) TrackAllocation(id uint64, size int64, tag string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.allocations[id] = &AllocationRecord{Tag: tag, CreatedAt: time.Now(), Size: size}
	m.stats.TotalAllocated += size
	m.stats.ActiveMats++
	if inUse := m.stats.InUse(); inUse > m.stats.PeakBytes {
		m.stats.PeakBytes = inUse
	}
}

func (m *Manager) TrackDeallocation(id uint64, tag string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, exists := m.allocations[id]
	if !exists {
		m.logger.Warning("MemoryManager", "release of untracked Mat", map[string]interface{}{
			"id":  id,
			"tag": tag,
		})
		return
	}

	delete(m.allocations, id)
	m.stats.TotalReleased += record.Size
	m.stats.ActiveMats--
}

func (m *Manager) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Report logs the Mats that are still alive, typically right before exit.
// It returns the number of live Mats.
func (m *Manager) Report() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, record := range m.allocations {
		m.logger.Warning("MemoryManager", "Mat still alive", map[string]interface{}{
			"id":     id,
			"tag":    record.Tag,
			"bytes":  record.Size,
			"age_ms": time.Since(record.CreatedAt).Milliseconds(),
		})
	}
	m.logger.Debug("MemoryManager", "memory report", map[string]interface{}{
		"active_mats": m.stats.ActiveMats,
		"in_use":      m.stats.InUse(),
		"peak":        m.stats.PeakBytes,
	})
	return len(m.allocations)
}
