package snapcache

import (
	"fmt"
	"sync/atomic"
)

// Stats tracks cache statistics
type Stats struct {
	Hits        atomic.Int64
	Misses      atomic.Int64
	Evictions   atomic.Int64
	Expirations atomic.Int64
}

// IncHits increments the hit counter
func (s *Stats) IncHits() {
	s.Hits.Add(1)
}

// IncMisses increments the miss counter
func (s *Stats) IncMisses() {
	s.Misses.Add(1)
}

// IncEvictions increments the eviction counter
func (s *Stats) IncEvictions() {
	s.Evictions.Add(1)
}

// IncExpirations increments the expiration counter
func (s *Stats) IncExpirations() {
	s.Expirations.Add(1)
}

// StatsSnapshot is a copy of the counters plus current size and capacity,
// safe to return from GetStats.
type StatsSnapshot struct {
	Size        int
	MaxSize     int
	Hits        int64
	Misses      int64
	Evictions   int64
	Expirations int64
}

// HitRate returns the fraction of gets that were hits, 0 when no gets
// have happened yet.
func (s StatsSnapshot) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// HitRatePercent formats the hit rate as a percentage, e.g. "66.67%".
func (s StatsSnapshot) HitRatePercent() string {
	return fmt.Sprintf("%.2f%%", s.HitRate()*100)
}
