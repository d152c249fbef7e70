package cache

// Stats is a read-only snapshot of cache accounting. Hits, Misses and
// Evictions increase monotonically from construction; Clear does not reset
// them. Size is the tracked live entry count at snapshot time.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
}

// HitRate returns Hits / (Hits + Misses), or 0 when no lookups were recorded.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
