package bitvec

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Implementations attached to a SyncBitVector are called concurrently.
type MetricsCollector interface {
	// RecordRebuild is called after each rank table rebuild.
	// words is the number of words scanned.
	RecordRebuild(words int, duration time.Duration)

	// RecordRank is called for each Rank0/Rank1 query. cacheHit is false when
	// the query had to rebuild the rank table first. Count is not reported.
	RecordRank(cacheHit bool)

	// RecordInvalidation is called each time Set drops the rank table.
	RecordInvalidation()

	// RecordOutOfRange is called when op rejects an index or size.
	RecordOutOfRange(op string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRebuild(int, time.Duration) {}
func (NoopMetricsCollector) RecordRank(bool)                  {}
func (NoopMetricsCollector) RecordInvalidation()              {}
func (NoopMetricsCollector) RecordOutOfRange(string)          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RebuildCount      atomic.Int64
	RebuildWords      atomic.Int64
	RebuildTotalNanos atomic.Int64
	RankQueries       atomic.Int64
	RankCacheHits     atomic.Int64
	Invalidations     atomic.Int64
	OutOfRange        atomic.Int64
}

// RecordRebuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRebuild(words int, duration time.Duration) {
	b.RebuildCount.Add(1)
	b.RebuildWords.Add(int64(words))
	b.RebuildTotalNanos.Add(duration.Nanoseconds())
}

// RecordRank implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRank(cacheHit bool) {
	b.RankQueries.Add(1)
	if cacheHit {
		b.RankCacheHits.Add(1)
	}
}

// RecordInvalidation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInvalidation() {
	b.Invalidations.Add(1)
}

// RecordOutOfRange implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOutOfRange(string) {
	b.OutOfRange.Add(1)
}

// BasicMetricsStats is a point-in-time snapshot of a BasicMetricsCollector.
type BasicMetricsStats struct {
	RebuildCount      int64
	RebuildWords      int64
	AvgRebuildLatency time.Duration
	RankQueries       int64
	RankCacheHitRate  float64
	Invalidations     int64
	OutOfRange        int64
}

// GetStats returns a snapshot of the collected metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		RebuildCount:  b.RebuildCount.Load(),
		RebuildWords:  b.RebuildWords.Load(),
		RankQueries:   b.RankQueries.Load(),
		Invalidations: b.Invalidations.Load(),
		OutOfRange:    b.OutOfRange.Load(),
	}
	if s.RebuildCount > 0 {
		s.AvgRebuildLatency = time.Duration(b.RebuildTotalNanos.Load() / s.RebuildCount)
	}
	if s.RankQueries > 0 {
		s.RankCacheHitRate = float64(b.RankCacheHits.Load()) / float64(s.RankQueries)
	}
	return s
}
