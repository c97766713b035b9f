package notesync

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// notesync/prometheus package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordLoad is called once after the initial load.
	// notes is the number of notes installed, err is nil if successful.
	RecordLoad(duration time.Duration, notes int, err error)

	// RecordSave is called after each PUT completes.
	// bytes is the encoded document size.
	RecordSave(duration time.Duration, bytes int, err error)

	// RecordMutation is called after each mutation is processed.
	// op is "add", "delete", "set_text" or "flush"; changed reports whether
	// the collection was modified.
	RecordMutation(op string, changed bool, err error)

	// RecordCoalesced is called when a mutation joins an already queued save.
	RecordCoalesced()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(time.Duration, int, error) {}
func (NoopMetricsCollector) RecordSave(time.Duration, int, error) {}
func (NoopMetricsCollector) RecordMutation(string, bool, error)   {}
func (NoopMetricsCollector) RecordCoalesced()                     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount      atomic.Int64
	LoadErrors     atomic.Int64
	SaveCount      atomic.Int64
	SaveErrors     atomic.Int64
	SaveTotalNanos atomic.Int64
	SaveBytes      atomic.Int64
	MutationCount  atomic.Int64
	MutationNoops  atomic.Int64
	MutationErrors atomic.Int64
	CoalescedCount atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(_ time.Duration, _ int, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(duration time.Duration, bytes int, err error) {
	b.SaveCount.Add(1)
	b.SaveTotalNanos.Add(duration.Nanoseconds())
	b.SaveBytes.Add(int64(bytes))
	if err != nil {
		b.SaveErrors.Add(1)
	}
}

// RecordMutation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMutation(_ string, changed bool, err error) {
	b.MutationCount.Add(1)
	switch {
	case err != nil:
		b.MutationErrors.Add(1)
	case !changed:
		b.MutationNoops.Add(1)
	}
}

// RecordCoalesced implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCoalesced() {
	b.CoalescedCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:      b.LoadCount.Load(),
		LoadErrors:     b.LoadErrors.Load(),
		SaveCount:      b.SaveCount.Load(),
		SaveErrors:     b.SaveErrors.Load(),
		SaveAvgNanos:   b.getAvgSaveNanos(),
		SaveBytes:      b.SaveBytes.Load(),
		MutationCount:  b.MutationCount.Load(),
		MutationNoops:  b.MutationNoops.Load(),
		MutationErrors: b.MutationErrors.Load(),
		CoalescedCount: b.CoalescedCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSaveNanos() int64 {
	count := b.SaveCount.Load()
	if count == 0 {
		return 0
	}
	return b.SaveTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount      int64
	LoadErrors     int64
	SaveCount      int64
	SaveErrors     int64
	SaveAvgNanos   int64
	SaveBytes      int64
	MutationCount  int64
	MutationNoops  int64
	MutationErrors int64
	CoalescedCount int64
}
