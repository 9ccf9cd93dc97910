package block

import "github.com/ivanmarcin/sstblock/internal/metrics"

// metricsIterator decorates a plain iterator by composition (per the
// design note against subclassing a base cursor): after every successful
// positioning call it records the new (restartIndex, restartOffset) into
// the attached BlockMetrics.
type metricsIterator struct {
	*iterator
	metrics *metrics.BlockMetrics
}

func newMetricsIterator(it *iterator, m *metrics.BlockMetrics) Iterator {
	return &metricsIterator{iterator: it, metrics: m}
}

func (m *metricsIterator) record() {
	if m.metrics != nil && m.iterator.Valid() {
		restartIndex, restartOffset := m.iterator.restartPosition()
		m.metrics.RecordAccess(restartIndex, restartOffset)
	}
}

func (m *metricsIterator) Next() bool {
	ok := m.iterator.Next()
	m.record()
	return ok
}

func (m *metricsIterator) Prev() bool {
	ok := m.iterator.Prev()
	m.record()
	return ok
}

func (m *metricsIterator) Seek(target []byte) bool {
	ok := m.iterator.Seek(target)
	m.record()
	return ok
}

func (m *metricsIterator) SeekToFirst() bool {
	ok := m.iterator.SeekToFirst()
	m.record()
	return ok
}

func (m *metricsIterator) SeekToLast() bool {
	ok := m.iterator.SeekToLast()
	m.record()
	return ok
}
