package smsgateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/krishisheba/agri-advisory/internal/domain"
	"github.com/krishisheba/agri-advisory/internal/observability"
)

// DedupingSender wraps an AlertSender with an in-memory LRU of recently sent
// alerts. Replayed requests produce the same deterministic bundle ID, so the
// (bundle, crop) pair is enough to suppress duplicate SMS sends.
type DedupingSender struct {
	inner   domain.AlertSender
	seen    *lruSet
	metrics *observability.Metrics
}

// NewDedupingSender creates a dedup decorator around a sender.
func NewDedupingSender(inner domain.AlertSender, maxEntries int, metrics *observability.Metrics) *DedupingSender {
	return &DedupingSender{
		inner:   inner,
		seen:    newLRUSet(maxEntries),
		metrics: metrics,
	}
}

func (d *DedupingSender) SendAlert(ctx context.Context, alert domain.CriticalAlert) error {
	key := fmt.Sprintf("%s|%s", alert.BundleID, alert.Crop)
	if d.seen.contains(key) {
		d.metrics.SMSRequests.WithLabelValues("deduped").Inc()
		return nil
	}
	if err := d.inner.SendAlert(ctx, alert); err != nil {
		return err
	}
	// Only record successful sends so a failed alert can be retried.
	d.seen.add(key)
	return nil
}

// lruSet is a simple thread-safe LRU membership set.
type lruSet struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key  string
	prev *entry
	next *entry
}

func newLRUSet(maxEntries int) *lruSet {
	return &lruSet{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (s *lruSet) contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.moveToFront(e)
	return true
}

func (s *lruSet) add(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		s.moveToFront(e)
		return
	}

	e := &entry{key: key}
	s.entries[key] = e
	s.addToFront(e)

	if len(s.entries) > s.maxEntries {
		s.evictTail()
	}
}

func (s *lruSet) moveToFront(e *entry) {
	if e == s.head {
		return
	}
	s.remove(e)
	s.addToFront(e)
}

func (s *lruSet) addToFront(e *entry) {
	e.next = s.head
	e.prev = nil
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *lruSet) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
}

func (s *lruSet) evictTail() {
	if s.tail == nil {
		return
	}
	delete(s.entries, s.tail.key)
	s.remove(s.tail)
}
