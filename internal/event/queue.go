package event

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultQueueSize = 100
	TickInterval     = 30 * time.Millisecond
)

// Queue is a bounded, ordered channel of events with a single consumer.
// Close releases blocked producers; the channel itself is never closed so
// late producers cannot panic.
type Queue struct {
	ch   chan Event
	done chan struct{}
	once sync.Once
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		ch:   make(chan Event, size),
		done: make(chan struct{}),
	}
}

// Push waits until the event is accepted. It reports false once the queue
// is closed.
func (q *Queue) Push(ev Event) bool {
	select {
	case <-q.done:
		return false
	default:
	}
	select {
	case q.ch <- ev:
		return true
	case <-q.done:
		return false
	}
}

// Offer enqueues without waiting and reports whether the event was taken.
func (q *Queue) Offer(ev Event) bool {
	select {
	case <-q.done:
		return false
	default:
	}
	select {
	case q.ch <- ev:
		return true
	default:
		return false
	}
}

func (q *Queue) Events() <-chan Event  { return q.ch }
func (q *Queue) Done() <-chan struct{} { return q.done }

func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}

// RunTicker offers a Tick every interval until ctx ends or the queue closes.
// Ticks that find the queue full are dropped.
func RunTicker(ctx context.Context, interval time.Duration, q *Queue) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.Done():
			return
		case <-t.C:
			q.Offer(Tick{})
		}
	}
}
