package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"leetui/internal/event"
	"leetui/internal/leetcode"
)

type countingRenderer struct {
	mu      sync.Mutex
	frames  int
	screens []string
}

func (r *countingRenderer) Render(m *Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames++
	r.screens = append(r.screens, m.Screen.screen())
}

func (r *countingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func TestLoopRendersAndQuits(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	q := event.NewQueue(8)
	sub := &fakeSubmitter{}
	m := New(sub, nil)
	r := &countingRenderer{}
	l := NewLoop(m, q, r)

	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	q.Push(event.Resize{Width: 120, Height: 40})
	q.Push(event.ProblemsLoaded{Token: 1, Problems: problems(0, 2)})
	q.Push(press("q"))

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("loop did not quit")
	}
	// initial frame, resize and the page
	if got := r.count(); got != 3 {
		t.Fatalf("expected 3 frames, got %d", got)
	}
	if m.Width != 120 || m.Pager.Len() != 2 {
		t.Fatalf("events not applied: width %d items %d", m.Width, m.Pager.Len())
	}
	if q.Push(event.Tick{}) {
		t.Fatalf("queue should be closed after the loop exits")
	}
}

func TestLoopSkipsIdleTicks(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	q := event.NewQueue(8)
	m := New(&fakeSubmitter{}, nil)
	r := &countingRenderer{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewLoop(m, q, r).Run(ctx) }()

	q.Push(event.StatusLoaded{Status: leetcode.UserStatus{}})
	q.Push(event.DailyLoaded{})
	q.Push(event.ProblemsLoaded{Token: 1})
	q.Push(event.Tick{})
	q.Push(event.Tick{})
	q.Push(event.Resize{Width: 80, Height: 24})

	deadline := time.Now().Add(2 * time.Second)
	for r.count() < 5 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	// initial + three results + resize; idle ticks draw nothing
	if got := r.count(); got != 5 {
		t.Fatalf("expected 5 frames, got %d", got)
	}
}
