package ui

import (
	"testing"

	"leetui/internal/event"
	"leetui/internal/grading"
)

func TestBarSpringSettlesOnRatio(t *testing.T) {
	b := defaultBarSpring()
	v := &grading.Verdict{Correct: 2, Total: 4}

	prev := 0.0
	for i := 0; i < 200; i++ {
		pos := b.step(v)
		if pos < prev {
			t.Fatalf("step %d moved backwards: %f after %f", i, pos, prev)
		}
		prev = pos
		if !b.moving {
			break
		}
	}
	if b.moving || prev != 0.5 {
		t.Fatalf("expected bar settled at 0.5, got %f moving %v", prev, b.moving)
	}
}

func TestBarSpringRestartsForNewVerdict(t *testing.T) {
	b := defaultBarSpring()
	first := &grading.Verdict{Correct: 1, Total: 1}
	for i := 0; i < 200 && (i == 0 || b.moving); i++ {
		b.step(first)
	}
	if pos := b.step(&grading.Verdict{Correct: 1, Total: 1}); pos >= 1 {
		t.Fatalf("expected a new verdict to ease in from empty, got %f", pos)
	}
}

func TestRenderFlagsAnimationUntilSettled(t *testing.T) {
	r := New(event.NewQueue(1), Options{})
	m := play(t, "run_fail", 120, 30)

	r.Render(m)
	if !m.Animating {
		t.Fatalf("expected the verdict bar to be easing after the first frame")
	}
	for i := 0; i < 200 && m.Animating; i++ {
		r.Render(m)
	}
	if m.Animating {
		t.Fatalf("expected the verdict bar to settle")
	}
	m.ActiveEditor().Verdict = nil
	r.Render(m)
	if m.Animating {
		t.Fatalf("no verdict drawn, nothing should animate")
	}
}
