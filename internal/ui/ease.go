package ui

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"leetui/internal/event"
	"leetui/internal/grading"
)

const settleEpsilon = 0.002

// barSpring eases the verdict bar toward the pass ratio. It advances one
// step per composed frame and restarts from empty for every new verdict.
type barSpring struct {
	spring  harmonica.Spring
	verdict *grading.Verdict
	pos     float64
	vel     float64
	target  float64
	moving  bool
}

func newBarSpring(interval time.Duration) barSpring {
	fps := int(time.Second / interval)
	if fps < 1 {
		fps = 1
	}
	return barSpring{spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0)}
}

func defaultBarSpring() barSpring { return newBarSpring(event.TickInterval) }

// step advances toward v's ratio and returns the position to draw.
func (b *barSpring) step(v *grading.Verdict) float64 {
	if v != b.verdict {
		b.verdict, b.pos, b.vel = v, 0, 0
	}
	b.target = v.Ratio()
	b.pos, b.vel = b.spring.Update(b.pos, b.vel, b.target)
	if math.Abs(b.pos-b.target) < settleEpsilon && math.Abs(b.vel) < settleEpsilon {
		b.pos, b.vel = b.target, 0
	}
	b.moving = b.pos != b.target
	return b.pos
}
