package app

import (
	"context"

	"leetui/internal/event"
)

// Renderer draws one frame of the model. It may record layout facts on
// the model (viewport heights, Animating) but must not change anything
// else.
type Renderer interface {
	Render(m *Model)
}

// Loop is the single consumer of the event queue.
type Loop struct {
	model    *Model
	queue    *event.Queue
	renderer Renderer
}

func NewLoop(m *Model, q *event.Queue, r Renderer) *Loop {
	return &Loop{model: m, queue: q, renderer: r}
}

// Run starts the model and applies events until a quit key, ctx ending or
// the queue closing. It closes the queue on the way out.
func (l *Loop) Run(ctx context.Context) error {
	defer l.queue.Close()
	l.model.Start()
	l.renderer.Render(l.model)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.queue.Done():
			return nil
		case ev := <-l.queue.Events():
			switch l.model.Update(ev) {
			case Quit:
				l.model.logger.Info("app.quit", map[string]any{"inflight": l.model.inflight})
				return nil
			case Render:
				l.renderer.Render(l.model)
			}
		}
	}
}
