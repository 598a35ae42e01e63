// Package ui adapts the terminal to the application: bubbletea reads the
// keyboard and owns the screen, every key and resize goes onto the event
// queue, and frames composed by the reducer are shown as they arrive.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/glamour"

	"leetui/internal/app"
	"leetui/internal/editor"
	"leetui/internal/event"
	"leetui/internal/telemetry"
)

type drawMsg struct{}

// execMsg asks the program to hand the terminal to cmd.
type execMsg struct {
	cmd  *exec.Cmd
	done chan<- error
}

type execDoneMsg struct{}

type Options struct {
	ASCIIOnly    bool
	Debug        bool
	StyleVariant string
	Logger       *telemetry.Logger
}

type Root struct {
	theme  Theme
	ascii  bool
	debug  bool
	queue  *event.Queue
	logger *telemetry.Logger

	mu        sync.Mutex
	program   *tea.Program
	running   bool
	frame     string
	lastInput string

	drawPending atomic.Bool

	// Used only from Render, on the reducer goroutine.
	help       help.Model
	verdictBar progress.Model
	bar        barSpring
	markdown   map[int]*glamour.TermRenderer
	desc       descCache
}

type descCache struct {
	slug  string
	width int
	lines []string
}

func New(q *event.Queue, opts Options) *Root {
	h := help.New()
	h.Styles = help.DefaultDarkStyles()
	theme := ThemeForVariant(normalizeStyleVariant(opts.StyleVariant))
	return &Root{
		theme:      theme,
		ascii:      opts.ASCIIOnly,
		debug:      opts.Debug,
		queue:      q,
		logger:     opts.Logger,
		help:       h,
		verdictBar: progress.New(progress.WithWidth(30), progress.WithDefaultBlend()),
		bar:        defaultBarSpring(),
		markdown:   map[int]*glamour.TermRenderer{},
	}
}

func (r *Root) Init() tea.Cmd {
	return nil
}

func (r *Root) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("update", rec, msg)
			model = r
			cmd = nil
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !r.queue.Push(event.Resize{Width: msg.Width, Height: msg.Height}) {
			return r, tea.Quit
		}
	case tea.KeyPressMsg:
		r.recordInputEvent(msg)
		if !r.queue.Push(event.Key{Press: msg}) {
			return r, tea.Quit
		}
	case drawMsg:
		r.drawPending.Store(false)
	case execMsg:
		done := msg.done
		return r, tea.ExecProcess(msg.cmd, func(err error) tea.Msg {
			done <- err
			return execDoneMsg{}
		})
	case execDoneMsg:
	}
	return r, nil
}

func (r *Root) View() (view tea.View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onModelPanic("view", rec, nil)
			view = tea.NewView(r.theme.Fail.Render("UI recovered from a rendering panic. Check logs."))
		}
	}()

	r.mu.Lock()
	frame := r.frame
	r.mu.Unlock()
	v := tea.NewView(frame)
	v.AltScreen = true
	return v
}

// Render composes a frame for m and schedules it for display.
func (r *Root) Render(m *app.Model) {
	var frame string
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.onModelPanic("render", rec, nil)
				frame = r.theme.Fail.Render("UI recovered from a rendering panic. Check logs.")
			}
		}()
		r.bar.moving = false
		frame = r.compose(m)
	}()
	m.Animating = r.bar.moving

	r.mu.Lock()
	r.frame = frame
	r.mu.Unlock()
	r.requestDraw()
}

// Frame is the last composed frame.
func (r *Root) Frame() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// Run owns the terminal until ctx ends or Stop is called.
func (r *Root) Run(ctx context.Context, opts ...tea.ProgramOption) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

// Exec suspends the UI, runs cmd in the foreground and resumes.
func (r *Root) Exec(ctx context.Context, cmd *exec.Cmd) error {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p == nil {
		return errors.New("terminal is not running")
	}
	done := make(chan error, 1)
	p.Send(execMsg{cmd: cmd, done: done})
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Root) requestDraw() {
	r.mu.Lock()
	p := r.program
	running := r.running
	r.mu.Unlock()
	if !running || p == nil {
		return
	}
	if !r.drawPending.CompareAndSwap(false, true) {
		return
	}
	time.AfterFunc(16*time.Millisecond, func() {
		r.mu.Lock()
		p := r.program
		running := r.running
		r.mu.Unlock()
		if !running || p == nil {
			r.drawPending.Store(false)
			return
		}
		p.Send(drawMsg{})
	})
}

func (r *Root) recordInputEvent(msg tea.KeyPressMsg) {
	in := fmt.Sprintf("key:%v mod:%v text:%q", msg.Code, msg.Mod, msg.Text)
	r.mu.Lock()
	r.lastInput = in
	r.mu.Unlock()
}

func (r *Root) lastInputEvent() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastInput
}

func (r *Root) onModelPanic(where string, recovered any, msg tea.Msg) {
	msgType := ""
	if msg != nil {
		msgType = fmt.Sprintf("%T", msg)
	}
	r.logger.Error("ui.panic_recovered", map[string]any{
		"where":       where,
		"panic":       fmt.Sprintf("%v", recovered),
		"messageType": msgType,
		"last_input":  r.lastInputEvent(),
		"stack":       string(debug.Stack()),
	})
}

var (
	_ tea.Model        = (*Root)(nil)
	_ app.Renderer     = (*Root)(nil)
	_ editor.Suspender = (*Root)(nil)
)
