// Package app is the reducer of the client: one Model, mutated only by
// Update, one event at a time.
package app

import (
	"github.com/google/uuid"

	"leetui/internal/event"
	"leetui/internal/grading"
	"leetui/internal/grid"
	"leetui/internal/leetcode"
	"leetui/internal/pager"
	"leetui/internal/telemetry"
	"leetui/internal/workspace"
)

// Continuation tells the loop what to do after an update.
type Continuation int

const (
	Render Continuation = iota
	Skip
	Quit
)

func (c Continuation) String() string {
	switch c {
	case Skip:
		return "skip"
	case Quit:
		return "quit"
	default:
		return "render"
	}
}

// Submitter accepts requests without blocking. The event.Dispatcher is the
// production implementation.
type Submitter interface {
	Submit(r event.Request)
}

// Screen is the active view. It is one of *Home, *Editor or *Workspace.
type Screen interface {
	screen() string
}

type HomeMode int

const (
	HomeNormal HomeMode = iota
	HomeSearching
)

type Home struct {
	Mode  HomeMode
	Input string
}

type Stage int

const (
	StageDescription Stage = iota
	StageTestCases
	StageEditingField
	StageSelectingLanguage
)

func (s Stage) String() string {
	switch s {
	case StageTestCases:
		return "test_cases"
	case StageEditingField:
		return "editing_field"
	case StageSelectingLanguage:
		return "selecting_language"
	default:
		return "description"
	}
}

// Editor is the detail view of one question.
type Editor struct {
	Stage     Stage
	Question  leetcode.Question
	Cases     *grid.Cases
	Languages *grid.Selector[leetcode.CodeSnippet]

	// DescOffset is the first visible description line.
	DescOffset int
	descMax    int

	Dir     string
	Files   []string
	Verdict *grading.Verdict
	Pending grading.Kind

	runToken uint64
}

// ScrollDescription moves the description by delta lines.
func (e *Editor) ScrollDescription(delta int) {
	e.DescOffset = clamp(e.DescOffset+delta, 0, e.descMax)
}

// FitDescription records how many lines the rendered description has and
// how many fit on screen, and keeps DescOffset within them.
func (e *Editor) FitDescription(lines, viewport int) {
	e.descMax = max(0, lines-viewport)
	e.DescOffset = clamp(e.DescOffset, 0, e.descMax)
}

// casesChanged drops a pending run; its results would land on cases that
// no longer hold the inputs it was given.
func (e *Editor) casesChanged() {
	if e.Pending == grading.KindRun {
		e.Pending = ""
		e.runToken = 0
	}
}

// Language is the committed language choice.
func (e *Editor) Language() (leetcode.CodeSnippet, bool) {
	return e.Languages.Active()
}

type WorkspaceMode int

const (
	WorkspaceFiles WorkspaceMode = iota
	WorkspaceNewFile
)

// Workspace lists the solution files of the question open in Editor.
type Workspace struct {
	Mode   WorkspaceMode
	Files  *grid.Selector[string]
	Input  string
	Editor *Editor
}

// Detected is the language of the file name being typed.
func (w *Workspace) Detected() (workspace.Language, bool) {
	return workspace.Detect(w.Input)
}

func (*Home) screen() string      { return "home" }
func (*Editor) screen() string    { return "editor" }
func (*Workspace) screen() string { return "workspace" }

type Model struct {
	Width  int
	Height int

	Session string
	Status  leetcode.UserStatus
	Profile *leetcode.Profile
	Daily   *leetcode.DailyChallenge
	Pager   *pager.Pager
	Screen  Screen

	// Err is the last recoverable error, shown until the next key press.
	Err string

	// Frame advances on ticks while requests are outstanding.
	Frame int

	// Animating is set by the renderer while a drawn element is still
	// easing toward its resting state.
	Animating bool

	inflight      int
	seq           uint64
	questionToken uint64

	keys   KeyMap
	submit Submitter
	logger *telemetry.Logger
}

func New(s Submitter, logger *telemetry.Logger) *Model {
	session := uuid.NewString()
	return &Model{
		Session: session,
		Pager:   pager.New(),
		Screen:  &Home{},
		keys:    DefaultKeyMap(),
		submit:  s,
		logger:  logger.With(map[string]any{"session": session}),
	}
}

// Start issues the requests the home screen needs.
func (m *Model) Start() {
	m.logger.Info("app.start", nil)
	m.request(event.FetchStatus{})
	m.request(event.FetchDaily{})
	m.fetchPage()
}

// Loading reports whether any request is still outstanding.
func (m *Model) Loading() bool { return m.inflight > 0 }

func (m *Model) InFlight() int { return m.inflight }

func (m *Model) Keys() KeyMap { return m.keys }

// ActiveEditor is the question view behind the current screen, if any.
func (m *Model) ActiveEditor() *Editor {
	switch s := m.Screen.(type) {
	case *Editor:
		return s
	case *Workspace:
		return s.Editor
	}
	return nil
}

func (m *Model) request(r event.Request) {
	m.inflight++
	m.submit.Submit(r)
}

func (m *Model) settle() {
	if m.inflight > 0 {
		m.inflight--
	}
}

func (m *Model) next() uint64 {
	m.seq++
	return m.seq
}

func (m *Model) fetchPage() {
	r := m.Pager.Request()
	m.request(event.FetchProblems{Token: r.Token, Skip: r.Skip, Limit: r.Limit, Search: r.Search})
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
