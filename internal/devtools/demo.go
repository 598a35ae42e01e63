// Package devtools drives the application model through canned scenarios
// without a network or terminal, for screenshots and layout work.
package devtools

import (
	"fmt"
	"path"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"

	"leetui/internal/app"
	"leetui/internal/event"
	"leetui/internal/leetcode"
	"leetui/internal/telemetry"
)

// Scenario is a named key script replayed against a fresh model.
type Scenario struct {
	Name  string
	Keys  []string
	Files []string
}

var scenarios = map[string]Scenario{
	"home":      {Name: "home"},
	"search":    {Name: "search", Keys: []string{"/", "t", "w", "o"}},
	"question":  {Name: "question", Keys: []string{"enter"}},
	"cases":     {Name: "cases", Keys: []string{"enter", "t", "j", "enter", "1"}},
	"languages": {Name: "languages", Keys: []string{"enter", "c", "l", "l"}},
	"workspace": {Name: "workspace", Keys: []string{"enter", "e", "n"}, Files: []string{"main.go"}},
	"run_fail":  {Name: "run_fail", Keys: []string{"enter", "c", "l", "l", "enter", "esc", "r"}, Files: []string{"main.go"}},
	"run_pass":  {Name: "run_pass", Keys: []string{"enter", "c", "l", "l", "enter", "esc", "r", "r"}, Files: []string{"main.go"}},
	"submit":    {Name: "submit", Keys: []string{"enter", "c", "l", "l", "enter", "esc", "s"}, Files: []string{"main.go"}},
	"error":     {Name: "error", Keys: []string{"enter", "r"}},
}

// Names lists the known scenarios.
func Names() []string {
	out := make([]string, 0, len(scenarios))
	for name := range scenarios {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func Resolve(name string) (Scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("unknown scenario %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Manager answers every request with a fixture and feeds the result back
// to the model synchronously.
type Manager struct {
	pending []event.Request
	files   []string
	runs    int
	logger  *telemetry.Logger
}

func NewManager(logger *telemetry.Logger) *Manager {
	return &Manager{logger: logger}
}

func (d *Manager) Submit(r event.Request) {
	d.pending = append(d.pending, r)
}

// Play builds a model of the given size and replays the scenario on it.
func (d *Manager) Play(name string, width, height int) (*app.Model, error) {
	s, err := Resolve(name)
	if err != nil {
		return nil, err
	}
	d.pending = nil
	d.files = append([]string(nil), s.Files...)
	d.runs = 0

	m := app.New(d, d.logger)
	m.Update(event.Resize{Width: width, Height: height})
	m.Start()
	d.drain(m)
	for _, k := range s.Keys {
		if m.Update(Press(k)) == app.Quit {
			break
		}
		d.drain(m)
	}
	d.logger.Debug("devtools.played", map[string]any{"scenario": s.Name, "keys": len(s.Keys)})
	return m, nil
}

func (d *Manager) drain(m *app.Model) {
	for len(d.pending) > 0 {
		r := d.pending[0]
		d.pending = d.pending[1:]
		m.Update(d.respond(r))
	}
}

func (d *Manager) respond(r event.Request) event.Event {
	switch r := r.(type) {
	case event.FetchStatus:
		return event.StatusLoaded{Status: leetcode.UserStatus{Username: "demo", IsSignedIn: true}}
	case event.FetchProfile:
		return event.ProfileLoaded{Profile: MockProfile(r.Username)}
	case event.FetchDaily:
		return event.DailyLoaded{Daily: leetcode.DailyChallenge{Date: "2024-01-01", Question: MockProblems("", 0, 3)[2]}}
	case event.FetchProblems:
		return event.ProblemsLoaded{Token: r.Token, Problems: MockProblems(r.Search, r.Skip, r.Limit), Total: mockTotal(r.Search)}
	case event.FetchQuestion:
		return event.QuestionLoaded{Token: r.Token, Question: MockQuestion()}
	case event.OpenWorkspace:
		return d.listed(r.Slug)
	case event.ListFiles:
		return d.listed(r.Slug)
	case event.CreateFile:
		d.files = append(d.files, r.Name)
		sort.Strings(d.files)
		return event.FileCreated{Slug: r.Slug, Name: r.Name}
	case event.OpenFile:
		return event.EditorClosed{Slug: r.Slug, Path: path.Join("/demo", r.Slug, r.Name)}
	case event.RunTests:
		d.runs++
		return event.RunFinished{Token: r.Token, Check: MockRun(d.runs)}
	case event.Submit:
		return event.SubmissionFinished{Token: r.Token, Check: MockSubmission()}
	}
	return event.NetworkError{Kind: event.KindNetwork, Op: r.Op(), Message: "not available in demo mode"}
}

func (d *Manager) listed(slug string) event.FilesListed {
	return event.FilesListed{Slug: slug, Dir: path.Join("/demo", slug), Files: append([]string(nil), d.files...)}
}

// Press builds the key event for a key name: "enter", "esc", "backspace",
// "ctrl+c", or a single character.
func Press(s string) event.Key {
	var k tea.KeyPressMsg
	switch s {
	case "enter":
		k = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		k = tea.KeyPressMsg{Code: tea.KeyEscape}
	case "backspace":
		k = tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "ctrl+c":
		k = tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	default:
		r := []rune(s)[0]
		k = tea.KeyPressMsg{Code: r, Text: s}
	}
	return event.Key{Press: k}
}
