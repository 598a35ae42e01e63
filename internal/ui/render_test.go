package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"leetui/internal/app"
	"leetui/internal/devtools"
	"leetui/internal/event"
	"leetui/internal/grading"
	"leetui/internal/leetcode"
)

func play(t *testing.T, scenario string, width, height int) *app.Model {
	t.Helper()
	m, err := devtools.NewManager(nil).Play(scenario, width, height)
	if err != nil {
		t.Fatalf("play %s: %v", scenario, err)
	}
	return m
}

func frameFor(t *testing.T, r *Root, m *app.Model) string {
	t.Helper()
	r.Render(m)
	return ansi.Strip(r.Frame())
}

func TestRenderHome(t *testing.T) {
	r := New(event.NewQueue(1), Options{})
	frame := frameFor(t, r, play(t, "home", 120, 30))

	for _, want := range []string{"leetui", "demo", "solved E101 M89 H22", "Two Sum", "Add Two Numbers", "problems: 50 of 240 loaded"} {
		if !strings.Contains(frame, want) {
			t.Fatalf("expected %q in frame:\n%s", want, frame)
		}
	}
}

func TestRenderSearchPrompt(t *testing.T) {
	r := New(event.NewQueue(1), Options{})
	frame := frameFor(t, r, play(t, "search", 120, 30))
	if !strings.Contains(frame, "/two") {
		t.Fatalf("expected search prompt in frame:\n%s", frame)
	}
}

func TestRenderQuestionSizesCaseViewport(t *testing.T) {
	r := New(event.NewQueue(1), Options{})
	m := play(t, "question", 120, 30)
	frame := frameFor(t, r, m)

	for _, want := range []string{"1. Two Sum", "Test cases", "Case 1/3", "nums (integer[])", "[2,7,11,15]"} {
		if !strings.Contains(frame, want) {
			t.Fatalf("expected %q in frame:\n%s", want, frame)
		}
	}
	ed := m.ActiveEditor()
	if ed.Cases.Viewport() <= 0 {
		t.Fatalf("expected render to record the case viewport")
	}
}

func TestRenderCaseViewportClipsRows(t *testing.T) {
	r := New(event.NewQueue(1), Options{})
	m := play(t, "cases", 80, 16)
	frame := frameFor(t, r, m)

	ed := m.ActiveEditor()
	if ed.Cases.Offset() == 0 {
		t.Fatalf("expected the selected field to scroll into view, viewport %d", ed.Cases.Viewport())
	}
	if !strings.Contains(frame, "target (integer)") {
		t.Fatalf("expected selected field in frame:\n%s", frame)
	}
}

func TestRenderLanguages(t *testing.T) {
	r := New(event.NewQueue(1), Options{})
	frame := frameFor(t, r, play(t, "languages", 120, 30))
	for _, want := range []string{"Language", "C++", "Python3", "Go"} {
		if !strings.Contains(frame, want) {
			t.Fatalf("expected %q in frame:\n%s", want, frame)
		}
	}
}

func TestRenderRunVerdict(t *testing.T) {
	r := New(event.NewQueue(1), Options{})
	frame := frameFor(t, r, play(t, "run_fail", 120, 30))
	for _, want := range []string{"Result", "Wrong Answer", "2/3 passed"} {
		if !strings.Contains(frame, want) {
			t.Fatalf("expected %q in frame:\n%s", want, frame)
		}
	}
}

func TestRenderRunDiffFollowsSelectedCase(t *testing.T) {
	r := New(event.NewQueue(1), Options{})
	m := play(t, "run_fail", 120, 30)

	frame := frameFor(t, r, m)
	if strings.Contains(frame, "+[1,0]") {
		t.Fatalf("passing case must not show a diff:\n%s", frame)
	}

	ed := m.ActiveEditor()
	ed.Cases.NextCase()
	ed.Cases.NextCase()
	frame = frameFor(t, r, m)
	for _, want := range []string{"case 3", "-[0,1]", "+[1,0]"} {
		if !strings.Contains(frame, want) {
			t.Fatalf("expected %q in frame:\n%s", want, frame)
		}
	}
	if strings.Contains(frame, "+++ actual") {
		t.Fatalf("diff headers must be left out:\n%s", frame)
	}
}

func TestRenderFailedSubmissionDiff(t *testing.T) {
	r := New(event.NewQueue(1), Options{})
	m := play(t, "submit", 120, 30)
	v := grading.FromSubmission(leetcode.SubmissionCheck{
		StatusMsg:      "Wrong Answer",
		InputFormatted: "[1,2]\n3",
		ExpectedOutput: "[0,1]",
		CodeOutput:     "[1,0]",
	})
	m.ActiveEditor().Verdict = &v

	frame := frameFor(t, r, m)
	for _, want := range []string{"Wrong Answer", "input:    [1,2] 3", "-[0,1]", "+[1,0]"} {
		if !strings.Contains(frame, want) {
			t.Fatalf("expected %q in frame:\n%s", want, frame)
		}
	}
}

func TestRenderWorkspace(t *testing.T) {
	r := New(event.NewQueue(1), Options{})
	frame := frameFor(t, r, play(t, "workspace", 120, 30))
	for _, want := range []string{"Workspace", "main.go", "new file: solution.txt"} {
		if !strings.Contains(frame, want) {
			t.Fatalf("expected %q in frame:\n%s", want, frame)
		}
	}
}

func TestRenderError(t *testing.T) {
	r := New(event.NewQueue(1), Options{})
	frame := frameFor(t, r, play(t, "error", 120, 30))
	if !strings.Contains(frame, "error: select a language first") {
		t.Fatalf("expected error in status bar:\n%s", frame)
	}
}

func TestRenderTooSmall(t *testing.T) {
	r := New(event.NewQueue(1), Options{})
	frame := frameFor(t, r, play(t, "home", 40, 10))
	if !strings.Contains(frame, "Terminal too small") {
		t.Fatalf("expected size warning, got %q", frame)
	}
}

func TestRenderASCII(t *testing.T) {
	r := New(event.NewQueue(1), Options{ASCIIOnly: true})
	frame := frameFor(t, r, play(t, "question", 120, 30))
	if strings.ContainsAny(frame, "─│┌┐└┘") {
		t.Fatalf("expected ascii borders only:\n%s", frame)
	}
	if !strings.Contains(frame, "+-") {
		t.Fatalf("expected ascii panel corners:\n%s", frame)
	}
}

func TestFitPadsAndCuts(t *testing.T) {
	got := fit("a\nb\nc", 10, 2)
	if got != "a\nb" {
		t.Fatalf("unexpected cut %q", got)
	}
	got = fit("a", 10, 3)
	if strings.Count(got, "\n") != 2 {
		t.Fatalf("expected padded to three lines, got %q", got)
	}
}
