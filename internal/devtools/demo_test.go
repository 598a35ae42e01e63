package devtools

import (
	"testing"

	"leetui/internal/app"
	"leetui/internal/grading"
)

func TestEveryScenarioPlays(t *testing.T) {
	for _, name := range Names() {
		m, err := NewManager(nil).Play(name, 120, 30)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if m.InFlight() != 0 {
			t.Fatalf("%s: expected every request answered, %d in flight", name, m.InFlight())
		}
	}
}

func TestUnknownScenario(t *testing.T) {
	if _, err := NewManager(nil).Play("nope", 120, 30); err == nil {
		t.Fatalf("expected error for unknown scenario")
	}
}

func TestHomeScenarioLoadsFirstPage(t *testing.T) {
	m, err := NewManager(nil).Play("home", 120, 30)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Screen.(*app.Home); !ok {
		t.Fatalf("expected home screen, got %T", m.Screen)
	}
	if m.Pager.Len() != 50 || m.Pager.Total() != mockCatalogue {
		t.Fatalf("unexpected pager state len=%d total=%d", m.Pager.Len(), m.Pager.Total())
	}
	if m.Profile == nil || m.Daily == nil {
		t.Fatalf("expected profile and daily loaded")
	}
}

func TestRunScenariosFailThenPass(t *testing.T) {
	m, err := NewManager(nil).Play("run_fail", 120, 30)
	if err != nil {
		t.Fatal(err)
	}
	ed := m.ActiveEditor()
	if ed == nil || ed.Verdict == nil || ed.Verdict.Passed || ed.Verdict.Correct != 2 {
		t.Fatalf("expected failing run verdict, got %#v", ed)
	}

	m, err = NewManager(nil).Play("run_pass", 120, 30)
	if err != nil {
		t.Fatal(err)
	}
	ed = m.ActiveEditor()
	if ed == nil || ed.Verdict == nil || !ed.Verdict.Passed || ed.Verdict.Kind != grading.KindRun {
		t.Fatalf("expected passing run verdict, got %#v", ed)
	}
}

func TestErrorScenarioNeedsLanguage(t *testing.T) {
	m, err := NewManager(nil).Play("error", 120, 30)
	if err != nil {
		t.Fatal(err)
	}
	if m.Err == "" {
		t.Fatalf("expected an error message")
	}
}

func TestMockProblemsSearch(t *testing.T) {
	got := MockProblems("palindrome", 0, 50)
	if len(got) == 0 {
		t.Fatalf("expected matches")
	}
	for _, p := range got {
		if p.Title == "Two Sum" {
			t.Fatalf("unexpected match %q", p.Title)
		}
	}
	if len(MockProblems("", mockCatalogue, 50)) != 0 {
		t.Fatalf("expected empty page past the end")
	}
}
