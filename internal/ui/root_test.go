package ui

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"leetui/internal/event"
)

func TestUpdatePushesKeysAndResizes(t *testing.T) {
	q := event.NewQueue(4)
	r := New(q, Options{})

	if _, cmd := r.Update(tea.WindowSizeMsg{Width: 100, Height: 40}); cmd != nil {
		t.Fatalf("expected no command for resize")
	}
	if _, cmd := r.Update(tea.KeyPressMsg{Code: 'j', Text: "j"}); cmd != nil {
		t.Fatalf("expected no command for key")
	}

	resize, ok := (<-q.Events()).(event.Resize)
	if !ok || resize.Width != 100 || resize.Height != 40 {
		t.Fatalf("unexpected first event %#v", resize)
	}
	k, ok := (<-q.Events()).(event.Key)
	if !ok || k.Press.Text != "j" {
		t.Fatalf("unexpected second event %#v", k)
	}
}

func TestUpdateQuitsWhenQueueClosed(t *testing.T) {
	q := event.NewQueue(1)
	q.Close()
	r := New(q, Options{})

	_, cmd := r.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg, got %T", cmd())
	}
}

func TestDrawMsgClearsPending(t *testing.T) {
	r := New(event.NewQueue(1), Options{})
	r.drawPending.Store(true)
	r.Update(drawMsg{})
	if r.drawPending.Load() {
		t.Fatalf("expected draw pending cleared")
	}
}

func TestExecWithoutProgram(t *testing.T) {
	r := New(event.NewQueue(1), Options{})
	if err := r.Exec(context.Background(), exec.Command("true")); err == nil {
		t.Fatalf("expected error when the terminal is not running")
	}
}

func TestViewShowsLastFrame(t *testing.T) {
	r := New(event.NewQueue(1), Options{})
	r.mu.Lock()
	r.frame = "hello"
	r.mu.Unlock()
	v := r.View()
	if !v.AltScreen {
		t.Fatalf("expected alt screen view")
	}
	if r.Frame() != "hello" {
		t.Fatalf("unexpected frame %q", r.Frame())
	}
}

func TestNormalizeStyleVariant(t *testing.T) {
	cases := map[string]string{
		"":                "modern_arcade",
		"cozy_clean":      "cozy_clean",
		" retro_terminal": "retro_terminal",
		"neon":            "modern_arcade",
	}
	for in, want := range cases {
		if got := normalizeStyleVariant(in); got != want {
			t.Fatalf("normalizeStyleVariant(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLastInputSharedAcrossGoroutines(t *testing.T) {
	q := event.NewQueue(64)
	r := New(q, Options{})
	m := play(t, "home", 120, 30)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			r.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			r.Render(m)
			r.onModelPanic("render", "boom", nil)
		}
	}()
	wg.Wait()

	if got := r.lastInputEvent(); !strings.Contains(got, `text:"j"`) {
		t.Fatalf("unexpected last input %q", got)
	}
}

func TestUnknownStyleFallsBackToDefaultTheme(t *testing.T) {
	want := ThemeForVariant(defaultStyleVariant).Pass.Render("ok")
	for _, variant := range []string{"", "neon"} {
		r := New(event.NewQueue(1), Options{StyleVariant: variant})
		if got := r.theme.Pass.Render("ok"); got != want {
			t.Fatalf("variant %q: got %q, want %q", variant, got, want)
		}
	}
}
