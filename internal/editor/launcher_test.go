package editor

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recorder struct {
	argv [][]string
	err  error
}

func (r *recorder) run(c *exec.Cmd) error {
	r.argv = append(r.argv, c.Args)
	return r.err
}

type fakeSuspender struct{ args []string }

func (f *fakeSuspender) Exec(_ context.Context, cmd *exec.Cmd) error {
	f.args = cmd.Args
	return nil
}

func newTestLauncher(mode Mode, env map[string]string, installed ...string) (*Launcher, *recorder) {
	rec := &recorder{}
	l := New(mode, "", nil)
	l.getenv = func(k string) string { return env[k] }
	l.lookPath = func(name string) (string, error) {
		for _, n := range installed {
			if n == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
	l.run = rec.run
	return l, rec
}

func TestDetectAuto(t *testing.T) {
	cases := []struct {
		name      string
		env       map[string]string
		installed []string
		want      Mode
	}{
		{"zellij session", map[string]string{"ZELLIJ": "0"}, []string{"zellij"}, ModeZellij},
		{"zellij missing", map[string]string{"ZELLIJ": "0"}, nil, ModeExec},
		{"tmux session", map[string]string{"TMUX": "/tmp/tmux"}, []string{"tmux"}, ModeTmux},
		{"plain terminal", nil, []string{"tmux", "zellij"}, ModeExec},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, _ := newTestLauncher(ModeAuto, tc.env, tc.installed...)
			got, err := l.Detect()
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestForcedModeRequiresBinary(t *testing.T) {
	l, _ := newTestLauncher(ModeTmux, nil)
	if _, err := l.Detect(); err == nil {
		t.Fatalf("expected error when tmux is missing")
	}
}

func TestOpenZellijEditsEachPath(t *testing.T) {
	l, rec := newTestLauncher(ModeZellij, nil, "zellij")
	if err := l.Open(context.Background(), "/w/README.md", "/w/main.go"); err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"zellij", "action", "edit", "/w/README.md"},
		{"zellij", "action", "edit", "/w/main.go"},
	}
	if diff := cmp.Diff(want, rec.argv); diff != "" {
		t.Fatalf("argv mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenTmuxUsesEditor(t *testing.T) {
	l, rec := newTestLauncher(ModeTmux, map[string]string{"EDITOR": "nvim -p"}, "tmux")
	if err := l.Open(context.Background(), "a", "b"); err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"tmux", "new-window", "nvim", "-p", "a", "b"}}
	if diff := cmp.Diff(want, rec.argv); diff != "" {
		t.Fatalf("argv mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenExecSuspendsUI(t *testing.T) {
	l, rec := newTestLauncher(ModeExec, nil)
	s := &fakeSuspender{}
	l.SetSuspender(s)
	if err := l.Open(context.Background(), "README.md", "main.go"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"vi", "README.md", "main.go"}, s.args); diff != "" {
		t.Fatalf("argv mismatch (-want +got):\n%s", diff)
	}
	if len(rec.argv) != 0 {
		t.Fatalf("suspender should run the editor, not the launcher")
	}
}

func TestOpenExecReportsFailure(t *testing.T) {
	l, rec := newTestLauncher(ModeExec, nil)
	l.command = "code --wait"
	rec.err = errors.New("exit status 1")
	err := l.Open(context.Background(), "x")
	if err == nil || err.Error() != "code: exit status 1" {
		t.Fatalf("unexpected error %v", err)
	}
	if rec.argv[0][1] != "--wait" {
		t.Fatalf("expected configured command, got %v", rec.argv[0])
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(" Tmux "); err != nil || m != ModeTmux {
		t.Fatalf("unexpected %q %v", m, err)
	}
	if m, _ := ParseMode(""); m != ModeAuto {
		t.Fatalf("expected auto for empty mode")
	}
	if _, err := ParseMode("emacs"); err == nil {
		t.Fatalf("expected invalid mode error")
	}
}
