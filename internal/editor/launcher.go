// Package editor opens workspace files in the user's editor, either inside
// the surrounding terminal multiplexer or in the foreground.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeZellij Mode = "zellij"
	ModeTmux   Mode = "tmux"
	ModeExec   Mode = "exec"
)

func ParseMode(raw string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(raw))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeZellij, ModeTmux, ModeExec:
		return m, nil
	default:
		return "", fmt.Errorf("invalid editor mode %q", raw)
	}
}

// Suspender runs an interactive command with the terminal handed over to
// it and takes the terminal back afterwards.
type Suspender interface {
	Exec(ctx context.Context, cmd *exec.Cmd) error
}

type Launcher struct {
	mode    Mode
	command string
	suspend Suspender

	getenv   func(string) string
	lookPath func(string) (string, error)
	run      func(*exec.Cmd) error
}

// New builds a launcher. command overrides $EDITOR; s may be nil, in which
// case the editor inherits the process stdio.
func New(mode Mode, command string, s Suspender) *Launcher {
	if mode == "" {
		mode = ModeAuto
	}
	return &Launcher{
		mode:     mode,
		command:  command,
		suspend:  s,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		run:      func(c *exec.Cmd) error { return c.Run() },
	}
}

// SetSuspender attaches the UI once it exists.
func (l *Launcher) SetSuspender(s Suspender) {
	l.suspend = s
}

// Detect resolves auto mode from the environment and checks that the
// selected multiplexer is installed.
func (l *Launcher) Detect() (Mode, error) {
	switch l.mode {
	case ModeZellij, ModeTmux:
		if _, err := l.lookPath(string(l.mode)); err != nil {
			return "", fmt.Errorf("%s not found in PATH", l.mode)
		}
		return l.mode, nil
	case ModeExec:
		return ModeExec, nil
	}

	if l.getenv("ZELLIJ") != "" {
		if _, err := l.lookPath("zellij"); err == nil {
			return ModeZellij, nil
		}
	}
	if l.getenv("TMUX") != "" {
		if _, err := l.lookPath("tmux"); err == nil {
			return ModeTmux, nil
		}
	}
	return ModeExec, nil
}

// Editor is the editor command line, from the configured command, then
// $EDITOR, then vi.
func (l *Launcher) Editor() []string {
	for _, c := range []string{l.command, l.getenv("EDITOR")} {
		if argv := strings.Fields(c); len(argv) > 0 {
			return argv
		}
	}
	return []string{"vi"}
}

// Open shows paths in the editor. In exec mode it returns when the editor
// exits; multiplexer modes return once the pane or window is created.
func (l *Launcher) Open(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return errors.New("no files to open")
	}
	mode, err := l.Detect()
	if err != nil {
		return err
	}

	switch mode {
	case ModeZellij:
		for _, p := range paths {
			cmd := exec.CommandContext(ctx, "zellij", "action", "edit", p)
			if out, err := l.output(cmd); err != nil {
				return fmt.Errorf("zellij action edit failed: %s", out)
			}
		}
		return nil
	case ModeTmux:
		args := append([]string{"new-window"}, l.Editor()...)
		args = append(args, paths...)
		cmd := exec.CommandContext(ctx, "tmux", args...)
		if out, err := l.output(cmd); err != nil {
			return fmt.Errorf("tmux new-window failed: %s", out)
		}
		return nil
	}

	argv := l.Editor()
	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], paths...)...)
	if l.suspend != nil {
		if err := l.suspend.Exec(ctx, cmd); err != nil {
			return fmt.Errorf("%s: %w", argv[0], err)
		}
		return nil
	}
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := l.run(cmd); err != nil {
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}

func (l *Launcher) output(cmd *exec.Cmd) (string, error) {
	var b strings.Builder
	cmd.Stdout = &b
	cmd.Stderr = &b
	err := l.run(cmd)
	out := strings.TrimSpace(b.String())
	if err != nil && out == "" {
		out = err.Error()
	}
	return out, err
}
