package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func creds() map[string]string {
	return map[string]string{"LEETCODE_SESSION": "sess", "CSRF_TOKEN": "tok"}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	env := creds()
	env["LEETUI_WORKSPACE"] = "/tmp/ws"
	cfg, err := Load("", env)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Credentials.Session != "sess" || cfg.Credentials.CSRF != "tok" {
		t.Fatalf("unexpected credentials %#v", cfg.Credentials)
	}
	if cfg.Editor.Mode != "auto" || cfg.Network.Workers != 4 || cfg.Network.Timeout != 30*time.Second {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	if cfg.WorkspaceDir != "/tmp/ws" {
		t.Fatalf("expected env workspace, got %q", cfg.WorkspaceDir)
	}
}

func TestLoadMissingCredentials(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	_, err := Load("", map[string]string{"LEETCODE_SESSION": "sess"})
	if err == nil || !strings.Contains(err.Error(), "CSRF_TOKEN") {
		t.Fatalf("expected missing CSRF_TOKEN error, got %v", err)
	}
}

func TestFileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
workspace_dir: /srv/leetui
editor:
  mode: tmux
  command: nvim
ui:
  style_variant: retro_terminal
network:
  timeout: 5s
  workers: 2
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	env := creds()
	env["LEETUI_WORKERS"] = "8"
	cfg, err := Load(path, env)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.Mode != "tmux" || cfg.Editor.Command != "nvim" {
		t.Fatalf("unexpected editor %#v", cfg.Editor)
	}
	if cfg.Network.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.Network.Timeout)
	}
	if cfg.Network.Workers != 8 {
		t.Fatalf("expected environment to override file, got %d", cfg.Network.Workers)
	}
	if cfg.UI.StyleVariant != "retro_terminal" || cfg.WorkspaceDir != "/srv/leetui" {
		t.Fatalf("unexpected file values %#v", cfg)
	}
}

func TestExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), creds()); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := DefaultConfig()
	base.Credentials = Credentials{Session: "s", CSRF: "c"}
	base.WorkspaceDir = "/tmp/x"

	bad := base
	bad.Editor.Mode = "emacs"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected invalid editor mode error")
	}
	bad = base
	bad.UI.StyleVariant = "neon"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected invalid style variant error")
	}
	bad = base
	bad.BaseURL = "leetcode.com"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected invalid base url error")
	}
}

func TestValidateExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg := DefaultConfig()
	cfg.Credentials = Credentials{Session: "s", CSRF: "c"}
	cfg.WorkspaceDir = "~/problems"
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.WorkspaceDir != filepath.Join(home, "problems") {
		t.Fatalf("unexpected workspace %q", cfg.WorkspaceDir)
	}
}
