package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestListSkipsDescriptionAndHidden(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.WriteDescription("two-sum", "# Two Sum\n"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.py", "a.go"} {
		if err := s.Create("two-sum", name, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(s.Path("two-sum", ".swp"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(s.Path("two-sum", "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := s.List("two-sum")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a.go", "b.py"}, files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestListMissingDirIsEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "none"))
	files, err := s.List("two-sum")
	if err != nil || len(files) != 0 {
		t.Fatalf("expected empty list, got %v %v", files, err)
	}
}

func TestCreateRejectsBadNames(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, name := range []string{"", "../x.go", "a/b.go", `a\b.go`, "README.md"} {
		if err := s.Create("two-sum", name, nil); err == nil {
			t.Fatalf("expected %q rejected", name)
		}
	}
	if err := s.Create("two-sum", "main.go", []byte("package main")); err != nil {
		t.Fatal(err)
	}
	if err := s.Create("two-sum", "main.go", nil); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	b, err := s.Read("two-sum", "main.go")
	if err != nil || string(b) != "package main" {
		t.Fatalf("expected original contents kept, got %q %v", b, err)
	}
}

func TestEnsureRejectsTraversal(t *testing.T) {
	s := NewStore(t.TempDir())
	if _, err := s.Ensure(".."); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestLanguageDetection(t *testing.T) {
	cases := map[string]string{
		"solution.py":  "python3",
		"main.GO":      "golang",
		"a.b.rs":       "rust",
		"Solution.cpp": "cpp",
	}
	for name, want := range cases {
		l, ok := Detect(name)
		if !ok || l.Slug != want {
			t.Fatalf("Detect(%q) = %#v, want %s", name, l, want)
		}
	}
	if _, ok := Detect("notes"); ok {
		t.Fatalf("expected no language without extension")
	}
	if DefaultFile("golang") != "solution.go" || DefaultFile("cobol") != "solution.txt" {
		t.Fatalf("unexpected default file names")
	}
	if f, ok := FileFor([]string{"a.py", "b.go", "c.go"}, "golang"); !ok || f != "b.go" {
		t.Fatalf("expected b.go, got %q", f)
	}
}
