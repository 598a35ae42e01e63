package workspace

import (
	"path/filepath"
	"strings"
)

// Language ties a judge language slug to the file extension used for it
// in the workspace.
type Language struct {
	Name string
	Slug string
	Ext  string
}

var languages = []Language{
	{Name: "C++", Slug: "cpp", Ext: "cpp"},
	{Name: "Java", Slug: "java", Ext: "java"},
	{Name: "Python3", Slug: "python3", Ext: "py"},
	{Name: "C", Slug: "c", Ext: "c"},
	{Name: "C#", Slug: "csharp", Ext: "cs"},
	{Name: "JavaScript", Slug: "javascript", Ext: "js"},
	{Name: "TypeScript", Slug: "typescript", Ext: "ts"},
	{Name: "PHP", Slug: "php", Ext: "php"},
	{Name: "Swift", Slug: "swift", Ext: "swift"},
	{Name: "Kotlin", Slug: "kotlin", Ext: "kt"},
	{Name: "Dart", Slug: "dart", Ext: "dart"},
	{Name: "Go", Slug: "golang", Ext: "go"},
	{Name: "Ruby", Slug: "ruby", Ext: "rb"},
	{Name: "Scala", Slug: "scala", Ext: "scala"},
	{Name: "Rust", Slug: "rust", Ext: "rs"},
	{Name: "Racket", Slug: "racket", Ext: "rkt"},
	{Name: "Erlang", Slug: "erlang", Ext: "erl"},
	{Name: "Elixir", Slug: "elixir", Ext: "ex"},
}

// Detect infers the language of a file name from its extension.
func Detect(name string) (Language, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(strings.TrimSpace(name)), "."))
	if ext == "" {
		return Language{}, false
	}
	for _, l := range languages {
		if l.Ext == ext {
			return l, true
		}
	}
	return Language{}, false
}

func BySlug(slug string) (Language, bool) {
	for _, l := range languages {
		if l.Slug == slug {
			return l, true
		}
	}
	return Language{}, false
}

// DefaultFile is the suggested solution file name for a language slug.
func DefaultFile(slug string) string {
	if l, ok := BySlug(slug); ok {
		return "solution." + l.Ext
	}
	return "solution.txt"
}

// FileFor picks the first file, in the given order, written in the
// language.
func FileFor(files []string, slug string) (string, bool) {
	for _, f := range files {
		if l, ok := Detect(f); ok && l.Slug == slug {
			return f, true
		}
	}
	return "", false
}
