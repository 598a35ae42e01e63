// Package grid holds the scroll and index arithmetic behind the test-case
// editor and the language/file pickers. Nothing here draws.
package grid

import (
	"strings"
	"unicode/utf8"
)

const (
	// RowHeight is one label line, a three line input box and a spacer.
	RowHeight   = 5
	HeaderLines = 1
)

// Case is one example input: a field per parameter, plus the outputs of
// the last run when there was one.
type Case struct {
	Inputs   []string
	Output   *string
	Expected *string
}

// Cases is the list of test cases of one question and the viewport over
// the fields of the selected case.
type Cases struct {
	params   int
	cases    []Case
	current  int
	field    int
	offset   int
	viewport int
}

// NewCases splits example text into cases of params lines each. A short
// trailing group is dropped.
func NewCases(params int, examples string) *Cases {
	c := &Cases{params: params}
	if params <= 0 {
		return c
	}
	lines := strings.Split(strings.ReplaceAll(strings.TrimRight(examples, "\n"), "\r\n", "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return c
	}
	for i := 0; i+params <= len(lines); i += params {
		inputs := make([]string, params)
		copy(inputs, lines[i:i+params])
		c.cases = append(c.cases, Case{Inputs: inputs})
	}
	return c
}

func (c *Cases) Params() int   { return c.params }
func (c *Cases) Len() int      { return len(c.cases) }
func (c *Cases) Index() int    { return c.current }
func (c *Cases) Field() int    { return c.field }
func (c *Cases) Offset() int   { return c.offset }
func (c *Cases) All() []Case   { return c.cases }
func (c *Cases) Height() int   { return c.params*RowHeight + HeaderLines }
func (c *Cases) Viewport() int { return c.viewport }

func (c *Cases) Current() (Case, bool) {
	if c.current < 0 || c.current >= len(c.cases) {
		return Case{}, false
	}
	return c.cases[c.current], true
}

// SetViewport records the visible height of the last render.
func (c *Cases) SetViewport(h int) {
	if h < 0 {
		h = 0
	}
	c.viewport = h
	c.clampOffset()
}

func (c *Cases) NextCase() { c.selectCase(c.current + 1) }
func (c *Cases) PrevCase() { c.selectCase(c.current - 1) }

func (c *Cases) selectCase(i int) {
	if len(c.cases) == 0 {
		return
	}
	c.current = clamp(i, 0, len(c.cases)-1)
	c.follow()
}

func (c *Cases) NextField() { c.SelectField(c.field + 1) }
func (c *Cases) PrevField() { c.SelectField(c.field - 1) }

func (c *Cases) SelectField(i int) {
	if c.params == 0 {
		return
	}
	c.field = clamp(i, 0, c.params-1)
	c.follow()
}

// RowTop is the virtual line where a field row starts.
func RowTop(row int) int { return HeaderLines + row*RowHeight }

// follow moves the offset the least amount that puts the selected row
// inside the viewport.
func (c *Cases) follow() {
	top := RowTop(c.field)
	bottom := top + RowHeight
	if bottom > c.offset+c.viewport {
		c.offset = bottom - c.viewport
	}
	if top < c.offset {
		c.offset = top
	}
	c.clampOffset()
}

func (c *Cases) clampOffset() {
	c.offset = clamp(c.offset, 0, max(0, c.Height()-c.viewport))
}

// Clip returns the viewport-relative line range [start, end) covered by a
// row, or false when the row is entirely out of view.
func (c *Cases) Clip(row int) (start, end int, ok bool) {
	if row < 0 || row >= c.params {
		return 0, 0, false
	}
	top := RowTop(row) - c.offset
	bottom := top + RowHeight
	if bottom <= 0 || top >= c.viewport {
		return 0, 0, false
	}
	return max(top, 0), min(bottom, c.viewport), true
}

// Append adds a rune to the selected field.
func (c *Cases) Append(r rune) {
	if f := c.fieldPtr(); f != nil {
		*f += string(r)
	}
}

func (c *Cases) Backspace() {
	f := c.fieldPtr()
	if f == nil || *f == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(*f)
	*f = (*f)[:len(*f)-size]
}

// Commit trims the selected field and forgets results that no longer
// describe the inputs.
func (c *Cases) Commit() {
	f := c.fieldPtr()
	if f == nil {
		return
	}
	trimmed := strings.TrimSpace(*f)
	*f = trimmed
	c.cases[c.current].Output = nil
	c.cases[c.current].Expected = nil
}

func (c *Cases) fieldPtr() *string {
	if c.current < 0 || c.current >= len(c.cases) || c.field < 0 || c.field >= c.params {
		return nil
	}
	return &c.cases[c.current].Inputs[c.field]
}

// Add appends a case of empty fields and selects it.
func (c *Cases) Add() {
	c.cases = append(c.cases, Case{Inputs: make([]string, c.params)})
	c.current = len(c.cases) - 1
	c.field = 0
	c.follow()
}

// Remove deletes the selected case.
func (c *Cases) Remove() {
	if len(c.cases) == 0 {
		c.current = 0
		return
	}
	c.cases = append(c.cases[:c.current], c.cases[c.current+1:]...)
	c.current = clamp(c.current, 0, max(0, len(c.cases)-1))
	c.follow()
}

// Input joins every field of every case, one per line, the way the judge
// expects custom input.
func (c *Cases) Input() string {
	var lines []string
	for _, tc := range c.cases {
		lines = append(lines, tc.Inputs...)
	}
	return strings.Join(lines, "\n")
}

// SetResult records the output of case i from the last run.
func (c *Cases) SetResult(i int, output, expected string) {
	if i < 0 || i >= len(c.cases) {
		return
	}
	c.cases[i].Output = &output
	c.cases[i].Expected = &expected
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
