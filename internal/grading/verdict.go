// Package grading turns judge check responses into verdicts the UI can
// show: overall outcome, per-case comparison and a short summary line.
package grading

import (
	"fmt"
	"strings"

	"leetui/internal/leetcode"
)

type Kind string

const (
	KindRun        Kind = "run"
	KindSubmission Kind = "submission"
)

// statusAccepted is the judge status code for an accepted submission.
const statusAccepted = 10

type CaseResult struct {
	Index    int
	Output   string
	Expected string
	Passed   bool
	Diff     string
}

type Verdict struct {
	Kind   Kind
	Passed bool
	Status string

	Runtime string
	Memory  string
	Correct int
	Total   int

	RuntimePercentile float64
	MemoryPercentile  float64

	CompileError string
	RuntimeError string
	Stdout       string

	LastInput      string
	ExpectedOutput string
	CodeOutput     string

	Cases []CaseResult
}

// FromRun grades an interpret run over caseCount custom test cases.
func FromRun(c leetcode.RunCheck, caseCount int) Verdict {
	v := Verdict{
		Kind:         KindRun,
		Status:       c.StatusMsg,
		Runtime:      c.StatusRuntime,
		Memory:       c.StatusMemory,
		CompileError: strings.TrimSpace(c.FullCompileError),
		RuntimeError: strings.TrimSpace(c.FullRuntimeError),
		Stdout:       c.StdOutput,
		LastInput:    c.LastTestcase,
	}

	compare := []rune(c.CompareResult)
	for i := 0; i < caseCount; i++ {
		r := CaseResult{Index: i, Output: at(c.CodeAnswer, i), Expected: at(c.ExpectedCodeAnswer, i)}
		switch {
		case !c.RunSuccess:
			r.Passed = false
		case len(compare) == caseCount:
			r.Passed = compare[i] == '1'
		default:
			r.Passed = r.Output == r.Expected
		}
		if !r.Passed && c.RunSuccess {
			r.Diff = buildUnifiedDiff(r.Expected, r.Output)
		}
		if r.Passed {
			v.Correct++
		}
		v.Cases = append(v.Cases, r)
	}
	v.Total = caseCount
	if c.TotalTestcases != nil {
		v.Total = *c.TotalTestcases
	}
	if c.TotalCorrect != nil {
		v.Correct = *c.TotalCorrect
	}
	v.Passed = c.RunSuccess && v.CompileError == "" && v.RuntimeError == "" && v.Correct == v.Total
	if v.Status == "" {
		v.Status = "Finished"
	}
	return v
}

func FromSubmission(c leetcode.SubmissionCheck) Verdict {
	v := Verdict{
		Kind:           KindSubmission,
		Status:         c.StatusMsg,
		Runtime:        c.StatusRuntime,
		Memory:         c.StatusMemory,
		CompileError:   strings.TrimSpace(c.FullCompileError),
		RuntimeError:   strings.TrimSpace(c.FullRuntimeError),
		Stdout:         c.StdOutput,
		LastInput:      c.InputFormatted,
		ExpectedOutput: c.ExpectedOutput,
		CodeOutput:     c.CodeOutput,
	}
	if c.TotalCorrect != nil {
		v.Correct = *c.TotalCorrect
	}
	if c.TotalTestcases != nil {
		v.Total = *c.TotalTestcases
	}
	if c.RuntimePercentile != nil {
		v.RuntimePercentile = *c.RuntimePercentile
	}
	if c.MemoryPercentile != nil {
		v.MemoryPercentile = *c.MemoryPercentile
	}
	v.Passed = c.StatusID == statusAccepted || strings.EqualFold(c.StatusMsg, "Accepted")
	if !v.Passed && v.ExpectedOutput != "" {
		v.Cases = []CaseResult{{
			Output:   v.CodeOutput,
			Expected: v.ExpectedOutput,
			Diff:     buildUnifiedDiff(v.ExpectedOutput, v.CodeOutput),
		}}
	}
	return v
}

// Ratio is the share of passed test cases, for progress bars.
func (v Verdict) Ratio() float64 {
	if v.Total <= 0 {
		return 0
	}
	return float64(v.Correct) / float64(v.Total)
}

func (v Verdict) Summary() string {
	parts := []string{v.Status}
	if v.Total > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d passed", v.Correct, v.Total))
	}
	if v.Runtime != "" {
		rt := v.Runtime
		if v.RuntimePercentile > 0 {
			rt += fmt.Sprintf(" (beats %.1f%%)", v.RuntimePercentile)
		}
		parts = append(parts, rt)
	}
	if v.Memory != "" {
		mem := v.Memory
		if v.MemoryPercentile > 0 {
			mem += fmt.Sprintf(" (beats %.1f%%)", v.MemoryPercentile)
		}
		parts = append(parts, mem)
	}
	return strings.Join(parts, " · ")
}

func at(s []string, i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}

func buildUnifiedDiff(expected, actual string) string {
	exp := strings.Split(strings.TrimSuffix(expected, "\n"), "\n")
	act := strings.Split(strings.TrimSuffix(actual, "\n"), "\n")
	maxLen := max(len(exp), len(act))
	var b strings.Builder
	b.WriteString("--- expected\n+++ actual\n")
	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(exp) {
			e = exp[i]
		}
		if i < len(act) {
			a = act[i]
		}
		if e == a {
			continue
		}
		if e != "" {
			b.WriteString("-" + e + "\n")
		}
		if a != "" {
			b.WriteString("+" + a + "\n")
		}
	}
	return b.String()
}
