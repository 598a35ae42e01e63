package leetcode

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// ProblemStatus is the signed-in user's prior attempt on a problem.
type ProblemStatus string

const (
	StatusNone      ProblemStatus = ""
	StatusAccepted  ProblemStatus = "Accepted"
	StatusAttempted ProblemStatus = "Attempted"
)

func (s *ProblemStatus) UnmarshalJSON(b []byte) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = StatusNone
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(*raw)) {
	case "ac", "accepted":
		*s = StatusAccepted
	case "notac", "attempted":
		*s = StatusAttempted
	default:
		*s = StatusNone
	}
	return nil
}

type TopicTag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Problem is a catalogue entry as returned by the problem list.
type Problem struct {
	ID         string        `json:"frontendQuestionId"`
	Title      string        `json:"title"`
	TitleSlug  string        `json:"titleSlug"`
	Difficulty Difficulty    `json:"difficulty"`
	AcRate     float64       `json:"acRate"`
	PaidOnly   bool          `json:"paidOnly"`
	IsFavor    bool          `json:"isFavor"`
	Status     ProblemStatus `json:"status"`
	TopicTags  []TopicTag    `json:"topicTags"`
}

type ProblemList struct {
	Total     int       `json:"total"`
	Questions []Problem `json:"questions"`
}

type UserStatus struct {
	Username   string `json:"username"`
	IsPremium  bool   `json:"isPremium"`
	IsSignedIn bool   `json:"isSignedIn"`
}

type Profile struct {
	Username string `json:"username"`
	Profile  struct {
		Ranking       int `json:"ranking"`
		Reputation    int `json:"reputation"`
		SolutionCount int `json:"solutionCount"`
	} `json:"profile"`
	SubmitStats struct {
		AcSubmissionNum []DifficultyCount `json:"acSubmissionNum"`
	} `json:"submitStatsGlobal"`
}

type DifficultyCount struct {
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// Solved returns the accepted count for a difficulty ("All" for the total).
func (p Profile) Solved(difficulty string) int {
	for _, c := range p.SubmitStats.AcSubmissionNum {
		if strings.EqualFold(c.Difficulty, difficulty) {
			return c.Count
		}
	}
	return 0
}

type DailyChallenge struct {
	Date       string  `json:"date"`
	Link       string  `json:"link"`
	UserStatus string  `json:"userStatus"`
	Question   Problem `json:"question"`
}

type CodeSnippet struct {
	Lang     string `json:"lang"`
	LangSlug string `json:"langSlug"`
	Code     string `json:"code"`
}

type Param struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Question is the full detail record of a single problem.
type Question struct {
	QuestionID       string        `json:"questionId"`
	FrontendID       string        `json:"questionFrontendId"`
	Title            string        `json:"title"`
	TitleSlug        string        `json:"titleSlug"`
	Content          string        `json:"content"`
	Difficulty       Difficulty    `json:"difficulty"`
	PaidOnly         bool          `json:"isPaidOnly"`
	CodeSnippets     []CodeSnippet `json:"codeSnippets"`
	MetaData         string        `json:"metaData"`
	ExampleTestcases string        `json:"exampleTestcases"`

	Params []Param `json:"-"`
}

type questionMeta struct {
	Name   string  `json:"name"`
	Params []Param `json:"params"`
}

func (q *Question) decodeMeta() error {
	if strings.TrimSpace(q.MetaData) == "" {
		q.Params = nil
		return nil
	}
	var meta questionMeta
	if err := json.Unmarshal([]byte(q.MetaData), &meta); err != nil {
		return fmt.Errorf("decode metadata for %s: %w", q.TitleSlug, err)
	}
	q.Params = meta.Params
	return nil
}

// Snippet returns the starter code for a language slug.
func (q Question) Snippet(langSlug string) (CodeSnippet, bool) {
	for _, s := range q.CodeSnippets {
		if s.LangSlug == langSlug {
			return s, true
		}
	}
	return CodeSnippet{}, false
}

type CheckState string

const (
	CheckPending CheckState = "PENDING"
	CheckStarted CheckState = "STARTED"
	CheckSuccess CheckState = "SUCCESS"
)

// RunCheck is the polled result of an interpret (run tests) request.
type RunCheck struct {
	State               CheckState `json:"state"`
	StatusMsg           string     `json:"status_msg"`
	RunSuccess          bool       `json:"run_success"`
	CodeAnswer          []string   `json:"code_answer"`
	ExpectedCodeAnswer  []string   `json:"expected_code_answer"`
	CompareResult       string     `json:"compare_result"`
	CorrectAnswer       bool       `json:"correct_answer"`
	StatusRuntime       string     `json:"status_runtime"`
	StatusMemory        string     `json:"status_memory"`
	TotalCorrect        *int       `json:"total_correct"`
	TotalTestcases      *int       `json:"total_testcases"`
	StdOutput           string     `json:"std_output"`
	FullCompileError    string     `json:"full_compile_error"`
	FullRuntimeError    string     `json:"full_runtime_error"`
	LastTestcase        string     `json:"last_testcase"`
	ExpectedStatusRunMS string     `json:"expected_status_runtime"`
}

// SubmissionCheck is the polled result of a submission.
type SubmissionCheck struct {
	State             CheckState `json:"state"`
	StatusMsg         string     `json:"status_msg"`
	StatusID          int        `json:"status_code"`
	RunSuccess        bool       `json:"run_success"`
	TotalCorrect      *int       `json:"total_correct"`
	TotalTestcases    *int       `json:"total_testcases"`
	StatusRuntime     string     `json:"status_runtime"`
	StatusMemory      string     `json:"status_memory"`
	RuntimePercentile *float64   `json:"runtime_percentile"`
	MemoryPercentile  *float64   `json:"memory_percentile"`
	InputFormatted    string     `json:"input_formatted"`
	ExpectedOutput    string     `json:"expected_output"`
	CodeOutput        string     `json:"code_output"`
	StdOutput         string     `json:"std_output"`
	FullCompileError  string     `json:"full_compile_error"`
	FullRuntimeError  string     `json:"full_runtime_error"`
}
