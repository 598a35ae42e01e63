// Package event carries everything that happens to the application as
// values on one ordered queue: key presses, timer ticks, and the results of
// requests performed by the dispatcher.
package event

import (
	tea "charm.land/bubbletea/v2"

	"leetui/internal/leetcode"
)

// Event is implemented by every value that can travel on the Queue.
type Event interface {
	isEvent()
}

type Key struct {
	Press tea.KeyPressMsg
}

type Tick struct{}

type Resize struct {
	Width  int
	Height int
}

type StatusLoaded struct {
	Status leetcode.UserStatus
}

type ProfileLoaded struct {
	Profile leetcode.Profile
}

type DailyLoaded struct {
	Daily leetcode.DailyChallenge
}

type ProblemsLoaded struct {
	Token    uint64
	Problems []leetcode.Problem
	Total    int
}

type QuestionLoaded struct {
	Token    uint64
	Question leetcode.Question
}

// FilesListed is the content of a problem workspace after it was opened
// or refreshed.
type FilesListed struct {
	Slug  string
	Dir   string
	Files []string
}

type FileCreated struct {
	Slug string
	Name string
}

type EditorClosed struct {
	Slug string
	Path string
}

// WorkspaceChanged is sent when files change under a watched workspace.
type WorkspaceChanged struct {
	Dir string
}

type RunFinished struct {
	Token uint64
	Check leetcode.RunCheck
}

type SubmissionFinished struct {
	Token uint64
	Check leetcode.SubmissionCheck
}

// ErrorKind tells which collaborator failed.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindFilesystem
	KindEditor
)

func (k ErrorKind) String() string {
	switch k {
	case KindFilesystem:
		return "filesystem"
	case KindEditor:
		return "editor"
	default:
		return "network"
	}
}

// NetworkError reports a failed request. Op is the request name and Token
// the generation the request carried, zero when it had none.
type NetworkError struct {
	Kind    ErrorKind
	Op      string
	Token   uint64
	Message string
}

func (Key) isEvent()                {}
func (Tick) isEvent()               {}
func (Resize) isEvent()             {}
func (StatusLoaded) isEvent()       {}
func (ProfileLoaded) isEvent()      {}
func (DailyLoaded) isEvent()        {}
func (ProblemsLoaded) isEvent()     {}
func (QuestionLoaded) isEvent()     {}
func (FilesListed) isEvent()        {}
func (FileCreated) isEvent()        {}
func (EditorClosed) isEvent()       {}
func (WorkspaceChanged) isEvent()   {}
func (RunFinished) isEvent()        {}
func (SubmissionFinished) isEvent() {}
func (NetworkError) isEvent()       {}
