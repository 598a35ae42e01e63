package app

import (
	"fmt"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"

	"leetui/internal/event"
	"leetui/internal/grading"
	"leetui/internal/grid"
	"leetui/internal/leetcode"
	"leetui/internal/workspace"
)

// Update applies one event. It only mutates the model and submits
// requests; it never blocks.
func (m *Model) Update(ev event.Event) Continuation {
	switch ev := ev.(type) {
	case event.Tick:
		if m.inflight == 0 {
			if m.Animating {
				return Render
			}
			return Skip
		}
		m.Frame++
		return Render
	case event.Resize:
		m.Width, m.Height = ev.Width, ev.Height
		return Render
	case event.Key:
		return m.onKey(ev.Press)
	case event.WorkspaceChanged:
		if ed := m.ActiveEditor(); ed != nil && ed.Dir != "" && ed.Dir == ev.Dir {
			m.request(event.ListFiles{Slug: ed.Question.TitleSlug})
		}
		return Skip
	}

	m.settle()
	switch ev := ev.(type) {
	case event.StatusLoaded:
		m.Status = ev.Status
		if ev.Status.IsSignedIn && ev.Status.Username != "" {
			m.request(event.FetchProfile{Username: ev.Status.Username})
		}
	case event.ProfileLoaded:
		p := ev.Profile
		m.Profile = &p
	case event.DailyLoaded:
		d := ev.Daily
		m.Daily = &d
	case event.ProblemsLoaded:
		if !m.Pager.Apply(ev.Token, ev.Problems, ev.Total) {
			m.stale("problems", ev.Token)
		}
	case event.QuestionLoaded:
		if ev.Token != m.questionToken {
			m.stale("question", ev.Token)
			break
		}
		m.openQuestion(ev.Question)
	case event.FilesListed:
		m.setFiles(ev.Slug, ev.Dir, ev.Files)
	case event.FileCreated:
		m.refreshFiles(ev.Slug)
	case event.EditorClosed:
		m.refreshFiles(ev.Slug)
	case event.RunFinished:
		ed := m.ActiveEditor()
		if ed == nil || ev.Token != ed.runToken {
			m.stale("run_tests", ev.Token)
			break
		}
		v := grading.FromRun(ev.Check, ed.Cases.Len())
		for _, c := range v.Cases {
			ed.Cases.SetResult(c.Index, c.Output, c.Expected)
		}
		ed.Verdict = &v
		ed.Pending = ""
	case event.SubmissionFinished:
		ed := m.ActiveEditor()
		if ed == nil || ev.Token != ed.runToken {
			m.stale("submit", ev.Token)
			break
		}
		v := grading.FromSubmission(ev.Check)
		ed.Verdict = &v
		ed.Pending = ""
	case event.NetworkError:
		m.onError(ev)
	default:
		return Skip
	}
	return Render
}

func (m *Model) onError(ev event.NetworkError) {
	switch ev.Op {
	case "problems":
		m.Pager.Fail(ev.Token)
		if ev.Token != m.Pager.Generation() {
			m.stale(ev.Op, ev.Token)
			return
		}
	case "question":
		if ev.Token != m.questionToken {
			m.stale(ev.Op, ev.Token)
			return
		}
	case "run_tests", "submit":
		ed := m.ActiveEditor()
		if ed == nil || ev.Token != ed.runToken {
			m.stale(ev.Op, ev.Token)
			return
		}
		ed.Pending = ""
	}
	m.Err = fmt.Sprintf("%s: %s", ev.Kind, ev.Message)
	m.logger.Error("app.request_failed", map[string]any{"op": ev.Op, "kind": ev.Kind.String(), "error": ev.Message})
}

func (m *Model) stale(op string, token uint64) {
	m.logger.Debug("app.stale_result", map[string]any{"op": op, "token": token})
}

func (m *Model) fail(format string, args ...any) {
	m.Err = fmt.Sprintf(format, args...)
}

func (m *Model) openQuestion(q leetcode.Question) {
	ed := &Editor{
		Stage:     StageDescription,
		Question:  q,
		Cases:     grid.NewCases(len(q.Params), q.ExampleTestcases),
		Languages: grid.NewSelector(q.CodeSnippets, grid.LanguageColumns),
	}
	m.Screen = ed
	m.logger.Info("app.question_opened", map[string]any{"slug": q.TitleSlug, "cases": ed.Cases.Len()})
	m.request(event.OpenWorkspace{Slug: q.TitleSlug, Content: q.Content})
}

func (m *Model) setFiles(slug, dir string, files []string) {
	ed := m.ActiveEditor()
	if ed == nil || ed.Question.TitleSlug != slug {
		return
	}
	if dir != "" {
		ed.Dir = dir
	}
	ed.Files = files
	if ws, ok := m.Screen.(*Workspace); ok {
		ws.Files.Replace(files)
	}
}

func (m *Model) refreshFiles(slug string) {
	if ed := m.ActiveEditor(); ed != nil && ed.Question.TitleSlug == slug {
		m.request(event.ListFiles{Slug: slug})
	}
}

func (m *Model) onKey(k tea.KeyPressMsg) Continuation {
	if key.Matches(k, m.keys.ForceQuit) {
		return Quit
	}
	if m.Err != "" {
		m.Err = ""
		if !m.typing(k) {
			return Render
		}
	}
	switch s := m.Screen.(type) {
	case *Home:
		return m.homeKey(s, k)
	case *Editor:
		return m.editorKey(s, k)
	case *Workspace:
		return m.workspaceKey(s, k)
	}
	return Skip
}

// typing reports whether k edits an open text field. Such keys are applied
// even when they also dismiss an error.
func (m *Model) typing(k tea.KeyPressMsg) bool {
	if k.Text == "" && !key.Matches(k, m.keys.Backspace) {
		return false
	}
	switch s := m.Screen.(type) {
	case *Home:
		return s.Mode == HomeSearching
	case *Editor:
		return s.Stage == StageEditingField
	case *Workspace:
		return s.Mode == WorkspaceNewFile
	}
	return false
}

func (m *Model) homeKey(h *Home, k tea.KeyPressMsg) Continuation {
	keys := m.keys
	if h.Mode == HomeSearching {
		switch {
		case key.Matches(k, keys.Back):
			h.Mode, h.Input = HomeNormal, ""
		case key.Matches(k, keys.Confirm):
			m.Pager.Reset(h.Input)
			m.fetchPage()
			h.Mode = HomeNormal
		case key.Matches(k, keys.Backspace):
			h.Input = dropLast(h.Input)
		case k.Text != "":
			h.Input += k.Text
		default:
			return Skip
		}
		return Render
	}

	switch {
	case key.Matches(k, keys.Quit):
		return Quit
	case key.Matches(k, keys.Down):
		m.move(1)
	case key.Matches(k, keys.Up):
		m.move(-1)
	case key.Matches(k, keys.PageDown):
		m.move(PageStep)
	case key.Matches(k, keys.PageUp):
		m.move(-PageStep)
	case key.Matches(k, keys.Top):
		if m.Pager.Top() {
			m.fetchPage()
		}
	case key.Matches(k, keys.Bottom):
		if m.Pager.Bottom() {
			m.fetchPage()
		}
	case key.Matches(k, keys.Search):
		h.Mode, h.Input = HomeSearching, ""
	case key.Matches(k, keys.Open):
		p, ok := m.Pager.Selected()
		if !ok {
			return Skip
		}
		m.fetchQuestion(p)
	case key.Matches(k, keys.Daily):
		if m.Daily == nil {
			m.fail("daily problem not loaded yet")
			break
		}
		m.fetchQuestion(m.Daily.Question)
	default:
		return Skip
	}
	return Render
}

func (m *Model) move(delta int) {
	if m.Pager.Move(delta) {
		m.fetchPage()
	}
}

func (m *Model) fetchQuestion(p leetcode.Problem) {
	if p.PaidOnly && !m.Status.IsPremium {
		m.fail("%s is a premium problem", p.Title)
		return
	}
	m.questionToken = m.next()
	m.request(event.FetchQuestion{Token: m.questionToken, Slug: p.TitleSlug})
}

func (m *Model) editorKey(ed *Editor, k tea.KeyPressMsg) Continuation {
	keys := m.keys
	switch ed.Stage {
	case StageDescription:
		switch {
		case key.Matches(k, keys.Back):
			m.Screen = &Home{}
		case key.Matches(k, keys.Down):
			ed.ScrollDescription(1)
		case key.Matches(k, keys.Up):
			ed.ScrollDescription(-1)
		case key.Matches(k, keys.TestCases):
			ed.Stage = StageTestCases
		case key.Matches(k, keys.Languages):
			ed.Stage = StageSelectingLanguage
		case key.Matches(k, keys.Workspace):
			m.Screen = &Workspace{Files: grid.NewSelector(ed.Files, 1), Editor: ed}
		case key.Matches(k, keys.Run):
			m.run(ed)
		case key.Matches(k, keys.Submit):
			m.submitSolution(ed)
		default:
			return Skip
		}
	case StageTestCases:
		switch {
		case key.Matches(k, keys.Back):
			ed.Stage = StageDescription
		case key.Matches(k, keys.PrevCase):
			ed.Cases.PrevCase()
		case key.Matches(k, keys.NextCase):
			ed.Cases.NextCase()
		case key.Matches(k, keys.Down):
			ed.Cases.NextField()
		case key.Matches(k, keys.Up):
			ed.Cases.PrevField()
		case key.Matches(k, keys.AddCase):
			ed.Cases.Add()
			ed.casesChanged()
		case key.Matches(k, keys.RemoveCase):
			ed.Cases.Remove()
			ed.casesChanged()
		case key.Matches(k, keys.Edit):
			if _, ok := ed.Cases.Current(); ok {
				ed.Stage = StageEditingField
			}
		case key.Matches(k, keys.Languages):
			ed.Stage = StageSelectingLanguage
		case key.Matches(k, keys.Run):
			m.run(ed)
		case key.Matches(k, keys.Submit):
			m.submitSolution(ed)
		default:
			return Skip
		}
	case StageEditingField:
		switch {
		case key.Matches(k, keys.Confirm):
			ed.Cases.Commit()
			ed.casesChanged()
			ed.Stage = StageTestCases
		case key.Matches(k, keys.Back):
			ed.Cases.Commit()
			ed.casesChanged()
			ed.Stage = StageDescription
		case key.Matches(k, keys.Backspace):
			ed.Cases.Backspace()
		case k.Text != "":
			for _, r := range k.Text {
				ed.Cases.Append(r)
			}
		default:
			return Skip
		}
	case StageSelectingLanguage:
		switch {
		case key.Matches(k, keys.Back):
			ed.Stage = StageDescription
		case key.Matches(k, keys.Left):
			ed.Languages.Move(grid.Left)
		case key.Matches(k, keys.Right):
			ed.Languages.Move(grid.Right)
		case key.Matches(k, keys.Down):
			ed.Languages.Move(grid.Down)
		case key.Matches(k, keys.Up):
			ed.Languages.Move(grid.Up)
		case key.Matches(k, keys.Confirm):
			if ed.Languages.Select() {
				lang, _ := ed.Languages.Active()
				m.logger.Info("app.language_selected", map[string]any{"slug": ed.Question.TitleSlug, "lang": lang.LangSlug})
			}
		case key.Matches(k, keys.TestCases):
			ed.Stage = StageTestCases
		default:
			return Skip
		}
	}
	return Render
}

// solution resolves the language and workspace file a run or submission
// uses.
func (m *Model) solution(ed *Editor) (leetcode.CodeSnippet, string, bool) {
	lang, ok := ed.Language()
	if !ok {
		m.fail("select a language first (c)")
		return leetcode.CodeSnippet{}, "", false
	}
	file, ok := workspace.FileFor(ed.Files, lang.LangSlug)
	if !ok {
		m.fail("no %s file in the workspace, create %s (e, n)", lang.Lang, workspace.DefaultFile(lang.LangSlug))
		return leetcode.CodeSnippet{}, "", false
	}
	return lang, file, true
}

func (m *Model) run(ed *Editor) {
	lang, file, ok := m.solution(ed)
	if !ok {
		return
	}
	ed.runToken = m.next()
	ed.Pending = grading.KindRun
	m.request(event.RunTests{
		Token:      ed.runToken,
		Slug:       ed.Question.TitleSlug,
		QuestionID: ed.Question.QuestionID,
		Lang:       lang.LangSlug,
		File:       file,
		Input:      ed.Cases.Input(),
	})
}

func (m *Model) submitSolution(ed *Editor) {
	lang, file, ok := m.solution(ed)
	if !ok {
		return
	}
	ed.runToken = m.next()
	ed.Pending = grading.KindSubmission
	m.request(event.Submit{
		Token:      ed.runToken,
		Slug:       ed.Question.TitleSlug,
		QuestionID: ed.Question.QuestionID,
		Lang:       lang.LangSlug,
		File:       file,
	})
}

func (m *Model) workspaceKey(ws *Workspace, k tea.KeyPressMsg) Continuation {
	keys := m.keys
	slug := ws.Editor.Question.TitleSlug
	if ws.Mode == WorkspaceNewFile {
		switch {
		case key.Matches(k, keys.Back):
			ws.Mode, ws.Input = WorkspaceFiles, ""
		case key.Matches(k, keys.Confirm):
			name := ws.Input
			if name == "" {
				m.fail("file name is empty")
				break
			}
			var contents string
			if lang, ok := ws.Detected(); ok {
				if snip, ok := ws.Editor.Question.Snippet(lang.Slug); ok {
					contents = snip.Code
				}
			}
			m.request(event.CreateFile{Slug: slug, Name: name, Contents: contents})
			ws.Mode, ws.Input = WorkspaceFiles, ""
		case key.Matches(k, keys.Backspace):
			ws.Input = dropLast(ws.Input)
		case k.Text != "":
			ws.Input += k.Text
		default:
			return Skip
		}
		return Render
	}

	switch {
	case key.Matches(k, keys.Back):
		ws.Editor.Stage = StageDescription
		m.Screen = ws.Editor
	case key.Matches(k, keys.Down):
		ws.Files.Move(grid.Down)
	case key.Matches(k, keys.Up):
		ws.Files.Move(grid.Up)
	case key.Matches(k, keys.Open):
		name, ok := ws.Files.Hovered()
		if !ok {
			m.fail("no files yet, press n to create one")
			break
		}
		m.request(event.OpenFile{Slug: slug, Name: name})
	case key.Matches(k, keys.NewFile):
		ws.Mode = WorkspaceNewFile
		ws.Input = "solution.txt"
		if lang, ok := ws.Editor.Language(); ok {
			ws.Input = workspace.DefaultFile(lang.LangSlug)
		}
	default:
		return Skip
	}
	return Render
}

func dropLast(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
