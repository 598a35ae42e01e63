package app

import "charm.land/bubbles/v2/key"

// KeyMap holds the bindings of every screen. Help returns the subset the
// footer shows for the active one.
type KeyMap struct {
	ForceQuit key.Binding

	Quit     key.Binding
	Down     key.Binding
	Up       key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Search   key.Binding
	Open     key.Binding
	Daily    key.Binding

	Back      key.Binding
	Confirm   key.Binding
	Backspace key.Binding

	TestCases  key.Binding
	Languages  key.Binding
	Workspace  key.Binding
	Run        key.Binding
	Submit     key.Binding
	PrevCase   key.Binding
	NextCase   key.Binding
	AddCase    key.Binding
	RemoveCase key.Binding
	Edit       key.Binding

	Left  key.Binding
	Right key.Binding

	NewFile key.Binding
}

// PageStep is how far ctrl+d and ctrl+u move the problem list.
const PageStep = 20

func DefaultKeyMap() KeyMap {
	return KeyMap{
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),

		Quit:     key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("q", "quit")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "move")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		PageDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d/u", "page")),
		PageUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "page up")),
		Top:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g/G", "top/bottom")),
		Bottom:   key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Daily:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "daily")),

		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "delete")),

		TestCases:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "test cases")),
		Languages:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "language")),
		Workspace:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "files")),
		Run:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "run")),
		Submit:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "submit")),
		PrevCase:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "case")),
		NextCase:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "next case")),
		AddCase:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		RemoveCase: key.NewBinding(key.WithKeys("x", "d"), key.WithHelp("x", "remove")),
		Edit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),

		Left:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("hjkl", "move")),
		Right: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "right")),

		NewFile: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new file")),
	}
}

// Help lists the bindings worth showing for the active screen.
func (m *Model) Help() []key.Binding {
	k := m.keys
	switch s := m.Screen.(type) {
	case *Home:
		if s.Mode == HomeSearching {
			return []key.Binding{k.Confirm, k.Back}
		}
		return []key.Binding{k.Down, k.PageDown, k.Top, k.Search, k.Open, k.Daily, k.Quit}
	case *Editor:
		switch s.Stage {
		case StageTestCases:
			return []key.Binding{k.PrevCase, k.Down, k.AddCase, k.RemoveCase, k.Edit, k.Languages, k.Run, k.Submit, k.Back}
		case StageEditingField:
			return []key.Binding{k.Confirm, k.Back}
		case StageSelectingLanguage:
			return []key.Binding{k.Left, k.Confirm, k.TestCases, k.Back}
		}
		return []key.Binding{k.Down, k.TestCases, k.Languages, k.Workspace, k.Run, k.Submit, k.Back}
	case *Workspace:
		if s.Mode == WorkspaceNewFile {
			return []key.Binding{k.Confirm, k.Back}
		}
		return []key.Binding{k.Down, k.Open, k.NewFile, k.Back}
	}
	return nil
}
