package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"leetui/internal/app"
	"leetui/internal/grading"
	"leetui/internal/grid"
	"leetui/internal/leetcode"
	"leetui/internal/workspace"
)

func (r *Root) compose(m *app.Model) string {
	cols, rows := m.Width, m.Height
	if cols < 1 {
		cols = 120
	}
	if rows < 1 {
		rows = 30
	}
	mode := DetermineLayoutMode(cols, rows)
	if mode == LayoutTooSmall {
		msg := fmt.Sprintf("Terminal too small (%dx%d). Need at least 60x16.", cols, rows)
		return r.theme.Fail.Render(truncate(msg, cols))
	}

	body := rows - Chrome
	var content string
	switch s := m.Screen.(type) {
	case *app.Home:
		content = r.renderHome(m, s, cols, body)
	case *app.Editor:
		content = r.renderEditor(s, mode, cols, body)
	case *app.Workspace:
		content = r.renderWorkspace(s, cols, body)
	}
	return strings.Join([]string{
		r.headerText(m, cols, mode),
		fit(content, cols, body),
		r.statusText(m, cols),
	}, "\n")
}

func (r *Root) headerText(m *app.Model, cols int, mode LayoutMode) string {
	parts := []string{"leetui"}
	if m.Status.Username != "" {
		user := m.Status.Username
		if m.Status.IsPremium {
			user += " (premium)"
		}
		parts = append(parts, user)
	}
	if p := m.Profile; p != nil {
		parts = append(parts, fmt.Sprintf("solved E%d M%d H%d", p.Solved("Easy"), p.Solved("Medium"), p.Solved("Hard")))
	}
	if d := m.Daily; d != nil {
		parts = append(parts, fmt.Sprintf("daily %s. %s", d.Question.ID, d.Question.Title))
	}
	txt := strings.Join(parts, " | ")
	if r.debug {
		txt = fmt.Sprintf("%s | %dx%d %v", txt, cols, m.Height, mode)
	}
	return r.theme.Header.Width(cols).Render(truncate(txt, cols-2))
}

func (r *Root) statusText(m *app.Model, cols int) string {
	var parts []string
	if m.Loading() {
		frames := spinner.MiniDot.Frames
		if r.ascii {
			frames = spinner.Line.Frames
		}
		parts = append(parts, r.theme.Pending.Render(frames[m.Frame%len(frames)]+" loading"))
	}
	if m.Err != "" {
		parts = append(parts, r.theme.Fail.Render("error: "+m.Err))
	} else {
		r.help.SetWidth(cols - 2)
		parts = append(parts, r.help.ShortHelpView(m.Help()))
	}
	return r.theme.Status.Width(cols).Render(truncate(strings.Join(parts, "  "), cols-2))
}

func (r *Root) renderHome(m *app.Model, h *app.Home, cols, body int) string {
	p := m.Pager
	var top string
	switch {
	case h.Mode == app.HomeSearching:
		top = r.theme.Accent.Render("/") + h.Input + r.cursor()
	case p.Search() != "":
		top = r.theme.Info.Render(fmt.Sprintf("search %q: %d loaded", p.Search(), p.Len()))
	default:
		top = r.theme.Muted.Render(fmt.Sprintf("problems: %d of %d loaded", p.Len(), p.Total()))
	}

	n := body - 1
	items := p.Items()
	if len(items) == 0 {
		msg := "no problems"
		if m.Loading() {
			msg = "loading problems..."
		}
		return top + "\n" + r.theme.Muted.Render(msg)
	}

	sel := p.Index()
	start := clampInt(sel-n/2, 0, max(0, len(items)-n))
	end := min(len(items), start+n)
	titleW := max(10, cols-32)
	lines := []string{top}
	for i := start; i < end; i++ {
		lines = append(lines, r.problemRow(items[i], i == sel, m.Status.IsPremium, titleW))
	}
	if end == len(items) && p.InFlight() {
		lines = append(lines, r.theme.Pending.Render("loading more..."))
	}
	return strings.Join(lines, "\n")
}

func (r *Root) problemRow(p leetcode.Problem, selected, premium bool, titleW int) string {
	icon := " "
	switch p.Status {
	case leetcode.StatusAccepted:
		icon = r.glyph("✓", "v")
	case leetcode.StatusAttempted:
		icon = r.glyph("…", "~")
	}
	title := p.Title
	if p.PaidOnly && !premium {
		title = r.glyph("⊘ ", "$ ") + title
	}
	title = pad(truncate(title, titleW), titleW)
	diff := fmt.Sprintf("%-6s", p.Difficulty)
	rate := fmt.Sprintf("%5.1f%%", p.AcRate)
	if selected {
		return r.theme.Selected.Render(fmt.Sprintf("%s %5s  %s  %s  %s", icon, p.ID, title, diff, rate))
	}
	icon = r.theme.Pass.Render(icon)
	if p.Status == leetcode.StatusAttempted {
		icon = r.theme.Pending.Render(icon)
	}
	return fmt.Sprintf("%s %5s  %s  %s  %s", icon, p.ID, title, r.theme.Difficulty(p.Difficulty).Render(diff), r.theme.Muted.Render(rate))
}

func (r *Root) renderEditor(ed *app.Editor, mode LayoutMode, cols, body int) string {
	vh := 0
	if ed.Verdict != nil || ed.Pending != "" {
		vh = min(8, body/3)
	}
	panes := splitEditor(mode, cols, body-vh)
	desc := r.descriptionPane(ed, panes.descW, panes.descH)
	var side string
	if ed.Stage == app.StageSelectingLanguage {
		side = r.languagePane(ed, panes.sideW, panes.sideH)
	} else {
		side = r.casesPane(ed, panes.sideW, panes.sideH)
	}

	var out string
	if panes.stacked {
		out = lipgloss.JoinVertical(lipgloss.Left, desc, side)
	} else {
		out = lipgloss.JoinHorizontal(lipgloss.Top, desc, side)
	}
	if vh > 0 {
		out = lipgloss.JoinVertical(lipgloss.Left, out, r.verdictPane(ed, cols, vh))
	}
	return out
}

func (r *Root) descriptionPane(ed *app.Editor, width, height int) string {
	q := ed.Question
	lines := r.descriptionLines(q, width-4)
	inner := max(1, height-2)
	ed.FitDescription(len(lines), inner)
	end := min(len(lines), ed.DescOffset+inner)
	title := fmt.Sprintf("%s. %s | %s", q.FrontendID, q.Title, q.Difficulty)
	if len(lines) > inner {
		title += fmt.Sprintf(" | %d/%d", ed.DescOffset+1, len(lines))
	}
	return r.drawPanel(title, lines[ed.DescOffset:end], width, height, ed.Stage == app.StageDescription)
}

// descriptionLines renders the question text to width, reusing the last
// result while neither changes.
func (r *Root) descriptionLines(q leetcode.Question, width int) []string {
	width = max(10, width)
	if r.desc.slug == q.TitleSlug && r.desc.width == width && r.desc.lines != nil {
		return r.desc.lines
	}
	md := leetcode.Markdown(q.Content)
	out := md
	if tr := r.markdownRenderer(width); tr != nil {
		if rendered, err := tr.Render(md); err == nil {
			out = rendered
		} else {
			r.logger.Error("ui.markdown_failed", map[string]any{"slug": q.TitleSlug, "error": err.Error()})
		}
	}
	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	r.desc = descCache{slug: q.TitleSlug, width: width, lines: lines}
	return lines
}

func (r *Root) markdownRenderer(width int) *glamour.TermRenderer {
	if tr, ok := r.markdown[width]; ok {
		return tr
	}
	style := "dark"
	if r.ascii {
		style = "ascii"
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		tr = nil
	}
	r.markdown[width] = tr
	return tr
}

func (r *Root) casesPane(ed *app.Editor, width, height int) string {
	c := ed.Cases
	inner := max(1, height-2)
	c.SetViewport(inner)
	focused := ed.Stage == app.StageTestCases || ed.Stage == app.StageEditingField
	title := "Test cases"

	cur, ok := c.Current()
	if !ok {
		return r.drawPanel(title, []string{r.theme.Muted.Render("no test cases, press t then a to add one")}, width, height, focused)
	}

	var lines []string
	if c.Offset() < grid.HeaderLines {
		lines = append(lines, r.theme.Accent.Render(fmt.Sprintf("Case %d/%d", c.Index()+1, c.Len())))
	}
	for row := 0; row < c.Params(); row++ {
		start, end, visible := c.Clip(row)
		if !visible {
			continue
		}
		block := r.fieldBlock(ed, cur, row, width-2, focused)
		top := grid.RowTop(row) - c.Offset()
		lines = append(lines, block[start-top:end-top]...)
	}
	return r.drawPanel(title, lines, width, height, focused)
}

// fieldBlock draws one parameter of a case in grid.RowHeight lines: label,
// three line box, spacer.
func (r *Root) fieldBlock(ed *app.Editor, c grid.Case, row, width int, focused bool) []string {
	label := fmt.Sprintf("param %d", row+1)
	if row < len(ed.Question.Params) {
		p := ed.Question.Params[row]
		label = fmt.Sprintf("%s (%s)", p.Name, p.Type)
	}
	value := ""
	if row < len(c.Inputs) {
		value = c.Inputs[row]
	}
	selected := focused && row == ed.Cases.Field()
	if selected && ed.Stage == app.StageEditingField {
		value += r.cursor()
	}

	boxW := max(4, width-2)
	border := r.theme.PanelBorder
	labelStyle := r.theme.Muted
	if selected {
		border = r.theme.Accent
		labelStyle = r.theme.Accent
	}
	hl, vl, tl, tr, bl, br := r.boxRunes()
	return []string{
		labelStyle.Render(truncate(label, width)),
		border.Render(tl + strings.Repeat(hl, boxW-2) + tr),
		border.Render(vl) + pad(truncate(value, boxW-2), boxW-2) + border.Render(vl),
		border.Render(bl + strings.Repeat(hl, boxW-2) + br),
		"",
	}
}

func (r *Root) languagePane(ed *app.Editor, width, height int) string {
	sel := ed.Languages
	if sel.Len() == 0 {
		return r.drawPanel("Language", []string{r.theme.Muted.Render("no code snippets")}, width, height, true)
	}
	colW := max(6, (width-2)/sel.Cols())
	active, hasActive := sel.Active()
	cells := make([][]string, sel.Rows())
	for row := range cells {
		cells[row] = make([]string, sel.Cols())
	}
	for i, snip := range sel.Items() {
		col, row := sel.At(i)
		mark := "  "
		if hasActive && snip.LangSlug == active.LangSlug {
			mark = r.glyph("● ", "* ")
		}
		cell := pad(truncate(mark+snip.Lang, colW-1), colW-1)
		if i == sel.Cursor() {
			cell = r.theme.Selected.Render(cell)
		}
		cells[row][col] = cell + " "
	}
	lines := make([]string, 0, len(cells))
	for _, row := range cells {
		lines = append(lines, strings.Join(row, ""))
	}
	return r.drawPanel("Language", lines, width, height, true)
}

func (r *Root) verdictPane(ed *app.Editor, width, height int) string {
	var lines []string
	switch {
	case ed.Pending == grading.KindRun:
		lines = append(lines, r.theme.Pending.Render("running tests..."))
	case ed.Pending == grading.KindSubmission:
		lines = append(lines, r.theme.Pending.Render("submitting..."))
	case ed.Verdict != nil:
		lines = r.verdictLines(ed, width-2)
	}
	return r.drawPanel("Result", lines, width, height, false)
}

func (r *Root) verdictLines(ed *app.Editor, width int) []string {
	v := ed.Verdict
	style := r.theme.Fail
	if v.Passed {
		style = r.theme.Pass
	}
	lines := []string{style.Render(truncate(v.Summary(), width))}
	if v.Total > 0 {
		r.verdictBar.SetWidth(min(40, width))
		lines = append(lines, r.verdictBar.ViewAs(r.bar.step(v)))
	}
	for _, msg := range []string{v.CompileError, v.RuntimeError} {
		if msg != "" {
			lines = append(lines, r.theme.Fail.Render(truncate(firstLine(msg), width)))
		}
	}
	if v.Kind == grading.KindRun {
		i := ed.Cases.Index()
		for _, c := range v.Cases {
			if c.Index != i {
				continue
			}
			mark := r.theme.Pass.Render(r.glyph("✓", "ok"))
			if !c.Passed {
				mark = r.theme.Fail.Render(r.glyph("✗", "x"))
			}
			lines = append(lines, truncate(fmt.Sprintf("%s case %d  output %s  expected %s", mark, i+1, c.Output, c.Expected), width))
			lines = append(lines, r.diffLines(c.Diff, width)...)
		}
		if v.Stdout != "" {
			lines = append(lines, r.theme.Muted.Render(truncate("stdout: "+firstLine(v.Stdout), width)))
		}
		return lines
	}
	if v.LastInput != "" {
		lines = append(lines, truncate("input:    "+strings.ReplaceAll(v.LastInput, "\n", " "), width))
		if len(v.Cases) > 0 && v.Cases[0].Diff != "" {
			lines = append(lines, r.diffLines(v.Cases[0].Diff, width)...)
		} else {
			lines = append(lines,
				truncate("expected: "+v.ExpectedOutput, width),
				truncate("output:   "+v.CodeOutput, width),
			)
		}
	}
	return lines
}

// diffLines colors the body of a unified diff: expected lines as passes,
// actual lines as failures. The file headers are left out.
func (r *Root) diffLines(diff string, width int) []string {
	var out []string
	for _, l := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case l == "", strings.HasPrefix(l, "---"), strings.HasPrefix(l, "+++"):
		case strings.HasPrefix(l, "-"):
			out = append(out, r.theme.Pass.Render(truncate("  "+l, width)))
		case strings.HasPrefix(l, "+"):
			out = append(out, r.theme.Fail.Render(truncate("  "+l, width)))
		default:
			out = append(out, truncate("  "+l, width))
		}
	}
	return out
}

func (r *Root) renderWorkspace(ws *app.Workspace, cols, body int) string {
	ed := ws.Editor
	title := fmt.Sprintf("Workspace | %s", ed.Question.TitleSlug)
	if ed.Dir != "" {
		title += " | " + ed.Dir
	}

	var lines []string
	files := ws.Files.Items()
	if len(files) == 0 {
		lines = append(lines, r.theme.Muted.Render("no solution files yet, press n to create one"))
	}
	for i, name := range files {
		lang := ""
		if l, ok := workspace.Detect(name); ok {
			lang = l.Name
		}
		row := fmt.Sprintf("%s  %s", pad(truncate(name, cols-20), cols-20), lang)
		if i == ws.Files.Cursor() && ws.Mode == app.WorkspaceFiles {
			row = r.theme.Selected.Render(row)
		}
		lines = append(lines, row)
	}

	if ws.Mode == app.WorkspaceNewFile {
		hint := r.theme.Muted.Render("unknown language, file starts empty")
		if l, ok := ws.Detected(); ok {
			hint = r.theme.Info.Render(l.Name + " snippet")
		}
		lines = append(lines, "", r.theme.Accent.Render("new file: ")+ws.Input+r.cursor()+"  "+hint)
	}
	return r.drawPanel(title, lines, cols, body, true)
}

func (r *Root) drawPanel(title string, lines []string, width, height int, focused bool) string {
	width = max(4, width)
	height = max(3, height)
	innerW := width - 2
	innerH := height - 2

	h, v, tl, tr, bl, br := r.boxRunes()
	border := r.theme.PanelBorder
	if focused {
		border = r.theme.PanelTitle
	}

	top := border.Render(tl + strings.Repeat(h, innerW) + tr)
	if title != "" && innerW > 2 {
		t := truncate(" "+title+" ", innerW-1)
		rest := innerW - 1 - ansi.StringWidth(t)
		top = border.Render(tl+h) + r.theme.PanelTitle.Render(t) + border.Render(strings.Repeat(h, max(0, rest))+tr)
	}

	out := make([]string, 0, height)
	out = append(out, top)
	for row := 0; row < innerH; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		line = pad(truncate(line, innerW), innerW)
		out = append(out, border.Render(v)+r.theme.PanelBody.Render(line)+border.Render(v))
	}
	out = append(out, border.Render(bl+strings.Repeat(h, innerW)+br))
	return strings.Join(out, "\n")
}

func (r *Root) boxRunes() (h, v, tl, tr, bl, br string) {
	if r.ascii {
		return "-", "|", "+", "+", "+", "+"
	}
	return "─", "│", "┌", "┐", "└", "┘"
}

func (r *Root) glyph(unicode, ascii string) string {
	if r.ascii {
		return ascii
	}
	return unicode
}

func (r *Root) cursor() string {
	return r.theme.Accent.Render(r.glyph("▏", "_"))
}

// fit pads or cuts s to exactly height lines no wider than width.
func fit(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = truncate(l, width)
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}

func pad(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func normalizeStyleVariant(v string) string {
	switch strings.TrimSpace(v) {
	case "cozy_clean", "retro_terminal", defaultStyleVariant:
		return strings.TrimSpace(v)
	default:
		return defaultStyleVariant
	}
}
