package ui

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutMedium
	LayoutTooSmall
)

func (l LayoutMode) String() string {
	switch l {
	case LayoutMedium:
		return "medium"
	case LayoutTooSmall:
		return "too_small"
	default:
		return "wide"
	}
}

// DetermineLayoutMode picks side-by-side panes on wide terminals and
// stacked panes otherwise.
func DetermineLayoutMode(cols, rows int) LayoutMode {
	if cols < 60 || rows < 16 {
		return LayoutTooSmall
	}
	if cols >= 120 {
		return LayoutWide
	}
	return LayoutMedium
}

// Chrome is the header line plus the status line.
const Chrome = 2

// editorPanes splits the body of the question view. In wide layouts the
// description is on the left; otherwise it sits above the side pane.
type editorPanes struct {
	descW, descH int
	sideW, sideH int
	stacked      bool
}

func splitEditor(mode LayoutMode, cols, body int) editorPanes {
	if mode == LayoutWide {
		descW := cols * 55 / 100
		return editorPanes{descW: descW, descH: body, sideW: cols - descW, sideH: body}
	}
	descH := body / 2
	return editorPanes{descW: cols, descH: descH, sideW: cols, sideH: body - descH, stacked: true}
}
