package grid

// Dir is a navigation key direction.
type Dir int

const (
	Up Dir = iota
	Down
	Left
	Right
)

// LanguageColumns is the width of the language picker.
const LanguageColumns = 3

// Rows is the number of rows needed to lay n entries out in cols columns.
func Rows(n, cols int) int {
	if n <= 0 || cols <= 0 {
		return 0
	}
	return (n + cols - 1) / cols
}

// Navigate moves index one step in a column-major layout of n entries
// (index = col*rows + row). Moves that would leave the grid return index
// unchanged.
func Navigate(index int, dir Dir, cols, n int) int {
	if n <= 0 {
		return 0
	}
	if index < 0 || index >= n {
		return clamp(index, 0, n-1)
	}
	rows := Rows(n, cols)
	row := index % rows
	switch dir {
	case Up:
		if row > 0 {
			return index - 1
		}
	case Down:
		if row < rows-1 && index+1 < n {
			return index + 1
		}
	case Left:
		if index-rows >= 0 {
			return index - rows
		}
	case Right:
		if index+rows < n {
			return index + rows
		}
	}
	return index
}

// Selector is a cursor over a fixed list plus the entry last committed
// with Select.
type Selector[T any] struct {
	items  []T
	cols   int
	cursor int
	active int
}

func NewSelector[T any](items []T, cols int) *Selector[T] {
	if cols <= 0 {
		cols = 1
	}
	return &Selector[T]{items: items, cols: cols, active: -1}
}

func (s *Selector[T]) Items() []T  { return s.items }
func (s *Selector[T]) Len() int    { return len(s.items) }
func (s *Selector[T]) Cols() int   { return s.cols }
func (s *Selector[T]) Cursor() int { return s.cursor }
func (s *Selector[T]) Rows() int   { return Rows(len(s.items), s.cols) }

func (s *Selector[T]) Move(dir Dir) {
	s.cursor = Navigate(s.cursor, dir, s.cols, len(s.items))
}

// SetCursor places the cursor, clamped to the list.
func (s *Selector[T]) SetCursor(i int) {
	if len(s.items) == 0 {
		s.cursor = 0
		return
	}
	s.cursor = clamp(i, 0, len(s.items)-1)
}

// Replace swaps the entries, keeping the cursor in range. The active choice
// is cleared.
func (s *Selector[T]) Replace(items []T) {
	s.items = items
	s.active = -1
	s.SetCursor(s.cursor)
}

func (s *Selector[T]) Hovered() (T, bool) {
	var zero T
	if s.cursor < 0 || s.cursor >= len(s.items) {
		return zero, false
	}
	return s.items[s.cursor], true
}

// Select commits the hovered entry. It reports whether the choice changed.
func (s *Selector[T]) Select() bool {
	if s.cursor < 0 || s.cursor >= len(s.items) || s.active == s.cursor {
		return false
	}
	s.active = s.cursor
	return true
}

func (s *Selector[T]) Active() (T, bool) {
	var zero T
	if s.active < 0 || s.active >= len(s.items) {
		return zero, false
	}
	return s.items[s.active], true
}

// At returns the column and row of index i.
func (s *Selector[T]) At(i int) (col, row int) {
	rows := s.Rows()
	if rows == 0 {
		return 0, 0
	}
	return i / rows, i % rows
}
