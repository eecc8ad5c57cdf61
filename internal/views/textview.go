package views

import (
	"fmt"

	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/piecetable"
)

// GutterWidth is the number of grid columns reserved for the right-
// aligned line number and its trailing space. Text content starts here.
const GutterWidth = 5

// TextView owns the piece table and a viewport over it. Grid columns
// 0..GutterWidth-1 are the gutter; a cursor column of GutterWidth+k means
// buffer column offset.Col+k of the current line.
type TextView struct {
	offset Position // top-left of the viewport in buffer coordinates
	cursor Position // in grid cells
	size   Position
	style  CursorStyle
	text   *piecetable.PieceTable
	grid   [][]rune
}

// NewTextView builds a view over the given text. SetSize must be called
// before the first render.
func NewTextView(text string) *TextView {
	return &TextView{
		cursor: Position{Row: 0, Col: GutterWidth},
		offset: Position{Row: 0, Col: 0},
		style:  StyleBlock,
		text:   piecetable.New(text),
	}
}

// SetSize allocates the cell grid and repaints.
func (v *TextView) SetSize(p Position) {
	v.size = p
	v.grid = make([][]rune, p.Row)
	for r := range v.grid {
		v.grid[r] = make([]rune, p.Col)
		for c := range v.grid[r] {
			v.grid[r][c] = ' '
		}
	}
	v.refreshText()
}

// Size returns the grid dimensions.
func (v *TextView) Size() Position { return v.size }

// Grid returns the cell matrix. Shared, read-only for callers.
func (v *TextView) Grid() [][]rune { return v.grid }

// CursorPos returns the cursor in grid cells.
func (v *TextView) CursorPos() Position { return v.cursor }

// Style returns the current cursor shape.
func (v *TextView) Style() CursorStyle { return v.style }

// Contents materializes the buffer.
func (v *TextView) Contents() string { return v.text.String() }

// line is the buffer row under the cursor.
func (v *TextView) line() int { return v.offset.Row + v.cursor.Row }

// lineLen returns the length of buffer line n, 0 when n does not exist.
func (v *TextView) lineLen(n int) int {
	l, ok := v.text.LineLength(n)
	if !ok {
		return 0
	}
	return l
}

// ProcessCommand mutates viewport, cursor, and buffer state, repainting
// whenever visible content changes.
func (v *TextView) ProcessCommand(cmd TextCommand) {
	switch c := cmd.(type) {
	case CursorUp:
		v.cursorUp(c.N)
	case CursorDown:
		v.cursorDown(c.N)
	case CursorLeft:
		if v.cursor.Col-c.N > GutterWidth {
			v.cursor.Col -= c.N
		} else {
			v.cursor.Col = GutterWidth
		}
	case CursorRight:
		v.cursorRight(c.N)
	case JumpTop:
		v.cursor.Row = 0
		v.offset.Row = 0
		v.clampEndOfLine()
		v.refreshText()
	case JumpBottom:
		v.jumpBottom()
	case SetCursorStyle:
		v.style = c.Style
	case Insert:
		v.insert(c.Ch)
	case Delete:
		v.delete()
	default:
		log.Warn(log.CatView, "Unknown text command", "cmd", fmt.Sprintf("%T", cmd))
	}
}

func (v *TextView) cursorUp(y int) {
	if y <= v.cursor.Row {
		v.cursor.Row -= y
	} else {
		shift := y - v.cursor.Row
		if shift <= v.offset.Row {
			v.offset.Row -= shift
		} else {
			v.offset.Row = 0
		}
		v.cursor.Row = 0
		v.refreshText()
	}
	v.clampEndOfLine()
}

func (v *TextView) cursorDown(y int) {
	if v.line()+1 >= v.text.Lines() {
		return
	}
	if v.cursor.Row+y < v.size.Row {
		v.cursor.Row += y
	} else {
		v.offset.Row++
		if v.offset.Row+v.size.Row > v.text.Lines() {
			v.offset.Row = v.text.Lines() - v.size.Row
		}
		if v.offset.Row < 0 {
			v.offset.Row = 0
		}
		v.cursor.Row = v.size.Row - 1
		v.refreshText()
	}
	v.clampEndOfLine()
}

func (v *TextView) cursorRight(x int) {
	v.cursor.Col += x
	scrolled := false
	if v.cursor.Col >= v.size.Col {
		v.offset.Col += v.cursor.Col - (v.size.Col - 1)
		v.cursor.Col = v.size.Col - 1
		scrolled = true
	}

	// End-of-line clamp. A block cursor sits on a character, a bar
	// cursor may sit one past the last one.
	l := v.lineLen(v.line())
	maxCol := l - 1
	if v.style == StyleBar {
		maxCol = l
	}
	if maxCol < 0 {
		maxCol = 0
	}
	cur := v.offset.Col + v.cursor.Col - GutterWidth
	if cur > maxCol {
		excess := cur - maxCol
		fromOffset := excess
		if fromOffset > v.offset.Col {
			fromOffset = v.offset.Col
		}
		v.offset.Col -= fromOffset
		v.cursor.Col -= excess - fromOffset
		if v.cursor.Col < GutterWidth {
			v.cursor.Col = GutterWidth
		}
		if fromOffset > 0 {
			scrolled = true
		}
	}
	if scrolled {
		v.refreshText()
	}
}

func (v *TextView) jumpBottom() {
	lines := v.text.Lines()
	if lines > v.size.Row {
		v.offset.Row = lines - v.size.Row - 1
		v.cursor.Row = v.size.Row - 1
	} else {
		v.cursor.Row = lines - 1
		if v.cursor.Row < 0 {
			v.cursor.Row = 0
		}
	}
	v.clampEndOfLine()
	v.refreshText()
}

// clampEndOfLine pulls the cursor back inside the current line after
// vertical movement, onto the last character or the gutter edge when the
// line is empty.
func (v *TextView) clampEndOfLine() {
	l := v.lineLen(v.line())
	if v.cursor.Col >= GutterWidth+l {
		if l > 0 {
			v.cursor.Col = GutterWidth - 1 + l
		} else {
			v.cursor.Col = GutterWidth
		}
	}
}

// cursorIndex is the logical buffer index under the cursor.
func (v *TextView) cursorIndex() (int, bool) {
	off, ok := v.text.LineOffset(v.line())
	if !ok {
		return 0, false
	}
	return off + v.offset.Col + v.cursor.Col - GutterWidth, true
}

func (v *TextView) insert(ch rune) {
	idx, ok := v.cursorIndex()
	if !ok {
		log.Warn(log.CatView, "Insert outside buffer", "line", v.line())
		return
	}
	v.text.Insert(idx, ch)
	if ch == '\n' {
		v.cursor.Row++
		if v.cursor.Row >= v.size.Row {
			v.cursor.Row = v.size.Row - 1
			v.offset.Row++
		}
		v.cursor.Col = GutterWidth
		v.offset.Col = 0
	} else {
		v.cursor.Col++
		if v.cursor.Col >= v.size.Col {
			v.offset.Col += v.cursor.Col - (v.size.Col - 1)
			v.cursor.Col = v.size.Col - 1
		}
	}
	v.refreshText()
}

func (v *TextView) delete() {
	switch v.style {
	case StyleUnderline:
		panic("textview: delete with underline cursor")
	case StyleBlock:
		v.deleteUnderCursor()
	case StyleBar:
		v.deleteBeforeCursor()
	}
}

// deleteUnderCursor removes the character the block cursor sits on.
func (v *TextView) deleteUnderCursor() {
	col := v.offset.Col + v.cursor.Col - GutterWidth
	if col >= v.lineLen(v.line()) {
		return // empty line, nothing under the cursor
	}
	idx, ok := v.cursorIndex()
	if !ok {
		return
	}
	v.text.Delete(idx)
	v.clampEndOfLine()
	v.refreshText()
}

// deleteBeforeCursor implements backspace semantics for the bar cursor,
// folding into the previous line at a visual line start.
func (v *TextView) deleteBeforeCursor() {
	idx, ok := v.cursorIndex()
	if !ok || idx == 0 {
		return
	}
	atLineStart := v.cursor.Col == GutterWidth && v.offset.Col == 0
	if atLineStart && v.line() > 0 {
		// Remove the preceding newline and land on the join point.
		joinCol := v.lineLen(v.line() - 1)
		v.text.Delete(idx - 1)
		if v.cursor.Row > 0 {
			v.cursor.Row--
		} else if v.offset.Row > 0 {
			v.offset.Row--
		}
		if GutterWidth+joinCol < v.size.Col {
			v.cursor.Col = GutterWidth + joinCol
			v.offset.Col = 0
		} else {
			v.offset.Col = joinCol - (v.size.Col - 1 - GutterWidth)
			v.cursor.Col = v.size.Col - 1
		}
	} else {
		v.text.Delete(idx - 1)
		if v.cursor.Col == GutterWidth && v.offset.Col > 0 {
			v.offset.Col--
		} else if v.cursor.Col > GutterWidth {
			v.cursor.Col--
		}
	}
	v.refreshText()
}

// refreshText repaints the grid: right-aligned 4-digit line numbers in
// the gutter, then up to size.Col-GutterWidth characters of each visible
// line starting at buffer column offset.Col. Rows past the end of the
// buffer stay blank.
func (v *TextView) refreshText() {
	for r := range v.grid {
		for c := range v.grid[r] {
			v.grid[r][c] = ' '
		}
	}

	for r := 0; r < v.size.Row; r++ {
		row := v.offset.Row + r
		if row >= v.text.Lines() {
			continue
		}

		ln := row + 1
		for c := GutterWidth - 2; c >= 0; c-- {
			v.grid[r][c] = rune('0' + ln%10)
			ln /= 10
			if ln == 0 {
				break
			}
		}

		line, ok := v.text.Line(row)
		if !ok {
			continue
		}
		for c := GutterWidth; c < v.size.Col; c++ {
			i := v.offset.Col + c - GutterWidth
			if i >= len(line) {
				break
			}
			v.grid[r][c] = line[i]
		}
	}
}
