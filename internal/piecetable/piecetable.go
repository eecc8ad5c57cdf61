// Package piecetable implements the text buffer backing the editor.
//
// The buffer is a piece table: an immutable original buffer holding the
// text the table was created with, an append-only add buffer receiving
// every inserted character, and an ordered list of pieces that logically
// concatenate to the current document. Mutations only ever touch the
// piece list and the add buffer, so the original text is never copied.
//
// A sorted list of line start indices is maintained incrementally across
// mutations, giving O(1) line lookup for the view layer. The table works
// in Unicode scalar values (runes), not bytes and not grapheme clusters.
package piecetable

import "fmt"

type bufferTag int

const (
	bufOriginal bufferTag = iota
	bufAdd
)

func (b bufferTag) String() string {
	if b == bufOriginal {
		return "original"
	}
	return "add"
}

// piece references length runes starting at start in one of the two
// backing buffers. A piece never has length 0.
type piece struct {
	buf    bufferTag
	start  int
	length int
}

// PieceTable is the editable text buffer. The zero value is not usable;
// construct with New.
type PieceTable struct {
	original   []rune
	add        []rune
	pieces     []piece
	length     int
	lineStarts []int
}

// New builds a table over the given original text. The text is stored
// once and never modified; an empty string yields an empty piece list.
func New(original string) *PieceTable {
	runes := []rune(original)

	lineStarts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}

	t := &PieceTable{
		original:   runes,
		add:        nil,
		length:     len(runes),
		lineStarts: lineStarts,
	}
	if len(runes) > 0 {
		t.pieces = []piece{{buf: bufOriginal, start: 0, length: len(runes)}}
	}
	return t
}

// Len returns the logical character count.
func (t *PieceTable) Len() int { return t.length }

// IsEmpty reports whether the buffer holds no characters.
func (t *PieceTable) IsEmpty() bool { return t.length == 0 }

// Lines returns the number of lines. A buffer ending in '\n' has a final
// empty line, matching a split of the materialized text on '\n'.
func (t *PieceTable) Lines() int { return len(t.lineStarts) }

// Index returns the character at logical index i.
// Indexing outside [0, Len()) is a programmer error and panics.
func (t *PieceTable) Index(i int) rune {
	if i < 0 || i >= t.length {
		panic(fmt.Sprintf("piecetable: index %d out of bounds, length %d", i, t.length))
	}
	p, before := t.findPiece(i)
	n := i - before
	if t.pieces[p].buf == bufOriginal {
		return t.original[t.pieces[p].start+n]
	}
	return t.add[t.pieces[p].start+n]
}

// Insert places c at logical index i, shifting everything at and after i
// right by one. i == Len() appends. Inserting outside [0, Len()] panics.
func (t *PieceTable) Insert(i int, c rune) {
	if i < 0 || i > t.length {
		panic(fmt.Sprintf("piecetable: insert at %d out of bounds, length %d", i, t.length))
	}

	if i == t.length {
		// Append: extend the final piece when it already ends at the
		// add buffer's tail, otherwise start a fresh add piece.
		last := len(t.pieces) - 1
		if last >= 0 && t.pieces[last].buf == bufAdd &&
			t.pieces[last].start+t.pieces[last].length == len(t.add) {
			t.pieces[last].length++
		} else {
			t.pieces = append(t.pieces, piece{buf: bufAdd, start: len(t.add), length: 1})
		}
	} else {
		p, before := t.findPiece(i)
		k := i - before

		switch {
		case k == 0 && p > 0 && t.pieces[p-1].buf == bufAdd &&
			t.pieces[p-1].start+t.pieces[p-1].length == len(t.add):
			// Boundary insert continuing the previous add piece.
			t.pieces[p-1].length++
		case k == 0:
			t.insertPiece(p, piece{buf: bufAdd, start: len(t.add), length: 1})
		case k == t.pieces[p].length:
			t.insertPiece(p+1, piece{buf: bufAdd, start: len(t.add), length: 1})
		default:
			// Split the piece and slot the new character between the halves.
			left := piece{buf: t.pieces[p].buf, start: t.pieces[p].start, length: k}
			t.pieces[p].start += k
			t.pieces[p].length -= k
			t.insertPiece(p, left)
			t.insertPiece(p+1, piece{buf: bufAdd, start: len(t.add), length: 1})
		}
	}

	t.add = append(t.add, c)
	t.length++

	for n := range t.lineStarts {
		if t.lineStarts[n] > i {
			t.lineStarts[n]++
		}
	}
	if c == '\n' {
		n := 0
		for n < len(t.lineStarts) && t.lineStarts[n] < i+1 {
			n++
		}
		t.lineStarts = append(t.lineStarts, 0)
		copy(t.lineStarts[n+1:], t.lineStarts[n:])
		t.lineStarts[n] = i + 1
	}
}

// Delete removes the character at logical index i. Deleting outside
// [0, Len()) panics.
func (t *PieceTable) Delete(i int) {
	if i < 0 || i >= t.length {
		panic(fmt.Sprintf("piecetable: delete at %d out of bounds, length %d", i, t.length))
	}

	ch := t.Index(i)
	p, before := t.findPiece(i)
	k := i - before

	switch {
	case k == 0:
		t.pieces[p].start++
		t.pieces[p].length--
		if t.pieces[p].length == 0 {
			t.pieces = append(t.pieces[:p], t.pieces[p+1:]...)
		}
	case k == t.pieces[p].length-1:
		t.pieces[p].length--
	default:
		left := piece{buf: t.pieces[p].buf, start: t.pieces[p].start, length: k}
		t.pieces[p].start += k + 1
		t.pieces[p].length -= k + 1
		t.insertPiece(p, left)
	}
	t.length--

	if ch == '\n' {
		for n := range t.lineStarts {
			if t.lineStarts[n] == i+1 {
				t.lineStarts = append(t.lineStarts[:n], t.lineStarts[n+1:]...)
				break
			}
		}
	}
	for n := range t.lineStarts {
		if t.lineStarts[n] > i {
			t.lineStarts[n]--
		}
	}
}

// Line returns the characters of line n without its trailing newline.
// The second return is false when the line does not exist.
func (t *PieceTable) Line(n int) ([]rune, bool) {
	switch {
	case n >= 0 && n+1 < len(t.lineStarts):
		line := make([]rune, 0, t.lineStarts[n+1]-1-t.lineStarts[n])
		for i := t.lineStarts[n]; i < t.lineStarts[n+1]-1; i++ {
			line = append(line, t.Index(i))
		}
		return line, true
	case n >= 0 && n < len(t.lineStarts):
		line := make([]rune, 0, t.length-t.lineStarts[n])
		for i := t.lineStarts[n]; i < t.length; i++ {
			line = append(line, t.Index(i))
		}
		return line, true
	default:
		return nil, false
	}
}

// LineOffset returns the logical index of the first character of line n.
func (t *PieceTable) LineOffset(n int) (int, bool) {
	if n < 0 || n >= len(t.lineStarts) {
		return 0, false
	}
	return t.lineStarts[n], true
}

// LineLength returns the character count of line n, excluding the
// newline. For the last line it runs through the end of the buffer.
func (t *PieceTable) LineLength(n int) (int, bool) {
	switch {
	case n >= 0 && n+1 < len(t.lineStarts):
		return t.lineStarts[n+1] - t.lineStarts[n] - 1, true
	case n >= 0 && n < len(t.lineStarts):
		return t.length - t.lineStarts[n], true
	default:
		return 0, false
	}
}

// String materializes the current document.
func (t *PieceTable) String() string {
	out := make([]rune, 0, t.length)
	for _, p := range t.pieces {
		if p.buf == bufOriginal {
			out = append(out, t.original[p.start:p.start+p.length]...)
		} else {
			out = append(out, t.add[p.start:p.start+p.length]...)
		}
	}
	return string(out)
}

// findPiece locates the piece containing logical index i and the summed
// length of all preceding pieces. Lookup is a linear scan; the piece
// count stays small relative to file size for typical edit sessions.
func (t *PieceTable) findPiece(i int) (idx, before int) {
	for idx < len(t.pieces) && before+t.pieces[idx].length <= i {
		before += t.pieces[idx].length
		idx++
	}
	return idx, before
}

func (t *PieceTable) insertPiece(at int, p piece) {
	t.pieces = append(t.pieces, piece{})
	copy(t.pieces[at+1:], t.pieces[at:])
	t.pieces[at] = p
}
