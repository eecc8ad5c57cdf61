package piecetable

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// insertString inserts s one character at a time starting at index at.
func insertString(t *PieceTable, at int, s string) {
	for i, r := range []rune(s) {
		t.Insert(at+i, r)
	}
}

// ============================================================================
// Construction
// ============================================================================

// TestNew_SeedsSingleOriginalPiece verifies the initial layout.
func TestNew_SeedsSingleOriginalPiece(t *testing.T) {
	table := New("hello")

	require.Equal(t, 5, table.Len())
	require.False(t, table.IsEmpty())
	require.Len(t, table.pieces, 1)
	require.Equal(t, piece{buf: bufOriginal, start: 0, length: 5}, table.pieces[0])
	require.Equal(t, "hello", table.String())
}

// TestNew_Empty verifies an empty table has no pieces and one line.
func TestNew_Empty(t *testing.T) {
	table := New("")

	require.Equal(t, 0, table.Len())
	require.True(t, table.IsEmpty())
	require.Empty(t, table.pieces)
	require.Equal(t, 1, table.Lines())
	require.Equal(t, []int{0}, table.lineStarts)
}

// ============================================================================
// Edit sequences (piece layout)
// ============================================================================

// TestEditSequence_PieceLayout walks a full edit session and checks the
// exact piece layout after each stage.
func TestEditSequence_PieceLayout(t *testing.T) {
	table := New("ipsum sit amet")

	insertString(table, 0, "Lorem ")

	require.Equal(t, 20, table.Len())
	require.Equal(t, "Lorem ipsum sit amet", table.String())
	require.Equal(t, []piece{
		{buf: bufAdd, start: 0, length: 6},
		{buf: bufOriginal, start: 0, length: 14},
	}, table.pieces)

	insertString(table, 11, " dolor")

	require.Equal(t, "Lorem ipsum dolor sit amet", table.String())
	require.Equal(t, []piece{
		{buf: bufAdd, start: 0, length: 6},
		{buf: bufOriginal, start: 0, length: 5},
		{buf: bufAdd, start: 6, length: 6},
		{buf: bufOriginal, start: 5, length: 9},
	}, table.pieces)

	insertString(table, 26, ", consectetur")

	require.Equal(t, "Lorem ipsum dolor sit amet, consectetur", table.String())
	require.Equal(t, []piece{
		{buf: bufAdd, start: 0, length: 6},
		{buf: bufOriginal, start: 0, length: 5},
		{buf: bufAdd, start: 6, length: 6},
		{buf: bufOriginal, start: 5, length: 9},
		{buf: bufAdd, start: 12, length: 13},
	}, table.pieces)

	for i := 0; i < 5; i++ {
		table.Delete(6)
	}

	require.Equal(t, "Lorem  dolor sit amet, consectetur", table.String())
	require.Equal(t, []piece{
		{buf: bufAdd, start: 0, length: 6},
		{buf: bufAdd, start: 6, length: 6},
		{buf: bufOriginal, start: 5, length: 9},
		{buf: bufAdd, start: 12, length: 13},
	}, table.pieces)

	// Deletions in the middle of a piece split it.
	table.Delete(18)
	table.Delete(16)
	table.Delete(16)

	require.Equal(t, "Lorem  dolor sitet, consectetur", table.String())
	require.Equal(t, []piece{
		{buf: bufAdd, start: 0, length: 6},
		{buf: bufAdd, start: 6, length: 6},
		{buf: bufOriginal, start: 5, length: 4},
		{buf: bufOriginal, start: 12, length: 2},
		{buf: bufAdd, start: 12, length: 13},
	}, table.pieces)

	table.Delete(5)
	table.Delete(4)
	table.Delete(3)

	require.Equal(t, "Lor dolor sitet, consectetur", table.String())
	require.Equal(t, []piece{
		{buf: bufAdd, start: 0, length: 3},
		{buf: bufAdd, start: 6, length: 6},
		{buf: bufOriginal, start: 5, length: 4},
		{buf: bufOriginal, start: 12, length: 2},
		{buf: bufAdd, start: 12, length: 13},
	}, table.pieces)
}

// TestInsert_AppendExtendsAbuttingAddPiece verifies consecutive appends
// coalesce into one add piece.
func TestInsert_AppendExtendsAbuttingAddPiece(t *testing.T) {
	table := New("")
	insertString(table, 0, "abc")

	require.Equal(t, "abc", table.String())
	require.Len(t, table.pieces, 1)
	require.Equal(t, piece{buf: bufAdd, start: 0, length: 3}, table.pieces[0])
}

// TestDelete_RemovesEmptiedPiece verifies no zero-length piece survives.
func TestDelete_RemovesEmptiedPiece(t *testing.T) {
	table := New("a")
	table.Delete(0)

	require.Equal(t, 0, table.Len())
	require.Empty(t, table.pieces)
}

// ============================================================================
// Index bounds
// ============================================================================

// TestIndex_OutOfBoundsPanics verifies the programmer-error contract.
func TestIndex_OutOfBoundsPanics(t *testing.T) {
	table := New("ab")

	require.Panics(t, func() { table.Index(2) })
	require.Panics(t, func() { table.Index(-1) })
	require.Panics(t, func() { table.Insert(3, 'x') })
	require.Panics(t, func() { table.Delete(2) })
}

// ============================================================================
// Line index
// ============================================================================

// TestLines_Basic verifies line starts, contents, and lengths.
func TestLines_Basic(t *testing.T) {
	table := New("a\nb\nc")

	require.Equal(t, 3, table.Lines())
	require.Equal(t, []int{0, 2, 4}, table.lineStarts)

	for n, want := range []string{"a", "b", "c"} {
		line, ok := table.Line(n)
		require.True(t, ok)
		require.Equal(t, want, string(line))
	}

	l, ok := table.LineLength(2)
	require.True(t, ok)
	require.Equal(t, 1, l)

	off, ok := table.LineOffset(1)
	require.True(t, ok)
	require.Equal(t, 2, off)

	_, ok = table.Line(3)
	require.False(t, ok)
	_, ok = table.LineOffset(3)
	require.False(t, ok)
	_, ok = table.LineLength(3)
	require.False(t, ok)
}

// TestLines_TrailingNewline verifies a trailing newline yields a final
// empty line, matching a split of the text on '\n'.
func TestLines_TrailingNewline(t *testing.T) {
	table := New("a\n")

	require.Equal(t, 2, table.Lines())
	require.Equal(t, []int{0, 2}, table.lineStarts)

	line, ok := table.Line(1)
	require.True(t, ok)
	require.Empty(t, line)

	l, ok := table.LineLength(1)
	require.True(t, ok)
	require.Equal(t, 0, l)
}

// TestInsert_NewlineSplitsLine verifies the line index tracks an
// inserted newline.
func TestInsert_NewlineSplitsLine(t *testing.T) {
	table := New("hello world")
	table.Insert(5, '\n')

	require.Equal(t, 2, table.Lines())
	require.Equal(t, []int{0, 6}, table.lineStarts)

	first, ok := table.Line(0)
	require.True(t, ok)
	require.Equal(t, "hello", string(first))
	second, ok := table.Line(1)
	require.True(t, ok)
	require.Equal(t, " world", string(second))
}

// TestDelete_NewlineJoinsLines verifies the line index tracks a removed
// newline.
func TestDelete_NewlineJoinsLines(t *testing.T) {
	table := New("ab\ncd")
	table.Delete(2)

	require.Equal(t, 1, table.Lines())
	require.Equal(t, []int{0}, table.lineStarts)
	require.Equal(t, "abcd", table.String())
}

// TestInsertDelete_RoundTrip verifies inserting then deleting at the
// same index restores the original contents.
func TestInsertDelete_RoundTrip(t *testing.T) {
	table := New("round\ntrip")

	table.Insert(3, '\n')
	require.Equal(t, "rou\nnd\ntrip", table.String())
	require.Equal(t, 3, table.Lines())

	table.Delete(3)
	require.Equal(t, "round\ntrip", table.String())
	require.Equal(t, 10, table.Len())
	require.Equal(t, []int{0, 6}, table.lineStarts)
}

// ============================================================================
// Property tests
// ============================================================================

// refLineStarts computes line beginnings of the reference text.
func refLineStarts(ref []rune) []int {
	starts := []int{0}
	for i, r := range ref {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// checkAgainstReference asserts every public accessor and internal
// invariant against the naive mutable-string model.
func checkAgainstReference(rt *rapid.T, table *PieceTable, ref []rune) {
	if table.Len() != len(ref) {
		rt.Fatalf("length %d, reference %d", table.Len(), len(ref))
	}
	if table.String() != string(ref) {
		rt.Fatalf("content %q, reference %q", table.String(), string(ref))
	}
	for i := range ref {
		if table.Index(i) != ref[i] {
			rt.Fatalf("index %d: %q, reference %q", i, table.Index(i), ref[i])
		}
	}

	total := 0
	for _, p := range table.pieces {
		if p.length == 0 {
			rt.Fatalf("zero-length piece %+v", p)
		}
		total += p.length
	}
	if total != table.Len() {
		rt.Fatalf("piece lengths sum to %d, length %d", total, table.Len())
	}

	starts := refLineStarts(ref)
	if len(starts) != table.Lines() {
		rt.Fatalf("lines %d, reference %d", table.Lines(), len(starts))
	}
	for n, want := range starts {
		got, ok := table.LineOffset(n)
		if !ok || got != want {
			rt.Fatalf("line offset %d: %d (ok=%v), reference %d", n, got, ok, want)
		}
	}

	for n := 0; n < len(starts); n++ {
		end := len(ref)
		if n+1 < len(starts) {
			end = starts[n+1] - 1
		}
		want := string(ref[starts[n]:end])
		line, ok := table.Line(n)
		if !ok || string(line) != want {
			rt.Fatalf("line %d: %q (ok=%v), reference %q", n, string(line), ok, want)
		}
		length, ok := table.LineLength(n)
		if !ok || length != len(line) {
			rt.Fatalf("line length %d: %d (ok=%v), want %d", n, length, ok, len(line))
		}
	}
}

// TestPieceTable_MatchesReferenceModel drives random edit sessions and
// checks the table against the reference after every operation.
func TestPieceTable_MatchesReferenceModel(t *testing.T) {
	charGen := rapid.OneOf(
		rapid.RuneFrom([]rune("abcxyz ")),
		rapid.RuneFrom([]rune{'\n'}),
	)

	rapid.Check(t, func(rt *rapid.T) {
		original := rapid.StringOfN(charGen, 0, 40, -1).Draw(rt, "original")
		table := New(original)
		ref := []rune(original)
		checkAgainstReference(rt, table, ref)

		ops := rapid.IntRange(1, 60).Draw(rt, "ops")
		for i := 0; i < ops; i++ {
			if len(ref) == 0 || rapid.Bool().Draw(rt, "insert") {
				at := rapid.IntRange(0, len(ref)).Draw(rt, "insertAt")
				c := charGen.Draw(rt, "char")
				table.Insert(at, c)
				ref = append(ref[:at], append([]rune{c}, ref[at:]...)...)
			} else {
				at := rapid.IntRange(0, len(ref)-1).Draw(rt, "deleteAt")
				table.Delete(at)
				ref = append(ref[:at], ref[at+1:]...)
			}
			checkAgainstReference(rt, table, ref)
		}
	})
}
