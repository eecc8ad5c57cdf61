package views

// TextCommand is an edit or movement applied to the text view. The
// command view produces them; the driver drains them in FIFO order.
type TextCommand interface{ textCommand() }

// CursorUp moves the cursor up N rows, scrolling at the top edge.
type CursorUp struct{ N int }

// CursorDown moves the cursor down N rows, scrolling at the bottom edge.
type CursorDown struct{ N int }

// CursorLeft moves the cursor left N columns, stopping at the gutter.
type CursorLeft struct{ N int }

// CursorRight moves the cursor right N columns, scrolling and clamping
// to the end of line per the active cursor style.
type CursorRight struct{ N int }

// JumpTop places the cursor on the first line.
type JumpTop struct{}

// JumpBottom scrolls toward the end of the buffer. On a buffer taller
// than the viewport the bottom row shows the second-to-last line and the
// cursor sits there; otherwise the cursor lands on the last line.
type JumpBottom struct{}

// SetCursorStyle switches the text view's cursor shape.
type SetCursorStyle struct{ Style CursorStyle }

// Insert places a character at the cursor.
type Insert struct{ Ch rune }

// Delete removes a character: the one under the cursor in block style,
// the one before it in bar style (backspace).
type Delete struct{}

func (CursorUp) textCommand()       {}
func (CursorDown) textCommand()     {}
func (CursorLeft) textCommand()     {}
func (CursorRight) textCommand()    {}
func (JumpTop) textCommand()        {}
func (JumpBottom) textCommand()     {}
func (SetCursorStyle) textCommand() {}
func (Insert) textCommand()         {}
func (Delete) textCommand()         {}

// AppCommand is an application-level event for the driver.
type AppCommand interface{ appCommand() }

// Quit ends the session. Force distinguishes ":q!" from ":q"; both quit
// today, the flag is the seam for a future unsaved-changes check.
type Quit struct{ Force bool }

// FocusText hands the terminal cursor back to the text view.
type FocusText struct{}

// FocusCommand moves the terminal cursor to the command line.
type FocusCommand struct{}

func (Quit) appCommand()         {}
func (FocusText) appCommand()    {}
func (FocusCommand) appCommand() {}
