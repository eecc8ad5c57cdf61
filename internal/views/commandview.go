package views

import (
	"github.com/zjrosen/quill/internal/keys"
	"github.com/zjrosen/quill/internal/log"
)

// Mode is the interpreter's current state.
type Mode int

const (
	// ModeNormal interprets keys as motions and operators.
	ModeNormal Mode = iota
	// ModeInsert feeds printable keys into the buffer.
	ModeInsert
	// ModeCommandLine accumulates a ":" command.
	ModeCommandLine
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "Normal"
	case ModeInsert:
		return "Insert"
	case ModeCommandLine:
		return "Command"
	default:
		return "Unknown"
	}
}

// CommandView is the modal keystroke interpreter. It consumes keystroke
// batches and fills two FIFO queues: text commands for the text view and
// application commands for the driver. Its grid is the status/command
// row.
type CommandView struct {
	mode    Mode
	pending []keys.Key // keystrokes not yet parsed (e.g. a lone 'g')
	txtCmds []TextCommand
	appCmds []AppCommand
	cmdline []rune // accumulated ":" command text
	cursor  Position
	size    Position
	grid    [][]rune
}

// NewCommandView starts the interpreter in Normal mode.
func NewCommandView() *CommandView {
	return &CommandView{mode: ModeNormal}
}

// SetSize allocates the status-row grid and repaints.
func (v *CommandView) SetSize(p Position) {
	v.size = p
	v.grid = make([][]rune, p.Row)
	for r := range v.grid {
		v.grid[r] = make([]rune, p.Col)
		for c := range v.grid[r] {
			v.grid[r][c] = ' '
		}
	}
	v.refreshView()
}

// Size returns the grid dimensions.
func (v *CommandView) Size() Position { return v.size }

// Grid returns the cell matrix. Shared, read-only for callers.
func (v *CommandView) Grid() [][]rune { return v.grid }

// CursorPos returns the status-row cursor.
func (v *CommandView) CursorPos() Position { return v.cursor }

// Style returns the cursor shape for the status row. The command line is
// a typing surface, so it is always a bar.
func (v *CommandView) Style() CursorStyle { return StyleBar }

// Mode returns the interpreter state.
func (v *CommandView) Mode() Mode { return v.mode }

// AddKeystrokes appends a batch and drives parsing. Commands derived
// from the batch land on the queues in generation order.
func (v *CommandView) AddKeystrokes(ks []keys.Key) {
	v.pending = append(v.pending, ks...)
	v.parseCommands()
}

// NextTextCommand pops the oldest queued text command.
func (v *CommandView) NextTextCommand() (TextCommand, bool) {
	if len(v.txtCmds) == 0 {
		return nil, false
	}
	cmd := v.txtCmds[0]
	v.txtCmds = v.txtCmds[1:]
	return cmd, true
}

// NextAppCommand pops the oldest queued application command.
func (v *CommandView) NextAppCommand() (AppCommand, bool) {
	if len(v.appCmds) == 0 {
		return nil, false
	}
	cmd := v.appCmds[0]
	v.appCmds = v.appCmds[1:]
	return cmd, true
}

func (v *CommandView) pushText(cmd TextCommand) { v.txtCmds = append(v.txtCmds, cmd) }
func (v *CommandView) pushApp(cmd AppCommand)   { v.appCmds = append(v.appCmds, cmd) }

func (v *CommandView) parseCommands() {
	for len(v.pending) > 0 {
		switch v.mode {
		case ModeNormal:
			if !v.parseNormal() {
				return // lone 'g' retained for the next batch
			}
		case ModeInsert:
			v.parseInsert()
		case ModeCommandLine:
			v.parseCommandLine()
		}
	}
}

// parseNormal consumes one Normal-mode keystroke. It returns false when
// parsing must pause until more input arrives.
func (v *CommandView) parseNormal() bool {
	k := v.pending[0]
	if k.Kind != keys.KindRune {
		name := "escape"
		if k.Kind == keys.KindBackspace {
			name = "backspace"
		}
		log.Debug(log.CatInput, "Unhandled key in normal mode", "key", name)
		v.pending = v.pending[1:]
		return true
	}

	switch k.Rune {
	case ':':
		v.pushApp(FocusCommand{})
		v.mode = ModeCommandLine
		v.cmdline = nil
		v.refreshView()
	case 'h':
		v.pushText(CursorLeft{N: 1})
	case 'j':
		v.pushText(CursorDown{N: 1})
	case 'k':
		v.pushText(CursorUp{N: 1})
	case 'l':
		v.pushText(CursorRight{N: 1})
	case 'g':
		if len(v.pending) < 2 {
			return false
		}
		next := v.pending[1]
		if next.Kind == keys.KindRune && next.Rune == 'g' {
			v.pushText(JumpTop{})
			v.pending = v.pending[2:]
			return true
		}
		// Cancelled sequence: drop the 'g', reinterpret the next key.
		v.pending = v.pending[1:]
		return true
	case 'G':
		v.pushText(JumpBottom{})
	case 'i':
		v.pushText(SetCursorStyle{Style: StyleBar})
		v.mode = ModeInsert
		v.refreshView()
	case 'a':
		v.pushText(SetCursorStyle{Style: StyleBar})
		v.pushText(CursorRight{N: 1})
		v.mode = ModeInsert
		v.refreshView()
	case 'x':
		v.pushText(Delete{})
	default:
		log.Debug(log.CatInput, "Unhandled key in normal mode", "key", string(k.Rune))
	}
	v.pending = v.pending[1:]
	return true
}

func (v *CommandView) parseInsert() {
	k := v.pending[0]
	v.pending = v.pending[1:]

	switch k.Kind {
	case keys.KindEscape:
		v.pushText(SetCursorStyle{Style: StyleBlock})
		v.pushText(CursorLeft{N: 1})
		v.mode = ModeNormal
		v.refreshView()
	case keys.KindRune:
		v.pushText(Insert{Ch: k.Rune})
	case keys.KindBackspace:
		v.pushText(Delete{})
	}
}

func (v *CommandView) parseCommandLine() {
	k := v.pending[0]
	v.pending = v.pending[1:]

	switch {
	case k.Kind == keys.KindRune && k.Rune == '\n':
		s := string(v.cmdline)
		v.cmdline = nil
		v.dispatchCommand(s)
		v.pushApp(FocusText{})
		v.mode = ModeNormal
		v.refreshView()
	case k.Kind == keys.KindRune:
		v.cmdline = append(v.cmdline, k.Rune)
		v.refreshView()
	case k.Kind == keys.KindBackspace:
		if len(v.cmdline) == 0 {
			v.pushApp(FocusText{})
			v.mode = ModeNormal
		} else {
			v.cmdline = v.cmdline[:len(v.cmdline)-1]
		}
		v.refreshView()
	case k.Kind == keys.KindEscape:
		v.cmdline = nil
		v.pushApp(FocusText{})
		v.mode = ModeNormal
		v.refreshView()
	}
}

// dispatchCommand parses an accumulated command-line string. Unknown
// commands are dropped without an event.
func (v *CommandView) dispatchCommand(s string) {
	switch s {
	case "q":
		v.pushApp(Quit{Force: false})
	case "q!":
		v.pushApp(Quit{Force: true})
	default:
		if s != "" {
			log.Debug(log.CatInput, "Unknown command", "cmd", s)
		}
	}
}

// refreshView repaints the status row: the mode indicator in Normal and
// Insert, the ':' prompt plus the pending command text in CommandLine.
func (v *CommandView) refreshView() {
	if len(v.grid) == 0 || v.size.Col == 0 {
		return
	}
	row := v.grid[0]
	for c := range row {
		row[c] = ' '
	}

	switch v.mode {
	case ModeNormal, ModeInsert:
		text := "-- " + v.mode.String() + " --"
		for i, r := range text {
			if i >= v.size.Col {
				break
			}
			row[i] = r
		}
		v.cursor = Position{Row: 0, Col: 0}
	case ModeCommandLine:
		row[0] = ':'
		col := 1
		for _, r := range v.cmdline {
			if col >= v.size.Col {
				break
			}
			row[col] = r
			col++
		}
		if col >= v.size.Col {
			col = v.size.Col - 1
		}
		v.cursor = Position{Row: 0, Col: col}
	}
}
