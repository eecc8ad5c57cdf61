// Package keys contains the editor key model and keybinding definitions.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Kind classifies a keystroke consumed by the modal interpreter.
type Kind int

const (
	// KindRune is a printable scalar value, including '\n' for Enter.
	KindRune Kind = iota
	// KindEscape is the Esc key.
	KindEscape
	// KindBackspace is the Backspace key.
	KindBackspace
)

// Key is one keystroke as seen by the command interpreter. Arrow keys,
// function keys, and modified keys are not representable here; they are
// reserved for future modes and dropped at translation time.
type Key struct {
	Kind Kind
	Rune rune // set only for KindRune
}

// Rune builds a printable keystroke.
func Rune(r rune) Key { return Key{Kind: KindRune, Rune: r} }

// Escape is the Esc keystroke.
func Escape() Key { return Key{Kind: KindEscape} }

// Backspace is the Backspace keystroke.
func Backspace() Key { return Key{Kind: KindBackspace} }

// FromRunes converts a plain string into a keystroke sequence. Intended
// for tests and scripted input; '\n' maps to Enter.
func FromRunes(s string) []Key {
	ks := make([]Key, 0, len(s))
	for _, r := range s {
		ks = append(ks, Rune(r))
	}
	return ks
}

// FromKeyMsg translates a Bubble Tea key message into an interpreter
// keystroke. The second return is false for keys the interpreter does not
// consume (arrows, function keys, most control chords).
func FromKeyMsg(msg tea.KeyMsg) (Key, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return Rune(msg.Runes[0]), true
		}
		return Key{}, false
	case tea.KeySpace:
		return Rune(' '), true
	case tea.KeyTab:
		return Rune('\t'), true
	case tea.KeyEnter:
		return Rune('\n'), true
	case tea.KeyEsc:
		return Escape(), true
	case tea.KeyBackspace:
		return Backspace(), true
	default:
		return Key{}, false
	}
}

// Global contains keybindings handled by the driver before the modal
// interpreter sees the keystroke.
var Global = struct {
	ForceQuit key.Binding
}{
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "force quit"),
	),
}
