package mines

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type State int

const (
	Active State = iota
	Lost
	Won
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) Over() bool {
	return s == Lost || s == Won
}

// Outcome reports what a reveal did to the game.
type Outcome int

const (
	NoChange Outcome = iota
	Continue
	Exploded
	Cleared
)

func (o Outcome) String() string {
	switch o {
	case NoChange:
		return "no_change"
	case Continue:
		return "continue"
	case Exploded:
		return "lost"
	case Cleared:
		return "won"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Board holds the truth grid and the player's view of it. The truth grid
// never changes after generation; the view changes only through Reveal and
// ToggleFlag while the game is active.
type Board struct {
	rows, cols int
	requested  int
	mines      int
	truth      []Value
	visible    []Visibility
	state      State
}

func (b *Board) Rows() int { return b.rows }

func (b *Board) Cols() int { return b.cols }

// Requested is the mine count the board was generated with.
func (b *Board) Requested() int { return b.requested }

// Mines is the number of squares actually holding a mine.
func (b *Board) Mines() int { return b.mines }

func (b *Board) State() State { return b.state }

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.rows && 0 <= col && col < b.cols
}

// panics [AssertionError]
func (b *Board) index(row, col int) int {
	if !b.InBounds(row, col) {
		panic(AssertionError{fmt.Sprintf(
			"square %d:%d outside %dx%d board", row, col, b.rows, b.cols,
		)})
	}
	return row*b.cols + col
}

// panics [AssertionError]
func (b *Board) Truth(row, col int) Value {
	return b.truth[b.index(row, col)]
}

// panics [AssertionError]
func (b *Board) Visibility(row, col int) Visibility {
	return b.visible[b.index(row, col)]
}

func (b *Board) Flags() (n int) {
	for _, v := range b.visible {
		if v == Flagged {
			n++
		}
	}
	return
}

// Hidden counts safe squares the player still has to open.
func (b *Board) Hidden() (n int) {
	for i, v := range b.visible {
		if v != Revealed && !b.truth[i].IsMine() {
			n++
		}
	}
	return
}

// Reveal opens a hidden square. Flagged or already open squares, and any
// square once the game is over, are left alone.
//
// panics [AssertionError] when row, col is off the board.
func (b *Board) Reveal(row, col int) Outcome {
	i := b.index(row, col)
	if b.state != Active || b.visible[i] != Hidden {
		return NoChange
	}

	if b.truth[i].IsMine() {
		b.visible[i] = Revealed
		b.state = Lost
		Log.WithFields(logrus.Fields{"row": row, "col": col}).Debug("mine revealed")
		return Exploded
	}

	opened := b.floodFill(i)
	Log.WithFields(logrus.Fields{
		"row": row, "col": col, "opened": len(opened),
	}).Debug("flood fill")

	if b.EvaluateWin() {
		b.state = Won
		return Cleared
	}
	return Continue
}

// floodFill opens start and walks outwards through zero squares. Every hidden
// neighbour of an expanded square is opened: zeros are expanded in turn,
// numbers are opened but not expanded, mines are never touched. The start
// square is expanded whatever its count. Returns the opened squares in the
// order they were opened.
func (b *Board) floodFill(start int) []int {
	b.visible[start] = Revealed
	opened := []int{start}
	stack := []int{start}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		neighbours(b.cols, b.rows, i, func(j int) {
			if b.visible[j] != Hidden {
				return
			}
			switch v := b.truth[j]; {
			case v.IsMine():
			case v == 0:
				b.visible[j] = Revealed
				opened = append(opened, j)
				stack = append(stack, j)
			default:
				b.visible[j] = Revealed
				opened = append(opened, j)
			}
		})
	}
	return opened
}

// ToggleFlag flips a hidden square to flagged and back.
//
// panics [AssertionError] when row, col is off the board.
func (b *Board) ToggleFlag(row, col int) {
	i := b.index(row, col)
	if b.state != Active {
		return
	}
	switch b.visible[i] {
	case Hidden:
		b.visible[i] = Flagged
	case Flagged:
		b.visible[i] = Hidden
	}
}

// EvaluateWin reports whether every square that is not revealed is a mine.
// Flags play no part.
func (b *Board) EvaluateWin() bool {
	for i, v := range b.visible {
		if v != Revealed && !b.truth[i].IsMine() {
			return false
		}
	}
	return true
}
