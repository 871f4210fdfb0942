package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the true content of a square: a mine, or the number of mines
// among its up to eight neighbours.
type Value int8

const Mine Value = -1

func (v Value) IsMine() bool {
	return v == Mine
}

func (v Value) String() string {
	switch {
	case v == Mine:
		return "*"
	case 0 <= v && v <= 8:
		return strconv.Itoa(int(v))
	default:
		return "!"
	}
}

// Visibility is what the player knows about a square.
type Visibility int8

const (
	Hidden Visibility = iota
	Flagged
	Revealed
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

func toString(width, length int, cell func(i int) string) string {
	var b strings.Builder
	for y := range length / width {
		for x := range width {
			i := y*width + x
			if x > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprint(&b, cell(i))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the player view: "." hidden, "F" flagged, otherwise the
// revealed value.
func (b *Board) String() string {
	return toString(b.cols, len(b.visible), func(i int) string {
		switch b.visible[i] {
		case Hidden:
			return "."
		case Flagged:
			return "F"
		default:
			return b.truth[i].String()
		}
	})
}

// TruthString renders the mine layout with adjacency counts.
func (b *Board) TruthString() string {
	return toString(b.cols, len(b.truth), func(i int) string {
		return b.truth[i].String()
	})
}
