// Package tiles maps board state to the sprites of the tile strip and
// translates between pointer positions and squares.
package tiles

import (
	"github.com/vancomm/sweeper/internal/mines"
)

// Sprite indexes the tile strip, left to right.
type Sprite int

const (
	Zero Sprite = iota
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Mine
	Unknown
	Flag
)

var spriteNames = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"mine", "unknown", "flag",
}

func (s Sprite) String() string {
	if s < 0 || int(s) >= len(spriteNames) {
		return "invalid"
	}
	return spriteNames[s]
}

// View is the read-only side of a board that rendering needs.
type View interface {
	Rows() int
	Cols() int
	State() mines.State
	Truth(row, col int) mines.Value
	Visibility(row, col int) mines.Visibility
}

func FromValue(v mines.Value) Sprite {
	if v.IsMine() {
		return Mine
	}
	return Zero + Sprite(v)
}

// For picks the sprite for one square. Once the game is lost every square
// shows what it really is.
func For(v View, row, col int) Sprite {
	if v.State() == mines.Lost {
		return FromValue(v.Truth(row, col))
	}
	switch v.Visibility(row, col) {
	case mines.Flagged:
		return Flag
	case mines.Revealed:
		return FromValue(v.Truth(row, col))
	default:
		return Unknown
	}
}

// Grid maps the whole board, row by row.
func Grid(v View) [][]Sprite {
	grid := make([][]Sprite, v.Rows())
	for row := range grid {
		grid[row] = make([]Sprite, v.Cols())
		for col := range grid[row] {
			grid[row][col] = For(v, row, col)
		}
	}
	return grid
}
