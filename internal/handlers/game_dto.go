package handlers

import (
	"errors"

	"github.com/gorilla/schema"

	"github.com/vancomm/sweeper/internal/tiles"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

var (
	errNoPosition      = errors.New("either row and col or x and y are required")
	errPointerOffBoard = errors.New("pointer is outside the board")
)

// PositionDTO names a square either directly or by a pointer position in
// pixels.
type PositionDTO struct {
	Row *int `schema:"row"`
	Col *int `schema:"col"`
	X   *int `schema:"x"`
	Y   *int `schema:"y"`
}

func ParsePositionDTO(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

// Square resolves the position to a row and column. Bounds are checked by
// the session, except for pointer positions which must land on a tile.
func (p PositionDTO) Square(g tiles.Geometry) (row, col int, err error) {
	switch {
	case p.Row != nil && p.Col != nil:
		return *p.Row, *p.Col, nil
	case p.X != nil && p.Y != nil:
		row, col, ok := g.CellAt(*p.X, *p.Y)
		if !ok {
			return 0, 0, errPointerOffBoard
		}
		return row, col, nil
	default:
		return 0, 0, errNoPosition
	}
}

type PointerDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePointerDTO(src map[string][]string) (PointerDTO, error) {
	var dto PointerDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}
