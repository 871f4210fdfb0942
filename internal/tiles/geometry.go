package tiles

type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Geometry lays a board out on a surface of equally sized tiles.
type Geometry struct {
	Rows, Cols            int
	TileWidth, TileHeight int
}

const TileSize = 32

// Reference is the 15x15 board drawn with 32px tiles.
var Reference = Geometry{Rows: 15, Cols: 15, TileWidth: TileSize, TileHeight: TileSize}

func (g Geometry) Size() (width, height int) {
	return g.Cols * g.TileWidth, g.Rows * g.TileHeight
}

// Origin is the top left corner of a square.
func (g Geometry) Origin(row, col int) (x, y int) {
	return col * g.TileWidth, row * g.TileHeight
}

// CellAt translates a pointer position into a square. ok is false when the
// position falls outside the board.
func (g Geometry) CellAt(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	row, col = y/g.TileHeight, x/g.TileWidth
	if row >= g.Rows || col >= g.Cols {
		return 0, 0, false
	}
	return row, col, true
}

// Highlight is the outline of the 3x3 block centred on a square. It may
// overhang the board edges.
func (g Geometry) Highlight(row, col int) Rect {
	x, y := g.Origin(row-1, col-1)
	return Rect{X: x, Y: y, Width: 3 * g.TileWidth, Height: 3 * g.TileHeight}
}

// StripOffset is the x offset of a sprite inside the tile strip image.
func (g Geometry) StripOffset(s Sprite) int {
	return int(s) * g.TileWidth
}
