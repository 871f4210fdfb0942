package tiles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/sweeper/internal/mines"
)

type fakeView struct {
	state   mines.State
	cols    int
	truth   []mines.Value
	visible []mines.Visibility
}

func (f fakeView) Rows() int          { return len(f.truth) / f.cols }
func (f fakeView) Cols() int          { return f.cols }
func (f fakeView) State() mines.State { return f.state }

func (f fakeView) Truth(row, col int) mines.Value {
	return f.truth[row*f.cols+col]
}

func (f fakeView) Visibility(row, col int) mines.Visibility {
	return f.visible[row*f.cols+col]
}

func TestFromValue(t *testing.T) {
	assert.Equal(t, Mine, FromValue(mines.Mine))
	for v := range 9 {
		assert.Equal(t, Sprite(v), FromValue(mines.Value(v)))
	}
	assert.Equal(t, "eight", FromValue(8).String())
}

func TestForActive(t *testing.T) {
	v := fakeView{
		state:   mines.Active,
		cols:    4,
		truth:   []mines.Value{mines.Mine, 1, 0, 2},
		visible: []mines.Visibility{mines.Hidden, mines.Revealed, mines.Revealed, mines.Flagged},
	}

	assert.Equal(t, [][]Sprite{{Unknown, One, Zero, Flag}}, Grid(v))
}

func TestForLostShowsTruth(t *testing.T) {
	v := fakeView{
		state:   mines.Lost,
		cols:    2,
		truth:   []mines.Value{mines.Mine, 1, mines.Mine, 2},
		visible: []mines.Visibility{mines.Revealed, mines.Hidden, mines.Flagged, mines.Hidden},
	}

	assert.Equal(t, [][]Sprite{{Mine, One}, {Mine, Two}}, Grid(v))
}

func TestForWonKeepsView(t *testing.T) {
	b, err := mines.Generate(1, 1, 0)
	assert.NoError(t, err)
	b.Reveal(0, 0)

	assert.Equal(t, mines.Won, b.State())
	assert.Equal(t, Zero, For(b, 0, 0))
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		name     string
		x, y     int
		row, col int
		ok       bool
	}{
		{"origin", 0, 0, 0, 0, true},
		{"inside first tile", 31, 31, 0, 0, true},
		{"second column", 32, 0, 0, 1, true},
		{"last tile", 479, 479, 14, 14, true},
		{"right edge", 480, 10, 0, 0, false},
		{"bottom edge", 10, 480, 0, 0, false},
		{"negative", -1, 5, 0, 0, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			row, col, ok := Reference.CellAt(test.x, test.y)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.row, row)
			assert.Equal(t, test.col, col)
		})
	}
}

func TestGeometry(t *testing.T) {
	w, h := Reference.Size()
	assert.Equal(t, 480, w)
	assert.Equal(t, 480, h)

	x, y := Reference.Origin(2, 3)
	assert.Equal(t, 96, x)
	assert.Equal(t, 64, y)

	assert.Equal(t, Rect{X: 64, Y: 32, Width: 96, Height: 96}, Reference.Highlight(2, 3))
	assert.Equal(t, Rect{X: -32, Y: -32, Width: 96, Height: 96}, Reference.Highlight(0, 0))
	assert.Equal(t, 11*32, Reference.StripOffset(Flag))
}

func TestTerminalGeometry(t *testing.T) {
	g := Geometry{Rows: 3, Cols: 3, TileWidth: 2, TileHeight: 1}

	row, col, ok := g.CellAt(5, 2)
	assert.True(t, ok)
	assert.Equal(t, 2, row)
	assert.Equal(t, 2, col)

	_, _, ok = g.CellAt(6, 0)
	assert.False(t, ok)
}
