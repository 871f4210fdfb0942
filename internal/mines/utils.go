package mines

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// neighbours calls fn with the flat index of every square within one step of
// i, excluding i itself and anything off the grid.
func neighbours(width, height, i int, fn func(j int)) {
	x, y := i%width, i/width
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if xx >= 0 && xx < width && yy >= 0 && yy < height {
				fn(yy*width + xx)
			}
		}
	}
}
