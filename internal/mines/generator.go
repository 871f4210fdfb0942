package mines

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type Params struct {
	Rows, Cols, MineCount int
}

// Reference is the classic 15x15 board with 30 mines.
var Reference = Params{Rows: 15, Cols: 15, MineCount: 30}

func (p Params) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Rows, p.Cols, p.MineCount)
}

// Source is the randomness used to place mines. *rand.Rand satisfies it.
type Source interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// Placement selects how mine positions are drawn.
type Placement int

const (
	// Independent draws MineCount positions with replacement. A square drawn
	// twice holds a single mine, so the board may carry fewer mines than
	// requested.
	Independent Placement = iota
	// Distinct draws without replacement and always places exactly
	// MineCount mines.
	Distinct
)

func (p Placement) String() string {
	switch p {
	case Independent:
		return "independent"
	case Distinct:
		return "distinct"
	default:
		return fmt.Sprintf("Placement(%d)", int(p))
	}
}

type options struct {
	src       Source
	placement Placement
}

type Option func(*options)

func WithSource(src Source) Option {
	return func(o *options) {
		o.src = src
	}
}

func WithPlacement(p Placement) Option {
	return func(o *options) {
		o.placement = p
	}
}

func (p Params) validate(placement Placement) error {
	if p.Rows <= 0 {
		return &ConfigError{Field: "rows", Value: p.Rows, Reason: "must be positive"}
	}
	if p.Cols <= 0 {
		return &ConfigError{Field: "cols", Value: p.Cols, Reason: "must be positive"}
	}
	if p.MineCount < 0 {
		return &ConfigError{Field: "mine_count", Value: p.MineCount, Reason: "must not be negative"}
	}
	if placement == Distinct && p.MineCount > p.Rows*p.Cols {
		return &ConfigError{
			Field:  "mine_count",
			Value:  p.MineCount,
			Reason: fmt.Sprintf("exceeds %d squares", p.Rows*p.Cols),
		}
	}
	return nil
}

// Generate lays out a fresh board: mines first, then the adjacency count of
// every other square. All squares start hidden.
func Generate(rows, cols, mineCount int, opts ...Option) (*Board, error) {
	return Params{Rows: rows, Cols: cols, MineCount: mineCount}.Generate(opts...)
}

func (p Params) Generate(opts ...Option) (*Board, error) {
	o := options{placement: Independent}
	for _, opt := range opts {
		opt(&o)
	}
	if err := p.validate(o.placement); err != nil {
		return nil, err
	}
	if o.src == nil {
		o.src = newRand()
	}

	truth := make([]Value, p.Rows*p.Cols)
	switch o.placement {
	case Distinct:
		placeDistinct(truth, p.MineCount, o.src)
	default:
		placeIndependent(truth, p.MineCount, o.src)
	}

	mines := 0
	for i := range truth {
		if truth[i].IsMine() {
			mines++
			continue
		}
		truth[i] = countAdjacent(truth, p.Cols, p.Rows, i)
	}

	Log.WithFields(logrus.Fields{
		"params":    p.String(),
		"placement": o.placement.String(),
		"mines":     mines,
	}).Debug("generated board")

	return &Board{
		rows:      p.Rows,
		cols:      p.Cols,
		requested: p.MineCount,
		mines:     mines,
		truth:     truth,
		visible:   make([]Visibility, len(truth)),
		state:     Active,
	}, nil
}

func placeIndependent(truth []Value, n int, src Source) {
	for range n {
		truth[src.IntN(len(truth))] = Mine
	}
}

func placeDistinct(truth []Value, n int, src Source) {
	candidates := make([]int, len(truth))
	for i := range candidates {
		candidates[i] = i
	}

	/*
	 * Pick n off the list at random, moving the last candidate into
	 * the hole each time.
	 */
	k := len(candidates)
	for range n {
		i := src.IntN(k)
		truth[candidates[i]] = Mine
		k--
		candidates[i] = candidates[k]
	}
}

// countAdjacent must only run once every mine is in place.
func countAdjacent(truth []Value, width, height, i int) Value {
	var v Value
	neighbours(width, height, i, func(j int) {
		if truth[j].IsMine() {
			v++
		}
	})
	return v
}
