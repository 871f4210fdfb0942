// Package session keeps the one live game served to clients and fans out its
// snapshots. Every engine call happens under the session lock.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/tiles"
)

var (
	ErrStaleGame   = errors.New("game has been replaced")
	ErrOutOfBounds = errors.New("square is outside the board")
)

type Snapshot struct {
	// Seq grows with every change to the session, across games.
	Seq       uint64           `json:"seq"`
	GameID    string           `json:"game_id"`
	Rows      int              `json:"rows"`
	Cols      int              `json:"cols"`
	MineCount int              `json:"mine_count"`
	Flags     int              `json:"flags"`
	State     string           `json:"state"`
	Outcome   string           `json:"outcome,omitempty"`
	Tiles     [][]tiles.Sprite `json:"tiles"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	StartedAt int64            `json:"started_at"`
	EndedAt   *int64           `json:"ended_at,omitempty"`
}

type Session struct {
	mu        sync.Mutex
	log       *logrus.Logger
	params    mines.Params
	boardOpts []mines.Option
	geometry  tiles.Geometry
	now       func() time.Time

	seq     uint64
	id      string
	board   *mines.Board
	started time.Time
	ended   *time.Time

	subs map[chan Snapshot]struct{}
}

type Option func(*Session)

func WithParams(p mines.Params) Option {
	return func(s *Session) {
		s.params = p
	}
}

func WithBoardOptions(opts ...mines.Option) Option {
	return func(s *Session) {
		s.boardOpts = append(s.boardOpts, opts...)
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New starts the first game right away.
func New(log *logrus.Logger, opts ...Option) (*Session, error) {
	s := &Session{
		log:    log,
		params: mines.Reference,
		now:    time.Now,
		subs:   make(map[chan Snapshot]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.geometry = tiles.Geometry{
		Rows:       s.params.Rows,
		Cols:       s.params.Cols,
		TileWidth:  tiles.TileSize,
		TileHeight: tiles.TileSize,
	}

	if err := s.restart(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Geometry() tiles.Geometry {
	return s.geometry
}

func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) restart() error {
	board, err := s.params.Generate(s.boardOpts...)
	if err != nil {
		return fmt.Errorf("unable to generate board: %w", err)
	}
	s.seq++
	s.id = uuid.NewString()
	s.board = board
	s.started = s.now().UTC()
	s.ended = nil

	s.log.WithFields(logrus.Fields{
		"game_id": s.id,
		"params":  s.params.String(),
		"mines":   board.Mines(),
	}).Info("new game")
	return nil
}

// Restart throws the current board away and deals a new one.
func (s *Session) Restart() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.restart(); err != nil {
		return Snapshot{}, err
	}
	snap := s.snapshot("")
	s.publish(snap)
	return snap, nil
}

func (s *Session) check(id string, row, col int) error {
	if id != s.id {
		return ErrStaleGame
	}
	if !s.board.InBounds(row, col) {
		return fmt.Errorf("%w: %d:%d", ErrOutOfBounds, row, col)
	}
	return nil
}

func (s *Session) Reveal(id string, row, col int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(id, row, col); err != nil {
		return Snapshot{}, err
	}

	outcome := s.board.Reveal(row, col)
	if s.board.State().Over() && s.ended == nil {
		ended := s.now().UTC()
		s.ended = &ended
		s.log.WithFields(logrus.Fields{
			"game_id":  s.id,
			"state":    s.board.State().String(),
			"duration": ended.Sub(s.started).String(),
		}).Info("game over")
	}

	if outcome == mines.NoChange {
		return s.snapshot(outcome.String()), nil
	}
	s.seq++
	snap := s.snapshot(outcome.String())
	s.publish(snap)
	return snap, nil
}

func (s *Session) Flag(id string, row, col int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.check(id, row, col); err != nil {
		return Snapshot{}, err
	}

	before := s.board.Visibility(row, col)
	s.board.ToggleFlag(row, col)

	if s.board.Visibility(row, col) == before {
		return s.snapshot(""), nil
	}
	s.seq++
	snap := s.snapshot("")
	s.publish(snap)
	return snap, nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot("")
}

func (s *Session) snapshot(outcome string) Snapshot {
	width, height := s.geometry.Size()
	snap := Snapshot{
		Seq:       s.seq,
		GameID:    s.id,
		Rows:      s.board.Rows(),
		Cols:      s.board.Cols(),
		MineCount: s.board.Mines(),
		Flags:     s.board.Flags(),
		State:     s.board.State().String(),
		Outcome:   outcome,
		Tiles:     tiles.Grid(s.board),
		Width:     width,
		Height:    height,
		StartedAt: s.started.UnixMilli(),
	}
	if s.ended != nil {
		e := s.ended.UnixMilli()
		snap.EndedAt = &e
	}
	return snap
}

// Subscribe returns a channel receiving a snapshot after every change. A
// subscriber that falls behind misses snapshots rather than blocking play.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Session) publish(snap Snapshot) {
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
			s.log.WithField("game_id", snap.GameID).Warn("subscriber lagging, snapshot dropped")
		}
	}
}
