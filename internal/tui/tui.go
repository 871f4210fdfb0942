// Package tui plays the live board in a terminal window. Each tile takes two
// columns and one row; the mouse plays, the keyboard starts over or quits.
package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/tiles"
)

const winBanner = "You Win!"

type UI struct {
	screen   tcell.Screen
	log      *logrus.Logger
	newBoard func() (*mines.Board, error)

	board     *mines.Board
	geometry  tiles.Geometry
	highlight *tiles.Rect
	buttons   tcell.ButtonMask
}

// New deals the first board. screen must already be initialised.
func New(screen tcell.Screen, log *logrus.Logger, newBoard func() (*mines.Board, error)) (*UI, error) {
	u := &UI{
		screen:   screen,
		log:      log,
		newBoard: newBoard,
	}
	if err := u.restart(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *UI) restart() error {
	board, err := u.newBoard()
	if err != nil {
		return fmt.Errorf("unable to generate board: %w", err)
	}
	u.board = board
	u.geometry = tiles.Geometry{
		Rows:       board.Rows(),
		Cols:       board.Cols(),
		TileWidth:  2,
		TileHeight: 1,
	}
	u.highlight = nil
	u.log.WithFields(logrus.Fields{
		"rows":  board.Rows(),
		"cols":  board.Cols(),
		"mines": board.Mines(),
	}).Debug("new board")
	return nil
}

func (u *UI) Board() *mines.Board {
	return u.board
}

// Run draws the board and handles events until the player quits or ctx is
// cancelled.
func (u *UI) Run(ctx context.Context) error {
	u.screen.EnableMouse()
	defer u.screen.DisableMouse()

	stop := context.AfterFunc(ctx, func() {
		u.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	u.Draw()
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return nil
		}
		quit, err := u.HandleEvent(ev)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		u.Draw()
	}
}

// HandleEvent applies one event to the board. It reports whether the player
// asked to quit.
func (u *UI) HandleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return true, nil
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true, nil
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'n':
			return false, u.restart()
		}
	case *tcell.EventMouse:
		u.handleMouse(ev)
	}
	return false, nil
}

func (u *UI) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons &^ u.buttons
	u.buttons = buttons

	x, y := ev.Position()
	row, col, onBoard := u.geometry.CellAt(x, y)

	if buttons&tcell.ButtonMiddle != 0 && onBoard {
		rect := u.geometry.Highlight(row, col)
		u.highlight = &rect
	} else {
		u.highlight = nil
	}

	if !onBoard {
		return
	}
	switch {
	case pressed&tcell.ButtonPrimary != 0:
		outcome := u.board.Reveal(row, col)
		u.log.WithFields(logrus.Fields{
			"row":     row,
			"col":     col,
			"outcome": outcome.String(),
		}).Debug("reveal")
	case pressed&tcell.ButtonSecondary != 0:
		u.board.ToggleFlag(row, col)
	}
}

// Draw renders the board, the status line and, once the game is won, the
// banner.
func (u *UI) Draw() {
	u.screen.Clear()

	for row := range u.board.Rows() {
		for col := range u.board.Cols() {
			u.drawTile(row, col, tiles.For(u.board, row, col))
		}
	}

	status := fmt.Sprintf("mines: %d  flags: %d  %s", u.board.Mines(), u.board.Flags(), u.board.State())
	u.drawText(0, u.board.Rows()+1, status, tcell.StyleDefault)
	u.drawText(0, u.board.Rows()+2, "n: new game  q: quit", tcell.StyleDefault.Dim(true))

	if u.board.State() == mines.Won {
		width, height := u.geometry.Size()
		x := max(0, (width-len(winBanner))/2)
		style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow).Bold(true)
		u.drawText(x, height/2, winBanner, style)
	}

	u.screen.Show()
}

func (u *UI) drawTile(row, col int, s tiles.Sprite) {
	x, y := u.geometry.Origin(row, col)
	r, style := spriteRune(s), spriteStyle(s)
	if u.highlighted(x, y) {
		style = style.Reverse(true)
	}
	u.screen.SetContent(x, y, r, nil, style)
	u.screen.SetContent(x+1, y, ' ', nil, style)
}

func (u *UI) highlighted(x, y int) bool {
	h := u.highlight
	return h != nil && x >= h.X && x < h.X+h.Width && y >= h.Y && y < h.Y+h.Height
}

func (u *UI) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		u.screen.SetContent(x+i, y, r, nil, style)
	}
}
