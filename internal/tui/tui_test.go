package tui

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sweeper/internal/mines"
)

// lastSquare puts the only mine in the bottom right corner.
type lastSquare struct{}

func (lastSquare) IntN(n int) int { return n - 1 }

func newTestUI(t *testing.T, rows, cols, mineCount int) (*UI, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	screen.SetSize(40, 20)
	t.Cleanup(screen.Fini)

	log := logrus.New()
	log.SetOutput(io.Discard)

	ui, err := New(screen, log, func() (*mines.Board, error) {
		return mines.Generate(rows, cols, mineCount, mines.WithSource(lastSquare{}))
	})
	require.NoError(t, err)
	return ui, screen
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func styleAt(s tcell.Screen, x, y int) tcell.Style {
	_, _, style, _ := s.GetContent(x, y)
	return style
}

func click(ui *UI, x, y int, button tcell.ButtonMask) {
	ui.HandleEvent(tcell.NewEventMouse(x, y, button, tcell.ModNone))
	ui.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func TestNewRejectsInvalidBoard(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	_, err := New(screen, logrus.New(), func() (*mines.Board, error) {
		return mines.Generate(0, 3, 1)
	})
	var ce *mines.ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestDrawHiddenBoard(t *testing.T) {
	ui, screen := newTestUI(t, 3, 3, 1)
	ui.Draw()

	for row := range 3 {
		for col := range 3 {
			assert.Equal(t, '#', runeAt(screen, col*2, row))
		}
	}
}

func TestPrimaryClickReveals(t *testing.T) {
	ui, screen := newTestUI(t, 3, 3, 1)

	// column 1 of the terminal is still the first tile
	click(ui, 1, 0, tcell.ButtonPrimary)
	ui.Draw()

	assert.Equal(t, mines.Won, ui.Board().State())
	assert.Equal(t, ' ', runeAt(screen, 0, 0))
	assert.Equal(t, '1', runeAt(screen, 2, 2))
	assert.Equal(t, '#', runeAt(screen, 4, 2))

	// the banner covers the middle row
	banner := make([]rune, len(winBanner))
	for i := range banner {
		banner[i] = runeAt(screen, i, 1)
	}
	assert.Equal(t, winBanner, string(banner))
}

func TestHeldButtonDoesNotRepeat(t *testing.T) {
	ui, _ := newTestUI(t, 3, 3, 1)

	ui.HandleEvent(tcell.NewEventMouse(4, 2, tcell.ButtonSecondary, tcell.ModNone))
	ui.HandleEvent(tcell.NewEventMouse(4, 2, tcell.ButtonSecondary, tcell.ModNone))
	assert.Equal(t, mines.Flagged, ui.Board().Visibility(2, 2))

	ui.HandleEvent(tcell.NewEventMouse(4, 2, tcell.ButtonNone, tcell.ModNone))
	click(ui, 4, 2, tcell.ButtonSecondary)
	assert.Equal(t, mines.Hidden, ui.Board().Visibility(2, 2))
}

func TestRevealMineShowsTruth(t *testing.T) {
	ui, screen := newTestUI(t, 3, 3, 1)

	click(ui, 4, 2, tcell.ButtonPrimary)
	ui.Draw()

	assert.Equal(t, mines.Lost, ui.Board().State())
	assert.Equal(t, '*', runeAt(screen, 4, 2))
	assert.Equal(t, '1', runeAt(screen, 2, 1))
	assert.Equal(t, ' ', runeAt(screen, 0, 0))
}

func TestMiddleButtonHighlights(t *testing.T) {
	ui, screen := newTestUI(t, 3, 3, 1)

	ui.HandleEvent(tcell.NewEventMouse(2, 1, tcell.ButtonMiddle, tcell.ModNone))
	require.NotNil(t, ui.highlight)
	ui.Draw()

	for row := range 3 {
		for col := range 3 {
			_, _, attrs := styleAt(screen, col*2, row).Decompose()
			assert.NotZero(t, attrs&tcell.AttrReverse, "%d:%d", row, col)
		}
	}
	assert.Equal(t, mines.Hidden, ui.Board().Visibility(1, 1))

	ui.HandleEvent(tcell.NewEventMouse(2, 1, tcell.ButtonNone, tcell.ModNone))
	assert.Nil(t, ui.highlight)
	ui.Draw()
	_, _, attrs := styleAt(screen, 0, 0).Decompose()
	assert.Zero(t, attrs&tcell.AttrReverse)
}

func TestClickOffBoard(t *testing.T) {
	ui, _ := newTestUI(t, 3, 3, 1)

	click(ui, 30, 10, tcell.ButtonPrimary)

	assert.Equal(t, mines.Active, ui.Board().State())
	assert.Zero(t, ui.Board().Flags())
}

func TestKeys(t *testing.T) {
	ui, _ := newTestUI(t, 3, 3, 1)
	click(ui, 0, 0, tcell.ButtonPrimary)
	require.Equal(t, mines.Won, ui.Board().State())

	quit, err := ui.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, mines.Active, ui.Board().State())

	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone),
	} {
		quit, err := ui.HandleEvent(ev)
		require.NoError(t, err)
		assert.True(t, quit, ev.Name())
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	ui, screen := newTestUI(t, 3, 3, 1)

	done := make(chan error, 1)
	go func() { done <- ui.Run(context.Background()) }()
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ui did not quit")
	}
}

func TestRunStopsWithContext(t *testing.T) {
	ui, _ := newTestUI(t, 3, 3, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ui.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ui did not stop")
	}
}
