package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vancomm/sweeper/internal/tiles"
)

var digitColors = [...]tcell.Color{
	tiles.One:   tcell.ColorBlue,
	tiles.Two:   tcell.ColorGreen,
	tiles.Three: tcell.ColorRed,
	tiles.Four:  tcell.ColorNavy,
	tiles.Five:  tcell.ColorMaroon,
	tiles.Six:   tcell.ColorTeal,
	tiles.Seven: tcell.ColorBlack,
	tiles.Eight: tcell.ColorGray,
}

var (
	revealedStyle = tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(tcell.ColorBlack)
	hiddenStyle   = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorWhite)
)

func spriteRune(s tiles.Sprite) rune {
	switch {
	case s == tiles.Zero:
		return ' '
	case s >= tiles.One && s <= tiles.Eight:
		return rune('0' + int(s))
	case s == tiles.Mine:
		return '*'
	case s == tiles.Flag:
		return 'F'
	default:
		return '#'
	}
}

func spriteStyle(s tiles.Sprite) tcell.Style {
	switch {
	case s == tiles.Zero:
		return revealedStyle
	case s >= tiles.One && s <= tiles.Eight:
		return revealedStyle.Foreground(digitColors[s]).Bold(true)
	case s == tiles.Mine:
		return revealedStyle.Background(tcell.ColorRed)
	case s == tiles.Flag:
		return hiddenStyle.Foreground(tcell.ColorRed).Bold(true)
	default:
		return hiddenStyle
	}
}
