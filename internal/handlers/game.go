package handlers

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/middleware"
	"github.com/vancomm/sweeper/internal/session"
)

var errNoGameToken = errors.New("no game token, start a new game first")

type GameHandler struct {
	log     *logrus.Logger
	session *session.Session
	cookies *config.Cookies
	ws      *config.WebSocket
}

func NewGameHandler(
	log *logrus.Logger,
	session *session.Session,
	cookies *config.Cookies,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		log:     log,
		session: session,
		cookies: cookies,
		ws:      ws,
	}
}

// NewGame replaces the live board and hands the caller a token for it.
func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	snap, err := g.session.Restart()
	if err != nil {
		g.log.WithError(err).Error("unable to start a new game")
		sendErrorOrLog(w, g.log, http.StatusInternalServerError, err)
		return
	}

	if _, err := g.cookies.Refresh(w, snap.GameID); err != nil {
		g.log.WithError(err).Error("unable to sign game token")
		sendErrorOrLog(w, g.log, http.StatusInternalServerError, err)
		return
	}

	sendJSONOrLog(w, g.log, snap)
}

// Fetch is open to anyone; watching needs no token.
func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, g.log, g.session.Snapshot())
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, g.session.Reveal)
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, g.session.Flag)
}

func (g GameHandler) move(
	w http.ResponseWriter,
	r *http.Request,
	apply func(id string, row, col int) (session.Snapshot, error),
) {
	claims, ok := middleware.GameClaims(r)
	if !ok {
		sendErrorOrLog(w, g.log, http.StatusUnauthorized, errNoGameToken)
		return
	}

	pos, err := ParsePositionDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	row, col, err := pos.Square(g.session.Geometry())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	snap, err := apply(claims.GameID, row, col)
	if err != nil {
		sendErrorOrLog(w, g.log, statusFor(err), err)
		return
	}

	sendJSONOrLog(w, g.log, snap)
}

// Highlight outlines the 3x3 block under the pointer. It never touches the
// board.
func (g GameHandler) Highlight(w http.ResponseWriter, r *http.Request) {
	pointer, err := ParsePointerDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	geometry := g.session.Geometry()
	row, col, ok := geometry.CellAt(pointer.X, pointer.Y)
	if !ok {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, errPointerOffBoard)
		return
	}
	sendJSONOrLog(w, g.log, geometry.Highlight(row, col))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrStaleGame):
		return http.StatusConflict
	case errors.Is(err, session.ErrOutOfBounds):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
