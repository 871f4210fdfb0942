package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vancomm/sweeper/internal/middleware"
	"github.com/vancomm/sweeper/internal/session"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

// executeCommand runs a single line such as "o 3 4" against the session on
// behalf of the game the caller holds a token for.
func executeCommand(s *session.Session, gameID string, c string) (session.Snapshot, error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return session.Snapshot{}, errors.New("empty command")
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return session.Snapshot{}, fmt.Errorf("unknown command %q", parts[0])
	}
	if nargs != len(parts)-1 {
		return session.Snapshot{}, errors.New("invalid number of arguments")
	}

	switch parts[0] {
	case "o":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return session.Snapshot{}, err
		}
		return s.Reveal(gameID, row, col)
	case "f":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return session.Snapshot{}, err
		}
		return s.Flag(gameID, row, col)
	default:
		return s.Snapshot(), nil
	}
}

type wsError struct {
	Error string `json:"error"`
}

// wsWriter serialises writes to one connection. Broadcasts the client has
// already seen are dropped.
type wsWriter struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	lastSeq uint64
}

func (w *wsWriter) write(v any) error {
	if snap, ok := v.(session.Snapshot); ok && snap.Seq > w.lastSeq {
		w.lastSeq = snap.Seq
	}
	return w.conn.WriteJSON(v)
}

// reply runs a command and sends its result. The lock is held across both
// so the broadcast of the same change cannot overtake the reply.
func (w *wsWriter) reply(run func() any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.write(run())
}

func (w *wsWriter) broadcast(snap session.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if snap.Seq <= w.lastSeq {
		return nil
	}
	return w.write(snap)
}

// ConnectWS upgrades the request and plays the caller's game over the
// socket. Every change made by anyone is pushed to the client as well.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GameClaims(r)
	if !ok {
		sendErrorOrLog(w, g.log, http.StatusUnauthorized, errNoGameToken)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log := g.log.WithField("game_id", claims.GameID)
	writer := &wsWriter{conn: conn}

	updates, cancel := g.session.Subscribe()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for snap := range updates {
			if err := writer.broadcast(snap); err != nil {
				log.WithError(err).Debug("websocket broadcast failed")
				return
			}
		}
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	if err := writer.reply(func() any { return g.session.Snapshot() }); err != nil {
		log.WithError(err).Warn("websocket write failed")
		return
	}

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("websocket read failed")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		text := strings.TrimSpace(string(message))
		for _, c := range strings.Split(text, "\n") {
			err := writer.reply(func() any {
				snap, err := executeCommand(g.session, claims.GameID, c)
				if err != nil {
					log.WithField("command", c).WithError(err).Debug("rejected websocket command")
					return wsError{Error: err.Error()}
				}
				return snap
			})
			if err != nil {
				log.WithError(err).Warn("websocket write failed")
				return
			}
		}
	}

	log.Debug("websocket closed")
}
