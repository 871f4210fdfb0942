package app

import (
	"github.com/vancomm/sweeper/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.log, a.session, a.cookies, a.ws)

	a.router.HandleFunc("GET /healthz", handlers.Healthz)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game", game.Fetch)
	a.router.HandleFunc("POST /game/reveal", game.Reveal)
	a.router.HandleFunc("POST /game/flag", game.Flag)
	a.router.HandleFunc("GET /game/highlight", game.Highlight)
	a.router.HandleFunc("/game/connect", game.ConnectWS)
}
