package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/middleware"
	"github.com/vancomm/sweeper/internal/session"
)

const shutdownTimeout = 30 * time.Second

type App struct {
	config  *config.Config
	log     *logrus.Logger
	router  *http.ServeMux
	session *session.Session
	cookies *config.Cookies
	ws      *config.WebSocket
}

func New(c *config.Config, log *logrus.Logger, opts ...session.Option) (*App, error) {
	s, err := session.New(log, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to start session: %w", err)
	}

	j, err := config.NewJWT(c.Token)
	if err != nil {
		return nil, err
	}
	if c.Token.Secret == "" {
		log.Warn("no token secret configured, game tokens will not survive a restart")
	}

	app := &App{
		config:  c,
		log:     log,
		router:  http.NewServeMux(),
		session: s,
		cookies: config.NewCookies(c, j),
		ws:      config.NewWebSocket(c),
	}
	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.GameToken(a.log, a.cookies),
		middleware.Cors(a.config.Cors.AllowedOrigins),
		middleware.Logging(a.log),
	)
}

// Start serves until ctx is cancelled or the listener fails.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s", a.config.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
