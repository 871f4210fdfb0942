package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/session"
)

type cornerSource struct{}

func (cornerSource) IntN(n int) int { return n - 1 }

func newTestApp(t *testing.T, addr string) *App {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	c := &config.Config{
		Mode:  "development",
		Addr:  addr,
		Token: config.TokenConfig{Secret: "secret", Lifetime: time.Hour},
		Cors:  config.CorsConfig{AllowedOrigins: []string{"*"}},
	}
	a, err := New(c, log,
		session.WithParams(mines.Params{Rows: 3, Cols: 3, MineCount: 1}),
		session.WithBoardOptions(mines.WithSource(cornerSource{})),
	)
	require.NoError(t, err)
	return a
}

func TestRoutes(t *testing.T) {
	srv := httptest.NewServer(newTestApp(t, "").Handler())
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	resp, err := client.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Post(srv.URL+"/game/reveal?row=0&col=0", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = client.Post(srv.URL+"/game", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// the only mine sits at 2:2, so 0:0 floods the rest of the board
	resp, err = client.Post(srv.URL+"/game/reveal?row=0&col=0", "", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap session.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "won", snap.State)

	resp, err = client.Get(srv.URL + "/game/reveal")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStartStopsWithContext(t *testing.T) {
	a := newTestApp(t, "127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
