package stream_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RocketPrinter/HexagonalWFC/hex"
	"github.com/RocketPrinter/HexagonalWFC/stream"
	"github.com/RocketPrinter/HexagonalWFC/tileset"
	"github.com/RocketPrinter/HexagonalWFC/wfc"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) wfc.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev wfc.Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	return ev
}

func TestHub_Broadcast(t *testing.T) {
	hub := stream.NewHub(quietLogger())
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	a, b := dial(t, srv), dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, 2*time.Second, 10*time.Millisecond)

	want := wfc.Event{Seq: 1, Type: wfc.EventCollapsed, Position: hex.Position{X: 3, Y: 4}, Tile: "road@2", Entropy: 1}
	hub.Notify(want)
	assert.Equal(t, want, readEvent(t, a))
	assert.Equal(t, want, readEvent(t, b))
	assert.Zero(t, hub.Dropped())

	require.NoError(t, a.Close())
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_CloseDisconnects(t *testing.T) {
	hub := stream.NewHub(quietLogger())
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Close()
	hub.Close()
	assert.Equal(t, 0, hub.Clients())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	hub.Notify(wfc.Event{Seq: 1}) // no clients, no panic
}

func TestHub_StreamsEngineRun(t *testing.T) {
	hub := stream.NewHub(quietLogger(), stream.WithBuffer(4096))
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	g := tileset.Signature{Terrain: tileset.Grass}
	cat, err := tileset.NewCatalog([]tileset.Def{
		{ID: "lawn", Weight: 1, Edges: tileset.Edges{g, g, g, g, g, g}},
		{ID: "park", Weight: 1, Edges: tileset.Edges{g, g, g, g, g, g}},
	})
	require.NoError(t, err)
	e, err := wfc.New(cat, 3, wfc.WithSeed(2), wfc.WithListener(hub))
	require.NoError(t, err)
	require.NoError(t, e.Run(context.Background()))
	require.True(t, e.Done())

	collapsed := 0
	for collapsed < e.Cells() {
		if ev := readEvent(t, conn); ev.Type == wfc.EventCollapsed {
			collapsed++
		}
	}
	assert.Equal(t, 7, collapsed)
}

func TestNewHub_Panics(t *testing.T) {
	assert.Panics(t, func() { stream.NewHub(nil) })
	assert.Panics(t, func() { stream.WithBuffer(0) })
}
