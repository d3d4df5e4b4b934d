package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grovetools/deck/catalog"
	"github.com/grovetools/deck/engine"
	"github.com/grovetools/deck/launcher"
	"github.com/grovetools/deck/launcher/launchertest"
	"github.com/grovetools/deck/ticker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	srv   *Server
	http  *httptest.Server
	sched *launchertest.Scheduler
	host  *launchertest.Host
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := catalog.Default()
	require.NoError(t, err)
	sched, host := launchertest.New(true)
	ctrl := engine.NewController(store, 10, launcher.New(host, launcher.WithScheduler(sched)), nil)

	board := &ticker.Board{}
	board.Replace([]ticker.Quote{{Symbol: "AAPL", Price: 190, Change: 1, PercentChange: 0.5}})

	srv := New(ctrl, board, nil)
	hs := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Close()
		hs.Close()
		ctrl.Close()
	})
	return &fixture{srv: srv, http: hs, sched: sched, host: host}
}

func (f *fixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.http.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// read returns the next message of type want, skipping others.
func read(t *testing.T, conn *websocket.Conn, want string) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var msg map[string]any
		require.NoError(t, conn.ReadJSON(&msg))
		if msg["type"] == want {
			return msg
		}
	}
}

func ids(msg map[string]any) []string {
	var out []string
	items, _ := msg["workspace"].([]any)
	for _, it := range items {
		out = append(out, it.(map[string]any)["id"].(string))
	}
	return out
}

func TestInitialSnapshot(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)

	msg := read(t, conn, TypeSnapshot)
	assert.Equal(t, "All", msg["category"])
	assert.Len(t, msg["visible"], 10)
	assert.Equal(t, true, msg["has_next"])
	quotes := msg["quotes"].([]any)
	require.Len(t, quotes, 1)
	assert.Equal(t, "AAPL", quotes[0].(map[string]any)["symbol"])
}

func TestActionsBroadcastToAllClients(t *testing.T) {
	f := newFixture(t)
	a := f.dial(t)
	b := f.dial(t)
	read(t, a, TypeSnapshot)
	read(t, b, TypeSnapshot)

	require.NoError(t, a.WriteJSON(Incoming{Type: TypeAction, Action: engine.Action{Kind: engine.BeginDrag, ID: "claude"}}))
	msg := read(t, b, TypeSnapshot)
	assert.Equal(t, "claude", msg["armed"])

	require.NoError(t, a.WriteJSON(Incoming{Type: TypeAction, Action: engine.Action{Kind: engine.Drop, Valid: true}}))
	msg = read(t, b, TypeSnapshot)
	assert.Equal(t, []string{"claude"}, ids(msg))
	grid := msg["grid"].(map[string]any)
	assert.Equal(t, float64(1), grid["columns"])
}

func TestLaunchRequiresConfirmation(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	read(t, conn, TypeSnapshot)

	require.NoError(t, conn.WriteJSON(Incoming{Type: TypeLaunch, Mode: "tabs"}))
	msg := read(t, conn, TypeError)
	assert.Equal(t, "workspace is empty", msg["message"])

	for _, id := range []string{"chatgpt", "gemini"} {
		require.NoError(t, conn.WriteJSON(Incoming{Type: TypeAction, Action: engine.Action{Kind: engine.Add, ID: id}}))
		read(t, conn, TypeSnapshot)
	}

	require.NoError(t, conn.WriteJSON(Incoming{Type: TypeLaunch, Mode: "popups"}))
	msg = read(t, conn, TypeConfirm)
	assert.Equal(t, "popups", msg["mode"])
	assert.Equal(t, "Attempting to open 2 popup windows arranged side-by-side.", msg["message"])

	require.NoError(t, conn.WriteJSON(Incoming{Type: TypeConfirmLaunch, Mode: "popups", Accept: true}))
	require.Eventually(t, func() bool { return f.sched.Scheduled() == 2 }, 2*time.Second, 10*time.Millisecond)

	f.sched.Advance(time.Second)
	opened := f.host.Opened()
	require.Len(t, opened, 2)
	assert.Contains(t, opened[0].Name, "popup_chatgpt_")
	assert.Empty(t, f.host.Prompts())
}

func TestConfirmAfterWorkspaceChangeAsksAgain(t *testing.T) {
	f := newFixture(t)
	a := f.dial(t)
	read(t, a, TypeSnapshot)
	b := f.dial(t)
	read(t, b, TypeSnapshot)

	require.NoError(t, a.WriteJSON(Incoming{Type: TypeAction, Action: engine.Action{Kind: engine.Add, ID: "chatgpt"}}))
	read(t, a, TypeSnapshot)
	require.NoError(t, a.WriteJSON(Incoming{Type: TypeLaunch, Mode: "popups"}))
	msg := read(t, a, TypeConfirm)
	assert.Equal(t, "Attempting to open 1 popup windows arranged side-by-side.", msg["message"])

	require.NoError(t, b.WriteJSON(Incoming{Type: TypeAction, Action: engine.Action{Kind: engine.Add, ID: "gemini"}}))
	read(t, a, TypeSnapshot)

	require.NoError(t, a.WriteJSON(Incoming{Type: TypeConfirmLaunch, Mode: "popups", Accept: true}))
	msg = read(t, a, TypeConfirm)
	assert.Equal(t, "Attempting to open 2 popup windows arranged side-by-side.", msg["message"])
	assert.Equal(t, 0, f.sched.Scheduled(), "the changed workspace is not launched unconfirmed")

	require.NoError(t, a.WriteJSON(Incoming{Type: TypeConfirmLaunch, Mode: "popups", Accept: true}))
	require.Eventually(t, func() bool { return f.sched.Scheduled() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestDeclinedAndStrayConfirm(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	read(t, conn, TypeSnapshot)

	require.NoError(t, conn.WriteJSON(Incoming{Type: TypeConfirmLaunch, Accept: true}))
	msg := read(t, conn, TypeError)
	assert.Equal(t, "no launch awaiting confirmation", msg["message"])

	require.NoError(t, conn.WriteJSON(Incoming{Type: TypeAction, Action: engine.Action{Kind: engine.Add, ID: "claude"}}))
	read(t, conn, TypeSnapshot)
	require.NoError(t, conn.WriteJSON(Incoming{Type: TypeLaunch, Mode: "tabs"}))
	read(t, conn, TypeConfirm)
	require.NoError(t, conn.WriteJSON(Incoming{Type: TypeConfirmLaunch, Mode: "tabs", Accept: false}))

	require.NoError(t, conn.WriteJSON(Incoming{Type: "bogus"}))
	msg = read(t, conn, TypeError)
	assert.Equal(t, "unknown message type: bogus", msg["message"])
	assert.Equal(t, 0, f.sched.Scheduled())
}

func TestInvalidMode(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	read(t, conn, TypeSnapshot)

	require.NoError(t, conn.WriteJSON(Incoming{Type: TypeLaunch, Mode: "windows"}))
	msg := read(t, conn, TypeError)
	assert.Contains(t, msg["message"], "windows")
}

func TestSnapshotEndpoint(t *testing.T) {
	f := newFixture(t)

	resp, err := http.Get(f.http.URL + "/api/snapshot")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, TypeSnapshot, out["type"])
	assert.EqualValues(t, 0, out["version"])

	resp, err = http.Get(f.http.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
