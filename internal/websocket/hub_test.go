package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gryphathie/KombuchaApp/internal/domain/reminder"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// dialTestClient upgrades server-side connections straight into the hub and
// returns the browser side of one connection.
func dialTestClient(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		NewClient(hub, conn).Start()
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHubBroadcastsReminderEvents(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dialTestClient(t, hub)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.ReminderStatusChanged(
		reminder.Reminder{Identity: "c1_s1_2024-03-06", Status: reminder.StatusContacted},
		reminder.Stats{Total: 1, Contacted: 1},
	)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))

	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(raw, &ev))
	require.Equal(t, EventReminderStatus, ev.Type)

	_, raw, err = conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &ev))
	require.Equal(t, EventReminderStats, ev.Type)
}

func TestHubShutdownReleasesClients(t *testing.T) {
	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	dialTestClient(t, hub)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)

	// A connection arriving after shutdown is refused instead of blocking
	// on a hub loop that no longer runs.
	late := dialTestClient(t, hub)
	require.NoError(t, late.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err := late.ReadMessage()
	require.Error(t, err)
	require.Equal(t, 0, hub.ClientCount())
}
