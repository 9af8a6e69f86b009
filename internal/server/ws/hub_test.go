package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grape/internal/grape"
)

func startHub(t *testing.T, ping time.Duration, hello *Event) (*Hub, string) {
	t.Helper()
	hub := NewHub(ping, zerolog.Nop())
	done := make(chan struct{})
	go hub.Run(done)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, strings.TrimPrefix(r.URL.Path, "/ws/"), hello)
	}))
	t.Cleanup(func() {
		srv.Close()
		close(done)
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func TestMoveEventShape(t *testing.T) {
	pos, err := grape.DecodePosition("OO8/OO8/A/A/2IIII4/A/A/2oo6/2oo6/A w")
	require.NoError(t, err)
	mv := grape.Move{Row: 5, Col: 2, Steps: 1}
	next, captures, err := pos.Rotate(mv)
	require.NoError(t, err)

	ev := MoveEvent("g", mv, next, captures)
	assert.Equal(t, "move", ev.Type)
	assert.Equal(t, "rot1@5,2", ev.UCI)
	assert.Equal(t, "black", ev.Turn)
	assert.True(t, ev.IsOver)
	assert.Equal(t, "white", ev.Winner)
	assert.Len(t, ev.Captured, 1)
}

func TestPublishReachesSubscribersOfSameGame(t *testing.T) {
	hello := &Event{Type: "hello"}
	hub, base := startHub(t, time.Minute, hello)

	a := dial(t, base+"/ws/g1")
	b := dial(t, base+"/ws/g2")

	var got Event
	require.NoError(t, a.ReadJSON(&got))
	assert.Equal(t, "hello", got.Type)
	require.NoError(t, b.ReadJSON(&got))
	assert.Equal(t, "hello", got.Type)

	require.Eventually(t, func() bool {
		return hub.Clients("g1") == 1 && hub.Clients("g2") == 1
	}, 2*time.Second, 10*time.Millisecond)

	pos := grape.NewInitialPosition()
	mv := grape.Move{Row: 2, Col: 4, Steps: 1}
	next, err := pos.ApplyRotation(mv)
	require.NoError(t, err)
	hub.Publish("g1", MoveEvent("g1", mv, next, nil))

	require.NoError(t, a.ReadJSON(&got))
	assert.Equal(t, "move", got.Type)
	assert.Equal(t, "rot1@2,4", got.UCI)
	assert.Equal(t, next.Encode(), got.FEN)
	assert.Equal(t, "black", got.Turn)
	assert.False(t, got.IsOver)

	// g2 不应该收到
	require.NoError(t, b.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = b.ReadMessage()
	assert.Error(t, err)
}

func TestHeartbeatPing(t *testing.T) {
	_, base := startHub(t, 30*time.Millisecond, nil)
	conn := dial(t, base+"/ws/g")

	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "ping", got.Type)
}

func TestUnregisterOnClose(t *testing.T) {
	hub, base := startHub(t, time.Minute, nil)
	conn := dial(t, base+"/ws/g")
	require.Eventually(t, func() bool { return hub.Clients("g") == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Clients("g") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestCloseDisconnectsSubscribers(t *testing.T) {
	hub, base := startHub(t, time.Minute, nil)
	conn := dial(t, base+"/ws/g")
	require.Eventually(t, func() bool { return hub.Clients("g") == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Close()
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	require.Eventually(t, func() bool { return hub.Clients("g") == 0 }, 2*time.Second, 10*time.Millisecond)

	// 关闭之后的新连接直接被断开
	late := dial(t, base+"/ws/g")
	_, _, err = late.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.Clients("g"))
}

func TestCloseGame(t *testing.T) {
	hub, base := startHub(t, time.Minute, nil)
	a := dial(t, base+"/ws/a")
	dial(t, base+"/ws/b")
	require.Eventually(t, func() bool {
		return hub.Clients("a") == 1 && hub.Clients("b") == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.CloseGame("a")
	_, _, err := a.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
	require.Eventually(t, func() bool { return hub.Clients("a") == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, hub.Clients("b"))
}
