package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"grape/internal/grape"
)

// Event 推给订阅者的消息；走子消息和网页端原来的格式保持一致
type Event struct {
	Type     string          `json:"type"`
	GameID   string          `json:"game_id,omitempty"`
	UCI      string          `json:"uci,omitempty"`
	FEN      string          `json:"fen,omitempty"`
	Turn     string          `json:"turn,omitempty"` // white=蓝方，black=红方
	IsOver   bool            `json:"is_over"`
	Winner   string          `json:"winner,omitempty"`
	Captured []grape.Capture `json:"captured,omitempty"`
}

func colorName(s grape.Side) string {
	switch s {
	case grape.Blue:
		return "white"
	case grape.Red:
		return "black"
	}
	return ""
}

// MoveEvent 由走完之后的局面构造
func MoveEvent(gameID string, mv grape.Move, pos *grape.Position, captured []grape.Capture) Event {
	return Event{
		Type:     "move",
		GameID:   gameID,
		UCI:      mv.String(),
		FEN:      pos.Encode(),
		Turn:     colorName(pos.SideToMove),
		IsOver:   pos.GameOver(),
		Winner:   colorName(pos.Winner),
		Captured: captured,
	}
}

// StateEvent 订阅时先发的当前局面
func StateEvent(gameID string, pos *grape.Position) Event {
	return Event{
		Type:   "state",
		GameID: gameID,
		FEN:    pos.Encode(),
		Turn:   colorName(pos.SideToMove),
		IsOver: pos.GameOver(),
		Winner: colorName(pos.Winner),
	}
}

type envelope struct {
	gameID string
	data   []byte
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	gameID string
	send   chan []byte
}

// Hub 按对局 ID 分组的广播
type Hub struct {
	mu        sync.Mutex
	rooms     map[string]map[*Client]struct{}
	broadcast chan envelope
	ping      time.Duration
	log       zerolog.Logger
	closed    bool
}

func NewHub(ping time.Duration, logger zerolog.Logger) *Hub {
	if ping <= 0 {
		ping = wsIdlePingInterval
	}
	return &Hub{
		rooms:     make(map[string]map[*Client]struct{}),
		broadcast: make(chan envelope, 64),
		ping:      ping,
		log:       logger.With().Str("component", "ws").Logger(),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case env := <-h.broadcast:
			h.mu.Lock()
			for client := range h.rooms[env.gameID] {
				select {
				case client.send <- env.data:
				default:
					// 慢客户端直接丢消息
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish 不阻塞；队列满了就丢
func (h *Hub) Publish(gameID string, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Msg("marshal event")
		return
	}
	select {
	case h.broadcast <- envelope{gameID: gameID, data: data}:
	default:
		h.log.Warn().Str("game", gameID).Msg("broadcast queue full, event dropped")
	}
}

// Register 在 Close 之后返回 false，调用方负责关掉连接
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	room, ok := h.rooms[c.gameID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[c.gameID] = room
	}
	room[c] = struct{}{}
	return true
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if room, ok := h.rooms[c.gameID]; ok {
		if _, ok := room[c]; ok {
			delete(room, c)
			close(c.send)
		}
		if len(room) == 0 {
			delete(h.rooms, c.gameID)
		}
	}
	h.mu.Unlock()
}

// Close 给所有订阅者发关闭帧并断开；http.Server.Shutdown 不管已经升级的连接。
// 读循环随后出错退出并 Unregister，写循环在 send 关闭后退出。可以重复调用。
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	deadline := time.Now().Add(time.Second)
	n := 0
	for _, room := range h.rooms {
		for c := range room {
			_ = c.conn.WriteControl(websocket.CloseMessage, msg, deadline)
			_ = c.conn.Close()
			n++
		}
	}
	h.log.Debug().Int("clients", n).Msg("hub closed")
}

// CloseGame 断开某局的所有订阅者（对局被删除时用）
func (h *Hub) CloseGame(gameID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game deleted")
	deadline := time.Now().Add(time.Second)
	for c := range h.rooms[gameID] {
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, deadline)
		_ = c.conn.Close()
	}
}

// Clients 某局当前的订阅数
func (h *Hub) Clients(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[gameID])
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Serve 升级连接并订阅 gameID；hello 是连上后立即发送的第一条消息
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, gameID string, hello *Event) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug().Err(err).Msg("upgrade failed")
		return
	}
	client := &Client{hub: h, conn: conn, gameID: gameID, send: make(chan []byte, 16)}
	if hello != nil {
		if data, err := json.Marshal(hello); err == nil {
			client.send <- data
		}
	}
	if !h.Register(client) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), time.Now().Add(time.Second))
		conn.Close()
		return
	}
	h.log.Debug().Str("game", gameID).Msg("subscriber joined")

	go func() {
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, client.send, h.ping); err != nil {
			h.log.Debug().Err(err).Str("game", gameID).Msg("write loop ended")
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.Unregister(client)
			h.log.Debug().Str("game", gameID).Msg("subscriber left")
			return
		}
	}
}
