package socket

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"Moodgraph/pkg/log"
	"Moodgraph/types"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 70 * time.Second // 心跳间隔的数倍，超时视为假在线
	sendBuffer = 32
)

// Client 服务端持有的一条 WebSocket 会话
type Client struct {
	cid      int64
	conn     *websocket.Conn
	hub      *Hub
	outbound chan []byte
	done     chan struct{}
	closed   atomic.Bool
}

func NewClient(cid int64, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		cid:      cid,
		conn:     conn,
		hub:      hub,
		outbound: make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
	}
}

func (c *Client) ID() int64 {
	return c.cid
}

// Send 投递一条消息，缓冲写满或连接已关闭时返回 false，调用方丢弃即可
func (c *Client) Send(msg *types.Message) bool {
	if c.closed.Load() {
		return false
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return false
	}
	select {
	case c.outbound <- payload:
		return true
	default:
		return false
	}
}

// Serve 启动读写循环，读循环退出时触发断连清理
func (c *Client) Serve() {
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer c.close()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			// 客户端断开是正常行为
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		event := types.EventKind(gjson.GetBytes(raw, "event").String())
		data := json.RawMessage(gjson.GetBytes(raw, "data").Raw)

		switch event {
		case types.EventPing:
			_ = c.Send(&types.Message{Event: types.EventPong})

		case types.EventJoinBoard:
			boardID := gjson.ParseBytes(data).Int()
			if boardID > 0 {
				c.hub.Join(c, boardID)
			}

		case types.EventLeaveBoard:
			boardID := gjson.ParseBytes(data).Int()
			if boardID > 0 {
				c.hub.Leave(c, boardID)
			}

		default:
			if event.IsNoteEvent() || event.IsBoardEvent() {
				c.hub.Announce(event, data, c.cid)
				continue
			}
			log.L.Debug("unknown ws event", zap.String("event", string(event)),
				zap.Int64("session_id", c.cid))
		}
	}
}

func (c *Client) writePump() {
	for {
		select {
		case payload := <-c.outbound:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (c *Client) close() {
	if c.closed.Swap(true) {
		return
	}
	c.hub.Disconnect(c)
	close(c.done)
	_ = c.conn.Close()
}
