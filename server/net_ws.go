package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 16
)

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws *websocket.Conn

	mu     sync.Mutex
	send   chan Frame
	closed bool
}

func NewClientConn(ws *websocket.Conn, buffer int) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan Frame, buffer),
	}
}

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃，防止阻塞 Tick）
func (c *ClientConn) Enqueue(f Frame) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- f:
		return true
	default:
		return false
	}
}

// Close 关闭发送队列（写协程随之退出并关闭连接）；可重复调用
func (c *ClientConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump 独立协程，负责从 send 队列写出到 WS，并定期发送 ping
func (c *ClientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case f, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			mt := websocket.TextMessage
			if f.Binary {
				mt = websocket.BinaryMessage
			}
			if err := c.ws.WriteMessage(mt, f.Data); err != nil {
				Log.Debugf("write error: %v", err)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 读取客户端消息并分发；退出即视为断开
func (c *ClientConn) readPump(conn *connection) {
	defer func() {
		conn.close()
		c.Close()
	}()
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		mt, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				Log.Warnf("conn %s: read error: %v", conn.id, err)
			}
			return
		}
		if mt != websocket.TextMessage {
			conn.metrics.IncIgnored()
			continue
		}
		if err := conn.handleMessage(payload); err != nil {
			Log.Debugf("conn %s: %v", conn.id, err)
		}
	}
}

// HandleWS WebSocket 接入：连接建立即分配标识，收到 init 后才开始模拟
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnf("upgrade error: %v", err)
		return
	}

	id, err := NewSessionID()
	if err != nil {
		Log.Errorf("assign connection id: %v", err)
		_ = ws.Close()
		return
	}
	client := NewClientConn(ws, s.cfg.SendBuffer)
	conn := newConnection(id, s.sessions, s.metrics, client)
	Log.Debugf("connection %s from %s", id, r.RemoteAddr)

	go client.writePump()
	go client.readPump(conn)
}
