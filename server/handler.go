package server

import (
	"bytes"
	"fmt"
	"time"

	"github.com/bcolucci/rcb/game"
)

// connection 单个连接的消息分发：init / keydown / keyup / keysPress
type connection struct {
	id       string
	sessions *SessionManager
	metrics  *Metrics
	out      Outbound
	now      func() time.Time
}

func newConnection(id string, sessions *SessionManager, metrics *Metrics, out Outbound) *connection {
	return &connection{id: id, sessions: sessions, metrics: metrics, out: out, now: time.Now}
}

// handleMessage 解析一条文本帧。返回的错误只用于日志，不会回传给客户端
func (c *connection) handleMessage(b []byte) error {
	env, err := DecodeEnvelope(b)
	if err != nil {
		c.metrics.IncIgnored()
		return err
	}
	switch env.Event {
	case EventInit:
		var cfg InitConfig
		if len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
			if cfg, err = DecodePayload[InitConfig](env); err != nil {
				c.metrics.IncIgnored()
				return err
			}
		}
		_, err = c.sessions.Init(c.id, cfg, c.out)
		return err
	case EventKeyDown, EventKeyUp:
		code, err := DecodePayload[int](env)
		if err != nil {
			c.metrics.IncIgnored()
			return err
		}
		kind := game.EventPress
		if env.Event == EventKeyUp {
			kind = game.EventRelease
		}
		c.input(kind, code)
		return nil
	case EventKeysPress:
		records, err := DecodePayload[[]KeyRecord](env)
		if err != nil {
			c.metrics.IncIgnored()
			return err
		}
		for _, r := range records {
			kind, ok := r.Kind()
			if !ok {
				c.metrics.IncIgnored()
				continue
			}
			c.input(kind, r.Code)
		}
		return nil
	default:
		c.metrics.IncIgnored()
		return fmt.Errorf("%w: %q", ErrUnknownEvent, env.Event)
	}
}

// input init 之前的按键直接丢弃
func (c *connection) input(kind game.EventKind, code int) {
	s, err := c.sessions.Get(c.id)
	if err != nil {
		c.metrics.IncIgnored()
		return
	}
	s.Input(kind, code, c.now())
}

// close 连接断开：停止会话
func (c *connection) close() {
	c.sessions.Disconnect(c.id)
}
