package server

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/bcolucci/rcb/game"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionStopped  = errors.New("session stopped")
)

// SessionStatus UNINITIALIZED → RUNNING → STOPPED（终态）
type SessionStatus int

const (
	StatusUninitialized SessionStatus = iota
	StatusRunning
	StatusStopped
)

func (s SessionStatus) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusStopped:
		return "stopped"
	default:
		return "uninitialized"
	}
}

// Outbound 会话的发送端，非阻塞，队列满时返回 false
type Outbound interface {
	Enqueue(f Frame) bool
}

type SessionOptions struct {
	Keys         KeyMap
	Encoding     Encoding
	TickInterval time.Duration
	Tuning       game.Tuning
	Seed         int64
}

// Session 每个连接独立的模拟：一个输入队列、一份状态、一个 Tick 循环
type Session struct {
	ID string

	keys     KeyMap
	encoding Encoding
	interval time.Duration
	queue    *EventQueue
	engine   *game.Engine
	out      Outbound
	metrics  *Metrics

	mu     sync.Mutex // 保护 state/status，发布快照也在锁内完成
	state  game.State
	status SessionStatus
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSession(id string, opts SessionOptions, out Outbound, metrics *Metrics) *Session {
	if metrics == nil {
		metrics = &Metrics{}
	}
	enc := opts.Encoding
	if enc == "" {
		enc = EncodingJSON
	}
	return &Session{
		ID:       id,
		keys:     opts.Keys,
		encoding: enc,
		interval: opts.TickInterval,
		queue:    NewEventQueue(),
		engine:   game.NewEngine(opts.Tuning, rand.New(rand.NewSource(opts.Seed))),
		out:      out,
		metrics:  metrics,
		state:    game.InitialState(),
	}
}

func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// State 当前快照；State 为值类型，调用方持有的副本不会被后续 Tick 修改
func (s *Session) State() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Input 将一次按下/抬起写入队列。无法识别的键码、无对应按下的抬起都返回 false
func (s *Session) Input(kind game.EventKind, code int, at time.Time) bool {
	dir := s.keys.Resolve(code)
	if !dir.Valid() {
		s.metrics.IncIgnored()
		return false
	}
	var ok bool
	switch kind {
	case game.EventPress:
		ok = s.queue.Press(dir, at)
	case game.EventRelease:
		ok = s.queue.Release(dir)
	}
	if ok {
		s.metrics.IncAccepted()
	} else {
		s.metrics.IncIgnored()
	}
	return ok
}

func (s *Session) HeldKeys() int { return s.queue.Len() }
