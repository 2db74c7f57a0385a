package server

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SessionManager 按连接标识管理会话的生命周期
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ctx      context.Context
	settings *Settings
	metrics  *Metrics
	seed     func() int64
}

func NewSessionManager(ctx context.Context, settings *Settings, metrics *Metrics) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		ctx:      ctx,
		settings: settings,
		metrics:  metrics,
		seed:     func() int64 { return time.Now().UnixNano() },
	}
}

// Init 为连接创建并启动新会话；已有会话先停止（重新 init 即重新开局）
func (m *SessionManager) Init(id string, cfg InitConfig, out Outbound) (*Session, error) {
	keys, err := KeyMapFor(cfg)
	if err != nil {
		return nil, err
	}
	enc := cfg.Encoding
	switch enc {
	case "":
		enc = EncodingJSON
	case EncodingJSON, EncodingMsgpack:
	default:
		return nil, fmt.Errorf("%w: unsupported encoding %q", ErrInvalidConfig, enc)
	}
	tick, tuning := m.settings.Get()

	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.sessions[id]; ok {
		old.Stop()
		delete(m.sessions, id)
	}
	s := NewSession(id, SessionOptions{
		Keys:         keys,
		Encoding:     enc,
		TickInterval: tick,
		Tuning:       tuning,
		Seed:         m.seed(),
	}, out, m.metrics)
	if err := s.Start(m.ctx); err != nil {
		return nil, err
	}
	m.sessions[id] = s
	return s, nil
}

func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return s, nil
}

// Disconnect 停止并丢弃会话；返回是否存在
func (m *SessionManager) Disconnect(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Stop()
	}
	return ok
}

func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StopAll 进程退出时停止全部会话
func (m *SessionManager) StopAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range all {
		s.Stop()
	}
}
