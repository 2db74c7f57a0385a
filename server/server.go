package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
)

// Server 组合会话管理、指标与热更新配置，供 HTTP 处理函数使用
type Server struct {
	cfg      Config
	settings *Settings
	metrics  *Metrics
	sessions *SessionManager
	upgrader websocket.Upgrader
}

func NewServer(ctx context.Context, cfg Config) *Server {
	settings := NewSettings(cfg)
	metrics := &Metrics{}
	return &Server{
		cfg:      cfg,
		settings: settings,
		metrics:  metrics,
		sessions: NewSessionManager(ctx, settings, metrics),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// 演示环境：允许所有来源（生产环境需严格限制）
				return true
			},
		},
	}
}

// Routes HTTP 路由：WebSocket、管理与监控接口、静态资源
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	mux.HandleFunc("/admin/config", s.HandleAdminConfig)
	mux.HandleFunc("/metrics", s.HandleMetrics)
	mux.HandleFunc("/protocol/schema", s.HandleSchema)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	if s.cfg.StaticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}
	return mux
}

// Close 停止全部会话
func (s *Server) Close() {
	s.sessions.StopAll()
}
