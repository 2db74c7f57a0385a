package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// adminConfig 热更新载荷，未给出的字段保持不变
type adminConfig struct {
	TickIntervalMs      *int64   `json:"tickIntervalMs,omitempty"`
	PlayerStepDegrees   *int     `json:"playerStepDegrees,omitempty"`
	BossStepDegrees     *int     `json:"bossStepDegrees,omitempty"`
	BossIdleProbability *float64 `json:"bossIdleProbability,omitempty"`
	BossMaxMoves        *int     `json:"bossMaxMoves,omitempty"`
	Compaction          *string  `json:"compaction,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// HandleAdminConfig 读取与更新模拟参数，仅作用于之后新建的会话
// GET  /admin/config  返回当前配置
// POST /admin/config  以 JSON 载荷更新部分字段
func (s *Server) HandleAdminConfig(w http.ResponseWriter, r *http.Request) {
	tick, tuning := s.settings.Get()
	switch r.Method {
	case http.MethodGet:
		ms := tick.Milliseconds()
		writeJSON(w, http.StatusOK, adminConfig{
			TickIntervalMs:      &ms,
			PlayerStepDegrees:   &tuning.PlayerStepDegrees,
			BossStepDegrees:     &tuning.BossStepDegrees,
			BossIdleProbability: &tuning.BossIdleProbability,
			BossMaxMoves:        &tuning.BossMaxMoves,
			Compaction:          &tuning.Compaction,
		})
	case http.MethodPost:
		var body adminConfig
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.TickIntervalMs != nil {
			tick = time.Duration(*body.TickIntervalMs) * time.Millisecond
		}
		if body.PlayerStepDegrees != nil {
			tuning.PlayerStepDegrees = *body.PlayerStepDegrees
		}
		if body.BossStepDegrees != nil {
			tuning.BossStepDegrees = *body.BossStepDegrees
		}
		if body.BossIdleProbability != nil {
			tuning.BossIdleProbability = *body.BossIdleProbability
		}
		if body.BossMaxMoves != nil {
			tuning.BossMaxMoves = *body.BossMaxMoves
		}
		if body.Compaction != nil {
			tuning.Compaction = *body.Compaction
		}
		if err := s.settings.Update(tick, tuning); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, ErrInvalidConfig) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		Log.Infof("config updated: tick=%s playerStep=%d bossStep=%d bossIdle=%.2f bossMaxMoves=%d compaction=%s",
			tick, tuning.PlayerStepDegrees, tuning.BossStepDegrees, tuning.BossIdleProbability, tuning.BossMaxMoves, tuning.Compaction)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleMetrics 输出运行指标
// GET /metrics
func (s *Server) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions": s.sessions.Len(),
		"metrics":  s.metrics.Snapshot(),
	})
}
