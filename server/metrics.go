package server

import (
	"sync/atomic"
)

// Metrics 记录服务运行期的关键指标（用于监控与调试）
type Metrics struct {
	ActiveSessions     int64 // 当前运行中的会话
	SessionsStarted    int64
	SessionsStopped    int64
	TickCount          int64 // 全部会话累计 Tick 次数
	TickOverruns       int64 // 计算+发布超过 Tick 周期的次数
	InputsAccepted     int64 // 被接受的按下/抬起
	InputsIgnored      int64 // 无法识别或无意义的输入
	SnapshotsPublished int64
	SnapshotsDropped   int64 // 发送队列满被丢弃的快照
	TotalTickNs        int64 // Tick 累计耗时（纳秒）
}

func (m *Metrics) SessionStarted() {
	atomic.AddInt64(&m.ActiveSessions, 1)
	atomic.AddInt64(&m.SessionsStarted, 1)
}

func (m *Metrics) SessionStopped() {
	atomic.AddInt64(&m.ActiveSessions, -1)
	atomic.AddInt64(&m.SessionsStopped, 1)
}

func (m *Metrics) IncAccepted() { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *Metrics) IncIgnored()  { atomic.AddInt64(&m.InputsIgnored, 1) }
func (m *Metrics) IncOverrun()  { atomic.AddInt64(&m.TickOverruns, 1) }

func (m *Metrics) IncPublished(ok bool) {
	if ok {
		atomic.AddInt64(&m.SnapshotsPublished, 1)
	} else {
		atomic.AddInt64(&m.SnapshotsDropped, 1)
	}
}

func (m *Metrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *Metrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"active_sessions":     atomic.LoadInt64(&m.ActiveSessions),
		"sessions_started":    atomic.LoadInt64(&m.SessionsStarted),
		"sessions_stopped":    atomic.LoadInt64(&m.SessionsStopped),
		"tick_count":          tick,
		"tick_overruns":       atomic.LoadInt64(&m.TickOverruns),
		"inputs_accepted":     atomic.LoadInt64(&m.InputsAccepted),
		"inputs_ignored":      atomic.LoadInt64(&m.InputsIgnored),
		"snapshots_published": atomic.LoadInt64(&m.SnapshotsPublished),
		"snapshots_dropped":   atomic.LoadInt64(&m.SnapshotsDropped),
		"avg_tick_ms":         avgMs,
	}
}
