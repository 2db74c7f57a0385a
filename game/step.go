package game

import (
	"math/rand"
	"time"
)

// Engine 单个会话的帧推进函数，不是并发安全的（由会话的 Tick 协程独占）
type Engine struct {
	playerStep int
	compact    Compactor
	boss       *BossDirector
	now        func() time.Time
}

// NewEngine 未知的压缩算法名称回退到净抵消
func NewEngine(t Tuning, rng *rand.Rand) *Engine {
	compact, ok := CompactorFor(t.Compaction)
	if !ok {
		compact = Compact
	}
	return &Engine{
		playerStep: t.PlayerStepDegrees,
		compact:    compact,
		boss:       NewBossDirector(rng, t, compact),
		now:        time.Now,
	}
}

// PlayerMoves 提取按下状态的方向输入，其余忽略
func PlayerMoves(events []InputEvent) []Direction {
	moves := make([]Direction, 0, len(events))
	for _, ev := range events {
		if ev.Kind == EventPress && ev.Code.Valid() {
			moves = append(moves, ev.Code)
		}
	}
	return moves
}

// Compute 由 (输入, 上一帧) 得到下一帧；prev 不会被修改
func (e *Engine) Compute(events []InputEvent, prev State) State {
	start := e.now()
	frame := prev.Frame + 1

	residual := e.compact(PlayerMoves(events))
	next := State{
		Frame:  frame,
		Player: Integrate(prev.Player, residual, e.playerStep),
		Boss:   e.boss.Advance(prev.Boss, frame),
	}
	next.ComputeDurationMicros = e.now().Sub(start).Microseconds()
	return next
}
