package game

import "time"

// State 一帧的完整模拟状态。每帧整体替换，从不原地修改，
// 慢消费者持有的旧引用仍是有效快照。
type State struct {
	Frame                 int
	Player                Movable
	Boss                  Boss
	ComputeDurationMicros int64
}

// InitialState 第 1 帧，玩家与 Boss 都在 0°
func InitialState() State {
	return State{
		Frame:  1,
		Player: NewMovable(0),
		Boss:   Boss{Movable: NewMovable(0), Level: LevelFor(1)},
	}
}

// EventKind 输入事件类型
type EventKind int

const (
	EventPress EventKind = iota + 1
	EventRelease
)

// InputEvent 一条已解码的输入，Code 已由传输层映射为方向
type InputEvent struct {
	Kind       EventKind
	Code       Direction
	ReceivedAt time.Time
}

// Tuning 模拟参数
type Tuning struct {
	PlayerStepDegrees   int     `json:"playerStepDegrees"`
	BossStepDegrees     int     `json:"bossStepDegrees"`
	BossIdleProbability float64 `json:"bossIdleProbability"`
	BossMaxMoves        int     `json:"bossMaxMoves"`
	Compaction          string  `json:"compaction"`
}

// DefaultTuning 玩家每步 2°，Boss 每步 5°，一半概率静止，最多 2 步
func DefaultTuning() Tuning {
	return Tuning{
		PlayerStepDegrees:   2,
		BossStepDegrees:     5,
		BossIdleProbability: 0.5,
		BossMaxMoves:        2,
		Compaction:          CompactionNet,
	}
}
