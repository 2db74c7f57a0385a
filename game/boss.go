package game

import "math/rand"

// Boss 自主移动的对手，Level 仅供渲染参考，不影响运动
type Boss struct {
	Movable
	Level int
}

const (
	level2FirstFrame = 501
	level3FirstFrame = 2001
)

// LevelFor 等级只由帧号决定
func LevelFor(frame int) int {
	switch {
	case frame >= level3FirstFrame:
		return 3
	case frame >= level2FirstFrame:
		return 2
	default:
		return 1
	}
}

// BossDirector 每帧为 Boss 随机生成移动
type BossDirector struct {
	rng             *rand.Rand
	idleProbability float64
	maxMoves        int
	step            int
	compact         Compactor
}

func NewBossDirector(rng *rand.Rand, t Tuning, compact Compactor) *BossDirector {
	return &BossDirector{
		rng:             rng,
		idleProbability: t.BossIdleProbability,
		maxMoves:        t.BossMaxMoves,
		step:            t.BossStepDegrees,
		compact:         compact,
	}
}

// NextMoves 以 idleProbability 概率不动，否则生成 0..maxMoves 个随机方向
func (d *BossDirector) NextMoves() []Direction {
	if d.maxMoves <= 0 || d.rng.Float64() < d.idleProbability {
		return []Direction{}
	}
	n := d.rng.Intn(d.maxMoves + 1)
	moves := make([]Direction, n)
	for i := range moves {
		if d.rng.Intn(2) == 0 {
			moves[i] = DirLeft
		} else {
			moves[i] = DirRight
		}
	}
	return moves
}

// Advance 生成、压缩并积分一帧的 Boss 移动，frame 为新帧号
func (d *BossDirector) Advance(b Boss, frame int) Boss {
	residual := d.compact(d.NextMoves())
	return Boss{
		Movable: Integrate(b.Movable, residual, d.step),
		Level:   LevelFor(frame),
	}
}
