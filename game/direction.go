package game

// Direction 方向令牌（只有左右两种，均绕圆周旋转）
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
)

// Valid 是否为可识别的方向
func (d Direction) Valid() bool {
	return d == DirLeft || d == DirRight
}

// Sign 角度增量符号：左为负，右为正
func (d Direction) Sign() int {
	switch d {
	case DirLeft:
		return -1
	case DirRight:
		return 1
	default:
		return 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "LEFT"
	case DirRight:
		return "RIGHT"
	default:
		return "NONE"
	}
}

func cloneMoves(moves []Direction) []Direction {
	out := make([]Direction, len(moves))
	copy(out, moves)
	return out
}

func repeat(d Direction, n int) []Direction {
	out := make([]Direction, n)
	for i := range out {
		out[i] = d
	}
	return out
}
