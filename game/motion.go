package game

import "math"

// Movable 沿单位圆运动的实体，坐标完全由角度推导
type Movable struct {
	AngleDegrees int
	AngleRadians float64
	X            float64
	Y            float64
	LastMoves    []Direction
}

// NewMovable 由角度构造，角度会先归一到 [0,360)
func NewMovable(degrees int) Movable {
	deg := WrapDegrees(degrees)
	rad := float64(deg) * math.Pi / 180
	return Movable{
		AngleDegrees: deg,
		AngleRadians: rad,
		X:            math.Cos(rad),
		Y:            math.Sin(rad),
		LastMoves:    []Direction{},
	}
}

// WrapDegrees 取模到 [0,360)
func WrapDegrees(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Integrate 依次应用残余移动，每步 stepDegrees，结束后重算弧度与坐标。
// 空序列时角度与坐标保持原值，只清空 LastMoves。
func Integrate(m Movable, moves []Direction, stepDegrees int) Movable {
	if len(moves) == 0 {
		out := m
		out.LastMoves = []Direction{}
		return out
	}
	angle := m.AngleDegrees
	for _, mv := range moves {
		angle = WrapDegrees(angle + mv.Sign()*stepDegrees)
	}
	out := NewMovable(angle)
	out.LastMoves = cloneMoves(moves)
	return out
}
