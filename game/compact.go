package game

// Compactor 将一帧内的方向序列压缩为净残余序列
type Compactor func(moves []Direction) []Direction

const (
	CompactionNet       = "net"
	CompactionReference = "reference"
)

// CompactorFor 按名称选择压缩算法，未知名称返回 false
func CompactorFor(name string) (Compactor, bool) {
	switch name {
	case "", CompactionNet:
		return Compact, true
	case CompactionReference:
		return CompactReference, true
	}
	return nil, false
}

// runs 切分为相同令牌的最大连续段
func runs(moves []Direction) [][]Direction {
	var out [][]Direction
	start := 0
	for i := 1; i <= len(moves); i++ {
		if i == len(moves) || moves[i] != moves[start] {
			out = append(out, moves[start:i])
			start = i
		}
	}
	return out
}

// Compact 净抵消：只比较前两段。等长则完全抵消；否则残余为较长段多出的部分。
// 第三段及以后不参与计算（按住键模型下每帧最多两段）。
func Compact(moves []Direction) []Direction {
	rs := runs(moves)
	if len(rs) < 2 {
		return cloneMoves(moves)
	}
	a, b := rs[0], rs[1]
	switch {
	case len(a) == len(b):
		return []Direction{}
	case len(a) > len(b):
		return repeat(a[0], len(a)-len(b))
	default:
		return repeat(b[0], len(b)-len(a))
	}
}

// CompactReference 旧版规则：不等长时取较长段的值重复"较短段长度"次，再拼接整个较短段。
// 例如 [L L L R] 得到 [L R]，而不是 [L L]。保留仅用于兼容对照。
func CompactReference(moves []Direction) []Direction {
	rs := runs(moves)
	if len(rs) < 2 {
		return cloneMoves(moves)
	}
	a, b := rs[0], rs[1]
	if len(a) == len(b) {
		return []Direction{}
	}
	longer, shorter := a, b
	if len(b) > len(a) {
		longer, shorter = b, a
	}
	out := repeat(longer[0], len(shorter))
	return append(out, shorter...)
}
