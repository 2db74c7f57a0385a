package server

import (
	"encoding/json"

	"github.com/bcolucci/rcb/game"
)

// 消息名称（客户端 ↔ 服务端）
const (
	EventInit        = "init"
	EventInitialized = "initialized"
	EventKeyDown     = "keydown"
	EventKeyUp       = "keyup"
	EventKeysPress   = "keysPress"
	EventCompute     = "compute"
)

// Encoding 快照编码方式，由客户端在 init 中声明
type Encoding string

const (
	EncodingJSON    Encoding = "json"
	EncodingMsgpack Encoding = "msgpack"
)

// Envelope 文本帧外层结构，示例：{"event":"keydown","data":37}
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// InitConfig 握手参数，缺省为方向键 37/39 与 JSON 编码
type InitConfig struct {
	LeftKeyCode  int      `json:"leftKeyCode,omitempty"`
	RightKeyCode int      `json:"rightKeyCode,omitempty"`
	Encoding     Encoding `json:"encoding,omitempty" jsonschema:"enum=json,enum=msgpack"`
}

type Initialized struct {
	SessionID      string `json:"sessionId" msgpack:"sessionId"`
	TickIntervalMs int64  `json:"tickIntervalMs" msgpack:"tickIntervalMs"`
}

type MovableSnapshot struct {
	AngleDegrees int      `json:"angleDegrees" msgpack:"angleDegrees"`
	AngleRadians float64  `json:"angleRadians" msgpack:"angleRadians"`
	X            float64  `json:"x" msgpack:"x"`
	Y            float64  `json:"y" msgpack:"y"`
	Moves        []string `json:"moves" msgpack:"moves"`
}

type BossSnapshot struct {
	AngleDegrees int      `json:"angleDegrees" msgpack:"angleDegrees"`
	AngleRadians float64  `json:"angleRadians" msgpack:"angleRadians"`
	X            float64  `json:"x" msgpack:"x"`
	Y            float64  `json:"y" msgpack:"y"`
	Moves        []string `json:"moves" msgpack:"moves"`
	Level        int      `json:"level" msgpack:"level"`
}

// Snapshot 每帧发送给客户端的状态
type Snapshot struct {
	Frame                 int             `json:"frame" msgpack:"frame"`
	Player                MovableSnapshot `json:"player" msgpack:"player"`
	Boss                  BossSnapshot    `json:"boss" msgpack:"boss"`
	ComputeDurationMicros int64           `json:"computeDurationMicros" msgpack:"computeDurationMicros"`
}

func moveNames(moves []game.Direction) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

func NewSnapshot(s game.State) Snapshot {
	return Snapshot{
		Frame: s.Frame,
		Player: MovableSnapshot{
			AngleDegrees: s.Player.AngleDegrees,
			AngleRadians: s.Player.AngleRadians,
			X:            s.Player.X,
			Y:            s.Player.Y,
			Moves:        moveNames(s.Player.LastMoves),
		},
		Boss: BossSnapshot{
			AngleDegrees: s.Boss.AngleDegrees,
			AngleRadians: s.Boss.AngleRadians,
			X:            s.Boss.X,
			Y:            s.Boss.Y,
			Moves:        moveNames(s.Boss.LastMoves),
			Level:        s.Boss.Level,
		},
		ComputeDurationMicros: s.ComputeDurationMicros,
	}
}
