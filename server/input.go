package server

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/bcolucci/rcb/game"
)

const (
	KeyCodeLeft  = 37
	KeyCodeRight = 39
)

// KeyMap 客户端键码到方向的映射，每个会话在 init 时确定
type KeyMap struct {
	Left  int
	Right int
}

func DefaultKeyMap() KeyMap {
	return KeyMap{Left: KeyCodeLeft, Right: KeyCodeRight}
}

// KeyMapFor 缺省值回退到方向键；左右相同视为无效
func KeyMapFor(cfg InitConfig) (KeyMap, error) {
	k := DefaultKeyMap()
	if cfg.LeftKeyCode != 0 {
		k.Left = cfg.LeftKeyCode
	}
	if cfg.RightKeyCode != 0 {
		k.Right = cfg.RightKeyCode
	}
	if k.Left == k.Right {
		return KeyMap{}, fmt.Errorf("%w: left and right key codes are both %d", ErrInvalidConfig, k.Left)
	}
	return k, nil
}

func (k KeyMap) Resolve(code int) game.Direction {
	switch code {
	case k.Left:
		return game.DirLeft
	case k.Right:
		return game.DirRight
	}
	return game.DirNone
}

// KeyRecord keysPress 批量消息中的一条：["keydown", 37]
type KeyRecord struct {
	Type string
	Code int
}

func (r *KeyRecord) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("key record: want [type, code], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &r.Type); err != nil {
		return fmt.Errorf("key record type: %w", err)
	}
	if err := json.Unmarshal(pair[1], &r.Code); err != nil {
		return fmt.Errorf("key record code: %w", err)
	}
	return nil
}

func (KeyRecord) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Description: `[eventType, keyCode] where eventType is "keydown" or "keyup"`,
	}
}

// Kind 将消息名映射为按下/抬起
func (r KeyRecord) Kind() (game.EventKind, bool) {
	switch r.Type {
	case EventKeyDown:
		return game.EventPress, true
	case EventKeyUp:
		return game.EventRelease, true
	}
	return 0, false
}
