package server

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bcolucci/rcb/game"
)

type fakeOut struct {
	frames chan Frame
}

func newFakeOut() *fakeOut {
	return &fakeOut{frames: make(chan Frame, 256)}
}

func (f *fakeOut) Enqueue(fr Frame) bool {
	select {
	case f.frames <- fr:
		return true
	default:
		return false
	}
}

// next 等待下一条指定事件的文本帧
func (f *fakeOut) next(t *testing.T, event string, timeout time.Duration) Envelope {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case fr := <-f.frames:
			if fr.Binary {
				continue
			}
			env, err := DecodeEnvelope(fr.Data)
			if err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if env.Event == event {
				return env
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q", event)
		}
	}
}

func (f *fakeOut) drain() int {
	n := 0
	for {
		select {
		case <-f.frames:
			n++
		default:
			return n
		}
	}
}

func decodeSnapshot(t *testing.T, env Envelope) Snapshot {
	t.Helper()
	var s Snapshot
	if err := json.Unmarshal(env.Data, &s); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return s
}

func quietTuning() game.Tuning {
	t := game.DefaultTuning()
	t.BossIdleProbability = 1
	return t
}

// startIdleSession Tick 周期足够长，测试中手动调用 tick()
func startIdleSession(t *testing.T, out Outbound) *Session {
	t.Helper()
	s := NewSession("test-0001", SessionOptions{
		Keys:         DefaultKeyMap(),
		TickInterval: time.Hour,
		Tuning:       quietTuning(),
		Seed:         1,
	}, out, &Metrics{})
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(s.Stop)
	return s
}

func newTestManager(tick time.Duration) *SessionManager {
	cfg := DefaultConfig()
	cfg.TickInterval = tick
	cfg.Tuning = quietTuning()
	return NewSessionManager(context.Background(), NewSettings(cfg), &Metrics{})
}
