package server

import (
	"sync"
	"time"

	"github.com/bcolucci/rcb/game"
)

// EventQueue 当前按住的方向键（按住键模型）。按下插入或替换，抬起移除。
// 条目按到达时间排序，重复按下会移到末尾。
type EventQueue struct {
	mu   sync.Mutex
	held []game.InputEvent
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

func (q *EventQueue) indexOf(code game.Direction) int {
	for i, ev := range q.held {
		if ev.Code == code {
			return i
		}
	}
	return -1
}

// Press 无效方向返回 false
func (q *EventQueue) Press(code game.Direction, at time.Time) bool {
	if !code.Valid() {
		return false
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if i := q.indexOf(code); i >= 0 {
		q.held = append(q.held[:i], q.held[i+1:]...)
	}
	q.held = append(q.held, game.InputEvent{Kind: game.EventPress, Code: code, ReceivedAt: at})
	return true
}

// Release 没有对应按下时为空操作，返回 false
func (q *EventQueue) Release(code game.Direction) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	i := q.indexOf(code)
	if i < 0 {
		return false
	}
	q.held = append(q.held[:i], q.held[i+1:]...)
	return true
}

// Snapshot 原子地拷贝当前内容，供一次 Tick 使用
func (q *EventQueue) Snapshot() []game.InputEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]game.InputEvent, len(q.held))
	copy(out, q.held)
	return out
}

func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.held)
}

func (q *EventQueue) Clear() {
	q.mu.Lock()
	q.held = nil
	q.mu.Unlock()
}
