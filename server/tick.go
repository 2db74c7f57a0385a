package server

import (
	"context"
	"time"
)

// Start 发送 initialized 并启动 Tick 循环（每个会话一个协程）
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.status {
	case StatusRunning:
		return nil
	case StatusStopped:
		return ErrSessionStopped
	}

	frame, err := EncodeFrame(EncodingJSON, EventInitialized, Initialized{
		SessionID:      s.ID,
		TickIntervalMs: s.interval.Milliseconds(),
	})
	if err != nil {
		return err
	}
	s.out.Enqueue(frame)

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.status = StatusRunning
	s.metrics.SessionStarted()
	go s.run(ctx, s.done)
	Log.Infof("session started: id=%s tick=%s encoding=%s", s.ID, s.interval, s.encoding)
	return nil
}

// run 核心循环：读取输入快照 → 计算 → 发布。
// time.Ticker 在接收方来不及时丢弃多余的 tick，超时的 Tick 不会补跑。
func (s *Session) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer s.finish()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			s.tick()
		}
	}
}

// tick 执行一帧。状态替换与发布在同一把锁内，Stop 之后不会再有快照发出
func (s *Session) tick() {
	start := time.Now()
	events := s.queue.Snapshot()

	s.mu.Lock()
	if s.status != StatusRunning {
		s.mu.Unlock()
		return
	}
	next := s.engine.Compute(events, s.state)
	s.state = next
	frame, err := EncodeFrame(s.encoding, EventCompute, NewSnapshot(next))
	if err == nil {
		s.metrics.IncPublished(s.out.Enqueue(frame))
	}
	s.mu.Unlock()

	if err != nil {
		Log.Errorf("session %s: encode frame %d: %v", s.ID, next.Frame, err)
	}
	elapsed := time.Since(start)
	s.metrics.AddTick(elapsed.Nanoseconds())
	if elapsed > s.interval {
		s.metrics.IncOverrun()
		Log.Warnf("session %s: tick %d took %s (interval %s), skipping missed ticks", s.ID, next.Frame, elapsed, s.interval)
	}
}

// finish 循环因上层 ctx 结束而退出时，同样进入 STOPPED
func (s *Session) finish() {
	s.mu.Lock()
	if s.status != StatusRunning {
		s.mu.Unlock()
		return
	}
	s.queue.Clear()
	s.status = StatusStopped
	frame := s.state.Frame
	s.mu.Unlock()

	s.metrics.SessionStopped()
	Log.Infof("session stopped: id=%s frame=%d (context done)", s.ID, frame)
}

// Stop 取消 Tick 并等待循环退出；可重复调用
func (s *Session) Stop() {
	s.mu.Lock()
	if s.status == StatusStopped {
		s.mu.Unlock()
		return
	}
	wasRunning := s.status == StatusRunning
	s.status = StatusStopped
	cancel, done := s.cancel, s.done
	frame := s.state.Frame
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	s.queue.Clear()
	if wasRunning {
		s.metrics.SessionStopped()
		Log.Infof("session stopped: id=%s frame=%d", s.ID, frame)
	}
}
