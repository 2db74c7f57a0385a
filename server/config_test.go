package server

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"tick too short":  func(c *Config) { c.TickInterval = time.Millisecond },
		"tick too long":   func(c *Config) { c.TickInterval = 2 * time.Second },
		"no addr":         func(c *Config) { c.Addr = "" },
		"zero buffer":     func(c *Config) { c.SendBuffer = 0 },
		"zero step":       func(c *Config) { c.Tuning.PlayerStepDegrees = 0 },
		"bad probability": func(c *Config) { c.Tuning.BossIdleProbability = 1.5 },
		"bad compaction":  func(c *Config) { c.Tuning.Compaction = "magic" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := DefaultConfig()
			mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestConfigApplyEnv(t *testing.T) {
	t.Setenv("RCB_ADDR", ":9999")
	t.Setenv("RCB_TICK_INTERVAL", "45ms")
	t.Setenv("RCB_PLAYER_STEP", "3")
	t.Setenv("RCB_BOSS_IDLE_PROBABILITY", "0.25")
	t.Setenv("RCB_COMPACTION", "reference")
	t.Setenv("RCB_LOG_STDERR", "true")

	c := DefaultConfig()
	if err := c.ApplyEnv(); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if c.Addr != ":9999" || c.TickInterval != 45*time.Millisecond || c.Tuning.PlayerStepDegrees != 3 ||
		c.Tuning.BossIdleProbability != 0.25 || c.Tuning.Compaction != "reference" || !c.LogStderr {
		t.Fatalf("config = %+v", c)
	}
}

func TestConfigApplyEnvErrors(t *testing.T) {
	t.Setenv("RCB_PLAYER_STEP", "two")
	t.Setenv("RCB_TICK_INTERVAL", "soon")
	c := DefaultConfig()
	if err := c.ApplyEnv(); err == nil {
		t.Fatalf("expected parse errors")
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("RCB_BOSS_STEP", "7")
	c := DefaultConfig()
	if err := c.ApplyEnv(); err != nil {
		t.Fatalf("apply: %v", err)
	}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse([]string{"-tick", "50ms"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Tuning.BossStepDegrees != 7 || c.TickInterval != 50*time.Millisecond {
		t.Fatalf("config = %+v", c)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("RCB_BOSS_MAX_MOVES=4\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RCB_BOSS_MAX_MOVES", "")
	os.Unsetenv("RCB_BOSS_MAX_MOVES")
	if err := LoadEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("load: %v", err)
	}
	c := DefaultConfig()
	if err := c.ApplyEnv(); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if c.Tuning.BossMaxMoves != 4 {
		t.Fatalf("boss max moves = %d", c.Tuning.BossMaxMoves)
	}
}

func TestSettingsUpdateValidates(t *testing.T) {
	s := NewSettings(DefaultConfig())
	_, tune := s.Get()
	tune.Compaction = "nope"
	if err := s.Update(30*time.Millisecond, tune); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v", err)
	}
	if _, cur := s.Get(); cur.Compaction != "net" {
		t.Fatalf("invalid update applied: %+v", cur)
	}
}
