package server

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"github.com/bcolucci/rcb/game"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	minTickInterval = 5 * time.Millisecond
	maxTickInterval = time.Second
)

// Config 进程级配置：默认值 → 环境变量（RCB_*，可来自 .env）→ 命令行参数
type Config struct {
	Addr         string
	StaticDir    string
	LogFile      string
	LogLevel     string
	LogStderr    bool
	TickInterval time.Duration
	SendBuffer   int
	Tuning       game.Tuning
}

func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		StaticDir:    "web",
		LogFile:      "app.log",
		LogLevel:     "info",
		TickInterval: 30 * time.Millisecond,
		SendBuffer:   64,
		Tuning:       game.DefaultTuning(),
	}
}

// LoadEnv 读取 .env 文件（不存在时忽略），已有的环境变量不会被覆盖
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv 用 RCB_* 环境变量覆盖配置
func (c *Config) ApplyEnv() error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}

	str("RCB_ADDR", &c.Addr)
	str("RCB_STATIC_DIR", &c.StaticDir)
	str("RCB_LOG_FILE", &c.LogFile)
	str("RCB_LOG_LEVEL", &c.LogLevel)
	str("RCB_COMPACTION", &c.Tuning.Compaction)
	num("RCB_SEND_BUFFER", &c.SendBuffer)
	num("RCB_PLAYER_STEP", &c.Tuning.PlayerStepDegrees)
	num("RCB_BOSS_STEP", &c.Tuning.BossStepDegrees)
	num("RCB_BOSS_MAX_MOVES", &c.Tuning.BossMaxMoves)

	if v, ok := os.LookupEnv("RCB_LOG_STDERR"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("RCB_LOG_STDERR: %w", err))
		} else {
			c.LogStderr = b
		}
	}
	if v, ok := os.LookupEnv("RCB_TICK_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("RCB_TICK_INTERVAL: %w", err))
		} else {
			c.TickInterval = d
		}
	}
	if v, ok := os.LookupEnv("RCB_BOSS_IDLE_PROBABILITY"); ok {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("RCB_BOSS_IDLE_PROBABILITY: %w", err))
		} else {
			c.Tuning.BossIdleProbability = p
		}
	}
	return errors.Join(errs...)
}

// RegisterFlags 命令行参数，默认值取当前配置（即已应用环境变量之后）
func (c *Config) RegisterFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.Addr, "addr", c.Addr, "server listen address, e.g. :8080")
	flags.StringVar(&c.StaticDir, "static", c.StaticDir, "directory served at /")
	flags.StringVar(&c.LogFile, "log-file", c.LogFile, "rolling log file path")
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug|info|warn|error")
	flags.BoolVar(&c.LogStderr, "log-stderr", c.LogStderr, "mirror logs to stderr")
	flags.DurationVar(&c.TickInterval, "tick", c.TickInterval, "simulation tick interval")
	flags.IntVar(&c.SendBuffer, "send-buffer", c.SendBuffer, "per-connection outbound queue size")
	flags.IntVar(&c.Tuning.PlayerStepDegrees, "player-step", c.Tuning.PlayerStepDegrees, "player degrees per move")
	flags.IntVar(&c.Tuning.BossStepDegrees, "boss-step", c.Tuning.BossStepDegrees, "boss degrees per move")
	flags.Float64Var(&c.Tuning.BossIdleProbability, "boss-idle", c.Tuning.BossIdleProbability, "probability the boss skips a tick")
	flags.IntVar(&c.Tuning.BossMaxMoves, "boss-max-moves", c.Tuning.BossMaxMoves, "max random boss moves per tick")
	flags.StringVar(&c.Tuning.Compaction, "compaction", c.Tuning.Compaction, "move compaction: net|reference")
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty addr", ErrInvalidConfig)
	}
	if c.SendBuffer <= 0 {
		return fmt.Errorf("%w: send buffer must be positive, got %d", ErrInvalidConfig, c.SendBuffer)
	}
	if err := validateTick(c.TickInterval); err != nil {
		return err
	}
	return validateTuning(c.Tuning)
}

func validateTick(d time.Duration) error {
	if d < minTickInterval || d > maxTickInterval {
		return fmt.Errorf("%w: tick interval %s outside [%s,%s]", ErrInvalidConfig, d, minTickInterval, maxTickInterval)
	}
	return nil
}

func validateTuning(t game.Tuning) error {
	if t.PlayerStepDegrees <= 0 || t.BossStepDegrees <= 0 {
		return fmt.Errorf("%w: step degrees must be positive", ErrInvalidConfig)
	}
	if t.BossIdleProbability < 0 || t.BossIdleProbability > 1 {
		return fmt.Errorf("%w: boss idle probability %.2f outside [0,1]", ErrInvalidConfig, t.BossIdleProbability)
	}
	if t.BossMaxMoves < 0 {
		return fmt.Errorf("%w: negative boss max moves", ErrInvalidConfig)
	}
	if _, ok := game.CompactorFor(t.Compaction); !ok {
		return fmt.Errorf("%w: unknown compaction %q", ErrInvalidConfig, t.Compaction)
	}
	return nil
}

// Settings 可热更新的模拟参数，只影响之后新建的会话
type Settings struct {
	mu           sync.RWMutex
	tickInterval time.Duration
	tuning       game.Tuning
}

func NewSettings(c Config) *Settings {
	return &Settings{tickInterval: c.TickInterval, tuning: c.Tuning}
}

func (s *Settings) Get() (time.Duration, game.Tuning) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tickInterval, s.tuning
}

// Update 校验通过才整体替换
func (s *Settings) Update(tick time.Duration, t game.Tuning) error {
	if err := validateTick(tick); err != nil {
		return err
	}
	if err := validateTuning(t); err != nil {
		return err
	}
	s.mu.Lock()
	s.tickInterval = tick
	s.tuning = t
	s.mu.Unlock()
	return nil
}
