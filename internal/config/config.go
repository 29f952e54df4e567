// Package config loads the game tuning from an ini file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/ini.v1"

	"github.com/Garsondee/Gem-Crossing/internal/game"
)

// DefaultPath is used when GEMCROSS_CONFIG is not set.
const DefaultPath = "gemcross.ini"

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "GEMCROSS_CONFIG"

// Config mirrors the ini file, one struct per section.
type Config struct {
	Field   Field   `ini:"field"`
	Player  Player  `ini:"player"`
	Enemy   Enemy   `ini:"enemy"`
	Token   Token   `ini:"token"`
	Session Session `ini:"session"`
}

// Field is the [field] section.
type Field struct {
	BlockWidth  int `ini:"block_width"`
	BlockHeight int `ini:"block_height"`
	TopOffset   int `ini:"top_offset"`
	Left        int `ini:"left"`
	Right       int `ini:"right"`
	Bottom      int `ini:"bottom"`
	Columns     int `ini:"columns"`
	Rows        int `ini:"rows"`
}

// Player is the [player] section. An empty avatar means pick at random.
type Player struct {
	Avatar      string `ini:"avatar"`
	StartLives  int    `ini:"start_lives"`
	MaxLives    int    `ini:"max_lives"`
	StartRow    int    `ini:"start_row"`
	StartColMin int    `ini:"start_col_min"`
	StartColMax int    `ini:"start_col_max"`
}

// Enemy is the [enemy] section.
type Enemy struct {
	Count    int     `ini:"count"`
	ColMin   int     `ini:"col_min"`
	ColMax   int     `ini:"col_max"`
	RowMin   int     `ini:"row_min"`
	RowMax   int     `ini:"row_max"`
	SpeedMin int     `ini:"speed_min"`
	SpeedMax int     `ini:"speed_max"`
	Jitter   float64 `ini:"jitter"`
}

// Token is the [token] section. Delay and fade are counted in steps.
type Token struct {
	ColMin   int           `ini:"col_min"`
	ColMax   int           `ini:"col_max"`
	RowMin   int           `ini:"row_min"`
	RowMax   int           `ini:"row_max"`
	DelayMin int           `ini:"delay_min"`
	DelayMax int           `ini:"delay_max"`
	FadeMin  int           `ini:"fade_min"`
	FadeMax  int           `ini:"fade_max"`
	Step     time.Duration `ini:"step"`
}

// Session is the [session] section: everything that is not game tuning.
type Session struct {
	Seed     int64  `ini:"seed"` // 0 picks a time-based seed
	LogLevel string `ini:"log_level"`
	Sprites  string `ini:"sprites"` // root the sprite keys are relative to
	Sound    bool   `ini:"sound"`
	TPS      int    `ini:"tps"`
}

// Default returns the classic tuning.
func Default() Config {
	s := game.DefaultSettings()
	return Config{
		Field: Field{
			BlockWidth:  s.Grid.BlockWidth,
			BlockHeight: s.Grid.BlockHeight,
			TopOffset:   s.Grid.TopOffset,
			Left:        s.Grid.Left,
			Right:       s.Grid.Right,
			Bottom:      s.Grid.Bottom,
			Columns:     s.Grid.Columns,
			Rows:        s.Grid.Rows,
		},
		Player: Player{
			StartLives:  s.Player.StartLives,
			MaxLives:    s.Player.MaxLives,
			StartRow:    s.Player.StartRow,
			StartColMin: s.Player.StartCols.Min,
			StartColMax: s.Player.StartCols.Max,
		},
		Enemy: Enemy{
			Count:    s.Enemy.Count,
			ColMin:   s.Enemy.Cols.Min,
			ColMax:   s.Enemy.Cols.Max,
			RowMin:   s.Enemy.Rows.Min,
			RowMax:   s.Enemy.Rows.Max,
			SpeedMin: s.Enemy.Speed.Min,
			SpeedMax: s.Enemy.Speed.Max,
			Jitter:   s.Enemy.Jitter,
		},
		Token: Token{
			ColMin:   s.Token.Cols.Min,
			ColMax:   s.Token.Cols.Max,
			RowMin:   s.Token.Rows.Min,
			RowMax:   s.Token.Rows.Max,
			DelayMin: s.Token.Delay.Min,
			DelayMax: s.Token.Delay.Max,
			FadeMin:  s.Token.Fade.Min,
			FadeMax:  s.Token.Fade.Max,
			Step:     s.Token.Step,
		},
		Session: Session{
			LogLevel: "info",
			Sprites:  ".",
			Sound:    true,
			TPS:      60,
		},
	}
}

// GetEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Path returns the config path, honouring GEMCROSS_CONFIG.
func Path() string {
	return GetEnv(EnvPath, DefaultPath)
}

// Load reads path over the defaults. A missing file is not an error; keys
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	f, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := f.MapTo(&cfg); err != nil {
		return cfg, fmt.Errorf("map config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrCreate is Load for the binaries: on first run, when path does not
// exist yet, it writes the defaults there so they can be edited. created
// reports whether the file was written.
func LoadOrCreate(path string) (cfg Config, created bool, err error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		if err := Save(path, cfg); err != nil {
			return cfg, false, err
		}
		return cfg, true, nil
	}
	cfg, err = Load(path)
	return cfg, false, err
}

// Save writes cfg to path, overwriting it.
func Save(path string, cfg Config) error {
	f := ini.Empty()
	if err := f.ReflectFrom(&cfg); err != nil {
		return fmt.Errorf("reflect config: %w", err)
	}
	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("save config %s: %w", path, err)
	}
	return nil
}

// Settings converts the file layout into game tuning.
func (c Config) Settings() game.Settings {
	return game.Settings{
		Grid: game.Grid{
			BlockWidth:  c.Field.BlockWidth,
			BlockHeight: c.Field.BlockHeight,
			TopOffset:   c.Field.TopOffset,
			Left:        c.Field.Left,
			Right:       c.Field.Right,
			Bottom:      c.Field.Bottom,
			Columns:     c.Field.Columns,
			Rows:        c.Field.Rows,
		},
		Player: game.PlayerTuning{
			StartLives: c.Player.StartLives,
			MaxLives:   c.Player.MaxLives,
			StartRow:   c.Player.StartRow,
			StartCols:  game.Range{Min: c.Player.StartColMin, Max: c.Player.StartColMax},
		},
		Enemy: game.EnemyTuning{
			Count:  c.Enemy.Count,
			Cols:   game.Range{Min: c.Enemy.ColMin, Max: c.Enemy.ColMax},
			Rows:   game.Range{Min: c.Enemy.RowMin, Max: c.Enemy.RowMax},
			Speed:  game.Range{Min: c.Enemy.SpeedMin, Max: c.Enemy.SpeedMax},
			Jitter: c.Enemy.Jitter,
		},
		Token: game.TokenTuning{
			Cols:  game.Range{Min: c.Token.ColMin, Max: c.Token.ColMax},
			Rows:  game.Range{Min: c.Token.RowMin, Max: c.Token.RowMax},
			Delay: game.Range{Min: c.Token.DelayMin, Max: c.Token.DelayMax},
			Fade:  game.Range{Min: c.Token.FadeMin, Max: c.Token.FadeMax},
			Step:  c.Token.Step,
		},
	}
}

// Validate checks the game tuning and the session section.
func (c Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return err
	}
	if c.Session.TPS <= 0 {
		return fmt.Errorf("session tps %d: %w", c.Session.TPS, game.ErrInvalidRange)
	}
	if _, err := log.ParseLevel(c.Session.LogLevel); err != nil {
		return fmt.Errorf("session log_level %q: %w", c.Session.LogLevel, err)
	}
	return nil
}

// WorldOptions returns the options implied by the session section.
func (c Config) WorldOptions() []game.Option {
	var opts []game.Option
	if c.Session.Seed != 0 {
		opts = append(opts, game.WithSeed(c.Session.Seed))
	}
	if c.Player.Avatar != "" {
		opts = append(opts, game.WithAvatar(c.Player.Avatar))
	}
	return opts
}

// NewLogger builds the structured logger the binaries share.
func NewLogger(level string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	l := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "gemcross",
		ReportTimestamp: true,
	})
	return l, nil
}
