// Package sound plays short synthesized cues for game events.
package sound

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Gem-Crossing/internal/game"
)

// SampleRate is the speaker rate used for every cue.
const SampleRate = beep.SampleRate(44100)

// Note is one tone of a cue.
type Note struct {
	Freq     float64
	Duration time.Duration
}

var cues = map[string][]Note{
	game.KeyEnemyHit: {
		{Freq: 220, Duration: 90 * time.Millisecond},
		{Freq: 165, Duration: 140 * time.Millisecond},
	},
	game.KeyPlayerCross: {
		{Freq: 660, Duration: 70 * time.Millisecond},
		{Freq: 880, Duration: 110 * time.Millisecond},
	},
	game.KeyTokenCollect: {
		{Freq: 1320, Duration: 60 * time.Millisecond},
	},
	game.KeyPlayerGameOver: {
		{Freq: 440, Duration: 180 * time.Millisecond},
		{Freq: 330, Duration: 180 * time.Millisecond},
		{Freq: 220, Duration: 360 * time.Millisecond},
	},
}

// Cue returns the notes played for an event key, or nil when the key is silent.
func Cue(key string) []Note {
	return cues[key]
}

// Sequence renders notes as one streamer at rate sr, attenuated by gain
// (0 leaves the level unchanged, -1 is silence).
func Sequence(sr beep.SampleRate, notes []Note, gain float64) (beep.Streamer, error) {
	if len(notes) == 0 {
		return nil, fmt.Errorf("sound: empty cue")
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.Freq)
		if err != nil {
			return nil, fmt.Errorf("sound: tone %.0fHz: %w", n.Freq, err)
		}
		parts = append(parts, beep.Take(sr.N(n.Duration), tone))
	}
	return &effects.Gain{Streamer: beep.Seq(parts...), Gain: gain}, nil
}

// Samples is the length in samples of notes played at sr.
func Samples(sr beep.SampleRate, notes []Note) int {
	total := 0
	for _, n := range notes {
		total += sr.N(n.Duration)
	}
	return total
}

// Player turns game events into speaker output. It is a game.Listener.
// A Player whose speaker could not be opened stays silent.
type Player struct {
	mu      sync.Mutex
	ready   bool
	enabled bool
	gain    float64
	logger  *log.Logger
}

// New returns a Player that has not opened the speaker yet.
func New(logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{enabled: true, gain: -0.6, logger: logger}
}

// Init opens the speaker. A failure is logged and returned, and leaves the
// Player silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		p.logger.Warn("audio unavailable, continuing without sound", "err", err)
		return fmt.Errorf("sound: init speaker: %w", err)
	}
	p.ready = true
	p.logger.Debug("speaker ready", "rate", int(SampleRate))
	return nil
}

// SetEnabled mutes or unmutes the cues.
func (p *Player) SetEnabled(on bool) {
	p.mu.Lock()
	p.enabled = on
	p.mu.Unlock()
}

// Enabled reports whether cues will be played.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// HandleEvent plays the cue for e, if it has one.
func (p *Player) HandleEvent(e game.Event) {
	notes := Cue(e.Key)
	if notes == nil {
		return
	}
	p.mu.Lock()
	live := p.ready && p.enabled
	gain := p.gain
	p.mu.Unlock()
	if !live {
		return
	}
	s, err := Sequence(SampleRate, notes, gain)
	if err != nil {
		p.logger.Error("cue", "key", e.Key, "err", err)
		return
	}
	speaker.Play(s)
}

// Close releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Close()
	p.ready = false
}
