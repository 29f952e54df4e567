package arcade

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Gem-Crossing/internal/game"
)

const (
	tickerPanelWidth = 320
	tickerMaxEntries = 60
	tickerLineHeight = 15
)

// Ticker lists the latest session events beside the field, newest on top.
// It implements game.Listener; verbose events never reach the panel.
type Ticker struct {
	events []game.Event
}

// NewTicker returns an empty ticker.
func NewTicker() *Ticker {
	return &Ticker{events: make([]game.Event, 0, tickerMaxEntries)}
}

// HandleEvent records e. Once tickerMaxEntries are held the oldest is dropped.
func (tk *Ticker) HandleEvent(e game.Event) {
	if e.Verbose {
		return
	}
	if len(tk.events) == tickerMaxEntries {
		copy(tk.events, tk.events[1:])
		tk.events = tk.events[:tickerMaxEntries-1]
	}
	tk.events = append(tk.events, e)
}

// Events returns a copy of the held events, oldest first.
func (tk *Ticker) Events() []game.Event {
	return append([]game.Event(nil), tk.events...)
}

// Clear drops every event.
func (tk *Ticker) Clear() { tk.events = tk.events[:0] }

func tickerLine(e game.Event) string {
	return fmt.Sprintf("%4d %-2s %s %s", e.Tick, e.Entity, e.Key, e.Value)
}

func categoryColor(category string) color.RGBA {
	switch category {
	case game.CategoryEnemy:
		return color.RGBA{R: 230, G: 110, B: 100, A: 255}
	case game.CategoryToken:
		return color.RGBA{R: 110, G: 180, B: 240, A: 255}
	case game.CategoryPlayer:
		return color.RGBA{R: 120, G: 220, B: 120, A: 255}
	default:
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
}

// Draw renders the panel at panelX, panelH pixels tall. Lines dim with age.
func (tk *Ticker) Draw(screen *ebiten.Image, face text.Face, panelX, panelH int) {
	x, w, h := float32(panelX), float32(tickerPanelWidth), float32(panelH)
	vector.FillRect(screen, x, 0, w, h, color.RGBA{R: 10, G: 12, B: 16, A: 248}, false)
	vector.StrokeLine(screen, x, 0, x, h, 1, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)
	drawLabel(screen, face, fmt.Sprintf("EVENTS (%d)", len(tk.events)), panelX+8, 2, color.White)
	vector.StrokeLine(screen, x, 18, x+w, 18, 1, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)

	rows := (panelH - 24) / tickerLineHeight
	y := 22
	for age := 0; age < rows && age < len(tk.events); age++ {
		e := tk.events[len(tk.events)-1-age]
		c := categoryColor(e.Category)
		if age > 0 {
			// Older lines settle at about half brightness.
			f := 1 - 0.5*float64(age)/float64(rows)
			c.R, c.G, c.B = uint8(float64(c.R)*f), uint8(float64(c.G)*f), uint8(float64(c.B)*f)
		}
		drawLabel(screen, face, tickerLine(e), panelX+8, y, c)
		y += tickerLineHeight
	}
}
