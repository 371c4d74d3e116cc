package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Theme selects the palette a frame is drawn with.
type Theme int

const (
	ThemeDay Theme = iota
	ThemeNight
)

func (t Theme) String() string {
	if t == ThemeNight {
		return "night"
	}
	return "day"
}

// ThemeFor derives the theme from the score: it flips between day and night
// every nightEvery points. A non-positive nightEvery keeps it day.
func ThemeFor(score, nightEvery int) Theme {
	if nightEvery <= 0 || score < 0 {
		return ThemeDay
	}
	if (score/nightEvery)%2 == 1 {
		return ThemeNight
	}
	return ThemeDay
}

// Palette holds the colors of one theme.
type Palette struct {
	Sky     core.Color
	Star    core.Color
	Pipe    core.Color
	PipeCap core.Color
	Bird    core.Color
	Ground  core.Color
	Grass   core.Color
	Text    core.Color
	Accent  core.Color
}

var palettes = map[Theme]Palette{
	ThemeDay: {
		Sky:     core.ColorDefault,
		Star:    core.ColorDefault,
		Pipe:    core.ColorGreen,
		PipeCap: core.ColorBrightGreen,
		Bird:    core.ColorBrightYellow,
		Ground:  core.ColorBrown,
		Grass:   core.ColorGreen,
		Text:    core.ColorBrightWhite,
		Accent:  core.ColorOrange,
	},
	ThemeNight: {
		Sky:     core.ColorNavy,
		Star:    core.ColorWhite,
		Pipe:    core.ColorCyan,
		PipeCap: core.ColorBrightBlue,
		Bird:    core.ColorYellow,
		Ground:  core.ColorGray,
		Grass:   core.ColorBlue,
		Text:    core.ColorWhite,
		Accent:  core.ColorBrightYellow,
	},
}

// Palette returns the colors for t.
func (t Theme) Palette() Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[ThemeDay]
}
