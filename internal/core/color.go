package core

import "strconv"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorNavy
	ColorBrown
)

var ansiCodes = [...]int{
	ColorDefault:      -1,
	ColorRed:          1,
	ColorGreen:        2,
	ColorYellow:       3,
	ColorBlue:         4,
	ColorCyan:         6,
	ColorWhite:        7,
	ColorBrightGreen:  10,
	ColorBrightYellow: 11,
	ColorBrightBlue:   12,
	ColorBrightWhite:  15,
	ColorOrange:       208,
	ColorGray:         245,
	ColorNavy:         17,
	ColorBrown:        94,
}

// ANSI returns the 256-color palette index as a string, or "" for the
// terminal default.
func (c Color) ANSI() string {
	if int(c) >= len(ansiCodes) || ansiCodes[c] < 0 {
		return ""
	}
	return strconv.Itoa(ansiCodes[c])
}
