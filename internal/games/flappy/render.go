package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	BirdBody      = '●'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GrassChar     = '▔'
	GroundDark    = '▓'
	GroundLight   = '░'
	StarChar      = '·'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	Draw(dst, g.Snapshot())
}

// Draw renders a snapshot into dst, scaling the world to the screen size.
func Draw(dst *core.Screen, s Snapshot) {
	pal := s.Theme.Palette()
	dst.FillColor(' ', pal.Sky)
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	vp := core.Viewport{
		WorldW:  s.World.Width,
		WorldH:  s.World.Height,
		ScreenW: dst.Width(),
		ScreenH: dst.Height(),
	}

	if s.Theme == ThemeNight {
		drawStars(dst, vp, s.World.Height-s.World.GroundHeight, pal)
	}
	for _, p := range s.Pipes {
		drawPipe(dst, vp, p, pal)
	}
	drawGround(dst, vp, s, pal)
	drawBird(dst, vp, s.Bird, pal)

	if s.Debug {
		drawDebug(dst, vp, s)
	}

	drawHUD(dst, s, pal)

	switch s.Phase {
	case PhaseIdle:
		drawCenteredMessage(dst, "FLAPPY BIRD", "Press SPACE or click to flap", pal)
	case PhaseGameOver:
		title := "GAME OVER"
		if s.Fault != nil {
			title = "RUN ABORTED"
		}
		drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  Best: %d  |  SPACE to retry", s.Score, s.Best), pal)
	}
}

func drawPipe(dst *core.Screen, vp core.Viewport, p PipeView, pal Palette) {
	top := vp.Rect(p.Top)
	bottom := vp.Rect(p.Bottom)

	dst.DrawRect(top, PipeChar, pal.Pipe)
	dst.DrawRect(bottom, PipeChar, pal.Pipe)

	if top.H > 0 {
		dst.DrawHLine(top.X, top.Bottom()-1, top.W, PipeCapTop, pal.PipeCap)
	}
	if bottom.H > 0 {
		dst.DrawHLine(bottom.X, bottom.Y, bottom.W, PipeCapBottom, pal.PipeCap)
	}
}

// drawGround draws a two-tone pattern shifted by the scroll offset.
func drawGround(dst *core.Screen, vp core.Viewport, s Snapshot, pal Palette) {
	top := vp.Y(s.World.Height - s.World.GroundHeight)
	tile := s.World.GroundTile
	for y := top; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			if y == top {
				dst.SetColor(x, y, GrassChar, pal.Grass)
				continue
			}
			ch := GroundDark
			if tile > 0 {
				wx := float64(x)*s.World.Width/float64(dst.Width()) - s.GroundX
				m := math.Mod(wx, tile)
				if m < 0 {
					m += tile
				}
				if m >= tile/2 {
					ch = GroundLight
				}
			}
			dst.SetColor(x, y, ch, pal.Ground)
		}
	}
}

func drawBird(dst *core.Screen, vp core.Viewport, b BirdView, pal Palette) {
	box := vp.Rect(b.Box)
	dst.DrawRect(box, BirdBody, pal.Bird)
	dst.SetColor(box.Right()-1, box.Y+box.H/2, BirdGlyph(b.Rotation), pal.Accent)
}

// BirdGlyph picks a beak character for the bird's tilt in degrees.
func BirdGlyph(rotation float64) rune {
	switch {
	case rotation < 0:
		return '▲'
	case rotation < 45:
		return '▶'
	default:
		return '▼'
	}
}

func drawStars(dst *core.Screen, vp core.Viewport, skyBottom float64, pal Palette) {
	rows := vp.Y(skyBottom)
	for y := 1; y < rows; y++ {
		for x := 0; x < dst.Width(); x++ {
			if (x*7+y*13)%37 == 0 {
				dst.SetColor(x, y, StarChar, pal.Star)
			}
		}
	}
}

// drawDebug outlines the collision boxes.
func drawDebug(dst *core.Screen, vp core.Viewport, s Snapshot) {
	dst.DrawBox(vp.Rect(s.Bird.Box), core.ColorRed)
	for _, p := range s.Pipes {
		dst.DrawBox(vp.Rect(p.Top), core.ColorRed)
		dst.DrawBox(vp.Rect(p.Bottom), core.ColorRed)
		dst.DrawBox(vp.Rect(p.Gap), core.ColorRed)
	}
}

func drawHUD(dst *core.Screen, s Snapshot, pal Palette) {
	dst.DrawTextColor(2, 0, fmt.Sprintf(" Score: %d ", s.Score), pal.Text)

	right := fmt.Sprintf(" Best: %d ", s.Best)
	if s.Rank > 0 {
		right = fmt.Sprintf(" Rank #%d  Best: %d ", s.Rank, s.Best)
	}
	dst.DrawTextColor(dst.Width()-len([]rune(right))-2, 0, right, pal.Accent)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, pal Palette) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, pal.Text)

	dst.DrawTextColor(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title, pal.Accent)
	dst.DrawTextColor(box.X+(boxW-len([]rune(subtitle)))/2, box.Y+3, subtitle, pal.Text)
}
