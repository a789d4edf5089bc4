package catch

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-catch/internal/core"
)

// Visual characters for rendering
const (
	BallChar    = '●'
	GroundChar  = '▔'
	BasketLeft  = '\\'
	BasketBase  = '_'
	BasketRight = '/'
)

// viewport maps the world's x/y plane onto the screen rows between the HUD
// and the status line.
type viewport struct {
	left, right float64 // World x at the first and last column
	top, bottom float64 // World y at the first and last play row
	area        core.Rect
}

func (g *Game) viewport(dst *core.Screen) viewport {
	cfg := g.cfg
	span := math.Max(cfg.Agent.BoundX+cfg.Agent.Radius, cfg.Spawn.Spread/2+cfg.Spawn.Radius)
	if span <= 0 {
		span = 1
	}
	bottom := math.Min(cfg.World.GroundY, cfg.Agent.Start[core.AxisY]) - 2
	return viewport{
		left:   -span,
		right:  span,
		top:    cfg.Spawn.Height + 1,
		bottom: bottom,
		area:   core.NewRect(0, 1, dst.Width(), dst.Height()-2),
	}
}

// project returns the screen cell for a world position.
func (v viewport) project(p core.Vec3) (int, int) {
	fx := (p.X() - v.left) / (v.right - v.left)
	fy := (v.top - p.Y()) / (v.top - v.bottom)
	x := v.area.X + int(math.Round(fx*float64(v.area.W-1)))
	y := v.area.Y + int(math.Round(fy*float64(v.area.H-1)))
	return x, y
}

func (v viewport) columns(worldWidth float64) int {
	return int(math.Round(worldWidth / (v.right - v.left) * float64(v.area.W-1)))
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	if dst.Width() < 20 || dst.Height() < 8 {
		dst.DrawText(0, 0, "Terminal too small")
		return
	}
	v := g.viewport(dst)

	g.renderGround(dst, v)
	g.renderBodies(dst, v)
	g.renderAgent(dst, v)
	g.renderHUD(dst)
	g.renderStatus(dst)
	g.renderOverlay(dst)
}

func (g *Game) renderGround(dst *core.Screen, v viewport) {
	_, y := v.project(core.Vec3{0, g.cfg.World.GroundY, 0})
	dst.DrawHLine(v.area.X, y, v.area.W, GroundChar, core.ColorGray)
}

func (g *Game) renderBodies(dst *core.Screen, v viewport) {
	for _, p := range g.BodyPositions() {
		x, y := v.project(p)
		if v.area.Contains(x, y) {
			dst.SetColored(x, y, BallChar, core.ColorOrange)
		}
	}
}

func (g *Game) renderAgent(dst *core.Screen, v viewport) {
	agent := g.rules.Agent()
	cx, y := v.project(agent)
	half := core.Clamp(v.columns(g.cfg.Agent.Radius), 1, v.area.W/4)

	color := core.ColorCyan
	if g.flashes > 0 {
		color = core.ColorBrightGreen
		if g.flash == EventMiss {
			color = core.ColorBrightRed
		}
	}

	dst.SetColored(cx-half, y, BasketLeft, color)
	dst.DrawHLine(cx-half+1, y, 2*half-1, BasketBase, color)
	dst.SetColored(cx+half, y, BasketRight, color)
}

func (g *Game) renderHUD(dst *core.Screen) {
	lvl := g.rules.CurrentLevel()

	left := fmt.Sprintf("Lives: %d/%d", g.rules.Lives(), lvl.Lives)
	if lvl.Target > 0 {
		left = fmt.Sprintf("Target: %d/%d  %s", g.rules.Collected(), lvl.Target, left)
	} else {
		left = fmt.Sprintf("Caught: %d  %s", g.rules.Collected(), left)
	}
	dst.DrawTextColored(1, 0, left, core.ColorWhite)

	name := lvl.Name
	if g.mode == ModeEndless {
		name = "Endless"
	} else if !g.flow.Started() {
		name = "Intro"
	}
	dst.DrawTextCentered(0, name, core.ColorYellow)

	score := fmt.Sprintf("Score: %d", g.rules.Total())
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(score)-1, 0, score, core.ColorWhite)
}

func (g *Game) renderStatus(dst *core.Screen) {
	status := fmt.Sprintf("Time x%.1f  Step %.3fs  Steps %d",
		g.sim.TimeScale(), g.sim.FixedStep(), g.sim.StepsTaken())
	dst.DrawTextColored(1, dst.Height()-1, status, core.ColorGray)
}

type overlayLine struct {
	text  string
	color core.Color
}

func (g *Game) renderOverlay(dst *core.Screen) {
	var lines []overlayLine

	switch {
	case g.paused:
		lines = []overlayLine{
			{"PAUSED", core.ColorYellow},
			{"Press P to resume", core.ColorGray},
		}
	case g.flow.Phase() == PhaseNotStarted && !g.flow.Started():
		lines = []overlayLine{
			{"Press Enter to Start Game!", core.ColorBrightYellow},
			{"←/→ move  Shift boost  P pause", core.ColorGray},
		}
	case g.flow.Phase() == PhaseNotStarted:
		lines = []overlayLine{
			{fmt.Sprintf("%s - Press Enter to start", g.rules.CurrentLevel().Name), core.ColorBrightYellow},
		}
	case g.flow.Won():
		lines = []overlayLine{
			{"Congratulations!", core.ColorBrightGreen},
			{"You have passed all the levels!", core.ColorGreen},
			{fmt.Sprintf("Score: %d | Press R to play again", g.rules.Total()), core.ColorGray},
		}
	case g.flow.Phase() == PhaseCompleted:
		lines = []overlayLine{
			{"Congratulations!", core.ColorBrightGreen},
			{"Press N for the next level", core.ColorGreen},
		}
	case g.flow.Phase() == PhaseFailed:
		lines = []overlayLine{
			{"GAME OVER", core.ColorBrightRed},
			{fmt.Sprintf("Score: %d | Press R to restart", g.rules.Total()), core.ColorGray},
		}
	}
	if len(lines) == 0 {
		return
	}

	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l.text))
	}
	mid := dst.Height() / 2
	box := core.NewRect((dst.Width()-width)/2-2, mid-1, width+4, len(lines)+2)
	if box.X >= 0 && box.Bottom() <= dst.Height()-1 {
		dst.DrawRect(box, ' ')
		dst.DrawBox(box, core.ColorGray)
	}
	for i, l := range lines {
		dst.DrawTextCentered(mid+i, l.text, l.color)
	}
}
