package dodge

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/starfield-dodge/internal/config"
	"github.com/vovakirdan/starfield-dodge/internal/core"
	"github.com/vovakirdan/starfield-dodge/internal/games/dodge/sim"
)

// shipSprite is drawn centered on the player's cell.
var shipSprite = []string{
	" /^\\ ",
	"<[=]>",
	" ' ' ",
}

// Render draws the HUD, the playfield, and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.loop == nil {
		g.renderOverlay(dst, []string{"Window too small", fmt.Sprintf("Need at least %dx%d", minWidth, minHeight)})
		return
	}

	g.renderHUD(dst)

	f := g.view.frame
	sx, sy := g.cellScale(dst, f.Canvas)

	for _, p := range f.Particles {
		col, row := toCell(p.Pos.X, sx), toCell(p.Pos.Y, sy)+hudHeight
		if dst.Get(col, row) != ' ' {
			continue
		}
		if p.Radius >= 1.5 {
			dst.SetColor(col, row, '*', core.ColorWhite)
		} else {
			dst.SetColor(col, row, '.', core.ColorGray)
		}
	}

	for _, o := range f.Obstacles {
		g.renderObstacle(dst, o, sx, sy)
	}

	g.renderShip(dst, f.Player, sx, sy)

	switch {
	case g.view.summary:
		g.renderSummary(dst)
	case g.paused:
		g.renderOverlay(dst, []string{"Paused", "Press P to continue"})
	}
}

// cellScale returns canvas units per cell on each axis.
func (g *Game) cellScale(dst *core.Screen, c sim.Canvas) (float64, float64) {
	cols := max(dst.Width(), 1)
	rows := max(dst.Height()-hudHeight, 1)
	return c.W / float64(cols), c.H / float64(rows)
}

func toCell(v, scale float64) int {
	if scale <= 0 {
		return 0
	}
	return int(math.Floor(v / scale))
}

func (g *Game) renderHUD(dst *core.Screen) {
	best := "--:--.---"
	if g.view.hasBest {
		best = sim.FormatDuration(g.view.best)
	}
	hud := fmt.Sprintf(" %s  Time %s  Best %s  [%s]",
		Title, sim.FormatDuration(g.view.elapsed), best, g.Difficulty())
	dst.DrawTextColor(0, 0, hud, core.ColorBrightCyan)
}

func (g *Game) renderObstacle(dst *core.Screen, o sim.Obstacle, sx, sy float64) {
	x0 := toCell(o.Pos.X, sx)
	x1 := int(math.Ceil((o.Pos.X+o.Size)/sx)) - 1
	y0 := toCell(o.Pos.Y, sy)
	y1 := int(math.Ceil((o.Pos.Y+o.Size)/sy)) - 1

	for y := max(y0, 0); y <= y1; y++ {
		row := y + hudHeight
		if row >= dst.Height() {
			break
		}
		for x := max(x0, 0); x <= x1 && x < dst.Width(); x++ {
			dst.SetColor(x, row, '▓', core.ColorOrange)
		}
	}
}

func (g *Game) renderShip(dst *core.Screen, p sim.Player, sx, sy float64) {
	col, row := toCell(p.Pos.X, sx), toCell(p.Pos.Y, sy)+hudHeight
	color := core.ColorBrightGreen
	if g.view.summary {
		color = core.ColorBrightRed
	}
	top := row - len(shipSprite)/2
	for dy, line := range shipSprite {
		left := col - len([]rune(line))/2
		for dx, ch := range []rune(line) {
			if ch == ' ' {
				continue
			}
			y := top + dy
			if y < hudHeight {
				continue
			}
			dst.SetColor(left+dx, y, ch, color)
		}
	}
}

func (g *Game) renderSummary(dst *core.Screen) {
	lines := []string{"CRASHED"}
	if rec, ok := g.LastResult(); ok {
		lines = append(lines, "Time "+sim.FormatDuration(rec.Elapsed))
		lines = append(lines, "Best "+sim.FormatDuration(rec.Best))
		if rec.NewRecord {
			lines = append(lines, "New record!")
		}
	}
	lines = append(lines, "", DifficultyRadio(g.selected), "", "R restart  </> difficulty  B menu  Q quit")
	g.renderOverlay(dst, lines)
}

// DifficultyRadio renders the difficulty choices as a radio group with
// the selected one marked.
func DifficultyRadio(selected config.Difficulty) string {
	parts := make([]string, len(config.Difficulties))
	for i, d := range config.Difficulties {
		mark := "( )"
		if d == selected {
			mark = "(*)"
		}
		parts[i] = fmt.Sprintf("%s %d %s", mark, i+1, d)
	}
	return strings.Join(parts, "  ")
}

// renderOverlay draws a bordered box in the middle of the screen with the
// given lines centered inside it.
func (g *Game) renderOverlay(dst *core.Screen, lines []string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}
	boxW := min(maxLen+4, dst.Width())
	boxH := min(len(lines)+2, dst.Height())
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextColor(x, box.Y+1+i, l, core.ColorBrightWhite)
	}
}
