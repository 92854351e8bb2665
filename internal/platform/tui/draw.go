package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/session"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// cellsPerTile is the on-screen width of one tile; tiles are one row tall.
const cellsPerTile = 2

// hudHeight is the number of rows reserved above the playfield.
const hudHeight = 1

// tileGlyphs holds the two runes and colour used for each block type.
var tileGlyphs = map[sim.BlockType]struct {
	runes [cellsPerTile]rune
	color core.Color
}{
	sim.BlockGround:   {[2]rune{'▓', '▓'}, core.ColorGround},
	sim.BlockBrick:    {[2]rune{'▤', '▤'}, core.ColorBrick},
	sim.BlockQBlock:   {[2]rune{'?', '?'}, core.ColorQBlock},
	sim.BlockEmpty:    {[2]rune{'[', ']'}, core.ColorUsedBlock},
	sim.BlockPipeTop:  {[2]rune{'╔', '╗'}, core.ColorPipe},
	sim.BlockPipeBody: {[2]rune{'║', '║'}, core.ColorPipe},
}

// projector maps world units to screen cells.
type projector struct {
	tile    float64
	cameraX float64
	top     int // First world row shown
	y0      int // Screen row of the first world row
}

func (p projector) col(x float64) int {
	return int(math.Round((x - p.cameraX) / p.tile * cellsPerTile))
}

func (p projector) row(y float64) int {
	return int(math.Round(y/p.tile)) - p.top + p.y0
}

func (p projector) span(h float64) int {
	return max(int(math.Round(h/p.tile)), 1)
}

// DrawLevel draws blocks, the flagpole, items, enemies and the player from
// a snapshot. cameraX is the world x at screen column 0; y0 is the screen
// row where the playfield starts. When the screen is shorter than the
// level, the bottom rows are kept.
func DrawLevel(s *core.Screen, snap sim.Snapshot, cameraX float64, y0 int) {
	pr := projector{tile: snap.Tile, cameraX: cameraX, y0: y0}
	pr.top = core.Clamp(snap.Rows-(s.Height()-y0), 0, snap.Rows)
	view := core.NewRect(0, y0, s.Width(), s.Height()-y0)

	for _, b := range snap.Blocks {
		g, ok := tileGlyphs[b.Type]
		if !ok {
			continue
		}
		x, y := pr.col(b.X), pr.row(b.Y)
		if !view.Intersects(core.NewRect(x, y, cellsPerTile, 1)) {
			continue
		}
		for i, r := range g.runes {
			s.SetColored(x+i, y, r, g.color)
		}
	}

	if g := snap.Goal; g != nil {
		x := pr.col(g.X + snap.Tile/2)
		top, bottom := pr.row(g.Y), pr.row(g.Y+g.PoleHeight)
		s.SetColored(x, top, 'o', core.ColorPole)
		for y := top + 1; y < bottom; y++ {
			s.SetColored(x, y, '|', core.ColorPole)
		}
		s.DrawTextColored(x-2, pr.row(g.FlagY), "◀■", core.ColorFlag)
	}

	for _, it := range snap.Items {
		x, y := pr.col(it.X), pr.row(it.Y)
		switch it.Kind {
		case sim.ItemMushroom:
			s.DrawTextColored(x, y, "♠♠", core.ColorMushroom)
		case sim.ItemStar:
			s.DrawTextColored(x, y, "**", core.ColorStar)
		}
	}

	for _, e := range snap.Enemies {
		glyph := "ᗣᗣ"
		if e.Frame == 1 {
			glyph = "ᗢᗢ"
		}
		s.DrawTextColored(pr.col(e.X), pr.row(e.Y), glyph, core.ColorEnemy)
	}

	drawPlayer(s, pr, snap.Player)
}

func drawPlayer(s *core.Screen, pr projector, p sim.PlayerView) {
	color := core.ColorPlayer
	if p.Power != sim.PowerSmall {
		color = core.ColorPlayerBig
	}
	if p.Invincible && (p.InvincibleTicks/4)%2 == 0 {
		color = core.ColorInvincible
	}

	body := "o>"
	switch {
	case p.Dead:
		body = "xx"
	case p.FacingRight && p.Frame == 1:
		body = "o»"
	case !p.FacingRight && p.Frame == 1:
		body = "«o"
	case !p.FacingRight:
		body = "<o"
	}

	x, y := pr.col(p.X), pr.row(p.Y)
	rows := pr.span(p.H)
	for i := range rows - 1 {
		s.DrawTextColored(x, y+i, "██", color)
	}
	s.DrawTextColored(x, y+rows-1, body, color)
}

// DrawGame draws the HUD, the visible playfield and any state overlay.
func DrawGame(s *core.Screen, v session.View) {
	s.Clear()

	cam := v.CameraX
	// Wide terminals see past the simulated view; never past the level end.
	if span := float64(s.Width()) / cellsPerTile * v.Tile; cam+span > v.EndX {
		cam = max(v.EndX-span, 0)
	}

	snap := v.Snapshot
	if v.State == session.StatePlaying && !v.Paused {
		snap.Player = extrapolate(snap.Player, v.Alpha)
	}
	DrawLevel(s, snap, cam, hudHeight)
	drawHUD(s, v)

	mid := s.Height() / 2
	switch {
	case v.Paused:
		drawBanner(s, mid, "PAUSED", "P to resume  |  B to menu")
	case v.State == session.StateClearing:
		drawBanner(s, mid, "COURSE CLEAR!", fmt.Sprintf("Score %d", v.Player.Score))
	case v.State == session.StateGameOver:
		drawBanner(s, mid, "GAME OVER", "R to restart  |  B to menu  |  Q to quit")
	}
}

func drawHUD(s *core.Screen, v session.View) {
	for x := range s.Width() {
		s.SetColored(x, 0, ' ', core.ColorHUD)
	}
	title := v.Title
	if title == "" {
		title = v.Builder
	}
	hud := fmt.Sprintf(" SCORE %06d  COINS x%02d  WORLD %d %s  LIVES %d",
		v.Player.Score, v.Player.Coins, v.Index, title, v.Lives)
	if v.Player.Power != sim.PowerSmall {
		hud += "  " + v.Player.Power.String()
	}
	if v.Player.Invincible {
		hud += "  STAR"
	}
	s.DrawTextColored(0, 0, hud, core.ColorHUD)
}

// extrapolate moves the player along its velocity by the fraction of a
// tick the clock has banked, so motion stays smooth between ticks.
func extrapolate(p sim.PlayerView, alpha float64) sim.PlayerView {
	p.X += p.VX * alpha
	p.Y += p.VY * alpha
	return p
}

func drawBanner(s *core.Screen, y int, title, hint string) {
	w := max(len([]rune(title)), len([]rune(hint))) + 4
	x := (s.Width() - w) / 2
	s.DrawRect(core.NewRect(x, y-1, w, 4), ' ', core.ColorDefault)
	s.DrawBox(core.NewRect(x, y-1, w, 4))
	s.DrawTextCentered(y, title, core.ColorWarning)
	s.DrawTextCentered(y+1, hint, core.ColorHUD)
}
