package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

const groundTop = 13 * 48.0

func testConfig() *config.PlatformerConfig {
	cfg := config.DefaultPlatformerConfig()
	return &cfg
}

// flatWorld builds cols columns of two-row ground and no goal.
func flatWorld(t *testing.T, cfg *config.PlatformerConfig, cols int) *World {
	t.Helper()
	w, err := NewWorld(cfg, 1, cols, 15, 1)
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}
	for c := range cols {
		if err := w.AddBlock(c, 13, BlockGround); err != nil {
			t.Fatal(err)
		}
		if err := w.AddBlock(c, 14, BlockGround); err != nil {
			t.Fatal(err)
		}
	}
	return w
}

func standAt(p *Player, x float64) {
	p.X = x
	p.Y = groundTop - p.H
	p.VX, p.VY = 0, 0
	p.Grounded = true
}

func TestGridRejectsBadPlacements(t *testing.T) {
	cfg := testConfig()
	w, err := NewWorld(cfg, 1, 10, 15, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.AddBlock(2, 13, BlockGround); err != nil {
		t.Fatalf("first placement failed: %v", err)
	}

	tests := []struct {
		name string
		add  func() error
		want error
	}{
		{"duplicate block", func() error { return w.AddBlock(2, 13, BlockBrick) }, ErrOverlap},
		{"negative column", func() error { return w.AddBlock(-1, 13, BlockGround) }, ErrOutOfBounds},
		{"row past bottom", func() error { return w.AddBlock(0, 15, BlockGround) }, ErrOutOfBounds},
		{"enemy inside block", func() error { return w.AddEnemy(2, 13) }, ErrOverlap},
		{"enemy out of bounds", func() error { return w.AddEnemy(10, 10) }, ErrOutOfBounds},
		{"goal out of bounds", func() error { return w.SetGoal(0, 20) }, ErrOutOfBounds},
		{"end past width", func() error { return w.SetEndColumn(11) }, ErrOutOfBounds},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.add(); !errors.Is(err, tc.want) {
				t.Errorf("error = %v, expected %v", err, tc.want)
			}
		})
	}

	if err := w.AddEnemy(5, 10); err != nil {
		t.Fatalf("AddEnemy() failed: %v", err)
	}
	if err := w.AddBlock(5, 10, BlockBrick); !errors.Is(err, ErrOverlap) {
		t.Errorf("block on enemy spawn: error = %v, expected ErrOverlap", err)
	}
	if err := w.AddBlock(6, 10, BlockDead); err == nil {
		t.Error("placing a dead block should fail")
	}
}

func TestNewWorldSize(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		name       string
		cols, rows int
		ok         bool
	}{
		{"smallest", 1, 1, true},
		{"largest", MaxCols, MaxRows, true},
		{"zero columns", 0, 15, false},
		{"negative rows", 10, -1, false},
		{"too wide", MaxCols + 1, 15, false},
		{"too tall", 10, MaxRows + 1, false},
		{"overflowing width", math.MaxInt / 2, 15, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, err := NewWorld(cfg, 1, tc.cols, tc.rows, 1)
			if tc.ok {
				if err != nil {
					t.Fatalf("NewWorld(%d, %d) failed: %v", tc.cols, tc.rows, err)
				}
				if w.Cols() != tc.cols || w.Rows() != tc.rows {
					t.Errorf("size = %dx%d, expected %dx%d", w.Cols(), w.Rows(), tc.cols, tc.rows)
				}
				return
			}
			if !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("NewWorld(%d, %d) error = %v, expected ErrOutOfBounds", tc.cols, tc.rows, err)
			}
		})
	}
}

func TestParseBlockType(t *testing.T) {
	for _, bt := range []BlockType{BlockGround, BlockPipeBody, BlockPipeTop, BlockBrick, BlockQBlock, BlockEmpty} {
		got, err := ParseBlockType(bt.String())
		if err != nil || got != bt {
			t.Errorf("ParseBlockType(%q) = %v, %v", bt.String(), got, err)
		}
	}
	if _, err := ParseBlockType("dead"); err == nil {
		t.Error("dead should not be parseable")
	}
	if _, err := ParseBlockType("lava"); err == nil {
		t.Error("unknown type should fail")
	}
}

func TestResolveYSnapsToHighestTop(t *testing.T) {
	blocks := blockSlice{
		{Box: tileBox(0, 13, 48), Type: BlockGround},
		{Box: tileBox(0, 12, 48), Type: BlockGround},
		{Box: tileBox(1, 12, 48), Type: BlockDead},
	}
	// Falling 60 units into both rows; the shallower row wins regardless of order.
	box := core.NewBox(10, 12*48-48+60, 36, 48)
	for _, order := range []blockSlice{blocks, {blocks[1], blocks[0], blocks[2]}} {
		top, hit, struck := resolveY(order, box, 60, 48)
		if !hit || struck != -1 {
			t.Fatalf("hit=%v struck=%d", hit, struck)
		}
		if top+48 != 12*48 {
			t.Errorf("feet = %v, expected %v", top+48, 12*48.0)
		}
	}
}

func TestResolveYStruckTieBreak(t *testing.T) {
	blocks := blockSlice{
		{Box: tileBox(1, 9, 48), Type: BlockQBlock}, // 48..96
		{Box: tileBox(2, 9, 48), Type: BlockQBlock}, // 96..144
	}
	// Player spans 80..116: 16 units under block 0, 20 under block 1.
	box := core.NewBox(80, 470, 36, 48)
	top, hit, struck := resolveY(blocks, box, -20, 48)
	if !hit {
		t.Fatal("expected a hit")
	}
	if top != 480 {
		t.Errorf("top = %v, expected 480", top)
	}
	if struck != 1 {
		t.Errorf("struck = %d, expected widest overlap (1)", struck)
	}

	// Equal overlap: the lower X wins.
	box = core.NewBox(78, 470, 36, 48)
	if _, _, struck := resolveY(blocks, box, -20, 48); struck != 0 {
		t.Errorf("struck = %d, expected lowest X (0)", struck)
	}
}

func TestResolveXUsesVelocitySign(t *testing.T) {
	wall := blockSlice{{Box: tileBox(5, 12, 48), Type: BlockPipeBody}} // 240..288

	left, hit := resolveX(wall, core.NewBox(210, 576, 36, 48), 10, 36)
	if !hit || left != 240-36 {
		t.Errorf("moving right: left=%v hit=%v", left, hit)
	}

	left, hit = resolveX(wall, core.NewBox(280, 576, 36, 48), -10, 36)
	if !hit || left != 288 {
		t.Errorf("moving left: left=%v hit=%v", left, hit)
	}

	if _, hit := resolveX(wall, core.NewBox(250, 576, 36, 48), 0, 36); hit {
		t.Error("zero velocity should not resolve")
	}
}

func TestNoTunnelingOnLanding(t *testing.T) {
	cfg := testConfig()
	for _, height := range []float64{0, 50, 137.5, 300, 480} {
		w := flatWorld(t, cfg, 20)
		p := NewPlayer(cfg)
		p.X = 200
		p.Y = groundTop - p.H - height

		for range 120 {
			w.Step(p, Keys{}, false)
			if p.Feet() > groundTop+1e-9 {
				t.Fatalf("drop %v: feet %v below ground top %v", height, p.Feet(), groundTop)
			}
		}
		if !p.Grounded {
			t.Errorf("drop %v: player should be grounded", height)
		}
	}
}

func TestNoBlockOverlapWhileRunning(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 80)
	for _, pos := range [][2]int{{8, 12}, {8, 11}, {14, 9}, {15, 9}, {16, 9}, {22, 12}} {
		if err := w.AddBlock(pos[0], pos[1], BlockBrick); err != nil {
			t.Fatal(err)
		}
	}
	p := NewPlayer(cfg)
	standAt(p, 100)

	shrink := func(b core.Box) core.Box {
		return core.Box{Left: b.Left + 1e-6, Right: b.Right - 1e-6, Top: b.Top + 1e-6, Bottom: b.Bottom - 1e-6}
	}

	for tick := range 600 {
		keys := Keys{Right: tick%200 < 150, Left: tick%200 >= 170, Run: tick%3 == 0}
		if tick%25 == 0 {
			p.Jump()
		}
		w.Step(p, keys, false)
		if p.Dead {
			t.Fatalf("tick %d: player died at %+v", tick, p.Box())
		}
		for _, b := range w.Blocks {
			if core.Overlaps(shrink(p.Box()), b.Box) {
				t.Fatalf("tick %d: player %+v inside block %+v", tick, p.Box(), b)
			}
		}
	}
}

func TestWalkDisplacement(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 40)
	p := NewPlayer(cfg)
	standAt(p, 100)

	for range 60 {
		w.Step(p, Keys{Right: true}, false)
	}

	// v_n = a*f/(1-f) * (1 - f^n); the walk cap is never reached.
	phys := cfg.Physics
	vInf := phys.Acceleration * phys.Friction / (1 - phys.Friction)
	want := 100 + 60*vInf - vInf*phys.Friction/(1-phys.Friction)*(1-math.Pow(phys.Friction, 60))
	if math.Abs(p.X-want) > 1e-6 {
		t.Errorf("X after 60 ticks = %v, expected %v", p.X, want)
	}
	if math.Abs(want-436) > 0.5 {
		t.Errorf("analytic displacement %v drifted from 336", want-100)
	}
	if !p.Grounded || p.Feet() != groundTop {
		t.Errorf("player should stay on the ground, feet=%v", p.Feet())
	}
}

func TestQBlockHitFromBelow(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 20)
	if err := w.AddBlock(4, 9, BlockQBlock); err != nil {
		t.Fatal(err)
	}
	qIdx := len(w.Blocks) - 1

	p := NewPlayer(cfg)
	standAt(p, 198)
	p.Jump()

	for range 10 {
		p.Update(Keys{}, w, w)
		if p.Coins > 0 {
			break
		}
	}

	if p.Score != 100 || p.Coins != 1 {
		t.Errorf("score=%d coins=%d, expected 100 and 1", p.Score, p.Coins)
	}
	if w.Blocks[qIdx].Type != BlockEmpty {
		t.Errorf("block type = %v, expected empty", w.Blocks[qIdx].Type)
	}
	if p.Y != 480 || p.VY != 0 {
		t.Errorf("player should snap under the block: y=%v vy=%v", p.Y, p.VY)
	}
	if len(w.Items) != 1 {
		t.Fatalf("items = %d, expected 1", len(w.Items))
	}
	it := w.Items[0]
	if it.X != 4*48 || it.Y != 8*48 {
		t.Errorf("item at (%v,%v), expected one tile above the block (%v,%v)", it.X, it.Y, 4*48.0, 8*48.0)
	}

	// A spent block gives nothing more.
	w.Bump(qIdx, p)
	if p.Score != 100 || len(w.Items) != 1 {
		t.Error("bumping an empty block should have no effect")
	}
}

func TestBrickBreakPrunedNextTick(t *testing.T) {
	tests := []struct {
		name      string
		big       bool
		wantBreak bool
	}{
		{"small bounces off", false, false},
		{"big breaks", true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			w := flatWorld(t, cfg, 20)
			if err := w.AddBlock(4, 9, BlockBrick); err != nil {
				t.Fatal(err)
			}
			p := NewPlayer(cfg)
			if tc.big {
				p.setPower(PowerBig)
			}
			standAt(p, 198)
			p.Jump()

			for range 10 {
				w.Step(p, Keys{}, false)
				if p.VY >= 0 {
					break
				}
			}

			found := false
			for _, b := range w.Blocks {
				if b.Col == 4 && b.Row == 9 {
					found = true
				}
				if b.Type == BlockDead {
					t.Errorf("dead block survived the prune: %+v", b)
				}
			}
			if found == tc.wantBreak {
				t.Errorf("brick present = %v, expected %v", found, !tc.wantBreak)
			}
			if tc.wantBreak && p.Score != cfg.Scoring.Brick {
				t.Errorf("score = %d, expected %d", p.Score, cfg.Scoring.Brick)
			}
		})
	}
}

func TestGrowShrinkKeepsFeet(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(cfg)
	standAt(p, 100)
	feet := p.Feet()

	p.PowerUp(ItemMushroom)
	if p.Power != PowerBig || p.H != cfg.Player.BigH || p.W != cfg.Player.BigW {
		t.Fatalf("mushroom should make the player big: %+v", p)
	}
	if p.Feet() != feet {
		t.Errorf("feet after grow = %v, expected %v", p.Feet(), feet)
	}

	p.TakeDamage()
	if p.Power != PowerSmall || p.H != cfg.Player.SmallH {
		t.Fatalf("damage should make the player small: %+v", p)
	}
	if p.Feet() != feet {
		t.Errorf("feet after shrink = %v, expected %v", p.Feet(), feet)
	}
	if !p.Invincible || p.InvincibleTicks != cfg.Player.GraceTicks {
		t.Errorf("expected grace invincibility, got %v/%d", p.Invincible, p.InvincibleTicks)
	}

	// Invincible: further damage is ignored.
	p.TakeDamage()
	if p.Dead {
		t.Error("damage during grace window should be ignored")
	}

	// A second mushroom while big only scores.
	p.Invincible = false
	p.PowerUp(ItemMushroom)
	p.PowerUp(ItemMushroom)
	if p.Power != PowerBig || p.Feet() != feet {
		t.Errorf("second mushroom changed state: %v feet=%v", p.Power, p.Feet())
	}
	if p.Score != 3*cfg.Scoring.PowerUp {
		t.Errorf("score = %d, expected %d", p.Score, 3*cfg.Scoring.PowerUp)
	}
}

func TestDeathFall(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 20)
	p := NewPlayer(cfg)
	standAt(p, 100)
	p.VX = 5

	p.TakeDamage()
	if !p.Dead {
		t.Fatal("small player should die from damage")
	}
	vy := p.VY
	p.Die()
	if p.VY != vy {
		t.Error("Die() should be idempotent")
	}

	x, y := p.X, p.Y
	w.Step(p, Keys{Right: true}, false)
	if p.X != x {
		t.Errorf("dead player moved horizontally: %v -> %v", x, p.X)
	}
	if p.Y != y+vy {
		t.Errorf("y = %v, expected %v", p.Y, y+vy)
	}
	if want := vy + cfg.Physics.Gravity*cfg.Physics.DeathGravityScale; p.VY != want {
		t.Errorf("vy = %v, expected half gravity step %v", p.VY, want)
	}

	// No collision: the body falls through the ground.
	for range 120 {
		w.Step(p, Keys{}, false)
	}
	if p.Y <= groundTop {
		t.Errorf("dead player should fall through the floor, y=%v", p.Y)
	}

	p.Jump()
	if p.VY < 0 {
		t.Error("dead player cannot jump")
	}
}

func TestFallingIntoPitKills(t *testing.T) {
	cfg := testConfig()
	w, err := NewWorld(cfg, 1, 20, 15, 1)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(cfg)

	var died bool
	for range 120 {
		if w.Step(p, Keys{}, false).PlayerDied {
			died = true
			break
		}
	}
	if !died || !p.Dead {
		t.Error("player should die after leaving the playfield")
	}
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	cfg := testConfig()
	p := NewPlayer(cfg)
	p.Grounded = false
	p.Jump()
	if p.VY != 0 {
		t.Error("airborne jump should be ignored")
	}

	standAt(p, 100)
	p.Jump()
	if p.VY != -cfg.Physics.JumpForce || p.Grounded {
		t.Errorf("jump: vy=%v grounded=%v", p.VY, p.Grounded)
	}
}
