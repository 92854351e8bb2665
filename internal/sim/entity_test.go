package sim

import (
	"testing"
)

func placeEnemy(t *testing.T, w *World, col int, x, y float64) *Enemy {
	t.Helper()
	if err := w.AddEnemy(col, 10); err != nil {
		t.Fatal(err)
	}
	e := w.Enemies[len(w.Enemies)-1]
	e.X, e.Y = x, y
	return e
}

func TestBigPlayerSideHit(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 20)
	p := NewPlayer(cfg)
	p.setPower(PowerBig)
	standAt(p, 300)
	e := placeEnemy(t, w, 10, 349, groundTop-cfg.Enemy.Height)

	res := w.Step(p, Keys{}, false)

	if p.Power != PowerSmall {
		t.Errorf("power = %v, expected small", p.Power)
	}
	if !p.Invincible || p.InvincibleTicks != cfg.Player.GraceTicks {
		t.Errorf("expected grace invincibility, got %v/%d", p.Invincible, p.InvincibleTicks)
	}
	if p.Feet() != groundTop {
		t.Errorf("feet = %v, expected %v", p.Feet(), groundTop)
	}
	if e.Dead || len(w.Enemies) != 1 || res.Kills != 0 {
		t.Error("enemy should survive a side hit")
	}
	if p.Dead {
		t.Error("big player should not die from one hit")
	}
}

func TestSmallPlayerSideHitDies(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 20)
	p := NewPlayer(cfg)
	standAt(p, 300)
	placeEnemy(t, w, 10, 337, groundTop-cfg.Enemy.Height)

	res := w.Step(p, Keys{}, false)
	if !p.Dead || !res.PlayerDied {
		t.Error("small player should die from a side hit")
	}
}

func TestStomp(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 20)
	p := NewPlayer(cfg)
	p.X, p.Y = 306, groundTop-cfg.Enemy.Height-p.H-3
	p.VY = 5
	placeEnemy(t, w, 10, 300, groundTop-cfg.Enemy.Height)

	res := w.Step(p, Keys{}, false)

	if res.Kills != 1 || len(w.Enemies) != 0 {
		t.Fatalf("kills=%d enemies=%d, expected a stomp", res.Kills, len(w.Enemies))
	}
	if p.VY != -cfg.Physics.JumpForce/2 {
		t.Errorf("bounce vy = %v, expected %v", p.VY, -cfg.Physics.JumpForce/2)
	}
	if p.Score != cfg.Scoring.Stomp {
		t.Errorf("score = %d, expected %d", p.Score, cfg.Scoring.Stomp)
	}
	if p.Dead {
		t.Error("stomping player should not die")
	}
}

func TestInvinciblePlayerKillsOnContact(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 20)
	p := NewPlayer(cfg)
	standAt(p, 300)
	p.PowerUp(ItemStar)
	placeEnemy(t, w, 10, 337, groundTop-cfg.Enemy.Height)

	res := w.Step(p, Keys{}, false)
	if res.Kills != 1 || p.Dead {
		t.Errorf("kills=%d dead=%v, expected invincible kill", res.Kills, p.Dead)
	}
	if p.Score != cfg.Scoring.PowerUp+cfg.Scoring.Stomp {
		t.Errorf("score = %d", p.Score)
	}
	if p.InvincibleTicks != cfg.Player.StarTicks-1 {
		t.Errorf("invincibility should count down once per tick, got %d", p.InvincibleTicks)
	}
}

func TestEnemyTurnsAtWall(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 20)
	if err := w.AddBlock(6, 12, BlockPipeBody); err != nil {
		t.Fatal(err)
	}
	if err := w.AddEnemy(10, 12); err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(cfg)
	e := w.Enemies[0]

	for range 60 {
		w.Step(p, Keys{}, false)
	}
	if e.VX <= 0 {
		t.Errorf("enemy should have turned around, vx=%v", e.VX)
	}
	if e.X < 7*48 {
		t.Errorf("enemy passed through the pipe: x=%v", e.X)
	}
	if e.Y+e.H != groundTop {
		t.Errorf("enemy should walk on the ground, bottom=%v", e.Y+e.H)
	}
}

func TestEnemyFallsOutOfWorld(t *testing.T) {
	cfg := testConfig()
	w, err := NewWorld(cfg, 1, 20, 15, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.AddEnemy(3, 10); err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(cfg)
	p.Dead = true

	for range 60 {
		w.Step(p, Keys{}, false)
	}
	if len(w.Enemies) != 0 {
		t.Error("enemy below the playfield should be pruned")
	}
}

func TestActivityRange(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 20)
	if err := w.AddEnemy(19, 12); err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(cfg)
	e := w.Enemies[0]
	x := e.X

	w.Step(p, Keys{}, false)
	if e.X != x {
		t.Errorf("enemy outside the activity range moved: %v -> %v", x, e.X)
	}
}

func TestFrozenStepIgnoresPlayer(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 20)
	p := NewPlayer(cfg)
	standAt(p, 300)
	placeEnemy(t, w, 10, 337, groundTop-cfg.Enemy.Height)

	x, y := p.X, p.Y
	w.Step(p, Keys{Right: true}, true)
	if p.Dead {
		t.Error("frozen player should not take damage")
	}
	if p.X != x || p.Y != y {
		t.Error("frozen player should not move")
	}
}

func TestMushroomPickup(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 20)
	p := NewPlayer(cfg)
	standAt(p, 100)
	w.SpawnItem(p.X, p.Y, ItemMushroom)

	res := w.Step(p, Keys{}, false)
	if res.Pickups != 1 || len(w.Items) != 0 {
		t.Fatalf("pickups=%d items=%d", res.Pickups, len(w.Items))
	}
	if p.Power != PowerBig || p.Feet() != groundTop {
		t.Errorf("power=%v feet=%v", p.Power, p.Feet())
	}
	if p.Score != cfg.Scoring.PowerUp {
		t.Errorf("score = %d, expected %d", p.Score, cfg.Scoring.PowerUp)
	}
}

func TestStarKeepsHopping(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 40)
	p := NewPlayer(cfg)
	w.SpawnItem(1000, 500, ItemStar)
	star := w.Items[0]

	hops := 0
	for range 120 {
		w.Step(p, Keys{}, false)
		if star.VY == -cfg.Item.StarHop {
			hops++
		}
		if star.Y+star.H > groundTop+1e-9 {
			t.Fatalf("star sank into the ground: bottom=%v", star.Y+star.H)
		}
	}
	if hops < 2 {
		t.Errorf("star hopped %d times, expected a perpetual hop", hops)
	}
	if !star.Active {
		t.Error("star should still be active")
	}
}

func TestMushroomComesToRest(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 40)
	p := NewPlayer(cfg)
	w.SpawnItem(1000, 500, ItemMushroom)
	m := w.Items[0]

	for range 60 {
		w.Step(p, Keys{}, false)
	}
	if m.VY != 0 || m.Y+m.H != groundTop {
		t.Errorf("mushroom should slide on the ground: vy=%v bottom=%v", m.VY, m.Y+m.H)
	}
	if m.VX != cfg.Item.LaunchVX {
		t.Errorf("mushroom drift = %v, expected %v", m.VX, cfg.Item.LaunchVX)
	}
}

func TestItemExpiresBelowPlayfield(t *testing.T) {
	cfg := testConfig()
	w, err := NewWorld(cfg, 1, 20, 15, 1)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(cfg)
	p.Dead = true
	w.SpawnItem(500, 500, ItemMushroom)

	for range 60 {
		w.Step(p, Keys{}, false)
	}
	if len(w.Items) != 0 {
		t.Error("fallen item should expire and be pruned")
	}
}

func TestGoalTriggersOnce(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 20)
	if err := w.SetGoal(5, 3); err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(cfg)
	standAt(p, 250)

	if res := w.Step(p, Keys{}, false); !res.Cleared {
		t.Fatal("touching the pole should clear the level")
	}
	for range 5 {
		if res := w.Step(p, Keys{}, false); res.Cleared {
			t.Fatal("goal reported completion twice")
		}
	}
	if !w.Goal.Triggered {
		t.Error("goal should stay triggered")
	}

	for range 100 {
		if w.Step(p, Keys{}, true).Cleared {
			t.Fatal("triggered goal reported completion while frozen")
		}
	}
	if want := w.Goal.Y + cfg.Goal.FlagStop; w.Goal.FlagY != want {
		t.Errorf("flag y = %v, expected to hold at %v", w.Goal.FlagY, want)
	}
}

func TestGoalIgnoresDeadPlayer(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 20)
	if err := w.SetGoal(5, 3); err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(cfg)
	standAt(p, 250)
	p.Die()

	if w.Step(p, Keys{}, false).Cleared || w.Goal.Triggered {
		t.Error("dead player should not trigger the goal")
	}
}

func TestGoalMissesOutsideHitbox(t *testing.T) {
	cfg := testConfig()
	w := flatWorld(t, cfg, 20)
	if err := w.SetGoal(5, 3); err != nil {
		t.Fatal(err)
	}
	p := NewPlayer(cfg)
	// Inside the pole tile but left of the narrow strip.
	standAt(p, 240+cfg.Goal.HitboxLeft-p.W)

	if w.Step(p, Keys{}, false).Cleared {
		t.Error("goal should only trigger on the narrow hitbox")
	}
}

func buildScenario(t *testing.T, seed int64) (*World, *Player) {
	t.Helper()
	cfg := testConfig()
	w, err := NewWorld(cfg, 1, 60, 15, seed)
	if err != nil {
		t.Fatal(err)
	}
	for c := range 60 {
		if c == 30 || c == 31 {
			continue
		}
		_ = w.AddBlock(c, 13, BlockGround)
		_ = w.AddBlock(c, 14, BlockGround)
	}
	_ = w.AddBlock(6, 9, BlockQBlock)
	_ = w.AddBlock(7, 9, BlockBrick)
	_ = w.AddBlock(8, 9, BlockQBlock)
	_ = w.AddBlock(14, 12, BlockPipeBody)
	_ = w.AddBlock(14, 11, BlockPipeTop)
	_ = w.AddEnemy(20, 10)
	_ = w.AddEnemy(40, 10)
	_ = w.SetGoal(55, 3)
	return w, NewPlayer(cfg)
}

func TestStepDeterminism(t *testing.T) {
	run := func() Snapshot {
		w, p := buildScenario(t, 42)
		for tick := range 400 {
			if tick%17 == 0 {
				p.Jump()
			}
			w.Step(p, Keys{Right: tick%50 < 40, Run: tick > 200}, false)
		}
		return w.Snapshot(p)
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("determinism failed: hashes differ. Run1=%d, Run2=%d", a.Hash(), b.Hash())
	}
	if a.Player.X != b.Player.X || a.Player.Score != b.Player.Score {
		t.Error("determinism failed: player state differs")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	w, p := buildScenario(t, 1)
	snap := w.Snapshot(p)

	if len(snap.Blocks) != len(w.Blocks) || len(snap.Enemies) != 2 || snap.Goal == nil {
		t.Fatalf("snapshot missing state: %d blocks, %d enemies", len(snap.Blocks), len(snap.Enemies))
	}
	snap.Blocks[0].Type = BlockDead
	if w.Blocks[0].Type == BlockDead {
		t.Error("snapshot should not alias world blocks")
	}
	if snap.LevelComplete || snap.PlayerDead {
		t.Error("fresh snapshot should report an idle level")
	}
}
