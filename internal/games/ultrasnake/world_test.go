package ultrasnake

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/ultrasnake/internal/config"
	"github.com/vovakirdan/ultrasnake/internal/core"
)

const normalStep = 110 * time.Millisecond

// newTestWorld starts a normal-difficulty world with no power-up on the grid.
func newTestWorld(t *testing.T, opponent bool) *World {
	t.Helper()
	w := NewWorld()
	w.Reset(Options{
		Rules:           config.DefaultSnakeConfig(),
		Difficulty:      config.DifficultyNormal,
		OpponentEnabled: opponent,
		Seed:            7,
	})
	w.Drain()
	w.power = nil
	return w
}

func testOpponent(head core.Point, dir core.Direction, interval time.Duration) *Actor {
	o := newActor(RoleOpponent, head, dir, 3, interval)
	o.Health, o.MaxHealth = 100, 100
	o.EvadeBias = 0.45
	return o
}

func hasEvent(events []core.Event, want core.Event) bool {
	for _, e := range events {
		if reflect.DeepEqual(e, want) {
			return true
		}
	}
	return false
}

func countEvents(events []core.Event, name string) int {
	n := 0
	for _, e := range events {
		if e.Name() == name {
			n++
		}
	}
	return n
}

func TestResetLayout(t *testing.T) {
	w := newTestWorld(t, true)

	if w.player.Head() != (core.Point{X: 10, Y: 12}) || w.player.Dir != core.DirRight {
		t.Errorf("player head = %v dir = %v, expected (10,12) right", w.player.Head(), w.player.Dir)
	}
	if w.opponent.Head() != (core.Point{X: 30, Y: 12}) || w.opponent.Dir != core.DirLeft {
		t.Errorf("opponent head = %v dir = %v, expected (30,12) left", w.opponent.Head(), w.opponent.Dir)
	}
	if w.opponent.Interval != 104500*time.Microsecond {
		t.Errorf("opponent interval = %v, expected 104.5ms", w.opponent.Interval)
	}
	if w.lives != 3 || w.score != 0 || w.ammo != 0 || !w.running {
		t.Errorf("lives=%d score=%d ammo=%d running=%v, expected 3/0/0/true", w.lives, w.score, w.ammo, w.running)
	}
	if w.player.Occupies(w.food) || w.opponent.Occupies(w.food) {
		t.Errorf("food %v spawned on a snake", w.food)
	}
}

func TestOpponentIntervalClamped(t *testing.T) {
	tests := []struct {
		preset   config.DifficultyPreset
		expected time.Duration
	}{
		{config.DifficultyEasy, 132 * time.Millisecond},
		{config.DifficultyNormal, 104500 * time.Microsecond},
		{config.DifficultyHard, 76 * time.Millisecond},
	}

	for _, tc := range tests {
		rules := config.DefaultSnakeConfig()
		w := NewWorld()
		w.Reset(Options{Rules: rules, Difficulty: tc.preset, OpponentEnabled: true, Seed: 1})
		if w.opponent.Interval != tc.expected {
			t.Errorf("%s opponent interval = %v, expected %v", tc.preset, w.opponent.Interval, tc.expected)
		}

		rules.Difficulty.Hard.OpponentStepFactor = 0.1
		w.Reset(Options{Rules: rules, Difficulty: config.DifficultyHard, OpponentEnabled: true, Seed: 1})
		if w.opponent.Interval != 70*time.Millisecond {
			t.Errorf("opponent interval = %v, expected clamp to 70ms", w.opponent.Interval)
		}
	}
}

func TestPlayerEatsFood(t *testing.T) {
	w := newTestWorld(t, false)
	w.player = newActor(RolePlayer, core.Point{X: 10, Y: 10}, core.DirRight, 3, normalStep)
	w.food = core.Point{X: 11, Y: 10}

	w.Update(normalStep)

	if w.player.Head() != (core.Point{X: 11, Y: 10}) {
		t.Errorf("head = %v, expected (11,10)", w.player.Head())
	}
	if len(w.player.Body) != 4 {
		t.Errorf("len(body) = %d, expected 4", len(w.player.Body))
	}
	if w.score != 10 {
		t.Errorf("score = %d, expected 10", w.score)
	}
	if w.food == (core.Point{X: 11, Y: 10}) || w.player.Occupies(w.food) {
		t.Errorf("food = %v, expected it relocated off the player", w.food)
	}
	events := w.Drain()
	if !hasEvent(events, FoodEaten{By: RolePlayer, At: core.Point{X: 11, Y: 10}}) {
		t.Errorf("events %v missing FoodEaten", events)
	}
	if !hasEvent(events, ScoreChanged{Score: 10}) {
		t.Errorf("events %v missing ScoreChanged", events)
	}

	// Length stays put on a plain step.
	w.food = core.Point{X: 0, Y: 0}
	w.power = nil
	w.Update(normalStep)
	if len(w.player.Body) != 4 {
		t.Errorf("len(body) = %d after a plain step, expected 4", len(w.player.Body))
	}
}

func TestWorldIgnoresReversal(t *testing.T) {
	w := newTestWorld(t, false)
	w.player = newActor(RolePlayer, core.Point{X: 10, Y: 10}, core.DirRight, 3, normalStep)
	w.food = core.Point{X: 0, Y: 0}

	w.SetDirection(core.DirLeft)
	w.Update(normalStep)

	if w.player.Head() != (core.Point{X: 11, Y: 10}) {
		t.Errorf("head = %v, expected (11,10)", w.player.Head())
	}
	if w.lives != 3 {
		t.Errorf("lives = %d, expected 3", w.lives)
	}
}

func TestWallCostsLifeAndHalvesScore(t *testing.T) {
	w := newTestWorld(t, false)
	w.player = newActor(RolePlayer, core.Point{X: 39, Y: 5}, core.DirRight, 3, normalStep)
	w.food = core.Point{X: 0, Y: 0}
	w.score = 35
	w.ammo = 4

	w.Update(normalStep)

	if w.lives != 2 {
		t.Errorf("lives = %d, expected 2", w.lives)
	}
	if w.score != 17 {
		t.Errorf("score = %d, expected 17", w.score)
	}
	if !w.running {
		t.Error("world should keep running with lives left")
	}
	if w.player.Head() != (core.Point{X: 10, Y: 12}) || len(w.player.Body) != 3 {
		t.Errorf("respawned player = %v, expected a fresh body at (10,12)", w.player.Body)
	}
	if w.ammo != 0 {
		t.Errorf("ammo = %d after respawn, expected 0", w.ammo)
	}
	if !hasEvent(w.Drain(), LifeLost{Lives: 2, Score: 17}) {
		t.Error("missing LifeLost event")
	}
}

func TestSelfCollisionCostsLife(t *testing.T) {
	w := newTestWorld(t, false)
	w.food = core.Point{X: 0, Y: 0}
	// Head at (5,5) heading Down into its own body at (5,6).
	w.player = &Actor{
		Role:     RolePlayer,
		Body:     []core.Point{{X: 5, Y: 5}, {X: 6, Y: 5}, {X: 6, Y: 6}, {X: 5, Y: 6}, {X: 4, Y: 6}},
		Dir:      core.DirLeft,
		NextDir:  core.DirDown,
		Interval: normalStep,
		Alive:    true,
	}

	w.Update(normalStep)

	if w.lives != 2 {
		t.Errorf("lives = %d, expected 2", w.lives)
	}
}

func TestGameOverRecordsHighScore(t *testing.T) {
	tests := []struct {
		name      string
		high      int
		expected  int
		wantEvent GameOver
	}{
		{"new high", 5, 30, GameOver{FinalScore: 30, NewHighScore: true}},
		{"equal keeps old", 30, 30, GameOver{FinalScore: 30, NewHighScore: false}},
		{"lower keeps old", 500, 500, GameOver{FinalScore: 30, NewHighScore: false}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t, false)
			w.player = newActor(RolePlayer, core.Point{X: 39, Y: 5}, core.DirRight, 3, normalStep)
			w.food = core.Point{X: 0, Y: 0}
			w.lives = 1
			w.score = 40
			w.opponentScore = 10
			w.high = tc.high

			w.Update(normalStep)

			if w.running {
				t.Fatal("world should stop at zero lives")
			}
			if w.high != tc.expected {
				t.Errorf("high = %d, expected %d", w.high, tc.expected)
			}
			events := w.Drain()
			if !hasEvent(events, tc.wantEvent) {
				t.Errorf("events %v missing %+v", events, tc.wantEvent)
			}
			if countEvents(events, "game_over") != 1 {
				t.Errorf("game_over emitted %d times, expected 1", countEvents(events, "game_over"))
			}
		})
	}
}

func TestGameOverStopsSimulation(t *testing.T) {
	w := newTestWorld(t, true)
	w.player = newActor(RolePlayer, core.Point{X: 39, Y: 5}, core.DirRight, 3, normalStep)
	w.food = core.Point{X: 0, Y: 0}
	w.lives = 1
	w.ammo = 3
	w.Update(normalStep)
	w.Drain()

	before := w.Snapshot()
	for range 100 {
		w.SetDirection(core.DirUp)
		w.Shoot()
		w.Update(50 * time.Millisecond)
	}
	if !reflect.DeepEqual(before, w.Snapshot()) {
		t.Error("world changed after game over")
	}
	if events := w.Drain(); len(events) != 0 {
		t.Errorf("events after game over: %v", events)
	}
}

func TestPlayerBumpsOpponent(t *testing.T) {
	w := newTestWorld(t, true)
	w.food = core.Point{X: 0, Y: 0}
	w.score = 25
	w.player = newActor(RolePlayer, core.Point{X: 10, Y: 10}, core.DirRight, 3, 50*time.Millisecond)
	w.opponent = testOpponent(core.Point{X: 11, Y: 12}, core.DirDown, time.Hour)

	w.Update(50 * time.Millisecond)

	if w.opponent.Health != 95 {
		t.Errorf("opponent health = %d, expected 95", w.opponent.Health)
	}
	if w.lives != 2 || w.score != 12 {
		t.Errorf("lives = %d score = %d, expected 2 and 12", w.lives, w.score)
	}
	events := w.Drain()
	if !hasEvent(events, OpponentDamaged{Amount: 5, Health: 95, Percent: 95}) {
		t.Errorf("events %v missing OpponentDamaged", events)
	}
}

func TestOpponentBitesPlayer(t *testing.T) {
	w := newTestWorld(t, true)
	w.food = core.Point{X: 10, Y: 5}
	w.player = newActor(RolePlayer, core.Point{X: 19, Y: 3}, core.DirUp, 3, time.Hour)
	w.opponent = testOpponent(core.Point{X: 20, Y: 5}, core.DirLeft, 50*time.Millisecond)
	w.opponent.EvadeBias = 0

	w.Update(50 * time.Millisecond)

	if w.opponent.Head() != (core.Point{X: 19, Y: 5}) {
		t.Fatalf("opponent head = %v, expected (19,5)", w.opponent.Head())
	}
	if w.opponent.Health != 88 {
		t.Errorf("opponent health = %d, expected 88", w.opponent.Health)
	}
	if w.lives != 2 {
		t.Errorf("lives = %d, expected 2", w.lives)
	}
}

func TestOpponentEvadesPlayerWithFullBias(t *testing.T) {
	w := newTestWorld(t, true)
	w.food = core.Point{X: 10, Y: 5}
	w.player = newActor(RolePlayer, core.Point{X: 19, Y: 3}, core.DirUp, 3, time.Hour)
	w.opponent = testOpponent(core.Point{X: 20, Y: 5}, core.DirLeft, time.Hour)
	w.opponent.EvadeBias = 1

	w.Update(time.Millisecond)

	// Left is blocked by the player, so the next preference (Down) wins.
	if w.opponent.NextDir != core.DirDown {
		t.Errorf("opponent NextDir = %v, expected down", w.opponent.NextDir)
	}
}

func TestOpponentEatsFood(t *testing.T) {
	w := newTestWorld(t, true)
	w.food = core.Point{X: 19, Y: 5}
	w.player = newActor(RolePlayer, core.Point{X: 5, Y: 15}, core.DirRight, 3, time.Hour)
	w.opponent = testOpponent(core.Point{X: 20, Y: 5}, core.DirLeft, 50*time.Millisecond)

	w.Update(50 * time.Millisecond)

	if w.opponentScore != 10 {
		t.Errorf("opponentScore = %d, expected 10", w.opponentScore)
	}
	if len(w.opponent.Body) != 4 {
		t.Errorf("opponent length = %d, expected 4", len(w.opponent.Body))
	}
	if w.score != 0 {
		t.Errorf("player score = %d, expected 0", w.score)
	}
	if w.food == (core.Point{X: 19, Y: 5}) {
		t.Error("food should be relocated")
	}
	if !hasEvent(w.Drain(), FoodEaten{By: RoleOpponent, At: core.Point{X: 19, Y: 5}}) {
		t.Error("missing FoodEaten by the opponent")
	}
}

func TestOpponentWallWound(t *testing.T) {
	w := newTestWorld(t, true)
	w.food = core.Point{X: 0, Y: 10}
	w.player = newActor(RolePlayer, core.Point{X: 38, Y: 0}, core.DirRight, 3, time.Hour)
	w.opponent = testOpponent(core.Point{X: 39, Y: 0}, core.DirUp, 50*time.Millisecond)
	// Cornered: up and right are walls, down is its body, left is the player.
	w.opponent.Dir, w.opponent.NextDir = core.DirRight, core.DirRight
	w.opponent.EvadeBias = 1

	w.Update(50 * time.Millisecond)

	if w.opponent.Health != 75 {
		t.Errorf("opponent health = %d, expected 75", w.opponent.Health)
	}
	if len(w.opponent.Body) != 2 {
		t.Errorf("opponent length = %d, expected 2 after the wound", len(w.opponent.Body))
	}
	if !w.opponent.Alive {
		t.Error("a wound must not kill a healthy opponent")
	}
	if w.lives != 3 {
		t.Errorf("lives = %d, expected 3", w.lives)
	}
}

func TestAllyDefeatsOpponent(t *testing.T) {
	w := newTestWorld(t, true)
	w.food = core.Point{X: 0, Y: 0}
	w.player = newActor(RolePlayer, core.Point{X: 5, Y: 15}, core.DirRight, 3, time.Hour)
	w.opponent = testOpponent(core.Point{X: 20, Y: 5}, core.DirRight, time.Hour)
	w.opponent.Health = 30
	w.ally = newActor(RoleAlly, core.Point{X: 20, Y: 6}, core.DirUp, 3, 50*time.Millisecond)
	w.ally.ExpiresAt = 8 * time.Second

	w.Update(50 * time.Millisecond)

	if w.opponent != nil {
		t.Fatal("defeated opponent should be removed")
	}
	if w.score != 100 {
		t.Errorf("score = %d, expected 100", w.score)
	}
	if w.ally.Grow != 1 {
		t.Errorf("ally grow = %d, expected 1", w.ally.Grow)
	}
	events := w.Drain()
	if !hasEvent(events, OpponentDamaged{Amount: 30, Health: 0, Percent: 0}) {
		t.Errorf("events %v missing OpponentDamaged", events)
	}
	if !hasEvent(events, OpponentDefeated{Bonus: 100}) {
		t.Errorf("events %v missing OpponentDefeated", events)
	}

	w.Update(999 * time.Millisecond)
	if w.opponent != nil {
		t.Fatal("opponent respawned before the delay")
	}

	w.Update(time.Millisecond)
	if w.opponent == nil {
		t.Fatal("opponent should respawn after the delay")
	}
	if w.opponent.Health != 100 {
		t.Errorf("respawned health = %d, expected 100", w.opponent.Health)
	}
	if w.score != 100 {
		t.Errorf("score = %d, defeat bonus must be paid once", w.score)
	}
	if countEvents(w.Drain(), "opponent_respawned") != 1 {
		t.Error("expected one opponent_respawned event")
	}
}

func TestStaleRespawnIgnored(t *testing.T) {
	w := newTestWorld(t, true)
	w.player.Interval = time.Hour
	w.opponent = nil
	w.timers = append(w.timers, timer{kind: timerOpponentRespawn, at: 0, epoch: w.epoch - 1})

	w.Update(10 * time.Millisecond)

	if w.opponent != nil {
		t.Error("stale timer resurrected the opponent")
	}
	if len(w.timers) != 0 {
		t.Errorf("timers = %v, expected stale entries dropped", w.timers)
	}
}

func TestResetCancelsPendingRespawn(t *testing.T) {
	w := newTestWorld(t, true)
	w.schedule(timerOpponentRespawn, time.Second)

	w.Reset(Options{Rules: config.DefaultSnakeConfig(), Difficulty: config.DifficultyNormal, OpponentEnabled: true, Seed: 8})
	w.player.Interval = time.Hour
	w.opponent = nil

	w.Update(2 * time.Second)
	if w.opponent != nil {
		t.Error("respawn scheduled before Reset fired afterwards")
	}
}

func TestProjectileFreezesOpponent(t *testing.T) {
	w := newTestWorld(t, true)
	w.food = core.Point{X: 30, Y: 10}
	w.player = newActor(RolePlayer, core.Point{X: 10, Y: 10}, core.DirRight, 3, time.Hour)
	w.opponent = testOpponent(core.Point{X: 14, Y: 10}, core.DirDown, time.Hour)
	w.ammo = 2

	if !w.Shoot() {
		t.Fatal("Shoot() = false with ammo")
	}
	if w.ammo != 1 || len(w.projectiles) != 1 {
		t.Fatalf("ammo = %d projectiles = %d, expected 1 and 1", w.ammo, len(w.projectiles))
	}

	w.Update(normalStep)

	if len(w.projectiles) != 0 {
		t.Errorf("projectiles = %d, expected the hit to consume it", len(w.projectiles))
	}
	until := normalStep + 1800*time.Millisecond
	if w.opponent.FrozenUntil != until {
		t.Errorf("FrozenUntil = %v, expected %v", w.opponent.FrozenUntil, until)
	}
	if !hasEvent(w.Drain(), OpponentFrozen{Until: until}) {
		t.Error("missing OpponentFrozen event")
	}

	// AI is skipped while frozen.
	w.opponent.NextDir = core.DirDown
	w.Update(100 * time.Millisecond)
	if w.opponent.NextDir != core.DirDown {
		t.Errorf("frozen opponent changed direction to %v", w.opponent.NextDir)
	}

	w.Update(until - w.now)
	if w.opponent.NextDir != core.DirRight {
		t.Errorf("opponent NextDir = %v after thawing, expected right toward food", w.opponent.NextDir)
	}
}

func TestOneShardHitsPerTick(t *testing.T) {
	w := newTestWorld(t, true)
	w.food = core.Point{X: 30, Y: 10}
	w.player = newActor(RolePlayer, core.Point{X: 10, Y: 20}, core.DirRight, 3, time.Hour)
	w.opponent = testOpponent(core.Point{X: 14, Y: 10}, core.DirDown, time.Hour)
	w.projectiles = []*Projectile{
		newProjectile(core.Point{X: 14, Y: 10}, core.DirRight, time.Hour),
		newProjectile(core.Point{X: 14, Y: 9}, core.DirRight, time.Hour),
	}

	w.Update(normalStep)

	if len(w.projectiles) != 1 {
		t.Errorf("projectiles = %d, expected one shard left", len(w.projectiles))
	}
	until := normalStep + 1800*time.Millisecond
	if w.opponent.FrozenUntil != until {
		t.Errorf("FrozenUntil = %v, expected %v", w.opponent.FrozenUntil, until)
	}
	frozen := 0
	for _, e := range w.Drain() {
		if _, ok := e.(OpponentFrozen); ok {
			frozen++
		}
	}
	if frozen != 1 {
		t.Errorf("OpponentFrozen events = %d, expected 1", frozen)
	}

	// The second shard lands on the next tick.
	w.Update(normalStep)
	if len(w.projectiles) != 0 {
		t.Errorf("projectiles = %d, expected the second shard consumed", len(w.projectiles))
	}
}

func TestShootWithoutAmmo(t *testing.T) {
	w := newTestWorld(t, false)
	if w.Shoot() {
		t.Error("Shoot() = true with no ammo")
	}
	if len(w.projectiles) != 0 || len(w.Drain()) != 0 {
		t.Error("Shoot() without ammo should have no effect")
	}
}

func TestProjectileLeavesGrid(t *testing.T) {
	w := newTestWorld(t, false)
	w.food = core.Point{X: 0, Y: 0}
	w.player = newActor(RolePlayer, core.Point{X: 38, Y: 5}, core.DirRight, 3, time.Hour)
	w.ammo = 1
	w.Shoot()

	w.Update(normalStep)
	if len(w.projectiles) != 0 {
		t.Errorf("projectiles = %d, expected the shard dropped off-grid", len(w.projectiles))
	}
}

func TestPowerUpPickup(t *testing.T) {
	tests := []struct {
		kind  PowerKind
		check func(t *testing.T, w *World)
	}{
		{PowerExtraLife, func(t *testing.T, w *World) {
			if w.lives != 4 {
				t.Errorf("lives = %d, expected 4", w.lives)
			}
		}},
		{PowerFreezeAmmo, func(t *testing.T, w *World) {
			if w.ammo != 3 {
				t.Errorf("ammo = %d, expected 3", w.ammo)
			}
		}},
		{PowerAllySummon, func(t *testing.T, w *World) {
			if w.ally == nil {
				t.Fatal("ally not summoned")
			}
			if w.ally.ExpiresAt != w.now+8*time.Second {
				t.Errorf("ally ExpiresAt = %v, expected now+8s", w.ally.ExpiresAt)
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			w := newTestWorld(t, false)
			w.food = core.Point{X: 0, Y: 0}
			w.player = newActor(RolePlayer, core.Point{X: 10, Y: 10}, core.DirRight, 3, normalStep)
			w.power = &PowerUp{Kind: tc.kind, Pos: core.Point{X: 11, Y: 10}, TTL: 10 * time.Second}

			w.Update(normalStep)

			if w.power != nil {
				t.Error("power-up should be consumed")
			}
			tc.check(t, w)
			events := w.Drain()
			if countEvents(events, "power_applied") != 1 {
				t.Errorf("events %v, expected one power_applied", events)
			}
		})
	}
}

func TestPowerEffectsClamp(t *testing.T) {
	w := newTestWorld(t, false)

	w.ammo = 8
	w.power = &PowerUp{Kind: PowerFreezeAmmo}
	w.applyPower()
	if w.ammo != 9 {
		t.Errorf("ammo = %d, expected cap 9", w.ammo)
	}

	w.lives = 9
	w.power = &PowerUp{Kind: PowerExtraLife}
	w.applyPower()
	if w.lives != 9 {
		t.Errorf("lives = %d, expected cap 9", w.lives)
	}
}

func TestSummonAllyPlacement(t *testing.T) {
	w := newTestWorld(t, false)
	w.player = newActor(RolePlayer, core.Point{X: 2, Y: 10}, core.DirRight, 3, normalStep)
	w.now = time.Second

	w.summonAlly()

	if w.ally.Head() != (core.Point{X: 1, Y: 10}) || w.ally.Dir != core.DirRight {
		t.Errorf("ally head = %v dir = %v, expected (1,10) right", w.ally.Head(), w.ally.Dir)
	}
	if w.ally.Interval != 99*time.Millisecond {
		t.Errorf("ally interval = %v, expected 99ms", w.ally.Interval)
	}
	if w.ally.ExpiresAt != 9*time.Second {
		t.Errorf("ally ExpiresAt = %v, expected 9s", w.ally.ExpiresAt)
	}

	first := w.ally
	w.summonAlly()
	if w.ally == first {
		t.Error("summoning again should replace the ally")
	}
}

func TestAllyExpires(t *testing.T) {
	w := newTestWorld(t, false)
	w.player.Interval = time.Hour
	w.ally = newActor(RoleAlly, core.Point{X: 5, Y: 5}, core.DirRight, 3, time.Hour)
	w.ally.ExpiresAt = 100 * time.Millisecond

	w.Update(100 * time.Millisecond)
	if w.ally == nil {
		t.Fatal("ally expired early")
	}
	w.Update(time.Millisecond)
	if w.ally != nil {
		t.Error("ally should expire once its lifetime has passed")
	}
	if countEvents(w.Drain(), "ally_expired") != 1 {
		t.Error("expected one ally_expired event")
	}
}

func TestAtMostOnePowerUp(t *testing.T) {
	w := newTestWorld(t, false)
	existing := &PowerUp{Kind: PowerExtraLife, Pos: core.Point{X: 3, Y: 3}, TTL: time.Second}
	w.power = existing

	w.maybeSpawnPower(1)
	if w.power != existing {
		t.Error("spawn replaced the active power-up")
	}

	w.power = nil
	w.maybeSpawnPower(0)
	if w.power != nil {
		t.Error("spawn with chance 0 placed a power-up")
	}
	w.maybeSpawnPower(1)
	if w.power == nil {
		t.Fatal("spawn with chance 1 placed nothing")
	}
	if w.player.Occupies(w.power.Pos) || w.power.Pos == w.food {
		t.Errorf("power-up at %v overlaps the player or the food", w.power.Pos)
	}
}

func TestPowerUpExpires(t *testing.T) {
	w := newTestWorld(t, false)
	w.player.Interval = time.Hour
	w.power = &PowerUp{Kind: PowerAllySummon, Pos: core.Point{X: 0, Y: 5}, TTL: 100 * time.Millisecond}

	w.Update(60 * time.Millisecond)
	if w.power == nil {
		t.Fatal("power-up expired early")
	}
	w.Update(40 * time.Millisecond)
	if w.power != nil {
		t.Error("power-up should expire")
	}
	if !hasEvent(w.Drain(), PowerExpired{Kind: PowerAllySummon}) {
		t.Error("missing PowerExpired event")
	}
}

func TestPowerRolls(t *testing.T) {
	w := newTestWorld(t, false)

	for range 200 {
		ttl := w.rollPowerTTL()
		if ttl < 12*time.Second || ttl > 18*time.Second {
			t.Fatalf("rollPowerTTL() = %v, expected within 15s±3s", ttl)
		}
	}

	w.rules.PowerUps.WeightExtraLife = 0
	w.rules.PowerUps.WeightFreezeAmmo = 0
	w.rules.PowerUps.WeightAllySummon = 1
	for range 50 {
		if k := w.rollPowerKind(); k != PowerAllySummon {
			t.Fatalf("rollPowerKind() = %v, expected only ally_summon", k)
		}
	}
}

func TestPickEmptyCell(t *testing.T) {
	w := newTestWorld(t, true)
	for range 200 {
		p := w.pickEmptyCell()
		if w.occupied(p) {
			t.Fatalf("pickEmptyCell() = %v, which is occupied", p)
		}
		if !w.bounds.Contains(p) {
			t.Fatalf("pickEmptyCell() = %v, outside the grid", p)
		}
	}

	var full []core.Point
	for y := range w.bounds.Rows {
		for x := range w.bounds.Cols {
			full = append(full, core.Point{X: x, Y: y})
		}
	}
	w.player.Body = full
	if p := w.pickEmptyCell(); p != (core.Point{X: 2, Y: 2}) {
		t.Errorf("pickEmptyCell() on a full grid = %v, expected fallback (2,2)", p)
	}
}

func TestDisposeStopsWorld(t *testing.T) {
	w := newTestWorld(t, true)
	w.schedule(timerOpponentRespawn, time.Millisecond)
	w.Dispose()

	w.Update(time.Second)
	if w.Running() || w.now != 0 {
		t.Error("disposed world should not advance")
	}
	if len(w.Drain()) != 0 {
		t.Error("disposed world should not emit events")
	}
}

func TestWorldDeterminism(t *testing.T) {
	run := func() Snapshot {
		w := NewWorld()
		w.Reset(Options{
			Rules:           config.DefaultSnakeConfig(),
			Difficulty:      config.DifficultyHard,
			OpponentEnabled: true,
			Seed:            12345,
		})
		script := rand.New(rand.NewSource(99))
		for range 3000 {
			if script.Intn(8) == 0 {
				w.SetDirection(core.Directions[script.Intn(4)])
			}
			if script.Intn(40) == 0 {
				w.Shoot()
			}
			w.Update(16 * time.Millisecond)
			w.Drain()
		}
		return w.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", a, b)
	}
}

func TestInvariantsUnderRandomPlay(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		w := NewWorld()
		w.Reset(Options{
			Rules:           config.DefaultSnakeConfig(),
			Difficulty:      config.DifficultyEasy,
			OpponentEnabled: true,
			Seed:            seed,
		})
		script := rand.New(rand.NewSource(seed))
		gameOvers := 0

		for range 5000 {
			w.SetDirection(core.Directions[script.Intn(4)])
			if script.Intn(10) == 0 {
				w.Shoot()
			}
			w.Update(time.Duration(1+script.Intn(50)) * time.Millisecond)
			gameOvers += countEvents(w.Drain(), "game_over")

			if w.lives < 0 || w.lives > 9 {
				t.Fatalf("seed %d: lives = %d out of [0,9]", seed, w.lives)
			}
			if w.ammo < 0 || w.ammo > 9 {
				t.Fatalf("seed %d: ammo = %d out of [0,9]", seed, w.ammo)
			}
			if w.score < 0 {
				t.Fatalf("seed %d: negative score %d", seed, w.score)
			}
			if w.opponent != nil && (w.opponent.Health < 0 || w.opponent.Health > 100) {
				t.Fatalf("seed %d: opponent health = %d", seed, w.opponent.Health)
			}
			for _, a := range w.actors() {
				if len(a.Body) < 1 {
					t.Fatalf("seed %d: %s has an empty body", seed, a.Role)
				}
			}
			if !w.running {
				break
			}
		}
		if gameOvers > 1 {
			t.Errorf("seed %d: game_over emitted %d times", seed, gameOvers)
		}
	}
}
