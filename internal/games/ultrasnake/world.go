// Package ultrasnake implements Ultra Snake: the player races an AI
// opponent for food while collecting power-ups, firing ice shards and
// summoning a temporary ally. The World is a pure simulation driven by
// explicit time deltas; Game adapts it to the arcade platform.
package ultrasnake

import (
	"math/rand"
	"slices"
	"time"

	"github.com/vovakirdan/ultrasnake/internal/config"
	"github.com/vovakirdan/ultrasnake/internal/core"
)

// Options configure one game of the World.
type Options struct {
	Rules           config.SnakeConfig
	Difficulty      config.DifficultyPreset
	OpponentEnabled bool
	Seed            int64
	HighScore       int
}

type timerKind int

const (
	timerOpponentRespawn timerKind = iota
)

// timer is a deferred world action. It only fires when its epoch still
// matches the world's, so a reset silently cancels everything pending.
type timer struct {
	kind  timerKind
	at    time.Duration
	epoch uint64
}

// World holds the full simulation state.
type World struct {
	rules           config.SnakeConfig
	preset          config.DifficultyPreset
	params          config.DifficultyParams
	bounds          core.Bounds
	opponentEnabled bool
	rng             *rand.Rand

	now         time.Duration
	player      *Actor
	opponent    *Actor
	ally        *Actor
	projectiles []*Projectile
	food        core.Point
	power       *PowerUp

	ammo          int
	score         int
	opponentScore int
	lives         int
	high          int
	running       bool
	disposed      bool

	epoch  uint64
	timers []timer
	events []core.Event
}

// NewWorld creates an idle world. Call Reset to start a game.
func NewWorld() *World {
	return &World{rng: rand.New(rand.NewSource(0))}
}

// Reset starts a new game. Pending timers from the previous game are dropped.
func (w *World) Reset(opts Options) {
	w.epoch++
	w.timers = w.timers[:0]
	w.events = w.events[:0]
	w.disposed = false

	w.rules = opts.Rules
	w.preset = opts.Difficulty
	w.params = opts.Rules.Difficulty.For(opts.Difficulty)
	w.bounds = core.Bounds{Cols: opts.Rules.Grid.Cols, Rows: opts.Rules.Grid.Rows}
	w.opponentEnabled = opts.OpponentEnabled
	w.rng = rand.New(rand.NewSource(opts.Seed))
	w.high = max(w.high, opts.HighScore)

	w.now = 0
	w.score = 0
	w.opponentScore = 0
	w.lives = w.rules.Player.Lives
	w.ammo = 0
	w.projectiles = nil
	w.ally = nil
	w.opponent = nil
	w.power = nil

	w.player = w.newPlayer()
	if w.opponentEnabled {
		w.opponent = w.newOpponent()
	}

	w.food = core.Point{X: -1, Y: -1}
	w.food = w.pickEmptyCell()
	w.maybeSpawnPower(w.rules.PowerUps.SpawnChance)
	w.running = true
}

// Dispose stops the world and drops everything pending. Further updates
// are no-ops until the next Reset.
func (w *World) Dispose() {
	w.epoch++
	w.timers = nil
	w.events = nil
	w.running = false
	w.disposed = true
}

func (w *World) newPlayer() *Actor {
	head := core.Point{X: w.bounds.Cols / 4, Y: w.bounds.Rows / 2}
	return newActor(RolePlayer, head, core.DirRight, w.rules.Player.StartLength, w.params.Step())
}

func (w *World) newOpponent() *Actor {
	head := core.Point{X: w.bounds.Cols * 3 / 4, Y: w.bounds.Rows / 2}
	lo, hi := w.rules.Opponent.StepRange()
	interval := clampDuration(scaleDuration(w.params.Step(), w.params.OpponentStepFactor), lo, hi)

	o := newActor(RoleOpponent, head, core.DirLeft, w.rules.Player.StartLength, interval)
	o.Health = w.rules.Opponent.MaxHealth
	o.MaxHealth = w.rules.Opponent.MaxHealth
	o.EvadeBias = w.params.EvadeBias
	return o
}

// actors returns the present snakes in draw order.
func (w *World) actors() []*Actor {
	out := make([]*Actor, 0, 3)
	for _, a := range []*Actor{w.opponent, w.ally, w.player} {
		if a != nil {
			out = append(out, a)
		}
	}
	return out
}

// SetDirection forwards a steering intent to the player.
func (w *World) SetDirection(d core.Direction) {
	if !w.running {
		return
	}
	w.player.SetDirection(d)
}

// Shoot fires an ice shard from the player's head if ammo is available.
func (w *World) Shoot() bool {
	if !w.running || w.ammo <= 0 {
		return false
	}
	w.ammo--
	cellTime := scaleDuration(w.params.Step(), w.rules.Projectile.CellTimeFactor)
	w.projectiles = append(w.projectiles, newProjectile(w.player.Head(), w.player.Dir, cellTime))
	w.emit(ProjectileFired{Ammo: w.ammo})
	return true
}

// Update advances the simulation by dt. Callers are expected to cap dt.
func (w *World) Update(dt time.Duration) {
	if !w.running || dt <= 0 {
		return
	}
	w.now += dt
	w.runTimers()

	// AI decisions
	if w.opponent != nil && !w.opponent.Frozen(w.now) {
		w.think(w.opponent)
	}
	if w.ally != nil {
		w.think(w.ally)
		if w.now > w.ally.ExpiresAt {
			w.ally = nil
			w.emit(AllyExpired{})
		}
	}

	// Movement
	w.player.Step(dt)
	if w.opponent != nil && !w.opponent.Frozen(w.now) {
		w.opponent.Step(dt)
	}
	if w.ally != nil {
		w.ally.Step(dt)
	}
	for _, p := range w.projectiles {
		p.Step(dt, w.bounds)
	}
	w.projectiles = slices.DeleteFunc(w.projectiles, func(p *Projectile) bool { return !p.Alive })

	// Player pickups
	head := w.player.Head()
	if head == w.food {
		w.player.Feed()
		w.emit(FoodEaten{By: RolePlayer, At: head})
		w.addScore(w.rules.Scoring.Food)
		w.food = w.pickEmptyCell()
		w.maybeSpawnPower(w.rules.PowerUps.SpawnChance)
	}
	if w.power != nil && head == w.power.Pos {
		w.applyPower()
	}

	// Player death
	if !w.bounds.Contains(head) || w.player.HitsSelf() {
		w.loseLife()
		return
	}
	if w.opponent != nil && w.opponent.Occupies(head) {
		w.damageOpponent(w.rules.Opponent.BumpDamage)
		w.loseLife()
		return
	}

	// Opponent
	if o := w.opponent; o != nil {
		oHead := o.Head()
		if oHead == w.food {
			o.Feed()
			w.opponentScore += w.rules.Scoring.OpponentFood
			w.emit(FoodEaten{By: RoleOpponent, At: oHead})
			w.emit(OpponentScoreChanged{Score: w.opponentScore})
			w.food = w.pickEmptyCell()
			w.maybeSpawnPower(w.rules.PowerUps.OpponentSpawnChance)
		}
		if !w.bounds.Contains(oHead) || o.HitsSelf() {
			w.damageOpponent(w.rules.Opponent.WoundDamage)
			o.Truncate()
		}
		if w.player.Occupies(oHead) {
			w.damageOpponent(w.rules.Opponent.BiteDamage)
			w.loseLife()
			return
		}
	}

	// Ally attack
	if w.ally != nil && w.opponent != nil && w.opponent.Occupies(w.ally.Head()) {
		w.damageOpponent(w.rules.Opponent.AllyDamage)
		w.ally.Grow++
	}

	// At most one shard hits per tick
	if w.opponent != nil {
		if i := slices.IndexFunc(w.projectiles, func(p *Projectile) bool { return w.opponent.Occupies(p.Cell) }); i >= 0 {
			w.projectiles = slices.Delete(w.projectiles, i, i+1)
			w.opponent.Freeze(w.params.Freeze(), w.now)
			w.emit(OpponentFrozen{Until: w.opponent.FrozenUntil})
		}
	}

	// Power-up lifetime
	if w.power != nil {
		w.power.TTL -= dt
		if w.power.TTL <= 0 {
			w.emit(PowerExpired{Kind: w.power.Kind})
			w.power = nil
		}
	}

	// Defeat
	if w.opponent != nil && !w.opponent.Alive {
		w.opponent = nil
		w.addScore(w.rules.Scoring.Defeat)
		w.emit(OpponentDefeated{Bonus: w.rules.Scoring.Defeat})
		w.schedule(timerOpponentRespawn, w.rules.Opponent.RespawnDelay())
	}
}

func (w *World) emit(e core.Event) {
	if w.disposed {
		return
	}
	w.events = append(w.events, e)
}

// Drain returns and clears the queued events.
func (w *World) Drain() []core.Event {
	if len(w.events) == 0 {
		return nil
	}
	out := w.events
	w.events = nil
	return out
}

func (w *World) addScore(n int) {
	w.score += n
	w.emit(ScoreChanged{Score: w.score})
}

func (w *World) damageOpponent(amount int) {
	health := w.opponent.Damage(amount)
	w.emit(OpponentDamaged{Amount: amount, Health: health, Percent: w.opponent.HealthPercent()})
}

// loseLife costs a life and half the score, then respawns the player or
// ends the game.
func (w *World) loseLife() {
	w.lives = core.Clamp(w.lives-1, 0, w.rules.Player.MaxLives)
	w.score /= 2
	w.emit(LifeLost{Lives: w.lives, Score: w.score})
	w.emit(ScoreChanged{Score: w.score})

	if w.lives <= 0 {
		w.gameOver()
		return
	}
	w.player = w.newPlayer()
	w.projectiles = nil
	w.ammo = 0
}

func (w *World) gameOver() {
	w.running = false
	w.epoch++
	w.timers = w.timers[:0]

	final := w.score + w.opponentScore
	newHigh := final > w.high
	if newHigh {
		w.high = final
	}
	w.emit(GameOver{FinalScore: final, NewHighScore: newHigh})
}

func (w *World) schedule(kind timerKind, delay time.Duration) {
	w.timers = append(w.timers, timer{kind: kind, at: w.now + delay, epoch: w.epoch})
}

// runTimers fires due timers of the current epoch and drops stale ones.
func (w *World) runTimers() {
	var due []timer
	pending := w.timers[:0]
	for _, t := range w.timers {
		switch {
		case t.epoch != w.epoch:
		case t.at <= w.now:
			due = append(due, t)
		default:
			pending = append(pending, t)
		}
	}
	w.timers = pending

	for _, t := range due {
		switch t.kind {
		case timerOpponentRespawn:
			if w.opponentEnabled && w.opponent == nil {
				w.opponent = w.newOpponent()
				w.emit(OpponentRespawned{})
			}
		}
	}
}

// Accessors

func (w *World) Running() bool                       { return w.running }
func (w *World) Now() time.Duration                  { return w.now }
func (w *World) Score() int                          { return w.score }
func (w *World) OpponentScore() int                  { return w.opponentScore }
func (w *World) Lives() int                          { return w.lives }
func (w *World) Ammo() int                           { return w.ammo }
func (w *World) HighScore() int                      { return w.high }
func (w *World) Difficulty() config.DifficultyPreset { return w.preset }
func (w *World) OpponentEnabled() bool               { return w.opponentEnabled }
func (w *World) Bounds() core.Bounds                 { return w.bounds }
