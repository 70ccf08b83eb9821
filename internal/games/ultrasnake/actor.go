package ultrasnake

import (
	"time"

	"github.com/vovakirdan/ultrasnake/internal/core"
)

// Role tags an Actor with the rules that apply to it.
type Role int

const (
	RolePlayer Role = iota
	RoleOpponent
	RoleAlly
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleOpponent:
		return "opponent"
	case RoleAlly:
		return "ally"
	default:
		return "unknown"
	}
}

// Actor is a snake on the grid. Movement is shared by every role; the
// opponent additionally uses Health/FrozenUntil/EvadeBias and the ally
// uses ExpiresAt.
type Actor struct {
	Role     Role
	Body     []core.Point // Head at index 0
	Dir      core.Direction
	NextDir  core.Direction // Committed at the next step
	Interval time.Duration  // Time per step
	Grow     int            // Steps that keep the tail
	Alive    bool

	Health      int
	MaxHealth   int
	FrozenUntil time.Duration
	EvadeBias   float64

	ExpiresAt time.Duration

	acc     time.Duration
	dropped core.Point // Tail cell removed by the latest step
	hasDrop bool
}

// newActor builds a straight body with the tail trailing behind the head.
func newActor(role Role, head core.Point, dir core.Direction, length int, interval time.Duration) *Actor {
	length = max(length, 1)
	back := dir.Opposite().Vector()
	body := make([]core.Point, length)
	for i := range body {
		body[i] = core.Point{X: head.X + back.X*i, Y: head.Y + back.Y*i}
	}
	return &Actor{
		Role:     role,
		Body:     body,
		Dir:      dir,
		NextDir:  dir,
		Interval: interval,
		Alive:    true,
	}
}

// Head returns the head cell.
func (a *Actor) Head() core.Point {
	return a.Body[0]
}

// SetDirection queues d for the next step. A request for the exact reverse
// of the current direction is ignored.
func (a *Actor) SetDirection(d core.Direction) {
	if d == a.Dir.Opposite() {
		return
	}
	a.NextDir = d
}

// Step banks dt and moves one cell once a full interval has accumulated.
// It reports whether a move happened. Bounds and collisions are the caller's job.
func (a *Actor) Step(dt time.Duration) bool {
	a.hasDrop = false
	a.acc += dt
	if a.acc < a.Interval {
		return false
	}
	a.acc = 0
	a.Dir = a.NextDir

	head := a.Head().Add(a.Dir.Vector())
	a.Body = append(a.Body, core.Point{})
	copy(a.Body[1:], a.Body)
	a.Body[0] = head

	if a.Grow > 0 {
		a.Grow--
		return true
	}
	last := len(a.Body) - 1
	a.dropped, a.hasDrop = a.Body[last], true
	a.Body = a.Body[:last]
	return true
}

// Feed grows the actor by one cell. When the latest step dropped a tail
// segment it is put back at once; otherwise growth is deferred to the next step.
func (a *Actor) Feed() {
	if a.hasDrop {
		a.Body = append(a.Body, a.dropped)
		a.hasDrop = false
		return
	}
	a.Grow++
}

// Occupies reports whether any body segment is on p.
func (a *Actor) Occupies(p core.Point) bool {
	return a.occupiesFirst(p, len(a.Body))
}

// occupiesFirst checks only the n segments nearest the head.
func (a *Actor) occupiesFirst(p core.Point, n int) bool {
	n = min(n, len(a.Body))
	for _, seg := range a.Body[:n] {
		if seg == p {
			return true
		}
	}
	return false
}

// HitsSelf reports whether the head overlaps any other segment.
func (a *Actor) HitsSelf() bool {
	head := a.Head()
	for _, seg := range a.Body[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

// Truncate drops the tail segment, keeping at least the head.
func (a *Actor) Truncate() {
	if len(a.Body) > 1 {
		a.Body = a.Body[:len(a.Body)-1]
	}
}

// Frozen reports whether the actor is frozen at now.
func (a *Actor) Frozen(now time.Duration) bool {
	return now < a.FrozenUntil
}

// Freeze extends the freeze to at least now+d.
func (a *Actor) Freeze(d, now time.Duration) {
	a.FrozenUntil = max(a.FrozenUntil, now+d)
}

// Damage lowers health, clamped to [0, MaxHealth], and kills the actor at zero.
// It returns the new health.
func (a *Actor) Damage(amount int) int {
	a.Health = core.Clamp(a.Health-amount, 0, a.MaxHealth)
	if a.Health <= 0 {
		a.Alive = false
	}
	return a.Health
}

// HealthPercent returns health as a share of MaxHealth in [0, 100].
func (a *Actor) HealthPercent() int {
	if a.MaxHealth <= 0 {
		return 0
	}
	return a.Health * 100 / a.MaxHealth
}
