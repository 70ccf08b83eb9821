package ultrasnake

import (
	"time"

	"github.com/vovakirdan/ultrasnake/internal/core"
)

// Projectile is an ice shard flying in a straight line.
// Cell is the cell used for collisions; the banked time gives the
// sub-cell progress toward the next one.
type Projectile struct {
	Cell  core.Point
	Dir   core.Direction
	Alive bool

	cellTime time.Duration
	acc      time.Duration
}

func newProjectile(at core.Point, dir core.Direction, cellTime time.Duration) *Projectile {
	return &Projectile{
		Cell:     at,
		Dir:      dir,
		Alive:    true,
		cellTime: max(cellTime, time.Millisecond),
	}
}

// Step advances the shard by every whole cell banked so far.
// Leaving the grid kills it.
func (p *Projectile) Step(dt time.Duration, b core.Bounds) {
	p.acc += dt
	for p.Alive && p.acc >= p.cellTime {
		p.acc -= p.cellTime
		p.Cell = p.Cell.Add(p.Dir.Vector())
		if !b.Contains(p.Cell) {
			p.Alive = false
		}
	}
}

// Progress returns the fraction of the way to the next cell, in [0, 1).
func (p *Projectile) Progress() float64 {
	return float64(p.acc) / float64(p.cellTime)
}

// Position returns the interpolated position in cell units.
func (p *Projectile) Position() (x, y float64) {
	v := p.Dir.Vector()
	f := p.Progress()
	return float64(p.Cell.X) + float64(v.X)*f, float64(p.Cell.Y) + float64(v.Y)*f
}
