package main

const (
	ProjectileSpeed = 8.0 // px per tick
	ProjectileSize  = 8.0 // bounding box edge for entity hits
)

// Projectile is a live shell. It exists only between the tick it is fired
// and the tick it resolves; resolution happens at most once.
type Projectile struct {
	ID      string
	OwnerID string  // for self-hit exclusion and kill attribution
	Kind    int     // firing side, mirrors the owner's tank kind
	X, Y    float64 // center
	Dir     Direction
	Speed   float64
	Seq     uint64 // creation order, the documented resolution tie-break
}

// NewProjectile spawns a shell centered on the owner, offset half a tank
// length in the facing direction.
func NewProjectile(owner *Tank, seq uint64) *Projectile {
	cx, cy := owner.Center()
	dx, dy := owner.Dir.Delta()
	return &Projectile{
		ID:      GenerateID(3),
		OwnerID: owner.ID,
		Kind:    owner.Kind,
		X:       cx + dx*TankSize/2,
		Y:       cy + dy*TankSize/2,
		Dir:     owner.Dir,
		Speed:   ProjectileSpeed,
		Seq:     seq,
	}
}

// Advance moves the shell one tick.
func (p *Projectile) Advance() {
	dx, dy := p.Dir.Delta()
	p.X += dx * p.Speed
	p.Y += dy * p.Speed
}

// HitsTank reports whether the shell's box overlaps a tank's box.
func (p *Projectile) HitsTank(t *Tank) bool {
	return BoxesOverlap(p.X-ProjectileSize/2, p.Y-ProjectileSize/2, ProjectileSize,
		t.X, t.Y, TankSize)
}

// ToState converts to the public snapshot projection.
func (p *Projectile) ToState() ProjectileState {
	return ProjectileState{
		ID:   p.ID,
		X:    round1(p.X),
		Y:    round1(p.Y),
		Dir:  int(p.Dir),
		Kind: p.Kind,
	}
}
