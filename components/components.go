// Package components defines ECS components for the simulation.
package components

// Position is an entity's world position on the play plane.
type Position struct {
	X, Y float32
}

// Velocity is an entity's linear velocity.
type Velocity struct {
	X, Y float32
}

// Spin is a free 3-axis visual rotation; it never affects collisions.
type Spin struct {
	AngVelX, AngVelY, AngVelZ float32
	AngleX, AngleY, AngleZ    float32
}

// Rock tags an asteroid. Rocks block projectiles and split into mineral
// fragments when destroyed.
type Rock struct{}

// Collectible tags an object that grants reagent on pickup.
type Collectible struct {
	Reagent Reagent
	Amount  float32
}

// Slug is a fired projectile with a time-to-live.
type Slug struct {
	TTL float32
}

// Cull removes an entity once it drifts beyond MaxDistance from the
// reference point. Counted entities hold a reservation against the
// population cap and release it when removed.
type Cull struct {
	MaxDistance float32
	Counted     bool
}
