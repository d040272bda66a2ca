package components

// Player holds the ship's movement parameters and the capability flags
// toggled by the progression machine. The flags are plain state read by
// the weapon/shield/cargo systems.
type Player struct {
	Facing        float32 // radians
	MaxSpeed      float32
	Acceleration  float32
	RotationSpeed float32 // radians per second
	Radius        float32

	// Capability flags, owned by progression stage hooks.
	WeaponEnabled    bool
	ShieldEnabled    bool
	CargoDumpEnabled bool

	// ShieldRaised is true while the shield action is held and the
	// shield is enabled.
	ShieldRaised bool
	ShieldRadius float32
}

// MainGun holds weapon parameters and the refire timer.
type MainGun struct {
	FireDelay             float32
	ProjectileSpeed       float32
	MaxProjectileDistance float32
	OriginDistance        float32
	Recoil                float32
	HeatPerShot           float32

	delayRemaining float32
}

// Ready reports whether the refire delay has elapsed.
func (g *MainGun) Ready() bool {
	return g.delayRemaining <= 0
}

// Fired restarts the refire delay.
func (g *MainGun) Fired() {
	g.delayRemaining = g.FireDelay
}

// Tick advances the refire timer.
func (g *MainGun) Tick(dt float32) {
	g.delayRemaining -= dt
	if g.delayRemaining < 0 {
		g.delayRemaining = 0
	}
}
