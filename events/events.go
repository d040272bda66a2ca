package events

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warlord/components"
)

// SpawnRequest asks the population manager for one cluster of objects
// scattered around a center point. The whole request is accepted or
// rejected against the population cap; there is no partial spawn.
type SpawnRequest struct {
	Count            int
	CenterX, CenterY float32
	ChanceOfMineral  float32
	ChanceOfExotic   float32
}

// Collision is an overlap-begin notification from the physics
// collaborator. The routing glue inspects the tags on both entities.
type Collision struct {
	A, B ecs.Entity
}

// Collection is raised when a collectible overlaps the player.
type Collection struct {
	Reagent components.Reagent
	Amount  float32
}

// ReagentDelta is raised on every inventory mutation. For collections the
// delta is the raw requested amount before the pool clamps; for reactions
// it is the exact applied amount.
type ReagentDelta struct {
	Reagent components.Reagent
	Delta   float32
}

// RockDestroyed is raised when a projectile or the shield kills a rock.
// The splitting logic replaces the rock with mineral fragments at X, Y.
type RockDestroyed struct {
	Entity ecs.Entity
	X, Y   float32
}

// Sound identifies a fire-and-forget audio notification.
type Sound uint8

const (
	SoundButtonClick Sound = iota
	SoundRockDestroyed
	SoundCollected
	SoundNextStage
	SoundCannonFire
	SoundShieldTransmute
	SoundRockCollision
)

// String returns the sound's asset name.
func (s Sound) String() string {
	switch s {
	case SoundButtonClick:
		return "buttonclick"
	case SoundRockDestroyed:
		return "rock"
	case SoundCollected:
		return "collect"
	case SoundNextStage:
		return "nextstage"
	case SoundCannonFire:
		return "cannon"
	case SoundShieldTransmute:
		return "transmute"
	case SoundRockCollision:
		return "hitrock"
	}
	return "unknown"
}

// SoundEvent is a positional audio notification. RelX/RelY are relative
// to the listener; zero means non-spatial playback.
type SoundEvent struct {
	Kind       Sound
	RelX, RelY float32
}
