package components

import "github.com/mlange-42/ark/ecs"

// Shield is the sensor circle entity that exists while the player holds
// the shield up. Parent is a weak handle to the owning ship; the shield
// follows it and is despawned when the action is released.
type Shield struct {
	Radius float32
	Parent ecs.Entity
}
