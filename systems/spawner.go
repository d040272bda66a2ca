package systems

import (
	"math"

	"github.com/pthm-cable/warlord/config"
	"github.com/pthm-cable/warlord/events"
)

// Population is the single point of truth for the live spawned-object
// count. Cluster spawns reserve their full count up front; culls and
// destructions release one reservation each.
type Population struct {
	current int
	cap     int
}

// NewPopulation creates a population budget with the given cap.
func NewPopulation(cap int) *Population {
	return &Population{cap: cap}
}

// TryReserve reserves n slots if the whole request fits under the cap.
// Rejection is all-or-nothing; a rejected request leaves the counter
// untouched.
func (p *Population) TryReserve(n int) bool {
	if p.current+n > p.cap {
		return false
	}
	p.current += n
	return true
}

// Release returns one or more reservations.
func (p *Population) Release(n int) {
	p.current -= n
	if p.current < 0 {
		p.current = 0
	}
}

// Current returns the live reserved count.
func (p *Population) Current() int {
	return p.current
}

// Cap returns the population cap.
func (p *Population) Cap() int {
	return p.cap
}

// Spawner requests clusters of rocks around a moving reference point on
// a repeating timer.
type Spawner struct {
	MinClusterSize   int
	MaxClusterSize   int
	MinSpawnDistance float32
	MaxSpawnDistance float32
	Interval         float32
	ChanceOfMineral  float32

	// ChanceOfExotic stays zero until the CollectExotic stage unlocks
	// exotic collectibles.
	ChanceOfExotic float32

	remaining float32
}

// NewSpawner builds a spawner from config with a full interval on the
// timer.
func NewSpawner(cfg *config.SpawnerConfig) *Spawner {
	return &Spawner{
		MinClusterSize:   cfg.MinClusterSize,
		MaxClusterSize:   cfg.MaxClusterSize,
		MinSpawnDistance: float32(cfg.MinSpawnDistance),
		MaxSpawnDistance: float32(cfg.MaxSpawnDistance),
		Interval:         float32(cfg.Interval),
		ChanceOfMineral:  float32(cfg.ChanceOfMineral),
		remaining:        float32(cfg.Interval),
	}
}

// Tick advances the repeating timer and pushes one spawn request per
// firing, centered a random direction and distance from the reference
// point. A large dt can fire the timer more than once. A non-positive
// interval disables the spawner.
func (s *Spawner) Tick(dt float32, refX, refY float32, rng *Rand, out *events.Queue[events.SpawnRequest]) {
	if s.Interval <= 0 {
		return
	}
	s.remaining -= dt
	for s.remaining <= 0 {
		s.remaining += s.Interval
		dirX, dirY := rng.Direction()
		dist := rng.Range(s.MinSpawnDistance, s.MaxSpawnDistance)
		out.Push(events.SpawnRequest{
			Count:           rng.IntRange(s.MinClusterSize, s.MaxClusterSize),
			CenterX:         refX + dirX*dist,
			CenterY:         refY + dirY*dist,
			ChanceOfMineral: s.ChanceOfMineral,
			ChanceOfExotic:  s.ChanceOfExotic,
		})
	}
}

// SpawnKind distinguishes the object variants a cluster can produce.
type SpawnKind uint8

const (
	SpawnRock SpawnKind = iota
	SpawnMineral
	SpawnExotic
)

// ObjectSpec describes one object of a cluster before entity creation.
type ObjectSpec struct {
	Kind       SpawnKind
	X, Y       float32
	VelX, VelY float32
	AngVelX    float32
	AngVelY    float32
	AngVelZ    float32
	Amount     float32
}

// ClusterRadius returns the scatter disk radius for a cluster of n unit
// objects: the disk's area scales with n, keeping density roughly
// constant across cluster sizes.
func ClusterRadius(n int) float32 {
	return 2 * float32(math.Sqrt(float64(n)*4/math.Pi))
}

// BuildCluster scatters a spawn request into concrete object specs.
// Placement uses rejection sampling inside the cluster disk; each object
// rolls independently for the mineral (and exotic) variant and receives
// independent random spin and drift.
func BuildCluster(rng *Rand, req events.SpawnRequest, mineralAmount, exoticAmount float32) []ObjectSpec {
	radius := ClusterRadius(req.Count)
	specs := make([]ObjectSpec, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		x, y := rng.InDisk(radius)
		spec := ObjectSpec{
			X:       req.CenterX + x,
			Y:       req.CenterY + y,
			VelX:    rng.Range(-1, 1),
			VelY:    rng.Range(-1, 1),
			AngVelX: rng.Range(-math.Pi, math.Pi),
			AngVelY: rng.Range(-math.Pi, math.Pi),
			AngVelZ: rng.Range(-math.Pi, math.Pi),
		}
		if rng.Range(0, 1) > req.ChanceOfMineral {
			spec.Kind = SpawnRock
		} else if rng.Range(0, 1) < req.ChanceOfExotic {
			spec.Kind = SpawnExotic
			spec.Amount = exoticAmount
		} else {
			spec.Kind = SpawnMineral
			spec.Amount = mineralAmount
		}
		specs = append(specs, spec)
	}
	return specs
}
