// Package systems provides the simulation systems: the reaction engine,
// the population spawner, progression, and spatial lookups.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warlord/components"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	DX, DY float32 // delta from query origin
	DistSq float32 // squared distance (avoid sqrt in hot path)
}

type cellKey struct {
	col, row int32
}

// SpatialHash provides neighbor lookups over an unbounded world using a
// sparse cell map. It is rebuilt every tick before collision detection.
type SpatialHash struct {
	cellSize float32
	cells    map[cellKey][]ecs.Entity
}

// NewSpatialHash creates a spatial hash with the given cell size.
func NewSpatialHash(cellSize float32) *SpatialHash {
	return &SpatialHash{
		cellSize: cellSize,
		cells:    make(map[cellKey][]ecs.Entity),
	}
}

// Clear removes all entities, keeping cell capacity for reuse.
func (h *SpatialHash) Clear() {
	for k := range h.cells {
		h.cells[k] = h.cells[k][:0]
	}
}

func (h *SpatialHash) key(x, y float32) cellKey {
	col := int32(x / h.cellSize)
	if x < 0 {
		col--
	}
	row := int32(y / h.cellSize)
	if y < 0 {
		row--
	}
	return cellKey{col: col, row: row}
}

// Insert adds an entity to the hash at the given position.
func (h *SpatialHash) Insert(e ecs.Entity, x, y float32) {
	k := h.key(x, y)
	h.cells[k] = append(h.cells[k], e)
}

// QueryRadiusInto finds entities within radius of (x, y) and appends them
// to dst. Reuse dst across calls to avoid allocations.
func (h *SpatialHash) QueryRadiusInto(dst []Neighbor, x, y, radius float32, posMap *ecs.Map1[components.Position]) []Neighbor {
	cellRadius := int32(radius/h.cellSize) + 1
	center := h.key(x, y)
	radiusSq := radius * radius

	for dc := -cellRadius; dc <= cellRadius; dc++ {
		for dr := -cellRadius; dr <= cellRadius; dr++ {
			k := cellKey{col: center.col + dc, row: center.row + dr}
			for _, e := range h.cells[k] {
				pos := posMap.Get(e)
				if pos == nil {
					continue
				}
				dx := pos.X - x
				dy := pos.Y - y
				distSq := dx*dx + dy*dy
				if distSq <= radiusSq {
					dst = append(dst, Neighbor{E: e, DX: dx, DY: dy, DistSq: distSq})
				}
			}
		}
	}
	return dst
}
