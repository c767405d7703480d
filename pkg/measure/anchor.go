package measure

import (
	"sort"
	"sync/atomic"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// DefaultSnapThreshold is the distance below which a pick snaps onto a candidate vertex
const DefaultSnapThreshold = 0.1

// AnchorID identifies an anchor for its whole lifetime. IDs are never reused,
// so a reference to an anchor that was cleared away can be detected.
type AnchorID uint64

var lastAnchorID atomic.Uint64

func nextAnchorID() AnchorID {
	return AnchorID(lastAnchorID.Add(1))
}

// Anchor is one measured point in world space. It is immutable after construction.
type Anchor struct {
	id       AnchorID
	position geometry.Vector3
	normal   geometry.Vector3
}

// NewAnchor creates an anchor at an exact position, without snapping
func NewAnchor(position, normal geometry.Vector3) Anchor {
	return Anchor{
		id:       nextAnchorID(),
		position: position,
		normal:   normal,
	}
}

// ID returns the anchor's identity
func (a Anchor) ID() AnchorID {
	return a.id
}

// Position returns the world-space position
func (a Anchor) Position() geometry.Vector3 {
	return a.position
}

// Normal returns the surface normal at the pick point
func (a Anchor) Normal() geometry.Vector3 {
	return a.normal
}

// Equal reports whether both anchors have the same position and normal.
// Identity is not compared.
func (a Anchor) Equal(other Anchor) bool {
	return a.position == other.position && a.normal == other.normal
}

// PickEvent is a raw hit delivered by the picking layer
type PickEvent struct {
	WorldPosition  geometry.Vector3
	SurfaceNormal  geometry.Vector3
	NearbyVertices []geometry.Vector3 // e.g. corners of the hit triangle, may be empty
}

// Snapper builds anchors from raw hits, snapping onto nearby vertices
type Snapper struct {
	// Threshold is the exclusive snap distance
	Threshold float64
}

// DefaultSnapper returns a snapper using DefaultSnapThreshold
func DefaultSnapper() Snapper {
	return Snapper{Threshold: DefaultSnapThreshold}
}

// Snap returns the candidate nearest to hit when it is closer than the threshold,
// otherwise hit itself. The candidates slice is not reordered.
func (s Snapper) Snap(hit geometry.Vector3, candidates []geometry.Vector3) geometry.Vector3 {
	if len(candidates) == 0 {
		return hit
	}

	ranked := make([]geometry.Vector3, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceSquared(hit) < ranked[j].DistanceSquared(hit)
	})

	if nearest := ranked[0]; nearest.Distance(hit) < s.Threshold {
		return nearest
	}
	return hit
}

// CreateAnchor builds an anchor from a hit position, normal and optional candidates
func (s Snapper) CreateAnchor(hitPosition, hitNormal geometry.Vector3, candidates []geometry.Vector3) Anchor {
	return NewAnchor(s.Snap(hitPosition, candidates), hitNormal)
}

// CreateAnchorFromPick builds an anchor from a pick event
func (s Snapper) CreateAnchorFromPick(ev PickEvent) Anchor {
	return s.CreateAnchor(ev.WorldPosition, ev.SurfaceNormal, ev.NearbyVertices)
}

// CreateAnchor builds an anchor with the default snap threshold
func CreateAnchor(hitPosition, hitNormal geometry.Vector3, candidates []geometry.Vector3) Anchor {
	return DefaultSnapper().CreateAnchor(hitPosition, hitNormal, candidates)
}
