package measure

import (
	"testing"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

var up = geometry.NewVector3(0, 0, 1)

func TestCreateAnchorWithoutCandidates(t *testing.T) {
	hit := geometry.NewVector3(1.234, -5, 7)

	a := CreateAnchor(hit, up, nil)
	assert.Equal(t, hit, a.Position())
	assert.Equal(t, up, a.Normal())

	a = CreateAnchor(hit, up, []geometry.Vector3{})
	assert.Equal(t, hit, a.Position())
}

func TestCreateAnchorSnapsToNearestCandidate(t *testing.T) {
	hit := geometry.NewVector3(0, 0, 0)
	candidates := []geometry.Vector3{
		geometry.NewVector3(5, 5, 5),
		geometry.NewVector3(0.05, 0, 0),
	}

	a := CreateAnchor(hit, up, candidates)
	assert.Equal(t, geometry.NewVector3(0.05, 0, 0), a.Position())

	// caller's slice keeps its order
	assert.Equal(t, geometry.NewVector3(5, 5, 5), candidates[0])
}

func TestCreateAnchorKeepsHitWhenCandidatesAreFar(t *testing.T) {
	hit := geometry.NewVector3(0, 0, 0)

	a := CreateAnchor(hit, up, []geometry.Vector3{geometry.NewVector3(1, 0, 0)})
	assert.Equal(t, hit, a.Position())
}

func TestSnapThresholdIsExclusive(t *testing.T) {
	s := Snapper{Threshold: 0.5}
	hit := geometry.NewVector3(0, 0, 0)

	assert.Equal(t, hit, s.Snap(hit, []geometry.Vector3{geometry.NewVector3(0.5, 0, 0)}))
	assert.Equal(t, geometry.NewVector3(0, 0.49, 0), s.Snap(hit, []geometry.Vector3{geometry.NewVector3(0, 0.49, 0)}))
}

func TestSnapPicksNearestAmongSeveralInRange(t *testing.T) {
	hit := geometry.NewVector3(1, 1, 1)
	candidates := []geometry.Vector3{
		geometry.NewVector3(1.08, 1, 1),
		geometry.NewVector3(1, 1.02, 1),
		geometry.NewVector3(1, 1, 0.95),
	}

	assert.Equal(t, geometry.NewVector3(1, 1.02, 1), DefaultSnapper().Snap(hit, candidates))
}

func TestAnchorEqualityIsValueBased(t *testing.T) {
	p := geometry.NewVector3(1, 2, 3)
	a := NewAnchor(p, up)
	b := NewAnchor(p, up)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewAnchor(p, geometry.NewVector3(0, 1, 0))))
	assert.False(t, a.Equal(NewAnchor(geometry.NewVector3(1, 2, 4), up)))
}

func TestCreateAnchorFromPick(t *testing.T) {
	ev := PickEvent{
		WorldPosition:  geometry.NewVector3(2, 2, 0),
		SurfaceNormal:  up,
		NearbyVertices: []geometry.Vector3{geometry.NewVector3(2, 2.01, 0)},
	}

	a := Snapper{Threshold: 0.1}.CreateAnchorFromPick(ev)
	assert.Equal(t, geometry.NewVector3(2, 2.01, 0), a.Position())
	assert.Equal(t, up, a.Normal())
}
