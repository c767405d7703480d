package stl

import (
	"math"
	"sort"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// Model represents a complete STL model
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// Hit is the nearest intersection of a ray with the model
type Hit struct {
	Position geometry.Vector3
	Normal   geometry.Vector3
	Distance float64
	Triangle int
	// Corners are the vertices of the hit facet
	Corners []geometry.Vector3
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}

// Vertices returns the distinct vertices in first-seen order
func (m *Model) Vertices() []geometry.Vector3 {
	seen := make(map[geometry.Vector3]struct{}, len(m.Triangles))
	vertices := make([]geometry.Vector3, 0, len(m.Triangles))
	for _, triangle := range m.Triangles {
		for _, v := range triangle.Vertices() {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			vertices = append(vertices, v)
		}
	}
	return vertices
}

// NearestVertices returns up to k distinct vertices closest to point, nearest first
func (m *Model) NearestVertices(point geometry.Vector3, k int) []geometry.Vector3 {
	if k <= 0 {
		return nil
	}

	vertices := m.Vertices()
	sort.SliceStable(vertices, func(i, j int) bool {
		return vertices[i].DistanceSquared(point) < vertices[j].DistanceSquared(point)
	})

	if k > len(vertices) {
		k = len(vertices)
	}
	return vertices[:k]
}

// Raycast returns the nearest facet hit in front of origin
func (m *Model) Raycast(origin, direction geometry.Vector3) (Hit, bool) {
	best := Hit{Distance: math.MaxFloat64, Triangle: -1}
	for i, triangle := range m.Triangles {
		t, ok := triangle.IntersectRay(origin, direction)
		if !ok || t >= best.Distance {
			continue
		}
		best.Distance = t
		best.Triangle = i
	}

	if best.Triangle < 0 {
		return Hit{}, false
	}

	triangle := m.Triangles[best.Triangle]
	best.Position = origin.Add(direction.Mul(best.Distance))
	best.Normal = triangle.FacetNormal()
	best.Corners = triangle.Vertices()
	return best, true
}
