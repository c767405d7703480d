package geometry

// rayEpsilon rejects rays parallel to the triangle plane and hits behind the origin
const rayEpsilon = 1e-12

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{
		Normal: normal,
		V1:     v1,
		V2:     v2,
		V3:     v3,
	}
}

// Vertices returns the three corners in winding order
func (t Triangle) Vertices() []Vector3 {
	return []Vector3{t.V1, t.V2, t.V3}
}

// CalculateNormal computes the normal vector for the triangle
func (t Triangle) CalculateNormal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// FacetNormal returns the stored normal, falling back to the winding normal
// when the file left it zeroed (common in exported STL files).
func (t Triangle) FacetNormal() Vector3 {
	if t.Normal.LengthSquared() > 0 {
		return t.Normal.Normalize()
	}
	return t.CalculateNormal()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	cross := edge1.Cross(edge2)
	return cross.Length() / 2.0
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// IntersectRay returns the ray parameter of the hit point (origin + dir*t)
// using the Möller–Trumbore test. Both faces are hit.
func (t Triangle) IntersectRay(origin, dir Vector3) (float64, bool) {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)

	pvec := dir.Cross(edge2)
	det := edge1.Dot(pvec)
	if det > -rayEpsilon && det < rayEpsilon {
		return 0, false
	}
	invDet := 1.0 / det

	tvec := origin.Sub(t.V1)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	qvec := tvec.Cross(edge1)
	v := dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := edge2.Dot(qvec) * invDet
	if dist <= rayEpsilon {
		return 0, false
	}
	return dist, true
}
