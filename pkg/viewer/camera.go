package viewer

import (
	"math"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

const (
	// DefaultFOV is the vertical field of view in radians (45 degrees)
	DefaultFOV = math.Pi / 4
	// DefaultWidth and DefaultHeight describe the default viewport in pixels
	DefaultWidth  = 1280
	DefaultHeight = 720

	minDistance = 0.1
	nearPlane   = 0.01
)

// Camera represents a 3D perspective camera looking at a target
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // Vertical field of view in radians
	Distance  float64
	RotationX float64 // Rotation around X axis (vertical)
	RotationY float64 // Rotation around Y axis (horizontal)
	Width     float64 // Viewport width in pixels
	Height    float64 // Viewport height in pixels
}

// NewCamera creates a camera that frames the bounding box with the default field of view
func NewCamera(bbox geometry.BoundingBox) *Camera {
	return NewCameraWithFOV(bbox, DefaultFOV)
}

// NewCameraWithFOV creates a camera on +Z of the box center, far enough away
// that the bounding sphere fits into the field of view. An empty box frames the origin.
func NewCameraWithFOV(bbox geometry.BoundingBox, fov float64) *Camera {
	if fov <= 0 || fov >= math.Pi {
		fov = DefaultFOV
	}
	if bbox.IsEmpty() {
		bbox = geometry.BoundingBox{}
	}

	center := bbox.Center()
	distance := FramingDistance(bbox.Radius(), fov)

	c := &Camera{
		Target:   center,
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      fov,
		Distance: distance,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
	}
	c.UpdatePosition()
	return c
}

// FramingDistance returns the distance at which a sphere of the given radius
// exactly fills the field of view
func FramingDistance(radius, fov float64) float64 {
	d := radius / math.Sin(fov/2)
	if d < minDistance {
		return minDistance
	}
	return d
}

// SetViewport updates the viewport size; non-positive sizes are ignored
func (c *Camera) SetViewport(width, height float64) {
	if width > 0 {
		c.Width = width
	}
	if height > 0 {
		c.Height = height
	}
}

// UpdatePosition updates camera position based on rotation angles
func (c *Camera) UpdatePosition() {
	// Calculate position based on spherical coordinates
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate rotates the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// Clamp X rotation to prevent gimbal lock
	maxAngle := math.Pi/2 - 0.1
	if c.RotationX > maxAngle {
		c.RotationX = maxAngle
	}
	if c.RotationX < -maxAngle {
		c.RotationX = -maxAngle
	}

	c.UpdatePosition()
}

// Zoom changes the camera distance
func (c *Camera) Zoom(delta float64) {
	c.Distance *= (1.0 + delta)
	if c.Distance < minDistance {
		c.Distance = minDistance
	}
	c.UpdatePosition()
}

func (c *Camera) basis() (forward, right, up geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// Project projects a 3D point to screen pixels. depth is the distance along
// the view direction; points behind the camera are clamped to the near plane.
func (c *Camera) Project(point geometry.Vector3) (x, y, depth float64) {
	forward, right, up := c.basis()

	// Transform to camera space
	relative := point.Sub(c.Position)
	cx := relative.Dot(right)
	cy := relative.Dot(up)
	depth = relative.Dot(forward)

	if depth <= nearPlane {
		depth = nearPlane
	}

	aspect := c.Width / c.Height
	fovScale := math.Tan(c.FOV / 2)

	x = (cx/(depth*fovScale*aspect))*(c.Width/2) + (c.Width / 2)
	y = (-cy/(depth*fovScale))*(c.Height/2) + (c.Height / 2)
	return x, y, depth
}

// WorldToScreen returns the pixel position of a world point
func (c *Camera) WorldToScreen(point geometry.Vector3) geometry.Vector2 {
	x, y, _ := c.Project(point)
	return geometry.NewVector2(x, y)
}

// ScreenRay converts a pixel position into a world-space ray from the camera
func (c *Camera) ScreenRay(screenX, screenY float64) (origin, direction geometry.Vector3) {
	// Convert screen coordinates to normalized device coordinates (-1 to 1)
	ndcX := (2.0 * screenX / c.Width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / c.Height)

	aspect := c.Width / c.Height
	fovScale := math.Tan(c.FOV / 2)

	forward, right, up := c.basis()

	direction = forward.Add(right.Mul(ndcX * fovScale * aspect)).Add(up.Mul(ndcY * fovScale))
	return c.Position, direction.Normalize()
}
