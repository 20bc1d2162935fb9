package components

import (
	"strings"

	"meshvr/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Representation selects how a mesh is drawn.
type Representation int

const (
	Surface Representation = iota
	Wireframe
	Points
)

var representationNames = [...]string{"surface", "wireframe", "points"}

func (r Representation) String() string {
	if r < 0 || int(r) >= len(representationNames) {
		return "surface"
	}
	return representationNames[r]
}

// ParseRepresentation maps a selector value to a Representation.
// Unknown names fall back to Surface.
func ParseRepresentation(name string) Representation {
	for i, n := range representationNames {
		if strings.EqualFold(n, name) {
			return Representation(i)
		}
	}
	return Surface
}

// Representations lists every representation in selector order.
func Representations() []Representation {
	return []Representation{Surface, Wireframe, Points}
}

// MeshRenderer draws a loaded model with the owning actor's transform.
type MeshRenderer struct {
	engine.BaseComponent
	Model          rl.Model
	Color          rl.Color
	Representation Representation
	// Bounds is the model-space bounding box, captured at load time so
	// picking never has to touch GPU-side mesh data.
	Bounds rl.BoundingBox
	// Pivot is the model-space point placed at the actor's position.
	// Scale and rotation turn about it.
	Pivot rl.Vector3
}

func NewMeshRenderer(model rl.Model, bounds rl.BoundingBox, color rl.Color) *MeshRenderer {
	return &MeshRenderer{
		Model:  model,
		Color:  color,
		Bounds: bounds,
	}
}

// WorldSphere returns a bounding sphere of the mesh in world space.
func (m *MeshRenderer) WorldSphere() (center rl.Vector3, radius float32) {
	a := m.GetActor()
	if a == nil {
		return rl.Vector3{}, 0
	}
	localCenter := rl.Vector3Subtract(rl.Vector3Scale(rl.Vector3Add(m.Bounds.Min, m.Bounds.Max), 0.5), m.Pivot)
	half := rl.Vector3Scale(rl.Vector3Subtract(m.Bounds.Max, m.Bounds.Min), 0.5)

	s := a.Transform.Scale
	maxScale := max(absF(s.X), absF(s.Y), absF(s.Z))

	center = rl.Vector3Transform(localCenter, a.Transform.Matrix())
	radius = rl.Vector3Length(half) * maxScale
	return center, radius
}

// Matrix maps model space to world space: the pivot shift, then the
// actor transform.
func (m *MeshRenderer) Matrix() rl.Matrix {
	shift := rl.MatrixTranslate(-m.Pivot.X, -m.Pivot.Y, -m.Pivot.Z)
	a := m.GetActor()
	if a == nil {
		return shift
	}
	return rl.MatrixMultiply(shift, a.Transform.Matrix())
}

func (m *MeshRenderer) Draw() {
	a := m.GetActor()
	if a == nil || !a.Visible {
		return
	}

	m.Model.Transform = m.Matrix()

	switch m.Representation {
	case Wireframe:
		rl.DrawModelWires(m.Model, rl.Vector3Zero(), 1.0, m.Color)
	case Points:
		rl.DrawModelPoints(m.Model, rl.Vector3Zero(), 1.0, m.Color)
	default:
		rl.DrawModel(m.Model, rl.Vector3Zero(), 1.0, m.Color)
	}
}

func (m *MeshRenderer) Unload() {
	rl.UnloadModel(m.Model)
}

func absF(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
