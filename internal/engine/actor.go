package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Transform is the world transform of an actor. The viewer has no hierarchy,
// so local and world space coincide.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

// Matrix composes scale -> rotate (X, Y, Z) -> translate.
func (t Transform) Matrix() rl.Matrix {
	scaleMatrix := rl.MatrixScale(t.Scale.X, t.Scale.Y, t.Scale.Z)

	rotX := rl.MatrixRotateX(t.Rotation.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(t.Rotation.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(t.Rotation.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	transMatrix := rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)
}

var nextUID atomic.Uint64

// Actor is anything placed in the scene: the loaded mesh, the floor grid.
type Actor struct {
	UID       uint64
	Name      string
	Transform Transform
	Visible   bool
	// Pickable actors can be grabbed and hit by laser pointers.
	Pickable   bool
	Scene      *Scene
	components []Component
	started    bool
}

func NewActor(name string) *Actor {
	return &Actor{
		UID:     nextUID.Add(1),
		Name:    name,
		Visible: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.Vector3{},
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
	}
}

func (a *Actor) AddComponent(c Component) {
	c.SetActor(a)
	a.components = append(a.components, c)
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](a *Actor) T {
	var zero T
	if a == nil {
		return zero
	}
	for _, c := range a.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

func (a *Actor) Start() {
	if a.started {
		return
	}
	for _, c := range a.components {
		c.Start()
	}
	a.started = true
}

func (a *Actor) Update(deltaTime float32) {
	if !a.Visible {
		return
	}
	for _, c := range a.components {
		c.Update(deltaTime)
	}
}

func (a *Actor) Components() []Component {
	return a.components
}
