package engine

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type countingComponent struct {
	BaseComponent
	starts  int
	updates int
}

func (c *countingComponent) Start()                   { c.starts++ }
func (c *countingComponent) Update(deltaTime float32) { c.updates++ }

func TestNewActor(t *testing.T) {
	obj := NewActor("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}

	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}

	if obj.Transform.Scale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Expected unit scale, got %v", obj.Transform.Scale)
	}

	if !obj.Visible {
		t.Error("New actors should be visible")
	}
}

func TestActorUniqueUIDs(t *testing.T) {
	obj1 := NewActor("First")
	obj2 := NewActor("Second")
	obj3 := NewActor("Third")

	if obj1.UID == obj2.UID || obj2.UID == obj3.UID || obj1.UID == obj3.UID {
		t.Error("Actors should have unique UIDs")
	}
}

func TestActorAddComponent(t *testing.T) {
	obj := NewActor("Test")
	comp := &BaseComponent{}

	obj.AddComponent(comp)

	if len(obj.components) != 1 {
		t.Errorf("Expected 1 component, got %d", len(obj.components))
	}

	if comp.GetActor() != obj {
		t.Error("Component actor should be set")
	}
}

func TestActorGetComponent(t *testing.T) {
	obj := NewActor("Test")
	comp := &countingComponent{}

	obj.AddComponent(&BaseComponent{})
	obj.AddComponent(comp)

	if found := GetComponent[*countingComponent](obj); found != comp {
		t.Error("GetComponent failed to find component")
	}

	if found := GetComponent[*countingComponent](nil); found != nil {
		t.Error("GetComponent on nil actor should return nil")
	}
}

func TestActorStartCalledOnce(t *testing.T) {
	obj := NewActor("Test")
	comp := &countingComponent{}
	obj.AddComponent(comp)

	obj.Start()
	obj.Start()

	if comp.starts != 1 {
		t.Errorf("Expected Start once, got %d", comp.starts)
	}
}

func TestActorUpdateSkipsHidden(t *testing.T) {
	obj := NewActor("Test")
	comp := &countingComponent{}
	obj.AddComponent(comp)

	obj.Update(0.016)
	obj.Visible = false
	obj.Update(0.016)

	if comp.updates != 1 {
		t.Errorf("Expected 1 update, got %d", comp.updates)
	}
}

func TestTransformMatrixIdentity(t *testing.T) {
	tr := Transform{Scale: rl.Vector3{X: 1, Y: 1, Z: 1}}
	m := tr.Matrix()
	if m != rl.MatrixIdentity() {
		t.Errorf("Expected identity matrix, got %v", m)
	}
}

func TestTransformMatrixTranslates(t *testing.T) {
	tr := Transform{
		Position: rl.Vector3{X: 1, Y: 2, Z: 3},
		Scale:    rl.Vector3{X: 2, Y: 2, Z: 2},
	}
	p := rl.Vector3Transform(rl.Vector3{X: 1}, tr.Matrix())
	want := rl.Vector3{X: 3, Y: 2, Z: 3}
	if p != want {
		t.Errorf("Expected %v, got %v", want, p)
	}
}
