package viewer

import (
	"path/filepath"

	"meshvr/internal/assets"
	"meshvr/internal/components"
	"meshvr/internal/engine"
	"meshvr/internal/interact"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Stage holds the scene and the single interactive mesh actor.
type Stage struct {
	Scene   *engine.Scene
	Handles *interact.Handles

	mesh   *interact.Handle
	source *assets.Mesh
	redraw interact.Redrawer
}

func NewStage(redraw interact.Redrawer) *Stage {
	return &Stage{
		Scene:   engine.NewScene("meshvr"),
		Handles: interact.NewHandles(),
		redraw:  redraw,
	}
}

// Current is the mesh handle, or nil before the first load.
func (s *Stage) Current() *interact.Handle {
	return s.mesh
}

// Source is the loaded mesh file, or nil.
func (s *Stage) Source() *assets.Mesh {
	return s.source
}

// SetMesh replaces the current actor with a new one showing m. The mesh
// turns about its bounds center, which is placed above the origin so the
// mesh rests on the floor; that placement is what Reset returns to.
func (s *Stage) SetMesh(m *assets.Mesh, color, selected rl.Color) *interact.Handle {
	s.clear()

	a := engine.NewActor(filepath.Base(m.Path))
	a.Pickable = true
	a.Transform.Position = rl.Vector3{Y: (m.Bounds.Max.Y - m.Bounds.Min.Y) / 2}
	r := components.NewMeshRenderer(m.Model, m.Bounds, color)
	r.Pivot = boundsCenter(m.Bounds)
	a.AddComponent(r)
	s.Scene.Add(a)
	a.Start()

	h := interact.MakeInteractive(a, selected, s.redraw)
	s.Handles.Add(h)
	s.mesh = h
	s.source = m
	s.redraw.RequestRedraw()
	return h
}

// SwapModel replaces the geometry of the current actor in place,
// keeping its transform, colors and reset snapshot.
func (s *Stage) SwapModel(m *assets.Mesh) bool {
	r := s.renderer()
	if r == nil {
		return false
	}
	r.Unload()
	r.Model = m.Model
	r.Bounds = m.Bounds
	r.Pivot = boundsCenter(m.Bounds)
	s.source = m
	s.redraw.RequestRedraw()
	return true
}

func boundsCenter(b rl.BoundingBox) rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(b.Min, b.Max), 0.5)
}

func (s *Stage) renderer() *components.MeshRenderer {
	if s.mesh == nil {
		return nil
	}
	return engine.GetComponent[*components.MeshRenderer](s.mesh.Actor())
}

// SetRepresentation changes how the mesh is drawn.
func (s *Stage) SetRepresentation(rep components.Representation) {
	if r := s.renderer(); r != nil && r.Representation != rep {
		r.Representation = rep
		s.redraw.RequestRedraw()
	}
}

func (s *Stage) Draw() {
	rl.DrawGrid(20, 0.25)
	for _, a := range s.Scene.Actors {
		if r := engine.GetComponent[*components.MeshRenderer](a); r != nil {
			r.Draw()
		}
	}
}

func (s *Stage) clear() {
	if s.mesh == nil {
		return
	}
	a := s.mesh.Actor()
	if r := s.renderer(); r != nil {
		r.Unload()
	}
	s.Handles.Remove(a)
	s.Scene.Remove(a)
	s.mesh = nil
	s.source = nil
}

// Unload frees the GPU model of the current actor.
func (s *Stage) Unload() {
	s.clear()
}
