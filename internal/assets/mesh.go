package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gostl/pkg/geometry"
	"github.com/philipparndt/gostl/pkg/stl"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported mesh format")
	ErrEmptyMesh         = errors.New("mesh has no geometry")
)

// Extensions lists the formats LoadMesh accepts. STL goes through gostl,
// the rest through raylib's model loader.
var Extensions = []string{".stl", ".obj", ".gltf", ".glb", ".iqm", ".vox", ".m3d"}

// Supported reports whether path has a loadable extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Mesh is a loaded model ready for a MeshRenderer.
type Mesh struct {
	Path      string
	Model     rl.Model
	Bounds    rl.BoundingBox
	Triangles int
}

// LoadMesh reads path into a GPU model. It needs a live window. On error
// nothing is allocated.
func LoadMesh(path string) (*Mesh, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%s: %w", filepath.Ext(path), ErrUnsupportedFormat)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open mesh: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".stl") {
		data, err := ReadSTL(path)
		if err != nil {
			return nil, err
		}
		return &Mesh{
			Path:      path,
			Model:     rl.LoadModelFromMesh(data.upload()),
			Bounds:    data.Bounds,
			Triangles: data.Triangles(),
		}, nil
	}

	model := rl.LoadModel(path)
	if model.MeshCount == 0 {
		rl.UnloadModel(model)
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyMesh)
	}
	tris := 0
	for _, m := range model.GetMeshes() {
		tris += int(m.TriangleCount)
	}
	if tris == 0 {
		rl.UnloadModel(model)
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyMesh)
	}
	return &Mesh{
		Path:      path,
		Model:     model,
		Bounds:    rl.GetModelBoundingBox(model),
		Triangles: tris,
	}, nil
}

// MeshData is flat-shaded triangle soup in raylib's vertex layout.
type MeshData struct {
	Vertices []float32 // xyz per vertex
	Normals  []float32 // xyz per vertex
	Bounds   rl.BoundingBox
}

func (d *MeshData) Triangles() int {
	return len(d.Vertices) / 9
}

// ReadSTL parses a binary or ASCII STL file.
func ReadSTL(path string) (*MeshData, error) {
	model, err := stl.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse STL: %w", err)
	}
	return buildMeshData(model)
}

func buildMeshData(model *stl.Model) (*MeshData, error) {
	if len(model.Triangles) == 0 {
		return nil, ErrEmptyMesh
	}
	n := len(model.Triangles) * 3
	d := &MeshData{
		Vertices: make([]float32, 0, n*3),
		Normals:  make([]float32, 0, n*3),
	}
	first := true
	for _, tri := range model.Triangles {
		normal := tri.CalculateNormal()
		for _, v := range []geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			p := rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
			d.Vertices = append(d.Vertices, p.X, p.Y, p.Z)
			d.Normals = append(d.Normals, float32(normal.X), float32(normal.Y), float32(normal.Z))
			if first {
				d.Bounds = rl.BoundingBox{Min: p, Max: p}
				first = false
				continue
			}
			d.Bounds.Min = rl.Vector3Min(d.Bounds.Min, p)
			d.Bounds.Max = rl.Vector3Max(d.Bounds.Max, p)
		}
	}
	return d, nil
}

// upload copies the data into raylib-owned memory, so UnloadModel can free
// it, and sends it to the GPU.
func (d *MeshData) upload() rl.Mesh {
	mesh := rl.Mesh{
		VertexCount:   int32(len(d.Vertices) / 3),
		TriangleCount: int32(d.Triangles()),
	}
	mesh.Vertices = cFloats(d.Vertices)
	mesh.Normals = cFloats(d.Normals)
	rl.UploadMesh(&mesh, false)
	return mesh
}

func cFloats(src []float32) *float32 {
	ptr := (*float32)(rl.MemAlloc(uint32(len(src) * 4)))
	copy(unsafe.Slice(ptr, len(src)), src)
	return ptr
}
