package models

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/bedeck/pkg/math3d"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
}

func writeTriangleGLB(t *testing.T, withMesh bool) string {
	t.Helper()

	doc := gltf.NewDocument()
	if withMesh {
		pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
		idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
		doc.Meshes = []*gltf.Mesh{{
			Name: "triangle",
			Primitives: []*gltf.Primitive{{
				Indices:    gltf.Index(idx),
				Attributes: map[string]int{gltf.POSITION: pos},
			}},
		}}
	}

	path := filepath.Join(t.TempDir(), "triangle.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	return path
}

func TestLoadGLBTriangle(t *testing.T) {
	mesh, img, err := NewGLTFLoader().Load(writeTriangleGLB(t, true))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img != nil {
		t.Error("expected no embedded texture")
	}
	if mesh.TriangleCount() != 1 || mesh.VertexCount() != 3 {
		t.Fatalf("got %d triangles, %d vertices", mesh.TriangleCount(), mesh.VertexCount())
	}
	if got := mesh.Face(0); got != [3]int{0, 2, 1} {
		t.Errorf("Face(0) = %v, want [0 2 1]", got)
	}
	for i, v := range mesh.Vertices {
		if !v.Normal.ApproxEqual(math3d.V3(0, 0, 1), 1e-6) {
			t.Errorf("vertex %d normal = %v, want +Z", i, v.Normal)
		}
	}
	if mesh.Bounds.Max != math3d.V3(1, 1, 0) {
		t.Errorf("bounds max = %v", mesh.Bounds.Max)
	}
}

func TestLoadGLBWithoutMeshes(t *testing.T) {
	_, _, err := NewGLTFLoader().Load(writeTriangleGLB(t, false))
	if !errors.Is(err, ErrNoMeshes) {
		t.Errorf("err = %v, want ErrNoMeshes", err)
	}
}
