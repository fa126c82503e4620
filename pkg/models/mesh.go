// Package models loads and builds the meshes that palette entries draw.
package models

import (
	"github.com/taigrr/bedeck/pkg/geom"
	"github.com/taigrr/bedeck/pkg/math3d"
)

// Mesh is an indexed triangle mesh.
//
// Faces are stored in the renderer's winding: the loaders and primitives
// take counter-clockwise (outward facing) triangles through AddTriangle and
// swap them, since the rasterizer flips Y when mapping to the screen.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Faces    []Face

	// Bounds is refreshed by CalculateBounds.
	Bounds geom.AABB
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle as three indices into Mesh.Vertices.
type Face struct {
	V [3]int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(pos, normal math3d.Vec3, uv math3d.Vec2) int {
	m.Vertices = append(m.Vertices, MeshVertex{Position: pos, Normal: normal, UV: uv})
	return len(m.Vertices) - 1
}

// AddTriangle appends the counter-clockwise triangle a, b, c.
func (m *Mesh) AddTriangle(a, b, c int) {
	m.Faces = append(m.Faces, Face{V: [3]int{a, c, b}})
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = geom.AABB{}
		return
	}

	m.Bounds = geom.AABB{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		m.Bounds.Min = m.Bounds.Min.Min(v.Position)
		m.Bounds.Max = m.Bounds.Max.Max(v.Position)
	}
}

// HasNormals reports whether any vertex carries a usable normal.
func (m *Mesh) HasNormals() bool {
	for _, v := range m.Vertices {
		if v.Normal.LenSq() > 1e-6 {
			return true
		}
	}
	return false
}

// CalculateSmoothNormals computes area-weighted vertex normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Vec3{}
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		// Stored faces are clockwise, so the outward normal is e2 x e1.
		normal := v2.Sub(v0).Cross(v1.Sub(v0))

		for _, idx := range f.V {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(normal)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Fit recenters the mesh on the origin and scales it uniformly so that its
// largest dimension equals size. Degenerate meshes are left alone.
func (m *Mesh) Fit(size float64) {
	m.CalculateBounds()
	dims := m.Bounds.Size()
	largest := max(dims.X, dims.Y, dims.Z)
	if largest <= 0 || size <= 0 {
		return
	}

	center := m.Bounds.Center()
	k := size / largest
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Sub(center).Scale(k)
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:     m.Name,
		Vertices: make([]MeshVertex, len(m.Vertices)),
		Faces:    make([]Face, len(m.Faces)),
		Bounds:   m.Bounds,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Vertex returns the position, normal, and UV for vertex i.
func (m *Mesh) Vertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := m.Vertices[i]
	return v.Position, v.Normal, v.UV
}

// Face returns the vertex indices for face i.
func (m *Mesh) Face(i int) [3]int {
	return m.Faces[i].V
}

// LocalBounds returns the model-space bounding box.
func (m *Mesh) LocalBounds() geom.AABB {
	return m.Bounds
}
