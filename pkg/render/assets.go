package render

import (
	"sync"

	"github.com/taigrr/bedeck/pkg/geom"
	"github.com/taigrr/bedeck/pkg/math3d"
)

// CubeHandle is the mesh handle of the built-in unit cube.
const CubeHandle = "cube"

// Assets maps mesh and texture handles to drawable resources.
type Assets struct {
	mu       sync.RWMutex
	meshes   map[string]MeshSource
	textures map[string]*Texture
}

// NewAssets creates a registry holding only the unit cube.
func NewAssets() *Assets {
	a := &Assets{
		meshes:   make(map[string]MeshSource),
		textures: make(map[string]*Texture),
	}
	a.meshes[CubeHandle] = UnitCube()
	return a
}

// AddMesh registers mesh under handle, replacing any previous one.
func (a *Assets) AddMesh(handle string, mesh MeshSource) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.meshes[handle] = mesh
}

// Mesh returns the mesh registered under handle.
func (a *Assets) Mesh(handle string) (MeshSource, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	m, ok := a.meshes[handle]
	return m, ok
}

// AddTexture registers tex under handle, replacing any previous one.
func (a *Assets) AddTexture(handle string, tex *Texture) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.textures[handle] = tex
}

// Texture returns the texture registered under handle.
func (a *Assets) Texture(handle string) (*Texture, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.textures[handle]
	return t, ok
}

// cubeMesh is a unit cube centred on the origin with a hard normal and a
// full texture per side.
type cubeMesh struct {
	verts [24]Vertex
	faces [12][3]int
}

var unitCube = buildUnitCube()

// UnitCube returns the shared unit cube mesh.
func UnitCube() MeshSource {
	return unitCube
}

func buildUnitCube() *cubeMesh {
	const h = 0.5
	corners := [8]math3d.Vec3{
		{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h}, // back
		{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h}, // front
	}

	// Corner indices per side in renderer winding.
	sides := [6][4]int{
		{0, 1, 2, 3}, // back   (-Z)
		{5, 4, 7, 6}, // front  (+Z)
		{4, 0, 3, 7}, // left   (-X)
		{1, 5, 6, 2}, // right  (+X)
		{3, 2, 6, 7}, // top    (+Y)
		{4, 5, 1, 0}, // bottom (-Y)
	}
	normals := [6]math3d.Vec3{
		{X: 0, Y: 0, Z: -1},
		{X: 0, Y: 0, Z: 1},
		{X: -1, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: -1, Z: 0},
	}
	uvs := [4]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

	c := &cubeMesh{}
	for s, side := range sides {
		for k, corner := range side {
			c.verts[s*4+k] = Vertex{Position: corners[corner], Normal: normals[s], UV: uvs[k]}
		}
		base := s * 4
		c.faces[s*2] = [3]int{base, base + 1, base + 2}
		c.faces[s*2+1] = [3]int{base, base + 2, base + 3}
	}
	return c
}

func (c *cubeMesh) VertexCount() int   { return len(c.verts) }
func (c *cubeMesh) TriangleCount() int { return len(c.faces) }
func (c *cubeMesh) Face(i int) [3]int  { return c.faces[i] }

func (c *cubeMesh) Vertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := c.verts[i]
	return v.Position, v.Normal, v.UV
}

func (c *cubeMesh) LocalBounds() geom.AABB {
	return geom.BoxAround(math3d.Vec3{}, math3d.Splat(1))
}
