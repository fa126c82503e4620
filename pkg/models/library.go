package models

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrUnknownMesh is returned for a mesh handle that is neither a primitive
// nor a file with a supported extension.
var ErrUnknownMesh = errors.New("unknown mesh")

// FallbackMesh is the primitive drawn in place of a mesh that failed to load.
const FallbackMesh = PrimitiveSphere

// Library resolves mesh and texture handles to loaded assets. A handle is
// either a primitive name or a path, relative to Dir unless absolute.
// Results are cached by handle.
type Library struct {
	// Dir is the base directory for relative asset paths.
	Dir string
	// FitSize rescales loaded files so their largest dimension is FitSize.
	// Zero keeps file units.
	FitSize float64

	logger *slog.Logger

	mu     sync.Mutex
	meshes map[string]*Mesh
	images map[string]image.Image
}

// NewLibrary creates a library rooted at dir. A nil logger discards output.
func NewLibrary(dir string, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Library{
		Dir:     dir,
		FitSize: 1,
		logger:  logger,
		meshes:  make(map[string]*Mesh),
		images:  make(map[string]image.Image),
	}
}

// Mesh returns the mesh for handle.
func (l *Library) Mesh(handle string) (*Mesh, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if m, ok := l.meshes[handle]; ok {
		return m, nil
	}

	m, err := l.loadMesh(handle)
	if err != nil {
		return nil, err
	}
	l.meshes[handle] = m
	return m, nil
}

// MeshOrFallback returns the mesh for handle, or the fallback primitive with
// a logged warning when it cannot be loaded.
func (l *Library) MeshOrFallback(handle string) *Mesh {
	m, err := l.Mesh(handle)
	if err == nil {
		return m
	}
	l.logger.Warn("mesh unavailable, using fallback", "mesh", handle, "fallback", FallbackMesh, "err", err)
	fallback, _ := NewPrimitive(FallbackMesh)
	fallback.Name = handle

	l.mu.Lock()
	l.meshes[handle] = fallback
	l.mu.Unlock()
	return fallback
}

// Image returns the image for a texture handle. Image files are decoded
// directly; a glTF handle yields the model's embedded texture.
func (l *Library) Image(handle string) (image.Image, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if img, ok := l.images[handle]; ok {
		return img, nil
	}

	path := l.resolve(handle)
	var img image.Image
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		mesh, embedded, err := NewGLTFLoader().Load(path)
		if err != nil {
			return nil, err
		}
		if embedded == nil {
			return nil, fmt.Errorf("%s: no embedded texture", handle)
		}
		l.fit(mesh)
		if _, ok := l.meshes[handle]; !ok {
			l.meshes[handle] = mesh
		}
		img = embedded
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open texture: %w", err)
		}
		defer f.Close()
		if img, _, err = image.Decode(f); err != nil {
			return nil, fmt.Errorf("decode texture %s: %w", handle, err)
		}
	}

	l.images[handle] = img
	return img, nil
}

// IsMeshFile reports whether path has an extension a mesh loader exists for.
func IsMeshFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ply", ".glb", ".gltf":
		return true
	}
	return false
}

func (l *Library) loadMesh(handle string) (*Mesh, error) {
	if IsPrimitive(handle) {
		return NewPrimitive(handle)
	}

	path := l.resolve(handle)
	var (
		mesh *Mesh
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ply":
		mesh, err = LoadPLY(path)
	case ".glb", ".gltf":
		var embedded image.Image
		mesh, embedded, err = NewGLTFLoader().Load(path)
		if err == nil && embedded != nil {
			l.images[handle] = embedded
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMesh, handle)
	}
	if err != nil {
		return nil, err
	}

	l.fit(mesh)
	l.logger.Debug("mesh loaded", "mesh", handle, "triangles", mesh.TriangleCount())
	return mesh, nil
}

func (l *Library) fit(m *Mesh) {
	if l.FitSize > 0 {
		m.Fit(l.FitSize)
	}
}

func (l *Library) resolve(handle string) string {
	if filepath.IsAbs(handle) || l.Dir == "" {
		return handle
	}
	return filepath.Join(l.Dir, handle)
}
