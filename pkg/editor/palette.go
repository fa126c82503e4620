package editor

import (
	"errors"
	"fmt"
)

// ErrEmptyPalette is returned when an editor is built without palette entries.
var ErrEmptyPalette = errors.New("palette has no entries")

// Kind tells how a palette entry is drawn.
type Kind int

const (
	// KindModel entries draw a loaded mesh and stand up along the picked normal.
	KindModel Kind = iota
	// KindPrimitive entries draw the built-in unit cube and take part in picking once placed.
	KindPrimitive
)

func (k Kind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindPrimitive:
		return "primitive"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// CubeMesh is the mesh handle of the built-in cube primitive.
const CubeMesh = "cube"

// PaletteEntry is one selectable decoration.
type PaletteEntry struct {
	Name    string
	Kind    Kind
	Mesh    string // mesh provider handle
	Texture string // texture handle, empty when untextured
}

// IsModel reports whether the entry draws a mesh rather than the cube primitive.
func (e PaletteEntry) IsModel() bool {
	return e.Kind == KindModel
}

// CubeEntry returns the cube primitive entry.
func CubeEntry() PaletteEntry {
	return PaletteEntry{Name: "cube", Kind: KindPrimitive, Mesh: CubeMesh}
}

// Palette is the ordered list cycled through by the palette key.
type Palette []PaletteEntry

// Next returns the index after i, wrapping to 0 after the last entry.
func (p Palette) Next(i int) int {
	if len(p) == 0 {
		return 0
	}
	return (i + 1) % len(p)
}

// At returns entry i. Out-of-range indices are reduced modulo the length.
func (p Palette) At(i int) PaletteEntry {
	if len(p) == 0 {
		return CubeEntry()
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// DefaultPalette mirrors the stock set of decorations with procedural meshes.
func DefaultPalette() Palette {
	return Palette{
		{Name: "eye", Kind: KindModel, Mesh: "sphere", Texture: "eye"},
		{Name: "horn", Kind: KindModel, Mesh: "cone", Texture: "horn"},
		{Name: "nose", Kind: KindModel, Mesh: "sphere"},
		{Name: "duck", Kind: KindModel, Mesh: "sphere", Texture: "duck"},
		{Name: "mouth", Kind: KindModel, Mesh: "cylinder", Texture: "mouth"},
		CubeEntry(),
	}
}
