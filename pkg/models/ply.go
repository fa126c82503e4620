package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrBadPLY is returned for PLY input that cannot be parsed.
var ErrBadPLY = errors.New("malformed ply")

type plyElement struct {
	name  string
	count int
	props []string // scalar property names, or "list" for the face index list
}

// LoadPLY loads an ASCII PLY file.
func LoadPLY(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ply: %w", err)
	}
	defer f.Close()

	mesh, err := ReadPLY(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ReadPLY parses an ASCII PLY stream. Vertex elements may carry positions
// (x y z), normals (nx ny nz) and texture coordinates under any of the usual
// names. Faces with more than three vertices are fan triangulated.
func ReadPLY(r io.Reader) (*Mesh, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	elements, err := readPLYHeader(sc)
	if err != nil {
		return nil, err
	}

	mesh := NewMesh("ply")
	for _, el := range elements {
		for i := 0; i < el.count; i++ {
			fields, err := nextPLYLine(sc)
			if err != nil {
				return nil, fmt.Errorf("%w: %s %d: %v", ErrBadPLY, el.name, i, err)
			}
			switch el.name {
			case "vertex":
				err = mesh.addPLYVertex(el.props, fields)
			case "face":
				err = mesh.addPLYFace(fields)
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %s %d: %v", ErrBadPLY, el.name, i, err)
			}
		}
	}

	for _, f := range mesh.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= len(mesh.Vertices) {
				return nil, fmt.Errorf("%w: face index %d out of range", ErrBadPLY, idx)
			}
		}
	}

	if !mesh.HasNormals() {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func readPLYHeader(sc *bufio.Scanner) ([]plyElement, error) {
	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "ply" {
		return nil, fmt.Errorf("%w: missing magic", ErrBadPLY)
	}

	var elements []plyElement
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "format":
			if len(fields) < 2 || fields[1] != "ascii" {
				return nil, fmt.Errorf("%w: unsupported format %q", ErrBadPLY, strings.Join(fields[1:], " "))
			}
		case "comment", "obj_info":
		case "element":
			if len(fields) != 3 {
				return nil, fmt.Errorf("%w: bad element line %q", ErrBadPLY, sc.Text())
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: bad element count %q", ErrBadPLY, fields[2])
			}
			elements = append(elements, plyElement{name: fields[1], count: n})
		case "property":
			if len(elements) == 0 || len(fields) < 3 {
				return nil, fmt.Errorf("%w: stray property %q", ErrBadPLY, sc.Text())
			}
			el := &elements[len(elements)-1]
			if fields[1] == "list" {
				el.props = append(el.props, "list")
			} else {
				el.props = append(el.props, fields[len(fields)-1])
			}
		case "end_header":
			return elements, nil
		default:
			return nil, fmt.Errorf("%w: unknown header line %q", ErrBadPLY, sc.Text())
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: missing end_header", ErrBadPLY)
}

func nextPLYLine(sc *bufio.Scanner) ([]string, error) {
	for sc.Scan() {
		if fields := strings.Fields(sc.Text()); len(fields) > 0 {
			return fields, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.ErrUnexpectedEOF
}

func (m *Mesh) addPLYVertex(props, fields []string) error {
	if len(fields) < len(props) {
		return fmt.Errorf("want %d values, got %d", len(props), len(fields))
	}

	var v MeshVertex
	for i, name := range props {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return err
		}
		switch name {
		case "x":
			v.Position.X = x
		case "y":
			v.Position.Y = x
		case "z":
			v.Position.Z = x
		case "nx":
			v.Normal.X = x
		case "ny":
			v.Normal.Y = x
		case "nz":
			v.Normal.Z = x
		case "u", "s", "texture_u", "texture_s":
			v.UV.X = x
		case "v", "t", "texture_v", "texture_t":
			v.UV.Y = x
		}
	}
	m.Vertices = append(m.Vertices, v)
	return nil
}

func (m *Mesh) addPLYFace(fields []string) error {
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return err
	}
	if n < 3 || len(fields) < n+1 {
		return fmt.Errorf("face with %d of %d indices", len(fields)-1, n)
	}

	idx := make([]int, n)
	for i := range idx {
		if idx[i], err = strconv.Atoi(fields[i+1]); err != nil {
			return err
		}
	}
	for i := 1; i+1 < n; i++ {
		m.AddTriangle(idx[0], idx[i], idx[i+1])
	}
	return nil
}
