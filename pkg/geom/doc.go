// Package geom is the intersection engine behind picking: rays against
// planes, axis-aligned boxes and spheres.
//
// A failed intersection is never an error. It is a Hit whose Hit field is
// false, and callers must check that field before reading the rest.
package geom
