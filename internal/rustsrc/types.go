// Package rustsrc extracts struct definitions and doc comments from
// Firecracker's metrics.rs. It understands exactly the subset of Rust
// the metrics source uses: doc comments, attributes, and structs with
// named fields. Everything else is skipped.
package rustsrc

import "fmt"

// File is the parsed view of a metrics.rs source file.
type File struct {
	Structs []*Struct

	index map[string]*Struct
}

// Struct is a Rust struct with named fields.
type Struct struct {
	Name string
	// Docs are the struct's /// comments, with the leading "///" stripped
	// but interior whitespace preserved.
	Docs   []string
	Fields []Field
	Line   int
}

// Field is a public named field of a struct.
type Field struct {
	Name string
	// Type is the leading path segment of the field's type, e.g.
	// "SharedMetric" or "u64".
	Type string
	Docs []string
	Line int
}

// Struct returns the struct with the given name, or nil.
func (f *File) Struct(name string) *Struct {
	return f.index[name]
}

// ParseError reports a structural problem in the source, with the
// 1-based line it was detected at.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
}
