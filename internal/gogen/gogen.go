// Package gogen renders the prometheus metrics bindings from a parsed
// metrics.rs source tree.
package gogen

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"text/template"
	"time"

	"github.com/schmitthub/fcgen/internal/rustsrc"
)

//go:embed templates/metrics.go.tmpl
var templateFS embed.FS

// Options are the generation parameters. Zero values fall back to the
// upstream generator's defaults.
type Options struct {
	Package    string
	Namespace  string
	RootStruct string
	// TypeOverrides maps Rust field types to Go types in the emitted
	// structs; unmapped types pass through unchanged.
	TypeOverrides map[string]string
	// Year stamps the copyright header; zero means the current year.
	Year int
}

func (o Options) withDefaults() Options {
	if o.Package == "" {
		o.Package = "virtcontainers"
	}
	if o.Namespace == "" {
		o.Namespace = "kata_firecracker"
	}
	if o.RootStruct == "" {
		o.RootStruct = "FirecrackerMetrics"
	}
	if o.TypeOverrides == nil {
		o.TypeOverrides = map[string]string{"SharedMetric": "uint64"}
	}
	if o.Year == 0 {
		o.Year = time.Now().Year()
	}
	return o
}

// goType maps a Rust field type to the emitted Go type.
func (o Options) goType(rustType string) string {
	if mapped, ok := o.TypeOverrides[rustType]; ok {
		return mapped
	}
	return rustType
}

// Render produces the unformatted Go source for the parsed file.
func Render(f *rustsrc.File, opts Options) ([]byte, error) {
	ctx, err := BuildContext(f, opts)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.ParseFS(templateFS, "templates/metrics.go.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse metrics template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("failed to render metrics template: %w", err)
	}

	return buf.Bytes(), nil
}

// Format runs the generated source through gofmt. A formatting error
// means the generator emitted invalid Go and is always a bug worth
// surfacing before anything is written.
func Format(src []byte) ([]byte, error) {
	out, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("generated source does not format: %w", err)
	}
	return out, nil
}
