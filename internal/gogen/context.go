package gogen

import (
	"fmt"
	"strings"

	"github.com/schmitthub/fcgen/internal/logger"
	"github.com/schmitthub/fcgen/internal/rustsrc"
)

// Context carries the rendered statement blocks for the file template.
type Context struct {
	Package    string
	Namespace  string
	RootStruct string
	Year       int

	VarDeclarations    []string
	RegisterStatements []string
	SetStatements      []string
	StructDeclarations []string
}

// BuildContext walks the parsed source from the root struct down and
// produces the declare/register/update/struct statement blocks.
//
// Only root fields whose type resolves to a known struct become metrics;
// other fields are skipped, matching the upstream generator.
func BuildContext(f *rustsrc.File, opts Options) (*Context, error) {
	opts = opts.withDefaults()

	root := f.Struct(opts.RootStruct)
	if root == nil {
		return nil, fmt.Errorf("root struct %q not found in source", opts.RootStruct)
	}

	ctx := &Context{
		Package:    opts.Package,
		Namespace:  opts.Namespace,
		RootStruct: opts.RootStruct,
		Year:       opts.Year,
	}

	// The root struct itself is declared first, with its own docs.
	ctx.StructDeclarations = append(ctx.StructDeclarations,
		structDeclaration(root, root.Docs, opts))

	for _, field := range root.Fields {
		metric := f.Struct(field.Type)
		if metric == nil {
			logger.Debug().
				Str("field", field.Name).
				Str("type", field.Type).
				Msg("root field type is not a struct in this file, skipping")
			continue
		}

		// The sub-struct is documented with the root field's comment,
		// which is what describes the metric group.
		ctx.StructDeclarations = append(ctx.StructDeclarations,
			structDeclaration(metric, field.Docs, opts))

		ctx.VarDeclarations = append(ctx.VarDeclarations,
			metricDeclaration(metric, field.Name))

		ctx.RegisterStatements = append(ctx.RegisterStatements,
			fmt.Sprintf("\tprometheus.MustRegister(%s)", metricVarName(metric)))

		ctx.SetStatements = append(ctx.SetStatements,
			setStatements(metric, snakeToCamel(field.Name)))
	}

	return ctx, nil
}

// metricVarName is the package-level var holding a struct's GaugeVec.
func metricVarName(s *rustsrc.Struct) string {
	return lowerFirst(s.Name)
}

// helpText flattens a struct's doc comments into a one-line help string.
func helpText(docs []string) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		if t := strings.TrimSpace(d); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// metricDeclaration renders the GaugeVec declaration for one metric group.
func metricDeclaration(s *rustsrc.Struct, rootFieldName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\t%s = prometheus.NewGaugeVec(prometheus.GaugeOpts{\n", metricVarName(s))
	fmt.Fprintf(&b, "\t\tNamespace: fcMetricsNS,\n")
	fmt.Fprintf(&b, "\t\tName:      %q,\n", rootFieldName)
	fmt.Fprintf(&b, "\t\tHelp:      %q,\n", helpText(s.Docs))
	fmt.Fprintf(&b, "\t},\n")
	fmt.Fprintf(&b, "\t\t[]string{\"item\"},\n")
	fmt.Fprintf(&b, "\t)\n")
	return b.String()
}

// setStatements renders the update lines for one metric group.
func setStatements(s *rustsrc.Struct, rootFieldCamel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\t// set metrics for %s\n", s.Name)
	for _, f := range s.Fields {
		fmt.Fprintf(&b, "\t%s.WithLabelValues(%q).Set(float64(fm.%s.%s))\n",
			metricVarName(s), f.Name, rootFieldCamel, snakeToCamel(f.Name))
	}
	return b.String()
}

// structDeclaration renders a Go struct mirroring the Rust one.
// docs supplies the type-level comment (the root field's docs for
// sub-structs, the struct's own docs for the root).
func structDeclaration(s *rustsrc.Struct, docs []string, opts Options) string {
	var b strings.Builder
	for _, d := range docs {
		fmt.Fprintf(&b, "//%s\n", d)
	}
	fmt.Fprintf(&b, "type %s struct {\n", s.Name)
	for _, f := range s.Fields {
		for _, d := range f.Docs {
			fmt.Fprintf(&b, "\t//%s\n", d)
		}
		fmt.Fprintf(&b, "\t%s %s %s\n", snakeToCamel(f.Name), opts.goType(f.Type), jsonTag(f.Name))
	}
	fmt.Fprintf(&b, "}\n")
	return b.String()
}
