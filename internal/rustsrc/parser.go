package rustsrc

import (
	"regexp"
	"strings"
)

var (
	structRe = regexp.MustCompile(`^(?:pub(?:\([^)]*\))?\s+)?struct\s+([A-Za-z_][A-Za-z0-9_]*)\s*(.*)$`)

	// fieldRe matches a named field line. Group 1 captures visibility,
	// group 2 the field name, group 3 the type.
	fieldRe = regexp.MustCompile(`^(pub(?:\([^)]*\))?\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*:\s*(.+?),?\s*$`)

	// typeHeadRe extracts the leading path segment of a type expression.
	typeHeadRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
)

// Parse extracts struct definitions from Rust source.
//
// The scanner covers what the metrics generator needs from the file:
// structs with named fields, public fields only, field types reduced to
// their leading path segment, and /// doc comments attached to the
// following item. Items other than structs (impls, enums, functions,
// macros) are skipped by brace tracking.
func Parse(src []byte) (*File, error) {
	p := &parser{
		lines: strings.Split(string(src), "\n"),
		file:  &File{index: make(map[string]*Struct)},
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.file, nil
}

type parser struct {
	lines []string
	pos   int // index of the next line to consume
	file  *File

	// depth tracks braces of non-struct items so struct declarations are
	// only recognized at the top level.
	depth int

	// docs accumulates /// comments until the next item consumes them.
	docs []string
}

// next returns the next line (trimmed) and its 1-based number.
func (p *parser) next() (string, int, bool) {
	if p.pos >= len(p.lines) {
		return "", 0, false
	}
	line := strings.TrimSpace(p.lines[p.pos])
	p.pos++
	return line, p.pos, true
}

func (p *parser) run() error {
	for {
		line, n, ok := p.next()
		if !ok {
			return nil
		}

		switch {
		case line == "":
			// Blank lines don't detach pending doc comments.
		case strings.HasPrefix(line, "///"):
			p.docs = append(p.docs, strings.TrimPrefix(line, "///"))
		case strings.HasPrefix(line, "//"):
			// Ordinary comments (incl. //! module docs) are ignored.
		case strings.HasPrefix(line, "/*"):
			if err := p.skipBlockComment(line); err != nil {
				return err
			}
		case strings.HasPrefix(line, "#["), strings.HasPrefix(line, "#!["):
			if err := p.skipAttribute(line); err != nil {
				return err
			}
		default:
			if p.depth == 0 {
				if m := structRe.FindStringSubmatch(line); m != nil {
					if err := p.parseStruct(m[1], m[2], n); err != nil {
						return err
					}
					continue
				}
			}
			// Any other code line consumes pending docs and may open or
			// close a block (impl, fn, enum, mod).
			p.docs = nil
			p.depth += strings.Count(line, "{") - strings.Count(line, "}")
			if p.depth < 0 {
				return &ParseError{Line: n, Msg: "unbalanced closing brace"}
			}
		}
	}
}

// skipBlockComment consumes a /* ... */ comment, which may span lines.
func (p *parser) skipBlockComment(line string) error {
	for !strings.Contains(line, "*/") {
		var ok bool
		line, _, ok = p.next()
		if !ok {
			return &ParseError{Line: len(p.lines), Msg: "unterminated block comment"}
		}
	}
	return nil
}

// skipAttribute consumes a #[...] attribute, balancing brackets across
// lines for multi-line attributes.
func (p *parser) skipAttribute(line string) error {
	open := strings.Count(line, "[") - strings.Count(line, "]")
	for open > 0 {
		var ok bool
		line, _, ok = p.next()
		if !ok {
			return &ParseError{Line: len(p.lines), Msg: "unterminated attribute"}
		}
		open += strings.Count(line, "[") - strings.Count(line, "]")
	}
	return nil
}

// parseStruct handles a struct item whose header matched at rest of
// line `rest` (everything after the name).
func (p *parser) parseStruct(name, rest string, headerLine int) error {
	docs := p.docs
	p.docs = nil

	// Unit structs (`struct Foo;`) and tuple structs (`struct Foo(...)`)
	// have no named fields and are skipped.
	if strings.HasPrefix(rest, ";") {
		return nil
	}
	if strings.HasPrefix(rest, "(") {
		return p.skipToSemicolon(headerLine)
	}
	if open := strings.Index(rest, "{"); open >= 0 {
		if end := strings.Index(rest[open:], "}"); end >= 0 {
			// Single-line body, e.g. `pub struct Foo {}`.
			return p.parseInlineBody(name, docs, rest[open+1:open+end], headerLine)
		}
	}
	if !strings.Contains(rest, "{") {
		// Header line without the opening brace; find it.
		for {
			line, n, ok := p.next()
			if !ok {
				return &ParseError{Line: headerLine, Msg: "struct " + name + ": missing body"}
			}
			if strings.Contains(line, "{") {
				break
			}
			if line != "" {
				return &ParseError{Line: n, Msg: "struct " + name + ": expected '{'"}
			}
		}
	}

	st := &Struct{Name: name, Docs: docs, Line: headerLine}
	sawField := false
	var fieldDocs []string

	for {
		line, n, ok := p.next()
		if !ok {
			return &ParseError{Line: headerLine, Msg: "struct " + name + ": unterminated body"}
		}

		switch {
		case line == "":
		case strings.HasPrefix(line, "///"):
			fieldDocs = append(fieldDocs, strings.TrimPrefix(line, "///"))
		case strings.HasPrefix(line, "//"):
		case strings.HasPrefix(line, "#["):
			if err := p.skipAttribute(line); err != nil {
				return err
			}
		case strings.HasPrefix(line, "}"):
			// Only structs that declare named fields are recorded, even
			// when every field turned out to be private or non-path.
			if sawField {
				p.file.Structs = append(p.file.Structs, st)
				p.file.index[name] = st
			}
			return nil
		default:
			m := fieldRe.FindStringSubmatch(line)
			if m == nil {
				return &ParseError{Line: n, Msg: "struct " + name + ": unrecognized field syntax"}
			}
			sawField = true
			fdocs := fieldDocs
			fieldDocs = nil

			// Private and pub(crate)-restricted fields don't surface in
			// the generated bindings.
			if strings.TrimSpace(m[1]) != "pub" {
				continue
			}

			typeHead := typeHeadRe.FindString(m[3])
			if typeHead == "" {
				// Arrays, references, tuples: not path types, skipped.
				continue
			}

			st.Fields = append(st.Fields, Field{
				Name: m[2],
				Type: typeHead,
				Docs: fdocs,
				Line: n,
			})
		}
	}
}

// parseInlineBody handles a struct whose whole body sits on the header
// line. Field docs can't occur here; fields are comma-separated.
func (p *parser) parseInlineBody(name string, docs []string, body string, headerLine int) error {
	st := &Struct{Name: name, Docs: docs, Line: headerLine}
	sawField := false

	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := fieldRe.FindStringSubmatch(part)
		if m == nil {
			return &ParseError{Line: headerLine, Msg: "struct " + name + ": unrecognized field syntax"}
		}
		sawField = true
		if strings.TrimSpace(m[1]) != "pub" {
			continue
		}
		typeHead := typeHeadRe.FindString(m[3])
		if typeHead == "" {
			continue
		}
		st.Fields = append(st.Fields, Field{Name: m[2], Type: typeHead, Line: headerLine})
	}

	if sawField {
		p.file.Structs = append(p.file.Structs, st)
		p.file.index[name] = st
	}
	return nil
}

// skipToSemicolon consumes lines until a ';' terminates a tuple struct.
func (p *parser) skipToSemicolon(headerLine int) error {
	// The header itself may already carry the terminator.
	if p.pos > 0 && strings.Contains(p.lines[p.pos-1], ";") {
		return nil
	}
	for {
		line, _, ok := p.next()
		if !ok {
			return &ParseError{Line: headerLine, Msg: "unterminated tuple struct"}
		}
		if strings.Contains(line, ";") {
			return nil
		}
	}
}
