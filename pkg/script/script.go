package script

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vango-dev/seqtree/internal/errors"
	"github.com/vango-dev/seqtree/pkg/builder"
	"github.com/vango-dev/seqtree/pkg/rendertree"
)

// Op names.
const (
	OpElement     = "element"
	OpComponent   = "component"
	OpSelfClosing = "selfClosing"
	OpRegion      = "region"
	OpAttr        = "attr"
	OpClass       = "class"
	OpID          = "id"
	OpText        = "text"
	OpMarkup      = "markup"
	OpNewLine     = "newline"
	OpKey         = "key"
	OpClose       = "close"
	OpCloseAll    = "closeAll"
	OpCloseMany   = "closeMany"
)

// Script is a named, ordered list of builder operations.
type Script struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Ops   []Op   `json:"ops"`

	// Path is the file the script was loaded from, if any.
	Path string `json:"-"`
}

// Op is one builder operation.
type Op struct {
	// Line pins the sequencing line. Zero means the line after the
	// previous op.
	Line int `json:"line,omitempty"`

	Op string `json:"op"`

	// Name is the element tag, component name or attribute name.
	Name string `json:"name,omitempty"`

	// Value is the attribute value, text, markup or key.
	Value any `json:"value,omitempty"`

	// Attrs are attributes or component parameters, applied in key order.
	Attrs map[string]any `json:"attrs,omitempty"`

	// Count is the newline count or the number of blocks for closeMany.
	Count int `json:"count,omitempty"`

	// Indent requests an indentation fragment after a newline.
	Indent bool `json:"indent,omitempty"`
}

// Load reads and parses a script file. The script name defaults to the
// file name without its extension.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeScriptParse).
			WithDetailf("read %s", path).
			Wrap(err)
	}
	s, err := Parse(data)
	if err != nil {
		if se, ok := err.(*errors.Error); ok {
			se.Detail = path + ": " + se.Detail
		}
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	s.Path = path
	return s, nil
}

// LoadDir loads every *.json script in dir, sorted by name.
func LoadDir(dir string) ([]*Script, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.New(errors.CodeScriptParse).Wrap(err)
	}
	scripts := make([]*Script, 0, len(paths))
	for _, p := range paths {
		s, err := Load(p)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, s)
	}
	sort.Slice(scripts, func(i, j int) bool { return scripts[i].Name < scripts[j].Name })
	return scripts, nil
}

// Parse decodes and validates a script. Unknown fields are rejected.
func Parse(data []byte) (*Script, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, errors.New(errors.CodeScriptParse).
			WithDetail(err.Error()).
			WithSuggestion("Check that the script is valid JSON with an \"ops\" array")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every op is known and carries its required fields.
func (s *Script) Validate() error {
	for i, op := range s.Ops {
		if op.Line < 0 {
			return opError(i, op, "line must not be negative")
		}
		switch op.Op {
		case OpElement, OpComponent, OpSelfClosing, OpAttr:
			if op.Name == "" {
				return opError(i, op, "name is required")
			}
		case OpCloseMany:
			if op.Count < 0 {
				return opError(i, op, "count must not be negative")
			}
		case OpRegion, OpClass, OpID, OpText, OpMarkup, OpNewLine, OpKey, OpClose, OpCloseAll:
		case "":
			return opError(i, op, "op is required")
		default:
			return opError(i, op, "unknown op")
		}
	}
	return nil
}

func opError(i int, op Op, msg string) error {
	return errors.New(errors.CodeScriptOp).WithDetailf("op %d (%q): %s", i, op.Op, msg)
}

// Execute issues the script's ops on b, stopping at the first builder
// error. Components are created from reg. It does not finish b.
func (s *Script) Execute(b *builder.Builder, reg *Registry) error {
	for i, op := range s.Ops {
		if op.Line > 0 {
			b.At(op.Line)
		}

		switch op.Op {
		case OpElement:
			b.Element(op.Name, sortedAttrs(op.Attrs)...)
		case OpComponent, OpSelfClosing:
			comp, ok := newComponent(reg, op.Name)
			if !ok {
				return errors.New(errors.CodeUnknownComponent).
					WithDetailf("op %d: unknown component %q", i, op.Name)
			}
			if op.Op == OpComponent {
				b.Component(comp, sortedAttrs(op.Attrs)...)
			} else {
				b.SelfClosing(comp, sortedAttrs(op.Attrs)...)
			}
		case OpRegion:
			b.Region()
		case OpAttr:
			b.Attr(op.Name, op.Value)
		case OpClass:
			b.Class(stringValue(op.Value))
		case OpID:
			b.ID(stringValue(op.Value))
		case OpText:
			b.Text(stringValue(op.Value))
		case OpMarkup:
			b.Markup(stringValue(op.Value))
		case OpNewLine:
			b.NewLine(op.Count, op.Indent)
		case OpKey:
			b.Key(op.Value)
		case OpClose:
			b.Close()
		case OpCloseAll:
			b.CloseAll()
		case OpCloseMany:
			b.CloseMany(op.Count)
		default:
			return opError(i, op, "unknown op")
		}

		if err := b.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Build runs the script in a fresh build pass over sink. Unpinned ops are
// numbered by the builder's line counter unless opts choose otherwise.
func (s *Script) Build(ctx context.Context, sink rendertree.Sink, reg *Registry, opts ...builder.Option) error {
	opts = append([]builder.Option{builder.WithLineMode(builder.LineCounter)}, opts...)

	var execErr error
	err := builder.RunContext(ctx, sink, func(b *builder.Builder) {
		execErr = s.Execute(b, reg)
	}, opts...)
	if execErr != nil {
		return execErr
	}
	return err
}

// Frames builds the script into a new Recorder and returns its frames.
func (s *Script) Frames(ctx context.Context, reg *Registry, opts ...builder.Option) ([]rendertree.Frame, error) {
	rec := rendertree.NewRecorder()
	if err := s.Build(ctx, rec, reg, opts...); err != nil {
		return nil, err
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec.Frames(), nil
}

func newComponent(reg *Registry, name string) (rendertree.Component, bool) {
	if reg == nil {
		return nil, false
	}
	f, ok := reg.Lookup(name)
	if !ok {
		return nil, false
	}
	return f(), true
}

func sortedAttrs(m map[string]any) []builder.Attr {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]builder.Attr, len(names))
	for i, name := range names {
		attrs[i] = builder.A(name, m[name])
	}
	return attrs
}

func stringValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
