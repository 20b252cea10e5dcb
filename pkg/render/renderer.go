package render

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/vango-dev/seqtree/internal/errors"
	"github.com/vango-dev/seqtree/pkg/rendertree"
)

// MaxComponentDepth bounds component nesting during a render.
const MaxComponentDepth = 64

// RefAttr is the attribute written on elements that carry a reference
// capture.
const RefAttr = "data-ref"

// Config configures the HTML renderer.
type Config struct {
	// Pretty re-indents elements and puts block children on their own
	// lines. Frames built with pretty printing already carry whitespace;
	// leave this off for those.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer writes frame lists as HTML.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	config     Config
	refCounter int
	compDepth  int
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders frames to a string.
func (r *Renderer) RenderToString(frames []rendertree.Frame) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderFrames(&buf, frames); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderFrames writes frames to w. Every block frame must be closed.
func (r *Renderer) RenderFrames(w io.Writer, frames []rendertree.Frame) error {
	return r.renderSpan(w, frames, 0)
}

// RenderComponent renders c as the root of a tree, with params applied.
func (r *Renderer) RenderComponent(w io.Writer, c rendertree.Component, params map[string]any) error {
	return r.renderComponentTree(w, c, params, 0)
}

// Reset clears the element reference counter.
func (r *Renderer) Reset() {
	r.refCounter = 0
	r.compDepth = 0
}

// renderSpan renders a run of sibling frames and their subtrees.
func (r *Renderer) renderSpan(w io.Writer, frames []rendertree.Frame, depth int) error {
	for i := 0; i < len(frames); {
		f := frames[i]
		if !f.Type.IsBlock() {
			if err := r.renderLeaf(w, f, i); err != nil {
				return err
			}
			i++
			continue
		}

		end := i + f.Subtree
		if f.Subtree < 1 || end > len(frames) {
			return errors.New(errors.CodeMalformedFrames).
				WithDetailf("frame %d (%s, seq %d) has invalid subtree length %d", i, f.Type, f.Sequence, f.Subtree)
		}
		attrs, body := splitAttributes(frames[i+1 : end])

		var err error
		switch f.Type {
		case rendertree.FrameElement:
			err = r.renderElement(w, f, attrs, body, depth)
		case rendertree.FrameComponent:
			err = r.renderComponent(w, f, attrs, body, depth)
		case rendertree.FrameRegion:
			if len(attrs) > 0 {
				err = errors.New(errors.CodeMalformedFrames).
					WithDetailf("region at seq %d carries attributes", f.Sequence)
			} else {
				err = r.renderSpan(w, body, depth)
			}
		}
		if err != nil {
			return err
		}
		i = end
	}
	return nil
}

// renderLeaf renders a frame that does not open a block.
func (r *Renderer) renderLeaf(w io.Writer, f rendertree.Frame, index int) error {
	switch f.Type {
	case rendertree.FrameText:
		return r.renderContent(w, f.Value)
	case rendertree.FrameMarkup:
		_, err := io.WriteString(w, f.Markup)
		return err
	case rendertree.FrameAttribute:
		return errors.New(errors.CodeMalformedFrames).
			WithDetailf("attribute %q at seq %d is not attached to an element or component", f.Name, f.Sequence)
	case rendertree.FrameElementRef, rendertree.FrameComponentRef:
		// Handled by the enclosing block.
		return nil
	default:
		return errors.New(errors.CodeMalformedFrames).
			WithDetailf("frame %d has unknown type %d", index, f.Type)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, f rendertree.Frame, attrs, body []rendertree.Frame, depth int) error {
	tag := f.Name

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, attrs); err != nil {
		return err
	}

	if captures := elementCaptures(body); len(captures) > 0 {
		r.refCounter++
		ref := rendertree.ElementRef{ID: "e" + strconv.Itoa(r.refCounter)}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, RefAttr, ref.ID); err != nil {
			return err
		}
		for _, capture := range captures {
			if capture != nil {
				capture(ref)
			}
		}
	}

	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if isVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	hasBlockChildren := hasContent(body) && !isInlineElement(tag)
	if r.config.Pretty && hasBlockChildren {
		io.WriteString(w, "\n")
	}

	if err := r.renderSpan(w, body, depth+1); err != nil {
		return err
	}

	if r.config.Pretty && hasBlockChildren {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderComponent renders a component frame. Attributes become parameters
// and nested frames become its child content.
func (r *Renderer) renderComponent(w io.Writer, f rendertree.Frame, attrs, body []rendertree.Frame, depth int) error {
	if f.Component == nil {
		return errors.New(errors.CodeRender).
			WithDetailf("component frame at seq %d has no component", f.Sequence)
	}

	params := make(map[string]any, len(attrs)+1)
	for _, a := range attrs {
		params[a.Name] = a.Value
	}

	var children []rendertree.Frame
	for _, child := range directChildren(body) {
		if child.Type == rendertree.FrameComponentRef {
			if child.ComponentCapture != nil {
				child.ComponentCapture(f.Component)
			}
			continue
		}
		children = append(children, body[child.start:child.end]...)
	}
	if len(children) > 0 {
		params[rendertree.ChildContentParam] = rendertree.AsFragment(children)
	}

	return r.renderComponentTree(w, f.Component, params, depth)
}

func (r *Renderer) renderComponentTree(w io.Writer, c rendertree.Component, params map[string]any, depth int) error {
	if r.compDepth >= MaxComponentDepth {
		return errors.New(errors.CodeRender).
			WithDetailf("components nested deeper than %d", MaxComponentDepth)
	}
	if setter, ok := c.(rendertree.ParameterSetter); ok && params != nil {
		setter.SetParameters(params)
	}

	rec := rendertree.NewRecorder()
	if err := c.BuildRenderTree(rec); err != nil {
		return errors.New(errors.CodeRender).
			WithDetailf("component %T failed to build", c).
			Wrap(err)
	}
	if err := rec.Validate(); err != nil {
		return err
	}

	r.compDepth++
	defer func() { r.compDepth-- }()
	return r.renderSpan(w, rec.Frames(), depth)
}

// renderContent writes a text frame's value, escaped. Fragments and
// components are rendered in place.
func (r *Renderer) renderContent(w io.Writer, value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case rendertree.Fragment:
		if v == nil {
			return nil
		}
		rec := rendertree.NewRecorder()
		v(rec)
		if err := rec.Validate(); err != nil {
			return err
		}
		return r.renderSpan(w, rec.Frames(), 0)
	case rendertree.Component:
		return r.renderComponentTree(w, v, nil, 0)
	default:
		_, err := io.WriteString(w, escapeHTML(valueString(v)))
		return err
	}
}

// renderAttributes writes attributes in the order they were added.
func (r *Renderer) renderAttributes(w io.Writer, attrs []rendertree.Frame) error {
	for _, a := range attrs {
		if a.Value == nil || isFunc(a.Value) {
			continue
		}

		if isBooleanAttr(a.Name) {
			if b, ok := a.Value.(bool); ok {
				if b {
					if _, err := fmt.Fprintf(w, " %s", a.Name); err != nil {
						return err
					}
				}
				continue
			}
		}

		if _, err := fmt.Fprintf(w, ` %s="%s"`, a.Name, escapeAttr(valueString(a.Value))); err != nil {
			return err
		}
	}
	return nil
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}

// splitAttributes splits the leading attribute frames off a block body.
func splitAttributes(body []rendertree.Frame) (attrs, rest []rendertree.Frame) {
	n := 0
	for n < len(body) && body[n].Type == rendertree.FrameAttribute {
		n++
	}
	return body[:n], body[n:]
}

// child is one direct child of a block body: the frame and the span of
// body it covers.
type child struct {
	rendertree.Frame
	start, end int
}

func directChildren(body []rendertree.Frame) []child {
	var out []child
	for i := 0; i < len(body); {
		end := i + 1
		if body[i].Type.IsBlock() && body[i].Subtree > 1 {
			end = i + body[i].Subtree
		}
		if end > len(body) {
			end = len(body)
		}
		out = append(out, child{Frame: body[i], start: i, end: end})
		i = end
	}
	return out
}

func elementCaptures(body []rendertree.Frame) []func(rendertree.ElementRef) {
	var out []func(rendertree.ElementRef)
	for _, c := range directChildren(body) {
		if c.Type == rendertree.FrameElementRef {
			out = append(out, c.ElementCapture)
		}
	}
	return out
}

// hasContent reports whether body holds anything other than reference
// captures.
func hasContent(body []rendertree.Frame) bool {
	for _, f := range body {
		if f.Type != rendertree.FrameElementRef && f.Type != rendertree.FrameComponentRef {
			return true
		}
	}
	return false
}

func isFunc(v any) bool {
	switch v.(type) {
	case rendertree.Fragment, func(), func(any):
		return true
	default:
		return false
	}
}

// valueString converts an attribute or content value to a string.
func valueString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
