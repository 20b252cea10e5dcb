package builder

import (
	"strings"

	"github.com/vango-dev/seqtree/internal/errors"
	"github.com/vango-dev/seqtree/pkg/rendertree"
)

// Attr is an attribute or component parameter.
type Attr struct {
	Name  string
	Value any
}

// A is shorthand for Attr{Name: name, Value: value}.
func A(name string, value any) Attr {
	return Attr{Name: name, Value: value}
}

// At pins line as the line of the next operation, overriding the captured
// caller line or counter.
func (b *Builder) At(line int) *Builder {
	b.pinned = true
	b.pinnedLine = line
	return b
}

// Element opens an element and adds attrs to it. Close it with Close.
func (b *Builder) Element(name string, attrs ...Attr) *Builder {
	c, ok := b.begin("Element")
	if !ok {
		return b
	}
	if !b.indent(c, 0, false) {
		return b
	}
	seq, ok := b.next(c)
	if !ok {
		return b
	}
	b.sink.OpenElement(seq, name)
	b.push(BlockElement)
	b.attrs(c, attrs)
	return b
}

// Component opens a component with content and adds params to it. Close it
// with Close.
func (b *Builder) Component(comp rendertree.Component, params ...Attr) *Builder {
	c, ok := b.begin("Component")
	if !ok {
		return b
	}
	if !b.indent(c, 0, false) {
		return b
	}
	seq, ok := b.next(c)
	if !ok {
		return b
	}
	b.sink.OpenComponent(seq, comp)
	b.push(BlockComponent)
	b.attrs(c, params)
	return b
}

// SelfClosing writes a component without content: open, params, close.
// Its whitespace fragment sits before the component frame, at the depth
// the component would close to, so the params stay adjacent to it.
func (b *Builder) SelfClosing(comp rendertree.Component, params ...Attr) *Builder {
	c, ok := b.begin("SelfClosing")
	if !ok {
		return b
	}
	if !b.indent(c, 0, false) {
		return b
	}
	seq, ok := b.next(c)
	if !ok {
		return b
	}
	b.sink.OpenComponent(seq, comp)
	b.push(BlockComponent)
	if !b.attrs(c, params) {
		return b
	}
	if _, ok := b.next(c); !ok {
		return b
	}
	b.pop()
	b.sink.CloseComponent()
	return b
}

// Region opens a region: a grouping with no markup of its own. Close it
// with Close.
func (b *Builder) Region() *Builder {
	c, ok := b.begin("Region")
	if !ok {
		return b
	}
	if !b.indent(c, 0, false) {
		return b
	}
	seq, ok := b.next(c)
	if !ok {
		return b
	}
	b.sink.OpenRegion(seq)
	b.push(BlockRegion)
	return b
}

// Attr adds one attribute to the innermost open element or component.
func (b *Builder) Attr(name string, value any) *Builder {
	c, ok := b.begin("Attr")
	if !ok {
		return b
	}
	b.attrs(c, []Attr{{Name: name, Value: value}})
	return b
}

// Attrs adds attributes to the innermost open element or component.
func (b *Builder) Attrs(attrs ...Attr) *Builder {
	c, ok := b.begin("Attrs")
	if !ok {
		return b
	}
	b.attrs(c, attrs)
	return b
}

// Class adds a class attribute.
func (b *Builder) Class(value string) *Builder {
	c, ok := b.begin("Class")
	if !ok {
		return b
	}
	b.attrs(c, []Attr{{Name: "class", Value: value}})
	return b
}

// ID adds an id attribute.
func (b *Builder) ID(value string) *Builder {
	c, ok := b.begin("ID")
	if !ok {
		return b
	}
	b.attrs(c, []Attr{{Name: "id", Value: value}})
	return b
}

// Text adds escaped text content.
func (b *Builder) Text(text string) *Builder {
	c, ok := b.begin("Text")
	if !ok {
		return b
	}
	if seq, ok := b.next(c); ok {
		b.sink.AddContent(seq, text)
	}
	return b
}

// Content adds a value as escaped text content.
func (b *Builder) Content(value any) *Builder {
	c, ok := b.begin("Content")
	if !ok {
		return b
	}
	if seq, ok := b.next(c); ok {
		b.sink.AddContent(seq, value)
	}
	return b
}

// Markup adds markup written verbatim. Only pass trusted content.
func (b *Builder) Markup(markup string) *Builder {
	c, ok := b.begin("Markup")
	if !ok {
		return b
	}
	if seq, ok := b.next(c); ok {
		b.sink.AddMarkupContent(seq, markup)
	}
	return b
}

// Fragment writes f inside a region of its own, so the fragment's sequence
// numbers do not interact with the builder's. A nil fragment is skipped.
func (b *Builder) Fragment(f rendertree.Fragment) *Builder {
	c, ok := b.begin("Fragment")
	if !ok || f == nil {
		return b
	}
	if seq, ok := b.next(c); ok {
		b.sink.OpenRegion(seq)
		f(b.sink)
		b.sink.CloseRegion()
	}
	return b
}

// NewLine writes count literal newlines (at least one). With indentAfter,
// an indentation fragment for the current depth follows when pretty
// printing is enabled.
func (b *Builder) NewLine(count int, indentAfter bool) *Builder {
	c, ok := b.begin("NewLine")
	if !ok {
		return b
	}
	if count < 1 {
		count = 1
	}
	seq, ok := b.next(c)
	if !ok {
		return b
	}
	b.sink.AddMarkupContent(seq, strings.Repeat("\n", count))
	if indentAfter {
		b.indent(c, 0, true)
	}
	return b
}

// Key sets the reconciliation key of the innermost open element or
// component.
func (b *Builder) Key(value any) *Builder {
	c, ok := b.begin("Key")
	if !ok {
		return b
	}
	if _, ok := b.next(c); ok {
		b.sink.SetKey(value)
	}
	return b
}

// ElementRef captures a reference to the innermost open element.
func (b *Builder) ElementRef(capture func(rendertree.ElementRef)) *Builder {
	c, ok := b.begin("ElementRef")
	if !ok {
		return b
	}
	if seq, ok := b.next(c); ok {
		b.sink.AddElementReferenceCapture(seq, capture)
	}
	return b
}

// ComponentRef captures a reference to the innermost open component.
func (b *Builder) ComponentRef(capture func(rendertree.Component)) *Builder {
	c, ok := b.begin("ComponentRef")
	if !ok {
		return b
	}
	if seq, ok := b.next(c); ok {
		b.sink.AddComponentReferenceCapture(seq, capture)
	}
	return b
}

// Close closes the innermost open block. It fails with ErrUnbalancedClose
// when no block is open.
func (b *Builder) Close() *Builder {
	c, ok := b.begin("Close")
	if !ok {
		return b
	}
	if len(b.blocks) == 0 {
		b.fail(errors.New(errors.CodeUnbalancedClose).WithDetail("close with no open block"), c)
		return b
	}
	b.closeOne(c)
	return b
}

// CloseAll closes every open block, innermost first.
func (b *Builder) CloseAll() *Builder {
	c, ok := b.begin("CloseAll")
	if !ok {
		return b
	}
	for len(b.blocks) > 0 {
		if !b.closeOne(c) {
			break
		}
	}
	return b
}

// CloseMany closes exactly n blocks, innermost first. If n exceeds the
// number of open blocks, it fails with ErrUnbalancedClose and closes
// nothing.
func (b *Builder) CloseMany(n int) *Builder {
	c, ok := b.begin("CloseMany")
	if !ok {
		return b
	}
	if n < 0 || n > len(b.blocks) {
		b.fail(errors.New(errors.CodeUnbalancedClose).
			WithDetailf("close %d block(s) with %d open", n, len(b.blocks)), c)
		return b
	}
	for i := 0; i < n; i++ {
		if !b.closeOne(c) {
			break
		}
	}
	return b
}

// closeOne pops the innermost block and issues its sink close. The close
// consumes a sequence number like any other operation. Elements and
// components get a whitespace fragment first, indented to the depth the
// block closes to; regions emit none.
func (b *Builder) closeOne(c *call) bool {
	kind := b.blocks[len(b.blocks)-1]
	if kind != BlockRegion && !b.indent(c, -1, false) {
		return false
	}
	if _, ok := b.next(c); !ok {
		return false
	}
	b.pop()
	switch kind {
	case BlockElement:
		b.sink.CloseElement()
	case BlockComponent:
		b.sink.CloseComponent()
	case BlockRegion:
		b.sink.CloseRegion()
	}
	return true
}

// attrs issues one attribute call per entry.
func (b *Builder) attrs(c *call, attrs []Attr) bool {
	for _, a := range attrs {
		seq, ok := b.next(c)
		if !ok {
			return false
		}
		b.sink.AddAttribute(seq, a.Name, a.Value)
	}
	return true
}
