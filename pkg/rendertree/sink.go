package rendertree

// Sink receives render-tree construction calls.
type Sink interface {
	OpenElement(seq int, name string)
	CloseElement()
	OpenComponent(seq int, c Component)
	CloseComponent()
	OpenRegion(seq int)
	CloseRegion()

	// AddAttribute attaches an attribute to the innermost open element or
	// component. It must directly follow the open frame or another attribute.
	AddAttribute(seq int, name string, value any)

	// AddContent adds a text frame; the value is escaped on output.
	AddContent(seq int, value any)

	// AddMarkupContent adds markup that is written verbatim.
	AddMarkupContent(seq int, markup string)

	// SetKey assigns a reconciliation key to the innermost open element or
	// component.
	SetKey(value any)

	AddElementReferenceCapture(seq int, fn func(ElementRef))
	AddComponentReferenceCapture(seq int, fn func(Component))

	// Clear discards all accumulated frames.
	Clear()

	// Frames returns the accumulated frames.
	Frames() []Frame
}

// Component is anything that can write its own subtree into a sink.
type Component interface {
	BuildRenderTree(sink Sink) error
}

// ParameterSetter is implemented by components that accept parameters.
// Renderers call SetParameters before BuildRenderTree.
type ParameterSetter interface {
	SetParameters(params map[string]any)
}

// ComponentFunc adapts a function to the Component interface.
type ComponentFunc func(sink Sink) error

// BuildRenderTree implements Component.
func (f ComponentFunc) BuildRenderTree(sink Sink) error {
	return f(sink)
}

// Fragment is a reusable piece of render tree, such as a component's child
// content. It writes into whatever sink it is given.
type Fragment func(sink Sink)

// ChildContentParam is the parameter name under which renderers pass a
// component's child frames.
const ChildContentParam = "ChildContent"

// ElementRef identifies a rendered element. Renderers assign IDs in render
// order.
type ElementRef struct {
	ID string
}
