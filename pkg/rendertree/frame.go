package rendertree

// FrameType is the frame discriminator.
type FrameType uint8

const (
	FrameElement      FrameType = iota // <div>, <button>, etc.
	FrameText                          // Escaped text content
	FrameMarkup                        // Raw markup content
	FrameAttribute                     // Attribute of the enclosing element or component
	FrameComponent                     // Nested component
	FrameRegion                        // Grouping without markup
	FrameElementRef                    // Element reference capture
	FrameComponentRef                  // Component reference capture
)

// String returns the string representation of the FrameType.
func (t FrameType) String() string {
	switch t {
	case FrameElement:
		return "Element"
	case FrameText:
		return "Text"
	case FrameMarkup:
		return "Markup"
	case FrameAttribute:
		return "Attribute"
	case FrameComponent:
		return "Component"
	case FrameRegion:
		return "Region"
	case FrameElementRef:
		return "ElementRef"
	case FrameComponentRef:
		return "ComponentRef"
	default:
		return "Unknown"
	}
}

// IsBlock reports whether frames of this type open a block.
func (t FrameType) IsBlock() bool {
	return t == FrameElement || t == FrameComponent || t == FrameRegion
}

// Frame is one entry of a render tree.
type Frame struct {
	Sequence int       // Sequence number supplied by the builder
	Type     FrameType // Frame kind
	Name     string    // Element tag or attribute name
	Value    any       // Attribute value or text content
	Markup   string    // For FrameMarkup
	Key      any       // Reconciliation key set with SetKey

	// Subtree is the number of frames spanned by a block frame, the frame
	// itself included. Zero for non-block frames and for blocks still open.
	Subtree int

	Component        Component        // For FrameComponent
	ElementCapture   func(ElementRef) // For FrameElementRef
	ComponentCapture func(Component)  // For FrameComponentRef
}
