package rendertree

import (
	"github.com/vango-dev/seqtree/internal/errors"
)

// Recorder is an in-memory Sink that accumulates frames and checks their
// structure as they arrive. The first structural violation is kept and
// reported by Err; later calls are still recorded.
//
// A Recorder is not safe for concurrent use.
type Recorder struct {
	frames []Frame
	open   []int // indices of open block frames, innermost last

	// attrsAllowed is true while the last frame is an open element or
	// component, or an attribute following one.
	attrsAllowed bool

	err error
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// OpenElement implements Sink.
func (r *Recorder) OpenElement(seq int, name string) {
	r.openBlock(Frame{Sequence: seq, Type: FrameElement, Name: name})
	r.attrsAllowed = true
}

// CloseElement implements Sink.
func (r *Recorder) CloseElement() {
	r.closeBlock(FrameElement)
}

// OpenComponent implements Sink.
func (r *Recorder) OpenComponent(seq int, c Component) {
	r.openBlock(Frame{Sequence: seq, Type: FrameComponent, Component: c})
	r.attrsAllowed = true
}

// CloseComponent implements Sink.
func (r *Recorder) CloseComponent() {
	r.closeBlock(FrameComponent)
}

// OpenRegion implements Sink.
func (r *Recorder) OpenRegion(seq int) {
	r.openBlock(Frame{Sequence: seq, Type: FrameRegion})
}

// CloseRegion implements Sink.
func (r *Recorder) CloseRegion() {
	r.closeBlock(FrameRegion)
}

// AddAttribute implements Sink.
func (r *Recorder) AddAttribute(seq int, name string, value any) {
	if !r.attrsAllowed {
		r.fail("attribute %q must follow an element, a component or another attribute", name)
	}
	r.frames = append(r.frames, Frame{Sequence: seq, Type: FrameAttribute, Name: name, Value: value})
	r.attrsAllowed = true
}

// AddContent implements Sink.
func (r *Recorder) AddContent(seq int, value any) {
	r.append(Frame{Sequence: seq, Type: FrameText, Value: value})
}

// AddMarkupContent implements Sink.
func (r *Recorder) AddMarkupContent(seq int, markup string) {
	r.append(Frame{Sequence: seq, Type: FrameMarkup, Markup: markup})
}

// SetKey implements Sink.
func (r *Recorder) SetKey(value any) {
	idx, ok := r.innermost()
	if !ok || r.frames[idx].Type == FrameRegion {
		r.fail("key must be set on an open element or component")
		return
	}
	r.frames[idx].Key = value
}

// AddElementReferenceCapture implements Sink.
func (r *Recorder) AddElementReferenceCapture(seq int, fn func(ElementRef)) {
	if idx, ok := r.innermost(); !ok || r.frames[idx].Type != FrameElement {
		r.fail("element reference capture must be inside an element")
	}
	r.append(Frame{Sequence: seq, Type: FrameElementRef, ElementCapture: fn})
}

// AddComponentReferenceCapture implements Sink.
func (r *Recorder) AddComponentReferenceCapture(seq int, fn func(Component)) {
	if idx, ok := r.innermost(); !ok || r.frames[idx].Type != FrameComponent {
		r.fail("component reference capture must be inside a component")
	}
	r.append(Frame{Sequence: seq, Type: FrameComponentRef, ComponentCapture: fn})
}

// Clear implements Sink. It also resets any recorded error.
func (r *Recorder) Clear() {
	r.frames = nil
	r.open = nil
	r.attrsAllowed = false
	r.err = nil
}

// Frames implements Sink. The returned slice is a copy.
func (r *Recorder) Frames() []Frame {
	out := make([]Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Len returns the number of accumulated frames.
func (r *Recorder) Len() int {
	return len(r.frames)
}

// Depth returns the number of blocks currently open.
func (r *Recorder) Depth() int {
	return len(r.open)
}

// Err returns the first structural violation, if any.
func (r *Recorder) Err() error {
	return r.err
}

// Validate returns Err, or an error if any block is still open.
func (r *Recorder) Validate() error {
	if r.err != nil {
		return r.err
	}
	if len(r.open) > 0 {
		return errors.New(errors.CodeMalformedFrames).
			WithDetailf("%d block(s) left open, innermost %s", len(r.open), r.frames[r.open[len(r.open)-1]].Type)
	}
	return nil
}

func (r *Recorder) openBlock(f Frame) {
	r.frames = append(r.frames, f)
	r.open = append(r.open, len(r.frames)-1)
}

func (r *Recorder) closeBlock(t FrameType) {
	r.attrsAllowed = false
	idx, ok := r.innermost()
	if !ok {
		r.fail("close %s with no open block", t)
		return
	}
	if got := r.frames[idx].Type; got != t {
		r.fail("close %s but the innermost open block is %s", t, got)
		return
	}
	r.frames[idx].Subtree = len(r.frames) - idx
	r.open = r.open[:len(r.open)-1]
}

func (r *Recorder) append(f Frame) {
	r.frames = append(r.frames, f)
	r.attrsAllowed = false
}

func (r *Recorder) innermost() (int, bool) {
	if len(r.open) == 0 {
		return 0, false
	}
	return r.open[len(r.open)-1], true
}

func (r *Recorder) fail(format string, args ...any) {
	if r.err != nil {
		return
	}
	r.err = errors.New(errors.CodeMalformedFrames).WithDetailf(format, args...)
}
