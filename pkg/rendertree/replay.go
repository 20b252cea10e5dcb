package rendertree

import (
	"github.com/vango-dev/seqtree/internal/errors"
)

// Replay re-issues frames into sink, preserving sequence numbers and keys.
// Block frames must be closed (non-zero Subtree) and nest properly.
func Replay(frames []Frame, sink Sink) error {
	type openBlock struct {
		typ FrameType
		end int
	}
	var stack []openBlock

	closeUntil := func(i int) {
		for len(stack) > 0 && stack[len(stack)-1].end == i {
			closeFrame(sink, stack[len(stack)-1].typ)
			stack = stack[:len(stack)-1]
		}
	}

	for i, f := range frames {
		closeUntil(i)

		if f.Type.IsBlock() {
			end := i + f.Subtree
			if f.Subtree < 1 || end > len(frames) {
				return errors.New(errors.CodeMalformedFrames).
					WithDetailf("frame %d (%s, seq %d) has invalid subtree length %d", i, f.Type, f.Sequence, f.Subtree)
			}
			if len(stack) > 0 && end > stack[len(stack)-1].end {
				return errors.New(errors.CodeMalformedFrames).
					WithDetailf("frame %d (%s, seq %d) overruns its parent block", i, f.Type, f.Sequence)
			}
			stack = append(stack, openBlock{typ: f.Type, end: end})
		}

		switch f.Type {
		case FrameElement:
			sink.OpenElement(f.Sequence, f.Name)
		case FrameComponent:
			sink.OpenComponent(f.Sequence, f.Component)
		case FrameRegion:
			sink.OpenRegion(f.Sequence)
		case FrameAttribute:
			sink.AddAttribute(f.Sequence, f.Name, f.Value)
		case FrameText:
			sink.AddContent(f.Sequence, f.Value)
		case FrameMarkup:
			sink.AddMarkupContent(f.Sequence, f.Markup)
		case FrameElementRef:
			sink.AddElementReferenceCapture(f.Sequence, f.ElementCapture)
		case FrameComponentRef:
			sink.AddComponentReferenceCapture(f.Sequence, f.ComponentCapture)
		default:
			return errors.New(errors.CodeMalformedFrames).
				WithDetailf("frame %d has unknown type %d", i, f.Type)
		}

		if f.Key != nil && f.Type.IsBlock() {
			sink.SetKey(f.Key)
		}
	}
	closeUntil(len(frames))

	return nil
}

// AsFragment returns a Fragment that replays frames into its sink.
// Replay errors are left for the sink to report.
func AsFragment(frames []Frame) Fragment {
	return func(sink Sink) {
		_ = Replay(frames, sink)
	}
}

func closeFrame(sink Sink, t FrameType) {
	switch t {
	case FrameElement:
		sink.CloseElement()
	case FrameComponent:
		sink.CloseComponent()
	case FrameRegion:
		sink.CloseRegion()
	}
}
