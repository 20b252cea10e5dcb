// Package rendertree defines the render-tree sink that seqtree builders write
// into, and the frame model that sinks accumulate.
//
// A render tree is a flat sequence of frames. Elements, components and
// regions open a block; the frames that follow (attributes first, then
// content and nested blocks) belong to it until the matching close. Each
// frame carries the sequence number supplied by the caller, which downstream
// diffing uses to match nodes across renders.
//
// # Sink
//
// Sink is the capability set a builder needs. Recorder is the in-memory
// implementation: it validates structure as frames arrive and exposes the
// accumulated frames through Frames.
//
//	rec := rendertree.NewRecorder()
//	rec.OpenElement(10, "div")
//	rec.AddAttribute(11, "class", "card")
//	rec.AddContent(12, "hello")
//	rec.CloseElement()
//	frames := rec.Frames()
//
// # Components
//
// A Component writes its own subtree into a sink. Parameters are the
// attribute frames that follow the component frame; renderers deliver them
// through ParameterSetter before calling BuildRenderTree.
package rendertree
