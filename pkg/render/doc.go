// Package render writes render-tree frames as HTML.
//
// The renderer walks a frame list produced by a builder (or any other
// rendertree.Sink) and produces markup, handling:
//
//   - Text escaping and verbatim markup frames
//   - Void elements (input, br, img, etc.)
//   - Boolean attributes (disabled, checked, etc.)
//   - Transparent regions
//   - Components, rendered recursively into a fresh Recorder
//   - Element and component reference captures
//
// # Basic Usage
//
//	rec := rendertree.NewRecorder()
//	err := builder.Run(rec, func(b *builder.Builder) {
//	    b.Element("p").Text("hello").Close()
//	})
//	html, err := render.NewRenderer(render.Config{}).RenderToString(rec.Frames())
//
// # Components
//
// A component frame's attributes become its parameters. Frames nested in
// the component frame are passed as a rendertree.Fragment under the
// ChildContent parameter. Components implementing rendertree.ParameterSetter
// receive the parameters before BuildRenderTree is called.
//
// # Security
//
// Text content and attribute values are escaped. Markup frames are written
// verbatim and should only carry trusted content.
package render
