package render

import (
	"fmt"
	"io"
	"testing"

	"github.com/vango-dev/seqtree/pkg/builder"
	"github.com/vango-dev/seqtree/pkg/rendertree"
)

func benchFrames(b *testing.B, items int, opts ...builder.Option) []rendertree.Frame {
	b.Helper()
	rec := rendertree.NewRecorder()
	opts = append([]builder.Option{builder.WithLineMode(builder.LineCounter)}, opts...)
	err := builder.Run(rec, func(bl *builder.Builder) {
		bl.Element("ul", builder.A("class", "items"))
		for i := 0; i < items; i++ {
			bl.Element("li").Key(i).Text(fmt.Sprintf("Item %d", i)).Close()
		}
		bl.Close()
	}, opts...)
	if err != nil {
		b.Fatal(err)
	}
	return rec.Frames()
}

func BenchmarkBuildLargeTree(b *testing.B) {
	for i := 0; i < b.N; i++ {
		rec := rendertree.NewRecorder()
		builder.Run(rec, func(bl *builder.Builder) {
			bl.Element("ul")
			for j := 0; j < 1000; j++ {
				bl.Element("li").Text("item").Close()
			}
			bl.Close()
		}, builder.WithLineMode(builder.LineCounter))
	}
}

func BenchmarkRenderLargeTree(b *testing.B) {
	renderer := NewRenderer(Config{})
	frames := benchFrames(b, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		renderer.Reset()
		renderer.RenderToString(frames)
	}
}

func BenchmarkRenderPrettyFrames(b *testing.B) {
	renderer := NewRenderer(Config{})
	frames := benchFrames(b, 1000, builder.WithPrettyPrint(true))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		renderer.Reset()
		renderer.RenderFrames(io.Discard, frames)
	}
}
