package rendertree

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type stubComponent struct{ name string }

func (s *stubComponent) BuildRenderTree(sink Sink) error {
	sink.AddContent(0, s.name)
	return nil
}

func TestReplayRoundTrip(t *testing.T) {
	card := &stubComponent{name: "card"}

	src := NewRecorder()
	src.OpenElement(10, "ul")
	src.SetKey("list")
	src.AddAttribute(11, "class", "items")
	src.OpenElement(20, "li")
	src.AddContent(21, "one")
	src.CloseElement()
	src.OpenRegion(30)
	src.OpenComponent(31, card)
	src.AddAttribute(32, "Title", "x")
	src.CloseComponent()
	src.CloseRegion()
	src.AddMarkupContent(40, "<br>")
	src.CloseElement()
	src.AddContent(50, "after")

	dst := NewRecorder()
	if err := Replay(src.Frames(), dst); err != nil {
		t.Fatalf("Replay() = %v", err)
	}
	if err := dst.Validate(); err != nil {
		t.Fatalf("replayed tree invalid: %v", err)
	}
	if diff := cmp.Diff(src.Frames(), dst.Frames(), ignoreCallbacks); diff != "" {
		t.Errorf("replay mismatch (-src +dst):\n%s", diff)
	}
	if dst.Frames()[5].Component != card {
		t.Error("component instance should be preserved")
	}
}

func TestReplayRejectsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		frames  []Frame
		wantMsg string
	}{
		{
			name:    "unclosed block",
			frames:  []Frame{{Type: FrameElement, Name: "div"}},
			wantMsg: "invalid subtree length 0",
		},
		{
			name:    "subtree past end",
			frames:  []Frame{{Type: FrameRegion, Subtree: 3}},
			wantMsg: "invalid subtree length 3",
		},
		{
			name: "overrun parent",
			frames: []Frame{
				{Type: FrameElement, Name: "div", Subtree: 2},
				{Type: FrameElement, Name: "p", Subtree: 2},
				{Type: FrameText, Value: "x"},
			},
			wantMsg: "overruns its parent",
		},
		{
			name:    "unknown type",
			frames:  []Frame{{Type: FrameType(42)}},
			wantMsg: "unknown type 42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Replay(tt.frames, NewRecorder())
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Replay() = %v, want error containing %q", err, tt.wantMsg)
			}
		})
	}
}

func TestAsFragment(t *testing.T) {
	src := NewRecorder()
	src.OpenElement(1, "em")
	src.AddContent(2, "hi")
	src.CloseElement()

	dst := NewRecorder()
	AsFragment(src.Frames())(dst)
	if dst.Len() != 2 || dst.Frames()[0].Subtree != 2 {
		t.Errorf("fragment replay produced %+v", dst.Frames())
	}
}

func TestComponentFunc(t *testing.T) {
	var c Component = ComponentFunc(func(sink Sink) error {
		sink.AddContent(1, "from func")
		return nil
	})
	rec := NewRecorder()
	if err := c.BuildRenderTree(rec); err != nil {
		t.Fatal(err)
	}
	if rec.Frames()[0].Value != "from func" {
		t.Errorf("frames = %+v", rec.Frames())
	}
}
