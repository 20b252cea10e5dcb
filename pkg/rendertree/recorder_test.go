package rendertree

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	sterrors "github.com/vango-dev/seqtree/internal/errors"
)

var ignoreCallbacks = cmpopts.IgnoreFields(Frame{}, "Component", "ElementCapture", "ComponentCapture")

func TestRecorderSubtreeLengths(t *testing.T) {
	rec := NewRecorder()
	rec.OpenElement(10, "div")
	rec.AddAttribute(11, "class", "card")
	rec.OpenRegion(20)
	rec.AddContent(21, "hello")
	rec.CloseRegion()
	rec.AddMarkupContent(30, "<hr>")
	rec.CloseElement()

	want := []Frame{
		{Sequence: 10, Type: FrameElement, Name: "div", Subtree: 5},
		{Sequence: 11, Type: FrameAttribute, Name: "class", Value: "card"},
		{Sequence: 20, Type: FrameRegion, Subtree: 2},
		{Sequence: 21, Type: FrameText, Value: "hello"},
		{Sequence: 30, Type: FrameMarkup, Markup: "<hr>"},
	}
	if diff := cmp.Diff(want, rec.Frames(), ignoreCallbacks); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}
	if err := rec.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if rec.Depth() != 0 || rec.Len() != 5 {
		t.Errorf("Depth() = %d, Len() = %d", rec.Depth(), rec.Len())
	}
}

func TestRecorderStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		build   func(r *Recorder)
		wantMsg string
	}{
		{
			name:    "close without open",
			build:   func(r *Recorder) { r.CloseElement() },
			wantMsg: "no open block",
		},
		{
			name: "mismatched close",
			build: func(r *Recorder) {
				r.OpenRegion(1)
				r.CloseElement()
			},
			wantMsg: "innermost open block is Region",
		},
		{
			name: "attribute after content",
			build: func(r *Recorder) {
				r.OpenElement(1, "p")
				r.AddContent(2, "x")
				r.AddAttribute(3, "id", "late")
			},
			wantMsg: `attribute "id"`,
		},
		{
			name: "attribute inside region",
			build: func(r *Recorder) {
				r.OpenRegion(1)
				r.AddAttribute(2, "id", "x")
			},
			wantMsg: `attribute "id"`,
		},
		{
			name:    "key without block",
			build:   func(r *Recorder) { r.SetKey("k") },
			wantMsg: "key must be set",
		},
		{
			name: "element ref outside element",
			build: func(r *Recorder) {
				r.AddElementReferenceCapture(1, func(ElementRef) {})
			},
			wantMsg: "inside an element",
		},
		{
			name: "component ref inside element",
			build: func(r *Recorder) {
				r.OpenElement(1, "div")
				r.AddComponentReferenceCapture(2, func(Component) {})
			},
			wantMsg: "inside a component",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecorder()
			tt.build(rec)
			err := rec.Err()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, sterrors.Sentinel(sterrors.CodeMalformedFrames)) {
				t.Errorf("error code = %q", sterrors.CodeOf(err))
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestRecorderKeepsFirstError(t *testing.T) {
	rec := NewRecorder()
	rec.CloseRegion()
	rec.SetKey(1)
	if !strings.Contains(rec.Err().Error(), "close Region") {
		t.Errorf("Err() = %v, want the first violation", rec.Err())
	}
}

func TestRecorderValidateOpenBlocks(t *testing.T) {
	rec := NewRecorder()
	rec.OpenElement(1, "ul")
	rec.OpenElement(2, "li")

	err := rec.Validate()
	if err == nil || !strings.Contains(err.Error(), "2 block(s) left open, innermost Element") {
		t.Errorf("Validate() = %v", err)
	}
}

func TestRecorderSetKey(t *testing.T) {
	rec := NewRecorder()
	rec.OpenElement(1, "li")
	rec.SetKey("row-7")
	rec.AddAttribute(2, "class", "row")
	rec.CloseElement()

	if err := rec.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if got := rec.Frames()[0].Key; got != "row-7" {
		t.Errorf("Key = %v, want row-7", got)
	}
}

func TestRecorderClear(t *testing.T) {
	rec := NewRecorder()
	rec.OpenElement(1, "div")
	rec.CloseRegion()
	rec.Clear()

	if rec.Len() != 0 || rec.Depth() != 0 || rec.Err() != nil {
		t.Errorf("Clear should reset frames, blocks and errors")
	}
}

func TestRecorderFramesIsCopy(t *testing.T) {
	rec := NewRecorder()
	rec.AddContent(1, "a")
	frames := rec.Frames()
	frames[0].Value = "mutated"
	if rec.Frames()[0].Value != "a" {
		t.Error("Frames() must return a copy")
	}
}

func TestFrameTypeString(t *testing.T) {
	tests := map[FrameType]string{
		FrameElement:      "Element",
		FrameText:         "Text",
		FrameMarkup:       "Markup",
		FrameAttribute:    "Attribute",
		FrameComponent:    "Component",
		FrameRegion:       "Region",
		FrameElementRef:   "ElementRef",
		FrameComponentRef: "ComponentRef",
		FrameType(99):     "Unknown",
	}
	for ft, want := range tests {
		if got := ft.String(); got != want {
			t.Errorf("FrameType(%d).String() = %q, want %q", ft, got, want)
		}
	}
}
