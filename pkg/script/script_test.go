package script

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-dev/seqtree/internal/errors"
	"github.com/vango-dev/seqtree/pkg/builder"
	"github.com/vango-dev/seqtree/pkg/render"
	"github.com/vango-dev/seqtree/pkg/rendertree"
)

func TestLoad(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "list.json"))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if s.Name != "list" {
		t.Errorf("Name = %q, want file name", s.Name)
	}
	if s.Title != "A short list" || len(s.Ops) != 9 {
		t.Errorf("script = %+v", s)
	}
	if s.Path == "" {
		t.Error("Path not recorded")
	}
}

func TestLoadDir(t *testing.T) {
	scripts, err := LoadDir("testdata")
	if err != nil {
		t.Fatalf("LoadDir() = %v", err)
	}
	var names []string
	for _, s := range scripts {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"card", "list"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if errors.CodeOf(err) != errors.CodeScriptParse {
		t.Errorf("Load() = %v, want %s", err, errors.CodeScriptParse)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code string
	}{
		{"not json", `{`, errors.CodeScriptParse},
		{"unknown field", `{"ops": [], "extra": 1}`, errors.CodeScriptParse},
		{"unknown op", `{"ops": [{"op": "explode"}]}`, errors.CodeScriptOp},
		{"missing op", `{"ops": [{"line": 1}]}`, errors.CodeScriptOp},
		{"element without name", `{"ops": [{"op": "element"}]}`, errors.CodeScriptOp},
		{"negative line", `{"ops": [{"op": "region", "line": -1}]}`, errors.CodeScriptOp},
		{"negative count", `{"ops": [{"op": "closeMany", "count": -2}]}`, errors.CodeScriptOp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if errors.CodeOf(err) != tt.code {
				t.Errorf("Parse() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"ops": [{"op": "nope"}]}`), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected an error")
	}
	se, ok := err.(*errors.Error)
	if !ok || !strings.HasPrefix(se.Detail, path) {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestBuildFrames(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "list.json"))
	if err != nil {
		t.Fatal(err)
	}

	frames, err := s.Frames(context.Background(), NewRegistry(), builder.WithMaxPerLine(10))
	if err != nil {
		t.Fatalf("Frames() = %v", err)
	}

	want := []rendertree.Frame{
		{Sequence: 10, Type: rendertree.FrameElement, Name: "ul", Subtree: 7},
		{Sequence: 11, Type: rendertree.FrameAttribute, Name: "class", Value: "items"},
		{Sequence: 12, Type: rendertree.FrameAttribute, Name: "id", Value: "list"},
		{Sequence: 20, Type: rendertree.FrameElement, Name: "li", Subtree: 2},
		{Sequence: 21, Type: rendertree.FrameText, Value: "first"},
		{Sequence: 30, Type: rendertree.FrameElement, Name: "li", Key: float64(2), Subtree: 2},
		{Sequence: 32, Type: rendertree.FrameText, Value: "second"},
	}
	if diff := cmp.Diff(want, frames, cmpopts.IgnoreFields(rendertree.Frame{}, "Component", "ElementCapture", "ComponentCapture")); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}

	html, err := render.NewRenderer(render.Config{}).RenderToString(frames)
	if err != nil {
		t.Fatal(err)
	}
	if want := `<ul class="items" id="list"><li>first</li><li>second</li></ul>`; html != want {
		t.Errorf("html = %q, want %q", html, want)
	}
}

func TestBuildComponents(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "card.json"))
	if err != nil {
		t.Fatal(err)
	}
	frames, err := s.Frames(context.Background(), NewRegistry())
	if err != nil {
		t.Fatalf("Frames() = %v", err)
	}
	html, err := render.NewRenderer(render.Config{}).RenderToString(frames)
	if err != nil {
		t.Fatal(err)
	}
	if want := `<section class="card"><h2>Hello</h2><hr></section>`; html != want {
		t.Errorf("html = %q, want %q", html, want)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code string
	}{
		{"unknown component", `{"ops": [{"op": "component", "name": "Nope"}]}`, errors.CodeUnknownComponent},
		{"out of order", `{"ops": [{"line": 5, "op": "text"}, {"line": 4, "op": "text"}]}`, errors.CodeOutOfOrderLine},
		{"unbalanced", `{"ops": [{"op": "close"}]}`, errors.CodeUnbalancedClose},
		{"left open", `{"ops": [{"op": "region"}]}`, errors.CodeUnbalancedClose},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.data))
			if err != nil {
				t.Fatalf("Parse() = %v", err)
			}
			err = s.Build(context.Background(), rendertree.NewRecorder(), NewRegistry())
			if errors.CodeOf(err) != tt.code {
				t.Errorf("Build() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecuteAllOps(t *testing.T) {
	data := `{"ops": [
		{"op": "element", "name": "div"},
		{"op": "attr", "name": "data-x", "value": 1},
		{"op": "class", "value": "c"},
		{"op": "id", "value": "i"},
		{"op": "region"},
		{"op": "markup", "value": "<br>"},
		{"op": "newline", "count": 2},
		{"op": "text", "value": {"a": 1}},
		{"op": "closeMany", "count": 2}
	]}`
	s, err := Parse([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	frames, err := s.Frames(context.Background(), nil)
	if err != nil {
		t.Fatalf("Frames() = %v", err)
	}
	html, err := render.NewRenderer(render.Config{}).RenderToString(frames)
	if err != nil {
		t.Fatal(err)
	}
	want := `<div data-x="1" class="c" id="i"><br>` + "\n\n" + `{&quot;a&quot;:1}</div>`
	if html != want {
		t.Errorf("html = %q, want %q", html, want)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Custom", func() rendertree.Component { return &Wrapper{Tag: "aside"} })
	if diff := cmp.Diff([]string{"Custom", "Wrapper"}, reg.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if _, ok := reg.Lookup("Missing"); ok {
		t.Error("Lookup(Missing) should fail")
	}
}
