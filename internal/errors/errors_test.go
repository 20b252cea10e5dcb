package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "out of order line",
			code:    CodeOutOfOrderLine,
			wantMsg: "Source line is lower than the previous one",
			wantCat: CategoryBuild,
		},
		{
			name:    "malformed frames",
			code:    CodeMalformedFrames,
			wantMsg: "Malformed render tree",
			wantCat: CategorySink,
		},
		{
			name:    "config parse",
			code:    CodeConfigParse,
			wantMsg: "Invalid configuration file",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "ST999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryScript, "op %q not supported", "blink")
	if err.Message != `op "blink" not supported` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Error() != `op "blink" not supported` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestErrorString(t *testing.T) {
	err := Sentinel(CodeLineOverflow)
	if got, want := err.Error(), "ST002: Too many operations on one source line"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = New(CodeLineOverflow).WithDetail("line 5 already has 10 operations")
	if !strings.HasSuffix(err.Error(), "(line 5 already has 10 operations)") {
		t.Errorf("Error() = %q, want detail suffix", err.Error())
	}
}

func TestIsMatchesByCode(t *testing.T) {
	sentinel := Sentinel(CodeUnbalancedClose)
	err := New(CodeUnbalancedClose).WithDetail("close with no open block")

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should match on code")
	}
	if stderrors.Is(err, Sentinel(CodeLineOverflow)) {
		t.Error("errors.Is should not match a different code")
	}

	wrapped := fmt.Errorf("build failed: %w", err)
	if !stderrors.Is(wrapped, sentinel) {
		t.Error("errors.Is should see through fmt wrapping")
	}
	if CodeOf(wrapped) != CodeUnbalancedClose {
		t.Errorf("CodeOf = %q", CodeOf(wrapped))
	}
	if CodeOf(stderrors.New("plain")) != "" {
		t.Error("CodeOf of a plain error should be empty")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := New(CodePublish).Wrap(cause)
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should be reachable")
	}
	if FromError(cause, CodePublish).Wrapped != cause {
		t.Error("FromError should wrap plain errors")
	}
	if FromError(err, CodeRender) != err {
		t.Error("FromError should return *Error unchanged")
	}
	if FromError(nil, CodeRender) != nil {
		t.Error("FromError(nil) should be nil")
	}
}

func TestWithLocationReadsContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "view.go")
	src := "line1\nline2\nline3\nline4\nline5\nline6\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New(CodeOutOfOrderLine).WithLocation(path, 3, 0)
	if err.Location == nil || err.Location.Line != 3 {
		t.Fatalf("Location = %v", err.Location)
	}
	if len(err.Context) != 5 || err.Context[0] != "line1" || err.Context[4] != "line5" {
		t.Errorf("Context = %v", err.Context)
	}

	if New(CodeOutOfOrderLine).WithLocation("", 0, 0).Location != nil {
		t.Error("empty location should be ignored")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New(CodeLineOverflow).WithSuggestion("Raise max-per-line")
	err.Location = &Location{File: "card.go", Line: 42}
	out := err.Format()
	// Detail text is wrapped; compare with runs of whitespace collapsed.
	flat := strings.Join(strings.Fields(out), " ")

	for _, want := range []string{"ERROR ST002: Too many operations on one source line", "card.go:42", "per-line capacity", "Hint: Raise max-per-line"} {
		if !strings.Contains(flat, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("colors should be disabled")
	}

	if got := err.FormatCompact(); !strings.HasPrefix(got, "card.go:42: ST002") {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	err := New(CodeUnknownComponent).WithDetail(`no component named "Card"`)
	err.Location = &Location{File: "page.json", Line: 7}

	var decoded map[string]any
	if e := json.Unmarshal([]byte(err.FormatJSON()), &decoded); e != nil {
		t.Fatalf("invalid JSON: %v", e)
	}
	if decoded["code"] != CodeUnknownComponent {
		t.Errorf("code = %v", decoded["code"])
	}
	loc, ok := decoded["location"].(map[string]any)
	if !ok || loc["line"] != float64(7) {
		t.Errorf("location = %v", decoded["location"])
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, fmt.Errorf("wrapped: %w", New(CodeFinished)))
	if !strings.Contains(buf.String(), "ST004") {
		t.Errorf("PrintError output = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, stderrors.New("boom"))
	if !strings.Contains(buf.String(), "ERROR: boom") {
		t.Errorf("PrintError output = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six seven", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six seven" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}

func TestRegistryCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 || codes[0] != CodeOutOfOrderLine {
		t.Fatalf("codes = %v", codes)
	}
	if _, ok := GetTemplate(CodeLineOverflow); !ok {
		t.Error("ST002 should be registered")
	}
}
