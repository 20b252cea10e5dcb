package builder

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"

	"github.com/vango-dev/seqtree/internal/errors"
	"github.com/vango-dev/seqtree/pkg/rendertree"
)

func TestBuilderDataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/builder", func(t *testing.T, td *datadriven.TestData) string {
		switch td.Cmd {
		case "build":
			return runBuildScript(t, td)
		default:
			return fmt.Sprintf("unknown command: %s", td.Cmd)
		}
	})
}

func runBuildScript(t *testing.T, td *datadriven.TestData) string {
	opts := []Option{WithPrettyPrint(td.HasArg("pretty"))}
	var maxPerLine int
	if td.MaybeScanArgs(t, "max-per-line", &maxPerLine) {
		opts = append(opts, WithMaxPerLine(maxPerLine))
	}
	var mode string
	if td.MaybeScanArgs(t, "line-mode", &mode) {
		m, ok := ParseLineMode(mode)
		if !ok {
			return fmt.Sprintf("unknown line mode %q", mode)
		}
		opts = append(opts, WithLineMode(m))
	}

	rec := rendertree.NewRecorder()
	b, err := New(rec, opts...)
	if err != nil {
		return err.Error()
	}

	for _, line := range strings.Split(strings.TrimSpace(td.Input), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return fmt.Sprintf("malformed line %q", line)
		}
		if fields[0] != "-" {
			n, err := strconv.Atoi(fields[0])
			if err != nil {
				return err.Error()
			}
			b.At(n)
		}
		args := fields[2:]
		switch fields[1] {
		case "element":
			b.Element(args[0])
		case "region":
			b.Region()
		case "text":
			b.Text(strings.Join(args, " "))
		case "attr":
			b.Attr(args[0], args[1])
		case "close":
			b.Close()
		case "close-all":
			b.CloseAll()
		case "close-many":
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return err.Error()
			}
			b.CloseMany(n)
		default:
			return fmt.Sprintf("unknown op %q", fields[1])
		}
	}
	finishErr := b.Finish()

	var out strings.Builder
	for _, f := range rec.Frames() {
		out.WriteString(formatFrame(f))
		out.WriteString("\n")
	}
	code := "none"
	if finishErr != nil {
		code = errors.CodeOf(finishErr)
	}
	fmt.Fprintf(&out, "error: %s\ndepth: %d\n", code, b.Depth())
	return out.String()
}

func formatFrame(f rendertree.Frame) string {
	switch f.Type {
	case rendertree.FrameElement:
		return fmt.Sprintf("%d %s %s", f.Sequence, f.Type, f.Name)
	case rendertree.FrameAttribute:
		return fmt.Sprintf("%d %s %s=%v", f.Sequence, f.Type, f.Name, f.Value)
	case rendertree.FrameText:
		return fmt.Sprintf("%d %s %q", f.Sequence, f.Type, fmt.Sprint(f.Value))
	case rendertree.FrameMarkup:
		return fmt.Sprintf("%d %s %q", f.Sequence, f.Type, f.Markup)
	default:
		return fmt.Sprintf("%d %s", f.Sequence, f.Type)
	}
}
