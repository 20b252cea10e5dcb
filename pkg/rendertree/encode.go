package rendertree

import (
	"fmt"
	"io"
	"strings"
)

// FrameJSON is the wire form of a Frame.
type FrameJSON struct {
	Sequence int    `json:"seq"`
	Type     string `json:"type"`
	Name     string `json:"name,omitempty"`
	Value    any    `json:"value,omitempty"`
	Markup   string `json:"markup,omitempty"`
	Key      any    `json:"key,omitempty"`
	Subtree  int    `json:"subtree,omitempty"`
}

// EncodeFrames converts frames to their wire form. Component frames are
// named by their Go type; values that cannot be serialized, such as
// fragments, are replaced by their type name.
func EncodeFrames(frames []Frame) []FrameJSON {
	out := make([]FrameJSON, len(frames))
	for i, f := range frames {
		j := FrameJSON{
			Sequence: f.Sequence,
			Type:     f.Type.String(),
			Name:     f.Name,
			Value:    wireValue(f.Value),
			Markup:   f.Markup,
			Key:      wireValue(f.Key),
			Subtree:  f.Subtree,
		}
		if f.Type == FrameComponent && f.Component != nil {
			j.Name = fmt.Sprintf("%T", f.Component)
		}
		out[i] = j
	}
	return out
}

func wireValue(v any) any {
	switch v := v.(type) {
	case nil, string, bool, int, int64, float64:
		return v
	case fmt.Stringer:
		return v.String()
	case Fragment, Component:
		return fmt.Sprintf("%T", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Dump writes one line per frame: sequence, indentation by depth, type and
// payload.
func Dump(w io.Writer, frames []Frame) error {
	var ends []int
	for i, f := range frames {
		for len(ends) > 0 && ends[len(ends)-1] <= i {
			ends = ends[:len(ends)-1]
		}

		line := fmt.Sprintf("%6d %s%s", f.Sequence, strings.Repeat("  ", len(ends)), f.Type)
		switch f.Type {
		case FrameElement:
			line += " " + f.Name
		case FrameComponent:
			line += fmt.Sprintf(" %T", f.Component)
		case FrameAttribute:
			line += fmt.Sprintf(" %s=%q", f.Name, fmt.Sprint(wireValue(f.Value)))
		case FrameText:
			line += fmt.Sprintf(" %q", fmt.Sprint(wireValue(f.Value)))
		case FrameMarkup:
			line += fmt.Sprintf(" %q", f.Markup)
		}
		if f.Key != nil {
			line += fmt.Sprintf(" key=%v", wireValue(f.Key))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}

		if f.Type.IsBlock() && f.Subtree > 1 {
			ends = append(ends, i+f.Subtree)
		}
	}
	return nil
}
