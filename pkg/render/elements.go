package render

// elementFlags describe how a tag is written.
type elementFlags uint8

const (
	// flagVoid marks elements that have no closing tag.
	flagVoid elementFlags = 1 << iota
	// flagInline marks elements whose children stay on the same line in
	// pretty output.
	flagInline
)

var elements = map[string]elementFlags{
	"area": flagVoid, "base": flagVoid, "col": flagVoid, "embed": flagVoid,
	"hr": flagVoid, "img": flagVoid, "input": flagVoid, "link": flagVoid,
	"meta": flagVoid, "param": flagVoid, "source": flagVoid, "track": flagVoid,
	"br":  flagVoid | flagInline,
	"wbr": flagVoid | flagInline,

	"a": flagInline, "abbr": flagInline, "b": flagInline, "bdi": flagInline,
	"bdo": flagInline, "cite": flagInline, "code": flagInline, "data": flagInline,
	"dfn": flagInline, "em": flagInline, "i": flagInline, "kbd": flagInline,
	"mark": flagInline, "q": flagInline, "s": flagInline, "samp": flagInline,
	"small": flagInline, "span": flagInline, "strong": flagInline, "sub": flagInline,
	"sup": flagInline, "time": flagInline, "u": flagInline, "var": flagInline,
	"label": flagInline, "button": flagInline,
}

func isVoidElement(tag string) bool {
	return elements[tag]&flagVoid != 0
}

func isInlineElement(tag string) bool {
	return elements[tag]&flagInline != 0
}

// booleanAttrs are written as a bare name when true and omitted when false.
var booleanAttrs = map[string]bool{
	"allowfullscreen": true,
	"async":           true,
	"autofocus":       true,
	"autoplay":        true,
	"checked":         true,
	"controls":        true,
	"default":         true,
	"defer":           true,
	"disabled":        true,
	"formnovalidate":  true,
	"hidden":          true,
	"inert":           true,
	"ismap":           true,
	"itemscope":       true,
	"loop":            true,
	"multiple":        true,
	"muted":           true,
	"nomodule":        true,
	"novalidate":      true,
	"open":            true,
	"playsinline":     true,
	"readonly":        true,
	"required":        true,
	"reversed":        true,
	"selected":        true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
