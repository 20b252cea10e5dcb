package builder

// BlockKind identifies which close primitive an open block needs.
type BlockKind uint8

const (
	BlockComponent BlockKind = iota
	BlockElement
	BlockRegion
)

// String returns the string representation of the BlockKind.
func (k BlockKind) String() string {
	switch k {
	case BlockComponent:
		return "Component"
	case BlockElement:
		return "Element"
	case BlockRegion:
		return "Region"
	default:
		return "Unknown"
	}
}
