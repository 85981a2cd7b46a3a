package core

// Color is a palette tag carried by particles and screen cells.
// Renderers map it to whatever their output supports.
type Color uint8

// Predefined colors.
const (
	ColorDefault Color = iota
	ColorWhite
	ColorOrange
	ColorGrey
	ColorRed
	ColorBlack
	ColorYellow
	ColorBlue
	ColorGreen
	ColorBrown
)

// String returns the tag name, used in traces.
func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "white"
	case ColorOrange:
		return "orange"
	case ColorGrey:
		return "grey"
	case ColorRed:
		return "red"
	case ColorBlack:
		return "black"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorBrown:
		return "brown"
	default:
		return "default"
	}
}
