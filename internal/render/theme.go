package render

import "roguecore/internal/gamemap"

// Theme holds the glyphs used to draw terrain. Emoji are rendered by the
// terminal with their own colors, so remembered tiles use distinct glyphs
// instead of a tinted foreground.
type Theme struct {
	Wall       string // visible wall
	Floor      string // visible lit floor
	DarkFloor  string // visible unlit floor (only to viewers that see in the dark)
	DimWall    string // remembered wall
	DimFloor   string // remembered floor
	Door       string
	StairsDown string
	StairsUp   string
	Observer   string
	CellWidth  int // terminal columns per map tile
}

// Emoji is the default interactive theme.
var Emoji = Theme{
	Wall:       "🧱",
	Floor:      "🟫",
	DarkFloor:  "⬛",
	DimWall:    "🌑",
	DimFloor:   "🔲",
	Door:       "🚪",
	StairsDown: "🔽",
	StairsUp:   "🔼",
	Observer:   "🧙",
	CellWidth:  2,
}

// ASCII is a single-column theme for plain terminals and text dumps.
var ASCII = Theme{
	Wall:       "#",
	Floor:      ".",
	DarkFloor:  ":",
	DimWall:    "+",
	DimFloor:   ",",
	Door:       "/",
	StairsDown: ">",
	StairsUp:   "<",
	Observer:   "@",
	CellWidth:  1,
}

// Glyph returns the glyph for t. Doors and stairs look the same whether
// visible or remembered.
func (th Theme) Glyph(t gamemap.Tile, visible bool) string {
	switch t.Kind {
	case gamemap.TileDoor:
		return th.Door
	case gamemap.TileStairsDown:
		return th.StairsDown
	case gamemap.TileStairsUp:
		return th.StairsUp
	case gamemap.TileWall:
		if visible {
			return th.Wall
		}
		return th.DimWall
	default:
		switch {
		case !visible:
			return th.DimFloor
		case t.Dark:
			return th.DarkFloor
		default:
			return th.Floor
		}
	}
}
