package menu

// Footprint estimates
const (
	DefaultWidth = 312
	RowHeight    = 28
	FlareMargin  = 620
)

// Point is a screen anchor
type Point struct {
	Top  int `json:"top"`
	Left int `json:"left"`
}

// Viewport is the visible screen area
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Position is the resolved placement of a menu. Exactly one of Top and
// Bottom is set; Flipped means the menu grows upward from Bottom.
type Position struct {
	Top     *int `json:"top,omitempty"`
	Bottom  *int `json:"bottom,omitempty"`
	Left    int  `json:"left"`
	Flipped bool `json:"flipped"`
	IsLeft  bool `json:"isLeft"` // submenus flare to the right
}

// Resolve places a width x rows*RowHeight menu at anchor inside vp.
// Placement is best-effort: tiny viewports are clamped at zero.
func Resolve(anchor Point, vp Viewport, width, rows int) Position {
	if width <= 0 {
		width = DefaultWidth
	}
	height := rows * RowHeight

	var pos Position

	pos.Left = anchor.Left
	if vp.Width-anchor.Left < width {
		pos.Left = vp.Width - width
	}
	pos.Left = max(pos.Left, 0)

	if vp.Height-anchor.Top < height {
		bottom := max(vp.Height-anchor.Top, 0)
		pos.Bottom = &bottom
		pos.Flipped = true
	} else {
		top := max(anchor.Top, 0)
		pos.Top = &top
	}

	pos.IsLeft = vp.Width-pos.Left > FlareMargin
	return pos
}
