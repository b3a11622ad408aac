package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 30, G: 26, B: 22, A: 230},
		PanelBorder:     rl.Color{R: 90, G: 78, B: 62, A: 255},
		SectionHeader:   rl.Color{R: 236, G: 210, B: 160, A: 255},
		LabelColor:      rl.LightGray,
		ValueColor:      rl.LightGray,
		BarBg:           rl.Color{R: 50, G: 44, B: 38, A: 255},
		BarFill:         rl.Color{R: 200, G: 170, B: 120, A: 255},
		BarFillNegative: rl.Color{R: 150, G: 110, B: 80, A: 255},
		BarFillPositive: rl.Color{R: 235, G: 220, B: 190, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      80,
		BarHeight:       12,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws "label: value" on one line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.rowHeight(WidgetText)
}

// bar is the track of a bar widget: label on the left, value text on the
// right.
type bar struct {
	x, y, width int32
}

func (r *Renderer) barTrack(x, y int32, label string, width int32) bar {
	b := bar{x: x + r.Theme.LabelWidth, y: y + 2, width: width - r.Theme.LabelWidth - 50}
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(b.x, b.y, b.width, r.Theme.BarHeight, r.Theme.BarBg)
	return b
}

func (r *Renderer) barValue(b bar, text string) {
	rl.DrawText(text, b.x+b.width+5, b.y-2, r.Theme.FontSize, r.Theme.ValueColor)
}

// DrawBar draws a bar filled from the left for values in rng.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, rng FieldRange, width int32) int32 {
	b := r.barTrack(x, y, label, width)
	fill := int32(float32(b.width) * normalize(value, rng))
	rl.DrawRectangle(b.x, b.y, fill, r.Theme.BarHeight, r.Theme.BarFill)
	r.barValue(b, fmt.Sprintf("%.2f", value))
	return y + r.Theme.rowHeight(WidgetBar)
}

// DrawCenteredBar draws a bar growing left or right from its centre. The
// larger of |rng.Min| and |rng.Max| fills one half.
func (r *Renderer) DrawCenteredBar(x, y int32, label string, value float32, rng FieldRange, width int32) int32 {
	b := r.barTrack(x, y, label, width)
	mid := b.x + b.width/2
	rl.DrawLine(mid, b.y, mid, b.y+r.Theme.BarHeight, r.Theme.PanelBorder)

	extent := max(absf32(rng.Min), absf32(rng.Max))
	var frac float32
	if extent > 0 {
		frac = min(absf32(value)/extent, 1)
	}
	fill := int32(float32(b.width/2) * frac)

	if value < 0 {
		rl.DrawRectangle(mid-fill, b.y, fill, r.Theme.BarHeight, r.Theme.BarFillNegative)
	} else {
		rl.DrawRectangle(mid, b.y, fill, r.Theme.BarHeight, r.Theme.BarFillPositive)
	}
	r.barValue(b, fmt.Sprintf("%+.2f", value))
	return y + r.Theme.rowHeight(WidgetBar)
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// DrawField renders a field based on its descriptor.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	switch fd.Widget {
	case WidgetText:
		return r.DrawLabelValue(x, y, fd.Label, fieldText(fd, data))

	case WidgetBar:
		return r.DrawBar(x, y, fd.Label, fieldValue(fd, data), fd.Range, width)

	case WidgetCenteredBar:
		return r.DrawCenteredBar(x, y, fd.Label, fieldValue(fd, data), fd.Range, width)
	}
	return y
}

// DrawSection renders a section with header and fields.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return y
	}

	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}

	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible(data) {
			continue
		}
		y = r.DrawField(x, y, fd, data, width)
	}

	return y + sectionGap
}

// DrawPanelDescriptor lays out and draws a whole panel, returning its bounds.
func (r *Renderer) DrawPanelDescriptor(pd PanelDescriptor, data any, screenW, screenH int32) rl.Rectangle {
	height := r.PanelHeight(pd, data)
	x, y := PanelOrigin(pd.Anchor, pd.Width, height, screenW, screenH, r.Theme.Padding)

	r.DrawPanel(x, y, pd.Width, height)

	cy := y + r.Theme.Padding
	if pd.Title != "" {
		rl.DrawText(pd.Title, x+r.Theme.Padding, cy, 16, rl.White)
		cy += r.Theme.LineHeight + 4
	}
	for _, sd := range pd.Sections {
		cy = r.DrawSection(x+r.Theme.Padding, cy, sd, data, pd.Width-r.Theme.Padding*2)
	}

	return rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(pd.Width), Height: float32(height)}
}

func fieldValue(fd FieldDescriptor, data any) float32 {
	if fd.Getter == nil {
		return 0
	}
	return fd.Getter(data)
}

func fieldText(fd FieldDescriptor, data any) string {
	if fd.TextGetter != nil {
		return fd.TextGetter(data)
	}
	if fd.Getter != nil {
		return fmt.Sprintf(fd.Format, fd.Getter(data))
	}
	return ""
}

func normalize(value float32, rng FieldRange) float32 {
	if rng.Max <= rng.Min {
		rng = DefaultRange()
	}
	return min(max((value-rng.Min)/(rng.Max-rng.Min), 0), 1)
}
