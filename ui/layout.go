// Package ui draws the garden's panels and overlays. Panels are described
// as data: a descriptor names each row, how to draw it and how to read its
// value, so layout and drawing share one description.
package ui

// WidgetKind selects how a field row is drawn.
type WidgetKind int

const (
	WidgetText        WidgetKind = iota // label and formatted value
	WidgetBar                           // bar filled from the left over Range
	WidgetCenteredBar                   // bar growing either way from the middle
)

// FieldRange is the value span a bar covers.
type FieldRange struct {
	Min, Max float32
}

// DefaultRange returns [0, 1].
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// FieldDescriptor is one row of a panel. Getter feeds bars and formatted
// text; TextGetter, when set, supplies text directly.
type FieldDescriptor struct {
	Label      string
	Widget     WidgetKind
	Format     string
	Range      FieldRange
	Visible    func(any) bool
	Getter     func(any) float32
	TextGetter func(any) string
}

// SectionDescriptor groups rows under an optional header.
type SectionDescriptor struct {
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool
}

// PanelDescriptor is a titled stack of sections pinned to a screen corner.
type PanelDescriptor struct {
	Title    string
	Sections []SectionDescriptor
	Width    int32
	Anchor   PanelAnchor
}

// PanelAnchor is the screen corner a panel is pinned to.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

const sectionGap = 4

// rowHeight is the vertical advance of one row of kind w.
func (t Theme) rowHeight(w WidgetKind) int32 {
	if w == WidgetBar || w == WidgetCenteredBar {
		return t.LineHeight + 2
	}
	return t.LineHeight
}

// PanelHeight returns the height a panel needs for data, mirroring the
// vertical advance of DrawPanelDescriptor.
func (r *Renderer) PanelHeight(pd PanelDescriptor, data any) int32 {
	t := r.Theme
	h := t.Padding * 2
	if pd.Title != "" {
		h += t.LineHeight + 4
	}
	for _, sd := range pd.Sections {
		if sd.Visible != nil && !sd.Visible(data) {
			continue
		}
		if sd.Title != "" {
			h += t.LineHeight
		}
		for _, fd := range sd.Fields {
			if fd.Visible == nil || fd.Visible(data) {
				h += t.rowHeight(fd.Widget)
			}
		}
		h += sectionGap
	}
	return h
}

// PanelOrigin returns the top-left corner of a w x h panel anchored on a
// screenW x screenH screen, inset by margin.
func PanelOrigin(anchor PanelAnchor, w, h, screenW, screenH, margin int32) (x, y int32) {
	switch anchor {
	case AnchorTopRight:
		return screenW - w - margin, margin
	case AnchorBottomLeft:
		return margin, screenH - h - margin
	case AnchorBottomRight:
		return screenW - w - margin, screenH - h - margin
	default:
		return margin, margin
	}
}

// Contains reports whether (x, y) lies in the rectangle given as x, y, w, h.
func Contains(rx, ry, rw, rh, x, y float32) bool {
	return x >= rx && x < rx+rw && y >= ry && y < ry+rh
}
