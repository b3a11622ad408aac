package ui

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sandgarden/systems"
)

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	Title          string
	Preset         string
	Tick           uint64
	StepsPerUpdate int
	FPS            int32
	Paused         bool

	Mode          string
	Interacting   bool
	Angle         float64
	RotationSpeed float64
	SpeedControl  bool
	SpeedInput    float64

	PoolEnabled bool
	Pool        float64
	TotalMass   float64
	Deviation   float64
	ActiveCells int
	Intensity   float64
}

// HUD renders the heads-up display.
type HUD struct {
	renderer *Renderer
	panel    PanelDescriptor
	bounds   rl.Rectangle
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		panel:    GardenPanel(220),
	}
}

// Draw renders the title line and the garden panel.
func (h *HUD) Draw(data HUDData, screenW, screenH int32) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	status := fmt.Sprintf("Tick: %d | Steps: %dx | FPS: %d", data.Tick, data.StepsPerUpdate, data.FPS)
	rl.DrawText(status, 10, 35, 16, rl.LightGray)
	if data.Paused {
		rl.DrawText("PAUSED", 10, 55, 16, rl.Yellow)
	}

	h.bounds = h.renderer.DrawPanelDescriptor(h.panel, data, screenW, screenH)
}

// Bounds returns where the panel was last drawn.
func (h *HUD) Bounds() rl.Rectangle { return h.bounds }

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds stage timings for display.
type PerfPanelData struct {
	Title    string
	Times    map[string]time.Duration
	Total    time.Duration
	Registry *systems.SystemRegistry
}

// PerfPanel renders a stage timing table.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel and returns the y just below it.
func (p *PerfPanel) Draw(data PerfPanelData, sortedNames []string) int32 {
	x := p.x
	y := p.y

	rl.DrawText(data.Title, x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range sortedNames {
		avg := data.Times[name]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		displayName := name
		if data.Registry != nil {
			displayName = data.Registry.GetName(name)
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", displayName, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
	return y
}

func hud(data any) HUDData {
	d, _ := data.(HUDData)
	return d
}

// GardenPanel describes the stats panel shown in the top-right corner.
func GardenPanel(width int32) PanelDescriptor {
	return PanelDescriptor{
		Title:  "Garden",
		Width:  width,
		Anchor: AnchorTopRight,
		Sections: []SectionDescriptor{
			{
				Title: "Blade",
				Fields: []FieldDescriptor{
					{Label: "Angle", Widget: WidgetText, Format: "%.0f deg",
						Getter: func(d any) float32 { return float32(hud(d).Angle * 180 / math.Pi) }},
					{Label: "Speed", Widget: WidgetText, Format: "%.4f",
						Getter: func(d any) float32 { return float32(hud(d).RotationSpeed) }},
					{Label: "Dial", Widget: WidgetText, Format: "%.0f",
						Visible: func(d any) bool { return hud(d).SpeedControl },
						Getter:  func(d any) float32 { return float32(hud(d).SpeedInput) }},
				},
			},
			{
				Title: "Sand",
				Fields: []FieldDescriptor{
					{Label: "Touch", Widget: WidgetText,
						TextGetter: func(d any) string { return hud(d).Mode }},
					{Label: "Mass", Widget: WidgetCenteredBar, Range: FieldRange{Min: -1, Max: 1},
						Getter: func(d any) float32 {
							h := hud(d)
							if h.ActiveCells == 0 {
								return 0
							}
							return float32(h.TotalMass / float64(h.ActiveCells))
						}},
					{Label: "Deviation", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(hud(d).Deviation) }},
					{Label: "Digging", Widget: WidgetBar, Range: DefaultRange(),
						Visible: func(d any) bool { return hud(d).Interacting },
						Getter:  func(d any) float32 { return float32(hud(d).Intensity) }},
				},
			},
			{
				Title:   "Pool",
				Visible: func(d any) bool { return hud(d).PoolEnabled },
				Fields: []FieldDescriptor{
					{Label: "Level", Widget: WidgetText, Format: "%.2f",
						Getter: func(d any) float32 { return float32(hud(d).Pool) }},
				},
			},
		},
	}
}
