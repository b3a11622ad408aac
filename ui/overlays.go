package ui

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayTarget    OverlayID = "target"
	OverlayDeviation OverlayID = "deviation"
	OverlayBlade     OverlayID = "blade"
	OverlayWedge     OverlayID = "wedge"
	OverlayTouch     OverlayID = "touch"
	OverlayTeeth     OverlayID = "teeth"
	OverlayPerf      OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "S", "V")
	Category    string      // Grouping (e.g., "visual", "debug", "ai")
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// OverlayRegistry holds the overlays in registration order and which of
// them are switched on.
type OverlayRegistry struct {
	entries []overlayEntry
	index   map[OverlayID]int
}

type overlayEntry struct {
	desc OverlayDescriptor
	on   bool
}

// NewOverlayRegistry creates a registry with the garden overlays, all off.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{index: make(map[OverlayID]int)}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds standard overlays.
func (r *OverlayRegistry) registerDefaults() {
	// Sand shading
	r.Register(OverlayDescriptor{
		ID:          OverlayTarget,
		Name:        "Target Pattern",
		Description: "Shade the bed by the pattern the comb converges to",
		Key:         rl.KeyT,
		KeyLabel:    "T",
		Category:    "visual",
		Exclusive:   []OverlayID{OverlayDeviation},
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayDeviation,
		Name:        "Deviation",
		Description: "Heatmap of distance from the target pattern",
		Key:         rl.KeyV,
		KeyLabel:    "V",
		Category:    "visual",
		Exclusive:   []OverlayID{OverlayTarget},
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayBlade,
		Name:        "Blade",
		Description: "Draw the blade arms and comb teeth",
		Key:         rl.KeyB,
		KeyLabel:    "B",
		Category:    "visual",
	})

	// Debug overlays
	r.Register(OverlayDescriptor{
		ID:          OverlayWedge,
		Name:        "Sweep Wedge",
		Description: "Outline the wedge each arm relaxes per tick",
		Key:         rl.KeyW,
		KeyLabel:    "W",
		Category:    "debug",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayTouch,
		Name:        "Touch Footprint",
		Description: "Show the touch radius and pending samples",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "debug",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayTeeth,
		Name:        "Tooth Rings",
		Description: "Show the crest radii the comb teeth ride on",
		Key:         rl.KeyK,
		KeyLabel:    "K",
		Category:    "debug",
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Frame stage and tick phase timings",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    "debug",
	})
}

// Register adds an overlay, switched off. Registering an ID again replaces
// its descriptor.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if i, ok := r.index[desc.ID]; ok {
		r.entries[i].desc = desc
		return
	}
	r.index[desc.ID] = len(r.entries)
	r.entries = append(r.entries, overlayEntry{desc: desc})
}

// Toggle flips an overlay and returns its new state. Unknown IDs stay off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	r.SetEnabled(id, !r.IsEnabled(id))
	return r.IsEnabled(id)
}

// SetEnabled switches an overlay. Switching one on turns off the overlays
// it excludes.
func (r *OverlayRegistry) SetEnabled(id OverlayID, on bool) {
	i, ok := r.index[id]
	if !ok {
		return
	}
	r.entries[i].on = on
	if !on {
		return
	}
	for _, other := range r.entries[i].desc.Exclusive {
		if j, ok := r.index[other]; ok {
			r.entries[j].on = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	i, ok := r.index[id]
	return ok && r.entries[i].on
}

// All returns every overlay in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.filter(func(overlayEntry) bool { return true })
}

// ByCategory returns the overlays of one category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	return r.filter(func(e overlayEntry) bool { return e.desc.Category == category })
}

// Categories returns the categories in order of first appearance.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	for _, e := range r.entries {
		if !slices.Contains(cats, e.desc.Category) {
			cats = append(cats, e.desc.Category)
		}
	}
	return cats
}

// EnabledOverlays returns the IDs of active overlays in registration order.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var ids []OverlayID
	for _, e := range r.entries {
		if e.on {
			ids = append(ids, e.desc.ID)
		}
	}
	return ids
}

func (r *OverlayRegistry) filter(keep func(overlayEntry) bool) []OverlayDescriptor {
	var out []OverlayDescriptor
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e.desc)
		}
	}
	return out
}
