package systems

// Stage categories.
const (
	CategoryTick  = "tick"  // garden phases inside one Tick
	CategoryFrame = "frame" // per-frame work in the windowed loop
)

// SystemInfo names a timed stage for display.
type SystemInfo struct {
	ID          string // key used by the perf collectors
	Name        string
	Description string
	Category    string
}

var defaultStages = []SystemInfo{
	{"resize", "Resize", "Rebuilds the grid after a viewport change", CategoryTick},
	{"blade", "Blade Sweep", "Rotates the blade and relaxes swept cells", CategoryTick},
	{"disturb", "Disturb", "Applies queued touch points", CategoryTick},
	{"pool", "Pool", "Returns pooled mass to troughs", CategoryTick},
	{"telemetry", "Telemetry", "Window stats and bookmarks", CategoryTick},

	{"input", "Input", "Keyboard, pointer and camera", CategoryFrame},
	{"simulate", "Simulate", "Garden ticks for this frame", CategoryFrame},
	{"draw", "Draw", "Sand texture, overlays and UI", CategoryFrame},
}

// SystemRegistry keeps stage names in registration order so perf panels
// list tick phases in execution order.
type SystemRegistry struct {
	stages []SystemInfo
	index  map[string]int
}

// NewSystemRegistry returns a registry holding the garden phases and frame
// stages.
func NewSystemRegistry() *SystemRegistry {
	r := &SystemRegistry{index: make(map[string]int, len(defaultStages))}
	for _, s := range defaultStages {
		r.Register(s)
	}
	return r
}

// Register adds a stage, or replaces the one with the same ID in place.
func (r *SystemRegistry) Register(info SystemInfo) {
	if i, ok := r.index[info.ID]; ok {
		r.stages[i] = info
		return
	}
	r.index[info.ID] = len(r.stages)
	r.stages = append(r.stages, info)
}

func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	i, ok := r.index[id]
	if !ok {
		return SystemInfo{}, false
	}
	return r.stages[i], true
}

// GetName returns the display name for id, or id itself when unknown.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.Get(id); ok {
		return info.Name
	}
	return id
}

func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var out []SystemInfo
	for _, s := range r.stages {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

func (r *SystemRegistry) IDs() []string {
	ids := make([]string, 0, len(r.stages))
	for _, s := range r.stages {
		ids = append(ids, s.ID)
	}
	return ids
}
