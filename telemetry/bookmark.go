package telemetry

import (
	"fmt"
	"log/slog"
	"math"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkDisturbed   BookmarkType = "disturbed"
	BookmarkHealed      BookmarkType = "healed"
	BookmarkSettled     BookmarkType = "settled"
	BookmarkPoolDrained BookmarkType = "pool_drained"
	BookmarkSaturated   BookmarkType = "saturated"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        uint64       `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

const (
	healTolerance = 0.05 // healed once deviation is within 5% of the pre-touch baseline
	healFloor     = 1.0  // absolute slack for baselines near zero
	settledCV2    = 1e-4 // squared coefficient of variation of deviation (CV < 1%)
	settledStreak = 5    // consecutive settled windows before the bookmark fires
	poolEpsilon   = 1e-6
)

// BookmarkDetector detects interesting moments in the garden.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	quietDeviation float64 // deviation of the latest quiet window
	haveQuiet      bool
	touched        bool    // a disturbance has not healed yet
	baseline       float64 // quietDeviation when the touching began
	haveBaseline   bool
	disturbedPeak  float64 // highest deviation seen since touching began
	settledCount   int     // consecutive quiet windows with steady deviation
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for settled detection
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if prev, ok := bd.last(); ok {
		// Disturbed: touching starts after a quiet window
		if stats.Disturbances > 0 && prev.Disturbances == 0 {
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkDisturbed,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("%d touches in %s mode", stats.Disturbances, stats.Mode),
			})
		}

		// Pool drained: the pool emptied during this window
		if prev.Pool > poolEpsilon && stats.Pool <= poolEpsilon {
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkPoolDrained,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("Pool emptied from %.3f", prev.Pool),
			})
		}

		// Saturated: conservation ring started spilling at the height cap
		if stats.Spilled > 0 && prev.Spilled == 0 {
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkSaturated,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("%.3f sand spilled past the height cap", stats.Spilled),
			})
		}
	}

	if b := bd.checkHealed(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if b := bd.checkSettled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// getHistory returns the recorded windows, oldest first.
func (bd *BookmarkDetector) getHistory() []WindowStats {
	if !bd.historyFull {
		return bd.history[:bd.historyIdx]
	}
	ordered := make([]WindowStats, 0, bd.historySize)
	ordered = append(ordered, bd.history[bd.historyIdx:]...)
	return append(ordered, bd.history[:bd.historyIdx]...)
}

func (bd *BookmarkDetector) last() (WindowStats, bool) {
	if !bd.historyFull && bd.historyIdx == 0 {
		return WindowStats{}, false
	}
	i := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return bd.history[i], true
}

// checkHealed compares deviation after touching against the last quiet
// window before it. The blade holds the bed at a nonzero deviation, so
// healing means returning to that level rather than to zero. A touch with
// no quiet window before it has no baseline and never reports healed.
func (bd *BookmarkDetector) checkHealed(stats WindowStats) *Bookmark {
	if stats.Disturbances > 0 {
		if !bd.touched {
			bd.touched = true
			bd.baseline, bd.haveBaseline = bd.quietDeviation, bd.haveQuiet
			bd.disturbedPeak = 0
		}
		bd.disturbedPeak = max(bd.disturbedPeak, stats.Deviation)
		return nil
	}

	if !bd.touched {
		bd.quietDeviation, bd.haveQuiet = stats.Deviation, true
		return nil
	}
	if !bd.haveBaseline {
		bd.touched = false
		bd.quietDeviation, bd.haveQuiet = stats.Deviation, true
		return nil
	}
	if stats.Deviation > bd.baseline+max(bd.baseline*healTolerance, healFloor) {
		return nil
	}

	bd.touched = false
	bd.quietDeviation = stats.Deviation
	return &Bookmark{
		Type:        BookmarkHealed,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Deviation back to %.1f from peak %.1f (baseline %.1f)", stats.Deviation, bd.disturbedPeak, bd.baseline),
	}
}

func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	if stats.Disturbances > 0 {
		bd.settledCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	// Check variance over the last three windows plus this one
	window := append(append([]WindowStats(nil), history[len(history)-3:]...), stats)
	var sum float64
	for _, h := range window {
		sum += h.Deviation
	}
	mean := sum / float64(len(window))

	var variance float64
	for _, h := range window {
		d := h.Deviation - mean
		variance += d * d
	}
	variance /= float64(len(window))

	steady := mean == 0 || variance/(mean*mean) < settledCV2
	if steady {
		bd.settledCount++
	} else {
		bd.settledCount = 0
	}

	if bd.settledCount == settledStreak { // trigger exactly once per streak
		return &Bookmark{
			Type:        BookmarkSettled,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Deviation steady at %.2f (mass %.1f)", stats.Deviation, math.Round(stats.TotalMass*10)/10),
		}
	}

	return nil
}
