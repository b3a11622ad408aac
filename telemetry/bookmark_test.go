package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_Disturbed(t *testing.T) {
	bd := NewBookmarkDetector(10)

	// First window never fires a transition bookmark
	if got := bd.Check(WindowStats{WindowEndTick: 600, Disturbances: 4}); hasBookmark(got, BookmarkDisturbed) {
		t.Error("disturbed should need a previous window")
	}

	bd.Check(WindowStats{WindowEndTick: 1200})
	got := bd.Check(WindowStats{WindowEndTick: 1800, Disturbances: 3, Mode: "dig"})
	if !hasBookmark(got, BookmarkDisturbed) {
		t.Error("expected disturbed bookmark after a quiet window")
	}

	got = bd.Check(WindowStats{WindowEndTick: 2400, Disturbances: 5})
	if hasBookmark(got, BookmarkDisturbed) {
		t.Error("continued touching should not fire again")
	}
}

func TestBookmarkDetector_Healed(t *testing.T) {
	tests := []struct {
		name     string
		windows  []WindowStats
		healedAt  uint64 // 0 = never
	}{
		{
			name: "back to baseline",
			windows: []WindowStats{
				{WindowEndTick: 600, Deviation: 50},
				{WindowEndTick: 1200, Deviation: 80, Disturbances: 10},
				{WindowEndTick: 1800, Deviation: 60},
				{WindowEndTick: 2400, Deviation: 52},
				{WindowEndTick: 3000, Deviation: 51},
			},
			healedAt: 2400,
		},
		{
			name: "baseline below the garden's starting deviation",
			windows: []WindowStats{
				{WindowEndTick: 600, Deviation: 9000},
				{WindowEndTick: 1200, Deviation: 9200, Disturbances: 3},
				{WindowEndTick: 1800, Deviation: 8900},
			},
			healedAt: 1800,
		},
		{
			name: "zero baseline uses the absolute floor",
			windows: []WindowStats{
				{WindowEndTick: 600},
				{WindowEndTick: 1200, Deviation: 30, Disturbances: 2},
				{WindowEndTick: 1800, Deviation: 1.5},
				{WindowEndTick: 2400, Deviation: 0.5},
			},
			healedAt: 2400,
		},
		{
			name: "touching from the first window has no baseline",
			windows: []WindowStats{
				{WindowEndTick: 600, Deviation: 80, Disturbances: 10},
				{WindowEndTick: 1200, Deviation: 1},
				{WindowEndTick: 1800, Deviation: 0},
			},
		},
		{
			name: "never recovers",
			windows: []WindowStats{
				{WindowEndTick: 600, Deviation: 50},
				{WindowEndTick: 1200, Deviation: 80, Disturbances: 10},
				{WindowEndTick: 1800, Deviation: 53},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd := NewBookmarkDetector(10)
			var healed []uint64
			for _, w := range tt.windows {
				for _, bm := range bd.Check(w) {
					if bm.Type == BookmarkHealed {
						healed = append(healed, bm.Tick)
					}
				}
			}
			if tt.healedAt == 0 {
				if len(healed) != 0 {
					t.Errorf("unexpected healed bookmarks at %v", healed)
				}
				return
			}
			if len(healed) != 1 || healed[0] != tt.healedAt {
				t.Errorf("healed at %v, want exactly once at %d", healed, tt.healedAt)
			}
		})
	}
}

func TestBookmarkDetector_PoolDrained(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(WindowStats{WindowEndTick: 600, Pool: 2.5})
	bd.Check(WindowStats{WindowEndTick: 1200, Pool: 0.4})
	got := bd.Check(WindowStats{WindowEndTick: 1800, Pool: 0})
	if !hasBookmark(got, BookmarkPoolDrained) {
		t.Error("expected pool_drained bookmark")
	}

	got = bd.Check(WindowStats{WindowEndTick: 2400, Pool: 0})
	if hasBookmark(got, BookmarkPoolDrained) {
		t.Error("an empty pool should not fire again")
	}
}

func TestBookmarkDetector_Saturated(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(WindowStats{WindowEndTick: 600, Disturbances: 2})
	got := bd.Check(WindowStats{WindowEndTick: 1200, Disturbances: 2, Spilled: 0.3})
	if !hasBookmark(got, BookmarkSaturated) {
		t.Error("expected saturated bookmark")
	}
}

func TestBookmarkDetector_Settled(t *testing.T) {
	bd := NewBookmarkDetector(10)

	var fired int
	for i := 0; i < 12; i++ {
		got := bd.Check(WindowStats{WindowEndTick: uint64(i+1) * 600, Deviation: 12.0})
		if hasBookmark(got, BookmarkSettled) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("settled fired %d times, want exactly once", fired)
	}

	// A touch resets the streak
	bd.Check(WindowStats{WindowEndTick: 8000, Deviation: 12.0, Disturbances: 1})
	fired = 0
	for i := 0; i < 8; i++ {
		got := bd.Check(WindowStats{WindowEndTick: 9000 + uint64(i)*600, Deviation: 12.0})
		if hasBookmark(got, BookmarkSettled) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("settled fired %d times after reset, want once", fired)
	}
}

func TestBookmarkDetector_NotSettledWhileChanging(t *testing.T) {
	bd := NewBookmarkDetector(10)

	dev := 100.0
	for i := 0; i < 12; i++ {
		got := bd.Check(WindowStats{WindowEndTick: uint64(i+1) * 600, Deviation: dev})
		if hasBookmark(got, BookmarkSettled) {
			t.Fatalf("settled fired at window %d while deviation was falling", i)
		}
		dev *= 0.7
	}
}

func TestBookmarkDetector_HistoryOrder(t *testing.T) {
	bd := NewBookmarkDetector(5)
	for i := 1; i <= 7; i++ {
		bd.Check(WindowStats{WindowEndTick: uint64(i)})
	}

	h := bd.getHistory()
	if len(h) != 5 {
		t.Fatalf("history length = %d, want 5", len(h))
	}
	for i, w := range h {
		if want := uint64(i + 3); w.WindowEndTick != want {
			t.Errorf("history[%d] = %d, want %d", i, w.WindowEndTick, want)
		}
	}
}
