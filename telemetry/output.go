package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/sandgarden/config"
)

// Output file names inside the run directory.
const (
	TelemetryFile = "telemetry.csv"
	PerfFile      = "perf.csv"
	EventsFile    = "events.csv"
	ConfigFile    = "config.yaml"
)

// csvLog is one append-only CSV file. The header is written with the first
// record.
type csvLog struct {
	name   string
	file   *os.File
	headed bool
}

func openCSVLog(dir, name string) (*csvLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog{name: name, file: f}, nil
}

// append marshals records, a slice of csv-tagged structs.
func (l *csvLog) append(records any) error {
	var err error
	if l.headed {
		err = gocsv.MarshalWithoutHeaders(records, l.file)
	} else {
		err = gocsv.Marshal(records, l.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", l.name, err)
	}
	l.headed = true
	return nil
}

// OutputManager writes one run's telemetry windows, perf windows and
// bookmark events as CSV, plus the config the run used.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir       string
	telemetry *csvLog
	perf      *csvLog
	events    *csvLog
}

// NewOutputManager creates dir and opens the CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for _, target := range []struct {
		log  **csvLog
		name string
	}{
		{&om.telemetry, TelemetryFile},
		{&om.perf, PerfFile},
		{&om.events, EventsFile},
	} {
		l, err := openCSVLog(dir, target.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*target.log = l
	}
	return om, nil
}

// WriteConfig saves the configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteTelemetry appends a window to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.append([]WindowStats{stats})
}

// WritePerf appends a perf window ending at windowEnd to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd uint64) error {
	if om == nil {
		return nil
	}
	return om.perf.append([]PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteBookmark appends an event to events.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	return om.events.append([]Bookmark{b})
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes every open file and returns the joined errors.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, l := range []*csvLog{om.telemetry, om.perf, om.events} {
		if l == nil {
			continue
		}
		if err := l.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", l.name, err))
		}
	}
	return errors.Join(errs...)
}
