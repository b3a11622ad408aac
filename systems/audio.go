package systems

import "log/slog"

// Sink receives the intensity of each disturbance, normalised to [0, 1].
type Sink interface {
	Disturbed(intensity float64)
}

// NopSink discards everything.
type NopSink struct{}

// Disturbed implements Sink.
func (NopSink) Disturbed(float64) {}

// LogSink writes disturbance intensities as debug records.
type LogSink struct {
	Logger *slog.Logger
}

// Disturbed implements Sink.
func (s LogSink) Disturbed(intensity float64) {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	l.Debug("disturbed", "intensity", intensity)
}
