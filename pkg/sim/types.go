package sim

import "time"

// Phase defines the lifecycle of a run.
type Phase string

const (
	PhaseNotStarted Phase = "NotStarted"
	PhaseRunning    Phase = "Running"
	PhaseCompleted  Phase = "Completed"
)

// Sample is one interpolated reading.
type Sample struct {
	// TempF is the temperature in Fahrenheit, as reported to the sinks.
	TempF float64
	// Gravity is the specific gravity.
	Gravity float64
}

// Recorder receives the run log events. Implementations must tolerate being
// called once per second for the whole run.
type Recorder interface {
	// RunStarted is called once, before the first reading.
	RunStarted(at time.Time, start Sample) error
	// Reading is called once per tick.
	Reading(at time.Time, s Sample) error
	// RunCompleted is called once, after the final notification. at is the
	// timestamp of the last emission, not the completion wall time, so the
	// summary lines up with what the device saw last.
	RunCompleted(at time.Time, final Sample) error
}

// Notifier reports a reading to the monitoring device.
type Notifier interface {
	Notify(s Sample) error
}
