// Package sim implements the fermentation stepper. It contains:
//
//   - Stepper: the time-stepped interpolation loop that drives one run
//   - Sample: one interpolated (temperature, gravity) reading
//   - Recorder, Notifier: the two sinks every reading is emitted to
//
// The loop is single-threaded and paces itself against the wall clock, so a
// run of N minutes emits one reading per second for N*60 seconds regardless
// of how long the sinks take, as long as they stay under a second.
package sim
