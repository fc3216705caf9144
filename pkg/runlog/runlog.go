// Package runlog writes the simferm.log progress file. The file lives next
// to the binary, holds exactly one run (it is truncated on open), and its
// line formats are fixed: downstream tooling greps them.
package runlog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ChuckGl/simferm/pkg/config"
	"github.com/ChuckGl/simferm/pkg/sim"
)

// FileName is the fixed name of the run log.
const FileName = "simferm.log"

const timestampFormat = "2006-01-02, 15:04:05"

// DefaultPath returns FileName in the executable's directory, falling back
// to the working directory when the executable path cannot be resolved.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		logrus.WithError(err).Warn("cannot resolve executable path, writing run log to the working directory")
		return FileName
	}
	return filepath.Join(filepath.Dir(exe), FileName)
}

// Log records one simulation run. Every line is flushed as it is written so
// the file can be tailed while the run is in progress.
type Log struct {
	params  config.Parameters
	version string
	path    string
	f       *os.File
	w       *bufio.Writer
}

var _ sim.Recorder = (*Log)(nil)

// New opens and truncates the run log at path.
func New(path string, p config.Parameters, version string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to open run log %s", path)
	}

	return &Log{
		params:  p,
		version: version,
		path:    path,
		f:       f,
		w:       bufio.NewWriter(f),
	}, nil
}

// Path returns where the log is being written.
func (l *Log) Path() string {
	return l.path
}

// RunStarted writes the header line carrying the run's parameters.
func (l *Log) RunStarted(at time.Time, start sim.Sample) error {
	_, err := fmt.Fprintf(l.w,
		"%s, Simulation Starting. Tilt Color: %s, Starting Gravity: %.4f, Starting Temperature: %.1f °F, Run Time: %d minutes, Final Gravity: %.4f, Final Temperature: %.1f °F\n",
		at.Format(timestampFormat), l.params.Color, start.Gravity, start.TempF,
		l.params.RunTimeMinutes, l.params.FG, l.params.FinalTempF)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to write run start")
	}
	return l.flush()
}

// Reading writes one progress line.
func (l *Log) Reading(at time.Time, s sim.Sample) error {
	_, err := fmt.Fprintf(l.w,
		"%s: Current Temperature: %.1f °F, Current Gravity: %.4f, Tilt Color: %s\n",
		at.Format(timestampFormat), s.TempF, s.Gravity, l.params.Color)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to write reading")
	}
	return l.flush()
}

// RunCompleted writes the closing pair: the parameters the run started from,
// then the final readings. Both lines carry the version so runs from
// different builds can be told apart after the fact.
func (l *Log) RunCompleted(at time.Time, final sim.Sample) error {
	ts := at.Format(timestampFormat)

	_, err := fmt.Fprintf(l.w,
		"%s, Version %s, Simulation at Start. Starting Temperature: %.1f °F, Starting Gravity: %.4f, Tilt Color: %s\n",
		ts, l.version, l.params.StartTempF, l.params.OG, l.params.Color)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to write completion summary")
	}

	_, err = fmt.Fprintf(l.w,
		"%s: Version %s: Simulation Complete. Final Temperature: %.1f °F, Final Gravity: %.4f, Tilt Color: %s\n",
		ts, l.version, final.TempF, final.Gravity, l.params.Color)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to write completion summary")
	}

	return l.flush()
}

func (l *Log) flush() error {
	if err := l.w.Flush(); err != nil {
		return pkgerrors.Wrap(err, "failed to flush run log")
	}
	return nil
}

// Close flushes any buffered output and closes the file.
func (l *Log) Close() error {
	if err := l.w.Flush(); err != nil {
		logrus.WithError(err).Warn("failed to flush run log on close")
	}
	if err := l.f.Close(); err != nil {
		return pkgerrors.Wrapf(err, "failed to close run log %s", l.path)
	}
	return nil
}
