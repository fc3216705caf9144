package sim

import (
	"math"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ChuckGl/simferm/pkg/config"
)

// ErrAlreadyStarted is returned when Run is called on a Stepper that has
// already run. A Stepper drives exactly one run.
var ErrAlreadyStarted = pkgerrors.New("simulation already started")

// Stepper interpolates temperature and gravity between their configured
// bounds, one step per second, and emits every step to the recorder and the
// notifier. It is single-threaded; Run blocks until the run completes.
type Stepper struct {
	recorder Recorder
	notifier Notifier

	phase Phase
	runID uuid.UUID

	// Temperature state in milli-degrees Celsius. The direction is fixed
	// once from the sign of final-start and never re-evaluated.
	tempMC   float64
	targetMC float64
	stepMC   float64
	rising   bool

	// Gravity always falls from max(OG,FG) to min(OG,FG), whatever the
	// labels say. The Tilt reports a sinking float; so do we.
	gravity      float64
	gravityFloor float64
	gravityStep  float64

	steps int
	ticks int

	// Clock seams, overridden in tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// New builds a Stepper for one run. Parameters are validated here so a
// misconfigured run fails before anything is written.
func New(p config.Parameters, rec Recorder, n Notifier) (*Stepper, error) {
	if err := p.Validate(); err != nil {
		return nil, pkgerrors.Wrap(err, "invalid simulation parameters")
	}
	if rec == nil || n == nil {
		return nil, pkgerrors.New("recorder and notifier must not be nil")
	}

	steps := p.RunTimeMinutes * 60
	startMC := fahrenheitToMilliCelsius(p.StartTempF)
	targetMC := fahrenheitToMilliCelsius(p.FinalTempF)
	high := math.Max(p.OG, p.FG)
	low := math.Min(p.OG, p.FG)

	return &Stepper{
		recorder:     rec,
		notifier:     n,
		phase:        PhaseNotStarted,
		runID:        uuid.New(),
		tempMC:       startMC,
		targetMC:     targetMC,
		stepMC:       math.Abs(targetMC-startMC) / float64(steps),
		rising:       targetMC > startMC,
		gravity:      high,
		gravityFloor: low,
		gravityStep:  (high - low) / float64(steps),
		steps:        steps,
		now:          time.Now,
		sleep:        time.Sleep,
	}, nil
}

// Phase returns the lifecycle phase of the run.
func (s *Stepper) Phase() Phase {
	return s.phase
}

// Ticks returns the number of readings emitted.
func (s *Stepper) Ticks() int {
	return s.ticks
}

// Run executes the simulation: one reading per second until the target
// temperature is reached or the configured time is up, then one extra
// notification and a completion summary carrying the final values. Sink
// errors are logged and swallowed; a slow or failing sink delays the next
// tick but never aborts the run.
func (s *Stepper) Run() (Sample, error) {
	if s.phase != PhaseNotStarted {
		return s.sample(), ErrAlreadyStarted
	}
	s.phase = PhaseRunning

	start := s.now()
	at := start
	startSample := s.sample()

	logrus.WithFields(logrus.Fields{
		"run":   s.runID,
		"steps": s.steps,
		"temp":  startSample.TempF,
		"sg":    startSample.Gravity,
	}).Info("simulation starting")

	if err := s.recorder.RunStarted(at, startSample); err != nil {
		logrus.WithError(err).Warn("failed to record run start")
	}

	for i := 1; i <= s.steps; i++ {
		if s.reached() {
			break
		}
		s.advance()

		at = s.now()
		cur := s.sample()
		logrus.WithFields(logrus.Fields{
			"run":  s.runID,
			"tick": i,
			"temp": cur.TempF,
			"sg":   cur.Gravity,
		}).Debug("tick")

		if err := s.recorder.Reading(at, cur); err != nil {
			logrus.WithError(err).Warn("failed to record reading")
		}
		if err := s.notifier.Notify(cur); err != nil {
			logrus.WithError(err).Warn("failed to notify device")
		}
		s.ticks++

		s.pace(start, i)
	}

	// The device gets one extra update so it ends up exactly on the final
	// values, then the summary is written with the last emission time.
	final := s.sample()
	if err := s.notifier.Notify(final); err != nil {
		logrus.WithError(err).Warn("failed to send final notification")
	}
	if err := s.recorder.RunCompleted(at, final); err != nil {
		logrus.WithError(err).Warn("failed to record run completion")
	}

	s.phase = PhaseCompleted
	logrus.WithFields(logrus.Fields{
		"run":   s.runID,
		"ticks": s.ticks,
		"temp":  final.TempF,
		"sg":    final.Gravity,
	}).Info("simulation complete")

	return final, nil
}

// reached reports whether the temperature has hit or crossed the target in
// the fixed direction. Checked before each advance, so a run whose bounds
// are equal emits no readings at all.
func (s *Stepper) reached() bool {
	if s.rising {
		return s.tempMC >= s.targetMC
	}
	return s.tempMC <= s.targetMC
}

func (s *Stepper) advance() {
	if s.rising {
		s.tempMC += s.stepMC
		if s.tempMC > s.targetMC {
			s.tempMC = s.targetMC
		}
	} else {
		s.tempMC -= s.stepMC
		if s.tempMC < s.targetMC {
			s.tempMC = s.targetMC
		}
	}

	s.gravity -= s.gravityStep
	if s.gravity < s.gravityFloor {
		s.gravity = s.gravityFloor
	}
}

// pace sleeps so tick i finishes i seconds after start. Sleeping toward an
// absolute target instead of a fixed interval keeps the emission rate locked
// to the wall clock however long the sinks took; if they overran the second,
// the sleep is skipped.
func (s *Stepper) pace(start time.Time, tick int) {
	target := start.Add(time.Duration(tick) * time.Second)
	if d := target.Sub(s.now()); d > 0 {
		s.sleep(d)
	}
}

func (s *Stepper) sample() Sample {
	return Sample{
		TempF:   milliCelsiusToFahrenheit(s.tempMC),
		Gravity: s.gravity,
	}
}
