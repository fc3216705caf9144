package config

import (
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Parameters are the resolved inputs of one simulation run. They are
// immutable once resolved; nothing reads the config sources after Resolve
// returns.
type Parameters struct {
	// DeviceIP is the address of the Tilt-Sim device the readings are
	// reported to, host or host:port.
	DeviceIP string `mapstructure:"ip"`
	// Color is the Tilt broadcast identity on the device, e.g. "yellow*hd".
	Color string `mapstructure:"color"`
	// StartTempF and FinalTempF bound the temperature ramp, in Fahrenheit.
	StartTempF float64 `mapstructure:"starttemp"`
	FinalTempF float64 `mapstructure:"finaltemp"`
	// RunTimeMinutes is the total simulation time. One reading is emitted
	// per second, so the run produces RunTimeMinutes*60 readings.
	RunTimeMinutes int `mapstructure:"time"`
	// OG and FG are the original and final specific gravity.
	OG float64 `mapstructure:"og"`
	FG float64 `mapstructure:"fg"`
}

// Defaults are the stock parameters, used where neither the config file nor
// flags override them.
var Defaults = Parameters{
	DeviceIP:       "192.168.254.62",
	Color:          "yellow*hd",
	StartTempF:     101.3,
	FinalTempF:     55.3,
	RunTimeMinutes: 60,
	OG:             1.0615,
	FG:             1.015,
}

// Validate reports the first nonsensical parameter, if any.
func (p Parameters) Validate() error {
	if p.DeviceIP == "" {
		return pkgerrors.New("device address must not be empty")
	}
	if p.Color == "" {
		return pkgerrors.New("tilt color must not be empty")
	}
	if p.RunTimeMinutes <= 0 {
		return pkgerrors.Errorf("run time must be a positive number of minutes, got %d", p.RunTimeMinutes)
	}
	if p.OG <= 0 || p.FG <= 0 {
		return pkgerrors.Errorf("gravity values must be positive, got og=%v fg=%v", p.OG, p.FG)
	}
	return nil
}

func (p Parameters) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"ip":        p.DeviceIP,
		"color":     p.Color,
		"starttemp": p.StartTempF,
		"finaltemp": p.FinalTempF,
		"time":      p.RunTimeMinutes,
		"og":        p.OG,
		"fg":        p.FG,
	}
}
