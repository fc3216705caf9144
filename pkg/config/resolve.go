package config

import (
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Resolve merges the three parameter sources, lowest precedence first:
// built-in defaults, the YAML config file at path, then any flags the user
// actually set. A missing file is no override. An unreadable or malformed
// file is reported and ignored, so defaults and flags still apply. Only
// validation failures are returned as errors.
func Resolve(path string, flags *pflag.FlagSet) (Parameters, error) {
	p, err := resolve(path, flags)
	if err != nil {
		logrus.WithError(err).Warnf("ignoring config file %s", path)
		p, err = resolve("", flags)
		if err != nil {
			return Parameters{}, err
		}
	}

	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}

	return p, nil
}

func resolve(path string, flags *pflag.FlagSet) (Parameters, error) {
	v := viper.New()
	v.SetDefault("ip", Defaults.DeviceIP)
	v.SetDefault("color", Defaults.Color)
	v.SetDefault("starttemp", Defaults.StartTempF)
	v.SetDefault("finaltemp", Defaults.FinalTempF)
	v.SetDefault("time", Defaults.RunTimeMinutes)
	v.SetDefault("og", Defaults.OG)
	v.SetDefault("fg", Defaults.FG)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Parameters{}, pkgerrors.Wrap(err, "failed to bind flags")
		}
	}

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logrus.WithField("path", path).Debug("config file not found, nothing to override")
		} else {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Parameters{}, pkgerrors.Wrapf(err, "failed to read config file %s", path)
			}
			logrus.WithField("path", v.ConfigFileUsed()).Debug("config file loaded")
		}
	}

	var p Parameters
	if err := v.Unmarshal(&p); err != nil {
		return Parameters{}, pkgerrors.Wrap(err, "failed to unmarshal parameters")
	}

	return p, nil
}
