package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ChuckGl/simferm/pkg/config"
	"github.com/ChuckGl/simferm/pkg/runlog"
	"github.com/ChuckGl/simferm/pkg/sim"
	"github.com/ChuckGl/simferm/pkg/tilt"
	"github.com/ChuckGl/simferm/pkg/version"
)

func NewRunCommand() *cobra.Command {
	configFile := ""

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulated fermentation in the foreground",
		Long: `Run a simulated fermentation in the foreground.

Readings are reported once per second until the final temperature is
reached or the run time is up. Values not set by flags come from the
config file, if one is given, and from the stock defaults otherwise. The
run log is written to ` + runlog.FileName + ` next to the binary, replacing the
previous run's log.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := config.Resolve(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			logrus.WithFields(params.LogrusFields()).Debug("resolved simulation parameters")

			rec, err := runlog.New(runlog.DefaultPath(), params, version.Version)
			if err != nil {
				return err
			}
			defer func() {
				if err := rec.Close(); err != nil {
					logrus.WithError(err).Warn("failed to close run log")
				}
			}()

			stepper, err := sim.New(params, rec, tilt.NewClient(params.DeviceIP, params.Color))
			if err != nil {
				return err
			}

			fmt.Println(bold("Simulated fermentation started. Monitor log file for progress."))

			final, err := stepper.Run()
			if err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"ticks": stepper.Ticks(),
				"temp":  final.TempF,
				"sg":    final.Gravity,
				"log":   rec.Path(),
			}).Debug("run finished")

			fmt.Println(bold("Simulated fermentation complete. Enjoy a simulated beer on me."))

			return nil
		},
	}

	f := cmd.Flags()
	f.String("ip", config.Defaults.DeviceIP, "address of the Tilt-Sim device")
	f.String("color", config.Defaults.Color, "Tilt color on the Tilt-Sim device")
	f.Float64("starttemp", config.Defaults.StartTempF, "starting temperature (°F)")
	f.Float64("finaltemp", config.Defaults.FinalTempF, "final temperature (°F)")
	f.Float64("og", config.Defaults.OG, "original gravity (OG)")
	f.Float64("fg", config.Defaults.FG, "final gravity (FG)")
	f.Int("time", config.Defaults.RunTimeMinutes, "total simulation time (minutes)")
	f.StringVar(&configFile, "config", "", "path to a YAML config file")

	return cmd
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
