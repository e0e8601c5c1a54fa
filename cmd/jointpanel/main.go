package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/gwillem/jointpanel/pkg/robot"
)

type Options struct {
	Config   string `short:"c" long:"config" default:"jointpanel.yaml" description:"Configuration file"`
	LogFile  string `long:"log-file" description:"Append logs to this file"`
	LogLevel string `long:"log-level" default:"info" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"Log level"`

	Panel PanelCommand `command:"panel" description:"Open the joint control panel"`
	Ports PortsCommand `command:"ports" description:"List available serial ports"`
	Send  SendCommand  `command:"send" description:"Send a single joint position"`
	Setup SetupCommand `command:"setup" description:"Choose a serial port and save the configuration"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "Joint Panel - position control for N20 finger joint motors"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}

// loadConfig reads the configured file, falling back to defaults if it does not exist.
func loadConfig() (*robot.Config, error) {
	if !robot.ConfigExistsAt(opts.Config) {
		return robot.DefaultConfig(), nil
	}
	return robot.LoadConfigFrom(opts.Config)
}

// newLogger builds the logger for a command. Interactive commands own the
// terminal, so without --log-file their logs are discarded.
func newLogger(interactive bool) (*logrus.Logger, func(), error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)

	closer := func() {}
	switch {
	case opts.LogFile != "":
		f, err := os.OpenFile(opts.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
		closer = func() { f.Close() }
	case interactive:
		logger.SetOutput(io.Discard)
	default:
		logger.SetOutput(os.Stderr)
	}

	return logger, closer, nil
}
