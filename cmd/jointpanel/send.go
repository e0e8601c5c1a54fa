package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gwillem/jointpanel/pkg/panel"
	"github.com/gwillem/jointpanel/pkg/robot"
)

type SendCommand struct {
	Port   string        `short:"p" long:"port" description:"Serial port (default from config)"`
	Joint  int           `short:"j" long:"joint" required:"true" description:"Joint number (1-4)"`
	Angle  float64       `short:"a" long:"angle" required:"true" description:"Angle in degrees (0-90)"`
	Settle time.Duration `long:"settle" default:"0s" description:"Wait after opening the port, for boards that reset on connect"`
}

func (c *SendCommand) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	joint, err := robot.ParseJoint(c.Joint)
	if err != nil {
		return err
	}
	port := c.Port
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		return errors.New("no serial port given; use --port or run 'jointpanel setup'")
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	ctrl, err := panel.NewController(panel.Config{Robot: cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer ctrl.Close()

	jc := ctrl.Joint(joint)
	if jc == nil {
		return fmt.Errorf("joint %d is not enabled (joints: %d)", c.Joint, cfg.Joints)
	}

	if err := ctrl.Connect(port); err != nil {
		return err
	}
	if c.Settle > 0 {
		time.Sleep(c.Settle)
	}

	cmd, err := jc.OnChange(c.Angle)
	if err != nil {
		return err
	}
	if !jc.Mapping().Contains(cmd.Value) {
		fmt.Printf("warning: %d is outside the nominal range %d-%d\n", cmd.Value, jc.Mapping().MinValue, jc.Mapping().MaxValue)
	}
	fmt.Printf("sent %s to %s\n", strings.TrimSpace(cmd.String()), port)
	return nil
}
