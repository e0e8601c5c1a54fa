// Package panel provides the per-joint control surface that relays slider
// positions to the motor controller.
package panel

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gwillem/jointpanel/pkg/link"
	"github.com/gwillem/jointpanel/pkg/robot"
)

// Position is the last angle and command value set on a joint.
type Position struct {
	Joint robot.Joint
	Angle float64
	Value int
	Sent  bool // false if the last value never reached the controller
}

// Sender is the part of a link session the controller writes through.
type Sender interface {
	Open(port string) error
	Close() error
	IsOpen() bool
	PortName() string
	Send(cmd robot.Command) error
}

// Controller owns one JointControl per joint and the connection they share.
type Controller struct {
	session Sender
	joints  []*JointControl
	step    float64
	log     logrus.FieldLogger

	mu     sync.RWMutex
	status string
	logCh  chan string
}

// Config holds configuration for the controller.
type Config struct {
	Robot   *robot.Config
	Session Sender             // defaults to a serial link session built from Robot
	Logger  logrus.FieldLogger // defaults to the logrus standard logger
}

// NewController creates a controller with every joint at angle 0.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Robot == nil {
		cfg.Robot = robot.DefaultConfig()
	}
	if err := cfg.Robot.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Session == nil {
		cfg.Session = link.NewSession(link.Config{
			Baud:    cfg.Robot.Baud,
			Timeout: cfg.Robot.Timeout,
			Logger:  cfg.Logger,
		})
	}

	c := &Controller{
		session: cfg.Session,
		step:    cfg.Robot.Step,
		log:     cfg.Logger.WithField("component", "panel"),
		status:  "Select a serial port",
		logCh:   make(chan string, 10),
	}

	for _, j := range cfg.Robot.ActiveJoints() {
		m := cfg.Robot.MappingFor(j)
		value, err := m.Translate(0)
		if err != nil {
			return nil, fmt.Errorf("initial value for %s: %w", j, err)
		}
		c.joints = append(c.joints, &JointControl{
			ctrl:    c,
			joint:   j,
			mapping: m,
			pos:     Position{Joint: j, Value: value},
		})
	}

	return c, nil
}

// Close closes the connection.
func (c *Controller) Close() error {
	return c.session.Close()
}

// Joint returns the control for j, or nil if j is not active.
func (c *Controller) Joint(j robot.Joint) *JointControl {
	for _, jc := range c.joints {
		if jc.joint == j {
			return jc
		}
	}
	return nil
}

// Joints returns the active joint controls in channel order.
func (c *Controller) Joints() []*JointControl {
	return c.joints
}

// Step returns the configured slider step in degrees.
func (c *Controller) Step() float64 {
	return c.step
}

// Positions returns a snapshot of every joint's position.
func (c *Controller) Positions() []Position {
	positions := make([]Position, 0, len(c.joints))
	for _, jc := range c.joints {
		positions = append(positions, jc.Position())
	}
	return positions
}

// Logs returns a channel that receives log messages.
func (c *Controller) Logs() <-chan string {
	return c.logCh
}

// Connected reports whether the controller has an open port.
func (c *Controller) Connected() bool {
	return c.session.IsOpen()
}

// Status returns the last connection status line.
func (c *Controller) Status() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

func (c *Controller) setStatus(s string) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

func (c *Controller) logf(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case c.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Connect replaces the current connection with one to port.
func (c *Controller) Connect(port string) error {
	if err := c.session.Open(port); err != nil {
		c.setStatus("Not connected")
		c.log.WithError(err).Warn("connect failed")
		c.logf("Error opening serial port: %v", err)
		return err
	}
	c.setStatus("Serial Port: " + port)
	c.log.WithField("port", port).Info("connected")
	c.logf("Connected to %s", port)
	return nil
}

// Disconnect closes the current connection.
func (c *Controller) Disconnect() error {
	port := c.session.PortName()
	err := c.session.Close()
	c.setStatus("Not connected")
	if port != "" {
		c.logf("Disconnected from %s", port)
	}
	return err
}

// Resync resends every joint's current value, stopping at the first error.
func (c *Controller) Resync() error {
	for _, jc := range c.joints {
		pos := jc.Position()
		if _, err := jc.send(pos.Angle, pos.Value); err != nil {
			return err
		}
	}
	c.logf("Resynced %d joints", len(c.joints))
	return nil
}

// handleSendError records a failed send on the status line and log stream.
func (c *Controller) handleSendError(cmd robot.Command, err error) {
	var writeErr *link.WriteError
	switch {
	case errors.Is(err, link.ErrNotConnected):
		c.log.WithField("joint", int(cmd.Joint)).Debug("not connected, command dropped")
		c.logf("Not connected: %s not sent", cmd.Joint)
	case errors.As(err, &writeErr):
		c.setStatus("Not connected (write failed on " + writeErr.Port + ")")
		c.log.WithError(err).Error("write failed")
		c.logf("Write error: %v", err)
	default:
		c.log.WithError(err).Error("send failed")
		c.logf("Send error: %v", err)
	}
}
