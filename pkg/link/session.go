package link

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gwillem/jointpanel/pkg/robot"
)

// Config holds configuration for a session.
type Config struct {
	Baud    int
	Timeout time.Duration
	Opener  Opener             // defaults to SerialOpener
	Logger  logrus.FieldLogger // defaults to the logrus standard logger
}

// Session owns at most one open connection to the motor controller.
//
// All methods are safe for concurrent use; writes never interleave.
type Session struct {
	open    Opener
	baud    int
	timeout time.Duration
	log     logrus.FieldLogger

	mu   sync.Mutex
	port Port
	name string
}

// NewSession creates a disconnected session.
func NewSession(cfg Config) *Session {
	if cfg.Opener == nil {
		cfg.Opener = SerialOpener
	}
	if cfg.Baud <= 0 {
		cfg.Baud = robot.DefaultBaud
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	return &Session{
		open:    cfg.Opener,
		baud:    cfg.Baud,
		timeout: cfg.Timeout,
		log:     cfg.Logger.WithField("component", "link"),
	}
}

// Open connects to the named port, closing the current port first.
//
// If the new port cannot be opened the session is left disconnected.
func (s *Session) Open(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closeLocked()

	if name == "" {
		return &PortOpenError{Port: name, Err: errors.New("no port selected")}
	}

	port, err := s.open(name, s.baud, s.timeout)
	if err != nil {
		s.log.WithError(err).WithField("port", name).Warn("open failed")
		return &PortOpenError{Port: name, Err: err}
	}

	s.port = port
	s.name = name
	s.log.WithFields(logrus.Fields{
		"port":    name,
		"baud":    s.baud,
		"timeout": s.timeout,
	}).Info("port opened")
	return nil
}

// Close closes the current port, if any.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *Session) closeLocked() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	if err != nil {
		s.log.WithError(err).WithField("port", s.name).Warn("close failed")
	} else {
		s.log.WithField("port", s.name).Info("port closed")
	}
	s.port = nil
	s.name = ""
	return err
}

// IsOpen reports whether the session holds an open port.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port != nil
}

// PortName returns the name of the open port, or "" when disconnected.
func (s *Session) PortName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Send writes a command to the open port.
//
// It returns ErrNotConnected when no port is open. A failed write closes the
// port and returns a *WriteError.
func (s *Session) Send(cmd robot.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.port == nil {
		return ErrNotConnected
	}

	if err := robot.Emit(s.port, cmd); err != nil {
		name := s.name
		s.log.WithError(err).WithField("port", name).Error("write failed, disconnecting")
		s.closeLocked()
		cause := errors.Unwrap(err)
		if cause == nil {
			cause = err
		}
		return &WriteError{Port: name, Command: cmd, Err: cause}
	}

	s.log.WithFields(logrus.Fields{
		"joint": int(cmd.Joint),
		"value": cmd.Value,
	}).Debug("command sent")
	return nil
}
