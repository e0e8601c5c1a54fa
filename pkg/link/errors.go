package link

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gwillem/jointpanel/pkg/robot"
)

// ErrNotConnected is returned when a command is sent without an open port.
var ErrNotConnected = errors.New("not connected")

// PortOpenError reports a serial port that could not be opened.
type PortOpenError struct {
	Port string
	Err  error
}

func (e *PortOpenError) Error() string {
	return fmt.Sprintf("open port %q: %v", e.Port, e.Err)
}

func (e *PortOpenError) Unwrap() error { return e.Err }

// WriteError reports a command that could not be written to an open port.
// The session is disconnected when this error is returned.
type WriteError struct {
	Port    string
	Command robot.Command
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("send %q to %s: %v", strings.TrimSpace(e.Command.String()), e.Port, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
