// Package robot provides the joint model, value mapping and wire commands
// for a four-joint finger controller.
package robot

import (
	"errors"
	"fmt"
)

// MaxJoints is the number of motor channels the controller exposes.
const MaxJoints = 4

// ErrInvalidJoint is returned for joint numbers outside 1..MaxJoints.
var ErrInvalidJoint = errors.New("invalid joint")

// Joint identifies one motor channel on the controller.
type Joint int

// Joints in channel order.
const (
	Joint1 Joint = iota + 1
	Joint2
	Joint3
	Joint4
)

// AllJoints returns all joints in order (matching channels 1-4).
func AllJoints() []Joint {
	return []Joint{
		Joint1,
		Joint2,
		Joint3,
		Joint4,
	}
}

// Valid reports whether j names an existing channel.
func (j Joint) Valid() bool {
	return j >= Joint1 && j <= MaxJoints
}

// String returns the channel label used on the wire, e.g. "v2".
func (j Joint) String() string {
	return fmt.Sprintf("v%d", int(j))
}

// ParseJoint converts a channel number into a Joint.
func ParseJoint(n int) (Joint, error) {
	j := Joint(n)
	if !j.Valid() {
		return 0, fmt.Errorf("%w: %d (want 1-%d)", ErrInvalidJoint, n, MaxJoints)
	}
	return j, nil
}
