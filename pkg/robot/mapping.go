package robot

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidAngle is returned when an angle cannot be translated (NaN or infinite).
var ErrInvalidAngle = errors.New("invalid angle")

// Default mapping constants for the N20 finger controller.
const (
	DefaultMinValue = 450
	DefaultMaxValue = 850
	DefaultMaxAngle = 90.0
)

// Mapping describes how slider angles map onto controller command values.
type Mapping struct {
	MinValue int     `yaml:"min_value"`
	MaxValue int     `yaml:"max_value"`
	MaxAngle float64 `yaml:"max_angle"`
}

// DefaultMapping maps [0, 90] degrees onto [450, 850].
var DefaultMapping = Mapping{
	MinValue: DefaultMinValue,
	MaxValue: DefaultMaxValue,
	MaxAngle: DefaultMaxAngle,
}

// Translate converts an angle to a command value using DefaultMapping.
func Translate(angle float64) (int, error) {
	return DefaultMapping.Translate(angle)
}

// Translate converts an angle in degrees to a command value.
//
// The result is truncated toward zero. Angles outside [0, MaxAngle] are
// extrapolated, not clamped, so the value may fall outside [MinValue, MaxValue].
func (m Mapping) Translate(angle float64) (int, error) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAngle, angle)
	}
	span := float64(m.MaxValue - m.MinValue)
	return int(float64(m.MinValue) + (angle/m.MaxAngle)*span), nil
}

// Contains reports whether value lies inside the nominal command range.
func (m Mapping) Contains(value int) bool {
	return value >= m.MinValue && value <= m.MaxValue
}

// Validate checks that the mapping can translate angles.
func (m Mapping) Validate() error {
	if m.MaxAngle <= 0 || math.IsNaN(m.MaxAngle) || math.IsInf(m.MaxAngle, 0) {
		return fmt.Errorf("max_angle must be positive, got %v", m.MaxAngle)
	}
	if m.MaxValue <= m.MinValue {
		return fmt.Errorf("max_value (%d) must be greater than min_value (%d)", m.MaxValue, m.MinValue)
	}
	return nil
}
