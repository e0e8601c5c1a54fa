package panel

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/gwillem/jointpanel/pkg/robot"
)

// JointControl binds one joint to its mapping and the shared connection.
type JointControl struct {
	ctrl    *Controller
	joint   robot.Joint
	mapping robot.Mapping

	mu  sync.Mutex
	pos Position
}

// Joint returns the joint this control drives.
func (jc *JointControl) Joint() robot.Joint {
	return jc.joint
}

// Mapping returns the angle mapping used by this joint.
func (jc *JointControl) Mapping() robot.Mapping {
	return jc.mapping
}

// Position returns the last angle and value set on this joint.
func (jc *JointControl) Position() Position {
	jc.mu.Lock()
	defer jc.mu.Unlock()
	return jc.pos
}

// OnChange translates angle and sends it to the controller.
//
// The translated value is recorded for display even when sending fails, so
// the UI reflects the slider. Errors are logged and returned, never raised.
func (jc *JointControl) OnChange(angle float64) (robot.Command, error) {
	value, err := jc.mapping.Translate(angle)
	if err != nil {
		jc.ctrl.log.WithError(err).WithField("joint", int(jc.joint)).Warn("translate failed")
		jc.ctrl.logf("%s: %v", jc.joint, err)
		return robot.Command{Joint: jc.joint}, err
	}
	if !jc.mapping.Contains(value) {
		jc.ctrl.log.WithFields(logrus.Fields{
			"joint": int(jc.joint),
			"angle": angle,
			"value": value,
		}).Warn("value outside nominal range")
	}
	return jc.send(angle, value)
}

func (jc *JointControl) send(angle float64, value int) (robot.Command, error) {
	cmd := robot.Command{Joint: jc.joint, Value: value}
	err := jc.ctrl.session.Send(cmd)

	jc.mu.Lock()
	jc.pos = Position{Joint: jc.joint, Angle: angle, Value: value, Sent: err == nil}
	jc.mu.Unlock()

	if err != nil {
		jc.ctrl.handleSendError(cmd, err)
		return cmd, err
	}
	return cmd, nil
}
