// Package jointpanel provides position control for small DC motors such as
// robotic finger joints, relaying slider positions to a motor controller over
// a serial link.
//
// Each joint angle in [0, 90] degrees is mapped linearly onto the controller's
// command range [450, 850] and sent as one ASCII line per change:
//
//	v2:650
//
// # Installation
//
//	go install github.com/gwillem/jointpanel/cmd/jointpanel@latest
//
// # Usage
//
// Pick the controller's serial port and save it to jointpanel.yaml:
//
//	jointpanel setup
//
// Then open the panel:
//
//	jointpanel panel
//
// Or send a single position from a script:
//
//	jointpanel send --joint 2 --angle 45
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/jointpanel: CLI with panel, ports, send and setup commands
//   - pkg/robot: Joints, angle mapping, wire commands and configuration
//   - pkg/link: Serial connection session
//   - pkg/panel: Per-joint controls and connection status
package jointpanel
