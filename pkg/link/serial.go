// Package link manages the serial connection to the motor controller.
package link

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// Port is the part of a serial port the session needs.
type Port interface {
	io.Writer
	io.Closer
}

// Opener opens a port by name.
type Opener func(name string, baud int, timeout time.Duration) (Port, error)

// SerialOpener opens an OS serial port at 8N1.
// Only the read timeout is configurable; writes block for as long as the driver takes.
func SerialOpener(name string, baud int, timeout time.Duration) (Port, error) {
	port, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		if err := port.SetReadTimeout(timeout); err != nil {
			port.Close()
			return nil, fmt.Errorf("set read timeout: %w", err)
		}
	}
	return port, nil
}

// ListPorts returns the names of available serial ports.
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list ports: %w", err)
	}

	names := make([]string, 0, len(ports))
	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}
		names = append(names, port)
	}
	return names, nil
}

// PortInfo describes a serial port and, for USB adapters, its device IDs.
type PortInfo struct {
	Name    string
	IsUSB   bool
	VID     string
	PID     string
	Serial  string
	Product string
}

// ListPortDetails returns available serial ports with USB details where known.
func ListPortDetails() ([]PortInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("list ports: %w", err)
	}

	infos := make([]PortInfo, 0, len(ports))
	for _, p := range ports {
		if strings.Contains(p.Name, "Bluetooth") {
			continue
		}
		infos = append(infos, PortInfo{
			Name:    p.Name,
			IsUSB:   p.IsUSB,
			VID:     p.VID,
			PID:     p.PID,
			Serial:  p.SerialNumber,
			Product: p.Product,
		})
	}
	return infos, nil
}
