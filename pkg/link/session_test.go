package link

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/gwillem/jointpanel/pkg/robot"
)

type fakePort struct {
	name     string
	buf      bytes.Buffer
	closed   bool
	writeErr error
	short    bool
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.closed {
		return 0, errors.New("port closed")
	}
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	if p.short {
		return len(b) - 1, nil
	}
	return p.buf.Write(b)
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

type fakeOpener struct {
	ports   map[string]*fakePort
	opened  []*fakePort
	fail    map[string]error
	baud    int
	timeout time.Duration
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{
		ports: map[string]*fakePort{},
		fail:  map[string]error{},
	}
}

func (o *fakeOpener) Open(name string, baud int, timeout time.Duration) (Port, error) {
	o.baud = baud
	o.timeout = timeout
	if err, ok := o.fail[name]; ok {
		return nil, err
	}
	for _, p := range o.opened {
		if !p.closed {
			return nil, errors.New("another port is still open")
		}
	}
	p := &fakePort{name: name}
	o.ports[name] = p
	o.opened = append(o.opened, p)
	return p, nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSession(t *testing.T) {
	Convey("Given a disconnected session", t, func() {
		opener := newFakeOpener()
		s := NewSession(Config{
			Baud:    9600,
			Timeout: time.Second,
			Opener:  opener.Open,
			Logger:  quietLogger(),
		})

		So(s.IsOpen(), ShouldBeFalse)
		So(s.PortName(), ShouldEqual, "")

		Convey("sending returns ErrNotConnected", func() {
			err := s.Send(robot.Command{Joint: robot.Joint1, Value: 450})
			So(errors.Is(err, ErrNotConnected), ShouldBeTrue)
		})

		Convey("closing is a no-op", func() {
			So(s.Close(), ShouldBeNil)
		})

		Convey("opening with an empty name fails", func() {
			err := s.Open("")
			var openErr *PortOpenError
			So(errors.As(err, &openErr), ShouldBeTrue)
			So(s.IsOpen(), ShouldBeFalse)
		})

		Convey("opening a port passes baud and timeout through", func() {
			So(s.Open("/dev/ttyUSB0"), ShouldBeNil)
			So(s.IsOpen(), ShouldBeTrue)
			So(s.PortName(), ShouldEqual, "/dev/ttyUSB0")
			So(opener.baud, ShouldEqual, 9600)
			So(opener.timeout, ShouldEqual, time.Second)

			Convey("commands are written in wire format", func() {
				So(s.Send(robot.Command{Joint: robot.Joint2, Value: 650}), ShouldBeNil)
				So(s.Send(robot.Command{Joint: robot.Joint4, Value: 850}), ShouldBeNil)
				So(opener.ports["/dev/ttyUSB0"].buf.String(), ShouldEqual, "v2:650\nv4:850\n")
			})

			Convey("opening another port closes the first", func() {
				So(s.Open("/dev/ttyUSB1"), ShouldBeNil)
				So(opener.ports["/dev/ttyUSB0"].closed, ShouldBeTrue)
				So(opener.ports["/dev/ttyUSB1"].closed, ShouldBeFalse)
				So(s.PortName(), ShouldEqual, "/dev/ttyUSB1")

				So(s.Send(robot.Command{Joint: robot.Joint1, Value: 500}), ShouldBeNil)
				So(opener.ports["/dev/ttyUSB0"].buf.String(), ShouldEqual, "")
				So(opener.ports["/dev/ttyUSB1"].buf.String(), ShouldEqual, "v1:500\n")
			})

			Convey("reopening the same port works", func() {
				first := opener.ports["/dev/ttyUSB0"]
				So(s.Open("/dev/ttyUSB0"), ShouldBeNil)
				So(first.closed, ShouldBeTrue)
				So(opener.ports["/dev/ttyUSB0"].closed, ShouldBeFalse)
			})

			Convey("a failed open leaves the session disconnected", func() {
				opener.fail["/dev/busy"] = errors.New("resource busy")
				err := s.Open("/dev/busy")

				var openErr *PortOpenError
				So(errors.As(err, &openErr), ShouldBeTrue)
				So(openErr.Port, ShouldEqual, "/dev/busy")
				So(opener.ports["/dev/ttyUSB0"].closed, ShouldBeTrue)
				So(s.IsOpen(), ShouldBeFalse)
				So(errors.Is(s.Send(robot.Command{Joint: robot.Joint1, Value: 450}), ErrNotConnected), ShouldBeTrue)
			})

			Convey("a write failure disconnects the session", func() {
				unplugged := errors.New("device unplugged")
				opener.ports["/dev/ttyUSB0"].writeErr = unplugged

				err := s.Send(robot.Command{Joint: robot.Joint3, Value: 700})
				var writeErr *WriteError
				So(errors.As(err, &writeErr), ShouldBeTrue)
				So(errors.Is(err, unplugged), ShouldBeTrue)
				So(writeErr.Port, ShouldEqual, "/dev/ttyUSB0")
				So(writeErr.Command.Value, ShouldEqual, 700)
				So(err.Error(), ShouldContainSubstring, "v3:700")

				So(s.IsOpen(), ShouldBeFalse)
				So(opener.ports["/dev/ttyUSB0"].closed, ShouldBeTrue)
				So(errors.Is(s.Send(robot.Command{Joint: robot.Joint3, Value: 700}), ErrNotConnected), ShouldBeTrue)
			})

			Convey("a short write is reported", func() {
				opener.ports["/dev/ttyUSB0"].short = true
				err := s.Send(robot.Command{Joint: robot.Joint1, Value: 450})
				So(errors.Is(err, io.ErrShortWrite), ShouldBeTrue)
				So(s.IsOpen(), ShouldBeFalse)
			})

			Convey("closing releases the port", func() {
				So(s.Close(), ShouldBeNil)
				So(opener.ports["/dev/ttyUSB0"].closed, ShouldBeTrue)
				So(s.IsOpen(), ShouldBeFalse)
				So(s.PortName(), ShouldEqual, "")
			})
		})
	})
}

func TestNewSession_Defaults(t *testing.T) {
	s := NewSession(Config{})
	if s.baud != robot.DefaultBaud {
		t.Errorf("baud = %d, want %d", s.baud, robot.DefaultBaud)
	}
	if s.open == nil {
		t.Error("opener should default to SerialOpener")
	}
}
