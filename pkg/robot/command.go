package robot

import (
	"fmt"
	"io"
	"strconv"
)

// Command is a single position command for one joint.
type Command struct {
	Joint Joint
	Value int
}

// String returns the wire form of the command: "v{joint}:{value}\n".
func (c Command) String() string {
	return string(c.AppendTo(nil))
}

// AppendTo appends the wire form of the command to b.
func (c Command) AppendTo(b []byte) []byte {
	b = append(b, 'v')
	b = strconv.AppendInt(b, int64(c.Joint), 10)
	b = append(b, ':')
	b = strconv.AppendInt(b, int64(c.Value), 10)
	return append(b, '\n')
}

// Emit writes the command to w in a single write call.
// No acknowledgement is read back.
func Emit(w io.Writer, c Command) error {
	buf := c.AppendTo(make([]byte, 0, 16))
	n, err := w.Write(buf)
	if err != nil {
		return fmt.Errorf("write %s: %w", c.Joint, err)
	}
	if n != len(buf) {
		return fmt.Errorf("write %s: %w", c.Joint, io.ErrShortWrite)
	}
	return nil
}
