package robot

import (
	"errors"
	"testing"
)

func TestAllJoints(t *testing.T) {
	joints := AllJoints()
	if len(joints) != MaxJoints {
		t.Fatalf("AllJoints returned %d joints, want %d", len(joints), MaxJoints)
	}
	for i, j := range joints {
		if int(j) != i+1 {
			t.Errorf("AllJoints()[%d] = %d, want %d", i, j, i+1)
		}
		if !j.Valid() {
			t.Errorf("%s should be valid", j)
		}
	}
}

func TestParseJoint(t *testing.T) {
	for n := 1; n <= 4; n++ {
		j, err := ParseJoint(n)
		if err != nil {
			t.Errorf("ParseJoint(%d) returned error: %v", n, err)
		}
		if int(j) != n {
			t.Errorf("ParseJoint(%d) = %d", n, j)
		}
	}

	for _, n := range []int{0, 5, -1} {
		if _, err := ParseJoint(n); !errors.Is(err, ErrInvalidJoint) {
			t.Errorf("ParseJoint(%d) error = %v, want ErrInvalidJoint", n, err)
		}
	}
}

func TestJoint_String(t *testing.T) {
	if got := Joint3.String(); got != "v3" {
		t.Errorf("Joint3.String() = %q, want v3", got)
	}
}
