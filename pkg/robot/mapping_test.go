package robot

import (
	"errors"
	"math"
	"testing"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		angle    float64
		expected int
	}{
		{0, 450},    // min -> 450
		{90, 850},   // max -> 850
		{45, 650},   // mid -> 650
		{22.5, 550}, // quarter
		{1, 454},    // 454.44 truncated
		{89.9, 849}, // 849.55 truncated, not rounded
	}

	for _, tt := range tests {
		got, err := Translate(tt.angle)
		if err != nil {
			t.Fatalf("Translate(%v) returned error: %v", tt.angle, err)
		}
		if got != tt.expected {
			t.Errorf("Translate(%v) = %d, want %d", tt.angle, got, tt.expected)
		}
	}
}

func TestTranslate_Extrapolates(t *testing.T) {
	tests := []struct {
		angle    float64
		expected int
	}{
		{100, 894}, // 894.44
		{-10, 405}, // 405.56 truncated toward zero
		{180, 1250},
	}

	for _, tt := range tests {
		got, err := Translate(tt.angle)
		if err != nil {
			t.Fatalf("Translate(%v) returned error: %v", tt.angle, err)
		}
		if got != tt.expected {
			t.Errorf("Translate(%v) = %d, want %d", tt.angle, got, tt.expected)
		}
		if DefaultMapping.Contains(got) {
			t.Errorf("Translate(%v) = %d was clamped into [450, 850]", tt.angle, got)
		}
	}
}

func TestTranslate_InvalidAngle(t *testing.T) {
	for _, angle := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := Translate(angle)
		if !errors.Is(err, ErrInvalidAngle) {
			t.Errorf("Translate(%v) error = %v, want ErrInvalidAngle", angle, err)
		}
	}
}

func TestTranslate_Monotonic(t *testing.T) {
	prev, _ := Translate(0)
	for a := 0.25; a <= 90; a += 0.25 {
		got, err := Translate(a)
		if err != nil {
			t.Fatalf("Translate(%v) returned error: %v", a, err)
		}
		if got < prev {
			t.Fatalf("Translate(%v) = %d, less than previous %d", a, got, prev)
		}
		prev = got
	}
}

func TestTranslate_Idempotent(t *testing.T) {
	for _, a := range []float64{0, 13.37, 45, 77.7, 90} {
		first, _ := Translate(a)
		for i := 0; i < 5; i++ {
			if got, _ := Translate(a); got != first {
				t.Fatalf("Translate(%v) changed between calls: %d then %d", a, first, got)
			}
		}
	}
}

func TestMapping_Custom(t *testing.T) {
	m := Mapping{MinValue: 1000, MaxValue: 2000, MaxAngle: 180}

	got, err := m.Translate(90)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1500 {
		t.Errorf("Translate(90) = %d, want 1500", got)
	}
}

func TestMapping_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mapping Mapping
		wantErr bool
	}{
		{"default", DefaultMapping, false},
		{"zero angle", Mapping{MinValue: 450, MaxValue: 850}, true},
		{"negative angle", Mapping{MinValue: 450, MaxValue: 850, MaxAngle: -90}, true},
		{"inverted range", Mapping{MinValue: 850, MaxValue: 450, MaxAngle: 90}, true},
		{"empty range", Mapping{MinValue: 450, MaxValue: 450, MaxAngle: 90}, true},
	}

	for _, tt := range tests {
		err := tt.mapping.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
