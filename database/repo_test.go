package database

import "testing"

func TestFormatVector(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
		want string
	}{
		{"empty", nil, "[]"},
		{"single", []float32{1}, "[1]"},
		{"typical", []float32{0.5, -0.25, 2}, "[0.5,-0.25,2]"},
		{"zero", []float32{0, 0}, "[0,0]"},
	}
	for _, tt := range tests {
		if got := formatVector(tt.in); got != tt.want {
			t.Errorf("%s: formatVector(%v) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}
