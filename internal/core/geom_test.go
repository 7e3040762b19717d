package core

import (
	"math"
	"testing"
)

func TestVecArithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, 2)

	if got := a.Add(b); got != V(4, 6) {
		t.Errorf("Add() = %v, expected (4, 6)", got)
	}
	if got := a.Sub(b); got != V(2, 2) {
		t.Errorf("Sub() = %v, expected (2, 2)", got)
	}
	if got := a.Scale(0.5); got != V(1.5, 2) {
		t.Errorf("Scale() = %v, expected (1.5, 2)", got)
	}
	if got := a.Len(); got != 5 {
		t.Errorf("Len() = %f, expected 5", got)
	}
	if got := a.Dist(V(0, 0)); got != 5 {
		t.Errorf("Dist() = %f, expected 5", got)
	}
}

func TestVecNorm(t *testing.T) {
	n := V(10, 0).Norm()
	if n != V(1, 0) {
		t.Errorf("Norm() = %v, expected (1, 0)", n)
	}

	diag := V(3, 4).Norm()
	if math.Abs(diag.Len()-1) > 1e-9 {
		t.Errorf("Norm() length = %f, expected 1", diag.Len())
	}

	// Zero vector must not produce NaN
	z := V(0, 0).Norm()
	if z != V(0, 0) {
		t.Errorf("Norm() of zero = %v, expected zero", z)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"left of rect", 5, 15, false},
		{"below rect", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0, 10, 5.5},
		{-5.5, 0, 10, 0},
		{15.5, 0, 10, 10},
		{3.0, 0.5, 2.5, 2.5},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
