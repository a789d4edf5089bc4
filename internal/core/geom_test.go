package core

import (
	"math"
	"testing"
)

func TestLerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, -20, 4}

	tests := []struct {
		name     string
		t        float64
		expected Vec3
	}{
		{"start", 0, a},
		{"middle", 0.5, Vec3{5, -10, 2}},
		{"quarter", 0.25, Vec3{2.5, -5, 1}},
		{"end", 1, b},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Lerp(a, b, tc.t)
			if !got.ApproxEqual(tc.expected) {
				t.Errorf("Lerp(%v) = %v, expected %v", tc.t, got, tc.expected)
			}
		})
	}
}

func TestLerpZeroIsExact(t *testing.T) {
	a := Vec3{0.1, 0.2, 0.3}
	b := Vec3{1e9, -1e9, 7}
	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(a, b, 0) = %v, expected exactly %v", got, a)
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(Vec3{0, 0, 0}, Vec3{3, 4, 0}); d != 5 {
		t.Errorf("Distance = %f, expected 5", d)
	}
	if d := Distance(Vec3{1, 1, 1}, Vec3{1, 1, 1}); d != 0 {
		t.Errorf("Distance to self = %f, expected 0", d)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(Vec3{1, 2, 3}) {
		t.Error("finite vector reported as non-finite")
	}
	if IsFinite(Vec3{math.NaN(), 0, 0}) {
		t.Error("NaN vector reported as finite")
	}
	if IsFinite(Vec3{0, math.Inf(-1), 0}) {
		t.Error("Inf vector reported as finite")
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)
	if !r.Contains(10, 10) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(30, 25) {
		t.Error("bottom-right edge is exclusive")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
	if got := ClampF(0.15, -0.1, 0.1); got != 0.1 {
		t.Errorf("ClampF(0.15) = %f, expected 0.1", got)
	}
	if got := ClampF(-3, -0.1, 0.1); got != -0.1 {
		t.Errorf("ClampF(-3) = %f, expected -0.1", got)
	}
}

func TestSign(t *testing.T) {
	if Sign(2.5) != 1 || Sign(-0.001) != -1 || Sign(0) != 0 {
		t.Error("Sign returned an unexpected value")
	}
}
