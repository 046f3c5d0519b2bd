package bench

import (
	"encoding/json"
	"math"
	"testing"
)

func TestNumber_JSON(t *testing.T) {
	cases := []struct {
		n    Number
		want string
	}{
		{Int(5), "5"},
		{Int(-3), "-3"},
		{Float(1.5), "1.5"},
		// An integral float keeps its float marker.
		{Float(2.0), "2.0"},
		{Float(1e20), "1e+20"},
	}
	for _, tc := range cases {
		data, err := json.Marshal(tc.n)
		if err != nil {
			t.Fatalf("Marshal(%v) failed: %v", tc.n, err)
		}
		if string(data) != tc.want {
			t.Errorf("Marshal(%v) = %s, want %s", tc.n, data, tc.want)
		}

		var back Number
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", data, err)
		}
		if back.IsInt() != tc.n.IsInt() || back.Float64() != tc.n.Float64() {
			t.Errorf("round trip of %v gave %v", tc.n, back)
		}
	}
}

func TestNumber_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := json.Marshal(Float(v)); err == nil {
			t.Errorf("Marshal(%v) succeeded, want error", v)
		}
	}
}

func TestNumber_Mul(t *testing.T) {
	if got := Int(3).Mul(4); !got.IsInt() || got.Float64() != 12 {
		t.Errorf("Int(3).Mul(4) = %v, want integer 12", got)
	}
	if got := Float(1.5).Mul(4); got.IsInt() || got.Float64() != 6.0 {
		t.Errorf("Float(1.5).Mul(4) = %v, want float 6.0", got)
	}
}

func TestParseNumber(t *testing.T) {
	n, err := ParseNumber("42")
	if err != nil || !n.IsInt() || n.Float64() != 42 {
		t.Errorf("ParseNumber(42) = %v, %v", n, err)
	}
	n, err = ParseNumber("42.0")
	if err != nil || n.IsInt() || n.Float64() != 42.0 {
		t.Errorf("ParseNumber(42.0) = %v, %v", n, err)
	}
	n, err = ParseNumber("1e3")
	if err != nil || n.IsInt() || n.Float64() != 1000.0 {
		t.Errorf("ParseNumber(1e3) = %v, %v", n, err)
	}
	if _, err := ParseNumber("abc"); err == nil {
		t.Error("ParseNumber(abc) succeeded, want error")
	}
}
