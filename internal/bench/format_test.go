package bench

import (
	"reflect"
	"testing"
)

func TestFormatValues_Seconds(t *testing.T) {
	cases := []struct {
		values []float64
		want   []string
	}{
		{[]float64{1.5, 0.5}, []string{"1.50 sec", "0.50 sec"}},
		{[]float64{0.002, 0.0005}, []string{"2.00 ms", "0.50 ms"}},
		{[]float64{3e-6}, []string{"3.00 us"}},
		{[]float64{4e-9}, []string{"4.00 ns"}},
	}
	for _, tc := range cases {
		got := FormatValues("second", tc.values...)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("FormatValues(second, %v) = %v, want %v", tc.values, got, tc.want)
		}
	}
}

func TestFormatValues_Bytes(t *testing.T) {
	if got := FormatValue("byte", 512); got != "512 B" {
		t.Errorf("FormatValue(byte, 512) = %q, want 512 B", got)
	}
	if got := FormatValue("byte", 7857_000); got != "7.5 MB" {
		t.Errorf("FormatValue(byte, 7857000) = %q, want 7.5 MB", got)
	}
	// Both values of a pair share the scale of the larger one.
	got := FormatValues("byte", 2048, 512)
	want := []string{"2.0 KB", "0.5 KB"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FormatValues(byte, 2048, 512) = %v, want %v", got, want)
	}
}

func TestFormatValue_Plain(t *testing.T) {
	if got := FormatValue("integer", 5); got != "5 integer" {
		t.Errorf("FormatValue(integer, 5) = %q, want 5 integer", got)
	}
	if got := FormatValue("", 3); got != "3" {
		t.Errorf("FormatValue(empty, 3) = %q, want 3", got)
	}
	if got := FormatValue("integer", 2.5); got != "2.50 integer" {
		t.Errorf("FormatValue(integer, 2.5) = %q, want 2.50 integer", got)
	}
}
