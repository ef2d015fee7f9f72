package adapters

import (
	"math"
	"testing"
)

func TestDMSToDecimal(t *testing.T) {
	tests := []struct {
		name string
		dms  string
		want float64
	}{
		{"north latitude", `27º 59' 17" N`, 27.988055},
		{"east longitude", `86º 55' 31" E`, 86.925277},
		{"south latitude negative", `27º 59' 17" S`, -27.988055},
		{"west longitude negative", `86º 55' 31" W`, -86.925277},
		{"degree sign variant", `27° 59' 17"`, 27.988055},
		{"bare numbers", "27 59 17", 27.988055},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DMSToDecimal(tt.dms)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("DMSToDecimal(%q) = %f, expected %f", tt.dms, got, tt.want)
			}
		})
	}
}

func TestDMSToDecimalInvalid(t *testing.T) {
	if _, err := DMSToDecimal("not a coordinate"); err == nil {
		t.Error("Expected an error for a non-coordinate string, got nil")
	}
}
