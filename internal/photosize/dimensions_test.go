package photosize

import (
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"thumbnail-normalizer/internal/metrics"
)

func badDimensionCount() float64 {
	return testutil.ToFloat64(metrics.DecodeAnomalies.WithLabelValues(AnomalyBadDimension))
}

func TestNewDimensions(t *testing.T) {
	tests := []struct {
		name      string
		width     int32
		height    int32
		expected  Dimensions
		anomalies float64
	}{
		{"valid", 100, 200, Dimensions{100, 200}, 0},
		{"max", 65535, 65535, Dimensions{65535, 65535}, 0},
		{"one by one", 1, 1, Dimensions{1, 1}, 0},
		{"zero width", 0, 200, Dimensions{}, 0},
		{"zero height", 100, 0, Dimensions{}, 0},
		{"both zero", 0, 0, Dimensions{}, 0},
		{"negative width", -1, 200, Dimensions{}, 1},
		{"negative height", 100, -5, Dimensions{}, 1},
		{"width too large", 65536, 200, Dimensions{}, 1},
		{"height too large", 100, 1 << 20, Dimensions{}, 1},
		{"both out of range", -1, 65536, Dimensions{}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := badDimensionCount()
			got := NewDimensions(tt.width, tt.height, "test")
			if got != tt.expected {
				t.Errorf("NewDimensions(%d, %d) = %v, want %v", tt.width, tt.height, got, tt.expected)
			}
			if delta := badDimensionCount() - before; delta != tt.anomalies {
				t.Errorf("anomaly count delta = %v, want %v", delta, tt.anomalies)
			}
		})
	}
}

func TestNewDimensionsInvariant(t *testing.T) {
	// Either both fields are nonzero or both are zero, for any input.
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		w := int32(rng.Intn(1<<18) - 1<<16)
		h := int32(rng.Intn(1<<18) - 1<<16)
		d := NewDimensions(w, h, "fuzz")
		if (d.Width == 0) != (d.Height == 0) {
			t.Fatalf("NewDimensions(%d, %d) = %v violates the all-or-nothing invariant", w, h, d)
		}
		if w >= 1 && w <= 65535 && h >= 1 && h <= 65535 {
			if d.Width != uint16(w) || d.Height != uint16(h) {
				t.Fatalf("NewDimensions(%d, %d) = %v, want unchanged", w, h, d)
			}
		}
	}
}

func TestPixelCount(t *testing.T) {
	tests := []struct {
		dims     Dimensions
		expected uint32
	}{
		{Dimensions{}, 0},
		{Dimensions{10, 10}, 100},
		{Dimensions{65535, 65535}, 4294836225}, // must not overflow
	}

	for _, tt := range tests {
		t.Run(tt.dims.String(), func(t *testing.T) {
			if got := tt.dims.PixelCount(); got != tt.expected {
				t.Errorf("PixelCount() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestDimensionsString(t *testing.T) {
	d := Dimensions{Width: 320, Height: 240}
	if got := d.String(); got != "(320, 240)" {
		t.Errorf("String() = %q, want %q", got, "(320, 240)")
	}
}
