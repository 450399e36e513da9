package photosize

import "fmt"

// MaxDimension is the largest width or height the wire may declare.
const MaxDimension = 65535

// Dimensions is a validated width/height pair. Either both fields are
// nonzero or both are zero; the zero value is the "unknown or rejected"
// sentinel. Never one zero and one nonzero.
type Dimensions struct {
	Width  uint16 `json:"width"`
	Height uint16 `json:"height"`
}

func clampDimension(size int32, source string) uint16 {
	if size < 0 || size > MaxDimension {
		reportAnomaly(AnomalyBadDimension, "Wrong image dimension = %d from %s", size, source)
		return 0
	}
	return uint16(size)
}

// NewDimensions validates a width/height pair received from the wire.
// Out-of-range values are reported and treated as zero; if either side
// ends up zero the whole pair collapses to the zero sentinel. The source
// string identifies the wire record for diagnostics.
func NewDimensions(width, height int32, source string) Dimensions {
	d := Dimensions{
		Width:  clampDimension(width, source),
		Height: clampDimension(height, source),
	}
	if d.Width == 0 || d.Height == 0 {
		return Dimensions{}
	}
	return d
}

// IsZero reports whether d is the unknown/invalid sentinel.
func (d Dimensions) IsZero() bool {
	return d.Width == 0 && d.Height == 0
}

// PixelCount returns width*height, widened so 65535x65535 cannot overflow.
func (d Dimensions) PixelCount() uint32 {
	return uint32(d.Width) * uint32(d.Height)
}

func (d Dimensions) String() string {
	return fmt.Sprintf("(%d, %d)", d.Width, d.Height)
}
