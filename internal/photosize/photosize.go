package photosize

import (
	"fmt"
	"math"
)

// FileID is the opaque handle the identity registrar assigns to a remote
// file location. The zero value means "never registered".
type FileID int64

// IsValid reports whether the handle refers to a registered file.
func (id FileID) IsValid() bool {
	return id != 0
}

// PhotoSize is the canonical descriptor every thumbnail wire variant
// normalizes into. Values are constructed once by a decoder and never
// mutated afterwards.
type PhotoSize struct {
	// Type is a single ASCII-range tag identifying the size's purpose
	// (thumbnail, minithumbnail, near-original, ...); 0 means the wire
	// supplied an unrecognized tag.
	Type       byte       `json:"type"`
	Dimensions Dimensions `json:"dimensions"`
	// Size is the byte length of the full-resolution encoding.
	Size   int32  `json:"size"`
	FileID FileID `json:"fileId"`
	// ProgressiveSizes holds the byte length of every scan except the
	// final/largest one (stored in Size), in ascending order. Empty
	// unless the source was a progressive multi-scan encoding.
	ProgressiveSizes []int32 `json:"progressiveSizes,omitempty"`
}

// Equal reports field-wise equality, comparing scan sizes element-wise.
func (p PhotoSize) Equal(o PhotoSize) bool {
	if p.Type != o.Type || p.Dimensions != o.Dimensions || p.Size != o.Size || p.FileID != o.FileID {
		return false
	}
	if len(p.ProgressiveSizes) != len(o.ProgressiveSizes) {
		return false
	}
	for i, s := range p.ProgressiveSizes {
		if o.ProgressiveSizes[i] != s {
			return false
		}
	}
	return true
}

// The 't' tag marks the dedicated thumbnail slot; at the tag tie-break
// level it always ranks below every other tag regardless of byte value.
func typeRank(t byte) int32 {
	if t == 't' {
		return -1
	}
	return int32(t)
}

// Less is the total quality order over descriptors, from worst to best.
// Keys, in order: byte size, pixel count, type tag (with 't' lowest),
// file handle, width. Consumers pick the maximum element as the best
// available thumbnail, so the key order is a contract.
func Less(lhs, rhs PhotoSize) bool {
	if lhs.Size != rhs.Size {
		return lhs.Size < rhs.Size
	}
	lhsPixels := lhs.Dimensions.PixelCount()
	rhsPixels := rhs.Dimensions.PixelCount()
	if lhsPixels != rhsPixels {
		return lhsPixels < rhsPixels
	}
	lhsType := typeRank(lhs.Type)
	rhsType := typeRank(rhs.Type)
	if lhsType != rhsType {
		return lhsType < rhsType
	}
	if lhs.FileID != rhs.FileID {
		return lhs.FileID < rhs.FileID
	}
	return lhs.Dimensions.Width < rhs.Dimensions.Width
}

// Best returns the maximum element of sizes under Less. The second result
// is false when sizes is empty.
func Best(sizes []PhotoSize) (PhotoSize, bool) {
	if len(sizes) == 0 {
		return PhotoSize{}, false
	}
	best := sizes[0]
	for _, s := range sizes[1:] {
		if Less(best, s) {
			best = s
		}
	}
	return best, true
}

func (p PhotoSize) String() string {
	return fmt.Sprintf("{type = %d, dimensions = %s, size = %d, file_id = %d, progressive_sizes = %v}",
		p.Type, p.Dimensions, p.Size, p.FileID, p.ProgressiveSizes)
}

// timestampTolerance absorbs float round-trip noise in key-frame
// timestamps when comparing animation sizes.
const timestampTolerance = 1e-3

// AnimationSize is a PhotoSize for a short looping clip, plus the
// timestamp of its representative frame.
type AnimationSize struct {
	PhotoSize
	// MainFrameTimestamp is the offset, in seconds, of the frame shown
	// while the clip is not playing. Zero when the wire omitted it.
	MainFrameTimestamp float64 `json:"mainFrameTimestamp"`
}

// Equal reports PhotoSize equality plus timestamp equality within an
// absolute tolerance of 1e-3 seconds.
func (a AnimationSize) Equal(b AnimationSize) bool {
	return a.PhotoSize.Equal(b.PhotoSize) &&
		math.Abs(a.MainFrameTimestamp-b.MainFrameTimestamp) < timestampTolerance
}

func (a AnimationSize) String() string {
	return fmt.Sprintf("%s from %.3f", a.PhotoSize, a.MainFrameTimestamp)
}

// Thumbnail is the renderable descriptor handed to presentation layers.
type Thumbnail struct {
	Format Format `json:"format"`
	Width  uint16 `json:"width"`
	Height uint16 `json:"height"`
	FileID FileID `json:"fileId"`
}

// NewThumbnail builds the renderable form of a decoded descriptor, or nil
// when the descriptor was never registered. A size tagged 'g' requested
// as JPEG is surfaced as GIF.
func NewThumbnail(p PhotoSize, format Format) *Thumbnail {
	if !p.FileID.IsValid() {
		return nil
	}
	if format == FormatJPEG && p.Type == 'g' {
		format = FormatGIF
	}
	return &Thumbnail{
		Format: format,
		Width:  p.Dimensions.Width,
		Height: p.Dimensions.Height,
		FileID: p.FileID,
	}
}
