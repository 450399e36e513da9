package photosize

import (
	"encoding/base64"

	"thumbnail-normalizer/internal/metrics"
)

// packedJPEGTag is the only defined minithumbnail format tag: an embedded
// baseline-JPEG DCT blob with the header and trailer stripped off.
const packedJPEGTag = 0x01

// Offsets of the dimension placeholder bytes inside jpegHeader. The
// template's SOF0 segment starts at 158; height occupies bytes 163-164
// and width bytes 165-166 (big endian). Minithumbnail dimensions fit in
// one byte, so only the low bytes at 164 and 166 are patched and the high
// bytes at 163 and 165 stay zero. These offsets are a contract of this
// exact template; a different template needs them re-derived from its
// SOF0 position.
const (
	heightOffset = 164
	widthOffset  = 166
)

// jpegHeader is a complete baseline-JPEG prelude (SOI, quantization and
// Huffman tables, SOF0 with zeroed dimensions, SOS) shared by every
// minithumbnail. The packed wire blob carries only the entropy-coded scan
// that follows it.
var jpegHeader = mustDecodeBase64(
	"/9j/4AAQSkZJRgABAQAAAQABAAD/2wBDACgcHiMeGSgjISMtKygwPGRBPDc3PHtYXUlkkYCZlo+A" +
		"jIqgtObDoKrarYqMyP/L2u71////m8H////6/+b9//j/2wBDASstLTw1PHZBQXb4pYyl+Pj4+Pj4" +
		"+Pj4+Pj4+Pj4+Pj4+Pj4+Pj4+Pj4+Pj4+Pj4+Pj4+Pj4+Pj4+Pj4+Pj4+Pj/wAARCAAAAAADASIA" +
		"AhEBAxEB/8QAHwAAAQUBAQEBAQEAAAAAAAAAAAECAwQFBgcICQoL/8QAtRAAAgEDAwIEAwUFBAQA" +
		"AAF9AQIDAAQRBRIhMUEGE1FhByJxFDKBkaEII0KxwRVS0fAkM2JyggkKFhcYGRolJicoKSo0NTY3" +
		"ODk6Q0RFRkdISUpTVFVWV1hZWmNkZWZnaGlqc3R1dnd4eXqDhIWGh4iJipKTlJWWl5iZmqKjpKWm" +
		"p6ipqrKztLW2t7i5usLDxMXGx8jJytLT1NXW19jZ2uHi4+Tl5ufo6erx8vP09fb3+Pn6/8QAHwEA" +
		"AwEBAQEBAQEBAQAAAAAAAAECAwQFBgcICQoL/8QAtREAAgECBAQDBAcFBAQAAQJ3AAECAxEEBSEx" +
		"BhJBUQdhcRMiMoEIFEKRobHBCSMzUvAVYnLRChYkNOEl8RcYGRomJygpKjU2Nzg5OkNERUZHSElK" +
		"U1RVVldYWVpjZGVmZ2hpanN0dXZ3eHl6goOEhYaHiImKkpOUlZaXmJmaoqOkpaanqKmqsrO0tba3" +
		"uLm6wsPExcbHyMnK0tPU1dbX2Nna4uPk5ebn6Onq8vP09fb3+Pn6/9oADAMBAAIRAxEAPwA=")

// jpegTrailer is the EOI marker stripped from the packed wire blob.
var jpegTrailer = []byte{0xFF, 0xD9}

func mustDecodeBase64(s string) []byte {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Minithumbnail is a reconstructed low-resolution inline preview.
type Minithumbnail struct {
	Width  int32  `json:"width"`
	Height int32  `json:"height"`
	Data   []byte `json:"data"`
}

// ExpandMinithumbnail rebuilds a complete baseline JPEG from a packed
// minithumbnail blob: one format tag byte, one height byte, one width
// byte, then the raw entropy-coded scan. The scan is spliced between the
// fixed header template (with the dimension bytes patched in) and the EOI
// trailer, byte for byte. Returns nil when the blob is shorter than three
// bytes or carries an unknown tag.
func ExpandMinithumbnail(packed []byte) *Minithumbnail {
	if len(packed) < 3 {
		metrics.MinithumbnailExpansions.WithLabelValues("too_short").Inc()
		return nil
	}
	if packed[0] != packedJPEGTag {
		metrics.MinithumbnailExpansions.WithLabelValues("unknown_tag").Inc()
		return nil
	}

	height := packed[1]
	width := packed[2]
	scan := packed[3:]

	data := make([]byte, 0, len(jpegHeader)+len(scan)+len(jpegTrailer))
	data = append(data, jpegHeader[:heightOffset]...)
	data = append(data, height)
	data = append(data, jpegHeader[heightOffset+1])
	data = append(data, width)
	data = append(data, jpegHeader[widthOffset+1:]...)
	data = append(data, scan...)
	data = append(data, jpegTrailer...)

	metrics.MinithumbnailExpansions.WithLabelValues("ok").Inc()
	return &Minithumbnail{
		Width:  int32(width),
		Height: int32(height),
		Data:   data,
	}
}
