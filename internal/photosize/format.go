package photosize

import "fmt"

// Format identifies the encoding a decoded thumbnail is expected to be in.
// It gates the two inline-only wire encodings and picks the extension of
// suggested file names.
type Format int

const (
	// FormatJPEG is the baseline still-image format.
	FormatJPEG Format = iota
	// FormatPNG is the lossless still-image format.
	FormatPNG
	// FormatWebP is the sticker still-image format.
	FormatWebP
	// FormatGIF is the legacy animated-image format.
	FormatGIF
	// FormatTGS is the vector animated-sticker format.
	FormatTGS
	// FormatMPEG4 is the short looping video format.
	FormatMPEG4
	// FormatWebM is the video sticker format.
	FormatWebM
)

// String returns the file extension of the format, which is also its
// canonical wire name.
func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	case FormatPNG:
		return "png"
	case FormatWebP:
		return "webp"
	case FormatGIF:
		return "gif"
	case FormatTGS:
		return "tgs"
	case FormatMPEG4:
		return "mp4"
	case FormatWebM:
		return "webm"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// MimeType returns the media type of the format.
func (f Format) MimeType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatWebP:
		return "image/webp"
	case FormatGIF:
		return "image/gif"
	case FormatTGS:
		return "application/x-tgsticker"
	case FormatMPEG4:
		return "video/mp4"
	case FormatWebM:
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}

// ParseFormat maps a format name to its Format value. Both the canonical
// extension and the common long form ("jpeg", "mpeg4") are accepted.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	case "gif":
		return FormatGIF, nil
	case "tgs":
		return FormatTGS, nil
	case "mp4", "mpeg4":
		return FormatMPEG4, nil
	case "webm":
		return FormatWebM, nil
	}
	return 0, fmt.Errorf("unknown photo format %q", s)
}

// canRenderVectorPath reports whether the format can surface vector path
// minithumbnail data.
func (f Format) canRenderVectorPath() bool {
	return f == FormatTGS || f == FormatWebP || f == FormatWebM
}
