package photosize

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sort"

	"thumbnail-normalizer/internal/metrics"
)

// DecodeResult is the outcome of decoding one thumbnail wire record. At
// most one of Size and Content is set: Content carries the raw inline
// bytes of the two inline-only encodings, Size everything else. A zero
// result means the record was empty or rejected.
type DecodeResult struct {
	Size PhotoSize
	// Content holds packed minithumbnail or vector path bytes. No file
	// identity exists for it; the caller decides how to surface it.
	Content []byte
	// Type is the resolved type tag. When the source classifies as a
	// thumbnail, callers thread this into any identity they construct
	// for the same file afterwards.
	Type byte
}

// normalizeTypeTag validates a wire type tag: exactly one byte, ASCII
// range. Violations degrade to the unknown tag 0.
func normalizeTypeTag(typ string, res PhotoSize) byte {
	if len(typ) != 1 || typ[0] >= 128 {
		reportAnomaly(AnomalyBadType, "Wrong photoSize %q %s", typ, res)
		return 0
	}
	return typ[0]
}

// DecodeThumbnail normalizes one of the six thumbnail wire encodings.
// format is the encoding the enclosing object says its thumbnails are in;
// the two inline-only encodings are rejected when it cannot render them.
// Decoded remote sizes are registered through reg, and inline bytes of
// cached sizes are stored against the assigned handle.
func DecodeThumbnail(reg Registrar, src Source, ident RemoteIdentity, rec ThumbnailSize, format Format) DecodeResult {
	var res PhotoSize
	var typ string
	var content []byte

	switch rec := rec.(type) {
	case SizeEmpty:
		metrics.DecodesTotal.WithLabelValues("thumbnail", "empty").Inc()
		return DecodeResult{}

	case SizePlain:
		typ = rec.Type
		res.Dimensions = NewDimensions(rec.Width, rec.Height, "photoSize")
		res.Size = rec.Size

	case SizeCached:
		typ = rec.Type
		res.Dimensions = NewDimensions(rec.Width, rec.Height, "photoCachedSize")
		res.Size = int32(len(rec.Bytes))
		content = rec.Bytes

	case SizeStripped:
		if format != FormatJPEG {
			reportAnomaly(AnomalyFormatMismatch,
				"Receive unexpected JPEG minithumbnail in photo %d of format %s", ident.ID, format)
			metrics.DecodesTotal.WithLabelValues("thumbnail", "empty").Inc()
			return DecodeResult{}
		}
		metrics.DecodesTotal.WithLabelValues("thumbnail", "inline").Inc()
		return DecodeResult{Content: rec.Bytes}

	case SizeProgressive:
		if len(rec.Sizes) == 0 {
			reportAnomaly(AnomalyEmptyScanList,
				"Receive photo %d with empty progressive sizes", ident.ID)
			metrics.DecodesTotal.WithLabelValues("thumbnail", "empty").Inc()
			return DecodeResult{}
		}
		// The wire does not guarantee scan order.
		sizes := append([]int32(nil), rec.Sizes...)
		sort.Slice(sizes, func(i, j int) bool { return sizes[i] < sizes[j] })

		typ = rec.Type
		res.Dimensions = NewDimensions(rec.Width, rec.Height, "photoSizeProgressive")
		res.Size = sizes[len(sizes)-1]
		res.ProgressiveSizes = sizes[:len(sizes)-1]

	case SizePath:
		if !format.canRenderVectorPath() {
			reportAnomaly(AnomalyFormatMismatch,
				"Receive unexpected SVG minithumbnail in photo %d of format %s", ident.ID, format)
			metrics.DecodesTotal.WithLabelValues("thumbnail", "empty").Inc()
			return DecodeResult{}
		}
		metrics.DecodesTotal.WithLabelValues("thumbnail", "inline").Inc()
		return DecodeResult{Content: rec.Bytes}
	}

	res.Type = normalizeTypeTag(typ, res)
	if src.Kind == SourceThumbnail {
		// The resolved tag takes part in the canonical name below; the
		// caller receives it in the result to thread into later identity
		// construction for the same file.
		src.ThumbnailType = res.Type
	}

	res.FileID = RegisterSize(reg, src, ident, res.Size, format)
	if len(content) > 0 {
		reg.SetContent(res.FileID, content)
	}

	metrics.DecodesTotal.WithLabelValues("thumbnail", "ok").Inc()
	return DecodeResult{Size: res, Type: res.Type}
}

// AnimationResult is the outcome of decoding a video thumbnail record.
type AnimationResult struct {
	Size AnimationSize
	// Type is the resolved type tag, as in DecodeResult.
	Type byte
}

// DecodeAnimation normalizes a video thumbnail record. The tag must be
// one of "v" (video preview) or "u" (user profile clip); anything else is
// reported and coerced to the unknown tag. Registration always targets
// the short looping video format regardless of the record's own tag.
func DecodeAnimation(reg Registrar, src Source, ident RemoteIdentity, rec VideoSize) AnimationResult {
	var res AnimationSize
	if rec.Type == "v" || rec.Type == "u" {
		res.Type = rec.Type[0]
	} else {
		reportAnomaly(AnomalyBadType, "Wrong videoSize %q in video %d", rec.Type, ident.ID)
		res.Type = 0
	}
	res.Dimensions = NewDimensions(rec.Width, rec.Height, "videoSize")
	res.Size = rec.Size
	if rec.HasStartTime {
		res.MainFrameTimestamp = rec.StartTime
	}

	if src.Kind == SourceThumbnail {
		src.ThumbnailType = res.Type
	}

	res.FileID = RegisterSize(reg, src, ident, res.Size, FormatMPEG4)
	metrics.DecodesTotal.WithLabelValues("animation", "ok").Inc()
	return AnimationResult{Size: res, Type: res.Type}
}

// DecodeSecretThumbnail registers an inline thumbnail received over a
// secret chat, where no server-side identity exists. A random negative
// remote ID is generated for it and the bytes are stored immediately.
// Empty input produces an empty descriptor.
func DecodeSecretThumbnail(reg Registrar, owner ChatRef, data []byte, width, height int32) PhotoSize {
	if len(data) == 0 {
		metrics.DecodesTotal.WithLabelValues("secret_thumbnail", "empty").Inc()
		return PhotoSize{}
	}
	res := PhotoSize{
		Type:       't',
		Dimensions: NewDimensions(width, height, "secretThumbnail"),
		Size:       int32(len(data)),
	}

	photoID := -randomInt63()
	res.FileID = reg.Register(RemoteFile{
		Role:          RoleEncryptedThumbnail,
		RemoteID:      photoID,
		Owner:         owner,
		Size:          res.Size,
		SuggestedName: fmt.Sprintf("%d.jpg", uint64(photoID)),
		Origin:        OriginServer,
	})
	reg.SetContent(res.FileID, data)

	metrics.DecodesTotal.WithLabelValues("secret_thumbnail", "ok").Inc()
	return res
}

func randomInt63() int64 {
	var buf [8]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			panic(err)
		}
		if v := int64(binary.BigEndian.Uint64(buf[:]) >> 1); v != 0 {
			return v
		}
	}
}
