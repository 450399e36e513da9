package photosize

import (
	"strings"

	"thumbnail-normalizer/internal/httpurl"
	"thumbnail-normalizer/internal/metrics"
)

// DecodeWebDocument normalizes an externally hosted thumbnail reference.
// Unlike the inline variants there is no partial-success path: a URL that
// does not parse, a proxy reference without a '.', or a persistent ID
// that fails to resolve all yield an empty descriptor. role is the
// output slot the thumbnail is requested for.
func DecodeWebDocument(reg Registrar, role FileRole, owner ChatRef, rec WebDocumentRecord) PhotoSize {
	if rec == nil {
		metrics.DecodesTotal.WithLabelValues("web_document", "empty").Inc()
		return PhotoSize{}
	}

	var fileID FileID
	var attributes []DocumentAttribute
	var size int32
	var mimeType string

	switch rec := rec.(type) {
	case WebDocument:
		u, err := httpurl.Parse(rec.URL)
		if err != nil {
			reportAnomaly(AnomalyBadURL, "Can't parse URL %q: %v", rec.URL, err)
			metrics.DecodesTotal.WithLabelValues("web_document", "empty").Inc()
			return PhotoSize{}
		}
		fileID = reg.Register(RemoteFile{
			Role:          role,
			URL:           u.Full,
			AccessHash:    rec.AccessHash,
			Owner:         owner,
			ExpectedSize:  rec.Size,
			SuggestedName: httpurl.QueryFileName(u.PathQuery),
			Origin:        OriginServer,
		})
		size = rec.Size
		mimeType = rec.MimeType
		attributes = rec.Attributes

	case WebDocumentNoProxy:
		// Not full URL validation, just enough to reject references that
		// cannot possibly name a host or file.
		if !strings.ContainsRune(rec.URL, '.') {
			reportAnomaly(AnomalyBadURL, "Receive invalid URL %q", rec.URL)
			metrics.DecodesTotal.WithLabelValues("web_document", "empty").Inc()
			return PhotoSize{}
		}
		id, err := reg.FromPersistentID(rec.URL, role)
		if err != nil {
			reportAnomaly(AnomalyBadPersistentID, "Can't register URL %q: %v", rec.URL, err)
			metrics.DecodesTotal.WithLabelValues("web_document", "empty").Inc()
			return PhotoSize{}
		}
		fileID = id
		size = rec.Size
		mimeType = rec.MimeType
		attributes = rec.Attributes
	}

	isAnimation := mimeType == "video/mp4"
	isGIF := mimeType == "image/gif"

	var dimensions Dimensions
	for _, attr := range attributes {
		switch attr := attr.(type) {
		case AttributeImageSize:
			dimensions = NewDimensions(attr.Width, attr.Height, "webDocumentAttributeImageSize")
		case AttributeAnimated, AttributeSticker, AttributeHasStickers, AttributeVideo, AttributeAudio:
			// Media attributes on a thumbnail mean an upstream data-model
			// assumption broke; the thumbnail itself is still usable.
			reportAnomaly(AnomalyUnexpectedAttribute, "Unexpected web document attribute %T", attr)
		case AttributeFilename:
		}
	}

	var typ byte
	switch {
	case isAnimation:
		typ = 'v'
	case isGIF:
		typ = 'g'
	case role == RoleThumbnail:
		typ = 't'
	default:
		typ = 'n'
	}

	metrics.DecodesTotal.WithLabelValues("web_document", "ok").Inc()
	return PhotoSize{
		Type:       typ,
		Dimensions: dimensions,
		Size:       size,
		FileID:     fileID,
	}
}
