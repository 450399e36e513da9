package handlers

import (
	"fmt"

	"thumbnail-normalizer/internal/photosize"
)

// The envelope types below are the JSON shapes of the wire records. Each
// sealed record set is flattened into one struct with a kind
// discriminator; toWire validates the discriminator and rebuilds the
// typed record.

type sourceSpec struct {
	Kind          string `json:"kind"`
	Role          string `json:"role"`
	ThumbnailType byte   `json:"thumbnailType,omitempty"`
}

func (s sourceSpec) toSource() (photosize.Source, error) {
	var src photosize.Source
	switch s.Kind {
	case "legacy":
		src.Kind = photosize.SourceLegacy
	case "thumbnail":
		src.Kind = photosize.SourceThumbnail
	case "chat_photo":
		src.Kind = photosize.SourceChatPhoto
	case "sticker_set_thumbnail":
		src.Kind = photosize.SourceStickerSetThumbnail
	default:
		return src, fmt.Errorf("unknown source kind %q", s.Kind)
	}
	role, err := photosize.ParseFileRole(s.Role)
	if err != nil {
		return src, err
	}
	src.Role = role
	src.ThumbnailType = s.ThumbnailType
	return src, nil
}

type identitySpec struct {
	ID            int64             `json:"id"`
	AccessHash    int64             `json:"accessHash,omitempty"`
	FileReference []byte            `json:"fileReference,omitempty"`
	Endpoint      int32             `json:"endpoint,omitempty"`
	Owner         photosize.ChatRef `json:"owner"`
}

func (s identitySpec) toIdentity() photosize.RemoteIdentity {
	return photosize.RemoteIdentity{
		ID:            s.ID,
		AccessHash:    s.AccessHash,
		FileReference: s.FileReference,
		Endpoint:      s.Endpoint,
		Owner:         s.Owner,
	}
}

type thumbnailRecordSpec struct {
	Kind   string  `json:"kind"`
	Type   string  `json:"type,omitempty"`
	Width  int32   `json:"width,omitempty"`
	Height int32   `json:"height,omitempty"`
	Size   int32   `json:"size,omitempty"`
	Bytes  []byte  `json:"bytes,omitempty"`
	Sizes  []int32 `json:"sizes,omitempty"`
}

func (s thumbnailRecordSpec) toWire() (photosize.ThumbnailSize, error) {
	switch s.Kind {
	case "empty":
		return photosize.SizeEmpty{}, nil
	case "plain":
		return photosize.SizePlain{Type: s.Type, Width: s.Width, Height: s.Height, Size: s.Size}, nil
	case "cached":
		return photosize.SizeCached{Type: s.Type, Width: s.Width, Height: s.Height, Bytes: s.Bytes}, nil
	case "stripped":
		return photosize.SizeStripped{Bytes: s.Bytes}, nil
	case "progressive":
		return photosize.SizeProgressive{Type: s.Type, Width: s.Width, Height: s.Height, Sizes: s.Sizes}, nil
	case "path":
		return photosize.SizePath{Bytes: s.Bytes}, nil
	}
	return nil, fmt.Errorf("unknown thumbnail record kind %q", s.Kind)
}

type videoSizeSpec struct {
	Type      string   `json:"type"`
	Width     int32    `json:"width"`
	Height    int32    `json:"height"`
	Size      int32    `json:"size"`
	StartTime *float64 `json:"startTime,omitempty"`
}

func (s videoSizeSpec) toWire() photosize.VideoSize {
	v := photosize.VideoSize{
		Type:   s.Type,
		Width:  s.Width,
		Height: s.Height,
		Size:   s.Size,
	}
	if s.StartTime != nil {
		v.HasStartTime = true
		v.StartTime = *s.StartTime
	}
	return v
}

type attributeSpec struct {
	Kind     string  `json:"kind"`
	Width    int32   `json:"width,omitempty"`
	Height   int32   `json:"height,omitempty"`
	Name     string  `json:"name,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Title    string  `json:"title,omitempty"`
}

func (s attributeSpec) toWire() (photosize.DocumentAttribute, error) {
	switch s.Kind {
	case "image_size":
		return photosize.AttributeImageSize{Width: s.Width, Height: s.Height}, nil
	case "filename":
		return photosize.AttributeFilename{Name: s.Name}, nil
	case "animated":
		return photosize.AttributeAnimated{}, nil
	case "sticker":
		return photosize.AttributeSticker{}, nil
	case "has_stickers":
		return photosize.AttributeHasStickers{}, nil
	case "video":
		return photosize.AttributeVideo{Duration: s.Duration, Width: s.Width, Height: s.Height}, nil
	case "audio":
		return photosize.AttributeAudio{Duration: int32(s.Duration), Title: s.Title}, nil
	}
	return nil, fmt.Errorf("unknown document attribute kind %q", s.Kind)
}

type webDocumentSpec struct {
	Kind       string          `json:"kind"`
	URL        string          `json:"url"`
	AccessHash int64           `json:"accessHash,omitempty"`
	Size       int32           `json:"size,omitempty"`
	MimeType   string          `json:"mimeType,omitempty"`
	Attributes []attributeSpec `json:"attributes,omitempty"`
}

func (s *webDocumentSpec) toWire() (photosize.WebDocumentRecord, error) {
	if s == nil {
		return nil, nil
	}
	attrs := make([]photosize.DocumentAttribute, 0, len(s.Attributes))
	for _, a := range s.Attributes {
		attr, err := a.toWire()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	switch s.Kind {
	case "direct":
		return photosize.WebDocument{
			URL:        s.URL,
			AccessHash: s.AccessHash,
			Size:       s.Size,
			MimeType:   s.MimeType,
			Attributes: attrs,
		}, nil
	case "no_proxy":
		return photosize.WebDocumentNoProxy{
			URL:        s.URL,
			Size:       s.Size,
			MimeType:   s.MimeType,
			Attributes: attrs,
		}, nil
	}
	return nil, fmt.Errorf("unknown web document kind %q", s.Kind)
}

// typeTag renders a resolved type tag for JSON: the unknown tag 0 becomes
// the empty string.
func typeTag(t byte) string {
	if t == 0 {
		return ""
	}
	return string(t)
}
