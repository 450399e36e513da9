package photosize

// ThumbnailSize is one of the six wire encodings of a photo thumbnail.
// The set is sealed; decoders switch over it exhaustively and a new wire
// shape shows up as a compile error at the call sites that build records,
// not as a runtime panic.
type ThumbnailSize interface {
	isThumbnailSize()
}

// SizeEmpty is a placeholder record carrying no thumbnail at all.
type SizeEmpty struct{}

// SizePlain is a remote thumbnail with declared dimensions and byte size.
type SizePlain struct {
	Type   string
	Width  int32
	Height int32
	Size   int32
}

// SizeCached is a remote thumbnail whose full bytes ride along inline.
type SizeCached struct {
	Type   string
	Width  int32
	Height int32
	Bytes  []byte
}

// SizeStripped carries only a packed inline minithumbnail blob.
type SizeStripped struct {
	Bytes []byte
}

// SizeProgressive is a progressive JPEG delivered as successive scans;
// Sizes holds the byte length of each scan.
type SizeProgressive struct {
	Type   string
	Width  int32
	Height int32
	Sizes  []int32
}

// SizePath carries only inline vector path data for sticker outlines.
type SizePath struct {
	Bytes []byte
}

func (SizeEmpty) isThumbnailSize()       {}
func (SizePlain) isThumbnailSize()       {}
func (SizeCached) isThumbnailSize()      {}
func (SizeStripped) isThumbnailSize()    {}
func (SizeProgressive) isThumbnailSize() {}
func (SizePath) isThumbnailSize()        {}

// VideoSize is the wire shape of an animated thumbnail of a short looping
// video. StartTime is only meaningful when HasStartTime is set, mirroring
// the optional-field flag bit of the wire encoding.
type VideoSize struct {
	Type         string
	Width        int32
	Height       int32
	Size         int32
	HasStartTime bool
	StartTime    float64
}

// WebDocumentRecord is one of the two wire shapes of an externally hosted
// thumbnail. The set is sealed like ThumbnailSize.
type WebDocumentRecord interface {
	isWebDocumentRecord()
}

// WebDocument references a thumbnail by direct URL plus access credential.
type WebDocument struct {
	URL        string
	AccessHash int64
	Size       int32
	MimeType   string
	Attributes []DocumentAttribute
}

// WebDocumentNoProxy references a thumbnail by an opaque string that must
// resolve through a previously registered persistent identity.
type WebDocumentNoProxy struct {
	URL        string
	Size       int32
	MimeType   string
	Attributes []DocumentAttribute
}

func (WebDocument) isWebDocumentRecord()        {}
func (WebDocumentNoProxy) isWebDocumentRecord() {}

// DocumentAttribute is one of the attribute records a web document may
// carry. Only the image-size attribute is consumed here; the media
// attributes are a data-model violation when attached to a thumbnail.
type DocumentAttribute interface {
	isDocumentAttribute()
}

// AttributeImageSize declares the pixel dimensions of the document.
type AttributeImageSize struct {
	Width  int32
	Height int32
}

// AttributeFilename declares the original file name of the document.
type AttributeFilename struct {
	Name string
}

// AttributeAnimated marks the document as a soundless looping video.
type AttributeAnimated struct{}

// AttributeSticker marks the document as a sticker.
type AttributeSticker struct{}

// AttributeHasStickers marks the document as carrying attached stickers.
type AttributeHasStickers struct{}

// AttributeVideo declares video metadata for the document.
type AttributeVideo struct {
	Duration float64
	Width    int32
	Height   int32
}

// AttributeAudio declares audio metadata for the document.
type AttributeAudio struct {
	Duration int32
	Title    string
}

func (AttributeImageSize) isDocumentAttribute()   {}
func (AttributeFilename) isDocumentAttribute()    {}
func (AttributeAnimated) isDocumentAttribute()    {}
func (AttributeSticker) isDocumentAttribute()     {}
func (AttributeHasStickers) isDocumentAttribute() {}
func (AttributeVideo) isDocumentAttribute()       {}
func (AttributeAudio) isDocumentAttribute()       {}
