package photosize

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"thumbnail-normalizer/internal/metrics"
)

func anomalyCount(kind string) float64 {
	return testutil.ToFloat64(metrics.DecodeAnomalies.WithLabelValues(kind))
}

func testIdentity() RemoteIdentity {
	return RemoteIdentity{
		ID:            12345,
		AccessHash:    67890,
		FileReference: []byte{1, 2, 3},
		Endpoint:      2,
		Owner:         ChatRef{ID: 42},
	}
}

func TestDecodeThumbnailEmpty(t *testing.T) {
	reg := newFakeRegistrar()
	res := DecodeThumbnail(reg, Source{Kind: SourceThumbnail, Role: RoleThumbnail}, testIdentity(), SizeEmpty{}, FormatJPEG)
	if res.Size.FileID.IsValid() || res.Content != nil || res.Type != 0 {
		t.Errorf("empty record decoded to %+v, want zero result", res)
	}
	if len(reg.registered) != 0 {
		t.Error("empty record triggered a registration")
	}
}

func TestDecodeThumbnailPlain(t *testing.T) {
	reg := newFakeRegistrar()
	rec := SizePlain{Type: "m", Width: 320, Height: 240, Size: 5000}
	res := DecodeThumbnail(reg, Source{Kind: SourceThumbnail, Role: RoleThumbnail}, testIdentity(), rec, FormatJPEG)

	if res.Type != 'm' {
		t.Errorf("resolved type = %d, want 'm'", res.Type)
	}
	if res.Size.Dimensions != (Dimensions{320, 240}) {
		t.Errorf("dimensions = %v, want (320, 240)", res.Size.Dimensions)
	}
	if res.Size.Size != 5000 {
		t.Errorf("size = %d, want 5000", res.Size.Size)
	}
	if !res.Size.FileID.IsValid() {
		t.Error("plain record was not registered")
	}
	if len(reg.registered) != 1 {
		t.Fatalf("registrations = %d, want 1", len(reg.registered))
	}

	remote := reg.registered[0]
	if remote.RemoteID != 12345 || remote.AccessHash != 67890 || remote.Endpoint != 2 {
		t.Errorf("registered identity = %+v, want wire identity", remote)
	}
	// The resolved tag is folded into the suggested name for thumbnail sources.
	if want := "12345_109.jpg"; remote.SuggestedName != want {
		t.Errorf("suggested name = %q, want %q", remote.SuggestedName, want)
	}
	if len(reg.contents) != 0 {
		t.Error("plain record stored inline content")
	}
}

func TestDecodeThumbnailCached(t *testing.T) {
	reg := newFakeRegistrar()
	payload := []byte("jpeg bytes here")
	rec := SizeCached{Type: "x", Width: 800, Height: 600, Bytes: payload}
	res := DecodeThumbnail(reg, Source{Kind: SourceLegacy, Role: RolePhoto}, testIdentity(), rec, FormatJPEG)

	if res.Size.Size != int32(len(payload)) {
		t.Errorf("size = %d, want payload length %d", res.Size.Size, len(payload))
	}
	stored, ok := reg.contents[res.Size.FileID]
	if !ok {
		t.Fatal("cached bytes were not stored against the handle")
	}
	if !bytes.Equal(stored, payload) {
		t.Error("stored content differs from wire payload")
	}
	if res.Content != nil {
		t.Error("cached record leaked inline content in the result")
	}
}

func TestDecodeThumbnailStripped(t *testing.T) {
	packed := []byte{0x01, 10, 20, 0xAA}

	t.Run("jpeg format", func(t *testing.T) {
		reg := newFakeRegistrar()
		res := DecodeThumbnail(reg, Source{Kind: SourceThumbnail, Role: RoleThumbnail}, testIdentity(), SizeStripped{Bytes: packed}, FormatJPEG)
		if !bytes.Equal(res.Content, packed) {
			t.Errorf("inline content = %v, want packed bytes", res.Content)
		}
		if res.Size.FileID.IsValid() || len(reg.registered) != 0 {
			t.Error("inline-only record was registered")
		}
	})

	t.Run("format mismatch", func(t *testing.T) {
		reg := newFakeRegistrar()
		before := anomalyCount(AnomalyFormatMismatch)
		res := DecodeThumbnail(reg, Source{Kind: SourceThumbnail, Role: RoleThumbnail}, testIdentity(), SizeStripped{Bytes: packed}, FormatPNG)
		if res.Content != nil || res.Size.FileID.IsValid() {
			t.Errorf("mismatched record decoded to %+v, want zero result", res)
		}
		if len(reg.registered) != 0 {
			t.Error("rejected record was registered")
		}
		if anomalyCount(AnomalyFormatMismatch)-before != 1 {
			t.Error("format mismatch was not reported")
		}
	})
}

func TestDecodeThumbnailProgressive(t *testing.T) {
	t.Run("sorts and splits scan sizes", func(t *testing.T) {
		reg := newFakeRegistrar()
		rec := SizeProgressive{Type: "y", Width: 1280, Height: 720, Sizes: []int32{100, 50, 300}}
		res := DecodeThumbnail(reg, Source{Kind: SourceLegacy, Role: RolePhoto}, testIdentity(), rec, FormatJPEG)

		if res.Size.Size != 300 {
			t.Errorf("size = %d, want 300", res.Size.Size)
		}
		want := []int32{50, 100}
		if len(res.Size.ProgressiveSizes) != len(want) {
			t.Fatalf("progressive sizes = %v, want %v", res.Size.ProgressiveSizes, want)
		}
		for i, s := range want {
			if res.Size.ProgressiveSizes[i] != s {
				t.Fatalf("progressive sizes = %v, want %v", res.Size.ProgressiveSizes, want)
			}
		}
		// The caller's slice must stay untouched.
		if rec.Sizes[0] != 100 || rec.Sizes[1] != 50 || rec.Sizes[2] != 300 {
			t.Error("decode mutated the wire record's scan sizes")
		}
	})

	t.Run("single scan", func(t *testing.T) {
		reg := newFakeRegistrar()
		rec := SizeProgressive{Type: "y", Width: 100, Height: 100, Sizes: []int32{777}}
		res := DecodeThumbnail(reg, Source{Kind: SourceLegacy, Role: RolePhoto}, testIdentity(), rec, FormatJPEG)
		if res.Size.Size != 777 || len(res.Size.ProgressiveSizes) != 0 {
			t.Errorf("got size %d with scans %v, want 777 with none", res.Size.Size, res.Size.ProgressiveSizes)
		}
	})

	t.Run("empty scan list", func(t *testing.T) {
		reg := newFakeRegistrar()
		before := anomalyCount(AnomalyEmptyScanList)
		rec := SizeProgressive{Type: "y", Width: 100, Height: 100}
		res := DecodeThumbnail(reg, Source{Kind: SourceLegacy, Role: RolePhoto}, testIdentity(), rec, FormatJPEG)
		if res.Size.FileID.IsValid() || res.Content != nil {
			t.Errorf("empty scan list decoded to %+v, want zero result", res)
		}
		if len(reg.registered) != 0 {
			t.Error("rejected record was registered")
		}
		if anomalyCount(AnomalyEmptyScanList)-before != 1 {
			t.Error("empty scan list was not reported")
		}
	})
}

func TestDecodeThumbnailPath(t *testing.T) {
	path := []byte("M 0,0 L 10,10")

	for _, format := range []Format{FormatTGS, FormatWebP, FormatWebM} {
		t.Run(format.String(), func(t *testing.T) {
			reg := newFakeRegistrar()
			res := DecodeThumbnail(reg, Source{Kind: SourceStickerSetThumbnail, Role: RoleSticker}, testIdentity(), SizePath{Bytes: path}, format)
			if !bytes.Equal(res.Content, path) {
				t.Errorf("inline content = %v, want path bytes", res.Content)
			}
			if len(reg.registered) != 0 {
				t.Error("inline-only record was registered")
			}
		})
	}

	t.Run("rejected for jpeg", func(t *testing.T) {
		reg := newFakeRegistrar()
		before := anomalyCount(AnomalyFormatMismatch)
		res := DecodeThumbnail(reg, Source{Kind: SourceLegacy, Role: RolePhoto}, testIdentity(), SizePath{Bytes: path}, FormatJPEG)
		if res.Content != nil {
			t.Error("mismatched vector path returned content")
		}
		if anomalyCount(AnomalyFormatMismatch)-before != 1 {
			t.Error("format mismatch was not reported")
		}
	})
}

func TestDecodeThumbnailBadTypeTag(t *testing.T) {
	tests := []struct {
		name string
		typ  string
	}{
		{"empty", ""},
		{"two characters", "ab"},
		{"non ascii", "\xc3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := newFakeRegistrar()
			before := anomalyCount(AnomalyBadType)
			rec := SizePlain{Type: tt.typ, Width: 100, Height: 100, Size: 10}
			res := DecodeThumbnail(reg, Source{Kind: SourceThumbnail, Role: RoleThumbnail}, testIdentity(), rec, FormatJPEG)

			if res.Type != 0 {
				t.Errorf("resolved type = %d, want 0", res.Type)
			}
			if anomalyCount(AnomalyBadType)-before != 1 {
				t.Error("bad type tag was not reported")
			}
			// Degraded, not aborted: registration still happens.
			if !res.Size.FileID.IsValid() {
				t.Error("descriptor with coerced tag was not registered")
			}
			if want := "12345_0.jpg"; reg.registered[0].SuggestedName != want {
				t.Errorf("suggested name = %q, want %q", reg.registered[0].SuggestedName, want)
			}
		})
	}
}

func TestDecodeAnimation(t *testing.T) {
	t.Run("with start time", func(t *testing.T) {
		reg := newFakeRegistrar()
		rec := VideoSize{Type: "v", Width: 640, Height: 360, Size: 9000, HasStartTime: true, StartTime: 1.5}
		res := DecodeAnimation(reg, Source{Kind: SourceThumbnail, Role: RoleThumbnail}, testIdentity(), rec)

		if res.Type != 'v' {
			t.Errorf("resolved type = %d, want 'v'", res.Type)
		}
		if res.Size.MainFrameTimestamp != 1.5 {
			t.Errorf("timestamp = %v, want 1.5", res.Size.MainFrameTimestamp)
		}
		if !res.Size.FileID.IsValid() {
			t.Error("animation size was not registered")
		}
		// Registration always targets the looping video format.
		if !strings.HasSuffix(reg.registered[0].SuggestedName, ".mp4") {
			t.Errorf("suggested name = %q, want .mp4 extension", reg.registered[0].SuggestedName)
		}
	})

	t.Run("without start time", func(t *testing.T) {
		reg := newFakeRegistrar()
		rec := VideoSize{Type: "u", Width: 640, Height: 360, Size: 9000, StartTime: 3.0}
		res := DecodeAnimation(reg, Source{Kind: SourceChatPhoto, Role: RoleProfilePhoto}, testIdentity(), rec)
		if res.Size.MainFrameTimestamp != 0 {
			t.Errorf("timestamp = %v, want 0 when the flag bit is unset", res.Size.MainFrameTimestamp)
		}
		if res.Type != 'u' {
			t.Errorf("resolved type = %d, want 'u'", res.Type)
		}
	})

	t.Run("wrong tag", func(t *testing.T) {
		reg := newFakeRegistrar()
		before := anomalyCount(AnomalyBadType)
		rec := VideoSize{Type: "x", Width: 640, Height: 360, Size: 9000}
		res := DecodeAnimation(reg, Source{Kind: SourceThumbnail, Role: RoleThumbnail}, testIdentity(), rec)

		if res.Type != 0 {
			t.Errorf("resolved type = %d, want 0", res.Type)
		}
		if anomalyCount(AnomalyBadType)-before != 1 {
			t.Error("wrong video tag was not reported")
		}
		if !res.Size.FileID.IsValid() {
			t.Error("animation with coerced tag was not registered")
		}
	})
}

func TestDecodeSecretThumbnail(t *testing.T) {
	t.Run("empty bytes", func(t *testing.T) {
		reg := newFakeRegistrar()
		res := DecodeSecretThumbnail(reg, ChatRef{ID: 9, Secret: true}, nil, 90, 60)
		if res.FileID.IsValid() || len(reg.registered) != 0 {
			t.Errorf("empty secret thumbnail decoded to %+v", res)
		}
	})

	t.Run("registers and stores", func(t *testing.T) {
		reg := newFakeRegistrar()
		data := []byte("secret jpeg")
		res := DecodeSecretThumbnail(reg, ChatRef{ID: 9, Secret: true}, data, 90, 60)

		if res.Type != 't' {
			t.Errorf("type = %d, want 't'", res.Type)
		}
		if res.Size != int32(len(data)) {
			t.Errorf("size = %d, want %d", res.Size, len(data))
		}
		if !res.FileID.IsValid() {
			t.Fatal("secret thumbnail was not registered")
		}
		remote := reg.registered[0]
		if remote.RemoteID >= 0 {
			t.Errorf("remote ID = %d, want a generated negative ID", remote.RemoteID)
		}
		if remote.Role != RoleEncryptedThumbnail {
			t.Errorf("role = %v, want encrypted thumbnail", remote.Role)
		}
		if !bytes.Equal(reg.contents[res.FileID], data) {
			t.Error("secret thumbnail bytes were not stored")
		}
	})
}
