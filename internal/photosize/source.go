package photosize

import "fmt"

// FileRole is the logical role a registered file plays for its owner.
type FileRole int

const (
	// RolePhoto is a full-resolution photo.
	RolePhoto FileRole = iota
	// RoleProfilePhoto is a user or chat profile photo.
	RoleProfilePhoto
	// RoleThumbnail is a reduced preview of another file.
	RoleThumbnail
	// RoleEncryptedThumbnail is a thumbnail of a secret-chat file.
	RoleEncryptedThumbnail
	// RoleAnimation is a short looping clip.
	RoleAnimation
	// RoleSticker is a sticker image.
	RoleSticker
)

func (r FileRole) String() string {
	switch r {
	case RolePhoto:
		return "photo"
	case RoleProfilePhoto:
		return "profile_photo"
	case RoleThumbnail:
		return "thumbnail"
	case RoleEncryptedThumbnail:
		return "encrypted_thumbnail"
	case RoleAnimation:
		return "animation"
	case RoleSticker:
		return "sticker"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseFileRole maps a role name to its FileRole value.
func ParseFileRole(s string) (FileRole, error) {
	switch s {
	case "photo":
		return RolePhoto, nil
	case "profile_photo":
		return RoleProfilePhoto, nil
	case "thumbnail":
		return RoleThumbnail, nil
	case "encrypted_thumbnail":
		return RoleEncryptedThumbnail, nil
	case "animation":
		return RoleAnimation, nil
	case "sticker":
		return RoleSticker, nil
	}
	return 0, fmt.Errorf("unknown file role %q", s)
}

// SourceKind classifies the identity source a thumbnail record belongs to.
type SourceKind int

const (
	// SourceLegacy is a full legacy photo location.
	SourceLegacy SourceKind = iota
	// SourceThumbnail is the thumbnail slot of another file.
	SourceThumbnail
	// SourceChatPhoto is a chat or channel photo.
	SourceChatPhoto
	// SourceStickerSetThumbnail is the cover of a sticker set.
	SourceStickerSetThumbnail
)

// Source describes where a thumbnail record originated. For
// SourceThumbnail the ThumbnailType slot holds the resolved type tag of
// the decoded size; decoders return the tag they resolved and callers
// thread it into any Source they construct for the same file afterwards.
type Source struct {
	Kind          SourceKind `json:"kind"`
	Role          FileRole   `json:"role"`
	ThumbnailType byte       `json:"thumbnailType,omitempty"`
}

// UniqueName returns the canonical base name for files registered from
// this source. Thumbnail sources fold the resolved type tag into the name
// so each size of the same photo gets a distinct name.
func (s Source) UniqueName(id int64) string {
	if s.Kind == SourceThumbnail {
		return fmt.Sprintf("%d_%d", id, s.ThumbnailType)
	}
	return fmt.Sprintf("%d", id)
}
