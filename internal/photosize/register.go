package photosize

import (
	"thumbnail-normalizer/internal/logging"
)

// Origin records who supplied a remote file location.
type Origin string

const (
	// OriginServer marks a location received from the server.
	OriginServer Origin = "server"
	// OriginUser marks a location received from the user, as happens in
	// secret chats where the server never sees the file.
	OriginUser Origin = "user"
)

// ChatRef identifies the conversation that owns a file.
type ChatRef struct {
	ID     int64 `json:"id"`
	Secret bool  `json:"secret,omitempty"`
}

// RemoteIdentity carries the wire-supplied identity of the photo a
// thumbnail record belongs to.
type RemoteIdentity struct {
	ID            int64
	AccessHash    int64
	FileReference []byte
	// Endpoint is the transport endpoint the file is downloadable from.
	Endpoint int32
	Owner    ChatRef
}

// RemoteFile is the full remote location handed to the registrar.
type RemoteFile struct {
	Role          FileRole
	RemoteID      int64
	AccessHash    int64
	FileReference []byte
	Endpoint      int32
	// URL is set instead of RemoteID for web-referenced files.
	URL           string
	Owner         ChatRef
	Size          int32
	ExpectedSize  int32
	SuggestedName string
	Origin        Origin
}

// Registrar assigns deduplicated opaque handles to remote file locations.
// Register never fails from the decoder's perspective; error and dedup
// policy belong to the registrar.
type Registrar interface {
	Register(remote RemoteFile) FileID
	SetContent(id FileID, data []byte)
	FromPersistentID(persistentID string, role FileRole) (FileID, error)
}

// RegisterSize hands a decoded descriptor's identity fields to the
// registrar and returns the assigned handle. The suggested name combines
// the source's canonical name with the extension of the requested format.
func RegisterSize(reg Registrar, src Source, ident RemoteIdentity, size int32, format Format) FileID {
	logging.Debug("Registering %s photo %d of role %s from endpoint %d",
		format, ident.ID, src.Role, ident.Endpoint)
	origin := OriginServer
	if ident.Owner.Secret {
		origin = OriginUser
	}
	return reg.Register(RemoteFile{
		Role:          src.Role,
		RemoteID:      ident.ID,
		AccessHash:    ident.AccessHash,
		FileReference: ident.FileReference,
		Endpoint:      ident.Endpoint,
		Owner:         ident.Owner,
		Size:          size,
		SuggestedName: src.UniqueName(ident.ID) + "." + format.String(),
		Origin:        origin,
	})
}
