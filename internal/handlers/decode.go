package handlers

import (
	"net/http"

	"thumbnail-normalizer/internal/photosize"
)

type decodeThumbnailRequest struct {
	Source   sourceSpec          `json:"source"`
	Identity identitySpec        `json:"identity"`
	Format   string              `json:"format"`
	Record   thumbnailRecordSpec `json:"record"`
}

type decodeThumbnailResponse struct {
	Size    *photosize.PhotoSize `json:"size,omitempty"`
	Content []byte               `json:"content,omitempty"`
	Type    string               `json:"type,omitempty"`
}

// DecodeThumbnail normalizes one thumbnail wire record and registers the
// resulting descriptor.
func (h *Handlers) DecodeThumbnail(w http.ResponseWriter, r *http.Request) {
	var req decodeThumbnailRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	src, err := req.Source.toSource()
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	format, err := photosize.ParseFormat(req.Format)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec, err := req.Record.toWire()
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := photosize.DecodeThumbnail(h.registry, src, req.Identity.toIdentity(), rec, format)

	resp := decodeThumbnailResponse{
		Content: res.Content,
		Type:    typeTag(res.Type),
	}
	if res.Size.FileID.IsValid() {
		size := res.Size
		resp.Size = &size
	}
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, resp)
}

type decodeAnimationRequest struct {
	Source   sourceSpec    `json:"source"`
	Identity identitySpec  `json:"identity"`
	Record   videoSizeSpec `json:"record"`
}

type decodeAnimationResponse struct {
	Size photosize.AnimationSize `json:"size"`
	Type string                  `json:"type,omitempty"`
}

// DecodeAnimation normalizes a video thumbnail wire record.
func (h *Handlers) DecodeAnimation(w http.ResponseWriter, r *http.Request) {
	var req decodeAnimationRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	src, err := req.Source.toSource()
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := photosize.DecodeAnimation(h.registry, src, req.Identity.toIdentity(), req.Record.toWire())

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, decodeAnimationResponse{Size: res.Size, Type: typeTag(res.Type)})
}

type decodeWebDocumentRequest struct {
	Role     string            `json:"role"`
	Owner    photosize.ChatRef `json:"owner"`
	Document *webDocumentSpec  `json:"document"`
}

type decodeWebDocumentResponse struct {
	Size photosize.PhotoSize `json:"size"`
}

// DecodeWebDocument extracts a descriptor from an externally hosted
// thumbnail record.
func (h *Handlers) DecodeWebDocument(w http.ResponseWriter, r *http.Request) {
	var req decodeWebDocumentRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	role, err := photosize.ParseFileRole(req.Role)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec, err := req.Document.toWire()
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	size := photosize.DecodeWebDocument(h.registry, role, req.Owner, rec)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, decodeWebDocumentResponse{Size: size})
}

type decodeSecretThumbnailRequest struct {
	Owner  photosize.ChatRef `json:"owner"`
	Data   []byte            `json:"data"`
	Width  int32             `json:"width"`
	Height int32             `json:"height"`
}

// DecodeSecretThumbnail registers an inline secret-chat thumbnail.
func (h *Handlers) DecodeSecretThumbnail(w http.ResponseWriter, r *http.Request) {
	var req decodeSecretThumbnailRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	size := photosize.DecodeSecretThumbnail(h.registry, req.Owner, req.Data, req.Width, req.Height)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, decodeWebDocumentResponse{Size: size})
}
