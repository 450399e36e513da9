package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"thumbnail-normalizer/internal/logging"
	"thumbnail-normalizer/internal/photosize"
)

func fileIDFromRequest(r *http.Request) (photosize.FileID, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return photosize.FileID(id), err
}

// GetFile returns the stored location of a registered file.
func (h *Handlers) GetFile(w http.ResponseWriter, r *http.Request) {
	id, err := fileIDFromRequest(r)
	if err != nil {
		writeJSONError(w, "invalid file ID", http.StatusBadRequest)
		return
	}

	f, err := h.registry.File(r.Context(), id)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, f)
}

// GetFileContent returns the inline bytes stored for a registered file.
// The content type reflects what the bytes are: every inline blob stored
// by the decoders is JPEG data.
func (h *Handlers) GetFileContent(w http.ResponseWriter, r *http.Request) {
	id, err := fileIDFromRequest(r)
	if err != nil {
		writeJSONError(w, "invalid file ID", http.StatusBadRequest)
		return
	}

	data, err := h.registry.Content(r.Context(), id)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		logging.Error("failed to write content response: %v", err)
	}
}

type resolveRequest struct {
	PersistentID string `json:"persistentId"`
	Role         string `json:"role"`
}

type resolveResponse struct {
	ID photosize.FileID `json:"id"`
}

// ResolvePersistentID maps a persistent ID back to its registered handle.
func (h *Handlers) ResolvePersistentID(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	role, err := photosize.ParseFileRole(req.Role)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := h.registry.FromPersistentID(req.PersistentID, role)
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, resolveResponse{ID: id})
}
