package handlers

import (
	"net/http"
	"strconv"

	"thumbnail-normalizer/internal/logging"
	"thumbnail-normalizer/internal/photosize"
)

type expandMinithumbnailRequest struct {
	Data []byte `json:"data"`
}

// ExpandMinithumbnail reconstructs a packed minithumbnail blob into a
// complete baseline JPEG and returns the image bytes. The reconstructed
// dimensions travel in X-Image-Width and X-Image-Height headers.
func (h *Handlers) ExpandMinithumbnail(w http.ResponseWriter, r *http.Request) {
	var req expandMinithumbnailRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	m := photosize.ExpandMinithumbnail(req.Data)
	if m == nil {
		writeJSONError(w, "not a packed minithumbnail", http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("X-Image-Width", strconv.Itoa(int(m.Width)))
	w.Header().Set("X-Image-Height", strconv.Itoa(int(m.Height)))
	w.Header().Set("Content-Length", strconv.Itoa(len(m.Data)))
	if _, err := w.Write(m.Data); err != nil {
		logging.Error("failed to write minithumbnail response: %v", err)
	}
}
