package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/Zed-Kryp/BlogSphere/internal/httputil"
	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/service"
)

type MediaHandler struct {
	media *service.MediaService
}

func NewMediaHandler(media *service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// Upload handles POST /upload-media. The body is either a JSON document with
// fileData/fileName/contentType, or a raw base64 string with the content type
// taken from the Content-Type header.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	req, err := decodeUploadRequest(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	result, err := h.media.Upload(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrFileDataRequired):
			httputil.WriteBadRequest(w, "fileData is required")
		case errors.Is(err, model.ErrInvalidFileData):
			httputil.WriteBadRequest(w, "fileData is not valid base64")
		default:
			log.Printf("[ERROR] Upload failed: %v", err)
			httputil.WriteInternalError(w, "Failed to upload file")
		}
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// ProfileUploadURL handles POST /profile/upload-url
func (h *MediaHandler) ProfileUploadURL(w http.ResponseWriter, r *http.Request) {
	var req model.ProfileUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	result, err := h.media.PresignProfileUpload(r.Context(), req)
	if err != nil {
		var verr *model.ValidationError
		switch {
		case errors.As(err, &verr):
			httputil.WriteBadRequest(w, verr.Msg)
		case errors.Is(err, model.ErrNotAnImage):
			httputil.WriteBadRequest(w, "Only image files are allowed")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "User not found")
		case errors.Is(err, model.ErrProfilePictureUpdate):
			httputil.WriteInternalError(w, "Failed to update profile with new picture URL")
		default:
			log.Printf("[ERROR] ProfileUploadURL failed: %v", err)
			httputil.WriteInternalError(w, "Failed to generate upload URL")
		}
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func decodeUploadRequest(r *http.Request) (model.UploadRequest, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		var req model.UploadRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}

	// Raw base64 body; the transport header names the media type.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return model.UploadRequest{}, err
	}
	return model.UploadRequest{
		FileData:    strings.TrimSpace(string(body)),
		ContentType: contentType,
	}, nil
}
