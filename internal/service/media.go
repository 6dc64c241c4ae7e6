package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"log"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/Zed-Kryp/BlogSphere/internal/config"
	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/repository"
	"github.com/Zed-Kryp/BlogSphere/internal/storage"
)

// extensionByType covers the content types clients actually send; anything
// else falls back to mime.ExtensionsByType and then ".bin".
var extensionByType = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
}

// MediaService handles post media uploads (proxied through the API) and
// presigned direct uploads for profile pictures.
type MediaService struct {
	store    storage.ObjectStore
	profiles repository.ProfileRepository
	cfg      *config.Config
}

func NewMediaService(store storage.ObjectStore, profiles repository.ProfileRepository, cfg *config.Config) *MediaService {
	return &MediaService{store: store, profiles: profiles, cfg: cfg}
}

// Upload decodes a base64 payload, classifies it by content type into the
// posts-media folders and stores it under a fresh UUID key. For images a
// thumbnail is generated best-effort; a failed thumbnail never fails the
// upload.
func (s *MediaService) Upload(ctx context.Context, req model.UploadRequest) (*model.UploadResult, error) {
	if req.FileData == "" {
		return nil, model.ErrFileDataRequired
	}

	payload := req.FileData
	// Data URLs arrive as "data:image/png;base64,...."; keep only the payload.
	if strings.HasPrefix(payload, "data:") {
		if idx := strings.Index(payload, ","); idx >= 0 {
			payload = payload[idx+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, model.ErrInvalidFileData
	}

	contentType := req.ContentType
	if contentType == "" && req.FileName != "" {
		contentType = mime.TypeByExtension(filepath.Ext(req.FileName))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	folder := model.MediaFolderOther
	switch {
	case strings.HasPrefix(contentType, "image/"):
		folder = model.MediaFolderImages
	case strings.HasPrefix(contentType, "video/"):
		folder = model.MediaFolderVideos
	}

	id := uuid.NewString()
	key := folder + id + extensionFor(contentType)
	if err := s.store.Put(ctx, key, data, contentType); err != nil {
		return nil, err
	}

	result := &model.UploadResult{
		Message: "File uploaded successfully",
		URL:     s.objectURL(key),
	}
	if folder == model.MediaFolderImages {
		if thumbKey := s.putThumbnail(ctx, id, data); thumbKey != "" {
			result.ThumbnailURL = s.objectURL(thumbKey)
		}
	}
	return result, nil
}

// PresignProfileUpload issues a presigned PUT URL for a profile picture and
// points the user's profile at the object's eventual public URL. Only image
// content types are accepted.
func (s *MediaService) PresignProfileUpload(ctx context.Context, req model.ProfileUploadRequest) (*model.ProfileUploadResult, error) {
	if req.UserID == "" || req.FileName == "" || req.FileType == "" {
		return nil, model.Validation("userId, fileName and fileType are required")
	}
	if !strings.HasPrefix(req.FileType, "image/") {
		return nil, model.ErrNotAnImage
	}

	ext := filepath.Ext(req.FileName)
	if ext == "" {
		ext = extensionFor(req.FileType)
	}
	key := model.ProfilePictureFolder + req.UserID + "-" + uuid.NewString() + ext

	uploadURL, err := s.store.PresignPut(ctx, key, req.FileType, model.PresignExpirySeconds*time.Second)
	if err != nil {
		return nil, fmt.Errorf("presign profile upload: %w", err)
	}

	fileURL := s.objectURL(key)
	if _, err := s.profiles.Update(ctx, req.UserID, model.Record{model.AttrProfilePictureURL: fileURL}); err != nil {
		log.Printf("[ERROR] failed to update profile picture for %s: %v", req.UserID, err)
		return nil, model.ErrProfilePictureUpdate
	}

	return &model.ProfileUploadResult{
		Message:   "Upload URL generated successfully",
		UploadURL: uploadURL,
		FileURL:   fileURL,
	}, nil
}

// putThumbnail renders a width-bounded JPEG thumbnail and stores it. Returns
// the object key, or "" when the source could not be decoded or stored.
func (s *MediaService) putThumbnail(ctx context.Context, id string, data []byte) string {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("[ERROR] failed to decode image for thumbnail: %v", err)
		return ""
	}

	thumb := imaging.Resize(img, model.ThumbnailWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(jpeg.DefaultQuality)); err != nil {
		log.Printf("[ERROR] failed to encode thumbnail: %v", err)
		return ""
	}

	key := model.MediaFolderThumbnails + id + ".jpg"
	if err := s.store.Put(ctx, key, buf.Bytes(), "image/jpeg"); err != nil {
		log.Printf("[ERROR] failed to store thumbnail %s: %v", key, err)
		return ""
	}
	return key
}

func (s *MediaService) objectURL(key string) string {
	return strings.TrimSuffix(s.cfg.S3PublicURL, "/") + "/" + key
}

func extensionFor(contentType string) string {
	if ext, ok := extensionByType[contentType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
