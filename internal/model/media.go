package model

import "errors"

// Media storage namespaces. Uploads are classified by MIME type.
const (
	MediaFolderImages     = "posts-media/images/"
	MediaFolderVideos     = "posts-media/videos/"
	MediaFolderOther      = "posts-media/others/"
	MediaFolderThumbnails = "posts-media/thumbnails/"
	ProfilePictureFolder  = "profile-picture/"
)

const (
	// ThumbnailWidth is the bounding width for generated image thumbnails.
	ThumbnailWidth = 480
	// PresignExpirySeconds limits how long a profile upload URL stays valid.
	PresignExpirySeconds = 300
)

// UploadRequest is the JSON body of POST /upload-media. A raw (non-JSON)
// body is mapped onto FileData with ContentType taken from the transport
// header.
type UploadRequest struct {
	FileData    string `json:"fileData"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// UploadResult is the success body of POST /upload-media.
type UploadResult struct {
	Message      string `json:"message"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// ProfileUploadRequest is the body of POST /profile/upload-url.
type ProfileUploadRequest struct {
	UserID   string `json:"userId"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

// ProfileUploadResult is the success body of POST /profile/upload-url.
type ProfileUploadResult struct {
	Message   string `json:"message"`
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
}

var (
	// ErrFileDataRequired is returned when no decodable payload was supplied.
	ErrFileDataRequired = errors.New("fileData is required")

	// ErrInvalidFileData is returned when the payload is not valid base64.
	ErrInvalidFileData = errors.New("fileData is not valid base64")

	// ErrNotAnImage rejects non-image profile pictures.
	ErrNotAnImage = errors.New("only image files are allowed")

	// ErrProfilePictureUpdate is returned when the presigned URL was issued
	// but the profile row could not be updated with the new picture URL.
	ErrProfilePictureUpdate = errors.New("failed to update user profile with new picture URL")
)
