package models

import (
	"fmt"
	"time"
)

// MediaType classifies an attached media file.
type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaAudio    MediaType = "audio"
	MediaDocument MediaType = "document"
)

// ParseMediaType validates a raw media type value.
func ParseMediaType(s string) (MediaType, error) {
	switch m := MediaType(s); m {
	case MediaImage, MediaVideo, MediaAudio, MediaDocument:
		return m, nil
	default:
		return "", fmt.Errorf("unknown media type %q", s)
	}
}

// MediaFile is a media attachment owned by exactly one collection item.
// The blob itself lives in object storage under StorageKey; URL and
// ThumbnailURL are what the UI renders.
type MediaFile struct {
	ID           string
	ItemID       string
	OwnerID      string
	Name         string
	Type         MediaType
	URL          string
	ThumbnailURL string
	StorageKey   string
	CreatedAt    time.Time
}
