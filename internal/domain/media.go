package domain

import (
	"fmt"
	"os"
)

// Visibility is the publish-time access level of an uploaded video.
type Visibility string

const (
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPublic   Visibility = "public"
)

// ParseVisibility maps a request string to a Visibility. The empty string
// defaults to private; anything else unknown is rejected.
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case "":
		return VisibilityPrivate, nil
	case VisibilityPrivate, VisibilityUnlisted, VisibilityPublic:
		return Visibility(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidVisibility, s)
	}
}

// FetchResult is the outcome of one media fetch. Dir is the uniquely-named
// temporary directory owning the downloaded file; the request that created it
// must remove it before completing, success or failure.
type FetchResult struct {
	FilePath string
	Dir      string
}

// Cleanup removes the owning directory and everything in it.
func (r *FetchResult) Cleanup() error {
	if r == nil || r.Dir == "" {
		return nil
	}
	return os.RemoveAll(r.Dir)
}

// PublishRequest describes one upload to the hosting platform.
type PublishRequest struct {
	FilePath    string
	Title       string
	Description string
	Privacy     Visibility
}

// PublishResult carries the platform-assigned identifier of an upload.
type PublishResult struct {
	VideoID string
}

// ShareLink returns the user-facing watch URL for the uploaded video.
func (r *PublishResult) ShareLink() string {
	return "https://youtu.be/" + r.VideoID
}
