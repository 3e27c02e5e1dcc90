// Package publisher uploads local video files to YouTube using the resumable
// upload protocol with long-lived refresh-token credentials.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/Bhola-kumar/content-snatcher/internal/config"
	"github.com/Bhola-kumar/content-snatcher/internal/domain"
)

const (
	defaultTokenURL  = "https://oauth2.googleapis.com/token"
	defaultUploadURL = "https://www.googleapis.com/upload/youtube/v3/videos"

	// Chunk size must be a multiple of 256 KiB per the upload protocol.
	defaultChunkSize = 8 << 20
)

// Publisher uploads one local file and returns its platform identifier.
type Publisher interface {
	Publish(ctx context.Context, req domain.PublishRequest) (*domain.PublishResult, error)
}

// YouTube implements Publisher against the YouTube Data API.
type YouTube struct {
	creds config.YouTubeConfig
	// client is used for short requests (token exchange, session create).
	client *http.Client
	// uploadClient is used for chunk transfers without an overall timeout;
	// the upload loop runs until completion or an underlying error.
	uploadClient *http.Client
	logger       *slog.Logger

	// Overridable in tests so the full protocol runs against httptest servers.
	tokenURL  string
	uploadURL string
	chunkSize int64
}

// NewYouTube creates a publisher with the given credentials. The credentials
// may be incomplete; Publish reports what is missing before doing any work.
func NewYouTube(creds config.YouTubeConfig, logger *slog.Logger) *YouTube {
	return &YouTube{
		creds:  creds,
		client: &http.Client{Timeout: 30 * time.Second},
		uploadClient: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: 30 * time.Second,
			},
		},
		logger:    logger,
		tokenURL:  defaultTokenURL,
		uploadURL: defaultUploadURL,
		chunkSize: defaultChunkSize,
	}
}

// Configured reports whether all upload credentials are present.
func (p *YouTube) Configured() bool {
	return len(p.creds.Missing()) == 0
}

// MissingCredentials names the unset credential variables.
func (p *YouTube) MissingCredentials() []string {
	return p.creds.Missing()
}

// Publish authenticates, opens a resumable session, and streams the file in
// fixed-size chunks until the platform reports completion.
func (p *YouTube) Publish(ctx context.Context, req domain.PublishRequest) (*domain.PublishResult, error) {
	if missing := p.creds.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingCredentials, strings.Join(missing, ", "))
	}

	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open video file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat video file: %w", err)
	}
	size := stat.Size()
	if size == 0 {
		return nil, fmt.Errorf("video file is empty: %s", req.FilePath)
	}

	sessionURL, err := p.startSession(ctx, token, req, size)
	if err != nil {
		return nil, err
	}

	videoID, err := p.uploadChunks(ctx, token, sessionURL, file, size)
	if err != nil {
		return nil, err
	}

	p.logger.Info("video published", "video_id", videoID, "size", size, "privacy", req.Privacy)
	return &domain.PublishResult{VideoID: videoID}, nil
}

// accessToken exchanges the refresh token for a short-lived access token.
func (p *YouTube) accessToken(ctx context.Context) (string, error) {
	conf := &oauth2.Config{
		ClientID:     p.creds.ClientID,
		ClientSecret: p.creds.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: p.tokenURL},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	src := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: p.creds.RefreshToken})

	token, err := src.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenRejected, err)
	}
	return token.AccessToken, nil
}

type videoSnippet struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"categoryId"`
}

type videoStatus struct {
	PrivacyStatus string `json:"privacyStatus"`
}

type videoResource struct {
	Snippet videoSnippet `json:"snippet"`
	Status  videoStatus  `json:"status"`
}

// startSession creates the resumable upload session. Metadata and visibility
// are part of this single create call; there is no follow-up patch step.
func (p *YouTube) startSession(ctx context.Context, token string, req domain.PublishRequest, size int64) (string, error) {
	title := req.Title
	if title == "" {
		base := filepath.Base(req.FilePath)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	privacy := req.Privacy
	if privacy == "" {
		privacy = domain.VisibilityPrivate
	}

	body, err := json.Marshal(videoResource{
		Snippet: videoSnippet{
			Title:       title,
			Description: req.Description,
			CategoryID:  "22",
		},
		Status: videoStatus{PrivacyStatus: string(privacy)},
	})
	if err != nil {
		return "", fmt.Errorf("marshal video resource: %w", err)
	}

	url := p.uploadURL + "?uploadType=resumable&part=snippet,status"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("create session request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json; charset=UTF-8")
	httpReq.Header.Set("X-Upload-Content-Length", strconv.FormatInt(size, 10))
	httpReq.Header.Set("X-Upload-Content-Type", "video/*")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("start upload session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("%w: session refused with status %d", domain.ErrTokenRejected, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("start upload session: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	sessionURL := resp.Header.Get("Location")
	if sessionURL == "" {
		return "", fmt.Errorf("start upload session: no session location returned")
	}
	return sessionURL, nil
}

// uploadChunks sends fixed-size pieces until the platform signals completion.
// Each step either advances the offset or fails the upload; there is no
// backoff and no attempt cap.
func (p *YouTube) uploadChunks(ctx context.Context, token, sessionURL string, file io.ReaderAt, size int64) (string, error) {
	var offset int64

	for offset < size {
		end := offset + p.chunkSize
		if end > size {
			end = size
		}

		videoID, next, err := p.sendChunk(ctx, token, sessionURL, file, offset, end, size)
		if err != nil {
			return "", err
		}
		if videoID != "" {
			return videoID, nil
		}
		if next <= offset {
			return "", fmt.Errorf("%w: offset stuck at %d", domain.ErrUploadIncomplete, offset)
		}
		offset = next
	}

	return "", domain.ErrUploadIncomplete
}

// sendChunk uploads bytes [offset, end) and reports either the final video ID
// or the next offset acknowledged by the platform.
func (p *YouTube) sendChunk(ctx context.Context, token, sessionURL string, file io.ReaderAt, offset, end, size int64) (string, int64, error) {
	chunk := io.NewSectionReader(file, offset, end-offset)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, sessionURL, chunk)
	if err != nil {
		return "", 0, fmt.Errorf("create chunk request: %w", err)
	}
	req.ContentLength = end - offset
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", offset, end-1, size))

	resp, err := p.uploadClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("send chunk at %d: %w", offset, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		var created struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			return "", 0, fmt.Errorf("decode upload response: %w", err)
		}
		if created.ID == "" {
			return "", 0, fmt.Errorf("upload completed without a video id")
		}
		return created.ID, 0, nil

	case resp.StatusCode == 308: // Resume Incomplete
		return "", ackedOffset(resp.Header.Get("Range"), end), nil

	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", 0, fmt.Errorf("chunk at %d: status %d: %s", offset, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
}

// ackedOffset parses a "bytes=0-N" Range header into the next byte to send.
// Without a Range header the platform accepted everything sent so far.
func ackedOffset(rangeHeader string, sentEnd int64) int64 {
	if rangeHeader == "" {
		return sentEnd
	}
	idx := strings.LastIndex(rangeHeader, "-")
	if idx < 0 {
		return sentEnd
	}
	last, err := strconv.ParseInt(rangeHeader[idx+1:], 10, 64)
	if err != nil {
		return sentEnd
	}
	return last + 1
}
