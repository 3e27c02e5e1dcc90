// Package service contains the fetch-then-publish pipeline shared by the
// webhook dispatcher and the synchronous upload endpoint.
package service

import (
	"context"
	"log/slog"

	"github.com/Bhola-kumar/content-snatcher/internal/domain"
	"github.com/Bhola-kumar/content-snatcher/internal/fetcher"
	"github.com/Bhola-kumar/content-snatcher/internal/publisher"
)

// Pipeline stages reported in StageError.
const (
	StageFetch   = "fetch"
	StagePublish = "publish"
)

// UploadRequest describes one run of the media pipeline.
type UploadRequest struct {
	URL         string
	Title       string
	Description string
	Privacy     domain.Visibility
}

// MediaService runs fetch → publish with unconditional cleanup of the fetch
// directory. It holds no per-request state.
type MediaService struct {
	fetcher   fetcher.Fetcher
	publisher publisher.Publisher
	logger    *slog.Logger
}

// NewMediaService creates the pipeline service.
func NewMediaService(f fetcher.Fetcher, p publisher.Publisher, logger *slog.Logger) *MediaService {
	return &MediaService{
		fetcher:   f,
		publisher: p,
		logger:    logger,
	}
}

// Process downloads the video behind req.URL and republishes it. The temporary
// directory created by the fetch is removed before Process returns on every
// path, including panics and cancellation unwinding. Publish never runs when
// the fetch fails.
func (s *MediaService) Process(ctx context.Context, req UploadRequest) (*domain.PublishResult, error) {
	fetched, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, domain.NewStageError(StageFetch, err)
	}
	defer func() {
		// Best effort: a leak here must not fail a request that already has
		// its outcome.
		if cleanupErr := fetched.Cleanup(); cleanupErr != nil {
			s.logger.Warn("temp dir cleanup failed", "dir", fetched.Dir, "error", cleanupErr)
		}
	}()

	result, err := s.publisher.Publish(ctx, domain.PublishRequest{
		FilePath:    fetched.FilePath,
		Title:       req.Title,
		Description: req.Description,
		Privacy:     req.Privacy,
	})
	if err != nil {
		return nil, domain.NewStageError(StagePublish, err)
	}

	return result, nil
}
