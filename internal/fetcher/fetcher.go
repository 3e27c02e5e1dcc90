// Package fetcher materializes remote media into request-owned temporary
// directories using the yt-dlp binary.
package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Bhola-kumar/content-snatcher/internal/config"
	"github.com/Bhola-kumar/content-snatcher/internal/domain"
)

// Fetcher downloads the media behind a URL into a fresh temporary directory.
type Fetcher interface {
	// Fetch materializes the video at url. The returned result owns its
	// directory; the caller must call Cleanup once the file is no longer needed.
	Fetch(ctx context.Context, url string) (*domain.FetchResult, error)
}

// runFunc executes one external command. Swappable in tests so no real
// download happens.
type runFunc func(ctx context.Context, name string, args ...string) error

// YtDlp is a Fetcher backed by the yt-dlp binary.
type YtDlp struct {
	binPath    string
	tempPrefix string
	run        runFunc
	logger     *slog.Logger
}

// NewYtDlp creates a yt-dlp backed fetcher. It resolves the binary in PATH up
// front so a missing install fails at startup, not mid-request.
func NewYtDlp(cfg config.DownloadConfig, logger *slog.Logger) (*YtDlp, error) {
	binPath, err := exec.LookPath(cfg.YtDlpPath)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp not found in PATH: %w", err)
	}

	f := &YtDlp{
		binPath:    binPath,
		tempPrefix: cfg.TempPrefix,
		logger:     logger,
	}
	f.run = f.runCommand
	return f, nil
}

// Fetch downloads the best available single audio+video format into a
// uniquely-named directory and returns the produced file. Every failure path
// removes the directory before returning.
func (f *YtDlp) Fetch(ctx context.Context, url string) (*domain.FetchResult, error) {
	dir := filepath.Join(os.TempDir(), f.tempPrefix+uuid.NewString())
	if err := os.Mkdir(dir, 0755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}

	// Single-format selection: no separate-stream muxing, so ffmpeg is not
	// needed on the host. The output template keeps the source title as the
	// filename stem.
	outTpl := filepath.Join(dir, "%(title)s.%(ext)s")
	args := []string{
		"-f", "best",
		"--no-playlist",
		"-q", "--no-warnings", "--no-progress",
		"-o", outTpl,
		url,
	}

	if err := f.run(ctx, f.binPath, args...); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}

	filePath, err := soleFile(dir)
	if err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	f.logger.Info("media fetched", "url", url, "file", filepath.Base(filePath))
	return &domain.FetchResult{FilePath: filePath, Dir: dir}, nil
}

func (f *YtDlp) runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%v: %s", err, msg)
		}
		return err
	}
	return nil
}

// soleFile returns the single regular file yt-dlp left in dir.
func soleFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read download dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	switch len(files) {
	case 0:
		return "", domain.ErrNoMediaFile
	case 1:
		return files[0], nil
	default:
		return "", fmt.Errorf("expected one file in %s, found %d", dir, len(files))
	}
}
