package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Bhola-kumar/content-snatcher/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockFetcher creates a real on-disk directory so cleanup can be observed.
type mockFetcher struct {
	t       *testing.T
	err     error
	lastDir string
	calls   int
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (*domain.FetchResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}

	dir, err := os.MkdirTemp("", "media-service-test-")
	if err != nil {
		m.t.Fatalf("mkdir temp: %v", err)
	}
	m.lastDir = dir

	path := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(path, []byte("video"), 0644); err != nil {
		m.t.Fatalf("write file: %v", err)
	}
	return &domain.FetchResult{FilePath: path, Dir: dir}, nil
}

type mockPublisher struct {
	err     error
	lastReq domain.PublishRequest
	calls   int
	// fileExisted records whether the input file was still on disk when
	// Publish ran, proving cleanup happens after publish, not before.
	fileExisted bool
}

func (m *mockPublisher) Publish(ctx context.Context, req domain.PublishRequest) (*domain.PublishResult, error) {
	m.calls++
	m.lastReq = req
	_, statErr := os.Stat(req.FilePath)
	m.fileExisted = statErr == nil
	if m.err != nil {
		return nil, m.err
	}
	return &domain.PublishResult{VideoID: "vid-1"}, nil
}

func assertGone(t *testing.T, dir string) {
	t.Helper()
	if dir == "" {
		t.Fatal("no directory recorded")
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("temp dir %q still exists", dir)
	}
}

func TestProcess_Success(t *testing.T) {
	f := &mockFetcher{t: t}
	p := &mockPublisher{}
	svc := NewMediaService(f, p, testLogger())

	res, err := svc.Process(context.Background(), UploadRequest{
		URL:     "https://example.com/v",
		Title:   "a title",
		Privacy: domain.VisibilityUnlisted,
	})
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}

	if res.VideoID != "vid-1" {
		t.Errorf("VideoID = %q", res.VideoID)
	}
	if !p.fileExisted {
		t.Error("publish ran after the fetched file was removed")
	}
	if p.lastReq.Title != "a title" || p.lastReq.Privacy != domain.VisibilityUnlisted {
		t.Errorf("publish request metadata = %+v", p.lastReq)
	}
	assertGone(t, f.lastDir)
}

func TestProcess_FetchFailure_SkipsPublish(t *testing.T) {
	f := &mockFetcher{t: t, err: errors.New("unreachable")}
	p := &mockPublisher{}
	svc := NewMediaService(f, p, testLogger())

	_, err := svc.Process(context.Background(), UploadRequest{URL: "https://example.com/v"})
	if err == nil {
		t.Fatal("Process() should fail when fetch fails")
	}

	var stageErr *domain.StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StageFetch {
		t.Errorf("error = %v, want fetch StageError", err)
	}
	if p.calls != 0 {
		t.Errorf("publish called %d times after fetch failure", p.calls)
	}
}

func TestProcess_PublishFailure_StillCleansUp(t *testing.T) {
	f := &mockFetcher{t: t}
	p := &mockPublisher{err: errors.New("transfer reset")}
	svc := NewMediaService(f, p, testLogger())

	_, err := svc.Process(context.Background(), UploadRequest{URL: "https://example.com/v"})
	if err == nil {
		t.Fatal("Process() should fail when publish fails")
	}

	var stageErr *domain.StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != StagePublish {
		t.Errorf("error = %v, want publish StageError", err)
	}
	assertGone(t, f.lastDir)
}

func TestProcess_FetchThenPublishOrder(t *testing.T) {
	f := &mockFetcher{t: t}
	p := &mockPublisher{}
	svc := NewMediaService(f, p, testLogger())

	if _, err := svc.Process(context.Background(), UploadRequest{URL: "https://example.com/v"}); err != nil {
		t.Fatalf("Process() error: %v", err)
	}

	if f.calls != 1 || p.calls != 1 {
		t.Errorf("fetch calls = %d, publish calls = %d, want 1 and 1", f.calls, p.calls)
	}
}
