package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/Bhola-kumar/content-snatcher/internal/domain"
	"github.com/Bhola-kumar/content-snatcher/internal/service"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockPipeline is a test implementation of Pipeline.
type mockPipeline struct {
	result  *domain.PublishResult
	err     error
	calls   int
	lastReq service.UploadRequest
}

func (m *mockPipeline) Process(ctx context.Context, req service.UploadRequest) (*domain.PublishResult, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.PublishResult{VideoID: "vid-1"}, nil
}

// mockCreds is a test implementation of CredentialChecker.
type mockCreds struct {
	missing []string
}

func (m *mockCreds) MissingCredentials() []string {
	return m.missing
}

// mockReplier records outbound chat messages.
type mockReplier struct {
	err     error
	chatIDs []int64
	texts   []string
}

func (m *mockReplier) Reply(chatID int64, text string) error {
	m.chatIDs = append(m.chatIDs, chatID)
	m.texts = append(m.texts, text)
	return m.err
}
