package server

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/kweisser/sentimeter/internal/config"
	apperrors "github.com/kweisser/sentimeter/internal/errors"
	"github.com/kweisser/sentimeter/internal/sentiment"
)

// --- Mock implementations ---

type mockSentimentService struct {
	analyzeFn func(ctx context.Context, text string) sentiment.Result
	backend   string
}

func (m *mockSentimentService) Analyze(ctx context.Context, text string) sentiment.Result {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, text)
	}
	return sentiment.Result{
		Label:       sentiment.LabelNeutral,
		Confidence:  0.5,
		ClassScores: [sentiment.NumClasses]float64{0.1, 0.15, 0.5, 0.15, 0.1},
	}
}

func (m *mockSentimentService) Classify(ctx context.Context, text string) string {
	return m.Analyze(ctx, text).Label
}

func (m *mockSentimentService) Backend() string {
	if m.backend != "" {
		return m.backend
	}
	return "mock"
}

// --- Test helpers ---

func newTestServer(svc SentimentService) *Server {
	cfg := &config.Config{
		AppEnv:           "test",
		Port:             "8080",
		SentimentBackend: "mock",
	}
	return NewServer(cfg, svc, nil)
}

// callHandler runs a handler through the error middleware, like a real request.
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return apperrors.Middleware()(handler)(c)
}
