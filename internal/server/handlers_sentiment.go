package server

import (
	"fmt"

	"github.com/labstack/echo/v4"

	apperrors "github.com/kweisser/sentimeter/internal/errors"
	"github.com/kweisser/sentimeter/internal/metrics"
	"github.com/kweisser/sentimeter/internal/sentiment"
)

// detailedResponse renders confidence and all class scores as percentage
// strings with two decimals ("NN.NN%"). The batch endpoint instead emits
// confidence as a raw float; clients depend on this asymmetry.
type detailedResponse struct {
	Text       string         `json:"text"`
	Sentiment  string         `json:"sentiment"`
	Confidence string         `json:"confidence"`
	Scores     detailedScores `json:"scores"`
}

type detailedScores struct {
	VeryNegative string `json:"veryNegative"`
	Negative     string `json:"negative"`
	Neutral      string `json:"neutral"`
	Positive     string `json:"positive"`
	VeryPositive string `json:"veryPositive"`
}

type batchRequest struct {
	Texts []string `json:"texts"`
}

type batchItem struct {
	Text       string  `json:"text"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

type batchResponse struct {
	Results []batchItem `json:"results"`
	Count   int         `json:"count"`
}

func (s *Server) handleSentiment(c echo.Context) error {
	text, err := requiredTextParam(c)
	if err != nil {
		return err
	}

	label := s.svc.Classify(c.Request().Context(), text)

	return c.JSON(200, map[string]string{
		"sentiment": label,
		"text":      text,
	})
}

func (s *Server) handleDetailedSentiment(c echo.Context) error {
	text, err := requiredTextParam(c)
	if err != nil {
		return err
	}

	result := s.svc.Analyze(c.Request().Context(), text)

	return c.JSON(200, detailedResponse{
		Text:       text,
		Sentiment:  result.Label,
		Confidence: percent(result.Confidence),
		Scores: detailedScores{
			VeryNegative: percent(result.ClassScores[sentiment.ClassVeryNegative]),
			Negative:     percent(result.ClassScores[sentiment.ClassNegative]),
			Neutral:      percent(result.ClassScores[sentiment.ClassNeutral]),
			Positive:     percent(result.ClassScores[sentiment.ClassPositive]),
			VeryPositive: percent(result.ClassScores[sentiment.ClassVeryPositive]),
		},
	})
}

func (s *Server) handleBatchSentiment(c echo.Context) error {
	var req batchRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}
	if req.Texts == nil {
		return apperrors.ValidationError("texts field is required")
	}

	metrics.BatchSize.Observe(float64(len(req.Texts)))

	ctx := c.Request().Context()

	// Texts are analyzed sequentially; results preserve input order.
	results := make([]batchItem, 0, len(req.Texts))
	for _, text := range req.Texts {
		result := s.svc.Analyze(ctx, text)
		results = append(results, batchItem{
			Text:       text,
			Sentiment:  result.Label,
			Confidence: result.Confidence,
		})
	}

	return c.JSON(200, batchResponse{
		Results: results,
		Count:   len(results),
	})
}

// requiredTextParam enforces presence of the text query parameter. An empty
// value is allowed and flows through to the engine's neutral contract;
// only a missing parameter is a client error.
func requiredTextParam(c echo.Context) (string, error) {
	if !c.QueryParams().Has("text") {
		return "", apperrors.ValidationError("text query parameter is required")
	}
	return c.QueryParam("text"), nil
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
