// Package corenlp implements the sentiment pipeline against a Stanford
// CoreNLP annotation server.
//
// The server segments text into sentences and runs the recursive neural
// sentiment model per sentence; this client only translates between that
// wire format and the engine's Sentence type. One request per analysis,
// no retries.
package corenlp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kweisser/sentimeter/internal/sentiment"
)

const annotators = "tokenize,ssplit,parse,sentiment"

// Client calls a CoreNLP server over HTTP. Safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a Client for the given server base URL (e.g. "http://localhost:9000").
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// annotateResponse mirrors the CoreNLP JSON output for the sentiment annotator.
type annotateResponse struct {
	Sentences []annotatedSentence `json:"sentences"`
}

type annotatedSentence struct {
	Index                 int       `json:"index"`
	Sentiment             string    `json:"sentiment"`
	SentimentValue        string    `json:"sentimentValue"`
	SentimentDistribution []float64 `json:"sentimentDistribution"`
}

// Process submits text for annotation and maps each sentence to a predicted
// class and score distribution.
func (c *Client) Process(ctx context.Context, text string) ([]sentiment.Sentence, error) {
	props, err := json.Marshal(map[string]string{
		"annotators":   annotators,
		"outputFormat": "json",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal properties: %w", err)
	}

	endpoint := c.baseURL + "/?" + url.Values{"properties": {string(props)}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("build annotate request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("annotate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read annotate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("annotate server returned status %d: %s", resp.StatusCode, preview(body))
	}

	var annotated annotateResponse
	if err := json.Unmarshal(body, &annotated); err != nil {
		return nil, fmt.Errorf("unmarshal annotate response: %w", err)
	}

	sentences := make([]sentiment.Sentence, 0, len(annotated.Sentences))
	for _, s := range annotated.Sentences {
		mapped, err := mapSentence(s)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", s.Index, err)
		}
		sentences = append(sentences, mapped)
	}

	return sentences, nil
}

func mapSentence(s annotatedSentence) (sentiment.Sentence, error) {
	class, err := strconv.Atoi(s.SentimentValue)
	if err != nil {
		return sentiment.Sentence{}, fmt.Errorf("malformed sentimentValue %q: %w", s.SentimentValue, err)
	}
	if class < 0 || class >= sentiment.NumClasses {
		return sentiment.Sentence{}, fmt.Errorf("sentimentValue %d out of range", class)
	}
	if len(s.SentimentDistribution) != sentiment.NumClasses {
		return sentiment.Sentence{}, fmt.Errorf("sentimentDistribution has %d entries, want %d",
			len(s.SentimentDistribution), sentiment.NumClasses)
	}

	mapped := sentiment.Sentence{Class: class}
	copy(mapped.Scores[:], s.SentimentDistribution)
	return mapped, nil
}

func preview(body []byte) string {
	raw := string(body)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return raw
}
