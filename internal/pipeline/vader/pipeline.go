// Package vader implements a local, deterministic sentiment pipeline on top
// of the VADER lexicon. It needs no external model server, which makes it
// the default backend for development and the fallback for deployments
// without a CoreNLP instance.
package vader

import (
	"context"
	"math"
	"strings"

	"github.com/jonreiter/govader"

	"github.com/kweisser/sentimeter/internal/sentiment"
)

// VADER compound-score thresholds. ±0.05 is the conventional
// positive/negative cutoff; ±0.5 marks strong polarity.
const (
	strongCutoff = 0.5
	polarCutoff  = 0.05
)

// Pipeline scores each sentence with VADER and projects the polarity onto
// the five-class scale. The underlying analyzer only reads its lexicon
// after construction, so one instance serves all requests.
type Pipeline struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// New creates a VADER-backed pipeline.
func New() *Pipeline {
	return &Pipeline{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Process splits text into sentences and scores each one.
func (p *Pipeline) Process(_ context.Context, text string) ([]sentiment.Sentence, error) {
	var sentences []sentiment.Sentence
	for _, s := range splitSentences(text) {
		sentences = append(sentences, p.score(s))
	}
	return sentences, nil
}

func (p *Pipeline) score(text string) sentiment.Sentence {
	polarity := p.analyzer.PolarityScores(text)
	return sentiment.Sentence{
		Class:  classFor(polarity.Compound),
		Scores: distribution(polarity),
	}
}

// classFor maps a compound score in [-1,1] onto the 0-4 class scale.
func classFor(compound float64) int {
	switch {
	case compound <= -strongCutoff:
		return sentiment.ClassVeryNegative
	case compound <= -polarCutoff:
		return sentiment.ClassNegative
	case compound >= strongCutoff:
		return sentiment.ClassVeryPositive
	case compound >= polarCutoff:
		return sentiment.ClassPositive
	default:
		return sentiment.ClassNeutral
	}
}

// distribution spreads VADER's negative/neutral/positive masses onto the
// five classes. Each polar mass is split between its mild and strong class
// by the magnitude of the compound score, so the vector still sums to 1.
func distribution(polarity govader.Sentiment) [sentiment.NumClasses]float64 {
	strength := math.Abs(polarity.Compound)

	var scores [sentiment.NumClasses]float64
	scores[sentiment.ClassVeryNegative] = polarity.Negative * strength
	scores[sentiment.ClassNegative] = polarity.Negative * (1 - strength)
	scores[sentiment.ClassNeutral] = polarity.Neutral
	scores[sentiment.ClassPositive] = polarity.Positive * (1 - strength)
	scores[sentiment.ClassVeryPositive] = polarity.Positive * strength
	return scores
}

// splitSentences performs naive sentence segmentation on terminal
// punctuation. Segments without content are dropped, so input like "???"
// yields no sentences at all.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, r := range text {
		switch r {
		case '.', '!', '?':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return sentences
}
