package sentiment

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/kweisser/sentimeter/internal/metrics"
)

// Label thresholds on the averaged fine-grained scale. The scale midpoint
// is 2 (neutral); the neutral band is the closed interval
// [negativeBelow, positiveAbove]. Boundary values map to neutral.
const (
	negativeBelow = 1.5
	positiveAbove = 2.5
)

// Analyzer classifies documents by delegating sentence-level prediction to
// a Pipeline and averaging the per-sentence results. It holds no mutable
// state beyond the optional result cache and is safe for concurrent use.
type Analyzer struct {
	pipeline Pipeline
	backend  string
	cache    *ResultCache
	remote   RemoteCache
}

// RemoteCache is an optional second cache tier (e.g. Redis) consulted on
// local misses.
type RemoteCache interface {
	Get(ctx context.Context, key string) (*Result, error)
	Set(ctx context.Context, key string, result Result) error
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCache attaches a local result cache.
func WithCache(cache *ResultCache) Option {
	return func(a *Analyzer) { a.cache = cache }
}

// WithRemoteCache attaches a remote cache tier consulted on local misses.
func WithRemoteCache(remote RemoteCache) Option {
	return func(a *Analyzer) { a.remote = remote }
}

// NewAnalyzer creates an Analyzer backed by the given pipeline. The backend
// name is used for logging and metric labels only.
func NewAnalyzer(pipeline Pipeline, backend string, opts ...Option) *Analyzer {
	a := &Analyzer{pipeline: pipeline, backend: backend}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Backend returns the name of the underlying pipeline backend.
func (a *Analyzer) Backend() string {
	return a.backend
}

// Analyze classifies text into a document-level sentiment Result.
//
// Empty or whitespace-only input short-circuits to the neutral contract.
// A failed pipeline invocation yields the error contract; there are no
// retries. All other input is segmented by the pipeline and the
// per-sentence predictions are averaged into one result.
func (a *Analyzer) Analyze(ctx context.Context, text string) Result {
	if strings.TrimSpace(text) == "" {
		return neutralResult()
	}

	if cached, ok := a.lookupCached(ctx, text); ok {
		return cached
	}

	start := time.Now()
	defer func() {
		metrics.AnalysisDuration.WithLabelValues(a.backend).Observe(time.Since(start).Seconds())
	}()

	sentences, err := a.pipeline.Process(ctx, text)
	if err != nil {
		metrics.PipelineErrorsTotal.WithLabelValues(a.backend).Inc()
		metrics.AnalysesTotal.WithLabelValues(a.backend, LabelError).Inc()
		slog.Error("Pipeline invocation failed", "backend", a.backend, "text_len", len(text), "error", err)
		return errorResult()
	}

	// A document the pipeline could not segment into any sentence carries
	// no signal; treat it like empty input rather than failing.
	if len(sentences) == 0 {
		return neutralResult()
	}

	result := aggregate(sentences)

	metrics.AnalysesTotal.WithLabelValues(a.backend, result.Label).Inc()
	a.storeCached(ctx, text, result)

	return result
}

// Classify returns only the coarse label for text.
func (a *Analyzer) Classify(ctx context.Context, text string) string {
	return a.Analyze(ctx, text).Label
}

// aggregate folds per-sentence predictions into one document-level Result:
// the mean of the predicted class indices selects the label, the
// elementwise mean of the distributions becomes the score vector. Each
// sentence vector sums to 1, so the mean vector does too; no
// renormalization is applied.
func aggregate(sentences []Sentence) Result {
	var classSum int
	var scores [NumClasses]float64

	for _, s := range sentences {
		classSum += s.Class
		for i, p := range s.Scores {
			scores[i] += p
		}
	}

	n := float64(len(sentences))
	for i := range scores {
		scores[i] /= n
	}

	avgClass := float64(classSum) / n

	// Confidence reads the mass of the rounded fine-grained class, which
	// can differ from the coarse label (e.g. rounded very-positive still
	// labels "positive").
	rounded := int(math.Round(avgClass))

	return Result{
		Label:       labelFor(avgClass),
		Confidence:  scores[rounded],
		ClassScores: scores,
	}
}

// labelFor collapses the averaged fine-grained scale onto the coarse
// three-way label. Boundaries are exclusive: exactly 1.5 or 2.5 is neutral.
func labelFor(avgClass float64) string {
	switch {
	case avgClass < negativeBelow:
		return LabelNegative
	case avgClass > positiveAbove:
		return LabelPositive
	default:
		return LabelNeutral
	}
}

func (a *Analyzer) lookupCached(ctx context.Context, text string) (Result, bool) {
	if a.cache == nil {
		return Result{}, false
	}

	key := CacheKey(text)
	if result, ok := a.cache.Get(key); ok {
		metrics.CacheHits.Inc()
		return *result, true
	}
	metrics.CacheMisses.Inc()

	if a.remote != nil {
		result, err := a.remote.Get(ctx, key)
		if err != nil {
			slog.Warn("Remote cache lookup failed", "error", err)
			return Result{}, false
		}
		if result != nil {
			metrics.CacheRedisHits.Inc()
			a.cache.Set(key, *result)
			return *result, true
		}
	}

	return Result{}, false
}

func (a *Analyzer) storeCached(ctx context.Context, text string, result Result) {
	// Error results are never cached; empty-text results never reach here.
	if a.cache == nil || result.Label == LabelError {
		return
	}

	key := CacheKey(text)
	a.cache.Set(key, result)

	if a.remote != nil {
		if err := a.remote.Set(ctx, key, result); err != nil {
			slog.Warn("Remote cache store failed", "error", err)
		}
	}
}
