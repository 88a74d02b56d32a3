package sentiment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPipeline returns canned sentences (or an error) and counts invocations.
type stubPipeline struct {
	sentences []Sentence
	err       error
	calls     int
}

func (s *stubPipeline) Process(_ context.Context, _ string) ([]Sentence, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.sentences, nil
}

// uniform builds a sentence with the given class and an even-ish
// distribution that peaks at that class.
func uniform(class int) Sentence {
	s := Sentence{Class: class}
	for i := range s.Scores {
		s.Scores[i] = 0.1
	}
	s.Scores[class] = 0.6
	return s
}

func TestAnalyze_EmptyText(t *testing.T) {
	pipeline := &stubPipeline{sentences: []Sentence{uniform(ClassPositive)}}
	a := NewAnalyzer(pipeline, "stub")

	for _, text := range []string{"", "   ", "\t\n ", "  \t"} {
		result := a.Analyze(context.Background(), text)
		assert.Equal(t, LabelNeutral, result.Label, "text %q", text)
		assert.Equal(t, 1.0, result.Confidence, "text %q", text)
		assert.Equal(t, [NumClasses]float64{0, 0, 1, 0, 0}, result.ClassScores, "text %q", text)
	}

	assert.Zero(t, pipeline.calls, "empty input must not reach the pipeline")
}

func TestAnalyze_PipelineError(t *testing.T) {
	pipeline := &stubPipeline{err: fmt.Errorf("annotation server unreachable")}
	a := NewAnalyzer(pipeline, "stub")

	result := a.Analyze(context.Background(), "some text")

	assert.Equal(t, LabelError, result.Label)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, [NumClasses]float64{}, result.ClassScores)
	assert.Equal(t, 1, pipeline.calls, "failures are not retried")
}

func TestAnalyze_ZeroSentences(t *testing.T) {
	// Text the pipeline cannot segment falls back to the empty-text contract.
	pipeline := &stubPipeline{sentences: []Sentence{}}
	a := NewAnalyzer(pipeline, "stub")

	result := a.Analyze(context.Background(), "???")

	assert.Equal(t, LabelNeutral, result.Label)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, [NumClasses]float64{0, 0, 1, 0, 0}, result.ClassScores)
}

func TestAnalyze_LabelThresholds(t *testing.T) {
	tests := []struct {
		name    string
		classes []int
		want    string
	}{
		{"all very negative", []int{0, 0}, LabelNegative},
		{"avg below band", []int{1, 1, 1, 2}, LabelNegative}, // avg 1.25
		{"lower bound is neutral", []int{1, 2}, LabelNeutral}, // avg 1.5 exactly
		{"midpoint", []int{2, 2}, LabelNeutral},
		{"upper bound is neutral", []int{2, 3}, LabelNeutral}, // avg 2.5 exactly
		{"avg above band", []int{3, 3, 3, 2}, LabelPositive}, // avg 2.75
		{"all very positive", []int{4, 4}, LabelPositive},
		{"just under lower bound", []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 2}, LabelNegative}, // avg 1.1
		{"just over upper bound", []int{3, 3, 3, 3, 3, 3, 3, 3, 3, 2}, LabelPositive},  // avg 2.9
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentences := make([]Sentence, len(tt.classes))
			for i, c := range tt.classes {
				sentences[i] = uniform(c)
			}

			a := NewAnalyzer(&stubPipeline{sentences: sentences}, "stub")
			result := a.Analyze(context.Background(), "text")
			assert.Equal(t, tt.want, result.Label)
		})
	}
}

func TestAnalyze_ScoreAggregation(t *testing.T) {
	s1 := Sentence{Class: 3, Scores: [NumClasses]float64{0.0, 0.1, 0.2, 0.5, 0.2}}
	s2 := Sentence{Class: 4, Scores: [NumClasses]float64{0.0, 0.0, 0.1, 0.3, 0.6}}
	a := NewAnalyzer(&stubPipeline{sentences: []Sentence{s1, s2}}, "stub")

	result := a.Analyze(context.Background(), "great stuff")

	// Elementwise means, not renormalized.
	want := [NumClasses]float64{0.0, 0.05, 0.15, 0.4, 0.4}
	for i := range want {
		assert.InDelta(t, want[i], result.ClassScores[i], 1e-9, "class %d", i)
	}

	var sum float64
	for _, p := range result.ClassScores {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// avgClass = 3.5 rounds half up to 4; label collapses to positive.
	assert.Equal(t, LabelPositive, result.Label)
	assert.InDelta(t, 0.4, result.Confidence, 1e-9)
}

func TestAnalyze_ConfidenceUsesRoundedClass(t *testing.T) {
	// avgClass = 2.5 rounds to 3: the label is neutral but confidence reads
	// the positive class mass.
	s1 := Sentence{Class: 2, Scores: [NumClasses]float64{0.1, 0.1, 0.5, 0.2, 0.1}}
	s2 := Sentence{Class: 3, Scores: [NumClasses]float64{0.0, 0.1, 0.3, 0.5, 0.1}}
	a := NewAnalyzer(&stubPipeline{sentences: []Sentence{s1, s2}}, "stub")

	result := a.Analyze(context.Background(), "mixed feelings")

	assert.Equal(t, LabelNeutral, result.Label)
	assert.InDelta(t, 0.35, result.Confidence, 1e-9)
}

func TestClassify(t *testing.T) {
	a := NewAnalyzer(&stubPipeline{sentences: []Sentence{uniform(ClassVeryNegative)}}, "stub")
	assert.Equal(t, LabelNegative, a.Classify(context.Background(), "awful"))
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, LabelNegative, labelFor(0))
	assert.Equal(t, LabelNegative, labelFor(1.49))
	assert.Equal(t, LabelNeutral, labelFor(1.5))
	assert.Equal(t, LabelNeutral, labelFor(2.0))
	assert.Equal(t, LabelNeutral, labelFor(2.5))
	assert.Equal(t, LabelPositive, labelFor(2.51))
	assert.Equal(t, LabelPositive, labelFor(4))
}

func TestAnalyze_CachesSuccessfulResults(t *testing.T) {
	pipeline := &stubPipeline{sentences: []Sentence{uniform(ClassPositive)}}
	cache := NewResultCache(time.Minute, clockwork.NewFakeClock())
	a := NewAnalyzer(pipeline, "stub", WithCache(cache))

	first := a.Analyze(context.Background(), "I love this product")
	second := a.Analyze(context.Background(), "I love this product")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, pipeline.calls, "second call must be served from cache")
}

func TestAnalyze_DoesNotCacheErrors(t *testing.T) {
	pipeline := &stubPipeline{err: fmt.Errorf("boom")}
	cache := NewResultCache(time.Minute, clockwork.NewFakeClock())
	a := NewAnalyzer(pipeline, "stub", WithCache(cache))

	a.Analyze(context.Background(), "text")
	a.Analyze(context.Background(), "text")

	assert.Equal(t, 2, pipeline.calls)
	assert.Zero(t, cache.Size())
}

// fakeRemoteCache is an in-memory RemoteCache stand-in.
type fakeRemoteCache struct {
	entries  map[string]Result
	getCalls int
	setCalls int
}

func newFakeRemoteCache() *fakeRemoteCache {
	return &fakeRemoteCache{entries: make(map[string]Result)}
}

func (f *fakeRemoteCache) Get(_ context.Context, key string) (*Result, error) {
	f.getCalls++
	if r, ok := f.entries[key]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeRemoteCache) Set(_ context.Context, key string, result Result) error {
	f.setCalls++
	f.entries[key] = result
	return nil
}

func TestAnalyze_RemoteCacheTier(t *testing.T) {
	pipeline := &stubPipeline{sentences: []Sentence{uniform(ClassNegative)}}
	remote := newFakeRemoteCache()
	localA := NewResultCache(time.Minute, clockwork.NewFakeClock())
	a := NewAnalyzer(pipeline, "stub", WithCache(localA), WithRemoteCache(remote))

	result := a.Analyze(context.Background(), "terrible experience")
	require.Equal(t, LabelNegative, result.Label)
	assert.Equal(t, 1, remote.setCalls)

	// A second instance with a cold local cache is served by the remote tier.
	localB := NewResultCache(time.Minute, clockwork.NewFakeClock())
	b := NewAnalyzer(&stubPipeline{err: fmt.Errorf("must not be called")}, "stub",
		WithCache(localB), WithRemoteCache(remote))

	fromRemote := b.Analyze(context.Background(), "terrible experience")
	assert.Equal(t, result, fromRemote)

	// The remote hit warms the local tier.
	_, ok := localB.Get(CacheKey("terrible experience"))
	assert.True(t, ok)
}
