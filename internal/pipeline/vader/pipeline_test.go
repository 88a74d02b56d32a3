package vader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kweisser/sentimeter/internal/sentiment"
)

func TestProcess_PositiveText(t *testing.T) {
	p := New()
	sentences, err := p.Process(context.Background(), "I love this product.")
	require.NoError(t, err)
	require.Len(t, sentences, 1)

	assert.GreaterOrEqual(t, sentences[0].Class, sentiment.ClassPositive)
	assertValidDistribution(t, sentences[0].Scores)
}

func TestProcess_NegativeText(t *testing.T) {
	p := New()
	sentences, err := p.Process(context.Background(), "I hate this, it is horrible.")
	require.NoError(t, err)
	require.Len(t, sentences, 1)

	assert.LessOrEqual(t, sentences[0].Class, sentiment.ClassNegative)
	assertValidDistribution(t, sentences[0].Scores)
}

func TestProcess_NeutralText(t *testing.T) {
	p := New()
	sentences, err := p.Process(context.Background(), "The package contains a table.")
	require.NoError(t, err)
	require.Len(t, sentences, 1)

	assert.Equal(t, sentiment.ClassNeutral, sentences[0].Class)
	assertValidDistribution(t, sentences[0].Scores)
}

func TestProcess_MultipleSentences(t *testing.T) {
	p := New()
	sentences, err := p.Process(context.Background(), "I love it! The box was damaged. Shipping was fine.")
	require.NoError(t, err)
	assert.Len(t, sentences, 3)
}

func TestProcess_NoParseableSentences(t *testing.T) {
	p := New()
	sentences, err := p.Process(context.Background(), "?!? ... !!")
	require.NoError(t, err)
	assert.Empty(t, sentences)
}

func TestClassFor(t *testing.T) {
	assert.Equal(t, sentiment.ClassVeryNegative, classFor(-0.8))
	assert.Equal(t, sentiment.ClassNegative, classFor(-0.2))
	assert.Equal(t, sentiment.ClassNeutral, classFor(0.0))
	assert.Equal(t, sentiment.ClassNeutral, classFor(0.04))
	assert.Equal(t, sentiment.ClassPositive, classFor(0.2))
	assert.Equal(t, sentiment.ClassVeryPositive, classFor(0.9))
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"One. Two! Three?", []string{"One", "Two", "Three"}},
		{"No terminal punctuation", []string{"No terminal punctuation"}},
		{"Trailing. ", []string{"Trailing"}},
		{"...", nil},
		{"", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, splitSentences(tt.input), "input %q", tt.input)
	}
}

func TestAnalyzerIntegration(t *testing.T) {
	a := sentiment.NewAnalyzer(New(), "vader")

	// The exact label depends on the lexicon; assert membership in the
	// closed label set rather than a specific outcome.
	label := a.Classify(context.Background(), "I love this product")
	assert.Contains(t, []string{
		sentiment.LabelNegative,
		sentiment.LabelNeutral,
		sentiment.LabelPositive,
	}, label)

	result := a.Analyze(context.Background(), "I love this product. The delivery was slow.")
	var sum float64
	for _, p := range result.ClassScores {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 0.01)
}

func assertValidDistribution(t *testing.T, scores [sentiment.NumClasses]float64) {
	t.Helper()
	var sum float64
	for i, p := range scores {
		assert.GreaterOrEqual(t, p, 0.0, "class %d", i)
		assert.LessOrEqual(t, p, 1.0, "class %d", i)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 0.01)
}
