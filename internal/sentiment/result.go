package sentiment

import "context"

// NumClasses is the size of the fine-grained sentiment scale.
// Classes are indexed 0-4: very negative, negative, neutral, positive, very positive.
const NumClasses = 5

// Fine-grained class indices.
const (
	ClassVeryNegative = iota
	ClassNegative
	ClassNeutral
	ClassPositive
	ClassVeryPositive
)

// Coarse labels derived from the fine-grained scale.
const (
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
	LabelPositive = "positive"
	LabelError    = "error"
)

// Result is a document-level sentiment classification.
// It is constructed once per analyzed text and never mutated afterwards.
type Result struct {
	// Label is one of negative, neutral, positive, or error.
	Label string `json:"label"`
	// Confidence is the aggregated probability mass of the rounded
	// fine-grained class, in [0,1].
	Confidence float64 `json:"confidence"`
	// ClassScores holds the probability mass per fine-grained class,
	// always exactly NumClasses entries.
	ClassScores [NumClasses]float64 `json:"class_scores"`
}

// Sentence is a single per-sentence prediction from the pipeline:
// a predicted class index and a probability distribution over all classes.
type Sentence struct {
	Class  int
	Scores [NumClasses]float64
}

// Pipeline is the external sentence-level sentiment classifier.
// Process segments text into sentences and predicts each one independently.
// Implementations must be safe for concurrent use; the service shares a
// single instance across all requests.
type Pipeline interface {
	Process(ctx context.Context, text string) ([]Sentence, error)
}

// neutralResult is the fixed contract for empty or whitespace-only input:
// the neutral class receives full certainty.
func neutralResult() Result {
	return Result{
		Label:       LabelNeutral,
		Confidence:  1.0,
		ClassScores: [NumClasses]float64{0, 0, 1, 0, 0},
	}
}

// errorResult is the fixed contract for a failed pipeline invocation.
func errorResult() Result {
	return Result{Label: LabelError}
}
