// Package sentiment implements the document-level sentiment engine.
//
// The Analyzer delegates sentence-level prediction to a Pipeline backend,
// averages the per-sentence class indices and score distributions, and maps
// the averaged scale onto a coarse negative/neutral/positive label.
// Successful results flow through an optional two-tier cache (local TTL map,
// optional Redis).
package sentiment
