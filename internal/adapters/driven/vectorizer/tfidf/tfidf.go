// Package tfidf implements the corpus vectorizer with TF-IDF term weighting.
package tfidf

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driven"
)

// Ensure Vectorizer implements the interface.
var _ driven.Vectorizer = (*Vectorizer)(nil)

// tokenPattern matches runs of letters and digits, keeping in-word apostrophes.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’]\p{L}+)*`)

// Vectorizer builds TF-IDF models over question texts.
type Vectorizer struct {
	stopwords map[string]struct{}
}

// New creates a vectorizer with the default English stop-word list.
func New() *Vectorizer {
	return &Vectorizer{stopwords: defaultStopwords()}
}

// NewWithStopwords creates a vectorizer with a custom stop-word list.
// A nil or empty list keeps every token.
func NewWithStopwords(words []string) *Vectorizer {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[strings.ToLower(w)] = struct{}{}
	}
	return &Vectorizer{stopwords: m}
}

// Name returns the identifier of this vectorizer implementation.
func (v *Vectorizer) Name() string { return "tfidf" }

// Build learns the vocabulary and IDF weights from corpus and returns
// the model with the corpus's L2-normalised row vectors.
func (v *Vectorizer) Build(corpus []string) (driven.TermWeightModel, []domain.Vector, error) {
	if len(corpus) == 0 {
		return nil, nil, fmt.Errorf("tfidf build: %w", domain.ErrEmptyCorpus)
	}

	// Document frequencies
	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range v.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// Stable vocabulary ordering
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	m := &Model{
		vectorizer: v,
		vocabulary: make(map[string]int, len(terms)),
		terms:      terms,
		idf:        make([]float64, len(terms)),
	}
	n := float64(len(corpus))
	for i, term := range terms {
		m.vocabulary[term] = i
		// Smoothed IDF
		m.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}

	rows := make([]domain.Vector, len(corpus))
	for i, text := range corpus {
		rows[i] = m.Transform(text)
	}
	return m, rows, nil
}

func (v *Vectorizer) tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := v.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Model is a trained TF-IDF model. It is immutable after Build.
type Model struct {
	vectorizer *Vectorizer
	vocabulary map[string]int
	terms      []string
	idf        []float64
}

// Dimension returns the vocabulary size.
func (m *Model) Dimension() int { return len(m.terms) }

// Terms returns the vocabulary in index order.
func (m *Model) Terms() []string {
	return append([]string(nil), m.terms...)
}

// IDF returns the inverse document frequency of term and whether it
// is in the vocabulary.
func (m *Model) IDF(term string) (float64, bool) {
	idx, ok := m.vocabulary[strings.ToLower(term)]
	if !ok {
		return 0, false
	}
	return m.idf[idx], true
}

// Transform computes the L2-normalised TF-IDF vector for text.
// Unknown terms are dropped.
func (m *Model) Transform(text string) domain.Vector {
	weights := make(map[int]float64)
	for _, tok := range m.vectorizer.tokenize(text) {
		if idx, ok := m.vocabulary[tok]; ok {
			weights[idx]++
		}
	}
	for idx, count := range weights {
		weights[idx] = count * m.idf[idx]
	}
	return domain.NewVector(weights).Normalize()
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
