// Package tfidf provides a deterministic, fully offline embedding service.
// The vectorizer builds a vocabulary and smoothed IDF table from the
// catalog corpus at index time and persists them next to the other index
// artifacts, so query-time embeddings live in the same space as the index.
package tfidf

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/rudryyy/SHL/internal/core/ports/driven"
)

// Ensure Embedder implements the interface.
var _ driven.EmbeddingService = (*Embedder)(nil)

// Embedder is a TF-IDF vectorizer. It must be fitted on the corpus before
// it can embed; loading a persisted vocabulary counts as fitted.
type Embedder struct {
	vocabulary   map[string]int
	idf          []float64
	dimension    int
	prepared     bool
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
	path         string
}

// vocabFile is the persisted vocabulary format.
type vocabFile struct {
	Terms []string  `json:"terms"`
	IDF   []float64 `json:"idf"`
}

// New creates a TF-IDF embedder. If path is non-empty and the file exists,
// the persisted vocabulary is loaded and the embedder is ready to embed;
// otherwise Fit must run first. Fit persists to path when set.
func New(path string) (*Embedder, error) {
	e := &Embedder{
		vocabulary:   make(map[string]int),
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`),
		stopwords:    defaultStopwords(),
		path:         path,
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := e.load(path); err != nil {
				return nil, fmt.Errorf("tfidf: load vocabulary: %w", err)
			}
		}
	}
	return e, nil
}

// Name returns the adapter identifier recorded in the index manifest.
func (e *Embedder) Name() string { return "tfidf" }

// ModelName identifies the model; for TF-IDF the "model" is the fitted
// vocabulary itself.
func (e *Embedder) ModelName() string { return "tfidf" }

// Fit builds the vocabulary and IDF table from the corpus and persists it
// when a vocabulary path was configured.
func (e *Embedder) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("tfidf: empty corpus")
	}

	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range e.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	// Stable ordering keeps vector positions identical across rebuilds.
	sort.Strings(terms)
	if len(terms) == 0 {
		return errors.New("tfidf: no tokens found in corpus")
	}

	e.vocabulary = make(map[string]int, len(terms))
	e.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		e.vocabulary[term] = i
		// Smoothed IDF.
		e.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	e.dimension = len(terms)
	e.prepared = true

	if e.path != "" {
		if err := e.save(e.path); err != nil {
			return fmt.Errorf("tfidf: save vocabulary: %w", err)
		}
	}
	return nil
}

// Dimensions returns the vocabulary size.
func (e *Embedder) Dimensions() int { return e.dimension }

// Embed computes the L2-normalised TF-IDF vector for the given text.
func (e *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	if !e.prepared {
		return nil, errors.New("tfidf: embedder not fitted")
	}

	vec := make([]float32, e.dimension)
	tf := make(map[int]int)
	total := 0
	for _, tok := range e.tokenize(text) {
		if idx, ok := e.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}

	var norm float64
	for idx, count := range tf {
		v := (float64(count) / float64(total)) * e.idf[idx]
		vec[idx] = float32(v)
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec, nil
}

// EmbedBatch embeds each text in order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := e.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// Close releases resources.
func (e *Embedder) Close() error { return nil }

// save writes the fitted vocabulary as JSON.
func (e *Embedder) save(path string) error {
	terms := make([]string, e.dimension)
	for term, idx := range e.vocabulary {
		terms[idx] = term
	}
	data, err := json.Marshal(vocabFile{Terms: terms, IDF: e.idf})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// load restores a previously saved vocabulary.
func (e *Embedder) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var vf vocabFile
	if err := json.Unmarshal(data, &vf); err != nil {
		return err
	}
	if len(vf.Terms) != len(vf.IDF) {
		return fmt.Errorf("terms/idf length mismatch: %d != %d", len(vf.Terms), len(vf.IDF))
	}
	e.vocabulary = make(map[string]int, len(vf.Terms))
	for i, term := range vf.Terms {
		e.vocabulary[term] = i
	}
	e.idf = vf.IDF
	e.dimension = len(vf.Terms)
	e.prepared = true
	return nil
}

func (e *Embedder) tokenize(text string) []string {
	raw := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := e.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "than",
		"so", "such", "into", "about", "between", "through", "during",
		"before", "after", "above", "below", "out", "off", "own", "same",
		"too", "very", "can", "will", "just", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
