// Package memory implements an in-process vector store. It holds the whole
// corpus in RAM and searches by brute-force cosine similarity, which is
// plenty for a few hundred documents.
package memory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"canrag/internal/domain"
)

type entry struct {
	doc    domain.Document
	vector []float64
	norm   float64
}

// Store is a thread-safe in-memory vector store.
type Store struct {
	mu        sync.RWMutex
	dimension int
	entries   []entry
}

func NewStore() *Store { return &Store{} }

// Init fixes the vector dimension. Calling it again resets the store.
func (s *Store) Init(_ context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid vector dimension %d", dimension)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.entries = nil
	return nil
}

func (s *Store) Upsert(_ context.Context, docs []domain.Document, vectors [][]float64) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("documents/vectors length mismatch: %d vs %d", len(docs), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimension == 0 {
		return errors.New("store not initialized")
	}
	for i, vec := range vectors {
		if len(vec) != s.dimension {
			return fmt.Errorf("vector %d has dimension %d, want %d", i, len(vec), s.dimension)
		}
		s.entries = append(s.entries, entry{
			doc:    docs[i],
			vector: vec,
			norm:   l2norm(vec),
		})
	}
	return nil
}

// Search returns the topK most similar documents by cosine similarity,
// ordered best first.
func (s *Store) Search(_ context.Context, vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dimension == 0 {
		return nil, errors.New("store not initialized")
	}
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("query vector has dimension %d, want %d", len(vector), s.dimension)
	}
	if topK <= 0 || len(s.entries) == 0 {
		return nil, nil
	}

	qnorm := l2norm(vector)
	results := make([]domain.SearchResult, 0, len(s.entries))
	for _, e := range s.entries {
		results = append(results, domain.SearchResult{
			Document: e.doc,
			Score:    cosine(vector, qnorm, e.vector, e.norm),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

// Len reports how many documents the store currently holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func cosine(a []float64, anorm float64, b []float64, bnorm float64) float64 {
	if anorm == 0 || bnorm == 0 {
		return 0
	}
	dot := 0.0
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot / (anorm * bnorm)
}

func l2norm(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}
