package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canrag/internal/domain"
)

func testDocs() ([]domain.Document, [][]float64) {
	docs := []domain.Document{
		{Content: "finale Maroc", Metadata: map[string]any{"type": "event"}},
		{Content: "stade Casablanca", Metadata: map[string]any{"type": "stadium"}},
		{Content: "joueur Bono", Metadata: map[string]any{"type": "player"}},
	}
	vectors := [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0.9, 0.1, 0},
	}
	return docs, vectors
}

func TestSearchOrdersByCosineSimilarity(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Init(ctx, 3))
	docs, vectors := testDocs()
	require.NoError(t, s.Upsert(ctx, docs, vectors))

	got, err := s.Search(ctx, []float64{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "finale Maroc", got[0].Document.Content)
	assert.Equal(t, "joueur Bono", got[1].Document.Content)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestSearchTopKLargerThanCorpus(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Init(ctx, 3))
	docs, vectors := testDocs()
	require.NoError(t, s.Upsert(ctx, docs, vectors))

	got, err := s.Search(ctx, []float64{0, 1, 0}, 20)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestUpsertDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Init(ctx, 3))

	err := s.Upsert(ctx, []domain.Document{{Content: "x"}}, [][]float64{{1, 0}})
	assert.Error(t, err)
}

func TestUpsertLengthMismatch(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Init(ctx, 2))

	err := s.Upsert(ctx, []domain.Document{{Content: "x"}}, nil)
	assert.Error(t, err)
}

func TestSearchBeforeInitFails(t *testing.T) {
	_, err := NewStore().Search(context.Background(), []float64{1}, 5)
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Init(ctx, 3))
	docs, vectors := testDocs()
	require.NoError(t, s.Upsert(ctx, docs, vectors))
	require.Equal(t, 3, s.Len())

	require.NoError(t, s.Clear(ctx))
	assert.Zero(t, s.Len())

	got, err := s.Search(ctx, []float64{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInitResetsEntries(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Init(ctx, 3))
	docs, vectors := testDocs()
	require.NoError(t, s.Upsert(ctx, docs, vectors))

	require.NoError(t, s.Init(ctx, 3))
	assert.Zero(t, s.Len())
}

func TestZeroVectorScoresZero(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Init(ctx, 3))
	require.NoError(t, s.Upsert(ctx,
		[]domain.Document{{Content: "vide"}}, [][]float64{{0, 0, 0}}))

	got, err := s.Search(ctx, []float64{1, 0, 0}, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Zero(t, got[0].Score)
}
