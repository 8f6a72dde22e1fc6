// Package qdrant implements the vector store interface on top of a Qdrant
// server, for corpora that should survive process restarts.
package qdrant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/qdrant/go-client/qdrant"

	"canrag/internal/domain"
)

type Config struct {
	// URL is the Qdrant server address, e.g. "http://localhost:6334".
	URL        string
	APIKey     string
	Collection string
}

// Store talks to Qdrant over gRPC. Documents are stored with their full
// metadata serialized into the payload so Search can return them intact.
type Store struct {
	client     *qdrant.Client
	collection string
	dimension  int
	nextID     uint64
}

func NewStore(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("qdrant url is required")
	}
	raw := cfg.URL
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse qdrant url: %w", err)
	}
	host := u.Hostname()
	port := 6334
	if u.Port() != "" {
		port, err = strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid qdrant port: %w", err)
		}
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "can2025"
	}
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: u.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}
	return &Store{client: client, collection: collection}, nil
}

// Init creates the collection if it does not exist yet.
func (s *Store) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid vector dimension %d", dimension)
	}
	s.dimension = dimension
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("check collection: %w", err)
	}
	if exists {
		return nil
	}
	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	return nil
}

func (s *Store) Upsert(ctx context.Context, docs []domain.Document, vectors [][]float64) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("documents/vectors length mismatch: %d vs %d", len(docs), len(vectors))
	}
	points := make([]*qdrant.PointStruct, len(docs))
	for i := range docs {
		meta, err := json.Marshal(docs[i].Metadata)
		if err != nil {
			return fmt.Errorf("marshal metadata for document %d: %w", i, err)
		}
		payload := map[string]any{
			"content":  docs[i].Content,
			"metadata": string(meta),
		}
		// Duplicated as plain keys so Qdrant-side filters stay possible.
		if t, ok := docs[i].Metadata["type"].(string); ok {
			payload["type"] = t
		}
		if src, ok := docs[i].Metadata["source"].(string); ok {
			payload["source"] = src
		}
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(s.nextID + uint64(i)),
			Vectors: qdrant.NewVectors(toFloat32(vectors[i])...),
			Payload: qdrant.NewValueMap(payload),
		}
	}
	s.nextID += uint64(len(docs))
	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert: %w", err)
	}
	return nil
}

func (s *Store) Search(ctx context.Context, vector []float64, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		return nil, nil
	}
	limit := uint64(topK)
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(toFloat32(vector)...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query: %w", err)
	}
	results := make([]domain.SearchResult, 0, len(points))
	for _, point := range points {
		doc := domain.Document{Metadata: map[string]any{}}
		if point.Payload != nil {
			if v, ok := point.Payload["content"]; ok {
				doc.Content = v.GetStringValue()
			}
			if v, ok := point.Payload["metadata"]; ok {
				if raw := v.GetStringValue(); raw != "" {
					// Best effort: a corrupt payload still yields the content.
					_ = json.Unmarshal([]byte(raw), &doc.Metadata)
				}
			}
		}
		results = append(results, domain.SearchResult{
			Document: doc,
			Score:    float64(point.Score),
		})
	}
	return results, nil
}

// Clear drops the collection. Init must be called again before reuse.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.DeleteCollection(ctx, s.collection); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	s.nextID = 0
	return nil
}

func (s *Store) Close() error { return s.client.Close() }

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
