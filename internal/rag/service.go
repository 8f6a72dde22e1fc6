// Package rag ties the corpus, embedder, vector store and language model
// into the indexing and question-answering flows.
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kataras/golog"

	"canrag/internal/domain"
)

const promptTemplate = `Tu es un expert de la CAN 2025. Réponds précisément à la question en utilisant le contexte fourni.
Si tu ne sais pas, dis que tu n'as pas l'information.

CONTEXTE :
%s

QUESTION :
%s

RÉPONSE :`

// NoContextAnswer is returned when retrieval yields nothing to ground an
// answer on. The model is not called in that case.
const NoContextAnswer = "Je n'ai pas l'information dans ma base de connaissances CAN 2025."

// CorpusBuilder produces the document corpus to index.
type CorpusBuilder interface {
	Build() []domain.Document
}

// Service runs indexing and answering on top of pluggable components.
type Service struct {
	builder  CorpusBuilder
	embedder domain.Embedder
	store    domain.VectorStore
	llm      domain.Generator
	topK     int
}

func NewService(builder CorpusBuilder, embedder domain.Embedder, store domain.VectorStore, llm domain.Generator, topK int) *Service {
	if topK <= 0 {
		topK = 20
	}
	return &Service{
		builder:  builder,
		embedder: embedder,
		store:    store,
		llm:      llm,
		topK:     topK,
	}
}

// Index builds the corpus, embeds every document and replaces the store
// contents. An empty corpus is an error: indexing nothing is always a
// data-loading problem.
func (s *Service) Index(ctx context.Context) (int, error) {
	docs := s.builder.Build()
	if len(docs) == 0 {
		return 0, errors.New("corpus is empty, check the data directory")
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}
	if err := s.embedder.Prepare(texts); err != nil {
		return 0, fmt.Errorf("prepare embedder: %w", err)
	}

	vectors := make([][]float64, len(docs))
	for i, text := range texts {
		vec, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return 0, fmt.Errorf("embed document %d: %w", i, err)
		}
		vectors[i] = vec
	}

	if err := s.store.Clear(ctx); err != nil {
		golog.Warnf("clearing vector store: %v", err)
	}
	dim := s.embedder.Dimension()
	if dim == 0 {
		dim = len(vectors[0])
	}
	if err := s.store.Init(ctx, dim); err != nil {
		return 0, fmt.Errorf("init vector store: %w", err)
	}
	if err := s.store.Upsert(ctx, docs, vectors); err != nil {
		return 0, fmt.Errorf("upsert documents: %w", err)
	}
	golog.Infof("indexed %d documents (embedder=%s, dim=%d)", len(docs), s.embedder.Name(), dim)
	return len(docs), nil
}

// Answer retrieves the most relevant documents for the query and asks the
// language model to answer from them.
func (s *Service) Answer(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("empty query")
	}
	qvec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}
	results, err := s.store.Search(ctx, qvec, s.topK)
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}
	if len(results) == 0 {
		return NoContextAnswer, nil
	}
	prompt := BuildPrompt(results, query)
	answer, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}

// BuildPrompt assembles the retrieved documents and the question into the
// final prompt. Each document is introduced by its source tag.
func BuildPrompt(results []domain.SearchResult, query string) string {
	return fmt.Sprintf(promptTemplate, FormatContext(results), query)
}

// FormatContext renders retrieved documents as source-tagged sections.
func FormatContext(results []domain.SearchResult) string {
	sections := make([]string, len(results))
	for i, r := range results {
		source := "inconnu"
		if s, ok := r.Document.Metadata["source"].(string); ok && s != "" {
			source = s
		}
		sections[i] = fmt.Sprintf("--- SOURCE: %s ---\n%s", source, r.Document.Content)
	}
	return strings.Join(sections, "\n\n")
}
