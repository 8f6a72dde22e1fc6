package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/kataras/golog"
	"github.com/spf13/cobra"

	"canrag/internal/aliases"
	"canrag/internal/api"
	"canrag/internal/config"
	"canrag/internal/corpus"
	"canrag/internal/domain"
	"canrag/internal/embedding/openai"
	"canrag/internal/embedding/tfidf"
	"canrag/internal/llm"
	"canrag/internal/loader"
	"canrag/internal/rag"
	"canrag/internal/tui"
	"canrag/internal/vectorstore/memory"
	"canrag/internal/vectorstore/qdrant"
)

var (
	cfgPath string
	verbose bool
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "canrag",
		Short: "Assistant questions-réponses sur la CAN 2025",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				golog.SetLevel("debug")
			} else {
				golog.SetLevel("info")
			}
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "chemin du fichier de configuration YAML")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "journalisation détaillée")

	root.AddCommand(newIndexCmd(), newExportCmd(), newServeCmd(), newChatCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath != "" {
		return config.Load(cfgPath)
	}
	cfg, path, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	if path != "" {
		golog.Debugf("configuration chargée depuis %s", path)
	}
	return cfg, nil
}

func newBuilder(cfg *config.AppConfig) *corpus.Builder {
	reg := aliases.NewDefault()
	if len(cfg.Aliases) > 0 {
		reg = aliases.FromMap(cfg.Aliases)
	}
	return corpus.NewBuilder(loader.New(cfg), reg, cfg)
}

func newEmbedder(cfg *config.AppConfig) (domain.Embedder, error) {
	switch cfg.Embedder.Type {
	case "tfidf", "":
		return tfidf.NewEmbedder(), nil
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			return nil, errors.New("configuration de l'embedder openai manquante")
		}
		return openai.NewEmbedder(*cfg.Embedder.OpenAI)
	default:
		return nil, fmt.Errorf("embedder inconnu: %s", cfg.Embedder.Type)
	}
}

func newStore(cfg *config.AppConfig) (domain.VectorStore, error) {
	switch cfg.VectorStore.Type {
	case "memory", "":
		return memory.NewStore(), nil
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			return nil, errors.New("configuration qdrant manquante")
		}
		return qdrant.NewStore(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
		})
	default:
		return nil, fmt.Errorf("vector store inconnu: %s", cfg.VectorStore.Type)
	}
}

func newService(cfg *config.AppConfig) (*rag.Service, *corpus.Builder, error) {
	builder := newBuilder(cfg)
	emb, err := newEmbedder(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, err := newStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	generator, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return nil, nil, err
	}
	return rag.NewService(builder, emb, store, generator, cfg.Retrieval.TopK), builder, nil
}

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Construit le corpus et l'indexe dans le vector store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			builder := newBuilder(cfg)
			emb, err := newEmbedder(cfg)
			if err != nil {
				return err
			}
			store, err := newStore(cfg)
			if err != nil {
				return err
			}
			// Indexing never talks to the chat model.
			svc := rag.NewService(builder, emb, store, nil, cfg.Retrieval.TopK)
			n, err := svc.Index(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Index construit : %d documents.\n", n)
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var (
		output     string
		typeFilter string
		teamFilter string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporte le corpus en texte lisible pour inspection",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			builder := newBuilder(cfg)
			docs := builder.Build()
			if typeFilter != "" {
				docs = corpus.FilterByType(docs, typeFilter)
			}
			if teamFilter != "" {
				reg := aliases.NewDefault()
				if len(cfg.Aliases) > 0 {
					reg = aliases.FromMap(cfg.Aliases)
				}
				docs = corpus.FilterByTeam(reg, docs, teamFilter)
			}
			if err := corpus.ExportText(docs, output); err != nil {
				return err
			}
			fmt.Printf("Corpus exporté vers %s : %s\n", output, corpus.StatsLine(docs))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "corpus.txt", "fichier de sortie")
	cmd.Flags().StringVar(&typeFilter, "type", "", "ne garder que les documents de ce type")
	cmd.Flags().StringVar(&teamFilter, "team", "", "ne garder que les documents de cette équipe")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Indexe le corpus puis démarre l'API HTTP de chat",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, _, err := newService(cfg)
			if err != nil {
				return err
			}
			if _, err := svc.Index(cmd.Context()); err != nil {
				return err
			}

			addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
			server := &http.Server{
				Addr:              addr,
				Handler:           api.NewRouter(svc, cfg.Server),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				golog.Infof("API de chat à l'écoute sur %s", addr)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				golog.Infof("arrêt du serveur...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			}
		},
	}
}

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Indexe le corpus puis ouvre le chat dans le terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			svc, builder, err := newService(cfg)
			if err != nil {
				return err
			}
			if _, err := svc.Index(cmd.Context()); err != nil {
				return err
			}
			summary := corpus.StatsLine(builder.Build())
			m := tui.New(svc, summary)
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}
}
