package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DataConfig locates the raw JSON data sources.
type DataConfig struct {
	Dir   string      `yaml:"dir"`
	Files SourceFiles `yaml:"files"`
}

// SourceFiles names the JSON file for each data source.
type SourceFiles struct {
	Matches    string `yaml:"matches"`
	Teams      string `yaml:"teams"`
	Coaches    string `yaml:"coaches"`
	Squads     string `yaml:"squads"`
	Stadiums   string `yaml:"stadiums"`
	Standings  string `yaml:"standings"`
	BestThirds string `yaml:"best_thirds"`
}

// CorpusConfig bounds long free-text fields in generated documents so a
// single document stays within a reasonable size for embedding.
type CorpusConfig struct {
	AppearancesLimit  int `yaml:"appearances_limit"`
	CoachDetailsLimit int `yaml:"coach_details_limit"`
}

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL        string `yaml:"url"`
	APIKey     string `yaml:"api_key"`
	Collection string `yaml:"collection"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// LLMConfig configures the chat-completion backend used to answer questions.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// RetrievalConfig tunes the retrieval step of question answering.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// ServerConfig configures the HTTP chat API.
type ServerConfig struct {
	Host             string   `yaml:"host"`
	Port             int      `yaml:"port"`
	CORSAllowOrigins []string `yaml:"cors_allow_origins"`
}

// AppConfig is the root application configuration structure. It is built once
// at startup and injected into the loader, the alias registry and the corpus
// builder; nothing reads configuration ambiently.
type AppConfig struct {
	Data        DataConfig          `yaml:"data"`
	Aliases     map[string][]string `yaml:"aliases,omitempty"`
	Corpus      CorpusConfig        `yaml:"corpus"`
	Embedder    EmbedderConfig      `yaml:"embedder"`
	VectorStore VectorStoreConfig   `yaml:"vector_store"`
	LLM         LLMConfig           `yaml:"llm"`
	Retrieval   RetrievalConfig     `yaml:"retrieval"`
	Server      ServerConfig        `yaml:"server"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/canrag/config.yaml.
// If neither exists it returns the built-in defaults.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	return defaultConfig(), "", nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "canrag", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = filepath.Join("data", "json")
	}
	f := &cfg.Data.Files
	if f.Matches == "" {
		f.Matches = "matches.json"
	}
	if f.Teams == "" {
		f.Teams = "equipes_qualifiees.json"
	}
	if f.Coaches == "" {
		f.Coaches = "coach.json"
	}
	if f.Squads == "" {
		f.Squads = "joueurs_equipe.json"
	}
	if f.Stadiums == "" {
		f.Stadiums = "stades.json"
	}
	if f.Standings == "" {
		f.Standings = "classement_phase_groupe.json"
	}
	if f.BestThirds == "" {
		f.BestThirds = "classement_meilleurs_trois.json"
	}
	if cfg.Corpus.AppearancesLimit == 0 {
		cfg.Corpus.AppearancesLimit = 200
	}
	if cfg.Corpus.CoachDetailsLimit == 0 {
		cfg.Corpus.CoachDetailsLimit = 300
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "tfidf"
	}
	if cfg.Embedder.Type == "openai" {
		if cfg.Embedder.OpenAI == nil {
			cfg.Embedder.OpenAI = &OpenAIEmbedderConfig{}
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "memory"
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 20
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if len(cfg.Server.CORSAllowOrigins) == 0 {
		cfg.Server.CORSAllowOrigins = []string{"*"}
	}
}
