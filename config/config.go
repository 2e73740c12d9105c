package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/facultyfinder/ai"
	"github.com/poiesic/facultyfinder/index"
	"github.com/poiesic/facultyfinder/search"
)

// Storage backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// Config is the root of the configuration file.
type Config struct {
	LogLevel  string          `yaml:"log_level"`
	Storage   StorageConfig   `yaml:"storage"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Index     IndexConfig     `yaml:"index"`
	Search    SearchConfig    `yaml:"search"`
}

// StorageConfig selects where the catalog lives.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// EmbeddingConfig mirrors ai.Config.
type EmbeddingConfig struct {
	Provider string     `yaml:"provider"`
	Host     string     `yaml:"host"`
	Model    string     `yaml:"model"`
	APIKey   string     `yaml:"api_key"`
	ONNX     ONNXConfig `yaml:"onnx"`
}

// ONNXConfig mirrors ai.ONNXConfig.
type ONNXConfig struct {
	ModelPath         string   `yaml:"model_path"`
	TokenizerPath     string   `yaml:"tokenizer_path"`
	SharedLibraryPath string   `yaml:"shared_library_path"`
	InputNames        []string `yaml:"input_names"`
	OutputName        string   `yaml:"output_name"`
	MaxSequenceLength int      `yaml:"max_sequence_length"`
}

// IndexConfig mirrors index.Config.
type IndexConfig struct {
	BatchSize         int           `yaml:"batch_size"`
	Concurrency       int           `yaml:"concurrency"`
	MaxRetries        int           `yaml:"max_retries"`
	RetryDelay        time.Duration `yaml:"retry_delay"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Store             string        `yaml:"store"`
}

// SearchConfig mirrors search.Config.
type SearchConfig struct {
	SimilarityThreshold float64           `yaml:"similarity_threshold"`
	FallbackCount       int               `yaml:"fallback_count"`
	Synonyms            map[string]string `yaml:"synonyms"`
	ReplaceSynonyms     bool              `yaml:"replace_synonyms"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	a := ai.DefaultConfig()
	ix := index.DefaultConfig()
	s := search.DefaultConfig()
	return &Config{
		LogLevel: "info",
		Storage: StorageConfig{
			Backend: BackendBadger,
			Path:    "facultyfinder.db",
		},
		Embedding: EmbeddingConfig{
			Provider: a.Provider,
			Host:     a.EmbeddingHost,
			Model:    a.EmbeddingModel,
			APIKey:   a.APIKey,
			ONNX: ONNXConfig{
				ModelPath:         a.ONNX.ModelPath,
				TokenizerPath:     a.ONNX.TokenizerPath,
				SharedLibraryPath: a.ONNX.SharedLibraryPath,
				InputNames:        a.ONNX.InputNames,
				OutputName:        a.ONNX.OutputName,
				MaxSequenceLength: a.ONNX.MaxSequenceLength,
			},
		},
		Index: IndexConfig{
			BatchSize:         ix.BatchSize,
			Concurrency:       ix.Concurrency,
			MaxRetries:        ix.MaxRetries,
			RetryDelay:        ix.RetryDelay,
			RequestsPerSecond: ix.RequestsPerSecond,
			Store:             string(ix.Store),
		},
		Search: SearchConfig{
			SimilarityThreshold: float64(s.SimilarityThreshold),
			FallbackCount:       s.FallbackCount,
			Synonyms:            s.Synonyms,
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	defaults := cfg.Search.Synonyms
	cfg.Search.Synonyms = nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if !cfg.Search.ReplaceSynonyms {
		merged := maps.Clone(defaults)
		maps.Copy(merged, cfg.Search.Synonyms)
		cfg.Search.Synonyms = merged
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case BackendBadger, BackendSQLite:
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return errors.New("config: storage path is required")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if err := c.AIConfig().Validate(); err != nil {
		return err
	}
	if err := c.IndexConfig().Validate(); err != nil {
		return err
	}
	return c.SearchConfig().Validate()
}

// AIConfig returns the embedding provider configuration.
func (c *Config) AIConfig() *ai.Config {
	e := c.Embedding
	return &ai.Config{
		Provider:       e.Provider,
		EmbeddingHost:  e.Host,
		EmbeddingModel: e.Model,
		APIKey:         e.APIKey,
		ONNX: ai.ONNXConfig{
			ModelPath:         e.ONNX.ModelPath,
			TokenizerPath:     e.ONNX.TokenizerPath,
			SharedLibraryPath: e.ONNX.SharedLibraryPath,
			InputNames:        e.ONNX.InputNames,
			OutputName:        e.ONNX.OutputName,
			MaxSequenceLength: e.ONNX.MaxSequenceLength,
		},
	}
}

// IndexConfig returns the index build configuration.
func (c *Config) IndexConfig() *index.Config {
	return &index.Config{
		BatchSize:         c.Index.BatchSize,
		Concurrency:       c.Index.Concurrency,
		MaxRetries:        c.Index.MaxRetries,
		RetryDelay:        c.Index.RetryDelay,
		RequestsPerSecond: c.Index.RequestsPerSecond,
		Store:             index.StoreKind(strings.ToLower(c.Index.Store)),
	}
}

// SearchConfig returns the resolver configuration.
func (c *Config) SearchConfig() *search.Config {
	return &search.Config{
		SimilarityThreshold: float32(c.Search.SimilarityThreshold),
		FallbackCount:       c.Search.FallbackCount,
		Synonyms:            maps.Clone(c.Search.Synonyms),
	}
}
