// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Supported embedding providers.
const (
	// ProviderOpenAI talks to any OpenAI-compatible /v1/embeddings endpoint
	// (OpenAI, Ollama's compatibility layer, LocalAI, vLLM).
	ProviderOpenAI = "openai"

	// ProviderOllama talks to Ollama's native API.
	ProviderOllama = "ollama"

	// ProviderONNX runs a sentence-transformer model locally through ONNX Runtime.
	ProviderONNX = "onnx"
)

// Config holds configuration for the embedding provider.
type Config struct {
	// Provider selects the embedding backend: "openai", "ollama" or "onnx".
	Provider string

	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embeddinggemma", "nomic-embed-text", "text-embedding-3-small"
	EmbeddingModel string

	// APIKey is sent as the bearer token to OpenAI-compatible services.
	// Local services accept any value; "none" is used when empty.
	APIKey string

	// ONNX configures the local provider. Ignored by remote providers.
	ONNX ONNXConfig
}

// ONNXConfig locates a sentence-transformer exported to ONNX.
type ONNXConfig struct {
	// ModelPath is the .onnx model file.
	ModelPath string

	// TokenizerPath is the HuggingFace tokenizer.json for the model.
	TokenizerPath string

	// SharedLibraryPath points at libonnxruntime. Empty uses the runtime default.
	SharedLibraryPath string

	// InputNames are the model's input tensors, in order. Models without
	// token_type_ids (mpnet) take only input_ids and attention_mask.
	InputNames []string

	// OutputName is the token embedding output, mean-pooled into one vector per text.
	OutputName string

	// MaxSequenceLength truncates tokenized input.
	MaxSequenceLength int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider sets the embedding provider.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithAPIKey sets the token sent to OpenAI-compatible services.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithONNXModel sets the ONNX model and tokenizer files.
func WithONNXModel(modelPath, tokenizerPath string) ConfigOption {
	return func(c *Config) {
		c.ONNX.ModelPath = modelPath
		c.ONNX.TokenizerPath = tokenizerPath
	}
}

// WithONNXLibrary sets the path to the ONNX Runtime shared library.
func WithONNXLibrary(path string) ConfigOption {
	return func(c *Config) {
		c.ONNX.SharedLibraryPath = path
	}
}

// DefaultConfig returns a Config with sensible defaults for a local OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderOpenAI,
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: "embeddinggemma",
		ONNX: ONNXConfig{
			InputNames:        []string{"input_ids", "attention_mask"},
			OutputName:        "last_hidden_state",
			MaxSequenceLength: 384,
		},
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//   cfg := NewConfig(
//       WithProvider(ProviderOllama),
//       WithEmbeddingHost("http://localhost:11434"),
//       WithEmbeddingModel("nomic-embed-text"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// OpenAI-compatible hosts get a /v1 suffix; Ollama hosts lose it, since the
// native API lives at the server root.
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.EmbeddingHost == "" {
		return
	}
	host := strings.TrimSuffix(c.EmbeddingHost, "/")
	switch c.Provider {
	case ProviderOpenAI:
		if !strings.HasSuffix(host, "/v1") {
			host += "/v1"
		}
	case ProviderOllama:
		host = strings.TrimSuffix(host, "/v1")
	}
	c.EmbeddingHost = host
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Provider {
	case ProviderOpenAI, ProviderOllama:
		if c.EmbeddingHost == "" {
			return errors.New("ai config: EmbeddingHost is required")
		}
		if c.EmbeddingModel == "" {
			return errors.New("ai config: EmbeddingModel is required")
		}
	case ProviderONNX:
		if c.ONNX.ModelPath == "" {
			return errors.New("ai config: ONNX.ModelPath is required")
		}
		if c.ONNX.TokenizerPath == "" {
			return errors.New("ai config: ONNX.TokenizerPath is required")
		}
		if len(c.ONNX.InputNames) == 0 {
			return errors.New("ai config: ONNX.InputNames is required")
		}
		if c.ONNX.OutputName == "" {
			return errors.New("ai config: ONNX.OutputName is required")
		}
		if c.ONNX.MaxSequenceLength <= 0 {
			return errors.New("ai config: ONNX.MaxSequenceLength must be positive")
		}
	case "":
		return errors.New("ai config: Provider is required")
	default:
		return fmt.Errorf("ai config: unknown Provider %q", c.Provider)
	}
	return nil
}
