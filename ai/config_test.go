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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, []string{"input_ids", "attention_mask"}, cfg.ONNX.InputNames)
	assert.Equal(t, "last_hidden_state", cfg.ONNX.OutputName)
	assert.Equal(t, 384, cfg.ONNX.MaxSequenceLength)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithProvider(ProviderOllama),
			WithEmbeddingHost("http://ollama:11434"),
			WithEmbeddingModel("nomic-embed-text"),
			WithAPIKey("secret"),
		)

		assert.Equal(t, ProviderOllama, cfg.Provider)
		assert.Equal(t, "http://ollama:11434", cfg.EmbeddingHost)
		assert.Equal(t, "nomic-embed-text", cfg.EmbeddingModel)
		assert.Equal(t, "secret", cfg.APIKey)
	})

	t.Run("with onnx options", func(t *testing.T) {
		cfg := NewConfig(
			WithProvider(ProviderONNX),
			WithONNXModel("/models/mpnet.onnx", "/models/tokenizer.json"),
			WithONNXLibrary("/usr/lib/libonnxruntime.so"),
		)

		assert.Equal(t, "/models/mpnet.onnx", cfg.ONNX.ModelPath)
		assert.Equal(t, "/models/tokenizer.json", cfg.ONNX.TokenizerPath)
		assert.Equal(t, "/usr/lib/libonnxruntime.so", cfg.ONNX.SharedLibraryPath)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		host     string
		expected string
	}{
		{"openai already has /v1", ProviderOpenAI, "http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"openai missing /v1", ProviderOpenAI, "http://localhost:11434", "http://localhost:11434/v1"},
		{"openai trailing slash", ProviderOpenAI, "http://localhost:11434/", "http://localhost:11434/v1"},
		{"ollama strips /v1", ProviderOllama, "http://localhost:11434/v1", "http://localhost:11434"},
		{"ollama trailing slash", ProviderOllama, "http://localhost:11434/", "http://localhost:11434"},
		{"empty host", ProviderOpenAI, "", ""},
		{"provider case folded", "OpenAI", "http://embed:8080", "http://embed:8080/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Provider: tt.provider, EmbeddingHost: tt.host}

			cfg.Normalize()

			assert.Equal(t, tt.expected, cfg.EmbeddingHost)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid openai config", func(t *testing.T) {
		cfg := &Config{
			Provider:       ProviderOpenAI,
			EmbeddingHost:  "http://localhost:11434",
			EmbeddingModel: "embeddinggemma",
		}

		err := cfg.Validate()
		assert.NoError(t, err)
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("missing embedding host", func(t *testing.T) {
		cfg := &Config{Provider: ProviderOllama, EmbeddingModel: "nomic-embed-text"}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingHost")
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := &Config{Provider: ProviderOpenAI, EmbeddingHost: "http://localhost:11434/v1"}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingModel")
	})

	t.Run("missing provider", func(t *testing.T) {
		cfg := &Config{EmbeddingHost: "http://localhost:11434/v1", EmbeddingModel: "m"}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Provider")
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := &Config{Provider: "cohere"}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cohere")
	})

	t.Run("onnx requires model files", func(t *testing.T) {
		cfg := NewConfig(WithProvider(ProviderONNX))

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ModelPath")

		cfg.ONNX.ModelPath = "/models/mpnet.onnx"
		err = cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "TokenizerPath")

		cfg.ONNX.TokenizerPath = "/models/tokenizer.json"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("onnx requires positive sequence length", func(t *testing.T) {
		cfg := NewConfig(
			WithProvider(ProviderONNX),
			WithONNXModel("/models/mpnet.onnx", "/models/tokenizer.json"),
		)
		cfg.ONNX.MaxSequenceLength = 0

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "MaxSequenceLength")
	})
}

func TestConfigValidate_Integration(t *testing.T) {
	cfg := NewConfig()
	err := cfg.Validate()
	require.NoError(t, err)

	cfg = DefaultConfig()
	err = cfg.Validate()
	require.NoError(t, err)
}
