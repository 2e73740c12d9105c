package onnx

import (
	"testing"

	"github.com/poiesic/facultyfinder/ai"
	"github.com/stretchr/testify/assert"
)

func TestNewEmbedder_ConfigErrors(t *testing.T) {
	t.Run("missing model path", func(t *testing.T) {
		cfg := ai.NewConfig(ai.WithProvider(ai.ProviderONNX))
		_, err := NewEmbedder(cfg)
		assert.ErrorContains(t, err, "ModelPath")
	})

	t.Run("wrong provider", func(t *testing.T) {
		cfg := ai.NewConfig()
		_, err := NewEmbedder(cfg)
		assert.ErrorContains(t, err, "unsupported provider")
	})

	t.Run("unsupported input tensor", func(t *testing.T) {
		cfg := ai.NewConfig(
			ai.WithProvider(ai.ProviderONNX),
			ai.WithONNXModel("model.onnx", "tokenizer.json"),
		)
		cfg.ONNX.InputNames = []string{"input_ids", "pixel_values"}
		_, err := NewEmbedder(cfg)
		assert.ErrorContains(t, err, "pixel_values")
	})

	t.Run("missing tokenizer file", func(t *testing.T) {
		cfg := ai.NewConfig(
			ai.WithProvider(ai.ProviderONNX),
			ai.WithONNXModel("model.onnx", t.TempDir()+"/missing.json"),
		)
		_, err := NewProvider(cfg)
		assert.ErrorContains(t, err, "tokenizer")
	})
}
