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


package onnx

import (
	"log/slog"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/poiesic/facultyfinder/ai"
)

// Provider implements ai.AIProvider with a local ONNX sentence-transformer.
// It owns the inference session and the ONNX Runtime environment.
type Provider struct {
	embedder *Embedder
	logger   *slog.Logger
}

// NewProvider loads the ONNX model described by config.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}
	return &Provider{
		embedder: embedder,
		logger:   slog.Default().With("component", "onnx-provider"),
	}, nil
}

// Embedder returns the ONNX embedder.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Close destroys the session and tears down the ONNX Runtime environment.
func (p *Provider) Close() error {
	p.logger.Debug("closing ONNX provider")
	err := p.embedder.Close()
	if ort.IsInitialized() {
		if destroyErr := ort.DestroyEnvironment(); destroyErr != nil && err == nil {
			err = destroyErr
		}
	}
	return err
}
