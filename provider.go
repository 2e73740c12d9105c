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


package facultyfinder

import (
	"fmt"

	"github.com/poiesic/facultyfinder/ai"
	"github.com/poiesic/facultyfinder/ai/ollama"
	"github.com/poiesic/facultyfinder/ai/onnx"
	"github.com/poiesic/facultyfinder/ai/openai"
)

// NewAIProvider creates the embedding provider selected by cfg.Provider.
func NewAIProvider(cfg *ai.Config) (ai.AIProvider, error) {
	if cfg == nil {
		cfg = ai.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ai.ProviderOpenAI:
		return openai.NewProvider(cfg)
	case ai.ProviderOllama:
		return ollama.NewProvider(cfg)
	case ai.ProviderONNX:
		return onnx.NewProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported embedding provider %q", cfg.Provider)
	}
}
