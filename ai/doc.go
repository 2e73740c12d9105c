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


// Package ai provides the text embedding abstraction used to build and query
// the faculty embedding index.
//
// # Implementation Packages
//
//   - ai/openai: OpenAI-compatible embeddings API via langchaingo
//   - ai/ollama: Ollama native embeddings API via langchaingo
//   - ai/onnx: local sentence-transformer via ONNX Runtime
//   - ai/mock: test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, onnx.NewEmbedder, etc.) return
// INTERFACE types. Test utility constructors (mock.NewMockEmbedder) return
// CONCRETE types so tests can inject behavior and assert call counts.
//
//	provider, err := openai.NewProvider(config)  // returns ai.AIProvider
//	mockEmbed := mock.NewMockEmbedder()          // returns *mock.MockEmbedder
//
// The same embedder must produce both the corpus vectors and the query
// vectors; vectors from different models are not comparable.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithProvider(ai.ProviderOllama))
//	provider, err := ollama.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "machine learning")
package ai
