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


// Package onnx runs a sentence-transformer model locally through ONNX Runtime.
//
// The model must be exported with a token-level output (typically
// last_hidden_state); sentence vectors are produced by attention-masked mean
// pooling, matching sentence-transformers' default pooling for models such as
// all-mpnet-base-v2 and all-MiniLM-L6-v2. Vectors are returned unnormalized;
// the index normalizes corpus and query vectors the same way.
//
//	config := ai.NewConfig(
//	    ai.WithProvider(ai.ProviderONNX),
//	    ai.WithONNXModel("models/all-mpnet-base-v2.onnx", "models/tokenizer.json"),
//	    ai.WithONNXLibrary("/usr/local/lib/libonnxruntime.so"),
//	)
//	provider, err := onnx.NewProvider(config)
package onnx
