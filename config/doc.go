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


// Package config loads the optional YAML configuration file and maps it onto
// the ai, index and search configurations.
//
// Every key is optional; unset keys keep their defaults. A minimal file:
//
//	embedding:
//	  provider: ollama
//	  host: http://localhost:11434
//	  model: nomic-embed-text
//	index:
//	  store: chromem
//	  retry_delay: 500ms
//	search:
//	  similarity_threshold: 0.4
//	  synonyms:
//	    hci: human computer interaction
//
// Synonyms from the file are merged over the built-in table unless
// replace_synonyms is true.
package config
