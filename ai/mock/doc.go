// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder and ai.AIProvider
// for use in unit tests. The mocks allow tests to run without external AI
// service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vector, err := mockProvider.Embedder().EmbedText(ctx, "test")
//
//	// Fixed vectors for known texts
//	mockEmbedder := mock.NewMockEmbedder()
//	mockEmbedder.Dimensions = 3
//	mockEmbedder.WithVectors(map[string][]float32{
//	    "robotics": {1, 0, 0},
//	})
//
//	// Check call counts
//	count := mockEmbedder.CallCount()
//
// # Default Behavior
//
// MockEmbedder returns deterministic unit vectors derived from an FNV hash of
// the text, so identical texts always embed identically.
package mock
