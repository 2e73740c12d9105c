package onnx

import (
	"context"
	"fmt"
	"log/slog"

	tokenizer "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/poiesic/facultyfinder/ai"
)

// Supported model input tensors.
const (
	inputIDs           = "input_ids"
	inputAttentionMask = "attention_mask"
	inputTokenTypeIDs  = "token_type_ids"
)

// Embedder runs a sentence-transformer through an ONNX Runtime session.
type Embedder struct {
	tokenizer  *tokenizer.Tokenizer
	session    *ort.DynamicAdvancedSession
	inputNames []string
	maxLen     int
	logger     *slog.Logger
}

func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Provider != ai.ProviderONNX {
		return nil, fmt.Errorf("onnx embedder: unsupported provider %q", config.Provider)
	}
	for _, name := range config.ONNX.InputNames {
		switch name {
		case inputIDs, inputAttentionMask, inputTokenTypeIDs:
		default:
			return nil, fmt.Errorf("onnx embedder: unsupported input tensor %q", name)
		}
	}

	tok, err := pretrained.FromFile(config.ONNX.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}

	if !ort.IsInitialized() {
		if config.ONNX.SharedLibraryPath != "" {
			ort.SetSharedLibraryPath(config.ONNX.SharedLibraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
		}
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	defer opts.Destroy()

	if err := opts.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll); err != nil {
		return nil, fmt.Errorf("failed to set graph optimization: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(
		config.ONNX.ModelPath,
		config.ONNX.InputNames,
		[]string{config.ONNX.OutputName},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &Embedder{
		tokenizer:  tok,
		session:    session,
		inputNames: config.ONNX.InputNames,
		maxLen:     config.ONNX.MaxSequenceLength,
		logger:     slog.Default().With("component", "onnx-embedder", "model", config.ONNX.ModelPath),
	}, nil
}

// NewEmbedder loads the tokenizer and model described by config.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string.
// The text is encoded alone, so the result does not depend on any batch.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts generates vector embeddings for multiple texts in one inference
// run. Tokenizer padding is masked out of the mean pool, so each vector is
// the same as embedding its text alone.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.logger.Debug("generating embeddings for texts", "count", len(texts))

	inputs := make([]tokenizer.EncodeInput, len(texts))
	for i, t := range texts {
		inputs[i] = tokenizer.NewSingleEncodeInput(tokenizer.NewInputSequence(t))
	}
	encodings, err := e.tokenizer.EncodeBatch(inputs, true)
	if err != nil {
		return nil, fmt.Errorf("tokenization failed: %w", err)
	}

	batch := len(encodings)
	seqs := make([]sequence, batch)
	for i, enc := range encodings {
		seqs[i] = trimSequence(enc.GetIds(), enc.GetAttentionMask(), enc.GetTypeIds(), e.maxLen)
	}
	inputIds, attentionMask, tokenTypeIds, seqLen := packBatch(seqs)

	shape := ort.NewShape(int64(batch), int64(seqLen))
	byName := map[string][]int64{
		inputIDs:           inputIds,
		inputAttentionMask: attentionMask,
		inputTokenTypeIDs:  tokenTypeIds,
	}
	values := make([]ort.Value, 0, len(e.inputNames))
	defer func() {
		for _, v := range values {
			v.Destroy()
		}
	}()
	for _, name := range e.inputNames {
		tensor, err := ort.NewTensor(shape, byName[name])
		if err != nil {
			return nil, fmt.Errorf("failed to create %s tensor: %w", name, err)
		}
		values = append(values, tensor)
	}

	outputs := make([]ort.Value, 1)
	if err := e.session.Run(values, outputs); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	defer outputs[0].Destroy()

	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("output tensor is not float32 type")
	}
	outShape := hidden.GetShape()
	if len(outShape) != 3 {
		return nil, fmt.Errorf("output tensor has shape %v, want [batch, sequence, hidden]", outShape)
	}

	// meanPool copies out of the tensor before it is destroyed
	return meanPool(hidden.GetData(), attentionMask, int(outShape[0]), int(outShape[1]), int(outShape[2]))
}

// Close releases the inference session.
func (e *Embedder) Close() error {
	if e.session != nil {
		return e.session.Destroy()
	}
	return nil
}
