package onnx

import "fmt"

// meanPool averages token embeddings whose attention mask is set.
// hidden is laid out as [batch, seqLen, dim]; mask as [batch, seqLen].
// A sequence with no attended tokens pools to the zero vector.
func meanPool(hidden []float32, mask []int64, batch, seqLen, dim int) ([][]float32, error) {
	if len(hidden) != batch*seqLen*dim {
		return nil, fmt.Errorf("hidden state has %d values, want %d", len(hidden), batch*seqLen*dim)
	}
	if len(mask) != batch*seqLen {
		return nil, fmt.Errorf("attention mask has %d values, want %d", len(mask), batch*seqLen)
	}

	out := make([][]float32, batch)
	for b := 0; b < batch; b++ {
		vec := make([]float32, dim)
		var count float32
		for t := 0; t < seqLen; t++ {
			if mask[b*seqLen+t] == 0 {
				continue
			}
			count++
			row := hidden[(b*seqLen+t)*dim : (b*seqLen+t+1)*dim]
			for d, v := range row {
				vec[d] += v
			}
		}
		if count > 0 {
			for d := range vec {
				vec[d] /= count
			}
		}
		out[b] = vec
	}
	return out, nil
}

// sequence is one tokenized text: ids with their attention mask and type ids.
type sequence struct {
	ids     []int
	mask    []int
	typeIDs []int
}

// trimSequence drops trailing padding (mask 0) and then limits the sequence
// to maxLen tokens, keeping the final special token. A missing mask means
// every token is attended; missing type ids are zero.
func trimSequence(ids, mask, typeIDs []int, maxLen int) sequence {
	n := len(ids)
	if len(mask) == n {
		for n > 0 && mask[n-1] == 0 {
			n--
		}
	}
	seq := sequence{
		ids:     make([]int, n),
		mask:    make([]int, n),
		typeIDs: make([]int, n),
	}
	copy(seq.ids, ids[:n])
	for j := range n {
		seq.mask[j] = 1
		if len(mask) == len(ids) {
			seq.mask[j] = mask[j]
		}
		if j < len(typeIDs) {
			seq.typeIDs[j] = typeIDs[j]
		}
	}
	if n <= maxLen {
		return seq
	}
	if maxLen < 2 {
		seq.ids, seq.mask, seq.typeIDs = seq.ids[:maxLen], seq.mask[:maxLen], seq.typeIDs[:maxLen]
		return seq
	}
	last := n - 1
	seq.ids = append(seq.ids[:maxLen-1], seq.ids[last])
	seq.mask = append(seq.mask[:maxLen-1], seq.mask[last])
	seq.typeIDs = append(seq.typeIDs[:maxLen-1], seq.typeIDs[last])
	return seq
}

// packBatch right-pads sequences to the longest one and flattens them into
// [batch, seqLen] tensors. Padding positions carry mask 0.
func packBatch(seqs []sequence) (ids, mask, typeIDs []int64, seqLen int) {
	for _, s := range seqs {
		seqLen = max(seqLen, len(s.ids))
	}
	ids = make([]int64, len(seqs)*seqLen)
	mask = make([]int64, len(seqs)*seqLen)
	typeIDs = make([]int64, len(seqs)*seqLen)
	for i, s := range seqs {
		offset := i * seqLen
		for j := range s.ids {
			ids[offset+j] = int64(s.ids[j])
			mask[offset+j] = int64(s.mask[j])
			typeIDs[offset+j] = int64(s.typeIDs[j])
		}
	}
	return ids, mask, typeIDs, seqLen
}
