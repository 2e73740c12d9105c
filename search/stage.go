package search

// Stage identifies which step of the cascade produced a resolution.
type Stage int

const (
	// StageNone means no stage ran: the query was empty after normalization.
	StageNone Stage = iota
	// StageName matched exactly one record by name.
	StageName
	// StageKeyword matched records whose combined text contains the query.
	StageKeyword
	// StageSemantic matched records scoring above the similarity threshold.
	StageSemantic
	// StageFallback returned the best-scoring records regardless of threshold.
	StageFallback
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageName:
		return "name"
	case StageKeyword:
		return "keyword"
	case StageSemantic:
		return "semantic"
	case StageFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Satisfied reports whether n matches let this stage end the cascade.
// The name stage needs a unique hit; every other stage needs at least one.
func (s Stage) Satisfied(n int) bool {
	switch s {
	case StageNone:
		return false
	case StageName:
		return n == 1
	default:
		return n > 0
	}
}

// Scored reports whether matches from this stage carry similarity scores.
func (s Stage) Scored() bool {
	return s == StageSemantic || s == StageFallback
}
