package summary

import (
	"fmt"
	"strings"
)

// Backend names accepted by NewBackend.
const (
	BackendRemote   = "remote"
	BackendTextRank = "textrank"
	BackendLexRank  = "lexrank"
)

// NewBackend resolves a chunk summarizer by name. The remote backend uses cfg.
func NewBackend(name string, cfg RemoteConfig) (ChunkSummarizer, error) {
	switch strings.ToLower(name) {
	case BackendRemote, "":
		return NewRemote(cfg), nil
	case BackendTextRank:
		return TextRank{}, nil
	case BackendLexRank:
		return LexRank{}, nil
	default:
		return nil, fmt.Errorf("unknown summarizer backend %q, expected one of remote, textrank, lexrank", name)
	}
}
