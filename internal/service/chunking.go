package service

import "strings"

// sentenceSeparator is the literal boundary chunking splits on. Chunks are
// rebuilt from whole sentences; a sentence is never split mid-sentence.
const sentenceSeparator = ". "

// ChunkConfig controls chunking for knowledge embeddings.
type ChunkConfig struct {
	MaxChars int
}

// DefaultChunkConfig provides sane defaults for chunking.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		MaxChars: 1000,
	}
}

// chunkText splits text into sentence-aligned chunks of at most MaxChars.
// Sentences are packed greedily: when appending the next sentence would
// overflow the current chunk, the chunk is closed and the sentence starts a
// new one. A single sentence longer than MaxChars becomes an oversized chunk
// of its own. Empty input yields no chunks; input without the separator
// yields exactly one chunk.
func chunkText(text string, cfg ChunkConfig) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if cfg.MaxChars <= 0 {
		cfg = DefaultChunkConfig()
	}

	parts := strings.Split(text, sentenceSeparator)
	sentences := make([]string, len(parts))
	for i, p := range parts {
		if i < len(parts)-1 {
			// Re-attach the separator so concatenating the chunks
			// reconstructs the original sentence sequence.
			sentences[i] = p + sentenceSeparator
		} else {
			sentences[i] = p
		}
	}

	var chunks []string
	current := ""
	for _, sentence := range sentences {
		if current != "" && len(current)+len(sentence) > cfg.MaxChars {
			if c := strings.TrimSpace(current); c != "" {
				chunks = append(chunks, c)
			}
			current = sentence
			continue
		}
		current += sentence
	}

	if c := strings.TrimSpace(current); c != "" {
		chunks = append(chunks, c)
	}

	return chunks
}
