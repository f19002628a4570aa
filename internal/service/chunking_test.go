package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_Empty(t *testing.T) {
	assert.Empty(t, chunkText("", DefaultChunkConfig()))
	assert.Empty(t, chunkText("   \n\t  ", DefaultChunkConfig()))
}

func TestChunkText_NoSeparator(t *testing.T) {
	chunks := chunkText("short text", DefaultChunkConfig())

	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestChunkText_SingleChunkUnderLimit(t *testing.T) {
	text := "Alpha. Beta.\nGamma.\n"

	chunks := chunkText(text, ChunkConfig{MaxChars: 1000})

	require.Len(t, chunks, 1)
	assert.Equal(t, "Alpha. Beta.\nGamma.", chunks[0])
}

func TestChunkText_SplitsAtSentenceBoundary(t *testing.T) {
	// Each sentence is 10 chars including the trailing separator.
	text := strings.TrimSuffix(strings.Repeat("aaaaaaaa. ", 5), " ")

	chunks := chunkText(text, ChunkConfig{MaxChars: 25})

	require.Len(t, chunks, 3)
	assert.Equal(t, "aaaaaaaa. aaaaaaaa.", chunks[0])
	assert.Equal(t, "aaaaaaaa. aaaaaaaa.", chunks[1])
	assert.Equal(t, "aaaaaaaa.", chunks[2])
}

func TestChunkText_NeverSplitsMidSentence(t *testing.T) {
	long := strings.Repeat("x", 500)
	text := "Short one. " + long + ". Short two."

	chunks := chunkText(text, ChunkConfig{MaxChars: 100})

	require.Len(t, chunks, 3)
	assert.Equal(t, "Short one.", chunks[0])
	assert.Equal(t, long+".", chunks[1], "an oversized sentence becomes its own chunk")
	assert.Equal(t, "Short two.", chunks[2])
	assert.Greater(t, len(chunks[1]), 100)
}

func TestChunkText_ReconstructsSentenceSequence(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 120; i++ {
		fmt.Fprintf(&sb, "Observation %d concerns the facade condition. ", i)
	}
	text := strings.TrimSpace(sb.String())

	chunks := chunkText(text, ChunkConfig{MaxChars: 300})

	require.NotEmpty(t, chunks)
	for i, c := range chunks {
		if len(c) > 300 {
			assert.NotContains(t, c, sentenceSeparator,
				"chunk %d exceeds the limit but holds more than one sentence", i)
		}
	}

	// Joining the chunks back with a single space restores the original
	// text: no sentence dropped, duplicated, or reordered.
	assert.Equal(t, text, strings.Join(chunks, " "))
}

func TestChunkText_ZeroMaxFallsBackToDefault(t *testing.T) {
	chunks := chunkText("One. Two.", ChunkConfig{})

	require.Len(t, chunks, 1)
	assert.Equal(t, "One. Two.", chunks[0])
}
