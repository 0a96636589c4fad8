package chunker

import (
	"errors"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/support-rag/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_EmptyAndWhitespace(t *testing.T) {
	for _, in := range []string{"", " ", "\n\t  \n"} {
		chunks, err := Split(in, DefaultChunkSize, DefaultOverlap)
		require.NoError(t, err)
		assert.Empty(t, chunks)
	}
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	chunks, err := Split("  Refunds are accepted within 30 days.  ", 1000, 150)
	require.NoError(t, err)
	assert.Equal(t, []string{"Refunds are accepted within 30 days."}, chunks)
}

func TestSplit_WindowsAndOverlap(t *testing.T) {
	chunks, err := Split("abcdefghij", 4, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"abcd", "cdef", "efgh", "ghij"}, chunks)
}

func TestSplit_LastWindowShorter(t *testing.T) {
	chunks, err := Split("abcdefghi", 4, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"abcd", "defg", "ghi"}, chunks)
}

func TestSplit_Properties(t *testing.T) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 120)
	text = strings.TrimSpace(text)

	tests := []struct {
		size    int
		overlap int
	}{
		{1000, 150},
		{300, 0},
		{257, 100},
		{50, 49},
	}

	for _, tt := range tests {
		chunks, err := Split(text, tt.size, tt.overlap)
		require.NoError(t, err)
		require.NotEmpty(t, chunks)

		for i, c := range chunks {
			assert.LessOrEqual(t, len([]rune(c)), tt.size)
			if i < len(chunks)-1 {
				next := chunks[i+1]
				assert.Equal(t, c[len(c)-tt.overlap:], next[:tt.overlap], "chunks %d and %d must share the overlap", i, i+1)
			}
		}

		var rebuilt strings.Builder
		rebuilt.WriteString(chunks[0])
		for _, c := range chunks[1:] {
			rebuilt.WriteString(c[tt.overlap:])
		}
		assert.Equal(t, text, rebuilt.String())
	}
}

func TestSplit_CountsCharactersNotBytes(t *testing.T) {
	chunks, err := Split("ééééé", 2, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"éé", "éé", "é"}, chunks)
}

func TestSplit_DropsWhitespaceWindows(t *testing.T) {
	chunks, err := Split("ab"+strings.Repeat(" ", 10)+"cd", 4, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"ab  ", "cd"}, chunks)
}

func TestSplit_KeptWindowsAreNotTrimmed(t *testing.T) {
	chunks, err := Split("abcd ef", 4, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"abcd", " ef"}, chunks)
}

func TestSplit_RejectsDegenerateConfig(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"overlap equals size", 100, 100},
		{"overlap larger than size", 100, 150},
		{"zero size", 0, 0},
		{"negative overlap", 10, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split("some text", tt.size, tt.overlap)
			require.Error(t, err)

			var ia *apperr.InvalidArgumentError
			assert.True(t, errors.As(err, &ia))
		})
	}
}

func TestNew(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, s.Split(strings.Repeat("a", 2500)), 3)

	_, err = New(Config{ChunkSize: 10, Overlap: 10})
	assert.Error(t, err)
}
