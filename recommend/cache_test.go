package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrixCache(t *testing.T) {
	_, err := NewMatrixCache(0)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cache, err := NewMatrixCache(2)
	require.NoError(t, err)
	defer cache.Close()

	_, ok := cache.Get(42)
	assert.False(t, ok)

	m, err := Vectorize([]string{"apple banana", "apple cherry", "banana cherry"}, testVectorizerConfig)
	require.NoError(t, err)
	cache.Set(42, m)

	got, ok := cache.Get(42)
	require.True(t, ok)
	assert.Same(t, m, got)

	cache.Clear()
	_, ok = cache.Get(42)
	assert.False(t, ok)
}

func TestFingerprint(t *testing.T) {
	docs := []string{"apple banana", "apple cherry"}
	base := Fingerprint(docs, testVectorizerConfig)

	assert.Equal(t, base, Fingerprint([]string{"apple banana", "apple cherry"}, testVectorizerConfig))

	t.Run("document text", func(t *testing.T) {
		assert.NotEqual(t, base, Fingerprint([]string{"apple banana", "apple cherries"}, testVectorizerConfig))
	})

	t.Run("document order", func(t *testing.T) {
		assert.NotEqual(t, base, Fingerprint([]string{"apple cherry", "apple banana"}, testVectorizerConfig))
	})

	t.Run("document boundaries", func(t *testing.T) {
		assert.NotEqual(t, base, Fingerprint([]string{"apple bananaapple cherry"}, testVectorizerConfig))
	})

	t.Run("vectorizer settings", func(t *testing.T) {
		cfg := testVectorizerConfig
		cfg.MaxNGram = 1
		assert.NotEqual(t, base, Fingerprint(docs, cfg))
	})
}
