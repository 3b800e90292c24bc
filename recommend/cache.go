package recommend

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/go-crypt/x/blake2b"
)

// MatrixCache keeps recently built term matrices keyed by a fingerprint
// of the composed documents and the vectorizer settings. Any change to the
// corpus changes the key. Safe for concurrent use.
type MatrixCache struct {
	cache *ristretto.Cache[uint64, *TermMatrix]
}

// NewMatrixCache creates a cache holding up to size matrices.
func NewMatrixCache(size int) (*MatrixCache, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: matrix cache size must be at least 1", ErrInvalidConfig)
	}
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, *TermMatrix]{
		NumCounters:        int64(size) * 10,
		MaxCost:            int64(size),
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create matrix cache: %w", err)
	}
	return &MatrixCache{cache: cache}, nil
}

// Get returns the matrix for key if present.
func (c *MatrixCache) Get(key uint64) (*TermMatrix, bool) {
	return c.cache.Get(key)
}

// Set stores m under key and waits until it is visible to Get.
func (c *MatrixCache) Set(key uint64, m *TermMatrix) {
	c.cache.Set(key, m, 1)
	c.cache.Wait()
}

// Clear drops every cached matrix.
func (c *MatrixCache) Clear() {
	c.cache.Clear()
}

// Close stops the cache's background goroutines.
func (c *MatrixCache) Close() {
	c.cache.Close()
}

// Fingerprint derives the cache key for a document set.
func Fingerprint(docs []string, cfg VectorizerConfig) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	var buf [8]byte

	binary.BigEndian.PutUint64(buf[:], uint64(cfg.MinDocumentFrequency))
	h.Write(buf[:])
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(cfg.MaxDocumentFrequency))
	h.Write(buf[:])
	binary.BigEndian.PutUint64(buf[:], uint64(cfg.MaxNGram))
	h.Write(buf[:])

	// Length-prefix each document so boundaries are part of the key
	for _, doc := range docs {
		binary.BigEndian.PutUint64(buf[:], uint64(len(doc)))
		h.Write(buf[:])
		h.Write([]byte(doc))
	}
	return binary.BigEndian.Uint64(h.Sum(nil))
}
