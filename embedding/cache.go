package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var bucketName = []byte("embeddings")

// Cache is a read-through bbolt cache in front of another Client. Keys are
// derived from the model name and the exact input text, so a snapshot built
// for a different model never collides. Cache write failures are logged and
// ignored; only the underlying client can fail a request.
type Cache struct {
	db     *bolt.DB
	next   Client
	model  string
	logger *zap.Logger
}

func NewCache(dbPath, model string, next Client, logger *zap.Logger) (*Cache, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for embedding cache: %w", err)
	}

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Cache{
		db:     db,
		next:   next,
		model:  model,
		logger: logger,
	}, nil
}

func (c *Cache) GetEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int

	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		for i, text := range texts {
			v := b.Get(c.key(text))
			if v == nil {
				missing = append(missing, text)
				missingIdx = append(missingIdx, i)
				continue
			}
			var vec []float32
			if err := json.Unmarshal(v, &vec); err != nil {
				// stale or corrupt entry, refetch
				missing = append(missing, text)
				missingIdx = append(missingIdx, i)
				continue
			}
			vectors[i] = vec
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read embedding cache: %w", err)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	fetched, err := c.next.GetEmbeddings(ctx, missing)
	if err != nil {
		return nil, err
	}

	for i, vec := range fetched {
		vectors[missingIdx[i]] = vec
	}

	if err := c.store(missing, fetched); err != nil {
		c.logger.Warn("failed to store embeddings in cache", zap.Error(err))
	}

	return vectors, nil
}

func (c *Cache) store(texts []string, vectors [][]float32) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		for i, text := range texts {
			data, err := json.Marshal(vectors[i])
			if err != nil {
				return err
			}
			if err := b.Put(c.key(text), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *Cache) key(text string) []byte {
	sum := sha256.Sum256([]byte(c.model + "\x00" + text))
	return sum[:]
}

func (c *Cache) Close() error {
	return c.db.Close()
}
