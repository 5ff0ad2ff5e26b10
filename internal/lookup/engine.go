// Package lookup answers vector and similarity queries by normalizing caller
// identifiers through the mapping table and reading the vector store.
package lookup

import (
	"context"
	"fmt"
	"time"

	"github.com/hyperjump/nasari/internal/config"
	"github.com/hyperjump/nasari/internal/mapping"
	"github.com/hyperjump/nasari/internal/models"
	"github.com/hyperjump/nasari/internal/vector"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine combines the identifier mapper and the vector store. Both are
// immutable after construction, so an Engine serves concurrent requests
// without locking.
type Engine struct {
	mapper   *mapping.Mapper
	store    *vector.Store
	loadedAt time.Time
	loadTime time.Duration
}

// NewEngine creates an engine over already loaded tables.
func NewEngine(mapper *mapping.Mapper, store *vector.Store) *Engine {
	return &Engine{
		mapper:   mapper,
		store:    store,
		loadedAt: time.Now(),
	}
}

// Load reads the mapping and vector files concurrently and returns an engine
// only when both succeed. Each file is parsed into its own table; nothing is
// shared between the two loads.
func Load(ctx context.Context, data *config.DataConfig, sim *config.SimilarityConfig, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	var (
		mapper *mapping.Mapper
		store  *vector.Store
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		m, err := mapping.LoadFile(data.MappingPath)
		if err != nil {
			return err
		}
		logger.Info("mapping loaded", zap.String("path", data.MappingPath), zap.Int("entries", m.Len()))
		mapper = m
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		opts := []vector.Option{}
		if sim != nil {
			opts = append(opts, vector.WithPrecision(sim.PrecisionOrDefault()))
		}
		s, err := vector.LoadFile(data.VectorsPath, opts...)
		if err != nil {
			return err
		}
		logger.Info("vectors loaded",
			zap.String("path", data.VectorsPath),
			zap.Int("entries", s.Len()),
			zap.Int("dimensions", s.Dimensions()))
		if s.Irregular() > 0 {
			logger.Warn("vectors with irregular dimensions",
				zap.Int("count", s.Irregular()),
				zap.Int("expected_dimensions", s.Dimensions()))
		}
		store = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load data: %w", err)
	}

	e := NewEngine(mapper, store)
	e.loadTime = time.Since(start)
	logger.Info("data ready", zap.Duration("elapsed", e.loadTime))
	return e, nil
}

// Normalize maps key to its BabelNet ID, or returns it unchanged.
func (e *Engine) Normalize(key string) string {
	return e.mapper.Normalize(key)
}

// Vector returns the vector for key after normalization. A missing ID yields
// a *vector.NotFoundError naming the normalized ID.
func (e *Engine) Vector(key string) (*models.VectorResult, error) {
	id := e.mapper.Normalize(key)
	v, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &models.VectorResult{Key: key, ID: id, Vector: v}, nil
}

// Similarity returns the cosine similarity of key1 and key2 after
// normalization. key1 is checked first when reporting a missing ID.
func (e *Engine) Similarity(key1, key2 string) (*models.SimilarityResult, error) {
	id1 := e.mapper.Normalize(key1)
	id2 := e.mapper.Normalize(key2)
	sim, err := e.store.Similarity(id1, id2)
	if err != nil {
		return nil, err
	}
	return &models.SimilarityResult{
		Key1:       key1,
		Key2:       key2,
		ID1:        id1,
		ID2:        id2,
		Similarity: sim,
	}, nil
}

// Stats reports table sizes and load timing.
func (e *Engine) Stats() models.Stats {
	return models.Stats{
		Mappings:         e.mapper.Len(),
		Vectors:          e.store.Len(),
		Dimensions:       e.store.Dimensions(),
		IrregularVectors: e.store.Irregular(),
		Precision:        e.store.Precision(),
		LoadedAt:         e.loadedAt,
		LoadTimeMS:       e.loadTime.Milliseconds(),
	}
}
