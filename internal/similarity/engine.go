package similarity

import (
	"context"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/docsim/internal/models"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

// Engine computes the same Matrix as Pairwise, optionally spreading pairs over
// several goroutines and memoising pair scores.
// Cached scores are keyed by ID pair: stored content never changes and IDs
// are never reused.
type Engine struct {
	workers int
	cache   *cache.Cache
}

type Option func(*Engine)

// WithWorkers bounds the number of pairs compared concurrently. Values below
// one mean sequential.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.workers = n
	}
}

// WithCache memoises pair scores in c.
func WithCache(c *cache.Cache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{workers: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type pair struct {
	key  PairKey
	a, b string
}

// Pairwise scores every pair of docs. It stops between pairs once ctx is
// done and returns the context error.
func (e *Engine) Pairwise(ctx context.Context, docs []*models.Document) (Matrix, error) {
	docs = compact(docs)

	pairs := make([]pair, 0, len(docs)*(len(docs)-1)/2)
	for i := 0; i < len(docs); i++ {
		for j := i + 1; j < len(docs); j++ {
			pairs = append(pairs, pair{
				key: NewPairKey(docs[i].ID, docs[j].ID),
				a:   docs[i].Content,
				b:   docs[j].Content,
			})
		}
	}

	m := make(Matrix, len(pairs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for _, p := range pairs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			score := e.score(p)

			mu.Lock()
			m[p.key] = score
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func (e *Engine) score(p pair) float64 {
	if e.cache == nil {
		return Similarity(p.a, p.b)
	}

	k := cacheKey(p.key)
	if v, ok := e.cache.Get(k); ok {
		return v.(float64)
	}

	score := Similarity(p.a, p.b)
	e.cache.SetDefault(k, score)
	return score
}

func cacheKey(k PairKey) string {
	return strconv.FormatInt(k.Low, 10) + ":" + strconv.FormatInt(k.High, 10)
}
