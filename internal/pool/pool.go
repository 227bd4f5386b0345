// Package pool holds the id → resource cache that is the single source of
// truth for resource identity.
package pool

import (
	"io"
	"log/slog"
	"sync"

	"github.com/cyp0633/libccm/resource"
	"github.com/samber/mo"
)

// Pool maps ids to live resources. Every operation is serialized under one
// mutex, so concurrent readers never observe a half-written entry.
type Pool struct {
	mu        sync.Mutex
	resources map[resource.ID]resource.Resource
	logger    *slog.Logger
}

// New creates an empty pool. A nil logger discards output.
func New(logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pool{
		resources: make(map[resource.ID]resource.Resource),
		logger:    logger,
	}
}

// Get returns the resource registered under id.
func (p *Pool) Get(id resource.ID) mo.Option[resource.Resource] {
	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.resources[id]
	if !ok {
		return mo.None[resource.Resource]()
	}
	return mo.Some(r)
}

// Insert registers r under id and returns the resource it replaced, if any.
// Replacing a live id is logged as a duplicate but never fails.
func (p *Pool) Insert(id resource.ID, r resource.Resource) mo.Option[resource.Resource] {
	p.mu.Lock()
	prev, ok := p.resources[id]
	p.resources[id] = r
	p.mu.Unlock()

	if !ok {
		return mo.None[resource.Resource]()
	}
	p.logger.Warn("encountered a duplicate id",
		"id", id,
		"previous_kind", prev.Kind().String(),
		"kind", r.Kind().String())
	return mo.Some(prev)
}

// Remove unregisters id and returns the resource that was registered.
func (p *Pool) Remove(id resource.ID) mo.Option[resource.Resource] {
	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.resources[id]
	if !ok {
		return mo.None[resource.Resource]()
	}
	delete(p.resources, id)
	return mo.Some(r)
}

// Len returns the number of registered resources.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.resources)
}
