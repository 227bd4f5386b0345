package pool

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/cyp0633/libccm/resource"
	"github.com/stretchr/testify/assert"
)

func TestPool_GetInsertRemove(t *testing.T) {
	p := New(nil)
	prov := resource.NewProvider("p1", "Local")

	assert.True(t, p.Get("p1").IsAbsent())

	prev := p.Insert("p1", prov)
	assert.True(t, prev.IsAbsent())

	got, ok := p.Get("p1").Get()
	assert.True(t, ok)
	assert.Same(t, prov, got)
	assert.Equal(t, 1, p.Len())

	removed, ok := p.Remove("p1").Get()
	assert.True(t, ok)
	assert.Same(t, prov, removed)
	assert.True(t, p.Get("p1").IsAbsent())
	assert.True(t, p.Remove("p1").IsAbsent())
	assert.Zero(t, p.Len())
}

func TestPool_InsertDuplicateReplacesAndWarns(t *testing.T) {
	var buf bytes.Buffer
	p := New(slog.New(slog.NewTextHandler(&buf, nil)))

	first := resource.NewProvider("id", "first")
	second := resource.NewProvider("id", "second")
	p.Insert("id", first)

	prev, ok := p.Insert("id", second).Get()
	assert.True(t, ok)
	assert.Same(t, first, prev)
	assert.Same(t, second, p.Get("id").MustGet())
	assert.Equal(t, 1, p.Len())
	assert.Contains(t, buf.String(), "duplicate id")
}

func TestPool_Concurrent(t *testing.T) {
	p := New(nil)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := fmt.Sprintf("%d-%d", w, i)
				p.Insert(id, resource.NewProvider(id, id))
				p.Get(id)
				if i%2 == 0 {
					p.Remove(id)
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 8*50, p.Len())
}
