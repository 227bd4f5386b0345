// Package observable provides an ordered list that reports structural changes
// to its observers.
package observable

import (
	"fmt"
	"sync"
)

// Delta describes one structural change of a List: at Position, Removed items
// were taken out and Added items were inserted in their place.
type Delta struct {
	Position int
	Removed  int
	Added    int
}

// Observer receives the deltas of a List.
type Observer func(Delta)

// List is an ordered sequence of references. Every mutation notifies all
// registered observers synchronously, before the mutating call returns.
//
// Mutations are atomic under the list's own lock, so concurrent readers see
// either the state before or after a change, never a torn one. Observers are
// called after the lock is released and may read the list, but must not
// mutate it.
type List[T comparable] struct {
	mu        sync.RWMutex
	items     []T
	observers map[int]Observer
	nextObs   int

	// notifyMu keeps deltas in mutation order when observers are slow.
	notifyMu sync.Mutex
}

// New creates an empty list.
func New[T comparable]() *List[T] {
	return &List[T]{observers: make(map[int]Observer)}
}

// Observe registers fn for every future delta and returns a function that
// unregisters it.
func (l *List[T]) Observe(fn Observer) (cancel func()) {
	l.mu.Lock()
	if l.observers == nil {
		l.observers = make(map[int]Observer)
	}
	id := l.nextObs
	l.nextObs++
	l.observers[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.observers, id)
			l.mu.Unlock()
		})
	}
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// At returns the item at position i and whether i was in range.
func (l *List[T]) At(i int) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, false
	}
	return l.items[i], true
}

// Items returns a snapshot copy of the list.
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// IndexOf returns the position of item, or -1.
func (l *List[T]) IndexOf(item T) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.indexOf(item)
}

func (l *List[T]) indexOf(item T) int {
	for i, it := range l.items {
		if it == item {
			return i
		}
	}
	return -1
}

// Append adds item at the end of the list.
func (l *List[T]) Append(item T) {
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()

	l.mu.Lock()
	pos := len(l.items)
	l.items = append(l.items, item)
	observers := l.snapshotObservers()
	l.mu.Unlock()

	emit(observers, Delta{Position: pos, Added: 1})
}

// Remove takes item out of the list, matching by identity.
//
// Removing an item the list does not hold is a programming error and panics:
// removal is only ever triggered for items the list is known to own.
func (l *List[T]) Remove(item T) {
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()

	l.mu.Lock()
	pos := l.indexOf(item)
	if pos < 0 {
		l.mu.Unlock()
		panic(fmt.Sprintf("observable: remove of item %v not held by list", item))
	}
	l.items = append(l.items[:pos], l.items[pos+1:]...)
	observers := l.snapshotObservers()
	l.mu.Unlock()

	emit(observers, Delta{Position: pos, Removed: 1})
}

// Splice inserts items at position at and emits a single delta for the run.
// An at outside [0, Len()] is clamped to the end of the list.
func (l *List[T]) Splice(items []T, at int) {
	if len(items) == 0 {
		return
	}

	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()

	l.mu.Lock()
	if at < 0 || at > len(l.items) {
		at = len(l.items)
	}
	grown := make([]T, 0, len(l.items)+len(items))
	grown = append(grown, l.items[:at]...)
	grown = append(grown, items...)
	grown = append(grown, l.items[at:]...)
	l.items = grown
	observers := l.snapshotObservers()
	l.mu.Unlock()

	emit(observers, Delta{Position: at, Added: len(items)})
}

// snapshotObservers must be called with mu held.
func (l *List[T]) snapshotObservers() []Observer {
	out := make([]Observer, 0, len(l.observers))
	for i := 0; i < l.nextObs; i++ {
		if fn, ok := l.observers[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func emit(observers []Observer, d Delta) {
	for _, fn := range observers {
		fn(d)
	}
}
