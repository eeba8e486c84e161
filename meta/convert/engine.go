package convert

import (
	"fmt"
	"sync"

	"github.com/joshuapare/metakit/meta"
)

// Func converts one value to another representation. It fails with an error
// wrapping meta.ErrCastFailure when the runtime value is not acceptable.
type Func func(v any) (any, error)

type pair struct {
	from, to meta.Descriptor
}

type edge struct {
	from, to meta.Descriptor
	fn       Func
	seq      int
}

// Options configures an Engine.
type Options struct {
	// DisableCache turns off path memoization. Default: caching enabled.
	DisableCache bool
}

// Engine is a registry of conversion edges with shortest-path search.
type Engine struct {
	mu           sync.RWMutex
	edges        map[pair]*edge
	out          map[meta.Descriptor][]*edge
	cache        map[pair][]meta.Descriptor
	disableCache bool
	nextSeq      int
}

// NewEngine returns an empty engine.
func NewEngine(opts Options) *Engine {
	return &Engine{
		edges:        make(map[pair]*edge),
		out:          make(map[meta.Descriptor][]*edge),
		cache:        make(map[pair][]meta.Descriptor),
		disableCache: opts.DisableCache,
	}
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the process-wide engine, initialized lazily.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = NewEngine(Options{})
	})
	return defaultEngine
}

// Register adds a directed edge from one descriptor to another. At most one
// edge may exist per ordered pair; a duplicate fails with
// meta.ErrAlreadyRegistered.
func (e *Engine) Register(from, to meta.Descriptor, fn Func) error {
	if fn == nil {
		return fmt.Errorf("convert: register %s -> %s: nil function: %w", from.Name(), to.Name(), meta.ErrInternal)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.registerLocked(from, to, fn)
}

func (e *Engine) registerLocked(from, to meta.Descriptor, fn Func) error {
	k := pair{from, to}
	if _, dup := e.edges[k]; dup {
		return fmt.Errorf("convert: edge %s -> %s: %w", from.Name(), to.Name(), meta.ErrAlreadyRegistered)
	}
	ed := &edge{from: from, to: to, fn: fn, seq: e.nextSeq}
	e.nextSeq++
	e.edges[k] = ed
	e.out[from] = append(e.out[from], ed)
	clear(e.cache)
	return nil
}

// RegisterBidirectional adds the forward edge and its inverse together.
func (e *Engine) RegisterBidirectional(from, to meta.Descriptor, forward, inverse Func) error {
	if forward == nil || inverse == nil {
		return fmt.Errorf("convert: register %s <-> %s: nil function: %w", from.Name(), to.Name(), meta.ErrInternal)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.registerLocked(from, to, forward); err != nil {
		return err
	}
	if err := e.registerLocked(to, from, inverse); err != nil {
		// Roll back the forward edge so the pair stays consistent.
		e.removeLocked(from, to)
		return err
	}
	return nil
}

// Remove deletes the edge for the ordered pair, invalidating cached paths.
func (e *Engine) Remove(from, to meta.Descriptor) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.edges[pair{from, to}]; !ok {
		return fmt.Errorf("convert: remove edge %s -> %s: %w", from.Name(), to.Name(), meta.ErrNotFound)
	}
	e.removeLocked(from, to)
	return nil
}

func (e *Engine) removeLocked(from, to meta.Descriptor) {
	k := pair{from, to}
	ed := e.edges[k]
	delete(e.edges, k)
	outs := e.out[from]
	for i, cand := range outs {
		if cand == ed {
			e.out[from] = append(outs[:i:i], outs[i+1:]...)
			break
		}
	}
	if len(e.out[from]) == 0 {
		delete(e.out, from)
	}
	clear(e.cache)
}

// CanConvert reports whether a conversion route exists between the two
// descriptors, including container elementwise routes.
func (e *Engine) CanConvert(from, to meta.Descriptor) bool {
	if from.Equal(to) {
		return true
	}
	if p, _ := e.Path(from, to); p != nil {
		return true
	}
	return e.containerRoute(from, to)
}

// Path returns the memoized shortest descriptor sequence from one
// descriptor to another, computing and caching it on demand. Fails with
// meta.ErrNoPath when the descriptors are not connected.
func (e *Engine) Path(from, to meta.Descriptor) ([]meta.Descriptor, error) {
	k := pair{from, to}

	e.mu.RLock()
	if !e.disableCache {
		if p, ok := e.cache[k]; ok {
			e.mu.RUnlock()
			return p, nil
		}
	}
	p := e.searchLocked(from, to)
	e.mu.RUnlock()

	if p == nil {
		return nil, fmt.Errorf("convert: %s -> %s: %w", from.Name(), to.Name(), meta.ErrNoPath)
	}
	if !e.disableCache {
		e.mu.Lock()
		e.cache[k] = p
		e.mu.Unlock()
	}
	return p, nil
}

// searchLocked runs BFS from one descriptor toward another under at least a
// read lock. First arrival wins, so the result has minimal edge count and
// ties resolve to edge insertion order.
func (e *Engine) searchLocked(from, to meta.Descriptor) []meta.Descriptor {
	if from.Equal(to) {
		return []meta.Descriptor{from}
	}
	prev := map[meta.Descriptor]meta.Descriptor{from: from}
	queue := []meta.Descriptor{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, ed := range e.out[cur] {
			if _, seen := prev[ed.to]; seen {
				continue
			}
			prev[ed.to] = cur
			if ed.to.Equal(to) {
				// Reconstruct back to front.
				path := []meta.Descriptor{to}
				for n := cur; ; n = prev[n] {
					path = append(path, n)
					if n.Equal(from) {
						break
					}
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path
			}
			queue = append(queue, ed.to)
		}
	}
	return nil
}

// Convert moves v from one descriptor to another by applying the shortest
// registered edge chain, or an elementwise container conversion when no
// direct chain exists. Fails with meta.ErrNoPath when no route exists and
// meta.ErrCastFailure when an edge rejects the concrete input; partial
// results are discarded.
func (e *Engine) Convert(from, to meta.Descriptor, v any) (any, error) {
	if from.Equal(to) {
		return v, nil
	}

	path, pathErr := e.Path(from, to)
	if pathErr != nil {
		if out, ok, err := e.convertContainer(from, to, v); ok {
			return out, err
		}
		return nil, pathErr
	}

	// Collect the edge functions under the read lock, then run them
	// outside it: edges are user code and may re-enter the engine.
	fns := make([]Func, 0, len(path)-1)
	steps := make([]pair, 0, len(path)-1)
	e.mu.RLock()
	for i := 0; i+1 < len(path); i++ {
		ed, ok := e.edges[pair{path[i], path[i+1]}]
		if !ok {
			e.mu.RUnlock()
			return nil, fmt.Errorf("convert: cached path %s -> %s lost edge %s -> %s: %w",
				from.Name(), to.Name(), path[i].Name(), path[i+1].Name(), meta.ErrNoPath)
		}
		fns = append(fns, ed.fn)
		steps = append(steps, pair{path[i], path[i+1]})
	}
	e.mu.RUnlock()

	cur := v
	for i, fn := range fns {
		next, err := fn(cur)
		if err != nil {
			return nil, fmt.Errorf("convert: %s -> %s at step %s -> %s: %w",
				from.Name(), to.Name(), steps[i].from.Name(), steps[i].to.Name(), err)
		}
		cur = next
	}
	return cur, nil
}

// ConvertTo attempts every registered edge ending in To, in insertion
// order, until one accepts v. Fails with meta.ErrNoPath when none does.
func ConvertTo[To any](e *Engine, v any) (To, error) {
	var zero To
	target := meta.TypeOf[To]()

	e.mu.RLock()
	var candidates []*edge
	for _, ed := range e.edges {
		if ed.to.Equal(target) {
			candidates = append(candidates, ed)
		}
	}
	e.mu.RUnlock()
	// Map iteration order is random; restore registration order.
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && candidates[j].seq < candidates[j-1].seq; j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}

	for _, ed := range candidates {
		out, err := ed.fn(v)
		if err != nil {
			continue
		}
		if t, ok := out.(To); ok {
			return t, nil
		}
	}
	return zero, fmt.Errorf("convert: no source edge into %s accepted %s: %w",
		target.Name(), meta.TypeFor(v).Name(), meta.ErrNoPath)
}
