package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/haikuowuya/Rosie/datasource"
	"github.com/haikuowuya/Rosie/events"
	"github.com/haikuowuya/Rosie/metrics"
	"golang.org/x/sync/singleflight"
)

// Sources lists the data sources of a repository by capability. The order
// within each list is the priority order: first listed, first consulted.
type Sources[K comparable, V any] struct {
	Caches     []datasource.Cache[K, V]
	Readables  []datasource.Readable[K, V]
	Writeables []datasource.Writeable[K, V]
}

type source[T any] struct {
	name string
	impl T
}

// Repository serves values from an ordered set of cache, readable and
// writeable sources behind one get/add/delete contract. It holds no values
// itself and is safe for concurrent use as long as its sources are.
type Repository[K comparable, V any] struct {
	name       string
	keyFunc    datasource.KeyFunc[K, V]
	caches     []source[datasource.Cache[K, V]]
	readables  []source[datasource.Readable[K, V]]
	writeables []source[datasource.Writeable[K, V]]

	metrics  *metrics.MetricsWriter
	coalesce bool
	group    singleflight.Group
	changes  events.ISubscriptionManager
}

// New creates a repository over the given sources. keyFunc identifies
// values when results of several sources are merged.
func New[K comparable, V any](keyFunc datasource.KeyFunc[K, V], sources Sources[K, V], opts ...Option) *Repository[K, V] {
	o := options{name: "repository"}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Repository[K, V]{
		name:     o.name,
		keyFunc:  keyFunc,
		metrics:  o.metrics,
		coalesce: o.coalesce,
		changes:  o.changes,
	}
	for i, c := range sources.Caches {
		r.caches = append(r.caches, source[datasource.Cache[K, V]]{name: sourceName(c, "cache", i), impl: c})
	}
	for i, rd := range sources.Readables {
		r.readables = append(r.readables, source[datasource.Readable[K, V]]{name: sourceName(rd, "readable", i), impl: rd})
	}
	for i, w := range sources.Writeables {
		r.writeables = append(r.writeables, source[datasource.Writeable[K, V]]{name: sourceName(w, "writeable", i), impl: w})
	}
	return r
}

// Name returns the repository name
func (r *Repository[K, V]) Name() string {
	return r.name
}

// GetByKey returns the value stored under key. Caches are consulted first
// in priority order, then readable sources; a value found in a readable
// source is written to every cache before it is returned. found=false with
// a nil error means no source has the value.
func (r *Repository[K, V]) GetByKey(ctx context.Context, key K, policy ...ReadPolicy) (value V, found bool, err error) {
	start := time.Now()
	defer func() { r.record(metrics.OpGetByKey, found, err, start) }()

	p := readPolicy(policy)
	useCaches := p.useCaches() && len(r.caches) > 0
	useReadables := p.useReadables() && len(r.readables) > 0
	if !useCaches && !useReadables {
		return value, false, newConfigurationError(metrics.OpGetByKey, p)
	}

	if useCaches {
		if value, found = r.getFromCaches(ctx, key); found {
			r.metrics.RecordCacheHit()
			return value, true, nil
		}
		r.metrics.RecordCacheMiss()
	}

	if !useReadables {
		return value, false, nil
	}

	value, found, err = r.getFromReadables(ctx, key)
	if err != nil || !found {
		return value, found, err
	}

	r.populateCaches(ctx, []V{value})
	return value, true, nil
}

// GetAll returns the values of every consulted source. Cache values come
// first and win over readable values with the same key; readable values
// fill in keys no cache holds and are written to every cache. A failing
// source is skipped; the call fails only if every consulted source failed.
func (r *Repository[K, V]) GetAll(ctx context.Context, policy ...ReadPolicy) (values []V, err error) {
	start := time.Now()
	defer func() { r.record(metrics.OpGetAll, true, err, start) }()

	p := readPolicy(policy)
	useCaches := p.useCaches() && len(r.caches) > 0
	useReadables := p.useReadables() && len(r.readables) > 0
	if !useCaches && !useReadables {
		return nil, newConfigurationError(metrics.OpGetAll, p)
	}

	seen := make(map[K]struct{})
	values = make([]V, 0)
	consulted, failed := 0, 0
	var firstErr error

	collect := func(name string, fetch func() ([]V, error)) []V {
		consulted++
		fetched, err := fetch()
		if err != nil {
			failed++
			failure := r.sourceFailure(name, metrics.OpGetAll, err)
			if firstErr == nil {
				firstErr = failure
			}
			return nil
		}
		var added []V
		for _, v := range fetched {
			k := r.keyFunc(v)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			values = append(values, v)
			added = append(added, v)
		}
		return added
	}

	if useCaches {
		for _, c := range r.caches {
			collect(c.name, func() ([]V, error) { return c.impl.GetAll(ctx) })
		}
	}

	var fetched []V
	if useReadables {
		for _, rd := range r.readables {
			fetched = append(fetched, collect(rd.name, func() ([]V, error) { return rd.impl.GetAll(ctx) })...)
		}
	}

	if failed == consulted {
		return nil, firstErr
	}

	r.populateCaches(ctx, fetched)
	return values, nil
}

// AddOrUpdate writes value according to the write policy. Writeable
// sources are attempted first, in priority order, then caches. The result
// lists the outcome of every attempted target; err is non-nil when the
// policy's success condition was not met.
func (r *Repository[K, V]) AddOrUpdate(ctx context.Context, value V, policy ...WritePolicy) (result WriteResult, err error) {
	start := time.Now()
	defer func() {
		r.record(metrics.OpAddOrUpdate, true, err, start)
		r.notify(ctx, metrics.OpAddOrUpdate, err)
	}()

	p := writePolicy(policy)
	if len(r.writeables) == 0 && len(r.caches) == 0 {
		return result, newConfigurationError(metrics.OpAddOrUpdate, p)
	}

	write := func(name string, w datasource.Writeable[K, V]) bool {
		err := w.AddOrUpdate(ctx, value)
		if err != nil {
			err = r.sourceFailure(name, metrics.OpAddOrUpdate, err)
		}
		result.add(name, err)
		return err == nil
	}

	switch p {
	case WriteOnce:
		if len(r.writeables) == 0 {
			for _, c := range r.caches {
				if write(c.name, c.impl) {
					break
				}
			}
			break
		}
		written := false
		for _, w := range r.writeables {
			if write(w.name, w.impl) {
				written = true
				break
			}
		}
		if written {
			for _, c := range r.caches {
				write(c.name, c.impl)
			}
		}
		if !written {
			return result, newAggregatedWriteFailure(metrics.OpAddOrUpdate, result)
		}
		return result, nil
	default:
		for _, w := range r.writeables {
			write(w.name, w.impl)
		}
		for _, c := range r.caches {
			write(c.name, c.impl)
		}
	}

	return result, r.checkWrite(metrics.OpAddOrUpdate, p, result)
}

// DeleteByKey removes key from every writeable source and cache. Every
// target is attempted even if an earlier one fails.
func (r *Repository[K, V]) DeleteByKey(ctx context.Context, key K) (result WriteResult, err error) {
	start := time.Now()
	defer func() {
		r.record(metrics.OpDeleteByKey, true, err, start)
		r.notify(ctx, metrics.OpDeleteByKey, err)
	}()

	return r.fanOutDelete(metrics.OpDeleteByKey, func(w datasource.Writeable[K, V]) error {
		return w.DeleteByKey(ctx, key)
	})
}

// DeleteAll removes every value from every writeable source and cache.
// Every target is attempted even if an earlier one fails.
func (r *Repository[K, V]) DeleteAll(ctx context.Context) (result WriteResult, err error) {
	start := time.Now()
	defer func() {
		r.record(metrics.OpDeleteAll, true, err, start)
		r.notify(ctx, metrics.OpDeleteAll, err)
	}()

	return r.fanOutDelete(metrics.OpDeleteAll, func(w datasource.Writeable[K, V]) error {
		return w.DeleteAll(ctx)
	})
}

func (r *Repository[K, V]) fanOutDelete(operation string, del func(datasource.Writeable[K, V]) error) (WriteResult, error) {
	var result WriteResult
	if len(r.writeables) == 0 && len(r.caches) == 0 {
		return result, newConfigurationError(operation, WriteAll)
	}

	attempt := func(name string, w datasource.Writeable[K, V]) {
		err := del(w)
		if err != nil {
			err = r.sourceFailure(name, operation, err)
		}
		result.add(name, err)
	}
	for _, w := range r.writeables {
		attempt(w.name, w.impl)
	}
	for _, c := range r.caches {
		attempt(c.name, c.impl)
	}

	return result, r.checkWrite(operation, WriteAll, result)
}

func (r *Repository[K, V]) checkWrite(operation string, p WritePolicy, result WriteResult) error {
	if !result.Succeeded() {
		return newAggregatedWriteFailure(operation, result)
	}
	if p == WriteAllStrict && len(result.Failed()) > 0 {
		return newAggregatedWriteFailure(operation, result)
	}
	if failed := result.FailedSources(); len(failed) > 0 {
		log.Printf("Repository: %s %s partially failed on %v", r.name, operation, failed)
	}
	return nil
}

func (r *Repository[K, V]) notify(ctx context.Context, operation string, err error) {
	if r.changes == nil || err != nil {
		return
	}
	r.changes.Emit(ctx, events.Change{Repository: r.name, Operation: operation})
}

// getFromCaches returns the first hit in priority order. Cache failures
// count as misses.
func (r *Repository[K, V]) getFromCaches(ctx context.Context, key K) (V, bool) {
	for _, c := range r.caches {
		value, found, err := c.impl.GetByKey(ctx, key)
		if err != nil {
			r.sourceFailure(c.name, metrics.OpGetByKey, err)
			continue
		}
		if found {
			return value, true
		}
	}
	var zero V
	return zero, false
}

type readResult[V any] struct {
	value V
	found bool
}

func (r *Repository[K, V]) getFromReadables(ctx context.Context, key K) (V, bool, error) {
	if !r.coalesce {
		return r.fetchFromReadables(ctx, key)
	}

	res, err, _ := r.group.Do(datasource.KeyString(key), func() (interface{}, error) {
		value, found, err := r.fetchFromReadables(ctx, key)
		return readResult[V]{value: value, found: found}, err
	})
	rr, _ := res.(readResult[V])
	return rr.value, rr.found, err
}

// fetchFromReadables returns the first hit in priority order. If no source
// has the value and at least one failed, the first failure is returned,
// since the failing source might have held it.
func (r *Repository[K, V]) fetchFromReadables(ctx context.Context, key K) (V, bool, error) {
	var firstErr error
	for _, rd := range r.readables {
		value, found, err := rd.impl.GetByKey(ctx, key)
		if err != nil {
			failure := r.sourceFailure(rd.name, metrics.OpGetByKey, err)
			if firstErr == nil {
				firstErr = failure
			}
			continue
		}
		if found {
			return value, true, nil
		}
	}
	var zero V
	return zero, false, firstErr
}

// populateCaches writes values to every cache. Failures are logged only:
// the values are already safe in their source of truth.
func (r *Repository[K, V]) populateCaches(ctx context.Context, values []V) {
	r.populateCachesExcept(ctx, values, nil)
}

func (r *Repository[K, V]) populateCachesExcept(ctx context.Context, values []V, skip func(datasource.Cache[K, V]) bool) {
	for _, c := range r.caches {
		if skip != nil && skip(c.impl) {
			continue
		}
		for _, v := range values {
			if err := c.impl.AddOrUpdate(ctx, v); err != nil {
				r.sourceFailure(c.name, "populate_cache", err)
			}
		}
	}
}

func (r *Repository[K, V]) sourceFailure(name, operation string, err error) error {
	log.Printf("Repository: %s source %s failed during %s: %v", r.name, name, operation, err)
	r.metrics.RecordSourceFailure(name, operation)
	return newSourceFailure(name, operation, err)
}

func (r *Repository[K, V]) record(operation string, found bool, err error, start time.Time) {
	result := metrics.ResultSuccess
	switch {
	case IsConfigurationError(err):
		result = metrics.ResultConfigError
	case err != nil:
		result = metrics.ResultError
	case !found:
		result = metrics.ResultNotFound
	}
	r.metrics.RecordOperation(operation, result, time.Since(start))
}

func sourceName(s any, role string, index int) string {
	if named, ok := s.(datasource.Named); ok && named.Name() != "" {
		return named.Name()
	}
	return fmt.Sprintf("%s[%d]", role, index)
}
