package warmer

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/haikuowuya/Rosie/datasource"
	"github.com/haikuowuya/Rosie/metrics"
	"github.com/haikuowuya/Rosie/repository"
)

// PageReader reads pages through a repository
type PageReader[V any] interface {
	GetPage(ctx context.Context, page datasource.Page, policy ...repository.ReadPolicy) (datasource.PaginatedCollection[V], bool, error)
}

// Stats describes the last completed warm-up
type Stats struct {
	LastRun  time.Time     `json:"last_run"`
	Pages    int           `json:"pages"`
	Items    int           `json:"items"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

// Warmer periodically walks the pages of a repository from its readable
// source so the caches are refreshed before their entries expire
type Warmer[V any] struct {
	config        Config
	pages         PageReader[V]
	name          string
	metricsWriter *metrics.MetricsWriter

	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc

	stats struct {
		sync.RWMutex
		last Stats
	}
}

// New creates a warmer for pages. name identifies the repository in logs
// and metrics.
func New[V any](cfg Config, pages PageReader[V], name string) *Warmer[V] {
	return &Warmer[V]{
		config:        cfg,
		pages:         pages,
		name:          name,
		metricsWriter: metrics.NewMetricsWriter(name),
	}
}

// Start runs a warm-up immediately and then every configured interval.
// Implements core.Interface.
func (w *Warmer[V]) Start(ctx context.Context) error {
	if err := w.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.running = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		w.run(ctx)

		ticker := time.NewTicker(w.config.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.run(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Printf("PageWarmer: %s warming %d-item pages every %s", w.name, w.config.PageSize, w.config.Interval)
	return nil
}

// Stop terminates the warm-up loop and waits for it to exit.
// Implements core.Interface.
func (w *Warmer[V]) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	w.running = false
}

// IsRunning returns true if the warm-up loop is active
func (w *Warmer[V]) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// LastStats returns the result of the last completed warm-up
func (w *Warmer[V]) LastStats() Stats {
	w.stats.RLock()
	defer w.stats.RUnlock()
	return w.stats.last
}

func (w *Warmer[V]) run(ctx context.Context) {
	start := time.Now()
	stats, err := w.WarmOnce(ctx)
	stats.LastRun = start
	stats.Duration = time.Since(start)
	if err != nil {
		stats.Error = err.Error()
		log.Printf("PageWarmer: %s stopped after %d pages: %v", w.name, stats.Pages, err)
	}

	w.stats.Lock()
	w.stats.last = stats
	w.stats.Unlock()
}

// WarmOnce walks pages from offset 0 until the readable source reports no
// more items or MaxPages is reached. Pages fetched before a failure stay
// cached.
func (w *Warmer[V]) WarmOnce(ctx context.Context) (Stats, error) {
	var stats Stats
	offset := 0

	for w.config.MaxPages == 0 || stats.Pages < w.config.MaxPages {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		page := datasource.Page{Offset: offset, Limit: w.config.PageSize}
		collection, _, err := w.pages.GetPage(ctx, page, repository.ReadReadableOnly)
		if err != nil {
			return stats, fmt.Errorf("failed to warm page %s: %w", page, err)
		}

		stats.Pages++
		stats.Items += collection.Len()
		w.metricsWriter.RecordWarmedItems(collection.Len())

		if !collection.HasMore || collection.Len() == 0 {
			break
		}
		offset += collection.Len()
	}

	return stats, nil
}
