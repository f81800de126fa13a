package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	cronlib "github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// SchemaSource fetches the attribute list for one resource type from the
// record store's schema endpoint.
type SchemaSource interface {
	FetchAttributes(ctx context.Context, rt ResourceType) ([]AttributeDescriptor, error)
}

// Refresher periodically rebuilds the catalog snapshot from a SchemaSource
// and publishes it to a Store. A failed refresh leaves the previous snapshot
// in place; the dispatcher keeps serving the last known catalog.
type Refresher struct {
	store   *Store
	source  SchemaSource
	cache   *Cache
	log     zerolog.Logger
	timeout time.Duration

	mu   sync.Mutex
	cron *cronlib.Cron
}

// NewRefresher wires a refresher. cache may be nil to skip persistence.
func NewRefresher(store *Store, source SchemaSource, cache *Cache, log zerolog.Logger) *Refresher {
	return &Refresher{
		store:   store,
		source:  source,
		cache:   cache,
		log:     log.With().Str("component", "catalog-refresh").Logger(),
		timeout: 30 * time.Second,
	}
}

// RefreshAll fetches every resource type concurrently and, if all succeed,
// publishes the combined snapshot. Partial failures abandon the whole
// refresh so readers never see a catalog mixing two schema generations.
func (r *Refresher) RefreshAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var mu sync.Mutex
	fetched := make(map[ResourceType][]AttributeDescriptor, len(ResourceTypes))

	g, gctx := errgroup.WithContext(ctx)
	for _, rt := range ResourceTypes {
		g.Go(func() error {
			descs, err := r.source.FetchAttributes(gctx, rt)
			if err != nil {
				return fmt.Errorf("fetching %s attributes: %w", rt, err)
			}
			mu.Lock()
			fetched[rt] = descs
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.log.Warn().Err(err).Msg("Catalog refresh failed, serving last known snapshot")
		return err
	}

	next := New(fetched)
	r.store.Replace(next)
	r.log.Debug().Int("resource_types", len(fetched)).Msg("Catalog snapshot replaced")

	if r.cache != nil {
		if err := r.cache.Save(ctx, next); err != nil {
			r.log.Warn().Err(err).Msg("Failed to persist catalog snapshot")
		}
	}
	return nil
}

// Start schedules periodic refreshes with the given cron expression and runs
// one refresh immediately. It returns after the initial refresh attempt.
func (r *Refresher) Start(ctx context.Context, schedule string) error {
	c := cronlib.New()
	_, err := c.AddFunc(schedule, func() {
		if err := r.RefreshAll(context.Background()); err != nil {
			// Already logged; the stale snapshot stays live.
			return
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}

	r.mu.Lock()
	r.cron = c
	r.mu.Unlock()
	c.Start()

	// Initial refresh failure is not fatal: the store already holds either
	// the cached snapshot or the defaults.
	if err := r.RefreshAll(ctx); err != nil {
		r.log.Info().Msg("Initial catalog refresh failed, continuing with seed snapshot")
	}
	return nil
}

// Stop halts the schedule. Safe to call without Start.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron != nil {
		r.cron.Stop()
		r.cron = nil
	}
}
