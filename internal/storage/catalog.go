package storage

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/wosamar/rakuten-tools/internal/cache"
	"github.com/wosamar/rakuten-tools/internal/engine"
)

// ItemLoader yields the full catalog; satisfied by Store and by test fakes.
type ItemLoader interface {
	LoadItems(ctx context.Context) ([]engine.ProductSnapshot, error)
}

// Catalog is the in-memory product snapshot generation runs read from.
// Refreshes swap the whole slice, so readers never see a partial load.
type Catalog struct {
	snap cache.Snapshot[[]engine.ProductSnapshot]
}

func NewCatalog() *Catalog { return &Catalog{} }

func (c *Catalog) Refresh(ctx context.Context, src ItemLoader) error {
	items, err := src.LoadItems(ctx)
	if err != nil {
		return err
	}
	if items == nil {
		items = []engine.ProductSnapshot{}
	}
	c.snap.Store(items)
	log.Info().Int("items", len(items)).Msg("catalog snapshot refreshed")
	return nil
}

// Items returns the current snapshot; nil before the first refresh.
func (c *Catalog) Items() []engine.ProductSnapshot {
	items, _ := c.snap.Load()
	return items
}
