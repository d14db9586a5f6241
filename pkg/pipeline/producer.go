package pipeline

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planbook/pkg/cache"
	"github.com/matzehuels/planbook/pkg/document"
)

// cachedPage is the cache encoding of a rendered page.
type cachedPage struct {
	Data  []byte          `json:"data"`
	Links []document.Link `json:"links,omitempty"`
}

// cachingProducer serves pages from the cache and stores freshly rendered
// ones. Page numbers and labels are filled in by the builder, so cached
// pages stay valid as long as the build hash matches.
type cachingProducer struct {
	inner   document.Producer
	cache   cache.Cache
	keyer   cache.Keyer
	hash    string
	refresh bool
	logger  *log.Logger

	hits, misses atomic.Int64
}

func (p *cachingProducer) Produce(ctx context.Context, page *document.PageDeclaration, res *document.Resolver) (*document.RenderedPage, error) {
	key := p.keyer.PageKey(p.hash, page.DestinationKey())

	if !p.refresh {
		if data, hit, err := p.cache.Get(ctx, key); err == nil && hit {
			var cached cachedPage
			if err := json.Unmarshal(data, &cached); err == nil {
				p.hits.Add(1)
				return &document.RenderedPage{Data: cached.Data, Links: cached.Links}, nil
			}
			// If deserialization fails, fall through to rerender
		} else if err != nil {
			p.logger.Debug("page cache read failed", "key", page.DestinationKey(), "error", err)
		}
	}

	rendered, err := p.inner.Produce(ctx, page, res)
	if err != nil {
		return nil, err
	}
	p.misses.Add(1)

	if data, err := json.Marshal(cachedPage{Data: rendered.Data, Links: rendered.Links}); err == nil {
		if err := p.cache.Set(ctx, key, data, cache.TTLPage); err != nil {
			p.logger.Debug("page cache write failed", "key", page.DestinationKey(), "error", err)
		}
	}
	return rendered, nil
}
