package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"sync"
	"time"

	"travelbudgeter/internal/cache"
	"travelbudgeter/internal/models"
)

// cacheWriteTimeout caps the best-effort write of a completed result to the
// offer cache.
const cacheWriteTimeout = 5 * time.Second

// Searcher is the slice of the upstream client the controller needs.
type Searcher interface {
	SearchOffers(ctx context.Context, endpoint string, params models.SearchParams) ([]models.FlightOffer, error)
}

// Result is the terminal state of one parameter set: either an ordered offer
// sequence (possibly empty, which is "no results") or an error. Never both.
type Result struct {
	Key    string
	Offers []models.FlightOffer
	Err    error
}

// Controller turns search parameters into at most one upstream request per
// parameter identity. Repeating a search with identical parameters returns the
// memoized result without touching the network; changing any field produces a
// new key and exactly one new request. A completion whose key no longer
// matches the current key is kept under its own key and never displaces the
// newer search.
type Controller struct {
	client Searcher
	cache  cache.Cache

	mu         sync.Mutex
	currentKey string
	results    map[string]*Result
	inflight   map[string]chan struct{}
}

func NewController(client Searcher, c cache.Cache) *Controller {
	return &Controller{
		client:   client,
		cache:    c,
		results:  make(map[string]*Result),
		inflight: make(map[string]chan struct{}),
	}
}

// Key is the request identity: endpoint plus a hash of the canonical JSON of
// the parameters.
func Key(endpoint string, params models.SearchParams) string {
	data, _ := json.Marshal(params)
	sum := sha256.Sum256(data)
	return endpoint + ":" + hex.EncodeToString(sum[:])
}

// Search runs or reuses the search for the given parameters. Missing origin or
// destination short-circuits with the validation error before any network or
// cache access.
func (c *Controller) Search(ctx context.Context, endpoint string, params models.SearchParams) Result {
	if err := params.Validate(); err != nil {
		return Result{Err: err}
	}

	key := Key(endpoint, params)

	c.mu.Lock()
	if r, ok := c.results[key]; ok {
		c.currentKey = key
		c.mu.Unlock()
		return *r
	}
	if ch, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		return c.await(ctx, key, ch)
	}

	ch := make(chan struct{})
	c.inflight[key] = ch
	c.promote(key)
	c.mu.Unlock()

	if offers, ok := c.cache.Get(ctx, key); ok {
		return c.finish(Result{Key: key, Offers: offers}, ch, false)
	}

	offers, err := c.client.SearchOffers(ctx, endpoint, params)
	if err != nil {
		log.Printf("Search %s failed: %v", endpoint, err)
		return c.finish(Result{Key: key, Err: err}, ch, false)
	}
	if offers == nil {
		offers = []models.FlightOffer{}
	}

	return c.finish(Result{Key: key, Offers: offers}, ch, true)
}

// Current returns the result belonging to the most recent search key, if that
// search has completed.
func (c *Controller) Current() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.results[c.currentKey]
	if !ok {
		return Result{}, false
	}
	return *r, true
}

func (c *Controller) CurrentKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentKey
}

// OfferByID looks an offer up in the current result set.
func (c *Controller) OfferByID(id string) (models.FlightOffer, bool) {
	current, ok := c.Current()
	if !ok || current.Err != nil {
		return models.FlightOffer{}, false
	}
	for _, offer := range current.Offers {
		if offer.ID == id {
			return offer, true
		}
	}
	return models.FlightOffer{}, false
}

// promote marks key as the search the caller now cares about. Error states of
// superseded keys are dropped so that returning to those parameters retries;
// successful results stay memoized. Callers hold c.mu.
func (c *Controller) promote(key string) {
	if c.currentKey != "" && c.currentKey != key {
		if r, ok := c.results[c.currentKey]; ok && r.Err != nil {
			delete(c.results, c.currentKey)
		}
	}
	c.currentKey = key
}

func (c *Controller) finish(res Result, ch chan struct{}, storeCache bool) Result {
	c.mu.Lock()
	c.results[res.Key] = &res
	delete(c.inflight, res.Key)
	stale := c.currentKey != res.Key
	c.mu.Unlock()
	close(ch)

	if storeCache && res.Err == nil && !stale {
		// Bound the write so a stalled cache cannot hold the search hostage.
		cacheCtx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()
		if err := c.cache.Set(cacheCtx, res.Key, res.Offers); err != nil {
			log.Printf("Failed to cache offers for %s: %v", res.Key, err)
		}
	}

	return res
}

// await blocks a duplicate search until the in-flight one for the same key
// resolves, then shares its result.
func (c *Controller) await(ctx context.Context, key string, ch chan struct{}) Result {
	select {
	case <-ch:
	case <-ctx.Done():
		return Result{Key: key, Err: ctx.Err()}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.results[key]; ok {
		return *r
	}
	return Result{Key: key, Err: context.Canceled}
}
