package search

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelbudgeter/internal/cache"
	"travelbudgeter/internal/models"
)

type fakeSearcher struct {
	mu      sync.Mutex
	calls   int
	results map[string][]models.FlightOffer
	err     error

	// when set, calls for blockOrigin wait here before returning
	block       chan struct{}
	blockOrigin string
}

func (f *fakeSearcher) SearchOffers(ctx context.Context, endpoint string, params models.SearchParams) ([]models.FlightOffer, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	if params.OriginLocationCode != f.blockOrigin {
		block = nil
	}
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if f.err != nil {
		return nil, f.err
	}
	return f.results[params.OriginLocationCode], nil
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func offers(ids ...string) []models.FlightOffer {
	result := make([]models.FlightOffer, 0, len(ids))
	for _, id := range ids {
		result = append(result, models.FlightOffer{ID: id})
	}
	return result
}

func TestSearchMissingOriginMakesNoCall(t *testing.T) {
	searcher := &fakeSearcher{}
	controller := NewController(searcher, cache.NewNoOpCache())

	result := controller.Search(context.Background(), "flight-offers", models.SearchParams{
		DestinationLocationCode: "NRT",
	})

	assert.ErrorIs(t, result.Err, models.ErrMissingOrigin)
	assert.Equal(t, 0, searcher.callCount())
}

func TestSearchMissingDestinationMakesNoCall(t *testing.T) {
	searcher := &fakeSearcher{}
	controller := NewController(searcher, cache.NewNoOpCache())

	result := controller.Search(context.Background(), "flight-offers", models.SearchParams{
		OriginLocationCode: "BER",
	})

	assert.ErrorIs(t, result.Err, models.ErrMissingDestination)
	assert.Equal(t, 0, searcher.callCount())
}

func TestIdenticalParametersDoNotReissue(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.FlightOffer{"BER": offers("1", "2")}}
	controller := NewController(searcher, cache.NewNoOpCache())

	params := models.SearchParams{OriginLocationCode: "BER", DestinationLocationCode: "NRT", Adults: 1}

	first := controller.Search(context.Background(), "flight-offers", params)
	second := controller.Search(context.Background(), "flight-offers", params)

	require.NoError(t, first.Err)
	require.NoError(t, second.Err)
	assert.Equal(t, first.Offers, second.Offers)
	assert.Equal(t, 1, searcher.callCount())
}

func TestChangedParameterIssuesExactlyOneNewRequest(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.FlightOffer{
		"BER": offers("1"),
		"CDG": offers("2"),
	}}
	controller := NewController(searcher, cache.NewNoOpCache())

	base := models.SearchParams{OriginLocationCode: "BER", DestinationLocationCode: "NRT", Adults: 1}
	changed := base
	changed.OriginLocationCode = "CDG"

	controller.Search(context.Background(), "flight-offers", base)
	result := controller.Search(context.Background(), "flight-offers", changed)

	require.NoError(t, result.Err)
	assert.Equal(t, "2", result.Offers[0].ID)
	assert.Equal(t, 2, searcher.callCount())
}

func TestEndpointIsPartOfTheKey(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.FlightOffer{"BER": offers("1")}}
	controller := NewController(searcher, cache.NewNoOpCache())

	params := models.SearchParams{OriginLocationCode: "BER", DestinationLocationCode: "NRT", Adults: 1}

	controller.Search(context.Background(), "flight-offers", params)
	controller.Search(context.Background(), "best-options", params)

	assert.Equal(t, 2, searcher.callCount())
}

func TestEmptyResultIsNotAnError(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.FlightOffer{}}
	controller := NewController(searcher, cache.NewNoOpCache())

	result := controller.Search(context.Background(), "flight-offers", models.SearchParams{
		OriginLocationCode:      "BER",
		DestinationLocationCode: "NRT",
		Adults:                  1,
	})

	require.NoError(t, result.Err)
	require.NotNil(t, result.Offers)
	assert.Len(t, result.Offers, 0)
}

func TestFailureIsTerminalForTheParameterSet(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("upstream down")}
	controller := NewController(searcher, cache.NewNoOpCache())

	params := models.SearchParams{OriginLocationCode: "BER", DestinationLocationCode: "NRT", Adults: 1}

	first := controller.Search(context.Background(), "flight-offers", params)
	second := controller.Search(context.Background(), "flight-offers", params)

	require.Error(t, first.Err)
	require.Error(t, second.Err)
	assert.Equal(t, 1, searcher.callCount(), "failed search must not be retried automatically")
}

func TestStaleCompletionDoesNotOverwriteNewerResult(t *testing.T) {
	block := make(chan struct{})
	searcher := &fakeSearcher{
		results: map[string][]models.FlightOffer{
			"BER": offers("slow"),
			"CDG": offers("fast"),
		},
		block:       block,
		blockOrigin: "BER",
	}
	controller := NewController(searcher, cache.NewNoOpCache())

	slow := models.SearchParams{OriginLocationCode: "BER", DestinationLocationCode: "NRT", Adults: 1}
	fast := models.SearchParams{OriginLocationCode: "CDG", DestinationLocationCode: "NRT", Adults: 1}

	done := make(chan Result, 1)
	go func() {
		done <- controller.Search(context.Background(), "flight-offers", slow)
	}()

	// wait for the slow search to be in flight
	require.Eventually(t, func() bool { return searcher.callCount() == 1 }, time.Second, time.Millisecond)

	// supersede it, release its blocker after the fast one is current
	go func() {
		controller.Search(context.Background(), "flight-offers", fast)
		close(block)
	}()

	staleResult := <-done
	require.NoError(t, staleResult.Err)
	assert.Equal(t, "slow", staleResult.Offers[0].ID)

	current, ok := controller.Current()
	require.True(t, ok)
	require.NoError(t, current.Err)
	assert.Equal(t, "fast", current.Offers[0].ID, "stale completion must not displace the newer result")
}

func TestOfferByID(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.FlightOffer{"BER": offers("1", "2", "3")}}
	controller := NewController(searcher, cache.NewNoOpCache())

	controller.Search(context.Background(), "flight-offers", models.SearchParams{
		OriginLocationCode:      "BER",
		DestinationLocationCode: "NRT",
		Adults:                  1,
	})

	offer, ok := controller.OfferByID("2")
	require.True(t, ok)
	assert.Equal(t, "2", offer.ID)

	_, ok = controller.OfferByID("99")
	assert.False(t, ok)
}

type recordingCache struct {
	mu          sync.Mutex
	setCalls    int
	hadDeadline bool
}

func (c *recordingCache) Get(ctx context.Context, key string) ([]models.FlightOffer, bool) {
	return nil, false
}

func (c *recordingCache) Set(ctx context.Context, key string, offers []models.FlightOffer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCalls++
	_, c.hadDeadline = ctx.Deadline()
	return nil
}

func (c *recordingCache) Close() error { return nil }

func TestCacheWriteCarriesDeadline(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]models.FlightOffer{"BER": offers("1")}}
	store := &recordingCache{}
	controller := NewController(searcher, store)

	result := controller.Search(context.Background(), "flight-offers", models.SearchParams{
		OriginLocationCode:      "BER",
		DestinationLocationCode: "NRT",
		Adults:                  1,
	})
	require.NoError(t, result.Err)

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Equal(t, 1, store.setCalls)
	assert.True(t, store.hadDeadline, "offer cache write must not be unbounded")
}
