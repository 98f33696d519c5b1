package board

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/status-im/coin-ticker/aux_stats"
	"github.com/status-im/coin-ticker/coingecko_markets"
	"github.com/status-im/coin-ticker/config"
	"github.com/status-im/coin-ticker/events"
	"github.com/status-im/coin-ticker/merge"
	"github.com/status-im/coin-ticker/metrics"
	"github.com/status-im/coin-ticker/quotes"
	"github.com/status-im/coin-ticker/scheduler"
)

//go:generate mockgen -destination=mocks/sources.go . PriceSource,StatsSource,MarketsSource

// PriceSource provides the auxiliary asset price
type PriceSource interface {
	FetchPrice(ctx context.Context) (float64, error)
}

// StatsSource provides the auxiliary asset market statistics
type StatsSource interface {
	FetchStats(ctx context.Context) (aux_stats.Stats, error)
}

// MarketsSource provides the paginated market list
type MarketsSource interface {
	FetchAllPages(ctx context.Context, pages []int) ([]coingecko_markets.PageData, error)
}

// ErrNoMarketData is reported when the initial load could not retrieve any market page
var ErrNoMarketData = errors.New("no market data")

var errStatsDisabled = errors.New("stats source not configured")

// State is the lifecycle state of the board
type State int32

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Board owns the merged price list. It loads once on Start, then keeps the
// auxiliary price fresh on a fixed interval until Stop. Published snapshots
// are immutable; every change swaps in a new one.
type Board struct {
	auxCfg   config.AuxAssetConfig
	pages    []int
	interval time.Duration

	price   PriceSource
	stats   StatsSource
	markets MarketsSource

	snapshot atomic.Pointer[quotes.Snapshot]
	state    atomic.Int32
	errMu    sync.RWMutex
	err      error
	auxIndex int

	subs      *events.SubscriptionManager
	refresher *scheduler.Scheduler
	metrics   *metrics.MetricsWriter

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	ready   chan struct{}
	started bool

	publishMu sync.Mutex
}

// NewBoard creates a board; stats may be nil when the stats source is disabled
func NewBoard(cfg *config.Config, price PriceSource, stats StatsSource, markets MarketsSource) *Board {
	b := &Board{
		auxCfg:   cfg.AuxAsset,
		pages:    cfg.Markets.Pages(),
		interval: cfg.Refresh.Interval,
		price:    price,
		stats:    stats,
		markets:  markets,
		subs:     events.NewSubscriptionManager(),
		metrics:  metrics.NewMetricsWriter(metrics.ServiceBoard),
		ready:    make(chan struct{}),
	}
	refreshMetrics := metrics.NewMetricsWriter(metrics.ServiceRefresher)
	b.refresher = scheduler.New(b.interval, b.refreshPrice, scheduler.WithOnSkip(func() {
		log.Printf("Board: Refresh tick skipped, previous refresh still running")
		refreshMetrics.RecordRefreshTick(metrics.TickSkipped)
	}))
	return b
}

// Start implements core.Interface. It loads the board in the background and
// starts the refresh task once the list is published; Ready is closed when
// the load ends either way.
func (b *Board) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return nil
	}
	b.started = true

	ctx, b.cancel = context.WithCancel(ctx)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer close(b.ready)

		if err := b.Load(ctx); err != nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
		b.refresher.Start(ctx, false)
		log.Printf("Board: Refreshing auxiliary price every %v", b.interval)
	}()

	return nil
}

// Stop implements core.Interface. No refresh runs and nothing is published after it returns.
func (b *Board) Stop() {
	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return
	}
	if b.cancel != nil {
		b.cancel()
	}
	b.mu.Unlock()

	b.wg.Wait()
	b.refresher.Stop()
	b.subs.Close()
	log.Printf("Board: Stopped")
}

// Ready is closed once the initial load has finished, successfully or not
func (b *Board) Ready() <-chan struct{} {
	return b.ready
}

// Load fetches both auxiliary sources concurrently, then the market pages, merges
// and publishes. Only a market sweep without any page fails the load.
func (b *Board) Load(ctx context.Context) error {
	defer b.metrics.TrackDataFetchCycle()()
	startTime := time.Now()

	price, stats := b.fetchAux(ctx)

	pages, err := b.markets.FetchAllPages(ctx, b.pages)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrNoMarketData, err)
		if ctx.Err() != nil {
			log.Printf("Board: Load cancelled: %v", err)
			return err
		}
		b.fail(err)
		return err
	}

	aux := merge.BuildAuxQuote(b.auxCfg, price, stats)
	list := merge.Merge(aux, coingecko_markets.PageQuotes(pages), b.auxCfg.DeclaredRank)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	b.publishInitial(list)
	log.Printf("Board: Loaded %d entries from %d pages in %.2fs (aux price available: %v, aux stats available: %v)",
		len(list), len(pages), time.Since(startTime).Seconds(), price.IsOk(), stats.IsOk())
	return nil
}

func (b *Board) fetchAux(ctx context.Context) (quotes.Result[float64], quotes.Result[aux_stats.Stats]) {
	var wg sync.WaitGroup
	price := quotes.Unavailable[float64](errors.New("price not fetched"))
	stats := quotes.Unavailable[aux_stats.Stats](errStatsDisabled)

	wg.Add(1)
	go func() {
		defer wg.Done()
		p, err := b.price.FetchPrice(ctx)
		if err != nil {
			log.Printf("Board: Auxiliary price unavailable: %v", err)
			price = quotes.Unavailable[float64](err)
			return
		}
		price = quotes.Ok(p)
	}()

	if b.stats != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := b.stats.FetchStats(ctx)
			if err != nil {
				log.Printf("Board: Auxiliary stats unavailable: %v", err)
				stats = quotes.Unavailable[aux_stats.Stats](err)
				return
			}
			stats = quotes.Ok(s)
		}()
	}

	wg.Wait()
	return price, stats
}

func (b *Board) publishInitial(list []quotes.AssetQuote) {
	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	b.auxIndex = -1
	for i, q := range list {
		if q.IsAuxiliary {
			b.auxIndex = i
			break
		}
	}

	b.store(list)
	b.state.Store(int32(StateReady))
	b.metrics.RecordCacheSize(len(list))
	if b.auxIndex >= 0 {
		b.metrics.RecordAuxPrice(list[b.auxIndex].CurrentPrice)
	}
}

// store publishes list as the next snapshot; callers hold publishMu
func (b *Board) store(list []quotes.AssetQuote) {
	var version uint64 = 1
	if cur := b.snapshot.Load(); cur != nil {
		version = cur.Version + 1
	}
	b.snapshot.Store(&quotes.Snapshot{
		Quotes:    list,
		UpdatedAt: time.Now().UTC(),
		Version:   version,
	})
	b.subs.Emit(context.Background())
}

func (b *Board) fail(err error) {
	log.Printf("Board: Failed to load market data: %v", err)
	b.errMu.Lock()
	b.err = err
	b.errMu.Unlock()
	b.state.Store(int32(StateFailed))
}

// refreshPrice is the periodic task: it re-fetches the auxiliary price and, when it
// changed, publishes a snapshot in which only that price differs
func (b *Board) refreshPrice(ctx context.Context) {
	refreshMetrics := metrics.NewMetricsWriter(metrics.ServiceRefresher)

	price, err := b.price.FetchPrice(ctx)
	if err != nil {
		log.Printf("Board: Auxiliary price refresh failed, keeping previous price: %v", err)
		refreshMetrics.RecordRefreshTick(metrics.TickFailed)
		return
	}
	if ctx.Err() != nil {
		return
	}

	result := b.applyPrice(price)
	refreshMetrics.RecordRefreshTick(result)
}

// applyPrice swaps in a snapshot with the auxiliary price replaced
func (b *Board) applyPrice(price float64) string {
	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	cur := b.snapshot.Load()
	if cur == nil || b.auxIndex < 0 || b.auxIndex >= len(cur.Quotes) {
		return metrics.TickFailed
	}
	if cur.Quotes[b.auxIndex].CurrentPrice == price {
		return metrics.TickUnchanged
	}

	list := make([]quotes.AssetQuote, len(cur.Quotes))
	copy(list, cur.Quotes)
	list[b.auxIndex].CurrentPrice = price

	b.store(list)
	b.metrics.RecordAuxPrice(price)
	log.Printf("Board: Auxiliary price updated to %g", price)
	return metrics.TickUpdated
}

// State returns the current lifecycle state
func (b *Board) State() State {
	return State(b.state.Load())
}

// Err returns the load error once the board is in StateFailed
func (b *Board) Err() error {
	b.errMu.RLock()
	defer b.errMu.RUnlock()
	return b.err
}

// Snapshot returns the latest published snapshot, or nil before the first one
func (b *Board) Snapshot() *quotes.Snapshot {
	return b.snapshot.Load()
}

// Quote looks up a single entry by id in the latest snapshot
func (b *Board) Quote(id string) (quotes.AssetQuote, bool) {
	snap := b.snapshot.Load()
	if snap == nil {
		return quotes.AssetQuote{}, false
	}
	for _, q := range snap.Quotes {
		if q.ID == id {
			return q, true
		}
	}
	return quotes.AssetQuote{}, false
}

// Subscribe returns a subscription signalled after every publication
func (b *Board) Subscribe() events.ISubscription {
	return b.subs.Subscribe()
}

// RefreshSkipped returns how many refresh ticks were skipped by the overlap guard
func (b *Board) RefreshSkipped() uint64 {
	return b.refresher.Skipped()
}
