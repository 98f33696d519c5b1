package coingecko_markets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/status-im/coin-ticker/config"
	cm "github.com/status-im/coin-ticker/market_common"
	"github.com/status-im/coin-ticker/metrics"
	"github.com/status-im/coin-ticker/quotes"
)

// PageData holds the quotes of one successfully fetched page
type PageData struct {
	Page   int
	Quotes []quotes.AssetQuote
}

// PageOutcome classifies how a single page request ended
type PageOutcome int

const (
	PageSuccess PageOutcome = iota
	PageRateLimited
	PageHardFailure
)

func (o PageOutcome) String() string {
	switch o {
	case PageSuccess:
		return "success"
	case PageRateLimited:
		return "rate_limited"
	default:
		return "hard_failure"
	}
}

// ClassifyPageError maps a FetchPage error to a page outcome
func ClassifyPageError(err error) PageOutcome {
	switch {
	case err == nil:
		return PageSuccess
	case cm.IsRateLimited(err):
		return PageRateLimited
	default:
		return PageHardFailure
	}
}

// PaginatedFetcher fetches market pages strictly one after another
type PaginatedFetcher struct {
	apiClient    APIClient
	requestDelay time.Duration
	params       MarketsParams
	metrics      *metrics.MetricsWriter
}

// NewPaginatedFetcher creates a new paginated fetcher
func NewPaginatedFetcher(apiClient APIClient, cfg config.MarketsFetcherConfig) *PaginatedFetcher {
	params := MarketsParams{
		Currency: cfg.Currency,
		Order:    cfg.Order,
		PerPage:  cfg.PerPage,
	}
	if params.Currency == "" {
		params.Currency = config.DefaultCurrency
	}
	if params.Order == "" {
		params.Order = config.DefaultOrder
	}
	if params.PerPage <= 0 {
		params.PerPage = config.DefaultPerPage
	}

	requestDelay := cfg.RequestDelay
	if requestDelay < 0 {
		requestDelay = config.DefaultRequestDelay
	}

	return &PaginatedFetcher{
		apiClient:    apiClient,
		requestDelay: requestDelay,
		params:       params,
		metrics:      metrics.NewMetricsWriter(metrics.ServiceMarkets),
	}
}

// FetchAllPages fetches the given pages in order and returns the successful ones
func (pf *PaginatedFetcher) FetchAllPages(ctx context.Context, pages []int) ([]PageData, error) {
	return pf.FetchPages(ctx, pages, nil)
}

// FetchPages fetches the given pages in order, waiting requestDelay between network requests.
// Paging stops at the first rate-limited, failed or empty page. Pages fetched before the
// stop are always returned; when no page was fetched at all, including an empty first
// page, the error wraps cm.ErrFetchFailed.
// onPage is called for each successfully fetched page.
func (pf *PaginatedFetcher) FetchPages(ctx context.Context, pages []int, onPage func(PageData)) ([]PageData, error) {
	defer pf.metrics.TrackDataFetchCycle()()

	startTime := time.Now()
	allPages := make([]PageData, 0, len(pages))

	if len(pages) > 0 {
		log.Printf("MarketsFetcher: Fetching %d pages starting at page %d (estimated %d items)",
			len(pages), pages[0], len(pages)*pf.params.PerPage)
	}

	for i, page := range pages {
		if i > 0 && pf.requestDelay > 0 {
			log.Printf("MarketsFetcher: Waiting for %.2fs before fetching next page", pf.requestDelay.Seconds())
			if err := cm.SleepContext(ctx, pf.requestDelay); err != nil {
				return pf.handlePagesError(page, fmt.Errorf("%w: %w", cm.ErrFetchFailed, err), allPages)
			}
		}
		if err := ctx.Err(); err != nil {
			return pf.handlePagesError(page, fmt.Errorf("%w: %w", cm.ErrFetchFailed, err), allPages)
		}

		log.Printf("MarketsFetcher: Fetching page %d (page %d/%d) with limit %d", page, i+1, len(pages), pf.params.PerPage)
		pageStartTime := time.Now()

		params := pf.params
		params.Page = page
		items, err := pf.apiClient.FetchPage(ctx, params)
		if err != nil {
			return pf.handlePagesError(page, err, allPages)
		}

		if len(items) == 0 {
			if len(allPages) == 0 {
				return pf.handlePagesError(page, fmt.Errorf("%w: page %d is empty", cm.ErrFetchFailed, page), allPages)
			}
			log.Printf("MarketsFetcher: Got empty page %d, stopping pagination", page)
			break
		}

		log.Printf("MarketsFetcher: Completed page %d with %d items in %.2fs",
			page, len(items), time.Since(pageStartTime).Seconds())

		allPages = pf.appendPage(allPages, PageData{Page: page, Quotes: items}, onPage)
	}

	if len(allPages) == 0 {
		pf.metrics.RecordMarketPages(0)
		return nil, fmt.Errorf("%w: no pages requested", cm.ErrFetchFailed)
	}

	pf.logPagesSummary(startTime, allPages)
	pf.metrics.RecordMarketPages(len(allPages))
	return allPages, nil
}

func (pf *PaginatedFetcher) appendPage(allPages []PageData, pageData PageData, onPage func(PageData)) []PageData {
	allPages = append(allPages, pageData)
	if onPage != nil {
		onPage(pageData)
	}
	return allPages
}

// handlePagesError stops paging. Partial data wins over the error once a page is in.
func (pf *PaginatedFetcher) handlePagesError(page int, err error, allPages []PageData) ([]PageData, error) {
	outcome := ClassifyPageError(err)
	log.Printf("MarketsFetcher: Page %d ended with %s: %v", page, outcome, err)

	if len(allPages) > 0 {
		log.Printf("MarketsFetcher: Returning partial data (%d pages, %d items)", len(allPages), countItems(allPages))
		pf.metrics.RecordMarketPages(len(allPages))
		return allPages, nil
	}

	pf.metrics.RecordMarketPages(0)
	if errors.Is(err, cm.ErrRateLimited) || errors.Is(err, cm.ErrFetchFailed) {
		return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}
	return nil, fmt.Errorf("failed to fetch page %d: %w: %v", page, cm.ErrFetchFailed, err)
}

// logPagesSummary logs a summary of the pages fetch operation
func (pf *PaginatedFetcher) logPagesSummary(startTime time.Time, pages []PageData) {
	totalTime := time.Since(startTime)
	totalItems := countItems(pages)
	itemsPerSecond := float64(totalItems) / totalTime.Seconds()
	log.Printf("MarketsFetcher: Fetched %d items in %d pages (%.2f items/sec)",
		totalItems, len(pages), itemsPerSecond)
}

func countItems(pages []PageData) int {
	total := 0
	for _, page := range pages {
		total += len(page.Quotes)
	}
	return total
}

// PageQuotes returns the quotes of every page, one list per page in page order
func PageQuotes(pages []PageData) [][]quotes.AssetQuote {
	result := make([][]quotes.AssetQuote, 0, len(pages))
	for _, page := range pages {
		result = append(result, page.Quotes)
	}
	return result
}
