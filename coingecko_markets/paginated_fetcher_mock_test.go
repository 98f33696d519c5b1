package coingecko_markets_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/status-im/coin-ticker/coingecko_markets"
	mock_coingecko_markets "github.com/status-im/coin-ticker/coingecko_markets/mocks"
	"github.com/status-im/coin-ticker/config"
	cm "github.com/status-im/coin-ticker/market_common"
	"github.com/status-im/coin-ticker/quotes"
)

func pageParams(page int) coingecko_markets.MarketsParams {
	return coingecko_markets.MarketsParams{
		Currency: config.DefaultCurrency,
		Order:    config.DefaultOrder,
		PerPage:  config.DefaultPerPage,
		Page:     page,
	}
}

func TestPaginatedFetcher_RequestsPagesInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_coingecko_markets.NewMockAPIClient(ctrl)

	btc := quotes.AssetQuote{ID: "bitcoin", MarketCapRank: quotes.IntPtr(1)}
	eth := quotes.AssetQuote{ID: "ethereum", MarketCapRank: quotes.IntPtr(2)}

	gomock.InOrder(
		client.EXPECT().FetchPage(gomock.Any(), pageParams(1)).Return([]quotes.AssetQuote{btc}, nil),
		client.EXPECT().FetchPage(gomock.Any(), pageParams(2)).Return([]quotes.AssetQuote{eth}, nil),
		client.EXPECT().FetchPage(gomock.Any(), pageParams(3)).
			Return(nil, &cm.HTTPStatusError{StatusCode: http.StatusTooManyRequests}),
	)

	fetcher := coingecko_markets.NewPaginatedFetcher(client, config.MarketsFetcherConfig{})
	pages, err := fetcher.FetchAllPages(context.Background(), []int{1, 2, 3, 4})

	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "bitcoin", pages[0].Quotes[0].ID)
	assert.Equal(t, "ethereum", pages[1].Quotes[0].ID)
}
