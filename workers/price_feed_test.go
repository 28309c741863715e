package workers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"celebrity-booking-system/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPriceFeedDefaults(t *testing.T) {
	feed := NewPriceFeed()
	feed.BaseURL = ""

	require.True(t, feed.Price(models.CoinBTC).Equal(decimal.NewFromInt(95000)))
	require.True(t, feed.Price(models.CoinETH).Equal(decimal.NewFromInt(3500)))
	require.True(t, feed.Price(models.CoinUSDT).Equal(decimal.NewFromInt(1)))

	snapshot := feed.Snapshot()
	require.Len(t, snapshot, 3)
	require.True(t, snapshot["BTC"].Equal(decimal.NewFromInt(95000)))
}

func TestPriceFeedRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"BTC":"100000","ETH":"bogus","USDT":"-1"}`))
	}))
	defer srv.Close()

	feed := NewPriceFeed()
	feed.BaseURL = srv.URL

	require.NoError(t, feed.refresh(context.Background()))

	// BTC updated; the malformed and non-positive quotes are ignored and the
	// previous prices survive.
	require.True(t, feed.Price(models.CoinBTC).Equal(decimal.NewFromInt(100000)))
	require.True(t, feed.Price(models.CoinETH).Equal(decimal.NewFromInt(3500)))
	require.True(t, feed.Price(models.CoinUSDT).Equal(decimal.NewFromInt(1)))
}

func TestPriceFeedRefreshBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	feed := NewPriceFeed()
	feed.BaseURL = srv.URL

	require.Error(t, feed.refresh(context.Background()))
	require.True(t, feed.Price(models.CoinBTC).Equal(decimal.NewFromInt(95000)))
}
