package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"celebrity-booking-system/models"

	"github.com/shopspring/decimal"
)

// PriceFeed caches USD prices per coin. Deposits are simulated, so the feed
// starts from fixed reference prices and optionally refreshes from an HTTP
// endpoint (PRICE_FEED_URL returning {"BTC":"95000", ...}).
type PriceFeed struct {
	BaseURL    string
	HTTPClient *http.Client

	mu     sync.RWMutex
	prices map[models.Coin]decimal.Decimal
}

func NewPriceFeed() *PriceFeed {
	return &PriceFeed{
		BaseURL: os.Getenv("PRICE_FEED_URL"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		prices: map[models.Coin]decimal.Decimal{
			models.CoinBTC:  decimal.NewFromInt(95000),
			models.CoinETH:  decimal.NewFromInt(3500),
			models.CoinUSDT: decimal.NewFromInt(1),
		},
	}
}

// Price returns the cached USD price for a coin.
func (f *PriceFeed) Price(coin models.Coin) decimal.Decimal {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.prices[coin]
}

// Snapshot returns all cached prices keyed by coin symbol.
func (f *PriceFeed) Snapshot() map[string]decimal.Decimal {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]decimal.Decimal, len(f.prices))
	for coin, price := range f.prices {
		out[string(coin)] = price
	}
	return out
}

func (f *PriceFeed) refresh(ctx context.Context) error {
	if f.BaseURL == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", f.BaseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build price feed request: %w", err)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("price feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("price feed returned status %d", resp.StatusCode)
	}

	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode price feed response: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, coin := range models.AllCoins {
		raw, ok := payload[string(coin)]
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(raw)
		if err != nil || !price.IsPositive() {
			log.Printf("[PriceFeed] Ignoring bad price for %s: %q", coin, raw)
			continue
		}
		f.prices[coin] = price
	}
	return nil
}

// PollPrices refreshes the feed until the context is cancelled.
func PollPrices(ctx context.Context, feed *PriceFeed, interval time.Duration) {
	if feed.BaseURL == "" {
		log.Println("[PriceFeed] PRICE_FEED_URL not set, using static reference prices")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[PriceFeed] Stopping price polling")
			return
		case <-ticker.C:
			if err := feed.refresh(ctx); err != nil {
				log.Printf("[PriceFeed] Refresh failed: %v", err)
			}
		}
	}
}
