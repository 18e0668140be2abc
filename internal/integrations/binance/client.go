package binance

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/adshao/go-binance/v2"

	"cryptodash/internal/models"
)

// Service provides kline candles for the asset-detail chart. No API keys
// are needed for public market data.
type Service struct {
	client       *binance.Client
	lastRequest  time.Time
	requestMutex sync.Mutex
}

func NewService() *Service {
	return &Service{
		client:      binance.NewClient("", ""),
		lastRequest: time.Now(),
	}
}

// SymbolFor maps an asset symbol to its USDT trading pair.
func SymbolFor(assetSymbol string) string {
	return strings.ToUpper(assetSymbol) + "USDT"
}

// ValidateInterval checks the kline interval notation.
func (s *Service) ValidateInterval(interval string) bool {
	validIntervals := map[string]bool{
		"1m": true, "3m": true, "5m": true, "15m": true, "30m": true,
		"1h": true, "2h": true, "4h": true, "6h": true, "8h": true, "12h": true,
		"1d": true, "3d": true, "1w": true, "1M": true,
	}
	return validIntervals[interval]
}

// GetCandles fetches klines for a trading pair and converts them to parsed
// candles. Klines that fail numeric parsing are skipped, not fatal.
func (s *Service) GetCandles(ctx context.Context, symbol, interval string, limit int, startTime, endTime *int64) ([]models.Candle, error) {
	s.waitForRateLimit()

	klineService := s.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit)

	if startTime != nil {
		klineService = klineService.StartTime(*startTime)
	}
	if endTime != nil {
		klineService = klineService.EndTime(*endTime)
	}

	reqCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	klines, err := klineService.Do(reqCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch klines: %w", err)
	}

	candles := make([]models.Candle, 0, len(klines))
	for _, kline := range klines {
		k := models.Kline{
			OpenTime:  kline.OpenTime,
			Open:      kline.Open,
			High:      kline.High,
			Low:       kline.Low,
			Close:     kline.Close,
			Volume:    kline.Volume,
			CloseTime: kline.CloseTime,
		}
		candle, err := k.ToCandle()
		if err != nil {
			log.Printf("Warning: failed to convert kline to candle: %v", err)
			continue
		}
		candles = append(candles, *candle)
	}

	return candles, nil
}

// waitForRateLimit spaces requests at least 100ms apart, conservative
// against Binance's public endpoint limits.
func (s *Service) waitForRateLimit() {
	s.requestMutex.Lock()
	defer s.requestMutex.Unlock()

	minInterval := 100 * time.Millisecond
	elapsed := time.Since(s.lastRequest)

	if elapsed < minInterval {
		time.Sleep(minInterval - elapsed)
	}

	s.lastRequest = time.Now()
}
