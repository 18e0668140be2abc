package models

import (
	"strconv"
)

// Kline represents a single raw candlestick from the exchange API. Price
// and volume fields stay in their transmitted string form.
type Kline struct {
	OpenTime  int64  `json:"openTime"`
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Volume    string `json:"volume"`
	CloseTime int64  `json:"closeTime"`
}

// Candle is the parsed OHLCV point served to the detail chart.
type Candle struct {
	StartTime int64   `json:"startTime"`
	EndTime   int64   `json:"endTime"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// ToCandle converts a Kline, parsing the decimal strings at the boundary.
func (k *Kline) ToCandle() (*Candle, error) {
	open, err := strconv.ParseFloat(k.Open, 64)
	if err != nil {
		return nil, err
	}

	high, err := strconv.ParseFloat(k.High, 64)
	if err != nil {
		return nil, err
	}

	low, err := strconv.ParseFloat(k.Low, 64)
	if err != nil {
		return nil, err
	}

	closePrice, err := strconv.ParseFloat(k.Close, 64)
	if err != nil {
		return nil, err
	}

	volume, err := strconv.ParseFloat(k.Volume, 64)
	if err != nil {
		return nil, err
	}

	return &Candle{
		StartTime: k.OpenTime,
		EndTime:   k.CloseTime,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePrice,
		Volume:    volume,
	}, nil
}

// CandleResponse is the chart payload for one symbol.
type CandleResponse struct {
	Symbol string   `json:"symbol"`
	Data   []Candle `json:"data"`
}
