package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-tradelog/internal/futures"
	"github.com/shopspring/decimal"
)

// CandleGenerator produces seeded kline series for tests of the read only path.
type CandleGenerator struct {
	rng *rand.Rand
}

// NewCandleGenerator creates a generator. The same seed yields the same series.
func NewCandleGenerator(seed int64) *CandleGenerator {
	return &CandleGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// CandleConfig configures a generated series.
type CandleConfig struct {
	// StartTime is the open time of the first candle
	StartTime time.Time
	// Interval is the duration of one candle
	Interval time.Duration
	// Count is the number of candles
	Count int
	// InitialPrice is the open of the first candle
	InitialPrice float64
	// Volatility is the standard deviation of the per candle return (0.002 = 0.2%)
	Volatility float64
	// VolumeBase is the average volume per candle
	VolumeBase float64
}

// DefaultCandleConfig returns 500 one minute BTCUSDT-like candles.
func DefaultCandleConfig() CandleConfig {
	return CandleConfig{
		StartTime:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Interval:     time.Minute,
		Count:        500,
		InitialPrice: 65000,
		Volatility:   0.002,
		VolumeBase:   120,
	}
}

// Generate builds a series following a geometric random walk.
func (g *CandleGenerator) Generate(config CandleConfig) []futures.Candle {
	candles := make([]futures.Candle, config.Count)
	price := config.InitialPrice
	openTime := config.StartTime

	for i := range candles {
		open := price

		// Box-Muller
		u1 := 1 - g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		closePrice := open * (1 + config.Volatility*z)
		if closePrice <= 0 {
			closePrice = open * 0.99
		}

		high := math.Max(open, closePrice) * (1 + g.rng.Float64()*config.Volatility*0.5)
		low := math.Min(open, closePrice) * (1 - g.rng.Float64()*config.Volatility*0.5)

		volume := config.VolumeBase * (0.7 + g.rng.Float64()*0.6)

		candles[i] = futures.Candle{
			OpenTime: openTime,
			Open:     decimal.NewFromFloat(open).Round(2),
			High:     decimal.NewFromFloat(high).Round(2),
			Low:      decimal.NewFromFloat(low).Round(2),
			Close:    decimal.NewFromFloat(closePrice).Round(2),
			Volume:   decimal.NewFromFloat(volume).Round(3),
		}

		price = closePrice
		openTime = openTime.Add(config.Interval)
	}

	return candles
}

// GenerateCandles returns count default candles from a fixed seed.
func GenerateCandles(count int) []futures.Candle {
	config := DefaultCandleConfig()
	config.Count = count

	return NewCandleGenerator(42).Generate(config)
}
