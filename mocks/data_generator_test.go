package mocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandleGenerator_Generate(t *testing.T) {
	config := DefaultCandleConfig()
	config.Count = 100

	candles := NewCandleGenerator(42).Generate(config)
	require.Len(t, candles, 100)

	for i, c := range candles {
		assert.True(t, c.Open.IsPositive(), "open at %d", i)
		assert.True(t, c.Close.IsPositive(), "close at %d", i)
		assert.True(t, c.High.GreaterThanOrEqual(c.Low), "high < low at %d", i)
		assert.True(t, c.High.GreaterThanOrEqual(c.Open), "high below open at %d", i)
		assert.True(t, c.Low.LessThanOrEqual(c.Close), "low above close at %d", i)

		if i > 0 {
			assert.Equal(t, time.Minute, c.OpenTime.Sub(candles[i-1].OpenTime), "interval at %d", i)
		}
	}
}

func TestCandleGenerator_Reproducibility(t *testing.T) {
	a := NewCandleGenerator(7).Generate(DefaultCandleConfig())
	b := NewCandleGenerator(7).Generate(DefaultCandleConfig())
	c := NewCandleGenerator(8).Generate(DefaultCandleConfig())

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGenerateCandles(t *testing.T) {
	assert.Len(t, GenerateCandles(10), 10)
	assert.Empty(t, GenerateCandles(0))
}
