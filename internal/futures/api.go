// Package futures describes the capability set of a USDT-margined futures
// trading API and classifies its operations.
package futures

import (
	"context"

	"github.com/shopspring/decimal"
)

// API is the trading capability set. Implementations talk to an exchange;
// none is provided here.
type API interface {
	// SetStopLossTakeProfit places the stop loss and/or take profit orders of a position.
	SetStopLossTakeProfit(ctx context.Context, req StopLossTakeProfitRequest) ([]OrderResult, error)
	// PlaceMarketOrder opens a position at market.
	PlaceMarketOrder(ctx context.Context, req MarketOrderRequest) (OrderResult, error)
	// PlaceLimitOrder opens a position with a limit order.
	PlaceLimitOrder(ctx context.Context, req LimitOrderRequest) (OrderResult, error)
	// ClosePosition closes the whole position of the given side at market.
	ClosePosition(ctx context.Context, symbol string, position PositionSide) (OrderResult, error)
	// CancelOrder cancels open orders of a symbol.
	CancelOrder(ctx context.Context, req CancelOrderRequest) (CancelResult, error)
	// GetPositions returns open positions. An empty symbol returns all of them.
	GetPositions(ctx context.Context, symbol string) ([]Position, error)
	// GetOpenOrders returns resting orders. An empty symbol returns all of them.
	GetOpenOrders(ctx context.Context, symbol string) ([]Order, error)
	// FetchUSDTBalance returns the USDT wallet balance.
	FetchUSDTBalance(ctx context.Context) (Balance, error)
	// GetPrice returns the last price of a symbol.
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	// GetHistoricalData returns klines, oldest first.
	GetHistoricalData(ctx context.Context, req HistoryRequest) ([]Candle, error)
}
