package futures

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
)

type PositionSide string

type OrderSide string

type OrderType string

type OrderStatus string

const (
	PositionSideLong  PositionSide = "LONG"
	PositionSideShort PositionSide = "SHORT"
)

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

const (
	OrderTypeMarket           OrderType = "MARKET"
	OrderTypeLimit            OrderType = "LIMIT"
	OrderTypeStopMarket       OrderType = "STOP_MARKET"
	OrderTypeTakeProfitMarket OrderType = "TAKE_PROFIT_MARKET"
)

const (
	OrderStatusNew             OrderStatus = "NEW"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusCanceled        OrderStatus = "CANCELED"
	OrderStatusRejected        OrderStatus = "REJECTED"
	OrderStatusExpired         OrderStatus = "EXPIRED"
)

// Opposite returns the other side of the position.
func (p PositionSide) Opposite() PositionSide {
	if p == PositionSideLong {
		return PositionSideShort
	}

	return PositionSideLong
}

// EntrySide is the order side that opens a position of this side.
func (p PositionSide) EntrySide() OrderSide {
	if p == PositionSideShort {
		return OrderSideSell
	}

	return OrderSideBuy
}

// ExitSide is the order side that closes a position of this side.
func (p PositionSide) ExitSide() OrderSide {
	if p == PositionSideShort {
		return OrderSideBuy
	}

	return OrderSideSell
}

// MarketOrderRequest opens a position at market. Amount is the margin in USDT;
// the exchange adapter converts it to a quantity using Leverage.
type MarketOrderRequest struct {
	Symbol   string          `yaml:"symbol" json:"symbol"`
	Position PositionSide    `yaml:"position" json:"position"`
	Leverage int             `yaml:"leverage" json:"leverage"`
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
	// StopLoss is the trigger price of a protective stop. None if not set.
	StopLoss optional.Option[decimal.Decimal] `yaml:"stop_loss" json:"stop_loss"`
	// TakeProfit is the trigger price of a take profit order. None if not set.
	TakeProfit optional.Option[decimal.Decimal] `yaml:"take_profit" json:"take_profit"`
}

// LimitOrderRequest opens a position with a resting limit order.
type LimitOrderRequest struct {
	Symbol   string          `yaml:"symbol" json:"symbol"`
	Position PositionSide    `yaml:"position" json:"position"`
	Price    decimal.Decimal `yaml:"price" json:"price"`
	Leverage int             `yaml:"leverage" json:"leverage"`
	Amount   decimal.Decimal `yaml:"amount" json:"amount"`
}

// StopLossTakeProfitRequest attaches protective orders to an open position.
// Side is the side of the position being protected.
type StopLossTakeProfitRequest struct {
	Symbol     string                           `yaml:"symbol" json:"symbol"`
	Side       PositionSide                     `yaml:"side" json:"side"`
	Quantity   decimal.Decimal                  `yaml:"quantity" json:"quantity"`
	StopLoss   optional.Option[decimal.Decimal] `yaml:"stop_loss" json:"stop_loss"`
	TakeProfit optional.Option[decimal.Decimal] `yaml:"take_profit" json:"take_profit"`
}

// CancelOrderRequest cancels open orders of a symbol. A None Type cancels all of them.
type CancelOrderRequest struct {
	Symbol string                     `yaml:"symbol" json:"symbol"`
	Type   optional.Option[OrderType] `yaml:"type" json:"type"`
}

type HistoryRequest struct {
	Symbol   string `yaml:"symbol" json:"symbol"`
	Interval string `yaml:"interval" json:"interval"`
	Limit    int    `yaml:"limit" json:"limit"`
}

type OrderResult struct {
	OrderID  string          `yaml:"order_id" json:"order_id"`
	Symbol   string          `yaml:"symbol" json:"symbol"`
	Side     OrderSide       `yaml:"side" json:"side"`
	Type     OrderType       `yaml:"type" json:"type"`
	Price    decimal.Decimal `yaml:"price" json:"price"`
	Quantity decimal.Decimal `yaml:"quantity" json:"quantity"`
	Status   OrderStatus     `yaml:"status" json:"status"`
	Time     time.Time       `yaml:"time" json:"time"`
}

type CancelResult struct {
	Symbol string `yaml:"symbol" json:"symbol"`
	// Cancelled holds the ids of the cancelled orders.
	Cancelled []string `yaml:"cancelled" json:"cancelled"`
}

type Position struct {
	Symbol        string          `yaml:"symbol" json:"symbol"`
	Side          PositionSide    `yaml:"side" json:"side"`
	Quantity      decimal.Decimal `yaml:"quantity" json:"quantity"`
	EntryPrice    decimal.Decimal `yaml:"entry_price" json:"entry_price"`
	MarkPrice     decimal.Decimal `yaml:"mark_price" json:"mark_price"`
	Leverage      int             `yaml:"leverage" json:"leverage"`
	UnrealizedPnL decimal.Decimal `yaml:"unrealized_pnl" json:"unrealized_pnl"`
}

type Order struct {
	OrderID   string          `yaml:"order_id" json:"order_id"`
	Symbol    string          `yaml:"symbol" json:"symbol"`
	Side      OrderSide       `yaml:"side" json:"side"`
	Type      OrderType       `yaml:"type" json:"type"`
	Price     decimal.Decimal `yaml:"price" json:"price"`
	StopPrice decimal.Decimal `yaml:"stop_price" json:"stop_price"`
	Quantity  decimal.Decimal `yaml:"quantity" json:"quantity"`
	Status    OrderStatus     `yaml:"status" json:"status"`
	Time      time.Time       `yaml:"time" json:"time"`
}

// Balance is the futures wallet balance of one asset.
type Balance struct {
	Asset     string          `yaml:"asset" json:"asset"`
	Total     decimal.Decimal `yaml:"total" json:"total"`
	Available decimal.Decimal `yaml:"available" json:"available"`
}

// Candle is one kline bar.
type Candle struct {
	OpenTime time.Time       `yaml:"open_time" json:"open_time"`
	Open     decimal.Decimal `yaml:"open" json:"open"`
	High     decimal.Decimal `yaml:"high" json:"high"`
	Low      decimal.Decimal `yaml:"low" json:"low"`
	Close    decimal.Decimal `yaml:"close" json:"close"`
	Volume   decimal.Decimal `yaml:"volume" json:"volume"`
}
