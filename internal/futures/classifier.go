package futures

// Operation is the name of one API capability.
type Operation string

const (
	OpSetStopLossTakeProfit Operation = "set_stop_loss_take_profit"
	OpPlaceMarketOrder      Operation = "place_market_order"
	OpPlaceLimitOrder       Operation = "place_limit_order"
	OpClosePosition         Operation = "close_position"
	OpCancelOrder           Operation = "cancel_order"
	OpGetPositions          Operation = "get_positions"
	OpGetOpenOrders         Operation = "get_open_orders"
	OpFetchUSDTBalance      Operation = "fetch_usdt_balance"
	OpGetPrice              Operation = "get_price"
	OpGetHistoricalData     Operation = "get_historical_data"
)

// ActionKind tells whether an operation changes exchange state.
type ActionKind int

const (
	Unknown ActionKind = iota
	Mutating
	ReadOnly
)

func (k ActionKind) String() string {
	switch k {
	case Mutating:
		return "mutating"
	case ReadOnly:
		return "read_only"
	default:
		return "unknown"
	}
}

// Classify returns the kind of op. Names outside the capability set are Unknown.
func Classify(op Operation) ActionKind {
	switch op {
	case OpSetStopLossTakeProfit,
		OpPlaceMarketOrder,
		OpPlaceLimitOrder,
		OpClosePosition,
		OpCancelOrder:
		return Mutating
	case OpGetPositions,
		OpGetOpenOrders,
		OpFetchUSDTBalance,
		OpGetPrice,
		OpGetHistoricalData:
		return ReadOnly
	default:
		return Unknown
	}
}

// Operations lists the capability set, mutating operations first.
func Operations() []Operation {
	return []Operation{
		OpSetStopLossTakeProfit,
		OpPlaceMarketOrder,
		OpPlaceLimitOrder,
		OpClosePosition,
		OpCancelOrder,
		OpGetPositions,
		OpGetOpenOrders,
		OpFetchUSDTBalance,
		OpGetPrice,
		OpGetHistoricalData,
	}
}
