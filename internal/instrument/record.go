package instrument

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-tradelog/internal/futures"
)

const (
	successPrefix = "✅ SUCCESS"
	errorPrefix   = "❌ ERROR"
)

// ActionRecord describes the outcome of one mutating call.
type ActionRecord struct {
	ID        uuid.UUID
	Operation futures.Operation
	Success   bool
	// Err is the wrapped API's error, nil on success.
	Err error
	// Summary is the human readable action, e.g. "Closed LONG position for BTCUSDT".
	Summary string
	// Details holds the call parameters. Nil omits the details line.
	Details any
}

// Message renders the record as journal and notification text:
//
//	✅ SUCCESS: <summary>
//	Details: <json>
//	Error: <err>
func (r ActionRecord) Message() string {
	var b strings.Builder

	status := successPrefix
	if !r.Success {
		status = errorPrefix
	}

	b.WriteString(status)
	b.WriteString(": ")
	b.WriteString(r.Summary)

	if details := renderDetails(r.Details); details != "" {
		b.WriteString("\nDetails: ")
		b.WriteString(details)
	}

	if r.Err != nil {
		b.WriteString("\nError: ")
		b.WriteString(r.Err.Error())
	}

	return b.String()
}

// renderDetails encodes details as compact JSON without HTML escaping.
// Empty objects render as "".
func renderDetails(details any) string {
	if details == nil {
		return ""
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(details); err != nil {
		return fmt.Sprintf("%+v", details)
	}

	out := strings.TrimSpace(buf.String())
	if out == "{}" || out == "null" {
		return ""
	}

	return out
}

// action is the description of one mutating call before it runs.
type action struct {
	op      futures.Operation
	success string
	failure string
	details any
}

func (a action) record(err error) ActionRecord {
	rec := ActionRecord{
		ID:        uuid.New(),
		Operation: a.op,
		Success:   err == nil,
		Err:       err,
		Summary:   a.success,
		Details:   a.details,
	}

	if err != nil {
		rec.Summary = a.failure
	}

	return rec
}

func setStopLossTakeProfitAction(req futures.StopLossTakeProfitRequest) action {
	return action{
		op:      futures.OpSetStopLossTakeProfit,
		success: fmt.Sprintf("Set SL/TP for %s (%s)", req.Symbol, req.Side),
		failure: fmt.Sprintf("Failed to set SL/TP for %s (%s)", req.Symbol, req.Side),
		details: req,
	}
}

func placeMarketOrderAction(req futures.MarketOrderRequest) action {
	return action{
		op:      futures.OpPlaceMarketOrder,
		success: fmt.Sprintf("Placed market %s order for %s", req.Position, req.Symbol),
		failure: fmt.Sprintf("Failed to place market %s order for %s", req.Position, req.Symbol),
		details: req,
	}
}

func placeLimitOrderAction(req futures.LimitOrderRequest) action {
	return action{
		op:      futures.OpPlaceLimitOrder,
		success: fmt.Sprintf("Placed limit %s order for %s at %s", req.Position, req.Symbol, req.Price.String()),
		failure: fmt.Sprintf("Failed to place limit %s order for %s", req.Position, req.Symbol),
		details: req,
	}
}

type closePositionDetails struct {
	Symbol   string               `json:"symbol"`
	Position futures.PositionSide `json:"position"`
}

func closePositionAction(symbol string, position futures.PositionSide) action {
	return action{
		op:      futures.OpClosePosition,
		success: fmt.Sprintf("Closed %s position for %s", position, symbol),
		failure: fmt.Sprintf("Failed to close %s position for %s", position, symbol),
		details: closePositionDetails{Symbol: symbol, Position: position},
	}
}

func cancelOrderAction(req futures.CancelOrderRequest) action {
	typ := ""
	if req.Type.IsSome() {
		typ = " " + string(req.Type.Unwrap())
	}

	return action{
		op:      futures.OpCancelOrder,
		success: fmt.Sprintf("Cancelled%s orders for %s", typ, req.Symbol),
		failure: fmt.Sprintf("Failed to cancel%s orders for %s", typ, req.Symbol),
		details: req,
	}
}

func genericAction(op futures.Operation, details any) action {
	return action{
		op:      op,
		success: fmt.Sprintf("Executed %s", op),
		failure: fmt.Sprintf("Failed to execute %s", op),
		details: details,
	}
}
