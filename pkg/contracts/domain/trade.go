package domain

import (
	"time"
)

// OperationType classifies a trade-history line item.
// Codes above Credit are broker specific and carried through unchanged.
type OperationType int

const (
	OperationBuy     OperationType = 0
	OperationSell    OperationType = 1
	OperationBalance OperationType = 2
	OperationCredit  OperationType = 3

	// MaxOperationType is the highest code a well-formed export uses.
	MaxOperationType OperationType = 17
)

// String returns a readable name for the known operation codes
func (t OperationType) String() string {
	switch t {
	case OperationBuy:
		return "buy"
	case OperationSell:
		return "sell"
	case OperationBalance:
		return "balance"
	case OperationCredit:
		return "credit"
	default:
		return "other"
	}
}

// Entry flags distinguish position-opening rows from closing rows.
const (
	EntryOpen  int64 = 0
	EntryClose int64 = 1
)

// CanonicalTimeLayout is the single timestamp format of normalized records.
const CanonicalTimeLayout = "2006-01-02 15:04:05"

// TradeRecord is one normalized trade-history row.
type TradeRecord struct {
	Ticket     int64         `json:"ticket" validate:"required,gt=0"`
	Time       string        `json:"time" validate:"required"`
	Type       OperationType `json:"type"`
	Symbol     string        `json:"symbol"`
	Volume     float64       `json:"volume"`
	Price      float64       `json:"price"`
	StopLoss   float64       `json:"sl"`
	TakeProfit float64       `json:"tp"`
	Commission float64       `json:"commission"`
	Swap       float64       `json:"swap"`
	Profit     float64       `json:"profit"`
	Magic      int64         `json:"magic"`
	Entry      int64         `json:"entry"`
	Reason     int64         `json:"reason"`
	PositionID int64         `json:"position_id"`
	OrderID    int64         `json:"order_id"`
	Comment    string        `json:"comment" validate:"max=255"`

	// Line is the 1-based physical line the record came from.
	Line int `json:"line"`
	// Timestamp is Time parsed, kept for ordering checks.
	Timestamp time.Time `json:"-"`
}

// IsTrade reports whether the record is a buy or sell row
func (r TradeRecord) IsTrade() bool {
	return r.Type == OperationBuy || r.Type == OperationSell
}

// IsBalance reports whether the record is a deposit/withdrawal row
func (r TradeRecord) IsBalance() bool {
	return r.Type == OperationBalance
}

// IsOpening reports whether the row opens a position
func (r TradeRecord) IsOpening() bool {
	return r.Entry == EntryOpen
}
