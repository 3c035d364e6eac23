package tradeimport

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts/domain"
)

// positionAccumulator counts the legs of one position
type positionAccumulator struct {
	opens  int
	closes int
	symbol string
}

// checkIntegrity runs the cross-record checks over records, appending
// warnings to report, and returns the running balance. Records are never
// dropped or reordered.
func checkIntegrity(records []domain.TradeRecord, report *reportBuilder) decimal.Decimal {
	checkDuplicates(records, report)
	checkPositions(records, report)
	checkChronology(records, report)
	return runningBalance(records, report)
}

func checkDuplicates(records []domain.TradeRecord, report *reportBuilder) {
	seen := make(map[int64]bool, len(records))
	for _, rec := range records {
		if seen[rec.Ticket] {
			report.warnf("Duplicate ticket %d at line %d", rec.Ticket, rec.Line)
			continue
		}
		seen[rec.Ticket] = true
	}
}

// checkPositions reports positions whose open and close counts differ,
// in the order the positions first appear
func checkPositions(records []domain.TradeRecord, report *reportBuilder) {
	var order []int64
	positions := make(map[int64]*positionAccumulator)

	for _, rec := range records {
		if rec.PositionID <= 0 {
			continue
		}
		acc, ok := positions[rec.PositionID]
		if !ok {
			acc = &positionAccumulator{}
			positions[rec.PositionID] = acc
			order = append(order, rec.PositionID)
		}
		if acc.symbol == "" {
			acc.symbol = rec.Symbol
		}
		if rec.IsOpening() {
			acc.opens++
		} else {
			acc.closes++
		}
	}

	for _, id := range order {
		acc := positions[id]
		if acc.opens == acc.closes {
			continue
		}
		if acc.symbol != "" {
			report.warnf("Position %d (%s) is unbalanced: %d open, %d close", id, acc.symbol, acc.opens, acc.closes)
		} else {
			report.warnf("Position %d is unbalanced: %d open, %d close", id, acc.opens, acc.closes)
		}
	}
}

// checkChronology compares each record only with the one before it
func checkChronology(records []domain.TradeRecord, report *reportBuilder) {
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		if cur.Timestamp.Before(prev.Timestamp) {
			report.warnf("Ticket %d at line %d is earlier than the preceding record (%s before %s)",
				cur.Ticket, cur.Line, cur.Time, prev.Time)
		}
	}
}

// runningBalance sums balance operations and trade results. Trade rows
// with a non-positive volume or price are flagged along the way.
func runningBalance(records []domain.TradeRecord, report *reportBuilder) decimal.Decimal {
	balance := decimal.Zero
	for _, rec := range records {
		switch {
		case rec.IsBalance():
			balance = balance.Add(decimal.NewFromFloat(rec.Profit))
		case rec.IsTrade():
			balance = balance.Add(decimal.NewFromFloat(rec.Profit)).
				Add(decimal.NewFromFloat(rec.Commission)).
				Add(decimal.NewFromFloat(rec.Swap))
			if rec.Volume <= 0 {
				report.warnf("Ticket %d at line %d: trade volume %s is not positive", rec.Ticket, rec.Line, formatNumber(rec.Volume))
			}
			if rec.Price <= 0 {
				report.warnf("Ticket %d at line %d: trade price %s is not positive", rec.Ticket, rec.Line, formatNumber(rec.Price))
			}
		}
	}
	return balance
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
