package tradeimport

import (
	"github.com/shopspring/decimal"

	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts/domain"
)

// ProfitFactorCap is reported when there are profits but no losses
const ProfitFactorCap = 999.99

// aggregate summarizes records in one forward pass. Money is summed in
// decimal and converted to float64 only for the snapshot.
func aggregate(records []domain.TradeRecord, finalBalance decimal.Decimal) domain.Statistics {
	var (
		stats      = domain.Statistics{TotalRecords: len(records), Symbols: []string{}}
		grossWin   = decimal.Zero
		grossLoss  = decimal.Zero
		commission = decimal.Zero
		swap       = decimal.Zero
		seen       = make(map[string]bool)
	)

	for _, rec := range records {
		switch {
		case rec.IsTrade():
			stats.TotalTrades++
			profit := decimal.NewFromFloat(rec.Profit)
			if profit.IsPositive() {
				grossWin = grossWin.Add(profit)
			} else {
				grossLoss = grossLoss.Add(profit.Abs())
			}
			commission = commission.Add(decimal.NewFromFloat(rec.Commission))
			swap = swap.Add(decimal.NewFromFloat(rec.Swap))
			if rec.Symbol != "" && !seen[rec.Symbol] {
				seen[rec.Symbol] = true
				stats.Symbols = append(stats.Symbols, rec.Symbol)
			}
		case rec.IsBalance():
			if rec.Profit > 0 {
				stats.TotalDeposits++
			} else {
				stats.TotalWithdrawals++
			}
		}
	}

	stats.GrossProfit = grossWin.InexactFloat64()
	stats.GrossLoss = grossLoss.InexactFloat64()
	stats.NetProfit = grossWin.Sub(grossLoss).InexactFloat64()
	stats.ProfitFactor = ProfitFactor(grossWin, grossLoss)
	stats.TotalCommission = commission.InexactFloat64()
	stats.TotalSwap = swap.InexactFloat64()
	stats.FinalBalance = finalBalance.InexactFloat64()
	return stats
}

// ProfitFactor is gross profit over gross loss rounded to two places,
// ProfitFactorCap when only profits exist and 0 when neither does.
func ProfitFactor(grossProfit, grossLoss decimal.Decimal) float64 {
	switch {
	case grossLoss.IsPositive():
		return grossProfit.Div(grossLoss).Round(2).InexactFloat64()
	case grossProfit.IsPositive():
		return ProfitFactorCap
	default:
		return 0
	}
}
