package tradeimport

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts/domain"
)

func TestProfitFactor(t *testing.T) {
	tests := []struct {
		name      string
		grossWin  int64
		grossLoss int64
		expected  float64
	}{
		{"profit without loss", 100, 0, ProfitFactorCap},
		{"nothing", 0, 0, 0},
		{"ratio", 200, 100, 2.0},
		{"rounded", 100, 30, 3.33},
		{"loss only", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProfitFactor(decimal.NewFromInt(tt.grossWin), decimal.NewFromInt(tt.grossLoss))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAggregate(t *testing.T) {
	records := []domain.TradeRecord{
		{Ticket: 1, Type: domain.OperationBalance, Profit: 1000},
		{Ticket: 2, Type: domain.OperationBalance, Profit: -200},
		{Ticket: 3, Type: domain.OperationBalance, Profit: 0},
		{Ticket: 4, Type: domain.OperationBuy, Symbol: "EURUSD", Profit: 0.1, Commission: -1, Swap: 0.2},
		{Ticket: 5, Type: domain.OperationSell, Symbol: "XAUUSD", Profit: -0.3, Commission: -1},
		{Ticket: 6, Type: domain.OperationBuy, Symbol: "EURUSD", Profit: 0.2},
		{Ticket: 7, Type: domain.OperationBuy, Profit: 0},
		{Ticket: 8, Type: domain.OperationCredit, Profit: 50},
	}

	stats := aggregate(records, decimal.RequireFromString("799"))

	assert.Equal(t, 8, stats.TotalRecords)
	assert.Equal(t, 4, stats.TotalTrades)
	assert.Equal(t, 1, stats.TotalDeposits)
	assert.Equal(t, 2, stats.TotalWithdrawals)
	assert.Equal(t, 0.3, stats.GrossProfit)
	assert.Equal(t, 0.3, stats.GrossLoss)
	assert.Equal(t, 0.0, stats.NetProfit)
	assert.Equal(t, 1.0, stats.ProfitFactor)
	assert.Equal(t, -2.0, stats.TotalCommission)
	assert.Equal(t, 0.2, stats.TotalSwap)
	assert.Equal(t, []string{"EURUSD", "XAUUSD"}, stats.Symbols)
	assert.Equal(t, 799.0, stats.FinalBalance)
}

func TestAggregateEmpty(t *testing.T) {
	stats := aggregate(nil, decimal.Zero)

	assert.Equal(t, 0, stats.TotalRecords)
	assert.NotNil(t, stats.Symbols)
	assert.Empty(t, stats.Symbols)
	assert.Equal(t, 0.0, stats.ProfitFactor)
}
