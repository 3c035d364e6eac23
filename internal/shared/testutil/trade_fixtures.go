package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FullHeader lists every canonical column in export order
const FullHeader = "ticket,time,type,symbol,volume,price,sl,tp,commission,swap,profit,comment,magic,entry,reason,position_id,order_id"

// BalanceScenarioCSV holds a deposit followed by one opened and closed
// EURUSD position. The final balance is 10000 + 0 + (25 - 2) = 10023.
const BalanceScenarioCSV = `ticket,time,type,symbol,volume,price,profit,commission,swap,position_id,entry
1,2024-01-02 09:00:00,2,,0,0,10000,0,0,0,0
2,2024-01-02 09:30:00,0,EURUSD,0.1,1.095,0,0,0,1001,0
3,2024-01-02 10:30:00,1,EURUSD,0.1,1.0975,25,-2,0,1001,1
`

// DuplicateTicketCSV repeats ticket 500
const DuplicateTicketCSV = `ticket,time,type,symbol,volume,price,profit
500,2024-01-02 09:00:00,0,EURUSD,0.1,1.1,10
500,2024-01-02 09:05:00,1,EURUSD,0.1,1.2,-5
`

// MissingSymbolCSV lacks the required symbol column
const MissingSymbolCSV = `ticket,time,type,volume,price,profit
1,2024-01-02 09:00:00,0,0.1,1.1,10
`

// MetaTraderSemicolonCSV mimics a terminal export with semicolons and
// comma decimals
const MetaTraderSemicolonCSV = "Ticket;Time;Type;Symbol;Volume;Price;Profit;Commission;Swap;Comment\n" +
	"100001;2024.03.01 10:00:00;0;gold.ecn;0,50;2050,10;120,5;-3,5;-0,2;opened by EA\n" +
	"100002;2024.03.01 11:00:00;1;XAUUSD;0,50;2052,30;-40;-3,5;0;\n"

// CSV joins lines with newlines and a trailing newline
func CSV(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// WriteFile writes raw bytes to name inside a fresh temp dir and returns the path
func WriteFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

// WriteCSV writes a text fixture and returns its path
func WriteCSV(t *testing.T, name, content string) string {
	t.Helper()
	return WriteFile(t, name, []byte(content))
}
