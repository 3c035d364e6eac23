// Package shared holds helpers used across tradecheck packages that belong to
// no single domain or layer.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//	- A buffered slog handler for asserting on log output
//	- Trade-history CSV fixtures written into t.TempDir()
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    path := testutil.WriteCSV(t, "history.csv", testutil.BalanceScenarioCSV)
//	    ...
//	    testutil.AssertLogContains(t, logs, slog.LevelInfo, "validation completed")
//	}
//
// Nothing in shared may import domain packages.
package shared
