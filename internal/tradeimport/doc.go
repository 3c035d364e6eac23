// Package tradeimport validates broker-exported trade-history files and
// turns them into normalized trade records plus a validation report.
//
// A run passes through five stages in a fixed order:
//
//	admission   existence, size, extension and readability of the input
//	sniffing    encoding, delimiter, byte-order mark and header detection
//	parsing     header mapping, field cleaning and record construction
//	integrity   duplicate tickets, position balance, chronology, running balance
//	statistics  counts, gross profit/loss, profit factor, symbols
//
// Fatal findings (admission, empty file, schema, read failures) stop the run
// early; record-level errors drop a single row; warnings and info never stop
// anything. Validate* methods never return a Go error: everything observed
// is in the returned Result.
//
// # Usage
//
//	engine := tradeimport.New(cfg.Import, logger,
//	    tradeimport.WithTracer(providers.Tracer),
//	    tradeimport.WithMetrics(metrics))
//
//	result := engine.ValidateFile(ctx, "history.csv")
//	if !result.Report.Valid {
//	    for _, msg := range result.Report.Errors {
//	        fmt.Println(msg)
//	    }
//	}
//
// An Engine holds only immutable configuration and may be shared by any
// number of goroutines. Each call owns its own buffers and accumulators.
package tradeimport
