package tradeimport

import (
	"fmt"

	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts/domain"
)

// reportBuilder accumulates messages for a single run. It is threaded
// through the stages and never shared between runs.
type reportBuilder struct {
	errors   []string
	warnings []string
	info     []string
}

func newReportBuilder() *reportBuilder {
	return &reportBuilder{}
}

func (b *reportBuilder) errorf(format string, args ...any) {
	b.errors = append(b.errors, fmt.Sprintf(format, args...))
}

func (b *reportBuilder) warnf(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

func (b *reportBuilder) infof(format string, args ...any) {
	b.info = append(b.info, fmt.Sprintf(format, args...))
}

func (b *reportBuilder) hasErrors() bool {
	return len(b.errors) > 0
}

// build snapshots the builder. The returned slices are copies and are
// never nil so they serialize as JSON arrays.
func (b *reportBuilder) build(stats domain.Statistics) domain.ValidationReport {
	if stats.Symbols == nil {
		stats.Symbols = []string{}
	}
	return domain.ValidationReport{
		Valid:      len(b.errors) == 0,
		Errors:     copyStrings(b.errors),
		Warnings:   copyStrings(b.warnings),
		Info:       copyStrings(b.info),
		Statistics: stats,
	}
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
