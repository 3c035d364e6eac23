package tradeimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WayPool/ElysiumBOT-sub001/internal/config"
)

func TestParseTradeTime(t *testing.T) {
	layouts := config.DefaultDateFormats()

	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"canonical", "2024-01-02 09:30:00", "2024-01-02 09:30:00", true},
		{"day first slash", "02/01/2024 09:30:00", "2024-01-02 09:30:00", true},
		{"without seconds", "2024-01-02 09:30", "2024-01-02 09:30:00", true},
		{"year first slash", "2024/01/02 09:30:00", "2024-01-02 09:30:00", true},
		{"dotted day first", "02.01.2024 09:30:00", "2024-01-02 09:30:00", true},
		{"iso", "2024-01-02T09:30:00", "2024-01-02 09:30:00", true},
		{"metatrader", "2024.01.02 09:30:00", "2024-01-02 09:30:00", true},
		{"month first when day is invalid", "01/13/2024 09:30:00", "2024-01-13 09:30:00", true},
		{"lenient fallback", "2024-01-02T09:30:00Z", "2024-01-02 09:30:00", true},
		{"not a date", "not-a-date", "", false},
		{"empty", "", "", false},
		{"epoch", "1970-01-01 00:00:00", "", false},
		{"before epoch", "1969-12-31 23:59:59", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := parseTradeTime(tt.input, layouts)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, formatCanonical(ts))
			}
		})
	}
}

func TestParseTradeTimeLayoutOrder(t *testing.T) {
	monthFirst := []string{"01/02/2006 15:04:05", "02/01/2006 15:04:05"}

	ts, ok := parseTradeTime("02/01/2024 09:30:00", monthFirst)
	require.True(t, ok)
	assert.Equal(t, "2024-02-01 09:30:00", formatCanonical(ts))
}
