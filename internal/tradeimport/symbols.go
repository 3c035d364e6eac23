package tradeimport

import "strings"

// symbolSuffixes are broker account-type tags appended to instrument codes
var symbolSuffixes = []string{".ECN", ".PRO", ".STD", ".RAW", ".ZERO"}

// symbolAliases maps colloquial names to their canonical instrument codes
var symbolAliases = map[string]string{
	"GOLD":   "XAUUSD",
	"SILVER": "XAGUSD",
	"OIL":    "XTIUSD",
	"WTI":    "XTIUSD",
	"BRENT":  "XBRUSD",
}

// NormalizeSymbol canonicalizes an instrument code. It upper-cases, strips
// one broker suffix, drops everything outside A-Z and 0-9 and resolves
// aliases. Applying it twice yields the same result as applying it once.
func NormalizeSymbol(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))

	for _, suffix := range symbolSuffixes {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}

	s = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, s)

	if alias, ok := symbolAliases[s]; ok {
		return alias
	}
	return s
}
