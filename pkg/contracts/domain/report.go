package domain

// Delimiter is a detected field separator
type Delimiter rune

const (
	DelimiterComma     Delimiter = ','
	DelimiterSemicolon Delimiter = ';'
	DelimiterTab       Delimiter = '\t'
	DelimiterPipe      Delimiter = '|'
)

// CandidateDelimiters lists the supported separators in tie-break order.
var CandidateDelimiters = []Delimiter{
	DelimiterComma,
	DelimiterSemicolon,
	DelimiterTab,
	DelimiterPipe,
}

// Name returns a readable label used in report notes
func (d Delimiter) Name() string {
	switch d {
	case DelimiterComma:
		return "comma"
	case DelimiterSemicolon:
		return "semicolon"
	case DelimiterTab:
		return "tab"
	case DelimiterPipe:
		return "pipe"
	default:
		return string(rune(d))
	}
}

// MarshalText renders the delimiter by name
func (d Delimiter) MarshalText() ([]byte, error) {
	return []byte(d.Name()), nil
}

// Encoding names reported by format detection.
const (
	EncodingUTF8        = "UTF-8"
	EncodingISO88591    = "ISO-8859-1"
	EncodingWindows1252 = "Windows-1252"
	EncodingASCII       = "ASCII"
)

// FormatDescriptor is the detected layout of one input file.
type FormatDescriptor struct {
	Delimiter Delimiter `json:"delimiter"`
	Encoding  string    `json:"encoding"`
	HasBOM    bool      `json:"has_bom"`
	HasHeader bool      `json:"has_header"`
}

// RawRow is one record as read from the file, before cleaning.
type RawRow struct {
	Line   int
	Fields []string
}

// Statistics summarizes the accepted records of one import.
type Statistics struct {
	TotalRecords     int      `json:"total_records"`
	TotalTrades      int      `json:"total_trades"`
	TotalDeposits    int      `json:"total_deposits"`
	TotalWithdrawals int      `json:"total_withdrawals"`
	GrossProfit      float64  `json:"gross_profit"`
	GrossLoss        float64  `json:"gross_loss"`
	NetProfit        float64  `json:"net_profit"`
	ProfitFactor     float64  `json:"profit_factor"`
	TotalCommission  float64  `json:"total_commission"`
	TotalSwap        float64  `json:"total_swap"`
	Symbols          []string `json:"symbols"`
	FinalBalance     float64  `json:"final_balance"`
}

// ValidationReport is the outcome of validating one file.
type ValidationReport struct {
	Valid      bool       `json:"valid"`
	Errors     []string   `json:"errors"`
	Warnings   []string   `json:"warnings"`
	Info       []string   `json:"info"`
	Statistics Statistics `json:"statistics"`
}
