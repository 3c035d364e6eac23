package tradeimport

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/WayPool/ElysiumBOT-sub001/internal/config"
	apperrors "github.com/WayPool/ElysiumBOT-sub001/internal/errors"
	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts/domain"
)

// parser turns the rows of one file into trade records
type parser struct {
	cfg     config.ImportConfig
	format  domain.FormatDescriptor
	numbers numberCleaner
	report  *reportBuilder
}

func newParser(cfg config.ImportConfig, format domain.FormatDescriptor, report *reportBuilder) *parser {
	return &parser{
		cfg:    cfg,
		format: format,
		numbers: numberCleaner{
			decimalSep:  cfg.DecimalSeparator,
			thousandSep: cfg.ThousandSeparator,
		},
		report: report,
	}
}

// parse reads every row from r, which must already be positioned past any
// byte order mark. A schema or read failure discards everything parsed so
// far and is returned as an *errors.AppError.
func (p *parser) parse(ctx context.Context, r io.Reader) ([]domain.TradeRecord, error) {
	lines := &lineCounter{r: decodeReader(r, p.format.Encoding)}
	cr := csv.NewReader(lines)
	cr.Comma = rune(p.format.Delimiter)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	var (
		header   []string
		records  = make([]domain.TradeRecord, 0)
		dataRows int
		lastLine int
		// last physical line consumed by the reader
		lastEnd int
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, apperrors.NewReadError(
				fmt.Sprintf("failed to read input after line %d: %v", lastLine, err), err)
		}

		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				dataRows += p.emptyLines(header, lastEnd+1, parseErr.StartLine-1)
				lastEnd = parseErr.Line
				p.report.warnf("Line %d: %v; row skipped", parseErr.StartLine, parseErr.Err)
				continue
			}
			return nil, apperrors.NewReadError(
				fmt.Sprintf("failed to read input after line %d: %v", lastLine, err), err)
		}

		line, _ := cr.FieldPos(0)
		lastLine = line
		dataRows += p.emptyLines(header, lastEnd+1, line-1)
		lastEnd = recordEndLine(cr, fields)
		row := domain.RawRow{Line: line, Fields: fields}

		// blank lines ahead of the first row never become the header
		if blankRow(row.Fields) && (p.cfg.SkipEmptyLines || header == nil) {
			continue
		}

		if header == nil {
			if p.format.HasHeader {
				header = normalizeHeader(fields)
				if missing := missingColumns(header, p.cfg.RequiredColumns); len(missing) > 0 {
					return nil, apperrors.NewSchemaError(missing)
				}
				continue
			}

			header = p.positionalHeader(len(fields))
			if missing := missingColumns(header, p.cfg.RequiredColumns); len(missing) > 0 {
				return nil, apperrors.NewSchemaError(missing)
			}
			p.report.infof("No header row; columns mapped by position: %s", strings.Join(nonEmpty(header), ", "))
		}

		dataRows++
		if len(row.Fields) != len(header) {
			p.report.warnf("Line %d: expected %d fields but found %d; row skipped", row.Line, len(header), len(row.Fields))
			continue
		}

		if rec, ok := p.clean(p.zip(header, row), row.Line); ok {
			records = append(records, rec)
		}
	}

	if header == nil {
		// every row the reader produced was blank
		return nil, apperrors.NewEmptyFileError("file contains no data")
	}
	dataRows += p.emptyLines(header, lastEnd+1, lines.count())

	p.report.infof("%d records accepted from %d data rows", len(records), dataRows)
	if len(records) == 0 {
		p.report.warnf("No trade records were accepted")
	}
	return records, nil
}

// emptyLines reports the lines from..to that encoding/csv skipped because
// they were empty. They only count as rows when empty lines are kept.
func (p *parser) emptyLines(header []string, from, to int) int {
	if p.cfg.SkipEmptyLines || header == nil {
		return 0
	}
	n := 0
	for line := from; line <= to; line++ {
		p.report.warnf("Line %d: expected %d fields but found 1; row skipped", line, len(header))
		n++
	}
	return n
}

// recordEndLine is the physical line holding the end of the record just read
func recordEndLine(cr *csv.Reader, fields []string) int {
	last := len(fields) - 1
	line, _ := cr.FieldPos(last)
	return line + strings.Count(fields[last], "\n")
}

// positionalHeader names n columns after the configured column order.
// Columns beyond the known names stay unnamed and are ignored.
func (p *parser) positionalHeader(n int) []string {
	names := make([]string, 0, len(p.cfg.RequiredColumns)+len(p.cfg.OptionalColumns))
	names = append(names, p.cfg.RequiredColumns...)
	names = append(names, p.cfg.OptionalColumns...)

	header := make([]string, n)
	copy(header, names)
	return header
}

// zip maps header names to row values. The first column with a given name wins.
func (p *parser) zip(header []string, row domain.RawRow) map[string]string {
	values := make(map[string]string, len(header))
	for i, name := range header {
		if name == "" {
			continue
		}
		if _, seen := values[name]; seen {
			continue
		}
		v := ""
		if i < len(row.Fields) {
			v = row.Fields[i]
		}
		if p.cfg.TrimValues {
			v = strings.TrimSpace(v)
		}
		values[name] = v
	}
	return values
}

// clean builds a record from one row. Ticket and time problems drop the
// row with an error; everything else is coerced.
func (p *parser) clean(v map[string]string, line int) (domain.TradeRecord, bool) {
	rawTicket := v["ticket"]
	if strings.TrimSpace(rawTicket) == "" {
		p.report.errorf("Line %d: empty ticket", line)
		return domain.TradeRecord{}, false
	}
	ticket := parseLenientInt(rawTicket)
	if ticket <= 0 {
		p.report.errorf("Line %d: invalid ticket %q", line, rawTicket)
		return domain.TradeRecord{}, false
	}

	rawTime := v["time"]
	ts, ok := parseTradeTime(strings.TrimSpace(rawTime), p.cfg.DateFormats)
	if !ok {
		p.report.errorf("Line %d: invalid time %q", line, rawTime)
		return domain.TradeRecord{}, false
	}

	opType := parseLenientInt(v["type"])
	if opType < 0 || opType > int64(domain.MaxOperationType) {
		p.report.warnf("Line %d: operation type %d is outside the range 0-%d", line, opType, domain.MaxOperationType)
	}

	return domain.TradeRecord{
		Ticket:     ticket,
		Time:       formatCanonical(ts),
		Type:       domain.OperationType(opType),
		Symbol:     NormalizeSymbol(v["symbol"]),
		Volume:     p.numbers.parseFloat(v["volume"]),
		Price:      p.numbers.parseFloat(v["price"]),
		StopLoss:   p.numbers.parseFloat(v["sl"]),
		TakeProfit: p.numbers.parseFloat(v["tp"]),
		Commission: p.numbers.parseFloat(v["commission"]),
		Swap:       p.numbers.parseFloat(v["swap"]),
		Profit:     p.numbers.parseFloat(v["profit"]),
		Magic:      parseLenientInt(v["magic"]),
		Entry:      parseLenientInt(v["entry"]),
		Reason:     parseLenientInt(v["reason"]),
		PositionID: parseLenientInt(v["position_id"]),
		OrderID:    parseLenientInt(v["order_id"]),
		Comment:    truncateRunes(v["comment"], p.cfg.MaxCommentLength),
		Line:       line,
		Timestamp:  ts,
	}, true
}

// decodeReader transcodes single-byte encodings to UTF-8
func decodeReader(r io.Reader, encoding string) io.Reader {
	switch encoding {
	case domain.EncodingISO88591:
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case domain.EncodingWindows1252:
		return transform.NewReader(r, charmap.Windows1252.NewDecoder())
	default:
		return r
	}
}

// lineCounter counts the physical lines read through it
type lineCounter struct {
	r        io.Reader
	newlines int
	last     byte
	read     bool
}

func (c *lineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.newlines += bytes.Count(p[:n], []byte{'\n'})
		c.last = p[n-1]
		c.read = true
	}
	return n, err
}

// count is the number of lines seen, including an unterminated last line
func (c *lineCounter) count() int {
	if c.read && c.last != '\n' {
		return c.newlines + 1
	}
	return c.newlines
}

// contextReader fails reads once ctx is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func normalizeHeader(fields []string) []string {
	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = strings.ToLower(strings.TrimSpace(f))
	}
	return header
}

// missingColumns lists required names absent from header, in required order
func missingColumns(header, required []string) []string {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	var missing []string
	for _, name := range required {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

func blankRow(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func nonEmpty(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}
