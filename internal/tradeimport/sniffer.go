package tradeimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	apperrors "github.com/WayPool/ElysiumBOT-sub001/internal/errors"
	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts/domain"
)

// utf8BOM is the UTF-8 byte order mark
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// headerKeywords mark a first line as a header row
var headerKeywords = map[string]bool{
	"ticket": true,
	"time":   true,
	"date":   true,
	"type":   true,
	"symbol": true,
	"volume": true,
	"price":  true,
}

// encodingCheck pairs an encoding name with its validity rule
type encodingCheck struct {
	name  string
	valid func([]byte) bool
}

// encodingPriority is the order in which encodings are tested
var encodingPriority = []encodingCheck{
	{domain.EncodingUTF8, utf8.Valid},
	{domain.EncodingISO88591, func([]byte) bool { return true }},
	{domain.EncodingWindows1252, validWindows1252},
	{domain.EncodingASCII, validASCII},
}

// readSample reads up to n physical lines from br. The returned bytes are
// exactly what was consumed, line terminators included.
func readSample(br *bufio.Reader, n int) ([]byte, error) {
	var sample []byte
	for i := 0; i < n; i++ {
		line, err := br.ReadBytes('\n')
		sample = append(sample, line...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sample, err
		}
	}
	return sample, nil
}

// Sniff detects the layout of a file from its leading lines. An empty
// sample, or one made only of whitespace, is an EMPTY_FILE error.
func Sniff(sample []byte) (domain.FormatDescriptor, error) {
	hasBOM := bytes.HasPrefix(sample, utf8BOM)
	body := sample
	if hasBOM {
		body = sample[len(utf8BOM):]
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return domain.FormatDescriptor{}, apperrors.NewEmptyFileError("file contains no data")
	}

	lines := sampleLines(body)
	delim := DetectDelimiter(lines)

	return domain.FormatDescriptor{
		Delimiter: delim,
		Encoding:  DetectEncoding(sample),
		HasBOM:    hasBOM,
		HasHeader: DetectHeader(firstNonBlank(lines), delim),
	}, nil
}

// DetectEncoding returns the first encoding whose rules accept sample
func DetectEncoding(sample []byte) string {
	for _, check := range encodingPriority {
		if check.valid(sample) {
			return check.name
		}
	}
	return domain.EncodingUTF8
}

// DetectDelimiter scores each candidate by its total occurrences across
// lines. Ties, including no occurrences at all, go to the earlier candidate.
func DetectDelimiter(lines []string) domain.Delimiter {
	best := domain.CandidateDelimiters[0]
	bestCount := -1
	for _, d := range domain.CandidateDelimiters {
		count := 0
		for _, line := range lines {
			count += strings.Count(line, string(rune(d)))
		}
		if count > bestCount {
			best, bestCount = d, count
		}
	}
	return best
}

// DetectHeader reports whether line looks like a header row: any field is
// a known column keyword, or a strict majority of fields are non-numeric.
func DetectHeader(line string, delim domain.Delimiter) bool {
	fields := splitLine(line, delim)
	if len(fields) == 0 {
		return false
	}

	nonNumeric := 0
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if headerKeywords[f] {
			return true
		}
		if !isNumeric(f) {
			nonNumeric++
		}
	}
	return nonNumeric*2 > len(fields)
}

// splitLine splits one line honoring quotes, falling back to a plain split
// for lines encoding/csv refuses.
func splitLine(line string, delim domain.Delimiter) []string {
	if line == "" {
		return nil
	}
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = rune(delim)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil {
		return strings.Split(line, string(rune(delim)))
	}
	return fields
}

// isNumeric accepts optionally signed decimal numbers with an optional
// fraction and exponent. Empty strings are not numeric.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	if numericPrefix(s) != s {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

func sampleLines(body []byte) []string {
	raw := strings.Split(string(body), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, strings.TrimSuffix(line, "\r"))
	}
	// a trailing newline leaves one empty element that is not a line
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func firstNonBlank(lines []string) string {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// windows1252Undefined are the byte values Microsoft leaves unassigned.
// Some tables pass them through as C1 controls, so they are listed here.
var windows1252Undefined = map[byte]bool{0x81: true, 0x8D: true, 0x8F: true, 0x90: true, 0x9D: true}

// validWindows1252 rejects bytes the code page does not define
func validWindows1252(b []byte) bool {
	for _, c := range b {
		if c < 0x80 {
			continue
		}
		if windows1252Undefined[c] || charmap.Windows1252.DecodeByte(c) == utf8.RuneError {
			return false
		}
	}
	return true
}

func validASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
