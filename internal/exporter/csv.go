package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "github.com/WayPool/ElysiumBOT-sub001/internal/errors"
	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts/domain"
)

// utf8BOM helps Excel recognize UTF-8
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RecordHeaders is the canonical column order of exported records
var RecordHeaders = []string{
	"ticket", "time", "type", "symbol", "volume", "price", "sl", "tp",
	"commission", "swap", "profit", "comment", "magic", "entry", "reason",
	"position_id", "order_id",
}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "csv_exporter"))}
}

// WriteRecords writes trade records in canonical column order with a BOM.
// Records are streamed so large histories are never held twice in memory.
func (w *CSVWriter) WriteRecords(filePath string, records []domain.TradeRecord) error {
	stream, err := w.CreateStreamWriter(filePath, RecordHeaders)
	if err != nil {
		return err
	}

	for i, rec := range records {
		if err := stream.WriteRecord(recordRow(rec)); err != nil {
			stream.Close()
			return apperrors.NewExportError(fmt.Sprintf("failed to write ticket %d (record %d)", rec.Ticket, i), err)
		}
	}

	if err := stream.Close(); err != nil {
		return apperrors.NewExportError("failed to close CSV stream", err)
	}

	w.logger.Info("trade records exported",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(records)))
	return nil
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	w.logger.Debug("creating CSV stream writer",
		slog.String("file_path", filePath),
		slog.Int("header_count", len(headers)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, apperrors.NewExportError("failed to create directory", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, apperrors.NewExportError("failed to create file", err)
	}

	if _, err := file.Write(utf8BOM); err != nil {
		file.Close()
		return nil, apperrors.NewExportError("failed to write BOM", err)
	}

	writer := csv.NewWriter(file)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, apperrors.NewExportError("failed to write headers", err)
		}
	}

	return &StreamWriter{
		file:   file,
		writer: writer,
	}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// recordRow renders rec in RecordHeaders order
func recordRow(rec domain.TradeRecord) []string {
	return []string{
		formatInt(rec.Ticket),
		rec.Time,
		formatInt(int64(rec.Type)),
		rec.Symbol,
		formatFloat(rec.Volume),
		formatFloat(rec.Price),
		formatFloat(rec.StopLoss),
		formatFloat(rec.TakeProfit),
		formatFloat(rec.Commission),
		formatFloat(rec.Swap),
		formatFloat(rec.Profit),
		rec.Comment,
		formatInt(rec.Magic),
		formatInt(rec.Entry),
		formatInt(rec.Reason),
		formatInt(rec.PositionID),
		formatInt(rec.OrderID),
	}
}
