package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/WayPool/ElysiumBOT-sub001/internal/errors"
	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts/domain"
)

// Workbook sheet names
const (
	TradesSheet  = "Trades"
	SummarySheet = "Summary"
)

// XLSXWriter writes records and report summaries to Excel workbooks
type XLSXWriter struct {
	logger *slog.Logger
}

// NewXLSXWriter creates a new workbook writer
func NewXLSXWriter(logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{logger: logger.With(slog.String("component", "xlsx_exporter"))}
}

// WriteWorkbook saves a workbook with a Trades sheet and a Summary sheet
func (w *XLSXWriter) WriteWorkbook(filePath string, report domain.ValidationReport, records []domain.TradeRecord) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return apperrors.NewExportError("failed to create directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperrors.NewExportError("failed to create header style", err)
	}

	if err := f.SetSheetName("Sheet1", TradesSheet); err != nil {
		return apperrors.NewExportError("failed to name trades sheet", err)
	}
	if err := w.writeTrades(f, headerStyle, records); err != nil {
		return err
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return apperrors.NewExportError("failed to create summary sheet", err)
	}
	if err := w.writeSummary(f, headerStyle, report); err != nil {
		return err
	}

	if err := f.SaveAs(filePath); err != nil {
		return apperrors.NewExportError("failed to save workbook", err)
	}

	w.logger.Info("workbook exported",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(records)),
		slog.Bool("valid", report.Valid))
	return nil
}

func (w *XLSXWriter) writeTrades(f *excelize.File, headerStyle int, records []domain.TradeRecord) error {
	header := make([]interface{}, len(RecordHeaders))
	for i, h := range RecordHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(TradesSheet, "A1", &header); err != nil {
		return apperrors.NewExportError("failed to write trades header", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(RecordHeaders))
	if err != nil {
		return apperrors.NewExportError("failed to resolve header range", err)
	}
	if err := f.SetCellStyle(TradesSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return apperrors.NewExportError("failed to style trades header", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewExportError("failed to resolve cell", err)
		}
		row := []interface{}{
			rec.Ticket, rec.Time, int(rec.Type), rec.Symbol,
			rec.Volume, rec.Price, rec.StopLoss, rec.TakeProfit,
			rec.Commission, rec.Swap, rec.Profit, rec.Comment,
			rec.Magic, rec.Entry, rec.Reason, rec.PositionID, rec.OrderID,
		}
		if err := f.SetSheetRow(TradesSheet, cell, &row); err != nil {
			return apperrors.NewExportError(fmt.Sprintf("failed to write ticket %d", rec.Ticket), err)
		}
	}

	if err := f.SetPanes(TradesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return apperrors.NewExportError("failed to freeze trades header", err)
	}
	return nil
}

// writeSummary lays out statistics as label/value pairs followed by the
// report messages, one per row
func (w *XLSXWriter) writeSummary(f *excelize.File, headerStyle int, report domain.ValidationReport) error {
	stats := report.Statistics
	rows := [][]interface{}{
		{"metric", "value"},
		{"valid", formatBool(report.Valid)},
		{"errors", len(report.Errors)},
		{"warnings", len(report.Warnings)},
		{"total_records", stats.TotalRecords},
		{"total_trades", stats.TotalTrades},
		{"total_deposits", stats.TotalDeposits},
		{"total_withdrawals", stats.TotalWithdrawals},
		{"gross_profit", stats.GrossProfit},
		{"gross_loss", stats.GrossLoss},
		{"net_profit", stats.NetProfit},
		{"profit_factor", stats.ProfitFactor},
		{"total_commission", stats.TotalCommission},
		{"total_swap", stats.TotalSwap},
		{"final_balance", stats.FinalBalance},
		{"symbols", strings.Join(stats.Symbols, ", ")},
	}

	messages := []struct {
		kind string
		list []string
	}{
		{"error", report.Errors},
		{"warning", report.Warnings},
		{"info", report.Info},
	}
	if len(report.Errors)+len(report.Warnings)+len(report.Info) > 0 {
		rows = append(rows, []interface{}{}, []interface{}{"level", "message"})
		for _, m := range messages {
			for _, msg := range m.list {
				rows = append(rows, []interface{}{m.kind, msg})
			}
		}
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return apperrors.NewExportError("failed to resolve cell", err)
		}
		if err := f.SetSheetRow(SummarySheet, cell, &rows[i]); err != nil {
			return apperrors.NewExportError("failed to write summary row", err)
		}
		if len(rows[i]) == 2 && (rows[i][0] == "metric" || rows[i][0] == "level") {
			if err := f.SetCellStyle(SummarySheet, cell, fmt.Sprintf("B%d", i+1), headerStyle); err != nil {
				return apperrors.NewExportError("failed to style summary header", err)
			}
		}
	}

	if err := f.SetColWidth(SummarySheet, "A", "A", 20); err != nil {
		return apperrors.NewExportError("failed to size summary column", err)
	}
	if err := f.SetColWidth(SummarySheet, "B", "B", 60); err != nil {
		return apperrors.NewExportError("failed to size summary column", err)
	}
	return nil
}
