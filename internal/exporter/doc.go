// Package exporter writes validated trade records to files.
//
// CSVWriter produces UTF-8 CSV with a byte order mark so spreadsheet
// applications detect the encoding. The column order matches the canonical
// import header, so an exported file can be validated again unchanged.
//
// XLSXWriter produces a workbook with a Trades sheet holding the records and
// a Summary sheet holding the report statistics and messages.
//
// Example usage:
//
//	csvWriter := exporter.NewCSVWriter(logger)
//	err := csvWriter.WriteRecords("out/history.csv", result.Records)
//
//	xlsxWriter := exporter.NewXLSXWriter(logger)
//	err = xlsxWriter.WriteWorkbook("out/history.xlsx", result.Report, result.Records)
package exporter
