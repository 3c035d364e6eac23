package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/WayPool/ElysiumBOT-sub001/internal/config"
	"github.com/WayPool/ElysiumBOT-sub001/internal/exporter"
	"github.com/WayPool/ElysiumBOT-sub001/internal/files"
	"github.com/WayPool/ElysiumBOT-sub001/internal/infrastructure"
	"github.com/WayPool/ElysiumBOT-sub001/internal/tradeimport"
	"github.com/WayPool/ElysiumBOT-sub001/internal/validation"
	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts"
	"github.com/WayPool/ElysiumBOT-sub001/pkg/contracts/domain"
)

// Exit codes
const (
	exitValid   = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run validates one file, or every importable file of a directory, and
// prints the reports as JSON on stdout. Logs go to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to a YAML config file")
	csvOut := flags.String("csv", "", "write accepted records to this CSV file when the report is valid")
	xlsxOut := flags.String("xlsx", "", "write an Excel workbook with trades and summary when the report is valid")
	quiet := flags.Bool("quiet", false, "only log errors")
	parallel := flags.Int("parallel", config.DefaultMaxConcurrentImports, "files validated at once when the argument is a directory")
	showVersion := flags.Bool("version", false, "print the version and exit")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: %s [-config file] [-csv out.csv] [-xlsx out.xlsx] [-quiet] <file>\n", config.AppName)
		fmt.Fprintf(stderr, "       %s [-config file] [-parallel n] [-quiet] <directory>\n", config.AppName)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitValid
		}
		return exitUsage
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetVersionString())
		return exitValid
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return exitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return exitUsage
	}
	if *quiet {
		cfg.Logging.Level = "error"
	}

	logger := infrastructure.NewLogger(cfg.Logging, stderr)
	engine := tradeimport.New(cfg.Import, logger)

	target := flags.Arg(0)
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		if *csvOut != "" || *xlsxOut != "" {
			fmt.Fprintf(stderr, "%s: -csv and -xlsx need a single file\n", config.AppName)
			return exitUsage
		}
		return runBatch(ctx, cfg.Import, logger, engine, target, *parallel, stdout, stderr)
	}

	result := engine.ValidateFile(ctx, target)

	if err := writeJSON(stdout, result.Report); err != nil {
		logger.Error("failed to write report", slog.String("error", err.Error()))
		return exitInvalid
	}

	if !result.Report.Valid {
		return exitInvalid
	}

	if err := export(cfg.Import, logger, result, *csvOut, *xlsxOut); err != nil {
		logger.Error("export failed", slog.String("error", err.Error()))
		return exitInvalid
	}

	return exitValid
}

// batchEntry is one file of a directory run
type batchEntry struct {
	File   string                  `json:"file"`
	Report domain.ValidationReport `json:"report"`
}

// runBatch validates every importable file in dir and prints the reports as
// a JSON array. Exit code is invalid when any report is invalid.
func runBatch(ctx context.Context, cfg config.ImportConfig, logger *slog.Logger, engine *tradeimport.Engine, dir string, parallel int, stdout, stderr io.Writer) int {
	found, err := files.NewDiscovery(cfg.AllowedExtensions).FindImportFiles(dir)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", config.AppName, err)
		return exitUsage
	}
	if len(found) == 0 {
		fmt.Fprintf(stderr, "%s: no importable files in %s\n", config.AppName, dir)
		return exitUsage
	}

	results := engine.ValidateFiles(ctx, files.Paths(found), parallel)

	code := exitValid
	entries := make([]batchEntry, len(results))
	for i, res := range results {
		entries[i] = batchEntry{File: found[i].Path, Report: res.Report}
		if !res.Report.Valid {
			code = exitInvalid
		}
	}

	if err := writeJSON(stdout, entries); err != nil {
		logger.Error("failed to write reports", slog.String("error", err.Error()))
		return exitInvalid
	}
	return code
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

// export writes the requested artifacts for a valid result
func export(cfg config.ImportConfig, logger *slog.Logger, result *tradeimport.Result, csvPath, xlsxPath string) error {
	dirs := validation.NewFileValidator(validation.RulesFromConfig(cfg), logger)

	if csvPath != "" {
		if err := dirs.ValidateOutputDirectory(filepath.Dir(csvPath)); err != nil {
			return err
		}
		if err := exporter.NewCSVWriter(logger).WriteRecords(csvPath, result.Records); err != nil {
			return err
		}
	}

	if xlsxPath != "" {
		if err := dirs.ValidateOutputDirectory(filepath.Dir(xlsxPath)); err != nil {
			return err
		}
		if err := exporter.NewXLSXWriter(logger).WriteWorkbook(xlsxPath, result.Report, result.Records); err != nil {
			return err
		}
	}

	return nil
}
