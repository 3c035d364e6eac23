package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/WayPool/ElysiumBOT-sub001/internal/config"
	apperrors "github.com/WayPool/ElysiumBOT-sub001/internal/errors"
)

// AdmissionRules bound what a file must satisfy before it is parsed
type AdmissionRules struct {
	MaxFileSize       int64
	AllowedExtensions []string
}

// RulesFromConfig extracts the admission rules from an import config
func RulesFromConfig(cfg config.ImportConfig) AdmissionRules {
	exts := make([]string, len(cfg.AllowedExtensions))
	copy(exts, cfg.AllowedExtensions)
	return AdmissionRules{
		MaxFileSize:       cfg.MaxFileSize,
		AllowedExtensions: exts,
	}
}

// FileValidator is the admission gate for trade-history files. Every
// rejection is an *errors.AppError of type ADMISSION.
type FileValidator struct {
	logger *slog.Logger
	rules  AdmissionRules
}

// NewFileValidator creates a new file validator
func NewFileValidator(rules AdmissionRules, logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger.With(slog.String("component", "admission")),
		rules:  rules,
	}
}

// ValidateFile checks that path names a readable, non-empty regular file
// within the size limit and with an allowed extension.
func (v *FileValidator) ValidateFile(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("file does not exist",
			slog.String("file", path))
		return nil, apperrors.NewAdmissionError(fmt.Sprintf("file %s does not exist", filepath.Base(path)), err).
			WithContext("file", path)
	}
	if err != nil {
		v.logger.Error("failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return nil, apperrors.NewAdmissionError(fmt.Sprintf("file %s is not accessible", filepath.Base(path)), err).
			WithContext("file", path)
	}
	if info.IsDir() {
		v.logger.Error("path is a directory, not a file",
			slog.String("path", path))
		return nil, apperrors.NewAdmissionError(fmt.Sprintf("%s is a directory, not a file", filepath.Base(path)), nil).
			WithContext("file", path)
	}

	if err := v.ValidateUpload(filepath.Base(path), info.Size()); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return nil, apperrors.NewAdmissionError(fmt.Sprintf("file %s is not readable", filepath.Base(path)), err).
			WithContext("file", path)
	}
	file.Close()

	v.logger.Debug("file admitted",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return info, nil
}

// ValidateUpload applies the extension and size rules to a named stream
// whose size is known up front.
func (v *FileValidator) ValidateUpload(name string, size int64) error {
	if err := v.validateExtension(name); err != nil {
		return err
	}

	if size == 0 {
		v.logger.Error("file is empty",
			slog.String("file", name))
		return apperrors.NewAdmissionError(fmt.Sprintf("file %s is empty", name), nil).
			WithContext("file", name)
	}

	if size < 0 {
		v.logger.Error("file size unknown",
			slog.String("file", name))
		return apperrors.NewAdmissionError(fmt.Sprintf("file %s has an unknown size", name), nil).
			WithContext("file", name)
	}

	if size > v.rules.MaxFileSize {
		v.logger.Error("file exceeds maximum size",
			slog.String("file", name),
			slog.Int64("size", size),
			slog.Int64("max_size", v.rules.MaxFileSize))
		return apperrors.NewAdmissionError(
			fmt.Sprintf("file %s is %d bytes, exceeding the maximum of %d bytes", name, size, v.rules.MaxFileSize), nil).
			WithContext("file", name).
			WithContext("size", size).
			WithContext("max_size", v.rules.MaxFileSize)
	}

	return nil
}

// validateExtension checks the lower-cased extension against the allow-list
func (v *FileValidator) validateExtension(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range v.rules.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}

	v.logger.Error("file extension not allowed",
		slog.String("file", name),
		slog.String("extension", ext),
		slog.Any("allowed", v.rules.AllowedExtensions))

	shown := ext
	if shown == "" {
		shown = "(none)"
	}
	return apperrors.NewAdmissionError(
		fmt.Sprintf("file extension %s is not allowed (allowed: %s)", shown, strings.Join(v.rules.AllowedExtensions, ", ")), nil).
		WithContext("file", name).
		WithContext("extension", ext)
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("output directory validated",
		slog.String("directory", dir))
	return nil
}
