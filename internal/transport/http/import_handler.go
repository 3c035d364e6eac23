package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/WayPool/ElysiumBOT-sub001/internal/config"
	apierrors "github.com/WayPool/ElysiumBOT-sub001/internal/errors"
	"github.com/WayPool/ElysiumBOT-sub001/internal/middleware"
	"github.com/WayPool/ElysiumBOT-sub001/internal/services"
	api "github.com/WayPool/ElysiumBOT-sub001/pkg/contracts/api/v1"
)

// multipartMemory is how much of an upload is buffered in memory before
// the remainder spills to a temporary file
const multipartMemory = 8 << 20

// ImportHandler handles trade-history upload requests
type ImportHandler struct {
	service      *services.ImportService
	maxBody      int64
	query        *middleware.QueryParamValidator
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewImportHandler creates a new import handler. maxFileSize is the admission
// limit; the request body may exceed it by config.UploadBodySlack.
func NewImportHandler(service *services.ImportService, maxFileSize int64, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *ImportHandler {
	if service == nil {
		panic("service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if errorHandler == nil {
		errorHandler = apierrors.NewErrorHandler(logger, false)
	}

	return &ImportHandler{
		service:      service,
		maxBody:      maxFileSize + config.UploadBodySlack,
		query:        middleware.NewQueryParamValidator(logger, errorHandler),
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("handler", "imports")),
	}
}

// Routes sets up the import routes
func (h *ImportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(middleware.ContentTypeValidator("multipart/form-data")).Post("/validate", h.Validate)
	return r
}

// Validate handles POST /api/v1/imports/validate
func (h *ImportHandler) Validate(w http.ResponseWriter, r *http.Request) {
	includeRecords, ok := h.query.ValidateBool(w, r, "include_records", false)
	if !ok {
		return
	}

	if r.ContentLength > h.maxBody {
		h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.errorHandler.HandleError(w, r, uploadError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(config.UploadFormField)
	if err != nil {
		h.errorHandler.HandleError(w, r, uploadError(err))
		return
	}
	defer file.Close()

	result, err := h.service.Validate(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		if errors.Is(err, services.ErrImportCapacity) {
			w.Header().Set("Retry-After", "1")
			h.errorHandler.HandleError(w, r, apierrors.ErrServiceUnavailable)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "upload validated",
		slog.String("run_id", result.RunID.String()),
		slog.String("name", result.Name),
		slog.Bool("valid", result.Report.Valid),
		slog.Int("records", len(result.Records)))

	resp := api.ImportValidateResponse{
		RunID:  result.RunID,
		Name:   result.Name,
		Report: result.Report,
	}
	if includeRecords {
		resp.Records = result.Records
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

// uploadError maps multipart parsing failures onto API errors
func uploadError(err error) error {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return err
	case errors.Is(err, http.ErrMissingFile):
		return apierrors.ErrMissingFile
	default:
		return apierrors.InvalidRequestWithError(err)
	}
}
