package integrity

import (
	"bytes"
	"errors"
	"mime/multipart"

	"file-integrity/core/database"
	"file-integrity/core/fingerprint"
	"file-integrity/core/logger"
	"file-integrity/core/report"
	"file-integrity/feature/integrity/sources"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Multipart form fields accepted by the upload endpoints.
const (
	FieldFiles    = "files"
	FieldBaseline = "baseline"
)

// Handler handles HTTP requests for fingerprinting and comparison.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Post("/fingerprints", h.HandleGenerate)
	group.Post("/compare", h.HandleCompare)
	group.Post("/compare/:name", h.HandleCompareStored)
	group.Get("/objects", h.HandleObjects)
	group.Get("/tables/:table", h.HandleTable)
}

// HandleGenerate fingerprints uploaded files.
// @Summary Generate Baseline
// @Description Computes the SHA-256 fingerprint of every uploaded file. Unreadable files are listed in errors. With format=csv the baseline is returned as baseline_checksums.csv.
// @Tags integrity
// @Accept multipart/form-data
// @Produce json
// @Produce text/csv
// @Param files formData file true "Files to fingerprint"
// @Param format query string false "Response format (json, csv)"
// @Success 200 {object} GenerateResult "Fingerprints"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 413 {object} map[string]string "Upload Too Large"
// @Router /integrity/fingerprints [post]
func (h *Handler) HandleGenerate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	files, err := h.uploadedFiles(c)
	if err != nil {
		return h.fail(c, l, err)
	}

	l.Info("Generating fingerprints", zap.Int("files", len(files)))
	result := h.service.Generate(c.Context(), sources.Multipart(files))

	if c.Query("format") == "csv" {
		return sendFingerprintCSV(c, result.Set)
	}
	return c.JSON(result)
}

// HandleCompare compares uploaded files against an uploaded baseline.
// @Summary Compare With Baseline
// @Description Fingerprints the uploaded files and compares them with the uploaded baseline CSV (columns filename and sha256). Every name of either side is reported as unchanged, modified, new or missing. With format=csv the report is returned as comparison_report.csv.
// @Tags integrity
// @Accept multipart/form-data
// @Produce json
// @Produce text/csv
// @Param baseline formData file true "Baseline CSV"
// @Param files formData file true "Files to compare"
// @Param format query string false "Response format (json, csv)"
// @Success 200 {object} CompareResult "Comparison Report"
// @Failure 400 {object} map[string]string "Malformed Baseline"
// @Failure 413 {object} map[string]string "Upload Too Large"
// @Router /integrity/compare [post]
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	files, err := h.uploadedFiles(c)
	if err != nil {
		return h.fail(c, l, err)
	}

	baselineHeader, err := c.FormFile(FieldBaseline)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing baseline file in field " + FieldBaseline})
	}
	baseline, err := baselineHeader.Open()
	if err != nil {
		l.Error("Failed to open baseline upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open baseline upload"})
	}
	defer baseline.Close()

	l.Info("Comparing with uploaded baseline",
		zap.String("baseline", baselineHeader.Filename),
		zap.Int("files", len(files)))

	result, err := h.service.Compare(c.Context(), baseline, sources.Multipart(files))
	if err != nil {
		return h.fail(c, l, err)
	}
	return sendComparison(c, result)
}

// HandleCompareStored compares uploaded files against a baseline stored in the bucket.
// @Summary Compare With Stored Baseline
// @Description Fingerprints the uploaded files and compares them with the baseline CSV stored in the bucket under the configured baseline prefix.
// @Tags integrity
// @Accept multipart/form-data
// @Produce json
// @Produce text/csv
// @Param name path string true "Baseline name"
// @Param files formData file true "Files to compare"
// @Param format query string false "Response format (json, csv)"
// @Success 200 {object} CompareResult "Comparison Report"
// @Failure 400 {object} map[string]string "Malformed Baseline"
// @Failure 404 {object} map[string]string "Baseline Not Found"
// @Failure 502 {object} map[string]string "Storage Error"
// @Router /integrity/compare/{name} [post]
func (h *Handler) HandleCompareStored(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")

	files, err := h.uploadedFiles(c)
	if err != nil {
		return h.fail(c, l, err)
	}

	l.Info("Comparing with stored baseline", zap.String("baseline", name), zap.Int("files", len(files)))

	result, err := h.service.CompareStored(c.Context(), name, sources.Multipart(files))
	if err != nil {
		return h.fail(c, l, err)
	}
	return sendComparison(c, result)
}

// HandleObjects fingerprints bucket objects.
// @Summary Fingerprint Bucket Objects
// @Description Computes the SHA-256 fingerprint of every object under the prefix, named relative to it.
// @Tags integrity
// @Produce json
// @Produce text/csv
// @Param prefix query string false "Object prefix"
// @Param extension query string false "Only keys ending with this extension"
// @Param format query string false "Response format (json, csv)"
// @Success 200 {object} GenerateResult "Fingerprints"
// @Failure 404 {object} map[string]string "Bucket Not Found"
// @Failure 502 {object} map[string]string "Storage Error"
// @Router /integrity/objects [get]
func (h *Handler) HandleObjects(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	prefix := c.Query("prefix")

	entries, err := h.service.ObjectEntries(c.Context(), prefix, c.Query("extension"))
	if err != nil {
		return h.fail(c, l, err)
	}

	l.Info("Fingerprinting bucket objects", zap.String("prefix", prefix), zap.Int("objects", len(entries)))
	result := h.service.Generate(c.Context(), entries)

	if c.Query("format") == "csv" {
		return sendFingerprintCSV(c, result.Set)
	}
	return c.JSON(result)
}

// HandleTable fingerprints the rows of a database table.
// @Summary Fingerprint Table Rows
// @Description Computes the SHA-256 fingerprint of the content column of every row, named by the name column.
// @Tags integrity
// @Produce json
// @Produce text/csv
// @Param table path string true "Table name"
// @Param name_column query string false "Column holding the names" default(name)
// @Param content_column query string false "Column holding the content" default(content)
// @Param format query string false "Response format (json, csv)"
// @Success 200 {object} GenerateResult "Fingerprints"
// @Failure 400 {object} map[string]string "Unknown Table Or Column"
// @Failure 503 {object} map[string]string "Database Not Configured"
// @Router /integrity/tables/{table} [get]
func (h *Handler) HandleTable(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	table := c.Params("table")

	entries, err := h.service.TableEntries(c.Context(), table,
		c.Query("name_column", "name"), c.Query("content_column", "content"))
	if err != nil {
		return h.fail(c, l, err)
	}

	l.Info("Fingerprinting table rows", zap.String("table", table), zap.Int("rows", len(entries)))
	result := h.service.Generate(c.Context(), entries)

	if c.Query("format") == "csv" {
		return sendFingerprintCSV(c, result.Set)
	}
	return c.JSON(result)
}

var errUploadTooLarge = errors.New("upload exceeds the configured size limit")

func (h *Handler) uploadedFiles(c *fiber.Ctx) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "expected a multipart/form-data body")
	}

	files := form.File[FieldFiles]
	if len(files) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, ErrNoInput.Error()+" in field "+FieldFiles)
	}

	if limit := h.service.cfg.MaxUploadBytes(); limit > 0 {
		var total int64
		for _, fh := range files {
			total += fh.Size
		}
		if total > limit {
			return nil, errUploadTooLarge
		}
	}
	return files, nil
}

// fail maps err to a status code and writes it as a JSON error.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		l.Error("Integrity request failed", zap.Error(err))
	} else {
		l.Warn("Integrity request rejected", zap.Error(err))
	}

	msg := err.Error()
	var fe *fiber.Error
	if errors.As(err, &fe) {
		msg = fe.Message
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, report.ErrMalformedBaseline),
		errors.Is(err, report.ErrParseFailure),
		errors.Is(err, database.ErrInvalidIdentifier),
		errors.Is(err, database.ErrMissingColumn):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrBaselineNotFound),
		errors.Is(err, sources.ErrBucketNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errUploadTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, ErrDatabaseUnavailable),
		errors.Is(err, ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadGateway
	}
}

func sendFingerprintCSV(c *fiber.Ctx, set fingerprint.Set) error {
	var buf bytes.Buffer
	if err := report.WriteFingerprints(&buf, set); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Attachment(report.BaselineFileName)
	return c.Send(buf.Bytes())
}

func sendComparison(c *fiber.Ctx, result *CompareResult) error {
	if c.Query("format") != "csv" {
		return c.JSON(result)
	}

	var buf bytes.Buffer
	if err := report.WriteComparison(&buf, result.Results); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	c.Attachment(report.ComparisonFileName)
	return c.Send(buf.Bytes())
}
