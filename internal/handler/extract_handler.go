package handler

import (
	"bytes"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"imidok/internal/config"
	"imidok/internal/domain"
	"imidok/internal/export"
	"imidok/internal/extractor"
	"imidok/internal/port"
	"imidok/internal/service"
)

// ExtractHandler handles document extraction endpoints.
type ExtractHandler struct {
	extracts  *service.ExtractService
	batch     *service.BatchService
	storage   port.ObjectStorage
	exportCfg config.ExportConfig
}

// NewExtractHandler creates a new ExtractHandler. storage may be nil when
// artifact archiving is disabled.
func NewExtractHandler(extracts *service.ExtractService, batch *service.BatchService, storage port.ObjectStorage, exportCfg config.ExportConfig) *ExtractHandler {
	return &ExtractHandler{extracts: extracts, batch: batch, storage: storage, exportCfg: exportCfg}
}

// Extract handles POST /api/v1/extract
// @Summary Extract fields from a single document
// @Description Linearize one document and extract its fields, classifying the layout unless document_type overrides it
// @Tags extract
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document to process"
// @Param document_type formData string false "Layout override (SKTT, EVLN, ITAS, ITK, NOTIFIKASI, DKPTKA); defaults to auto"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse "Missing file or unknown document_type"
// @Failure 422 {object} APIResponse "Empty or unsupported document"
// @Router /extract [post]
func (h *ExtractHandler) Extract(c *gin.Context) {
	in, ok := h.readFile(c, "file")
	if !ok {
		return
	}
	hint := c.DefaultPostForm("document_type", domain.LayoutHintAuto)

	rec, err := h.extracts.Extract(c.Request.Context(), in, hint)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"source":             in.Filename,
		"layout":             rec.Layout(),
		"fields":             rec.Fields(),
		"suggested_filename": extractor.SynthesizeRecordName(rec, h.exportCfg.RenameUseName, h.exportCfg.RenameUsePassport),
	})
}

// Classify handles POST /api/v1/extract/classify
// @Summary Detect the layout of a document without extracting fields
// @Tags extract
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document to classify"
// @Success 200 {object} APIResponse
// @Router /extract/classify [post]
func (h *ExtractHandler) Classify(c *gin.Context) {
	in, ok := h.readFile(c, "file")
	if !ok {
		return
	}

	kind, err := h.extracts.Classify(c.Request.Context(), in)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"source": in.Filename, "layout": kind})
}

// BulkExtract handles POST /api/v1/extract/bulk
// @Summary Extract fields from many documents into a spreadsheet
// @Description Process every uploaded file and stream back an xlsx or csv of the extracted fields; per-file failures do not abort the batch
// @Tags extract
// @Accept multipart/form-data
// @Produce application/octet-stream
// @Param files formData file true "Documents to process"
// @Param document_type formData string false "Layout override applied to every file; defaults to auto"
// @Param export_format formData string false "xlsx (default) or csv"
// @Success 200 {file} binary
// @Failure 400 {object} APIResponse
// @Failure 422 {object} APIResponse "No file could be processed"
// @Router /extract/bulk [post]
func (h *ExtractHandler) BulkExtract(c *gin.Context) {
	ins, hint, ok := h.readBatch(c)
	if !ok {
		return
	}
	format, ok := domain.ParseExportFormat(c.PostForm("export_format"))
	if !ok {
		HandleError(c, domain.ErrInvalidExportType)
		return
	}

	ctx := c.Request.Context()
	docs := h.extracts.LinearizeAll(ctx, ins, hint)
	result, job := h.batch.RunAndRecord(ctx, docs, hint, format)
	if result.AllFailed() {
		HandleError(c, domain.ErrNoSuccessfulItems)
		return
	}

	rows := successRows(result, nil)

	var data []byte
	var contentType, filename string
	switch format {
	case domain.ExportFormatCSV:
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, rows); err != nil {
			HandleError(c, err)
			return
		}
		data = buf.Bytes()
		contentType = "text/csv; charset=utf-8"
		filename = export.BuildFilename(h.exportCfg.BaseName, "csv")
	default:
		var err error
		data, err = export.WriteXLSX(rows)
		if err != nil {
			HandleError(c, err)
			return
		}
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = export.BuildFilename(h.exportCfg.BaseName, "xlsx")
	}

	h.archiveArtifact(c, job, filename, contentType, data)

	c.Header("X-Job-ID", job.ID.String())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// Rename handles POST /api/v1/extract/rename
// @Summary Rename documents from their extracted fields
// @Description Process every uploaded file and stream back a zip of the originals renamed to "<name> <passport>.pdf", plus a manifest workbook
// @Tags extract
// @Accept multipart/form-data
// @Produce application/zip
// @Param files formData file true "Documents to process"
// @Param document_type formData string false "Layout override applied to every file; defaults to auto"
// @Success 200 {file} binary
// @Failure 400 {object} APIResponse
// @Failure 422 {object} APIResponse "No file could be processed"
// @Router /extract/rename [post]
func (h *ExtractHandler) Rename(c *gin.Context) {
	ins, hint, ok := h.readBatch(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	docs := h.extracts.LinearizeAll(ctx, ins, hint)
	result, job := h.batch.RunAndRecord(ctx, docs, hint, domain.ExportFormatXLSX)
	if result.AllFailed() {
		HandleError(c, domain.ErrNoSuccessfulItems)
		return
	}

	// Failed files keep their upload name inside the bundle so nothing is
	// silently dropped.
	files := make([]export.BundleFile, len(result.Items))
	newNames := make([]string, len(result.Items))
	for i, it := range result.Items {
		name := it.Source
		if it.Status == domain.ItemStatusSuccess {
			name = extractor.SynthesizeRecordName(it.Record, h.exportCfg.RenameUseName, h.exportCfg.RenameUsePassport)
		}
		files[i] = export.BundleFile{Name: name, Data: ins[i].FileBytes}
		newNames[i] = name
	}

	rows := successRows(result, newNames)
	manifest, err := export.WriteXLSX(rows)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteRenameBundle(&buf, files, "manifest.xlsx", manifest); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(h.exportCfg.BaseName+"_renamed", "zip")
	h.archiveArtifact(c, job, filename, "application/zip", buf.Bytes())

	c.Header("X-Job-ID", job.ID.String())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// readFile reads one multipart file into memory. Returns ok=false with the
// error response already written.
func (h *ExtractHandler) readFile(c *gin.Context, field string) (port.ExtractInput, bool) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", field+" field is required")
		return port.ExtractInput{}, false
	}
	defer func() { _ = file.Close() }()

	in, err := toExtractInput(file, header)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return port.ExtractInput{}, false
	}
	return in, true
}

// readBatch reads the "files" multipart field and validates the shared layout
// hint. Returns ok=false with the error response already written.
func (h *ExtractHandler) readBatch(c *gin.Context) ([]port.ExtractInput, string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORM", "multipart form is required")
		return nil, "", false
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		HandleError(c, domain.ErrNoFilesProvided)
		return nil, "", false
	}

	hint := c.DefaultPostForm("document_type", domain.LayoutHintAuto)
	if hint != domain.LayoutHintAuto {
		if _, ok := domain.ParseLayoutKind(hint); !ok {
			HandleError(c, domain.ErrInvalidLayoutHint)
			return nil, "", false
		}
	}

	ins := make([]port.ExtractInput, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read "+header.Filename)
			return nil, "", false
		}
		in, err := toExtractInput(file, header)
		_ = file.Close()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read "+header.Filename)
			return nil, "", false
		}
		ins = append(ins, in)
	}
	return ins, hint, true
}

// archiveArtifact uploads the export artifact and links it to the job. Best
// effort: failures are logged, never surfaced to the download response.
func (h *ExtractHandler) archiveArtifact(c *gin.Context, job *domain.ExtractionJob, filename, contentType string, data []byte) {
	if h.storage == nil {
		return
	}
	key := "jobs/" + job.ID.String() + "/" + filename
	_, err := h.storage.Upload(c.Request.Context(), port.UploadInput{
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
	})
	if err != nil {
		log.Printf("extractHandler: archive artifact for job %s: %v", job.ID, err)
		return
	}
	h.batch.AttachArtifact(c.Request.Context(), job, key)
}

func toExtractInput(file multipart.File, header *multipart.FileHeader) (port.ExtractInput, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return port.ExtractInput{}, err
	}
	return port.ExtractInput{
		FileBytes:   data,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}, nil
}

// successRows builds export rows from the successful batch items. newNames,
// when non-nil, is indexed like result.Items.
func successRows(result *domain.BatchResult, newNames []string) []export.Row {
	rows := make([]export.Row, 0, len(result.Items))
	for i, it := range result.Items {
		if it.Status != domain.ItemStatusSuccess {
			continue
		}
		row := export.Row{Source: it.Source, Record: it.Record}
		if newNames != nil {
			row.NewName = newNames[i]
		}
		rows = append(rows, row)
	}
	return rows
}
