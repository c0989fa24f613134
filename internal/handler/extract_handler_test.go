package handler

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imidok/internal/config"
	"imidok/internal/extractor"
	"imidok/internal/normalizer"
	"imidok/internal/service"
	"imidok/internal/textextract"
)

const skttUpload = `SURAT KETERANGAN TENAGA KERJA TERDAFTAR
NIK/Number of Population Identity : 1234567890123456
Nama/Name : JOHN MICHAEL DOE
Jenis Kelamin/Sex : MALE
Nomor KITAP/KITAS Number : 2C11JE1234-X`

// newTestRouter wires the extraction surface with the plain text extractor,
// no database, and no artifact storage.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	cfg.Server.MaxUploadMB = 8
	cfg.Batch.Concurrency = 2
	cfg.Export.BaseName = "extracted_data"
	cfg.Export.RenameUseName = true
	cfg.Export.RenameUsePassport = true

	dispatcher := extractor.NewDispatcher(normalizer.New())
	extractSvc := service.NewExtractService(textextract.Plain{}, dispatcher)
	batchSvc := service.NewBatchService(dispatcher, nil, cfg.Batch.Concurrency)

	extractH := NewExtractHandler(extractSvc, batchSvc, nil, cfg.Export)
	return setupRoutes(cfg, extractH)
}

// setupRoutes mirrors the production router shape without the job history
// routes.
func setupRoutes(cfg *config.Config, extractH *ExtractHandler) http.Handler {
	r := gin.New()
	r.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20

	healthH := NewHealthHandler(nil)
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.POST("/extract", extractH.Extract)
	v1.POST("/extract/classify", extractH.Classify)
	v1.POST("/extract/bulk", extractH.BulkExtract)
	v1.POST("/extract/rename", extractH.Rename)
	v1.GET("/layouts", NewLayoutHandler().List)
	return r
}

func multipartBody(t *testing.T, field string, files map[string]string, form map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range form {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doRequest(t *testing.T, router http.Handler, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestExtractEndpoint(t *testing.T) {
	router := newTestRouter(t)
	body, ct := multipartBody(t, "file", map[string]string{"doc.txt": skttUpload}, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/extract", body, ct)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Source            string             `json:"source"`
			Layout            string             `json:"layout"`
			Fields            map[string]*string `json:"fields"`
			SuggestedFilename string             `json:"suggested_filename"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "doc.txt", resp.Data.Source)
	assert.Equal(t, "SKTT", resp.Data.Layout)
	require.NotNil(t, resp.Data.Fields["Name"])
	assert.Equal(t, "JOHN MICHAEL DOE", *resp.Data.Fields["Name"])
	assert.Equal(t, "JOHN MICHAEL DOE 2C11JE1234-X.pdf", resp.Data.SuggestedFilename)
}

func TestExtractEndpointMissingFile(t *testing.T) {
	router := newTestRouter(t)
	body, ct := multipartBody(t, "file", nil, map[string]string{"document_type": "auto"})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/extract", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractEndpointEmptyDocument(t *testing.T) {
	router := newTestRouter(t)
	body, ct := multipartBody(t, "file", map[string]string{"blank.txt": "   "}, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/extract", body, ct)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMPTY_DOCUMENT")
}

func TestClassifyEndpoint(t *testing.T) {
	router := newTestRouter(t)
	body, ct := multipartBody(t, "file", map[string]string{"doc.txt": "BUKTI PEMBAYARAN DKPTKA"}, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/extract/classify", body, ct)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "DKPTKA")
}

func TestBulkExtractEndpoint(t *testing.T) {
	router := newTestRouter(t)
	body, ct := multipartBody(t, "files", map[string]string{
		"a.txt": skttUpload,
		"b.txt": "unclassifiable",
	}, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/extract/bulk", body, ct)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.NotEmpty(t, rec.Header().Get("X-Job-ID"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestBulkExtractInvalidHint(t *testing.T) {
	router := newTestRouter(t)
	body, ct := multipartBody(t, "files", map[string]string{"a.txt": skttUpload},
		map[string]string{"document_type": "PASSPORT"})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/extract/bulk", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_LAYOUT_HINT")
}

func TestBulkExtractAllFailed(t *testing.T) {
	router := newTestRouter(t)
	body, ct := multipartBody(t, "files", map[string]string{"a.txt": "junk", "b.txt": " "}, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/extract/bulk", body, ct)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_SUCCESSFUL_ITEMS")
}

func TestBulkExtractNoFiles(t *testing.T) {
	router := newTestRouter(t)
	body, ct := multipartBody(t, "files", nil, map[string]string{"export_format": "csv"})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/extract/bulk", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_FILES_PROVIDED")
}

func TestRenameEndpoint(t *testing.T) {
	router := newTestRouter(t)
	body, ct := multipartBody(t, "files", map[string]string{"upload.txt": skttUpload}, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/extract/rename", body, ct)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "JOHN MICHAEL DOE 2C11JE1234-X.pdf")
	assert.Contains(t, names, "manifest.xlsx")
}

func TestLayoutsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/layouts", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			Code string `json:"code"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 6)
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/readyz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
