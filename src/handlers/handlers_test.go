package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/salesfolio/backend/src/config"
	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/parsers/columns"
	"github.com/username/salesfolio/backend/src/services"
)

func TestMain(m *testing.M) {
	config.Cfg = &config.AppConfig{MaxUploadSizeBytes: 1 << 20}
	os.Exit(m.Run())
}

type fakeUploadService struct {
	gotPlatform models.Platform
	gotData     []byte
	gotStrict   bool
	uploadErr   error
	metrics     *models.MetricsDocument
	metricsErr  error
	invalidated []models.Platform
}

func (f *fakeUploadService) ProcessUpload(_ context.Context, platform models.Platform, data []byte, strict bool) (*services.UploadResult, error) {
	f.gotPlatform, f.gotData, f.gotStrict = platform, data, strict
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &services.UploadResult{UploadID: "upload-1", Platform: platform}, nil
}

func (f *fakeUploadService) GetMetrics(context.Context, models.Platform) (*models.MetricsDocument, error) {
	return f.metrics, f.metricsErr
}

func (f *fakeUploadService) InvalidatePlatformCache(platform models.Platform) {
	f.invalidated = append(f.invalidated, platform)
}

func newMux(svc services.UploadService, store MappingStore) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/upload/{platform}", NewUploadHandler(svc).HandleUpload)
	mux.HandleFunc("GET /api/metrics/{platform}", NewMetricsHandler(svc).HandleGetMetrics)
	mh := NewMappingHandler(store, svc)
	mux.HandleFunc("GET /api/mappings/{platform}", mh.HandleGetCodeMappings)
	mux.HandleFunc("PUT /api/mappings/{platform}", mh.HandlePutCodeMappings)
	mux.HandleFunc("POST /api/province-aliases", mh.HandleAddProvinceAliases)
	return mux
}

func uploadRequest(t *testing.T, url, contentType string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="orders.csv"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

var csvContent = []byte("Order ID,Seller SKU\nO1,SKU-1\n")

func TestHandleUpload_Success(t *testing.T) {
	svc := &fakeUploadService{}
	rec := httptest.NewRecorder()
	newMux(svc, &fakeMappingStore{}).ServeHTTP(rec, uploadRequest(t, "/api/upload/TikTok?strict=true", "text/csv", csvContent))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.PlatformTikTok, svc.gotPlatform)
	assert.Equal(t, csvContent, svc.gotData)
	assert.True(t, svc.gotStrict)

	var result services.UploadResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "upload-1", result.UploadID)
}

func TestHandleUpload_RejectsBadRequests(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
	tests := []struct {
		name        string
		url         string
		contentType string
		content     []byte
		wantStatus  int
	}{
		{"unknown platform", "/api/upload/amazon", "text/csv", csvContent, http.StatusNotFound},
		{"invalid strict flag", "/api/upload/shopee?strict=maybe", "text/csv", csvContent, http.StatusBadRequest},
		{"declared pdf", "/api/upload/shopee", "application/pdf", csvContent, http.StatusBadRequest},
		{"png content", "/api/upload/shopee", "application/octet-stream", png, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeUploadService{}
			rec := httptest.NewRecorder()
			newMux(svc, &fakeMappingStore{}).ServeHTTP(rec, uploadRequest(t, tt.url, tt.contentType, tt.content))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Nil(t, svc.gotData, "service must not be called")
		})
	}
}

func TestHandleUpload_MissingFileField(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/upload/lazada", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	newMux(&fakeUploadService{}, &fakeMappingStore{}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleUpload_ServiceErrors(t *testing.T) {
	missing := &columns.MissingColumnsError{Platform: models.PlatformShopee, Fields: []string{"status", "sku"}}
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing columns", fmt.Errorf("%w: %w", services.ErrParsingFailed, missing), http.StatusUnprocessableEntity},
		{"parse failure", fmt.Errorf("%w: file is empty", services.ErrParsingFailed), http.StatusBadRequest},
		{"storage failure", fmt.Errorf("%w: disk full", services.ErrStorageFailed), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			svc := &fakeUploadService{uploadErr: tt.err}
			newMux(svc, &fakeMappingStore{}).ServeHTTP(rec, uploadRequest(t, "/api/upload/shopee", "text/csv", csvContent))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	svc := &fakeUploadService{uploadErr: fmt.Errorf("%w: %w", services.ErrParsingFailed, missing)}
	newMux(svc, &fakeMappingStore{}).ServeHTTP(rec, uploadRequest(t, "/api/upload/shopee", "text/csv", csvContent))
	var body struct {
		MissingColumns []string `json:"missing_columns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"status", "sku"}, body.MissingColumns)
}

func TestHandleGetMetrics_ETag(t *testing.T) {
	svc := &fakeUploadService{metrics: &models.MetricsDocument{
		Platform: models.PlatformLazada,
		Revenue:  decimal.RequireFromString("95"),
	}}
	mux := newMux(svc, &fakeMappingStore{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metrics/lazada", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	var doc models.MetricsDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "95", doc.Revenue.String())

	req := httptest.NewRequest(http.MethodGet, "/api/metrics/lazada", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestHandleGetMetrics_Errors(t *testing.T) {
	svc := &fakeUploadService{metricsErr: fmt.Errorf("%w: shopee", services.ErrMetricsNotFound)}
	rec := httptest.NewRecorder()
	newMux(svc, &fakeMappingStore{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metrics/shopee", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc = &fakeUploadService{metricsErr: errors.New("boom")}
	rec = httptest.NewRecorder()
	newMux(svc, &fakeMappingStore{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/metrics/shopee", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
