package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/alscodec/als/internal/config"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.GetDefaultConfig()
	s := NewServer(cfg)
	s.router = gin.New()
	s.setupRoutes()
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var r *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		r = bytes.NewReader(data)
	} else {
		r = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHandleHealthReturnsOK(t *testing.T) {
	s := testServer(t)
	w := doJSON(t, s, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHandleCompressAndDecompressRoundTrip(t *testing.T) {
	s := testServer(t)

	compressReq := CompressRequest{
		Columns: []string{"id", "status"},
		Rows: [][]string{
			{"1", "ok"},
			{"2", "ok"},
			{"3", "ok"},
		},
	}
	w := doJSON(t, s, http.MethodPost, "/v1/compress?report=true", compressReq)
	if w.Code != http.StatusOK {
		t.Fatalf("compress: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var compressResp CompressResponse
	if err := json.Unmarshal(w.Body.Bytes(), &compressResp); err != nil {
		t.Fatalf("decode compress response: %v", err)
	}
	if compressResp.Document == "" {
		t.Fatal("expected a non-empty document")
	}
	if compressResp.Report == nil {
		t.Fatal("expected a report when report=true")
	}

	w = doJSON(t, s, http.MethodPost, "/v1/decompress", DecompressRequest{Document: compressResp.Document})
	if w.Code != http.StatusOK {
		t.Fatalf("decompress: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var decompressResp DecompressResponse
	if err := json.Unmarshal(w.Body.Bytes(), &decompressResp); err != nil {
		t.Fatalf("decode decompress response: %v", err)
	}
	if len(decompressResp.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(decompressResp.Rows))
	}
	if decompressResp.Rows[0][1] == nil || *decompressResp.Rows[0][1] != "ok" {
		t.Fatalf("expected status cell 'ok', got %+v", decompressResp.Rows[0])
	}
}

func TestHandleCompressRejectsMalformedBody(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/compress", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleDecompressRejectsMalformedDocument(t *testing.T) {
	s := testServer(t)
	w := doJSON(t, s, http.MethodPost, "/v1/decompress", DecompressRequest{Document: "not a valid document"})
	if w.Code != http.StatusBadRequest && w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 400 or 422, got %d", w.Code)
	}
}
