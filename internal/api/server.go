// Package api implements the HTTP surface for the compressor: compress and
// decompress endpoints behind a per-IP rate limiter, with a
// gin.New + gin.Logger + gin.Recovery + CORS + graceful-shutdown server.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/alscodec/als/internal/als"
	"github.com/alscodec/als/internal/alsutil"
	"github.com/alscodec/als/internal/compress"
	"github.com/alscodec/als/internal/config"
	"github.com/alscodec/als/internal/ingest"
	"github.com/alscodec/als/internal/table"
)

// Server is the compressor's HTTP API.
type Server struct {
	cfg        *config.Config
	compressor *compress.Compressor
	router     *gin.Engine
	logger     *slog.Logger

	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter
}

// NewServer builds a Server from cfg, wiring a Compressor configured from
// cfg.Compressor.
func NewServer(cfg *config.Config) *Server {
	return &Server{
		cfg: cfg,
		compressor: compress.NewCompressor(compress.Config{
			MinPatternLength:     cfg.Compressor.MinPatternLength,
			MaxRangeExpansion:    cfg.Compressor.MaxRangeExpansion,
			DictMinOccurrences:   cfg.Compressor.DictMinOccurrences,
			DictMaxEntries:       cfg.Compressor.DictMaxEntries,
			CtxFallbackThreshold: cfg.Compressor.CtxFallbackThreshold,
		}),
		logger:   alsutil.Logger,
		limiters: make(map[string]*rate.Limiter),
	}
}

// CompressRequest is the body of POST /v1/compress: a table expressed as a
// column list and row-major text cells, the same shape ingest.TableFromRows
// consumes from every file loader.
type CompressRequest struct {
	Columns []string   `json:"columns" binding:"required"`
	Rows    [][]string `json:"rows"`
}

// CompressResponse carries the rendered document and, when requested, its
// CompressionReport.
type CompressResponse struct {
	Document string                     `json:"document"`
	Report   *compress.CompressionReport `json:"report,omitempty"`
}

// DecompressRequest is the body of POST /v1/decompress.
type DecompressRequest struct {
	Document string `json:"document" binding:"required"`
}

// DecompressResponse carries the reconstructed table; a nil cell marks Null.
type DecompressResponse struct {
	Columns []string  `json:"columns"`
	Rows    [][]*string `json:"rows"`
}

func (s *Server) setupRoutes() {
	v1 := s.router.Group("/v1")
	v1.Use(s.rateLimitMiddleware())
	{
		v1.POST("/compress", s.handleCompress)
		v1.POST("/decompress", s.handleDecompress)
	}
	s.router.GET("/healthz", s.handleHealth)
}

func (s *Server) handleCompress(c *gin.Context) {
	var req CompressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows := make([]map[string]string, len(req.Rows))
	for i, r := range req.Rows {
		row := make(map[string]string, len(req.Columns))
		for j, name := range req.Columns {
			if j < len(r) {
				row[name] = r[j]
			}
		}
		rows[i] = row
	}

	tbl, err := ingest.TableFromRows(rows, req.Columns)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, report, err := s.compressor.Compress(tbl)
	if err != nil {
		wrapped := alsutil.WrapError(err, "compress request failed")
		alsutil.LogError(s.logger, wrapped)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "compression failed"})
		return
	}

	resp := CompressResponse{Document: doc.Render()}
	if c.Query("report") == "true" {
		resp.Report = report
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleDecompress(c *gin.Context) {
	var req DecompressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := als.Parse(req.Document)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tbl, err := doc.ToTable(s.cfg.Compressor.MaxRangeExpansion)
	if err != nil {
		wrapped := alsutil.WrapError(err, "decompress request failed")
		alsutil.LogError(s.logger, wrapped)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tableToResponse(tbl))
}

func tableToResponse(tbl *table.Table) DecompressResponse {
	resp := DecompressResponse{Columns: tbl.ColumnNames(), Rows: make([][]*string, tbl.RowCount)}
	for i := 0; i < tbl.RowCount; i++ {
		row := tbl.Row(i)
		cells := make([]*string, len(row))
		for j, v := range row {
			if v.IsNull() {
				continue
			}
			s := v.CanonicalString()
			cells[j] = &s
		}
		resp.Rows[i] = cells
	}
	return resp
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}

// rateLimitMiddleware guards /v1 with a per-client-IP token bucket sized
// from cfg.Server.RateLimit.
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	rps := s.cfg.Server.RateLimit.RequestsPerSecond
	burst := s.cfg.Server.RateLimit.Burst
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !s.limiterFor(ip, rps, burst).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) limiterFor(ip string, rps float64, burst int) *rate.Limiter {
	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()
	l, ok := s.limiters[ip]
	if !ok {
		l = rate.NewLimiter(rate.Limit(rps), burst)
		s.limiters[ip] = l
	}
	return l
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept-Encoding, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Start runs the HTTP server until ctx is canceled, then shuts it down
// gracefully with a 5 second timeout.
func (s *Server) Start(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	s.router = router
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info("starting HTTP server", slog.String("address", addr))

	httpServer := &http.Server{Addr: addr, Handler: s.router}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server failed to start", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
