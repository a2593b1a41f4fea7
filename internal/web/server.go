// Package web serves the extracted catalog over HTTP: the artifact bundle,
// a small read-only JSON API, and Prometheus metrics. Extraction can be
// re-run on a schedule when the source document is refreshed in place; no
// extraction logic lives here.
package web

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	scraper "github.com/cobrasuicida/srf2025-scraper"
	"github.com/cobrasuicida/srf2025-scraper/export"
	"github.com/cobrasuicida/srf2025-scraper/internal/config"
	"github.com/cobrasuicida/srf2025-scraper/model"
)

var (
	runsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "extraction_runs_total",
		Help: "Total number of extraction runs.",
	})
	runFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "extraction_run_failures_total",
		Help: "Total number of failed extraction runs.",
	})
	runDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "extraction_run_duration_seconds",
		Help:    "Duration of extraction runs.",
		Buckets: prometheus.DefBuckets,
	})
	papersGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_papers",
		Help: "Papers in the current catalog.",
	})
	sessionsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_sessions",
		Help: "Sessions in the current catalog.",
	})
	anomaliesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_anomalies",
		Help: "Anomalies recorded by the last extraction run.",
	})
)

func init() {
	prometheus.MustRegister(runsTotal, runFailures, runDuration,
		papersGauge, sessionsGauge, anomaliesGauge)
}

// Server holds the current catalog and serves it read-only.
type Server struct {
	cfg *config.Config
	log *zap.Logger

	mu          sync.RWMutex
	catalog     *model.Catalog
	anomalies   model.Anomalies
	catalogJSON []byte
}

// New creates a server; call Refresh or Run to populate the catalog.
func New(cfg *config.Config, log *zap.Logger) *Server {
	return &Server{cfg: cfg, log: log}
}

// Refresh re-runs extraction, rewrites the artifact bundle, and swaps in
// the new catalog. On failure the previous catalog stays published.
func (s *Server) Refresh() error {
	start := time.Now()
	runsTotal.Inc()

	ext := scraper.Open(s.cfg.InputPath).IDOffset(s.cfg.IDOffset)
	if s.cfg.FirstPage > 0 {
		ext = ext.FirstPage(s.cfg.FirstPage)
	}
	if s.cfg.SourceLabel != "" {
		ext = ext.SourceLabel(s.cfg.SourceLabel)
	}
	if s.cfg.KeepEmptySessions {
		ext = ext.KeepEmptySessions()
	}

	catalog, anomalies, err := ext.Catalog()
	if err != nil {
		runFailures.Inc()
		return fmt.Errorf("extraction failed: %w", err)
	}

	if err := export.WriteBundle(catalog, anomalies, s.cfg.OutputDir); err != nil {
		runFailures.Inc()
		return fmt.Errorf("writing bundle: %w", err)
	}

	data, err := export.MarshalCatalog(catalog)
	if err != nil {
		runFailures.Inc()
		return fmt.Errorf("rendering catalog: %w", err)
	}

	s.setCatalog(catalog, anomalies, data)
	runDuration.Observe(time.Since(start).Seconds())

	s.log.Info("Catalog refreshed",
		zap.Int("sessions", catalog.SessionCount()),
		zap.Int("papers", catalog.PaperCount()),
		zap.Int("anomalies", len(anomalies)))
	return nil
}

func (s *Server) setCatalog(catalog *model.Catalog, anomalies model.Anomalies, data []byte) {
	s.mu.Lock()
	s.catalog = catalog
	s.anomalies = anomalies
	s.catalogJSON = data
	s.mu.Unlock()

	papersGauge.Set(float64(catalog.PaperCount()))
	sessionsGauge.Set(float64(catalog.SessionCount()))
	anomaliesGauge.Set(float64(len(anomalies)))
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.GET("/catalog", func(c *gin.Context) {
		s.mu.RLock()
		data := s.catalogJSON
		s.mu.RUnlock()
		if data == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no catalog extracted yet"})
			return
		}
		c.Data(http.StatusOK, "application/json", data)
	})
	api.GET("/sessions", func(c *gin.Context) {
		s.mu.RLock()
		catalog := s.catalog
		s.mu.RUnlock()
		if catalog == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no catalog extracted yet"})
			return
		}
		type sessionInfo struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Papers int    `json:"papers"`
		}
		sessions := make([]sessionInfo, 0, catalog.SessionCount())
		for _, sess := range catalog.Sessions {
			sessions = append(sessions, sessionInfo{ID: sess.ID, Name: sess.Name, Papers: sess.PaperCount()})
		}
		c.JSON(http.StatusOK, sessions)
	})
	api.GET("/anomalies", func(c *gin.Context) {
		s.mu.RLock()
		anomalies := s.anomalies
		s.mu.RUnlock()
		lines := make([]string, 0, len(anomalies))
		for _, a := range anomalies {
			lines = append(lines, a.String())
		}
		c.JSON(http.StatusOK, lines)
	})

	// The artifact bundle, with the data explorer as the landing page.
	router.Static("/artifacts", s.cfg.OutputDir)
	router.GET("/", func(c *gin.Context) {
		c.File(s.cfg.OutputDir + "/" + export.Bundle[export.FormatHTML])
	})

	return router
}

// Run performs the initial extraction, starts the scheduler when
// configured, and serves until the listener fails.
func (s *Server) Run() error {
	if err := s.Refresh(); err != nil {
		return err
	}

	if s.cfg.CronSchedule != "" {
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(s.cfg.CronSchedule, func() {
			s.log.Info("Running scheduled re-extraction")
			if err := s.Refresh(); err != nil {
				s.log.Error("Scheduled re-extraction failed", zap.Error(err))
			}
		}); err != nil {
			return fmt.Errorf("invalid cron schedule %q: %w", s.cfg.CronSchedule, err)
		}
		scheduler.Start()
	}

	s.log.Info("Starting server", zap.String("port", s.cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + s.cfg.HTTPPort,
		Handler:           s.Router(),
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return srv.ListenAndServe()
}
