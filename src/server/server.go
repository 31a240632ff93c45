package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"index-observer/src/analysis"
	"index-observer/src/helpers"
	"index-observer/src/interfaces"
	"index-observer/src/logger"
	"index-observer/src/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

type APIServer struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	Data     interfaces.IDatasetProvider
	Facade   *analysis.AnalysisFacade
	Analyst  interfaces.IAnalyst // nil when analysis is disabled
	Anchor   time.Time
	Gatherer prometheus.Gatherer

	engine *gin.Engine
	http   *http.Server

	// WebSocket clients, owned by the hub loop
	clients    map[*Client]struct{}
	reloaded   chan struct{}
	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
	done       chan struct{}
	stopOnce   sync.Once

	connections int
	connMutex   sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(
	cfg *models.MConfig,
	log *logger.Logger,
	data interfaces.IDatasetProvider,
	facade *analysis.AnalysisFacade,
	analyst interfaces.IAnalyst,
	anchor time.Time,
	gatherer prometheus.Gatherer,
) *APIServer {
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &APIServer{
		Config:   cfg,
		Logger:   log,
		Data:     data,
		Facade:   facade,
		Analyst:  analyst,
		Anchor:   analysis.DateOnly(anchor),
		Gatherer: gatherer,
		engine:   gin.Default(),
		clients:  make(map[*Client]struct{}),
		// one pending signal is enough: the hub always reads the current snapshot
		reloaded:   make(chan struct{}, 1),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand, 16),
		done:       make(chan struct{}),
	}

	s.engine.Use(corsMiddleware)
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------

func corsMiddleware(c *gin.Context) {
	origin := c.Request.Header.Get("Origin")
	if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
	}
	c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "OPTIONS, GET")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	c.Next()
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.getHealth)
	api.GET("/config", s.getConfig)
	api.GET("/indices", s.getIndices)
	api.GET("/view", s.getView)
	api.GET("/analysis", s.getAnalysis)

	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{})))

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// Handler exposes the routes, mainly for tests.
func (s *APIServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start runs the hub and serves HTTP until Stop is called.
func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.Logger.Info("Starting server on %s", addr)

	go s.runHub()

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *APIServer) Stop() error {
	s.stopOnce.Do(func() { close(s.done) })

	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// -----------------------------------------------------------------------------

// DatasetChanged wakes the hub so every client gets a view of the new
// snapshot.
func (s *APIServer) DatasetChanged(ds *models.MDataset) {
	s.Facade.Invalidate()
	s.Logger.Info("Dataset v%d published, refreshing clients", ds.Version)

	select {
	case s.reloaded <- struct{}{}:
	default:
		// a refresh is already pending
	}
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	s.connMutex.RLock()
	connections := s.connections
	s.connMutex.RUnlock()

	var version uint64
	var rows int
	if ds := s.Data.Current(); ds != nil {
		version = ds.Version
		rows = len(ds.Rows)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"connections":     connections,
		"dataset_version": version,
		"dataset_rows":    rows,
		"last_recompute":  s.Facade.LastMetrics(),
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ranges":           models.KnownRanges,
		"default_range":    s.defaultRange(),
		"anchor":           s.Anchor.Format("2006-01-02"),
		"analysis_enabled": s.Analyst != nil,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getIndices(c *gin.Context) {
	ds := s.Data.Current()
	if ds == nil {
		writeError(c, helpers.ErrEmptyDataset)
		return
	}
	c.JSON(http.StatusOK, gin.H{"indices": ds.Indices})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getView(c *gin.Context) {
	view, err := s.view(c.Query("index"), s.queryRange(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getAnalysis(c *gin.Context) {
	if s.Analyst == nil {
		writeError(c, helpers.ErrAnalysisDisabled)
		return
	}

	view, err := s.view(c.Query("index"), s.queryRange(c))
	if err != nil {
		writeError(c, err)
		return
	}

	text, err := s.Analyst.Analyze(c.Request.Context(), view.Index, view.Buckets)
	if err != nil {
		s.Logger.Error("Analysis of %s failed: %v", view.Index, err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"index":    view.Index,
		"range":    view.Window.Range,
		"analysis": text,
	})
}

// -----------------------------------------------------------------------------

// view recomputes against whatever snapshot is live right now.
func (s *APIServer) view(index string, rng models.MRange) (*models.MViewModel, error) {
	return s.Facade.Recompute(s.Data.Current(), index, rng, s.Anchor)
}

// -----------------------------------------------------------------------------

func (s *APIServer) defaultRange() models.MRange {
	if s.Config.DefaultRange == "" {
		return models.Range1M
	}
	return models.ParseRange(s.Config.DefaultRange)
}
