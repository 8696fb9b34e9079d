package server

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appconfig "github.com/l0he1g/BaYeAgent/config"
	"github.com/l0he1g/BaYeAgent/internal/rerank"
	"github.com/l0he1g/BaYeAgent/internal/research"
	"github.com/l0he1g/BaYeAgent/internal/researcher"
	"github.com/l0he1g/BaYeAgent/internal/searchcache"
	"github.com/l0he1g/BaYeAgent/internal/telemetry"
	openai_provider "github.com/l0he1g/BaYeAgent/provider/openai"
	"github.com/l0he1g/BaYeAgent/tools/web_fetch"
	"github.com/l0he1g/BaYeAgent/tools/web_search"
)

// Server holds the HTTP surface and the single active session. The session
// pointer is guarded at this level; the research types themselves are not
// concurrency-safe.
type Server struct {
	mu   sync.Mutex
	sess *research.Session
	res  *researcher.Researcher
}

// NewServer wires a server around a prepared researcher. Tests pass stubbed
// boundaries; Run builds the real ones from config.
func NewServer(res *researcher.Researcher) *Server {
	return &Server{res: res}
}

// session returns the current session with its lock held. Callers must
// invoke the returned unlock.
func (s *Server) session() (*research.Session, func(), error) {
	s.mu.Lock()
	if s.sess == nil {
		s.mu.Unlock()
		return nil, nil, echo.NewHTTPError(http.StatusConflict, "no active session; POST /api/session/init first")
	}
	return s.sess, s.mu.Unlock, nil
}

// Echo assembles the routes and middleware around the server.
func (s *Server) Echo(jwtSecret []byte) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, HTTPError{Error: msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Cookie"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	if len(jwtSecret) > 0 {
		api.Use(EchoAuthMiddleware(jwtSecret))
	}

	sh := &SessionHandler{Srv: s}
	sh.Register(api.Group("/session"))

	rh := &SearchHandler{Srv: s}
	rh.Register(api)

	return e
}

// Run builds the full dependency graph from config and serves until the
// listener fails.
func Run(cfgPath, addr string) error {
	cfg := appconfig.LoadConfig(cfgPath)

	res, err := BuildResearcher(cfg)
	if err != nil {
		return err
	}

	srv := NewServer(res)
	e := srv.Echo([]byte(cfg.Server.JWTSecret))

	if addr == "" {
		addr = cfg.Server.Address
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}

// BuildResearcher assembles the search, rerank, fetch, cache and metrics
// boundaries from config.
func BuildResearcher(cfg *appconfig.Config) (*researcher.Researcher, error) {
	var router web_search.Router
	if cfg.Search.TavilyAPIKey != "" {
		s, err := web_search.NewWebSearcher(web_search.TavilyProvider, cfg.Search.TavilyAPIKey)
		if err != nil {
			return nil, err
		}
		router.Tavily = s
	}
	if cfg.Search.BochaAPIKey != "" {
		s, err := web_search.NewWebSearcher(web_search.BochaProvider, cfg.Search.BochaAPIKey)
		if err != nil {
			return nil, err
		}
		router.Bocha = s
	}

	reader, err := web_fetch.NewWebReader(web_fetch.FetcherType(cfg.Fetch.Fetcher), cfg.Fetch.Timeout, cfg.Fetch.MaxChars)
	if err != nil {
		return nil, err
	}

	var metrics *telemetry.Metrics
	if cfg.Telemetry.Enabled {
		metrics = telemetry.New(prometheus.DefaultRegisterer)
	}

	var oracle rerank.Oracle = openai_provider.NewClient(
		cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Model,
		cfg.LLM.Temperature, cfg.LLM.MaxTokens, cfg.LLM.Timeout,
	)
	if metrics != nil {
		oracle = metrics.TimedOracle(oracle)
	}

	var cache *searchcache.Cache
	if cfg.Cache.RedisAddr != "" {
		cache = searchcache.New(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cfg.Cache.TTL)
	}

	return &researcher.Researcher{
		Searcher: router,
		Reader:   reader,
		Reranker: rerank.New(oracle, nil),
		Cache:    cache,
		Metrics:  metrics,
		Logger:   log.New(log.Writer(), "[RESEARCH] ", log.LstdFlags),
	}, nil
}
