package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/l0he1g/BaYeAgent/internal/rerank"
	"github.com/l0he1g/BaYeAgent/internal/research"
	"github.com/l0he1g/BaYeAgent/internal/researcher"
	"github.com/l0he1g/BaYeAgent/tools/web_search"
)

// SearchHandler exposes the live search-and-rerank pipeline.
type SearchHandler struct {
	Srv *Server
}

func (h *SearchHandler) Register(g *echo.Group) {
	g.POST("/rerank", h.rerankResults)
	g.POST("/search", h.search)
}

// rerankResults curates a caller-supplied raw provider payload without
// touching the session. Both supported provider shapes are accepted.
func (h *SearchHandler) rerankResults(c echo.Context) error {
	var req RerankRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Results) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "results payload is required")
	}
	hits, err := web_search.ParseHits(req.Results)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unrecognized results payload: "+err.Error())
	}
	freshness, ok := research.ParseFreshness(req.Freshness)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown freshness: "+req.Freshness)
	}
	outcome := h.Srv.res.Reranker.Rerank(c.Request().Context(), hits, req.Task, rerank.Options{
		TopK:      req.TopK,
		Topic:     req.Topic,
		Freshness: freshness,
	})
	return c.JSON(http.StatusOK, outcome)
}

// search runs one full round: provider search, rerank, and optionally page
// collection into the current session.
func (h *SearchHandler) search(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	freshness, ok := research.ParseFreshness(req.Freshness)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown freshness: "+req.Freshness)
	}
	opts := researcher.RoundOptions{
		MaxResults: req.MaxResults,
		TopK:       req.TopK,
		Topic:      req.Topic,
		Freshness:  freshness,
		Category:   req.Category,
	}

	if !req.Collect {
		res, err := h.Srv.res.SearchWithRerank(c.Request().Context(), req.Query, req.Task, opts)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
		return c.JSON(http.StatusOK, res)
	}

	sess, unlock, err := h.Srv.session()
	if err != nil {
		return err
	}
	defer unlock()
	task := req.Task
	if task == "" {
		task = sess.Task()
	}
	res, err := h.Srv.res.RunRound(c.Request().Context(), sess, req.Query, task, opts)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"round":  res,
		"status": sess.Status(),
	})
}
