package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/l0he1g/BaYeAgent/internal/research"
)

// SessionHandler exposes one research session over HTTP. A new init call
// replaces the previous session; everything else operates on the current one.
type SessionHandler struct {
	Srv *Server
}

func (h *SessionHandler) Register(g *echo.Group) {
	g.POST("/init", h.initSession)
	g.POST("/task", h.setTask)
	g.POST("/rounds", h.recordRound)
	g.POST("/items", h.addItem)
	g.POST("/reflect", h.reflect)
	g.POST("/continue", h.shouldContinue)
	g.GET("/status", h.status)
	g.GET("/history", h.history)
	g.GET("/sources", h.sources)
	g.GET("/summary", h.summary)
	g.GET("/quality/:dimension", h.quality)
	g.GET("/search", h.searchCollected)
}

func (h *SessionHandler) initSession(c echo.Context) error {
	var req InitSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.MaxRounds <= 0 {
		req.MaxRounds = research.DefaultMaxRounds
	}
	h.Srv.mu.Lock()
	h.Srv.sess = research.NewSession(req.MaxRounds)
	status := h.Srv.sess.Status()
	h.Srv.mu.Unlock()
	return c.JSON(http.StatusCreated, status)
}

func (h *SessionHandler) setTask(c echo.Context) error {
	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Description == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required")
	}
	sess, unlock, err := h.Srv.session()
	if err != nil {
		return err
	}
	defer unlock()
	return c.JSON(http.StatusOK, sess.SetTask(req.Description, req.RequiredInfoTypes, req.MinSources, req.TimeSensitivity))
}

func (h *SessionHandler) recordRound(c echo.Context) error {
	var req RecordRoundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	sess, unlock, err := h.Srv.session()
	if err != nil {
		return err
	}
	defer unlock()
	return c.JSON(http.StatusOK, sess.RecordRound(req.Query, req.Freshness, req.ResultsFound, req.ResultsCollected, req.Notes))
}

func (h *SessionHandler) addItem(c echo.Context) error {
	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Content == "" || req.Source == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content and source are required")
	}
	sess, unlock, err := h.Srv.session()
	if err != nil {
		return err
	}
	defer unlock()
	return c.JSON(http.StatusOK, sess.AddItem(req.Content, req.Source, req.PublishTime, req.RelevanceScore, req.Category))
}

func (h *SessionHandler) reflect(c echo.Context) error {
	var req ReflectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sess, unlock, err := h.Srv.session()
	if err != nil {
		return err
	}
	defer unlock()
	return c.JSON(http.StatusOK, sess.ReflectOnCoverage(sess.Task(), req.CoveredAspects, req.MissingAspects))
}

func (h *SessionHandler) shouldContinue(c echo.Context) error {
	var req ContinueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sess, unlock, err := h.Srv.session()
	if err != nil {
		return err
	}
	defer unlock()
	return c.JSON(http.StatusOK, sess.ShouldContinue(req.TaskComplete, req.ReasonsToStop))
}

func (h *SessionHandler) status(c echo.Context) error {
	sess, unlock, err := h.Srv.session()
	if err != nil {
		return err
	}
	defer unlock()
	return c.JSON(http.StatusOK, sess.Status())
}

func (h *SessionHandler) history(c echo.Context) error {
	sess, unlock, err := h.Srv.session()
	if err != nil {
		return err
	}
	defer unlock()
	return c.JSON(http.StatusOK, sess.History())
}

func (h *SessionHandler) sources(c echo.Context) error {
	sess, unlock, err := h.Srv.session()
	if err != nil {
		return err
	}
	defer unlock()
	return c.JSON(http.StatusOK, map[string]interface{}{"sources": sess.UniqueSources()})
}

func (h *SessionHandler) summary(c echo.Context) error {
	sess, unlock, err := h.Srv.session()
	if err != nil {
		return err
	}
	defer unlock()
	return c.JSON(http.StatusOK, sess.Summarize())
}

func (h *SessionHandler) quality(c echo.Context) error {
	sess, unlock, err := h.Srv.session()
	if err != nil {
		return err
	}
	defer unlock()
	score, err := sess.Evaluate(research.Dimension(c.Param("dimension")))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, score)
}

// searchCollected runs a BM25 query over the items gathered so far.
func (h *SessionHandler) searchCollected(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	k := 10
	if raw := c.QueryParam("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "k must be a positive integer")
		}
		k = n
	}
	sess, unlock, err := h.Srv.session()
	if err != nil {
		return err
	}
	defer unlock()
	hits, err := sess.SearchCollected(q, k)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"hits": hits})
}
