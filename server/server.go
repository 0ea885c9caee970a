package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/glog"

	"github.com/zeu5/cardmdp/game"
	"github.com/zeu5/cardmdp/solver"
)

// Server answers policy queries against a solved game over HTTP.
type Server struct {
	solution *solver.Solution
	router   *gin.Engine
}

func New(solution *solver.Solution) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		solution: solution,
		router:   r,
	}
	r.GET("/action", s.handleAction)
	r.GET("/stats", s.handleStats)
	r.POST("/batch", s.handleBatch)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

type actionResponse struct {
	Hand   string  `json:"hand"`
	Action int     `json:"action"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Known  bool    `json:"known"`
}

func (s *Server) lookup(h game.Hand) actionResponse {
	a, v, ok := s.solution.Lookup(h)
	return actionResponse{
		Hand:   h.String(),
		Action: a.Code(),
		Name:   a.String(),
		Value:  v,
		Known:  ok,
	}
}

func (s *Server) handleAction(c *gin.Context) {
	h, err := game.ParseHand(c.Query("hand"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.lookup(h))
}

func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"states":    s.solution.Index().NumHands(),
		"sweeps":    s.solution.Sweeps(),
		"converged": s.solution.Converged(),
		"config":    s.solution.Config(),
	})
}

type batchRequest struct {
	Hands [][]string `json:"hands"`
}

func (s *Server) handleBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}
	actions := make([]int, len(req.Hands))
	for i, tokens := range req.Hands {
		h, err := game.ParseHandTokens(tokens)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "index": i})
			return
		}
		actions[i] = s.solution.Action(h).Code()
	}
	c.JSON(http.StatusOK, gin.H{"actions": actions})
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		glog.Infof("Serving policy on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
