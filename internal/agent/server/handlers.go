package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Trippy-actions/server/internal/agent/actions"
	"github.com/Trippy-actions/server/internal/agent/graph/tools"
	"github.com/Trippy-actions/server/internal/agent/model"
	logx "github.com/Trippy-actions/server/pkg/logger"
)

// WebhookRequest is the body the dialogue engine posts for every action it
// wants executed.
type WebhookRequest struct {
	NextAction string        `json:"next_action" binding:"required"`
	SenderID   string        `json:"sender_id"`
	Tracker    model.Tracker `json:"tracker"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) webhook(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if req.Tracker.SenderID == "" {
		req.Tracker.SenderID = req.SenderID
	}

	res, err := s.registry.Run(c.Request.Context(), req.NextAction, &req.Tracker)
	switch {
	case errors.Is(err, actions.ErrActionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no registered action found for name", "action_name": req.NextAction})
		return
	case err != nil:
		_ = c.Error(err)
		logx.Error().Err(err).Str("action", req.NextAction).Msg("action failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "action failed", "action_name": req.NextAction})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": res.Events, "responses": res.Messages})
}

func (s *Server) listActions(c *gin.Context) {
	names := s.registry.Names()
	out := make([]gin.H, 0, len(names))
	for _, n := range names {
		out = append(out, gin.H{"name": n})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) listTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": s.tools.Infos()})
}

func (s *Server) invokeTool(c *gin.Context) {
	name := c.Param("name")
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	out, err := s.tools.Invoke(c.Request.Context(), name, string(body))
	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown tool", "name": name})
		return
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "name": name})
		return
	}
	c.JSON(http.StatusOK, out)
}
