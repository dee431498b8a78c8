package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSettings returns the whole tree, or one node with ?path=a.b.c
func (h *Handlers) GetSettings(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusOK, h.session.Settings())
		return
	}

	v, ok := h.session.Setting(path)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "setting not found", "path": path})
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path, "value": v})
}

type settingRequest struct {
	Path  string      `json:"path" binding:"required"`
	Value interface{} `json:"value"`
}

// PutSetting writes one existing path and persists the tree
func (h *Handlers) PutSetting(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid setting: "+err.Error())
		return
	}

	if err := h.session.SetSetting(c.Request.Context(), req.Path, req.Value); err != nil {
		h.fail(c, err)
		return
	}
	v, _ := h.session.Setting(req.Path)
	c.JSON(http.StatusOK, gin.H{"path": req.Path, "value": v})
}
