package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/deskd/internal/providers/widget"
)

// ListWidgets returns the last good data of every widget
func (h *Handlers) ListWidgets(c *gin.Context) {
	entries := []widget.Entry{}
	if h.widgets != nil {
		entries = h.widgets.Get()
	}
	c.JSON(http.StatusOK, gin.H{"widgets": entries})
}

// RefreshWidgets starts a background refresh and returns at once
func (h *Handlers) RefreshWidgets(c *gin.Context) {
	started := 0
	if h.widgets != nil {
		started = h.widgets.Refresh(c.Request.Context())
	}
	c.JSON(http.StatusAccepted, gin.H{"started": started})
}
