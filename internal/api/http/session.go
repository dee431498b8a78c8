package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/deskd/internal/domain/menu"
	"github.com/GriffinCanCode/deskd/internal/domain/session"
	"github.com/GriffinCanCode/deskd/internal/shared/types"
)

// Session returns the current session snapshot
func (h *Handlers) Session(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Snapshot())
}

// Dispatch applies an intent. Unknown or malformed intents answer 200 with
// applied=false; only failures of an applied command carry an error status.
func (h *Handlers) Dispatch(c *gin.Context) {
	h.dispatch(c, h.session.Dispatch)
}

// DispatchFromMenu applies an intent fired from a menu item and closes the menu
func (h *Handlers) DispatchFromMenu(c *gin.Context) {
	h.dispatch(c, h.session.DispatchFromMenu)
}

type dispatchFunc func(ctx context.Context, in types.Intent) (session.Result, error)

func (h *Handlers) dispatch(c *gin.Context, fn dispatchFunc) {
	var in types.Intent
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid intent: "+err.Error())
		return
	}

	var res session.Result
	err := h.trace(c.Request.Context(), "dispatch "+in.Type, func(ctx context.Context) error {
		var err error
		res, err = fn(ctx, in)
		return err
	})
	if err != nil {
		status := statusFor(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			h.fail(c, err)
			return
		}
		c.JSON(status, gin.H{"error": msg, "result": res})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  res,
		"version": h.session.Snapshot().Version,
	})
}

// openMenuRequest positions a menu; Target names the app it was opened on
type openMenuRequest struct {
	Anchor   menu.Point    `json:"anchor"`
	Viewport menu.Viewport `json:"viewport"`
	Target   string        `json:"target"`
}

// OpenMenu shows the menu named by :id and returns its rendered view
func (h *Handlers) OpenMenu(c *gin.Context) {
	id := menu.ID(c.Param("id"))
	if !id.Valid() {
		badRequest(c, "unknown menu: "+string(id))
		return
	}

	var req openMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid menu request: "+err.Error())
		return
	}

	view, err := h.session.OpenMenu(id, req.Anchor, req.Viewport, req.Target)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CloseMenu hides the open menu
func (h *Handlers) CloseMenu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"closed": h.session.CloseMenu()})
}
