package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/deskd/internal/shared/types"
	"github.com/GriffinCanCode/deskd/internal/shared/utils"
)

// ListApps lists every registered app
func (h *Handlers) ListApps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"apps":  h.session.Apps(),
		"stats": h.session.Stats(),
	})
}

type installRequest struct {
	Name    string  `json:"name"`
	Icon    string  `json:"icon"`
	Payload *string `json:"payload"`
	PWA     bool    `json:"pwa"`
}

// InstallApp installs a user app. The launcher action is generated.
func (h *Handlers) InstallApp(c *gin.Context) {
	var req installRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid app: "+err.Error())
		return
	}
	if err := utils.ValidateAppName(req.Name); err != nil {
		h.fail(c, err)
		return
	}

	d, err := h.session.Install(c.Request.Context(), types.Descriptor{
		Name:    req.Name,
		Icon:    req.Icon,
		Payload: req.Payload,
		PWA:     req.PWA,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// UninstallApp removes a user-installed app
func (h *Handlers) UninstallApp(c *gin.Context) {
	name := c.Param("name")
	if err := h.session.Uninstall(c.Request.Context(), name); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "name": name})
}

// FocusApp brings an app to the front
func (h *Handlers) FocusApp(c *gin.Context) {
	name := c.Param("name")
	if err := h.session.Focus(name); err != nil {
		h.fail(c, err)
		return
	}
	d, _ := h.session.App(name)
	c.JSON(http.StatusOK, d)
}

// MinimizeApp hides an app's window
func (h *Handlers) MinimizeApp(c *gin.Context) {
	name := c.Param("name")
	if err := h.session.Minimize(name); err != nil {
		h.fail(c, err)
		return
	}
	d, _ := h.session.App(name)
	c.JSON(http.StatusOK, d)
}

// Desktop returns the desktop icons in layout order
func (h *Handlers) Desktop(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"icons": h.session.Desktop()})
}

// Taskbar returns the taskbar entries
func (h *Handlers) Taskbar(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.session.Taskbar()})
}
